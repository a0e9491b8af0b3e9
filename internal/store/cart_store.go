// Package store holds the session cart in memory and keeps it in sync with
// its repository.
package store

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/nikolayk812/cartstore-demo/internal/domain"
	"github.com/nikolayk812/cartstore-demo/internal/port"
	"github.com/sirupsen/logrus"
)

// Store is safe for concurrent use. Each mutation computes the next cart,
// persists it and only then publishes it, all under one lock, so calls
// issued back to back never work from a stale snapshot.
type Store struct {
	mu   sync.Mutex
	repo port.CartRepository
	cart domain.Cart
	log  logrus.FieldLogger
}

type Option func(*Store)

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New creates the store and hydrates it from the repository.
func New(ctx context.Context, repo port.CartRepository, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is nil")
	}

	s := &Store{
		repo: repo,
		log:  discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	cart, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.Load: %w", err)
	}
	s.cart = cart

	s.log.WithField("items", cart.Len()).Debug("cart hydrated")

	return s, nil
}

// Products returns a copy of the current items.
func (s *Store) Products() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Clone().Items
}

func (s *Store) AddToCart(ctx context.Context, product domain.ProductRef) error {
	if product.ID == "" {
		return fmt.Errorf("product id is empty")
	}

	return s.mutate(ctx, "add", product.ID, func(c domain.Cart) domain.Cart {
		return c.AddItem(product)
	})
}

func (s *Store) Increment(ctx context.Context, id string) error {
	return s.mutate(ctx, "increment", id, func(c domain.Cart) domain.Cart {
		return c.Increment(id)
	})
}

func (s *Store) Decrement(ctx context.Context, id string) error {
	return s.mutate(ctx, "decrement", id, func(c domain.Cart) domain.Cart {
		return c.Decrement(id)
	})
}

// mutate persists the cart even when fn left it unchanged.
func (s *Store) mutate(ctx context.Context, op, id string, fn func(domain.Cart) domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.cart)

	log := s.log.WithFields(logrus.Fields{
		"op":    op,
		"id":    id,
		"items": next.Len(),
	})

	if err := s.repo.Save(ctx, next); err != nil {
		log.WithError(err).Warn("cart not persisted")
		return fmt.Errorf("repo.Save: %w", err)
	}

	s.cart = next
	log.Debug("cart updated")

	return nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
