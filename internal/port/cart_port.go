package port

import (
	"context"

	"github.com/nikolayk812/cartstore-demo/internal/domain"
)

// KeyValueStore is the persistence backend the cart is saved to.
type KeyValueStore interface {
	// Get returns found=false and no error when the key does not exist.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// CartRepository stores the whole cart as a single unit.
type CartRepository interface {
	Load(ctx context.Context) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Purge(ctx context.Context) error
}

// Cart is what UI code consumes.
type Cart interface {
	Products() []domain.CartItem
	AddToCart(ctx context.Context, product domain.ProductRef) error
	Increment(ctx context.Context, id string) error
	Decrement(ctx context.Context, id string) error
}
