// Package cartctx scopes a cart to a context.Context so UI handlers can
// reach it without threading it through every call.
package cartctx

import (
	"context"
	"errors"

	"github.com/nikolayk812/cartstore-demo/internal/port"
)

var ErrNoProvider = errors.New("cart must be used within a cart provider")

type ctxKey struct{}

// WithCart returns a child context that provides cart.
func WithCart(ctx context.Context, cart port.Cart) context.Context {
	return context.WithValue(ctx, ctxKey{}, cart)
}

func FromContext(ctx context.Context) (port.Cart, error) {
	cart, ok := ctx.Value(ctxKey{}).(port.Cart)
	if !ok || cart == nil {
		return nil, ErrNoProvider
	}

	return cart, nil
}

// MustFromContext panics with ErrNoProvider outside of a provider scope.
func MustFromContext(ctx context.Context) port.Cart {
	cart, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}

	return cart
}
