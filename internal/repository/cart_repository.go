package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/cartstore-demo/internal/domain"
	"github.com/nikolayk812/cartstore-demo/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const DefaultKey = "@goMarketplace/cartProducts"

// cartRow is the stored shape of a cart item. Field names must stay
// compatible with blobs written by earlier app versions.
type cartRow struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	ImageURL string      `json:"image_url"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
}

type cartRepository struct {
	kv       port.KeyValueStore
	key      string
	currency currency.Unit
}

type Option func(*cartRepository)

func WithKey(key string) Option {
	return func(r *cartRepository) {
		r.key = key
	}
}

// WithCurrency sets the unit assigned to loaded prices, the blob only keeps amounts.
func WithCurrency(unit currency.Unit) Option {
	return func(r *cartRepository) {
		r.currency = unit
	}
}

func NewCart(kv port.KeyValueStore, opts ...Option) (port.CartRepository, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv is nil")
	}

	r := &cartRepository{
		kv:       kv,
		key:      DefaultKey,
		currency: currency.USD,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	return r, nil
}

func (r *cartRepository) Load(ctx context.Context) (domain.Cart, error) {
	blob, found, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("kv.Get: %w", err)
	}
	if !found || blob == "" {
		return domain.Cart{}, nil
	}

	var rows []cartRow
	if err := json.Unmarshal([]byte(blob), &rows); err != nil {
		return domain.Cart{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	items, err := mapCartRowsToDomain(rows, r.currency)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapCartRowsToDomain: %w", err)
	}

	return domain.Cart{Items: items}, nil
}

func (r *cartRepository) Save(ctx context.Context, cart domain.Cart) error {
	blob, err := MarshalCart(cart)
	if err != nil {
		return fmt.Errorf("MarshalCart: %w", err)
	}

	if err := r.kv.Set(ctx, r.key, string(blob)); err != nil {
		return fmt.Errorf("kv.Set: %w", err)
	}

	return nil
}

func (r *cartRepository) Purge(ctx context.Context) error {
	if err := r.kv.Remove(ctx, r.key); err != nil {
		return fmt.Errorf("kv.Remove: %w", err)
	}

	return nil
}

// MarshalCart encodes the cart in its stored format.
func MarshalCart(cart domain.Cart) ([]byte, error) {
	blob, err := json.Marshal(mapDomainToCartRows(cart))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return blob, nil
}

func mapCartRowToDomain(row cartRow, unit currency.Unit) (domain.CartItem, error) {
	amount := decimal.Zero
	if row.Price != "" {
		parsed, err := decimal.NewFromString(row.Price.String())
		if err != nil {
			return domain.CartItem{}, fmt.Errorf("price[%s] is not valid: %w", row.Price, err)
		}
		amount = parsed
	}

	return domain.CartItem{
		ID:       row.ID,
		Title:    row.Title,
		ImageURL: row.ImageURL,
		Price:    domain.Money{Amount: amount, Currency: unit},
		Quantity: row.Quantity,
	}, nil
}

func mapCartRowsToDomain(rows []cartRow, unit currency.Unit) ([]domain.CartItem, error) {
	var items []domain.CartItem

	for _, row := range rows {
		item, err := mapCartRowToDomain(row, unit)
		if err != nil {
			return nil, fmt.Errorf("mapCartRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

func mapDomainToCartRows(cart domain.Cart) []cartRow {
	// never nil, an empty cart is stored as []
	rows := make([]cartRow, 0, cart.Len())

	for _, item := range cart.Items {
		rows = append(rows, cartRow{
			ID:       item.ID,
			Title:    item.Title,
			ImageURL: item.ImageURL,
			Price:    json.Number(item.Price.Amount.String()),
			Quantity: item.Quantity,
		})
	}

	return rows
}
