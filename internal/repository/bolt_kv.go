package repository

import (
	"context"
	"fmt"

	"github.com/nikolayk812/cartstore-demo/internal/port"
	bolt "go.etcd.io/bbolt"
)

var boltBucket = []byte("kv_entries")

type boltKV struct {
	db *bolt.DB
}

// NewBoltKV keeps entries in a single bucket of an embedded bbolt file.
func NewBoltKV(db *bolt.DB) port.KeyValueStore {
	return &boltKV{
		db: db,
	}
}

func (b *boltKV) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	var (
		value string
		found bool
	)

	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if bucket == nil {
			return nil
		}

		// the slice is only valid inside the transaction
		if v := bucket.Get([]byte(key)); v != nil {
			value, found = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("db.View: %w", err)
	}

	return value, found, nil
}

func (b *boltKV) Set(_ context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(boltBucket)
		if err != nil {
			return fmt.Errorf("tx.CreateBucketIfNotExists: %w", err)
		}

		return bucket.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("db.Update: %w", err)
	}

	return nil
}

func (b *boltKV) Remove(_ context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if bucket == nil {
			return nil
		}

		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("db.Update: %w", err)
	}

	return nil
}
