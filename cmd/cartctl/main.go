package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartstore-demo/internal/cartctx"
	"github.com/nikolayk812/cartstore-demo/internal/config"
	"github.com/nikolayk812/cartstore-demo/internal/domain"
	"github.com/nikolayk812/cartstore-demo/internal/port"
	"github.com/nikolayk812/cartstore-demo/internal/repository"
	"github.com/nikolayk812/cartstore-demo/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/text/currency"
)

const usage = `usage: cartctl [-config path] <command> [args]

commands:
  list
  add <id> <title> <image_url> <price>
  inc <id>
  dec <id>
  purge
`

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log := logrus.New()
	log.Out = os.Stderr
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, configPath, flag.Args(), log, os.Stdout); err != nil {
		log.WithError(err).Error("cartctl failed")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, args []string, log *logrus.Logger, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	log.SetLevel(level)

	unit, err := cfg.CurrencyUnit()
	if err != nil {
		return err
	}

	kv, closeKV, err := openKeyValueStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("openKeyValueStore: %w", err)
	}
	defer closeKV()

	repo, err := repository.NewCart(kv,
		repository.WithKey(cfg.StorageKey),
		repository.WithCurrency(unit))
	if err != nil {
		return fmt.Errorf("repository.NewCart: %w", err)
	}

	if args[0] == "purge" {
		if err := repo.Purge(ctx); err != nil {
			return fmt.Errorf("repo.Purge: %w", err)
		}
		log.WithField("key", cfg.StorageKey).Info("cart purged")
		return nil
	}

	s, err := store.New(ctx, repo, store.WithLogger(log.WithField("backend", cfg.Backend)))
	if err != nil {
		return fmt.Errorf("store.New: %w", err)
	}

	ctx = cartctx.WithCart(ctx, s)

	if err := dispatch(ctx, args, unit); err != nil {
		return err
	}

	return printCart(out, cartctx.MustFromContext(ctx).Products())
}

func dispatch(ctx context.Context, args []string, unit currency.Unit) error {
	cart := cartctx.MustFromContext(ctx)

	switch cmd := args[0]; cmd {
	case "list":
		return nil
	case "add":
		if len(args) != 5 {
			return fmt.Errorf("add expects 4 arguments, got %d", len(args)-1)
		}
		price, err := decimal.NewFromString(args[4])
		if err != nil {
			return fmt.Errorf("price[%s] is not valid: %w", args[4], err)
		}
		return cart.AddToCart(ctx, domain.ProductRef{
			ID:       args[1],
			Title:    args[2],
			ImageURL: args[3],
			Price:    domain.Money{Amount: price, Currency: unit},
		})
	case "inc", "dec":
		if len(args) != 2 {
			return fmt.Errorf("%s expects 1 argument, got %d", cmd, len(args)-1)
		}
		if cmd == "inc" {
			return cart.Increment(ctx, args[1])
		}
		return cart.Decrement(ctx, args[1])
	default:
		return fmt.Errorf("command[%s] is not supported", cmd)
	}
}

func openKeyValueStore(ctx context.Context, cfg config.Config) (port.KeyValueStore, func(), error) {
	switch cfg.Backend {
	case config.BackendBolt:
		db, err := bolt.Open(cfg.BoltPath, 0o600, &bolt.Options{Timeout: time.Second})
		if err != nil {
			return nil, nil, fmt.Errorf("bolt.Open: %w", err)
		}
		return repository.NewBoltKV(db), func() { _ = db.Close() }, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("client.Ping: %w", err)
		}
		return repository.NewRedisKV(client), func() { _ = client.Close() }, nil
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}
		return repository.NewPostgresKV(pool), pool.Close, nil
	default:
		return repository.NewMemoryKV(), func() {}, nil
	}
}

// printCart writes the items in the same format they are stored in.
func printCart(out io.Writer, items []domain.CartItem) error {
	blob, err := repository.MarshalCart(domain.Cart{Items: items})
	if err != nil {
		return fmt.Errorf("repository.MarshalCart: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, blob, "", "  "); err != nil {
		return fmt.Errorf("json.Indent: %w", err)
	}
	buf.WriteByte('\n')

	if _, err := buf.WriteTo(out); err != nil {
		return fmt.Errorf("buf.WriteTo: %w", err)
	}

	return nil
}
