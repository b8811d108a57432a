package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/ringlens"
	"github.com/aretw0/ringlens/internal/adapters/file"
	redisStore "github.com/aretw0/ringlens/internal/adapters/redis"
	"github.com/aretw0/ringlens/internal/config"
	"github.com/aretw0/ringlens/pkg/adapters/memory"
	redisLock "github.com/aretw0/ringlens/pkg/adapters/redis"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/persistence/middleware"
	"github.com/aretw0/ringlens/pkg/ports"
)

// Stores is the session persistence selected by configuration.
type Stores struct {
	State  ports.StateStore
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases connections held by the stores.
func (s *Stores) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStores builds the session store named by cfg.Store.Driver, sealed
// with the configured encryption key if any. The redis driver also provides
// a distributed lock on the same client and fails fast when the server is
// unreachable.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	stores, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	enc, err := cfg.Store.Encryption()
	if err != nil {
		_ = stores.Close()
		return nil, err
	}
	if enc != nil {
		mw, err := middleware.NewEncryptionMiddleware(*enc)
		if err != nil {
			_ = stores.Close()
			return nil, err
		}
		stores.State = middleware.Chain(stores.State, mw)
	}
	return stores, nil
}

func openStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Store.Driver {
	case "", config.DriverMemory:
		return &Stores{State: memory.NewStore()}, nil
	case config.DriverFile:
		return &Stores{State: file.New(cfg.Store.Path)}, nil
	case config.DriverRedis:
		rc := cfg.Store.Redis
		store := redisStore.New(rc.Addr, rc.Password, rc.DB,
			redisStore.WithPrefix(rc.Prefix),
			redisStore.WithTTL(rc.TTL),
		)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis store unavailable at %s: %w", rc.Addr, err)
		}
		return &Stores{
			State:  store,
			Locker: redisLock.NewLocker(store.Client(), rc.Prefix),
			close:  store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// CreateEngine loads the configured scenarios and wires the session stores.
func CreateEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger, stores *Stores, extra ...ringlens.Option) (*ringlens.Engine, error) {
	opts := []ringlens.Option{
		ringlens.WithLogger(logger),
		ringlens.WithDefaultLens(domain.Lens(cfg.DefaultLens)),
	}
	if stores != nil {
		opts = append(opts, ringlens.WithStore(stores.State))
		if stores.Locker != nil {
			opts = append(opts, ringlens.WithLocker(stores.Locker))
		}
	}
	opts = append(opts, extra...)

	engine, err := ringlens.New(ctx, cfg.Scenarios, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing ringlens: %w", err)
	}
	return engine, nil
}
