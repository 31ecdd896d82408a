package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/magabrotheeeer/gym-management/internal/config"
	"github.com/magabrotheeeer/gym-management/internal/lib/password"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/services/identity"
	"github.com/magabrotheeeer/gym-management/internal/services/member"
	"github.com/magabrotheeeer/gym-management/internal/services/payment"
	"github.com/magabrotheeeer/gym-management/internal/storage"
)

var configPath string

// openStore подключает хранилище по конфигу, в тестах подменяется.
var openStore = storage.Open

// env — зависимости одной команды. Кеш и события не поднимаются:
// команды читают хранилище напрямую.
type env struct {
	cfg      *config.Config
	log      *slog.Logger
	store    storage.Store
	identity *identity.Service
	members  *member.Service
}

func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		return nil, errors.New("config path is not set: use --config or CONFIG_PATH")
	}
	return config.Load(path)
}

func openEnv(ctx context.Context, migrate bool) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := sl.NewLogger(cfg.Env)

	store, err := openStore(ctx, cfg.Storage, migrate, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	payments := payment.New(store, nil, nil, nil, payment.Settings{
		DefaultCurrency: cfg.DefaultCurrency,
		CacheTTL:        cfg.CacheTTL,
	}, log)

	return &env{
		cfg:      cfg,
		log:      log,
		store:    store,
		identity: identity.New(store, password.NewHasher(cfg.BcryptCost), nil, cfg.DefaultPassword, log),
		members:  member.New(store, payments, log),
	}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Error("failed to close storage", sl.Err(err))
	}
}
