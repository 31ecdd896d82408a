// Package storage описывает контракты хранилищ пользователей и платежей
// и выбирает реализацию по конфигу.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/gym-management/internal/config"
	"github.com/magabrotheeeer/gym-management/internal/migrations"
	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/mongodb"
	"github.com/magabrotheeeer/gym-management/internal/storage/postgresql"
)

// UserStore — хранилище пользователей. Имя пользователя уникально.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (string, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	FindByRole(ctx context.Context, role models.Role) ([]*models.User, error)
	UpdateUser(ctx context.Context, username string, user *models.User) (bool, error)
	Exists(ctx context.Context, username string) (bool, error)
	DeleteUser(ctx context.Context, username string) (bool, error)
}

// PaymentStore — хранилище истории платежей, только добавление.
type PaymentStore interface {
	InsertPayment(ctx context.Context, p *models.Payment) error
	FindPaymentsByMember(ctx context.Context, memberID string) ([]*models.Payment, error)
	FindPaymentByID(ctx context.Context, id string) (*models.Payment, error)
	CountPaymentsByMember(ctx context.Context, memberID string) (int64, error)
}

// Store объединяет оба хранилища одного драйвера.
type Store interface {
	UserStore
	PaymentStore
	Close() error
}

var (
	_ Store = (*postgresql.Storage)(nil)
	_ Store = (*mongodb.Storage)(nil)
)

// Open подключается к хранилищу, выбранному в cfg.Driver. Для PostgreSQL
// при migrate=true применяются миграции.
func Open(ctx context.Context, cfg config.Storage, migrate bool, log *slog.Logger) (Store, error) {
	const op = "storage.Open"

	switch cfg.Driver {
	case config.DriverMongo:
		s, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("storage opened", slog.String("driver", cfg.Driver), slog.String("database", cfg.MongoDatabase))
		return s, nil
	case config.DriverPostgres, "":
		s, err := postgresql.New(ctx, cfg.StorageConnectionString)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if migrate {
			if err := migrations.Run(s.DB, cfg.MigrationsPath); err != nil {
				_ = s.Close()
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		log.Info("storage opened", slog.String("driver", config.DriverPostgres))
		return s, nil
	default:
		return nil, fmt.Errorf("%s: unknown driver %q", op, cfg.Driver)
	}
}
