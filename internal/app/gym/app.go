package gym

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/gym-management/internal/cache"
	"github.com/magabrotheeeer/gym-management/internal/config"
	"github.com/magabrotheeeer/gym-management/internal/lib/password"
	"github.com/magabrotheeeer/gym-management/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/metrics"
	"github.com/magabrotheeeer/gym-management/internal/services/identity"
	"github.com/magabrotheeeer/gym-management/internal/services/member"
	"github.com/magabrotheeeer/gym-management/internal/services/payment"
	"github.com/magabrotheeeer/gym-management/internal/storage"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server    *http.Server
	logger    *slog.Logger
	store     storage.Store
	cache     cache.Store
	amqpConn  *amqp.Connection
	publisher *rabbitmq.Publisher
}

// New поднимает зависимости приложения. RabbitMQ подключается только при
// заданном URL, без него события о платежах не публикуются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := storage.Open(ctx, cfg.Storage, true, logger)
	if err != nil {
		return nil, err
	}

	readCache, err := cache.New(ctx, cfg.RedisConnection, cfg.CacheTTL, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	app := &App{
		logger: logger,
		store:  store,
		cache:  readCache,
	}

	var events payment.Publisher
	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
		if err != nil {
			app.closeResources()
			return nil, err
		}
		app.amqpConn = conn

		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.PaymentsExchange, rabbitmq.PaymentQueues())
		if err != nil {
			app.closeResources()
			return nil, err
		}
		app.publisher = rabbitmq.NewPublisher(ch, rabbitmq.PaymentsExchange)
		events = app.publisher
		logger.Info("payment events enabled", slog.String("exchange", rabbitmq.PaymentsExchange))
	} else {
		logger.Info("rabbitmq url is empty, payment events disabled")
	}

	m := metrics.New()

	identityService := identity.New(store, password.NewHasher(cfg.BcryptCost), m, cfg.DefaultPassword, logger)
	paymentService := payment.New(store, readCache, events, m, payment.Settings{
		DefaultCurrency: cfg.DefaultCurrency,
		CacheTTL:        cfg.CacheTTL,
	}, logger)
	identityService.OnRename(paymentService)
	memberService := member.New(store, paymentService, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Identity: identityService,
		Members:  memberService,
		Payments: paymentService,
	}, m, cfg.RateLimit)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeResources()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeResources()
		return err
	}
}

func (a *App) closeResources() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close cache", sl.Err(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("failed to close storage", sl.Err(err))
		}
	}
}
