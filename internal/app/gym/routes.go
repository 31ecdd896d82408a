// Package gym собирает HTTP-приложение клуба: хранилище, кеш, события,
// сервисы и маршруты.
package gym

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/gym-management/internal/config"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/membership/attendanceread"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/membership/attendancerecord"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/membership/membershipcancel"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/membership/membershiprenew"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/payment/paymentlist"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/payment/paymentread"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/payment/paymentsummary"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/profile/password"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/profile/read"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/profile/reset"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/gym-management/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-management/internal/metrics"
	"github.com/magabrotheeeer/gym-management/internal/services/identity"
	"github.com/magabrotheeeer/gym-management/internal/services/member"
	"github.com/magabrotheeeer/gym-management/internal/services/payment"
)

// Services — сервисы, которые обслуживают маршруты.
type Services struct {
	Identity *identity.Service
	Members  *member.Service
	Payments *payment.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, m *metrics.Metrics, limit config.RateLimit) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)
	if m != nil {
		r.Use(m.Middleware)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/signup", signup.New(logger, svc.Identity).ServeHTTP)
		r.With(middlewarectx.RateLimitMiddleware(logger, limit.RPS, limit.Burst)).
			Post("/login", login.New(logger, svc.Identity).ServeHTTP)
		r.Post("/logout", logout.New(logger, svc.Identity).ServeHTTP)

		r.Route("/users/{username}", func(r chi.Router) {
			r.Get("/", read.New(logger, svc.Identity).ServeHTTP)
			r.Patch("/", update.New(logger, svc.Identity).ServeHTTP)
			r.Post("/password", password.New(logger, svc.Identity).ServeHTTP)
			r.Post("/password/reset", reset.New(logger, svc.Identity).ServeHTTP)
		})

		r.Route("/members/{username}", func(r chi.Router) {
			r.Route("/payments", func(r chi.Router) {
				r.Post("/", paymentcreate.New(logger, svc.Members).ServeHTTP)
				r.Get("/", paymentlist.New(logger, svc.Members).ServeHTTP)
				r.Get("/summary", paymentsummary.New(logger, svc.Members).ServeHTTP)
			})
			r.Put("/membership", membershiprenew.New(logger, svc.Members).ServeHTTP)
			r.Post("/membership/cancel", membershipcancel.New(logger, svc.Members).ServeHTTP)
			r.Post("/attendance", attendancerecord.New(logger, svc.Members).ServeHTTP)
			r.Get("/attendance", attendanceread.New(logger, svc.Members).ServeHTTP)
		})

		r.Get("/payments/{id}", paymentread.New(logger, svc.Payments).ServeHTTP)
	})

	if m != nil {
		r.Handle("/metrics", m.Handler())
	}
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
