// Package metrics содержит Prometheus-метрики сервиса: платежи, регистрации
// и HTTP-запросы.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics хранит зарегистрированные коллекторы.
type Metrics struct {
	registry prometheus.Gatherer

	paymentsTotal   *prometheus.CounterVec
	paymentsAmount  *prometheus.CounterVec
	signupsTotal    *prometheus.CounterVec
	loginsTotal     *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New регистрирует метрики в отдельном реестре. Вместе с ними регистрируются
// стандартные коллекторы процесса и Go runtime.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)

	m := &Metrics{
		registry: reg,
		paymentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_payments_total",
			Help: "Количество проведенных платежей по способу и статусу",
		}, []string{"method", "status"}),
		paymentsAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_payments_amount_total",
			Help: "Сумма успешных платежей по валюте",
		}, []string{"currency"}),
		signupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_signups_total",
			Help: "Количество регистраций по роли",
		}, []string{"role"}),
		loginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_logins_total",
			Help: "Попытки входа по результату",
		}, []string{"result"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_http_requests_total",
			Help: "Количество HTTP-запросов",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gym_http_request_duration_seconds",
			Help:    "Длительность обработки HTTP-запросов",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.paymentsTotal,
		m.paymentsAmount,
		m.signupsTotal,
		m.loginsTotal,
		m.requestsTotal,
		m.requestDuration,
	)
	return m
}

// PaymentProcessed учитывает платеж. Сумма добавляется только для успешных.
func (m *Metrics) PaymentProcessed(method, status, currency string, amount float64) {
	m.paymentsTotal.WithLabelValues(method, status).Inc()
	if status == "SUCCESS" {
		m.paymentsAmount.WithLabelValues(currency).Add(amount)
	}
}

func (m *Metrics) UserSignedUp(role string) {
	m.signupsTotal.WithLabelValues(role).Inc()
}

// LoginAttempt учитывает попытку входа: ok или failed.
func (m *Metrics) LoginAttempt(ok bool) {
	result := "failed"
	if ok {
		result = "ok"
	}
	m.loginsTotal.WithLabelValues(result).Inc()
}

// Handler отдает метрики для /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware считает запросы по шаблону маршрута chi.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
