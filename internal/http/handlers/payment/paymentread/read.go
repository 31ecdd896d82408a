// Package paymentread реализует HTTP-обработчик чтения платежа по идентификатору.
package paymentread

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// Service описывает чтение платежа.
type Service interface {
	GetPaymentByID(ctx context.Context, id string) (*models.Payment, error)
}

type Handler struct {
	log *slog.Logger
	svc Service
}

func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Платеж по идентификатору
// @Tags Payments
// @Produce  json
// @Param id path string true "Идентификатор платежа"
// @Success 200 {object} response.Response "Платеж"
// @Failure 404 {object} response.ErrorResponse "Платеж не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /payments/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	p, err := h.svc.GetPaymentByID(r.Context(), id)
	if err != nil {
		log.Error("failed to read payment", slog.String("payment_id", id), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(p))
}
