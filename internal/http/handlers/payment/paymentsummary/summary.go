// Package paymentsummary реализует HTTP-обработчик сводки по платежам участника.
package paymentsummary

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/services/member"
)

// Service описывает расчет сводки.
type Service interface {
	Summary(ctx context.Context, username string) (*member.Summary, error)
}

type Handler struct {
	log *slog.Logger
	svc Service
}

func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Сводка по платежам
// @Description Количество всех платежей участника и сумма успешных.
// @Tags Payments
// @Produce  json
// @Param username path string true "Имя участника"
// @Success 200 {object} response.Response "Сводка"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /members/{username}/payments/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	summary, err := h.svc.Summary(r.Context(), username)
	if err != nil {
		log.Error("failed to build summary", slog.String("username", username), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(summary))
}
