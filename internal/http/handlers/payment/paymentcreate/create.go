// Package paymentcreate реализует HTTP-обработчик проведения платежа участником.
//
// Плательщик определяется по имени из пути, поле member_id в теле не принимается.
// Стратегия расчета выбирается по способу оплаты. Неуспешный платеж тоже
// сохраняется и возвращается со статусом FAILED.
package paymentcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// Request — параметры платежа.
// Provider нужен для online, ReferenceNumber для wallet.
type Request struct {
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	Method          string  `json:"method" validate:"required"`
	InvoiceID       string  `json:"invoice_id,omitempty" validate:"max=64"`
	Provider        string  `json:"provider,omitempty" validate:"max=64"`
	ReferenceNumber string  `json:"reference_number,omitempty" validate:"max=64"`
}

// Service описывает проведение платежа от имени участника.
type Service interface {
	MakePayment(ctx context.Context, username string, req models.PaymentRequest) (*models.Payment, error)
}

type Handler struct {
	log      *slog.Logger
	svc      Service
	validate *validator.Validate
}

func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{
		log:      log,
		svc:      svc,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Проведение платежа
// @Description Проводит платеж участника выбранным способом: card, wallet, cash, online.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param username path string true "Имя участника"
// @Param request body Request true "Параметры платежа"
// @Success 201 {object} response.Response "Сохраненный платеж"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные платежа"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /members/{username}/payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		response.JSON(w, r, http.StatusUnprocessableEntity, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	p, err := h.svc.MakePayment(r.Context(), username, models.PaymentRequest{
		InvoiceID:       req.InvoiceID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Method:          req.Method,
		Provider:        req.Provider,
		ReferenceNumber: req.ReferenceNumber,
	})
	if err != nil {
		log.Error("payment failed", slog.String("username", username), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("payment stored",
		slog.String("payment_id", p.ID),
		slog.String("status", string(p.Status)),
	)
	response.JSON(w, r, http.StatusCreated, response.StatusOKWithData(p))
}
