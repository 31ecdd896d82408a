// Package logout реализует HTTP-обработчик выхода пользователя.
package logout

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
)

// Request — имя пользователя, завершающего работу.
type Request struct {
	Username string `json:"username" validate:"required"`
}

// Service описывает выход пользователя.
type Service interface {
	Logout(ctx context.Context, username string) error
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
// @Summary Выход пользователя
// @Description Подтверждает выход. Сессии и токены не используются.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Имя пользователя"
// @Success 200 {object} response.Response "Выход выполнен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	if err := h.svc.Logout(r.Context(), req.Username); err != nil {
		log.Error("logout failed", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(map[string]string{
		"username": req.Username,
		"message":  "logged out",
	}))
}
