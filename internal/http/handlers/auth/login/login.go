// Package login реализует HTTP-обработчик входа пользователя.
//
// Если в запросе указана роль, дополнительно проверяется, что пользователь
// зарегистрирован именно с ней. Ошибка входа не раскрывает, существует ли
// пользователь.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// Request — учетные данные. Role необязательна.
type Request struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=member trainer receptionist physiotherapist"`
}

// Service описывает проверку учетных данных.
type Service interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	LoginAs(ctx context.Context, username, password, expectedRole string) (*models.User, error)
}

// Handler обрабатывает запросы входа.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	svc      Service             // Сервис учетных записей
	validate *validator.Validate // Валидатор входных данных
}

// New создает Handler и инициализирует валидатор.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{
		log:      log,
		svc:      svc,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет имя и пароль, при указании роли также сверяет роль.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	var (
		user *models.User
		err  error
	)
	if req.Role != "" {
		user, err = h.svc.LoginAs(r.Context(), req.Username, req.Password, req.Role)
	} else {
		user, err = h.svc.Login(r.Context(), req.Username, req.Password)
	}
	if err != nil {
		log.Warn("login failed", slog.String("username", req.Username), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("login success", slog.String("username", user.Username), slog.String("role", string(user.Role)))
	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(user))
}
