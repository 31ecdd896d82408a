package password

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	return m.Called(ctx, username, oldPassword, newPassword).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/users/alice/password", strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("username", "alice")
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestPasswordHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockErr        error
		callService    bool
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "changed",
			body:           `{"old_password":"secret1","new_password":"secret2"}`,
			callService:    true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "wrong old password",
			body:           `{"old_password":"secret1","new_password":"secret2"}`,
			mockErr:        models.ErrInvalidCredentials,
			callService:    true,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid credentials",
		},
		{
			name:           "unknown user",
			body:           `{"old_password":"secret1","new_password":"secret2"}`,
			mockErr:        models.ErrUserNotFound,
			callService:    true,
			wantStatusCode: http.StatusNotFound,
			wantError:      "user not found",
		},
		{
			name:           "short new password",
			body:           `{"old_password":"secret1","new_password":"x"}`,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field NewPassword must be at least 6 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.callService {
				svc.On("ChangePassword", mock.Anything, "alice", "secret1", "secret2").Return(tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rec, newRequest(tt.body))

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
			}
			svc.AssertExpectations(t)
		})
	}
}
