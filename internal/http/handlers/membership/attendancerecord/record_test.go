package attendancerecord

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) RecordAttendance(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}

func newRequest(username string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/members/"+username+"/attendance", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("username", username)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestRecordHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	t.Run("recorded", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("RecordAttendance", mock.Anything, "alice").Return(7, nil).Once()

		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, newRequest("alice"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"OK","data":{"username":"alice","attendance":7}}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("unknown member", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("RecordAttendance", mock.Anything, "ghost").Return(0, models.ErrUserNotFound).Once()

		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, newRequest("ghost"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"status":"Error","error":"user not found"}`, rec.Body.String())
	})
}
