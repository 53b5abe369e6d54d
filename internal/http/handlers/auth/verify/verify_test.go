package verify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bookvault/bookvault/internal/http/middlewarectx"
	"github.com/bookvault/bookvault/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) VerifyUser(ctx context.Context, userID int64) (*models.PublicUser, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.PublicUser)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		userID         any
		mockSetup      func(m *ServiceMock)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "valid session",
			userID: int64(7),
			mockSetup: func(m *ServiceMock) {
				m.On("VerifyUser", mock.Anything, int64(7)).Return(&models.PublicUser{
					ID:       7,
					Username: "reader",
					Email:    "reader@example.com",
					Role:     models.RoleUser,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"reader"`,
		},
		{
			name:           "no user in context",
			userID:         nil,
			mockSetup:      func(m *ServiceMock) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "access token required",
		},
		{
			name:   "user behind the token was deleted",
			userID: int64(404),
			mockSetup: func(m *ServiceMock) {
				m.On("VerifyUser", mock.Anything, int64(404)).
					Return(nil, models.ErrUserNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "user not found",
		},
		{
			name:   "storage failure",
			userID: int64(7),
			mockSetup: func(m *ServiceMock) {
				m.On("VerifyUser", mock.Anything, int64(7)).
					Return(nil, errors.New("connection refused")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.mockSetup(service)

			handler := New(newNoopLogger(), service)

			req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
			if tt.userID != nil {
				ctx := context.WithValue(req.Context(), middlewarectx.UserID, tt.userID)
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			service.AssertExpectations(t)
		})
	}
}
