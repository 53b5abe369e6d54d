package register

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bookvault/bookvault/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, username, email, password, role string) (string, *models.PublicUser, error) {
	args := m.Called(ctx, username, email, password, role)
	user, _ := args.Get(1).(*models.PublicUser)
	return args.String(0), user, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *ServiceMock)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "successful registration",
			requestBody: `{"username":"reader","email":"reader@example.com","password":"password123"}`,
			mockSetup: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "reader", "reader@example.com", "password123", "").
					Return("jwt-token", &models.PublicUser{
						ID:       5,
						Username: "reader",
						Email:    "reader@example.com",
						Role:     models.RoleUser,
					}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"token":"jwt-token"`,
		},
		{
			name:        "explicit admin role",
			requestBody: `{"username":"boss","email":"boss@example.com","password":"password123","role":"admin"}`,
			mockSetup: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "boss", "boss@example.com", "password123", "admin").
					Return("jwt-token", &models.PublicUser{
						ID:       1,
						Username: "boss",
						Role:     models.RoleAdmin,
					}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"role":"admin"`,
		},
		{
			name:           "invalid json",
			requestBody:    `{"username":`,
			mockSetup:      func(m *ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "missing password",
			requestBody:    `{"username":"reader","email":"reader@example.com"}`,
			mockSetup:      func(m *ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field Password is a required field",
		},
		{
			name:           "short password",
			requestBody:    `{"username":"reader","email":"reader@example.com","password":"12345"}`,
			mockSetup:      func(m *ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field Password is shorter than minimum length",
		},
		{
			name:           "malformed email",
			requestBody:    `{"username":"reader","email":"not-an-email","password":"password123"}`,
			mockSetup:      func(m *ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field Email must be a valid email address",
		},
		{
			name:           "unknown role",
			requestBody:    `{"username":"reader","email":"reader@example.com","password":"password123","role":"superuser"}`,
			mockSetup:      func(m *ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field Role has an unsupported value",
		},
		{
			name:        "duplicate user",
			requestBody: `{"username":"reader","email":"reader@example.com","password":"password123"}`,
			mockSetup: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "reader", "reader@example.com", "password123", "").
					Return("", nil, models.ErrUserExists).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "user already exists",
		},
		{
			name:        "storage failure",
			requestBody: `{"username":"reader","email":"reader@example.com","password":"password123"}`,
			mockSetup: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "reader", "reader@example.com", "password123", "").
					Return("", nil, errors.New("connection refused")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "failed to register user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.mockSetup(service)

			handler := New(newNoopLogger(), service)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
				bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			assert.NotContains(t, rr.Body.String(), "password_hash")
			service.AssertExpectations(t)
		})
	}
}
