package add

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

	"github.com/bookvault/bookvault/internal/http/middlewarectx"
	"github.com/bookvault/bookvault/internal/models"
	"github.com/bookvault/bookvault/internal/services/cart"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Add(ctx context.Context, userID, bookID int64, quantity int) (*cart.AddResult, error) {
	args := m.Called(ctx, userID, bookID, quantity)
	result, _ := args.Get(0).(*cart.AddResult)
	return result, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		userID         any
		mockSetup      func(m *ServiceMock)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "new line created",
			requestBody: `{"book_id":10,"quantity":2}`,
			userID:      int64(1),
			mockSetup: func(m *ServiceMock) {
				m.On("Add", mock.Anything, int64(1), int64(10), 2).
					Return(&cart.AddResult{LineID: 100, Quantity: 2, Merged: false}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"merged":false`,
		},
		{
			name:        "duplicate merged into existing line",
			requestBody: `{"book_id":10,"quantity":2}`,
			userID:      int64(1),
			mockSetup: func(m *ServiceMock) {
				m.On("Add", mock.Anything, int64(1), int64(10), 2).
					Return(&cart.AddResult{LineID: 100, Quantity: 4, Merged: true}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"merged":true`,
		},
		{
			name:        "quantity defaults to one",
			requestBody: `{"book_id":10}`,
			userID:      int64(1),
			mockSetup: func(m *ServiceMock) {
				m.On("Add", mock.Anything, int64(1), int64(10), 1).
					Return(&cart.AddResult{LineID: 100, Quantity: 1, Merged: false}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"quantity":1`,
		},
		{
			name:           "invalid json",
			requestBody:    `{"book_id":`,
			userID:         int64(1),
			mockSetup:      func(m *ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "missing book id",
			requestBody:    `{"quantity":2}`,
			userID:         int64(1),
			mockSetup:      func(m *ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field BookID is a required field",
		},
		{
			name:           "zero and negative quantity rejected",
			requestBody:    `{"book_id":10,"quantity":-1}`,
			userID:         int64(1),
			mockSetup:      func(m *ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field Quantity is out of range",
		},
		{
			name:           "no user in context",
			requestBody:    `{"book_id":10,"quantity":2}`,
			userID:         nil,
			mockSetup:      func(m *ServiceMock) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "access token required",
		},
		{
			name:        "unknown book",
			requestBody: `{"book_id":999,"quantity":1}`,
			userID:      int64(1),
			mockSetup: func(m *ServiceMock) {
				m.On("Add", mock.Anything, int64(1), int64(999), 1).
					Return(nil, models.ErrBookNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "book not found",
		},
		{
			name:        "insufficient stock",
			requestBody: `{"book_id":10,"quantity":5}`,
			userID:      int64(1),
			mockSetup: func(m *ServiceMock) {
				m.On("Add", mock.Anything, int64(1), int64(10), 5).
					Return(nil, models.ErrInsufficientStock).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "insufficient stock for requested quantity",
		},
		{
			name:        "storage failure",
			requestBody: `{"book_id":10,"quantity":1}`,
			userID:      int64(1),
			mockSetup: func(m *ServiceMock) {
				m.On("Add", mock.Anything, int64(1), int64(10), 1).
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

			req := httptest.NewRequest(http.MethodPost, "/api/cart",
				bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
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
