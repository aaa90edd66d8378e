package withdrawal

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/adwallet/adwallet/internal/domain"
	"github.com/adwallet/adwallet/internal/dto"
	"github.com/adwallet/adwallet/internal/service/withdrawalservice"
	"github.com/adwallet/adwallet/pkg/auth"
	"github.com/adwallet/adwallet/pkg/utils"
)

func NewMock(t *testing.T) (*WithdrawalHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	ctx := context.WithValue(req.Context(), auth.UserIDKey, 1)
	return req.WithContext(ctx)
}

func TestWithdrawHandler(t *testing.T) {
	handler, service := NewMock(t)

	now := time.Now()
	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful withdrawal request",
			body: `{"feeTxId":"0x9f86d081884c7d65"}`,
			prepareMock: func() {
				service.EXPECT().Request(gomock.Any(), 1, "0x9f86d081884c7d65").Return(&domain.WithdrawalRequest{
					ID:          1,
					UserID:      1,
					UserEmail:   "user@example.com",
					Amount:      1.5,
					FeePaid:     1,
					FeeTxID:     "0x9f86d081884c7d65",
					Status:      domain.WithdrawalStatusPending,
					RequestedAt: now,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Insufficient balance",
			body: `{"feeTxId":"0x9f86d081884c7d65"}`,
			prepareMock: func() {
				service.EXPECT().Request(gomock.Any(), 1, "0x9f86d081884c7d65").
					Return(nil, withdrawalservice.ErrInsufficientBalance)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: withdrawalservice.ErrInsufficientBalance.Error(),
		},
		{
			name: "Pending request already exists",
			body: `{"feeTxId":"0x9f86d081884c7d65"}`,
			prepareMock: func() {
				service.EXPECT().Request(gomock.Any(), 1, "0x9f86d081884c7d65").
					Return(nil, withdrawalservice.ErrPendingRequestExists)
			},
			expectedCode:  http.StatusConflict,
			expectedError: withdrawalservice.ErrPendingRequestExists.Error(),
		},
		{
			name:          "Invalid fee transaction id",
			body:          `{"feeTxId":"abc"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid fee transaction id",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name: "Internal error",
			body: `{"feeTxId":"0x9f86d081884c7d65"}`,
			prepareMock: func() {
				service.EXPECT().Request(gomock.Any(), 1, "0x9f86d081884c7d65").
					Return(nil, assert.AnError)
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authRequest("POST", "/api/user/withdrawals", tt.body)
			rr := httptest.NewRecorder()

			handler.Withdraw(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			} else {
				var resp dto.WithdrawalResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 1.5, resp.Amount)
				assert.Equal(t, domain.WithdrawalStatusPending, resp.Status)
			}
		})
	}
}

func TestGetWithdrawalsHandler(t *testing.T) {
	handler, service := NewMock(t)

	now := time.Now()
	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Withdrawals returned",
			prepareMock: func() {
				service.EXPECT().ListByUser(gomock.Any(), 1).Return([]domain.WithdrawalRequest{
					{ID: 2, UserID: 1, Amount: 2.0, Status: domain.WithdrawalStatusPending, RequestedAt: now},
					{ID: 1, UserID: 1, Amount: 1.0, Status: domain.WithdrawalStatusCompleted, RequestedAt: now.Add(-time.Hour), CompletedAt: &now},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "No withdrawals",
			prepareMock: func() {
				service.EXPECT().ListByUser(gomock.Any(), 1).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal error",
			prepareMock: func() {
				service.EXPECT().ListByUser(gomock.Any(), 1).Return(nil, assert.AnError)
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authRequest("GET", "/api/user/withdrawals", "")
			rr := httptest.NewRecorder()

			handler.GetWithdrawals(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusOK {
				var resp []dto.WithdrawalResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, tt.expectedLen)
				assert.NotNil(t, resp[1].CompletedAt)
			}
		})
	}
}
