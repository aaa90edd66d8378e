package wallet

import (
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
	"github.com/adwallet/adwallet/internal/service/walletservice"
	"github.com/adwallet/adwallet/pkg/auth"
	"github.com/adwallet/adwallet/pkg/utils"
)

func NewMock(t *testing.T) (*WalletHandler, *MockService, *MockConfigService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	configService := NewMockConfigService(ctrl)
	handler := New(service, configService)
	defer ctrl.Finish()
	return handler, service, configService
}

func authRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), auth.UserIDKey, 1)
	return req.WithContext(ctx)
}

func TestClaimHandler(t *testing.T) {
	handler, service, configService := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful claim",
			prepareMock: func() {
				service.EXPECT().Claim(gomock.Any(), 1).Return(1.5, nil)
				configService.EXPECT().GetConfig(gomock.Any()).Return(&domain.SiteConfig{
					AdCreditAmount: 0.5,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Cooldown active",
			prepareMock: func() {
				service.EXPECT().Claim(gomock.Any(), 1).Return(0.0, walletservice.ErrCooldownActive)
			},
			expectedCode:  http.StatusTooManyRequests,
			expectedError: walletservice.ErrCooldownActive.Error(),
		},
		{
			name: "User not found",
			prepareMock: func() {
				service.EXPECT().Claim(gomock.Any(), 1).Return(0.0, walletservice.ErrUserNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: walletservice.ErrUserNotFound.Error(),
		},
		{
			name: "Internal error",
			prepareMock: func() {
				service.EXPECT().Claim(gomock.Any(), 1).Return(0.0, assert.AnError)
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authRequest("POST", "/api/user/claim")
			rr := httptest.NewRecorder()

			handler.Claim(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			} else {
				var resp dto.ClaimResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 1.5, resp.Balance)
				assert.Equal(t, 0.5, resp.Credit)
			}
		})
	}
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Balance returned",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 1).Return(2.5, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "User not found",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 1).Return(0.0, walletservice.ErrUserNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: walletservice.ErrUserNotFound.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authRequest("GET", "/api/user/balance")
			rr := httptest.NewRecorder()

			handler.GetBalance(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError == "" {
				var resp dto.BalanceResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 2.5, resp.Balance)
			}
		})
	}
}

func TestGetTransactionsHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	now := time.Now()
	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Transactions returned",
			prepareMock: func() {
				service.EXPECT().ListTransactions(gomock.Any(), 1).Return([]domain.Transaction{
					{ID: 2, UserID: 1, Type: domain.TxTypeWithdrawalPayout, Amount: 1.0, Status: domain.TxStatusCompleted, CreatedAt: now},
					{ID: 1, UserID: 1, Type: domain.TxTypeEarning, Amount: 0.5, Status: domain.TxStatusCompleted, CreatedAt: now.Add(-time.Minute)},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "No transactions",
			prepareMock: func() {
				service.EXPECT().ListTransactions(gomock.Any(), 1).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal error",
			prepareMock: func() {
				service.EXPECT().ListTransactions(gomock.Any(), 1).Return(nil, assert.AnError)
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authRequest("GET", "/api/user/transactions")
			rr := httptest.NewRecorder()

			handler.GetTransactions(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusOK {
				var resp []dto.TransactionResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, tt.expectedLen)
				assert.Equal(t, domain.TxTypeWithdrawalPayout, resp[0].Type)
			}
		})
	}
}

func TestGetAdsHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	service.EXPECT().ListAds(gomock.Any()).Return([]domain.Ad{
		{ID: 1, ImageURL: "https://placehold.co/600x400", AltText: "Ad 1", Hint: "advertisement"},
	}, nil)

	req := authRequest("GET", "/api/user/ads")
	rr := httptest.NewRecorder()

	handler.GetAds(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []dto.AdResponseDTO
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Ad 1", resp[0].AltText)
}

func TestGetSiteConfigHandler(t *testing.T) {
	handler, _, configService := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Config returned",
			prepareMock: func() {
				configService.EXPECT().GetConfig(gomock.Any()).Return(&domain.SiteConfig{
					WebsiteName:          "AdWallet",
					WithdrawalFee:        1,
					FeeTokenName:         "USDT",
					AdCreditAmount:       0.5,
					FeeDepositAddress:    "TXYZabcdef123456789",
					ClaimCooldownSeconds: 30,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Internal error",
			prepareMock: func() {
				configService.EXPECT().GetConfig(gomock.Any()).Return(nil, assert.AnError)
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authRequest("GET", "/api/user/config")
			rr := httptest.NewRecorder()

			handler.GetSiteConfig(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusOK {
				var resp dto.SiteConfigDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "AdWallet", resp.WebsiteName)
				assert.Equal(t, 30, resp.ClaimCooldownSeconds)
			}
		})
	}
}
