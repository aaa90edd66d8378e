package wallet

import (
	"context"
	"errors"
	"net/http"

	"github.com/adwallet/adwallet/internal/domain"
	"github.com/adwallet/adwallet/internal/dto"
	"github.com/adwallet/adwallet/internal/service/walletservice"
	"github.com/adwallet/adwallet/pkg/auth"
	"github.com/adwallet/adwallet/pkg/utils"
)

type Service interface {
	Claim(ctx context.Context, userID int) (float64, error)
	GetBalance(ctx context.Context, userID int) (float64, error)
	ListTransactions(ctx context.Context, userID int) ([]domain.Transaction, error)
	ListAds(ctx context.Context) ([]domain.Ad, error)
}

type ConfigService interface {
	GetConfig(ctx context.Context) (*domain.SiteConfig, error)
}

type WalletHandler struct {
	walletService Service
	configService ConfigService
}

func New(walletService Service, configService ConfigService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		configService: configService,
	}
}

// Claim godoc
//
//	@Summary		Claim a token credit
//	@Description	Credit the configured amount for one simulated ad view and append an earning transaction.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ClaimResponseDTO	"New balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"User not found"
//	@Failure		429	{object}	utils.Response			"Claim cooldown active"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/claim [post]
func (h *WalletHandler) Claim(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.walletService.Claim(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, walletservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, walletservice.ErrCooldownActive):
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	cfg, err := h.configService.GetConfig(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ClaimResponseDTO{
		Balance: balance,
		Credit:  cfg.AdCreditAmount,
	})
}

// GetBalance godoc
//
//	@Summary		Get current balance
//	@Description	Retrieve the current balance for the authenticated user.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"User not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.walletService.GetBalance(r.Context(), userID)
	if err != nil {
		if errors.Is(err, walletservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Balance: balance,
	})
}

// GetTransactions godoc
//
//	@Summary		Get transaction history
//	@Description	Get the authenticated user's transactions, newest first.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TransactionResponseDTO	"Transaction history"
//	@Success		204	{object}	utils.Response				"No transactions"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/user/transactions [get]
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	transactions, err := h.walletService.ListTransactions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	if len(transactions) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Transactions not found")
		return
	}

	response := make([]dto.TransactionResponseDTO, len(transactions))
	for i, tx := range transactions {
		response[i] = dto.TransactionResponseDTO{
			ID:          tx.ID,
			Type:        tx.Type,
			Amount:      tx.Amount,
			Status:      tx.Status,
			Description: tx.Description,
			Timestamp:   tx.CreatedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetAds godoc
//
//	@Summary		Get the ad catalog
//	@Description	List the ads available for claiming.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.AdResponseDTO	"Ad catalog"
//	@Failure		401	{object}	utils.Response		"User not authorized"
//	@Failure		500	{object}	utils.Response		"Internal server error"
//	@Router			/api/user/ads [get]
func (h *WalletHandler) GetAds(w http.ResponseWriter, r *http.Request) {
	ads, err := h.walletService.ListAds(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ads")
		return
	}

	response := make([]dto.AdResponseDTO, len(ads))
	for i, ad := range ads {
		response[i] = dto.AdResponseDTO{
			ID:       ad.ID,
			ImageURL: ad.ImageURL,
			AltText:  ad.AltText,
			Hint:     ad.Hint,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetSiteConfig godoc
//
//	@Summary		Get site configuration
//	@Description	Retrieve the site configuration (fee, credit amount, deposit address, cooldown).
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.SiteConfigDTO	"Site configuration"
//	@Failure		401	{object}	utils.Response		"User not authorized"
//	@Failure		500	{object}	utils.Response		"Internal server error"
//	@Router			/api/user/config [get]
func (h *WalletHandler) GetSiteConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configService.GetConfig(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch site config")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.SiteConfigDTO{
		WebsiteName:          cfg.WebsiteName,
		WithdrawalFee:        cfg.WithdrawalFee,
		FeeTokenName:         cfg.FeeTokenName,
		AdCreditAmount:       cfg.AdCreditAmount,
		FeeDepositAddress:    cfg.FeeDepositAddress,
		ClaimCooldownSeconds: cfg.ClaimCooldownSeconds,
	})
}
