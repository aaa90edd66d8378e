package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adwallet/adwallet/internal/domain"
	"github.com/adwallet/adwallet/internal/dto"
	"github.com/adwallet/adwallet/internal/service/authservice"
	"github.com/adwallet/adwallet/internal/service/withdrawalservice"
	"github.com/adwallet/adwallet/pkg/utils"
)

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetUserRole(ctx context.Context, userID int, role string) (*domain.User, error)
}

type WithdrawalService interface {
	ListAll(ctx context.Context) ([]domain.WithdrawalRequest, error)
	Complete(ctx context.Context, requestID int) (*domain.WithdrawalRequest, error)
}

type ConfigService interface {
	UpdateConfig(ctx context.Context, patch *domain.SiteConfigPatch) (*domain.SiteConfig, error)
}

type AdminHandler struct {
	userService       UserService
	withdrawalService WithdrawalService
	configService     ConfigService
}

func New(userService UserService, withdrawalService WithdrawalService, configService ConfigService) *AdminHandler {
	return &AdminHandler{
		userService:       userService,
		withdrawalService: withdrawalService,
		configService:     configService,
	}
}

// ListUsers godoc
//
//	@Summary		List all users
//	@Description	Admin only. List every registered profile.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.UserResponseDTO	"Users"
//	@Failure		401	{object}	utils.Response		"User not authorized"
//	@Failure		403	{object}	utils.Response		"Caller is not an admin"
//	@Failure		500	{object}	utils.Response		"Internal server error"
//	@Router			/api/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	response := make([]dto.UserResponseDTO, len(users))
	for i, u := range users {
		response[i] = dto.UserResponseDTO{
			ID:        u.ID,
			Email:     u.Email,
			Balance:   u.Balance,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// SetUserRole godoc
//
//	@Summary		Change a user's role
//	@Description	Admin only. Set the user's role to "user" or "admin".
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"User id"
//	@Param			request	body		dto.UpdateRoleRequestDTO	true	"New role"
//	@Success		200		{object}	dto.UserResponseDTO		"Updated user"
//	@Failure		400		{object}	utils.Response			"Invalid user id or request body"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		403		{object}	utils.Response			"Caller is not an admin"
//	@Failure		404		{object}	utils.Response			"User not found"
//	@Failure		422		{object}	utils.Response			"Unknown role"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/users/{id}/role [patch]
func (h *AdminHandler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req dto.UpdateRoleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.SetUserRole(r.Context(), userID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrInvalidRole):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, authservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.UserResponseDTO{
		ID:        user.ID,
		Email:     user.Email,
		Balance:   user.Balance,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

// ListWithdrawals godoc
//
//	@Summary		List all withdrawal requests
//	@Description	Admin only. List every withdrawal request, newest first.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO	"Withdrawal requests"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		403	{object}	utils.Response				"Caller is not an admin"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/withdrawals [get]
func (h *AdminHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	requests, err := h.withdrawalService.ListAll(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(requests))
	for i, req := range requests {
		response[i] = dto.WithdrawalResponseDTO{
			ID:          req.ID,
			UserEmail:   req.UserEmail,
			Amount:      req.Amount,
			FeePaid:     req.FeePaid,
			FeeTxID:     req.FeeTxID,
			FeeVerified: req.FeeVerified,
			Status:      req.Status,
			RequestedAt: req.RequestedAt,
			CompletedAt: req.CompletedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// CompleteWithdrawal godoc
//
//	@Summary		Complete a withdrawal request
//	@Description	Admin only. Deduct the requested amount from the user's balance, mark the request completed and append a payout transaction.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int							true	"Withdrawal request id"
//	@Success		200	{object}	dto.WithdrawalResponseDTO	"Completed request"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		403	{object}	utils.Response				"Caller is not an admin"
//	@Failure		404	{object}	utils.Response				"Request or user not found"
//	@Failure		409	{object}	utils.Response				"Request already completed"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/withdrawals/{id}/complete [post]
func (h *AdminHandler) CompleteWithdrawal(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	request, err := h.withdrawalService.Complete(r.Context(), requestID)
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrRequestNotFound),
			errors.Is(err, withdrawalservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, withdrawalservice.ErrAlreadyCompleted):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawalResponseDTO{
		ID:          request.ID,
		UserEmail:   request.UserEmail,
		Amount:      request.Amount,
		FeePaid:     request.FeePaid,
		FeeTxID:     request.FeeTxID,
		FeeVerified: request.FeeVerified,
		Status:      request.Status,
		RequestedAt: request.RequestedAt,
		CompletedAt: request.CompletedAt,
	})
}

// UpdateConfig godoc
//
//	@Summary		Update site configuration
//	@Description	Admin only. Partial merge-write of the site configuration; omitted fields keep their stored values.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.UpdateConfigRequestDTO	true	"Fields to update"
//	@Success		200		{object}	dto.SiteConfigDTO			"Updated configuration"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		403		{object}	utils.Response				"Caller is not an admin"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/config [patch]
func (h *AdminHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateConfigRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := h.configService.UpdateConfig(r.Context(), &domain.SiteConfigPatch{
		WebsiteName:          req.WebsiteName,
		WithdrawalFee:        req.WithdrawalFee,
		FeeTokenName:         req.FeeTokenName,
		AdCreditAmount:       req.AdCreditAmount,
		FeeDepositAddress:    req.FeeDepositAddress,
		ClaimCooldownSeconds: req.ClaimCooldownSeconds,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update site config")
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
