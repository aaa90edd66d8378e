package withdrawal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adwallet/adwallet/internal/domain"
	"github.com/adwallet/adwallet/internal/dto"
	"github.com/adwallet/adwallet/internal/service/withdrawalservice"
	"github.com/adwallet/adwallet/pkg/auth"
	"github.com/adwallet/adwallet/pkg/utils"
	"github.com/adwallet/adwallet/pkg/validate"
)

type Service interface {
	Request(ctx context.Context, userID int, feeTxID string) (*domain.WithdrawalRequest, error)
	ListByUser(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error)
}

type WithdrawalHandler struct {
	withdrawalService Service
}

func New(withdrawalService Service) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// Withdraw godoc
//
//	@Summary		Request a withdrawal
//	@Description	Snapshot the current balance into a pending withdrawal request with the supplied fee-payment proof.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{object}	dto.WithdrawalResponseDTO	"Created request"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		402		{object}	utils.Response				"Insufficient balance"
//	@Failure		409		{object}	utils.Response				"Pending request already exists"
//	@Failure		422		{object}	utils.Response				"Invalid fee transaction id"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/user/withdrawals [post]
func (h *WithdrawalHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !validate.IsFeeTxID(req.FeeTxID) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid fee transaction id")
		return
	}

	request, err := h.withdrawalService.Request(r.Context(), userID, req.FeeTxID)
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, withdrawalservice.ErrPendingRequestExists):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponseDTO(request))
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawal history
//	@Description	Get the authenticated user's withdrawal requests, newest first.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO	"Withdrawal requests"
//	@Success		204	{object}	utils.Response				"No withdrawal requests"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *WithdrawalHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	requests, err := h.withdrawalService.ListByUser(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}

	if len(requests) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawals not found")
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(requests))
	for i, req := range requests {
		response[i] = toResponseDTO(&req)
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toResponseDTO(req *domain.WithdrawalRequest) dto.WithdrawalResponseDTO {
	return dto.WithdrawalResponseDTO{
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
