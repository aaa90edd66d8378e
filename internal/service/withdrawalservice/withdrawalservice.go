package withdrawalservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/adwallet/adwallet/internal/domain"
	"github.com/adwallet/adwallet/internal/pg"
)

type UserRepo interface {
	FindByID(ctx context.Context, userID int) (*domain.User, error)
	DeductBalance(ctx context.Context, userID int, amount float64) (float64, error)
}

type WithdrawalRepo interface {
	Create(ctx context.Context, req *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error)
	GetByID(ctx context.Context, requestID int) (*domain.WithdrawalRequest, error)
	HasPending(ctx context.Context, userID int) (bool, error)
	ListByUserID(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error)
	ListAll(ctx context.Context) ([]domain.WithdrawalRequest, error)
	MarkCompleted(ctx context.Context, requestID int, completedAt time.Time) error
}

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
}

type ConfigRepo interface {
	Get(ctx context.Context) (*domain.SiteConfig, error)
}

var (
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrUserNotFound         = errors.New("user not found")
	ErrRequestNotFound      = errors.New("withdrawal request not found")
	ErrAlreadyCompleted     = errors.New("withdrawal request already completed")
	ErrPendingRequestExists = errors.New("a pending withdrawal request already exists")
)

type Service struct {
	userRepo        UserRepo
	withdrawalRepo  WithdrawalRepo
	transactionRepo TransactionRepo
	configRepo      ConfigRepo
	txManager       pg.TXManager
}

func New(userRepo UserRepo, withdrawalRepo WithdrawalRepo, transactionRepo TransactionRepo, configRepo ConfigRepo, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:        userRepo,
		withdrawalRepo:  withdrawalRepo,
		transactionRepo: transactionRepo,
		configRepo:      configRepo,
		txManager:       txManager,
	}
}

// Request snapshots the user's whole balance and the configured fee into a
// pending withdrawal request. The fee tx id is the user-supplied proof of the
// fee payment; it is stored as given and verified out of band.
func (s *Service) Request(ctx context.Context, userID int, feeTxID string) (*domain.WithdrawalRequest, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get user", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Balance <= 0 {
		return nil, ErrInsufficientBalance
	}

	pending, err := s.withdrawalRepo.HasPending(ctx, userID)
	if err != nil {
		zap.L().Error("failed to check pending requests", zap.Error(err))
		return nil, err
	}
	if pending {
		return nil, ErrPendingRequestExists
	}

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		zap.L().Error("failed to get site config", zap.Error(err))
		return nil, err
	}

	request := &domain.WithdrawalRequest{
		UserID:      userID,
		UserEmail:   user.Email,
		Amount:      user.Balance,
		FeePaid:     cfg.WithdrawalFee,
		FeeTxID:     feeTxID,
		Status:      domain.WithdrawalStatusPending,
		RequestedAt: time.Now(),
	}
	request, err = s.withdrawalRepo.Create(ctx, request)
	if err != nil {
		zap.L().Error("failed to create withdrawal request", zap.Error(err))
		return nil, err
	}

	zap.L().Info("withdrawal requested",
		zap.Int("userID", userID),
		zap.Float64("amount", request.Amount))
	return request, nil
}

// Complete transitions a pending request to completed: the requested amount
// is deducted from the user's balance (floored at zero, so credits earned
// after the request survive a larger historical balance snapshot), the
// request is stamped and a payout transaction for the snapshot amount is
// appended, all in one transaction.
func (s *Service) Complete(ctx context.Context, requestID int) (*domain.WithdrawalRequest, error) {
	request, err := s.withdrawalRepo.GetByID(ctx, requestID)
	if err != nil {
		zap.L().Error("failed to get withdrawal request", zap.Error(err))
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if request.Status == domain.WithdrawalStatusCompleted {
		return nil, ErrAlreadyCompleted
	}

	user, err := s.userRepo.FindByID(ctx, request.UserID)
	if err != nil {
		zap.L().Error("failed to get user", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	completedAt := time.Now()
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.DeductBalance(ctx, request.UserID, request.Amount); err != nil {
			return err
		}
		if err := s.withdrawalRepo.MarkCompleted(ctx, request.ID, completedAt); err != nil {
			return err
		}
		_, err := s.transactionRepo.Create(ctx, &domain.Transaction{
			UserID:      request.UserID,
			Type:        domain.TxTypeWithdrawalPayout,
			Amount:      request.Amount,
			Status:      domain.TxStatusCompleted,
			Description: fmt.Sprintf("Withdrawal of $%.2f completed.", request.Amount),
			CreatedAt:   completedAt,
		})
		return err
	})
	if err != nil {
		zap.L().Error("failed to complete withdrawal", zap.Error(err))
		return nil, err
	}

	request.Status = domain.WithdrawalStatusCompleted
	request.CompletedAt = &completedAt

	zap.L().Info("withdrawal completed",
		zap.Int("requestID", request.ID),
		zap.Float64("amount", request.Amount))
	return request, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error) {
	requests, err := s.withdrawalRepo.ListByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal requests", zap.Error(err))
		return nil, err
	}
	return requests, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	requests, err := s.withdrawalRepo.ListAll(ctx)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal requests", zap.Error(err))
		return nil, err
	}
	return requests, nil
}
