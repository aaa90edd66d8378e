package walletservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/adwallet/adwallet/internal/domain"
	"github.com/adwallet/adwallet/internal/pg"
)

type UserRepo interface {
	FindByID(ctx context.Context, userID int) (*domain.User, error)
	LockByID(ctx context.Context, userID int) (*domain.User, error)
	AddToBalance(ctx context.Context, userID int, amount float64) (float64, error)
}

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	ListByUserID(ctx context.Context, userID int) ([]domain.Transaction, error)
	LastEarningAt(ctx context.Context, userID int) (*time.Time, error)
}

type ConfigRepo interface {
	Get(ctx context.Context) (*domain.SiteConfig, error)
}

type AdRepo interface {
	List(ctx context.Context) ([]domain.Ad, error)
}

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrCooldownActive = errors.New("claim cooldown is still active")
)

type Service struct {
	userRepo        UserRepo
	transactionRepo TransactionRepo
	configRepo      ConfigRepo
	adRepo          AdRepo
	txManager       pg.TXManager
}

func New(userRepo UserRepo, transactionRepo TransactionRepo, configRepo ConfigRepo, adRepo AdRepo, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		configRepo:      configRepo,
		adRepo:          adRepo,
		txManager:       txManager,
	}
}

// Claim credits the configured amount for one ad view. The cooldown check,
// the balance increment and the earning record commit as one transaction: the
// user row is locked first, so two concurrent claims inside the cooldown
// window cannot both pass the check and append an earning.
func (s *Service) Claim(ctx context.Context, userID int) (float64, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		zap.L().Error("failed to get site config", zap.Error(err))
		return 0, err
	}

	var newBalance float64
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.LockByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		lastEarning, err := s.transactionRepo.LastEarningAt(ctx, userID)
		if err != nil {
			return err
		}
		cooldown := time.Duration(cfg.ClaimCooldownSeconds) * time.Second
		if lastEarning != nil && time.Since(*lastEarning) < cooldown {
			return ErrCooldownActive
		}

		newBalance, err = s.userRepo.AddToBalance(ctx, userID, cfg.AdCreditAmount)
		if err != nil {
			return err
		}
		_, err = s.transactionRepo.Create(ctx, &domain.Transaction{
			UserID:      userID,
			Type:        domain.TxTypeEarning,
			Amount:      cfg.AdCreditAmount,
			Status:      domain.TxStatusCompleted,
			Description: "Credit from claiming a token.",
			CreatedAt:   time.Now(),
		})
		return err
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrCooldownActive) {
			return 0, err
		}
		zap.L().Error("failed to credit user", zap.Error(err))
		return 0, err
	}

	return newBalance, nil
}

func (s *Service) GetBalance(ctx context.Context, userID int) (float64, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get user", zap.Error(err))
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}
	return user.Balance, nil
}

func (s *Service) ListTransactions(ctx context.Context, userID int) ([]domain.Transaction, error) {
	transactions, err := s.transactionRepo.ListByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	return transactions, nil
}

func (s *Service) ListAds(ctx context.Context) ([]domain.Ad, error) {
	ads, err := s.adRepo.List(ctx)
	if err != nil {
		zap.L().Error("failed to fetch ads", zap.Error(err))
		return nil, err
	}
	return ads, nil
}
