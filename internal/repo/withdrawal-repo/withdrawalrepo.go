package withdrawalrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/adwallet/adwallet/internal/domain"
	"github.com/adwallet/adwallet/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const selectColumns = `id, user_id, user_email, amount, fee_paid, fee_tx_id, fee_verified, status, requested_at, completed_at`

func (r *Repository) Create(ctx context.Context, req *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error) {
	query := `
		INSERT INTO withdrawal_requests (user_id, user_email, amount, fee_paid, fee_tx_id, status, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, req.UserID, req.UserEmail, req.Amount, req.FeePaid, req.FeeTxID, req.Status, req.RequestedAt).Scan(&req.ID)
	if err != nil {
		zap.L().Error("can't save withdrawal request", zap.Error(err))
		return nil, err
	}
	return req, nil
}

func (r *Repository) GetByID(ctx context.Context, requestID int) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + selectColumns + ` FROM withdrawal_requests WHERE id = $1`
	var req domain.WithdrawalRequest
	err := r.db.QueryRow(ctx, query, requestID).
		Scan(&req.ID, &req.UserID, &req.UserEmail, &req.Amount, &req.FeePaid, &req.FeeTxID, &req.FeeVerified, &req.Status, &req.RequestedAt, &req.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find withdrawal request", zap.Error(err))
		return nil, err
	}
	return &req, nil
}

func (r *Repository) HasPending(ctx context.Context, userID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM withdrawal_requests WHERE user_id = $1 AND status = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, domain.WithdrawalStatusPending).Scan(&exists)
	if err != nil {
		zap.L().Error("failed to check pending withdrawal requests", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) ListByUserID(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error) {
	query := `SELECT ` + selectColumns + ` FROM withdrawal_requests WHERE user_id = $1 ORDER BY requested_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *Repository) ListAll(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	query := `SELECT ` + selectColumns + ` FROM withdrawal_requests ORDER BY requested_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *Repository) MarkCompleted(ctx context.Context, requestID int, completedAt time.Time) error {
	query := `
		UPDATE withdrawal_requests
		SET status = $1, completed_at = $2
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, domain.WithdrawalStatusCompleted, completedAt, requestID)
	if err != nil {
		zap.L().Error("failed to mark withdrawal request completed", zap.Error(err))
		return err
	}
	return nil
}

// ListUnverifiedPending returns pending requests whose fee proof has not been
// verified yet, oldest first.
func (r *Repository) ListUnverifiedPending(ctx context.Context, limit uint32) ([]domain.WithdrawalRequest, error) {
	query := `SELECT ` + selectColumns + ` FROM withdrawal_requests
        WHERE status = $1 AND fee_verified = FALSE
        ORDER BY requested_at ASC
        LIMIT $2`
	rows, err := r.db.Query(ctx, query, domain.WithdrawalStatusPending, limit)
	if err != nil {
		zap.L().Error("failed to fetch unverified withdrawal requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *Repository) MarkFeeVerified(ctx context.Context, requestID int) error {
	_, err := r.db.Exec(ctx, "UPDATE withdrawal_requests SET fee_verified = TRUE WHERE id = $1", requestID)
	if err != nil {
		zap.L().Error("failed to mark fee verified", zap.Error(err))
		return err
	}
	return nil
}

func scanRequests(rows pgx.Rows) ([]domain.WithdrawalRequest, error) {
	var requests []domain.WithdrawalRequest
	for rows.Next() {
		var req domain.WithdrawalRequest
		err := rows.Scan(&req.ID, &req.UserID, &req.UserEmail, &req.Amount, &req.FeePaid, &req.FeeTxID, &req.FeeVerified, &req.Status, &req.RequestedAt, &req.CompletedAt)
		if err != nil {
			zap.L().Error("failed to scan withdrawal request row", zap.Error(err))
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}
