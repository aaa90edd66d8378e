package withdrawalrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"

	"github.com/adwallet/adwallet/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

var requestColumns = []string{"id", "user_id", "user_email", "amount", "fee_paid", "fee_tx_id", "fee_verified", "status", "requested_at", "completed_at"}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	now := time.Now()
	request := &domain.WithdrawalRequest{
		UserID:      1,
		UserEmail:   "user@example.com",
		Amount:      1.5,
		FeePaid:     1,
		FeeTxID:     "0x9f86d081884c7d65",
		Status:      domain.WithdrawalStatusPending,
		RequestedAt: now,
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Create request successfully",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO withdrawal_requests (user_id, user_email, amount, fee_paid, fee_tx_id, status, requested_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`)).
					WithArgs(1, "user@example.com", 1.5, 1.0, "0x9f86d081884c7d65", domain.WithdrawalStatusPending, now).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO withdrawal_requests (user_id, user_email, amount, fee_paid, fee_tx_id, status, requested_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`)).
					WithArgs(1, "user@example.com", 1.5, 1.0, "0x9f86d081884c7d65", domain.WithdrawalStatusPending, now).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), request)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.ID)
			}
		})
	}
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := NewMock(t)

	now := time.Now()
	query := `SELECT ` + selectColumns + ` FROM withdrawal_requests WHERE id = $1`

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.WithdrawalRequest
	}{
		{
			name: "Request found",
			mockSetup: func() {
				rows := pgxmock.NewRows(requestColumns).
					AddRow(1, 1, "user@example.com", 1.5, 1.0, "0x9f86d081884c7d65", false, domain.WithdrawalStatusPending, now, nil)
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.WithdrawalRequest{
				ID:          1,
				UserID:      1,
				UserEmail:   "user@example.com",
				Amount:      1.5,
				FeePaid:     1,
				FeeTxID:     "0x9f86d081884c7d65",
				Status:      domain.WithdrawalStatusPending,
				RequestedAt: now,
			},
		},
		{
			name: "Request not found",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(1).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByID(context.Background(), 1)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_HasPending(t *testing.T) {
	repo, mock := NewMock(t)

	query := `SELECT EXISTS (SELECT 1 FROM withdrawal_requests WHERE user_id = $1 AND status = $2)`

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    bool
	}{
		{
			name: "Pending request exists",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(1, domain.WithdrawalStatusPending).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			expectErr: false,
			result:    true,
		},
		{
			name: "No pending request",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(1, domain.WithdrawalStatusPending).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
			expectErr: false,
			result:    false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(1, domain.WithdrawalStatusPending).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			exists, err := repo.HasPending(context.Background(), 1)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, exists)
			}
		})
	}
}

func TestRepository_ListByUserID(t *testing.T) {
	repo, mock := NewMock(t)

	now := time.Now()
	query := `SELECT ` + selectColumns + ` FROM withdrawal_requests WHERE user_id = $1 ORDER BY requested_at DESC`

	rows := pgxmock.NewRows(requestColumns).
		AddRow(2, 1, "user@example.com", 2.0, 1.0, "0xabcdef0123456789", false, domain.WithdrawalStatusPending, now, nil).
		AddRow(1, 1, "user@example.com", 1.0, 1.0, "0x9f86d081884c7d65", true, domain.WithdrawalStatusCompleted, now.Add(-time.Hour), &now)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(1).
		WillReturnRows(rows)

	requests, err := repo.ListByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, requests, 2)
	assert.Equal(t, domain.WithdrawalStatusPending, requests[0].Status)
	assert.NotNil(t, requests[1].CompletedAt)
}

func TestRepository_ListAll(t *testing.T) {
	repo, mock := NewMock(t)

	now := time.Now()
	query := `SELECT ` + selectColumns + ` FROM withdrawal_requests ORDER BY requested_at DESC`

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Requests found",
			mockSetup: func() {
				rows := pgxmock.NewRows(requestColumns).
					AddRow(2, 2, "second@example.com", 2.0, 1.0, "0xabcdef0123456789", false, domain.WithdrawalStatusPending, now, nil).
					AddRow(1, 1, "first@example.com", 1.0, 1.0, "0x9f86d081884c7d65", true, domain.WithdrawalStatusCompleted, now.Add(-time.Hour), &now)
				mock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnRows(rows)
			},
			expectErr: false,
			count:     2,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			requests, err := repo.ListAll(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, requests, tt.count)
			}
		})
	}
}

func TestRepository_MarkCompleted(t *testing.T) {
	repo, mock := NewMock(t)

	now := time.Now()
	query := `
		UPDATE withdrawal_requests
		SET status = $1, completed_at = $2
		WHERE id = $3
	`

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Request marked completed",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs(domain.WithdrawalStatusCompleted, now, 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs(domain.WithdrawalStatusCompleted, now, 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.MarkCompleted(context.Background(), 1, now)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_ListUnverifiedPending(t *testing.T) {
	repo, mock := NewMock(t)

	now := time.Now()
	query := `SELECT ` + selectColumns + ` FROM withdrawal_requests
        WHERE status = $1 AND fee_verified = FALSE
        ORDER BY requested_at ASC
        LIMIT $2`

	rows := pgxmock.NewRows(requestColumns).
		AddRow(1, 1, "user@example.com", 1.0, 1.0, "0x9f86d081884c7d65", false, domain.WithdrawalStatusPending, now, nil)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(domain.WithdrawalStatusPending, uint32(10)).
		WillReturnRows(rows)

	requests, err := repo.ListUnverifiedPending(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, requests, 1)
	assert.False(t, requests[0].FeeVerified)
}

func TestRepository_MarkFeeVerified(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Fee marked verified",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE withdrawal_requests SET fee_verified = TRUE WHERE id = $1")).
					WithArgs(1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE withdrawal_requests SET fee_verified = TRUE WHERE id = $1")).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.MarkFeeVerified(context.Background(), 1)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
