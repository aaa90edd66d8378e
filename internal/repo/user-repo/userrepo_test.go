package userrepo

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

func TestRepository_FindByEmail(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		email     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "User found",
			email: "user@example.com",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "email", "password_hash", "balance", "role"}).
					AddRow(1, "user@example.com", "hashed_password", 1.5, domain.RoleUser)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, balance, role FROM users WHERE email = $1")).
					WithArgs("user@example.com").
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.User{
				ID:           1,
				Email:        "user@example.com",
				PasswordHash: "hashed_password",
				Balance:      1.5,
				Role:         domain.RoleUser,
			},
		},
		{
			name:  "User not found",
			email: "missing@example.com",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, balance, role FROM users WHERE email = $1")).
					WithArgs("missing@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name:  "Database error",
			email: "user@example.com",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, balance, role FROM users WHERE email = $1")).
					WithArgs("user@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByEmail(context.Background(), tt.email)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:   "User found",
			userID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "email", "password_hash", "balance", "role"}).
					AddRow(1, "user@example.com", "hashed_password", 0.5, domain.RoleAdmin)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, balance, role FROM users WHERE id = $1")).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.User{
				ID:           1,
				Email:        "user@example.com",
				PasswordHash: "hashed_password",
				Balance:      0.5,
				Role:         domain.RoleAdmin,
			},
		},
		{
			name:   "User not found",
			userID: 42,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, balance, role FROM users WHERE id = $1")).
					WithArgs(42).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.userID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_LockByID(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:   "User row locked",
			userID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "email", "password_hash", "balance", "role"}).
					AddRow(1, "user@example.com", "hashed_password", 0.5, domain.RoleUser)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, balance, role FROM users WHERE id = $1 FOR UPDATE")).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.User{
				ID:           1,
				Email:        "user@example.com",
				PasswordHash: "hashed_password",
				Balance:      0.5,
				Role:         domain.RoleUser,
			},
		},
		{
			name:   "User not found",
			userID: 42,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, balance, role FROM users WHERE id = $1 FOR UPDATE")).
					WithArgs(42).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.LockByID(context.Background(), tt.userID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		user      *domain.User
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Create user successfully",
			user: &domain.User{
				Email:        "new@example.com",
				PasswordHash: "hashed_password",
				Role:         domain.RoleUser,
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO users (email, password_hash, balance, role)
			VALUES ($1, $2, 0, $3)
			RETURNING id
		`)).
					WithArgs("new@example.com", "hashed_password", domain.RoleUser).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			user: &domain.User{
				Email:        "new@example.com",
				PasswordHash: "hashed_password",
				Role:         domain.RoleUser,
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO users (email, password_hash, balance, role)
			VALUES ($1, $2, 0, $3)
			RETURNING id
		`)).
					WithArgs("new@example.com", "hashed_password", domain.RoleUser).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), tt.user)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.ID)
			}
		})
	}
}

func TestRepository_Count(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_List(t *testing.T) {
	repo, mock := NewMock(t)

	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "email", "balance", "role", "created_at"}).
		AddRow(2, "second@example.com", 0.5, domain.RoleUser, now).
		AddRow(1, "first@example.com", 2.0, domain.RoleAdmin, now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(`
        SELECT id, email, balance, role, created_at
        FROM users
        ORDER BY created_at DESC
    `)).WillReturnRows(rows)

	users, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "second@example.com", users[0].Email)
	assert.Equal(t, domain.RoleAdmin, users[1].Role)
}

func TestRepository_AddToBalance(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    float64
	}{
		{
			name: "Increments balance",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE users
		SET balance = balance + $1
		WHERE id = $2
		RETURNING balance
	`)).
					WithArgs(0.5, 1).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(1.5))
			},
			expectErr: false,
			result:    1.5,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE users
		SET balance = balance + $1
		WHERE id = $2
		RETURNING balance
	`)).
					WithArgs(0.5, 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			balance, err := repo.AddToBalance(context.Background(), 1, 0.5)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, balance)
			}
		})
	}
}

func TestRepository_DeductBalance(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE users
		SET balance = GREATEST(balance - $1, 0)
		WHERE id = $2
		RETURNING balance
	`)).
		WithArgs(2.0, 1).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(0.0))

	balance, err := repo.DeductBalance(context.Background(), 1, 2.0)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, balance)
}

func TestRepository_SetRole(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Role updated",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role = $1 WHERE id = $2")).
					WithArgs(domain.RoleAdmin, 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role = $1 WHERE id = $2")).
					WithArgs(domain.RoleAdmin, 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.SetRole(context.Background(), 1, domain.RoleAdmin)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
