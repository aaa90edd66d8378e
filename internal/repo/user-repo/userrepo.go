package userrepo

import (
	"context"

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

func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(ctx, "SELECT id, email, password_hash, balance, role FROM users WHERE email = $1", email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Balance, &user.Role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user by email", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *Repository) FindByID(ctx context.Context, userID int) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(ctx, "SELECT id, email, password_hash, balance, role FROM users WHERE id = $1", userID).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Balance, &user.Role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user by id", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// LockByID loads the user row with FOR UPDATE, serializing claims against
// the same user for the duration of the surrounding transaction.
func (r *Repository) LockByID(ctx context.Context, userID int) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(ctx, "SELECT id, email, password_hash, balance, role FROM users WHERE id = $1 FOR UPDATE", userID).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Balance, &user.Role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't lock user by id", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash, balance, role)
		VALUES ($1, $2, 0, $3)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, user.Email, user.PasswordHash, user.Role).Scan(&user.ID)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		zap.L().Error("can't count users", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.User, error) {
	query := `
        SELECT id, email, balance, role, created_at
        FROM users
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to fetch users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		err := rows.Scan(&u.ID, &u.Email, &u.Balance, &u.Role, &u.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan user row", zap.Error(err))
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

// AddToBalance atomically increments the balance in a single statement, so
// concurrent credits cannot lose updates.
func (r *Repository) AddToBalance(ctx context.Context, userID int, amount float64) (float64, error) {
	query := `
		UPDATE users
		SET balance = balance + $1
		WHERE id = $2
		RETURNING balance
	`
	var balance float64
	err := r.db.QueryRow(ctx, query, amount, userID).Scan(&balance)
	if err != nil {
		zap.L().Error("failed to add to user balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}

// DeductBalance subtracts amount from the balance, flooring at zero.
func (r *Repository) DeductBalance(ctx context.Context, userID int, amount float64) (float64, error) {
	query := `
		UPDATE users
		SET balance = GREATEST(balance - $1, 0)
		WHERE id = $2
		RETURNING balance
	`
	var balance float64
	err := r.db.QueryRow(ctx, query, amount, userID).Scan(&balance)
	if err != nil {
		zap.L().Error("failed to deduct user balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}

func (r *Repository) SetRole(ctx context.Context, userID int, role string) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET role = $1 WHERE id = $2", role, userID)
	if err != nil {
		zap.L().Error("failed to set user role", zap.Error(err))
		return err
	}
	return nil
}
