package configrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/adwallet/adwallet/internal/domain"
	"github.com/adwallet/adwallet/internal/pg"
)

// The site config is a single row seeded by migration, so reads never have to
// create it.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Get(ctx context.Context) (*domain.SiteConfig, error) {
	query := `
        SELECT website_name, withdrawal_fee, fee_token_name, ad_credit_amount, fee_deposit_address, claim_cooldown_seconds
        FROM site_config
        WHERE id = 1
    `
	var cfg domain.SiteConfig
	err := r.db.QueryRow(ctx, query).
		Scan(&cfg.WebsiteName, &cfg.WithdrawalFee, &cfg.FeeTokenName, &cfg.AdCreditAmount, &cfg.FeeDepositAddress, &cfg.ClaimCooldownSeconds)
	if err != nil {
		zap.L().Error("failed to get site config", zap.Error(err))
		return nil, err
	}
	return &cfg, nil
}

// Update applies a partial patch; nil fields keep their stored values.
func (r *Repository) Update(ctx context.Context, patch *domain.SiteConfigPatch) (*domain.SiteConfig, error) {
	query := `
		UPDATE site_config
		SET website_name           = COALESCE($1, website_name),
		    withdrawal_fee         = COALESCE($2, withdrawal_fee),
		    fee_token_name         = COALESCE($3, fee_token_name),
		    ad_credit_amount       = COALESCE($4, ad_credit_amount),
		    fee_deposit_address    = COALESCE($5, fee_deposit_address),
		    claim_cooldown_seconds = COALESCE($6, claim_cooldown_seconds)
		WHERE id = 1
		RETURNING website_name, withdrawal_fee, fee_token_name, ad_credit_amount, fee_deposit_address, claim_cooldown_seconds
	`
	var cfg domain.SiteConfig
	err := r.db.QueryRow(ctx, query,
		patch.WebsiteName, patch.WithdrawalFee, patch.FeeTokenName,
		patch.AdCreditAmount, patch.FeeDepositAddress, patch.ClaimCooldownSeconds).
		Scan(&cfg.WebsiteName, &cfg.WithdrawalFee, &cfg.FeeTokenName, &cfg.AdCreditAmount, &cfg.FeeDepositAddress, &cfg.ClaimCooldownSeconds)
	if err != nil {
		zap.L().Error("failed to update site config", zap.Error(err))
		return nil, err
	}
	return &cfg, nil
}
