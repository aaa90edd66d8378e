package adrepo

import (
	"context"

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

func (r *Repository) List(ctx context.Context) ([]domain.Ad, error) {
	query := `
        SELECT id, image_url, alt_text, hint, created_at
        FROM ads
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to fetch ads", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ads []domain.Ad
	for rows.Next() {
		var ad domain.Ad
		err := rows.Scan(&ad.ID, &ad.ImageURL, &ad.AltText, &ad.Hint, &ad.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan ad row", zap.Error(err))
			return nil, err
		}
		ads = append(ads, ad)
	}

	return ads, nil
}
