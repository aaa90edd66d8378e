package configservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/adwallet/adwallet/internal/domain"
)

type Repo interface {
	Get(ctx context.Context) (*domain.SiteConfig, error)
	Update(ctx context.Context, patch *domain.SiteConfigPatch) (*domain.SiteConfig, error)
}

type Service struct {
	configRepo Repo
}

func New(configRepo Repo) *Service {
	return &Service{
		configRepo: configRepo,
	}
}

func (s *Service) GetConfig(ctx context.Context) (*domain.SiteConfig, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		zap.L().Error("failed to get site config", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

func (s *Service) UpdateConfig(ctx context.Context, patch *domain.SiteConfigPatch) (*domain.SiteConfig, error) {
	cfg, err := s.configRepo.Update(ctx, patch)
	if err != nil {
		zap.L().Error("failed to update site config", zap.Error(err))
		return nil, err
	}
	zap.L().Info("site config updated")
	return cfg, nil
}
