package service

import (
	"github.com/adwallet/adwallet/internal/pg"
	"github.com/adwallet/adwallet/internal/repo"
	"github.com/adwallet/adwallet/internal/service/authservice"
	"github.com/adwallet/adwallet/internal/service/configservice"
	"github.com/adwallet/adwallet/internal/service/walletservice"
	"github.com/adwallet/adwallet/internal/service/withdrawalservice"
	pkgauth "github.com/adwallet/adwallet/pkg/auth"
)

type Services struct {
	AuthService       *authservice.Service
	WalletService     *walletservice.Service
	WithdrawalService *withdrawalservice.Service
	ConfigService     *configservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager) *Services {
	authService := authservice.New(repo.UserRepo, txManager, &pkgauth.HashService{}, &pkgauth.JWTService{})
	walletService := walletservice.New(repo.UserRepo, repo.TransactionRepo, repo.ConfigRepo, repo.AdRepo, txManager)
	withdrawalService := withdrawalservice.New(repo.UserRepo, repo.WithdrawalRepo, repo.TransactionRepo, repo.ConfigRepo, txManager)
	configService := configservice.New(repo.ConfigRepo)

	return &Services{
		AuthService:       authService,
		WalletService:     walletService,
		WithdrawalService: withdrawalService,
		ConfigService:     configService,
	}
}
