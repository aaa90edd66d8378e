package repo

import (
	"github.com/adwallet/adwallet/internal/pg"
	adrepo "github.com/adwallet/adwallet/internal/repo/ad-repo"
	configrepo "github.com/adwallet/adwallet/internal/repo/config-repo"
	transactionrepo "github.com/adwallet/adwallet/internal/repo/transaction-repo"
	userrepo "github.com/adwallet/adwallet/internal/repo/user-repo"
	withdrawalrepo "github.com/adwallet/adwallet/internal/repo/withdrawal-repo"
)

type Repositories struct {
	UserRepo        *userrepo.Repository
	TransactionRepo *transactionrepo.Repository
	WithdrawalRepo  *withdrawalrepo.Repository
	ConfigRepo      *configrepo.Repository
	AdRepo          *adrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		TransactionRepo: transactionrepo.New(conn),
		WithdrawalRepo:  withdrawalrepo.New(conn),
		ConfigRepo:      configrepo.New(conn),
		AdRepo:          adrepo.New(conn),
	}
}
