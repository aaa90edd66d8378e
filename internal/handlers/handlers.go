package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/adwallet/adwallet/docs"
	adminhandlers "github.com/adwallet/adwallet/internal/handlers/admin"
	authhandlers "github.com/adwallet/adwallet/internal/handlers/auth"
	wallethandlers "github.com/adwallet/adwallet/internal/handlers/wallet"
	withdrawalhandlers "github.com/adwallet/adwallet/internal/handlers/withdrawal"
	"github.com/adwallet/adwallet/internal/service"
	"github.com/adwallet/adwallet/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	Claim(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	GetAds(w http.ResponseWriter, r *http.Request)
	GetSiteConfig(w http.ResponseWriter, r *http.Request)
}

type WithdrawalHandler interface {
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	SetUserRole(w http.ResponseWriter, r *http.Request)
	ListWithdrawals(w http.ResponseWriter, r *http.Request)
	CompleteWithdrawal(w http.ResponseWriter, r *http.Request)
	UpdateConfig(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler       AuthHandler
	WalletHandler     WalletHandler
	WithdrawalHandler WithdrawalHandler
	AdminHandler      AdminHandler

	adminGate auth.AdminGate
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:       authhandlers.New(s.AuthService),
		WalletHandler:     wallethandlers.New(s.WalletService, s.ConfigService),
		WithdrawalHandler: withdrawalhandlers.New(s.WithdrawalService),
		AdminHandler:      adminhandlers.New(s.AuthService, s.WithdrawalService, s.ConfigService),
		adminGate:         s.AuthService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Post("/claim", h.WalletHandler.Claim)
			r.Get("/balance", h.WalletHandler.GetBalance)
			r.Get("/transactions", h.WalletHandler.GetTransactions)
			r.Get("/ads", h.WalletHandler.GetAds)
			r.Get("/config", h.WalletHandler.GetSiteConfig)
			r.Route("/withdrawals", func(r chi.Router) {
				r.Post("/", h.WithdrawalHandler.Withdraw)
				r.Get("/", h.WithdrawalHandler.GetWithdrawals)
			})
		})
	})
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.AuthMiddleware, auth.AdminMiddleware(h.adminGate))
		r.Get("/users", h.AdminHandler.ListUsers)
		r.Patch("/users/{id}/role", h.AdminHandler.SetUserRole)
		r.Route("/withdrawals", func(r chi.Router) {
			r.Get("/", h.AdminHandler.ListWithdrawals)
			r.Post("/{id}/complete", h.AdminHandler.CompleteWithdrawal)
		})
		r.Patch("/config", h.AdminHandler.UpdateConfig)
	})

	return r
}
