// Package api assembles the HTTP surface: middleware chain, route tree and
// the handler wiring.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pawcat-app/pawcat-backend/internal/api/handlers"
	"github.com/pawcat-app/pawcat-backend/internal/api/httpx"
	"github.com/pawcat-app/pawcat-backend/internal/config"
	"github.com/pawcat-app/pawcat-backend/internal/metrics"
	"github.com/pawcat-app/pawcat-backend/internal/middleware"
)

type Deps struct {
	Cfg        config.Config
	Auth       *middleware.AuthMiddleware
	AuthH      *handlers.AuthHandler
	Dashboard  *handlers.DashboardHandler
	Statistics *handlers.StatisticsHandler
	User       *handlers.UserHandler
	Admin      *handlers.AdminHandler
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recover)
	r.Use(middleware.HTTPMetrics)
	r.Use(middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.Respond(w, http.StatusOK, "ok", nil)
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.AuthH.Register)
			r.Post("/login", d.AuthH.Login)
			r.Post("/logout", d.AuthH.Logout)
			r.Post("/forgot-password", d.AuthH.ForgotPassword)
			r.Post("/refresh", d.AuthH.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(d.Auth.Auth)
				r.Get("/user-info", d.AuthH.UserInfo)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(d.Auth.Auth)

			r.Get("/transactions", d.Dashboard.ListTransactions)
			r.Post("/transactions", d.Dashboard.CreateTransaction)
			r.Patch("/transactions/{id}", d.Dashboard.UpdateTransaction)
			r.Delete("/transactions/{id}", d.Dashboard.DeleteTransaction)

			r.Get("/categories", d.Dashboard.ListCategories)
			r.Post("/categories", d.Dashboard.CreateCategory)
			r.Put("/categories/{id}", d.Dashboard.UpdateCategory)
			r.Delete("/categories/{id}", d.Dashboard.DeleteCategory)

			r.Get("/statistics/summary", d.Statistics.Summary)
			r.Get("/statistics/categories", d.Statistics.Categories)
			r.Get("/statistics/monthly-trends", d.Statistics.MonthlyTrends)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(d.Auth.Auth)

			r.Get("/see-notifications", d.User.Notifications)
			r.Post("/friends/add", d.User.AddFriend)
			r.Post("/friends/accept", d.User.AcceptFriend)
			r.Get("/friends/search", d.User.SearchUsers)
			r.Get("/friends/list", d.User.ListFriends)

			r.Get("/profile", d.User.Profile)
			r.Patch("/profile", d.User.UpdateProfile)
			r.Post("/profile/payment-method", d.User.SetPaymentMethod)
			r.Post("/profile/bank-detail", d.User.SetBankDetail)
			r.Delete("/profile/bank-detail/{bankName}", d.User.RemoveBankDetail)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(d.Auth.Auth)
			r.Use(middleware.RequireAdmin)

			r.Get("/users", d.Admin.ListUsers)
			r.Get("/inactive-users", d.Admin.ListInactiveUsers)
			r.Delete("/delete-user/{id}", d.Admin.DeleteUser)
			r.Post("/send-notification", d.Admin.SendNotification)
			r.Get("/see-notifications", d.Admin.SeeNotifications)
		})
	})

	return r
}
