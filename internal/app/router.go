package app

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/avc/smm-panel/internal/domain"
	"github.com/avc/smm-panel/internal/handlers"
	"github.com/avc/smm-panel/internal/utils/jwt"
)

// setupRouter создает и настраивает роутер
func setupRouter(deps *dependencies, jwtManager *jwt.Manager, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Глобальные middleware
	setupMiddleware(r, logger)

	// Маршруты
	setupRoutes(r, deps, jwtManager)

	return r
}

// setupMiddleware настраивает middleware для роутера
func setupMiddleware(r *chi.Mux, logger *zap.Logger) {
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.LoggingMiddleware(logger))
	r.Use(handlers.RecoveryMiddleware(logger))
	r.Use(middleware.Compress(5))
}

// setupRoutes настраивает маршруты приложения
func setupRoutes(r *chi.Mux, deps *dependencies, jwtManager *jwt.Manager) {
	// Health check эндпоинты
	r.Get("/api/health", deps.handlers.health.Health)
	r.Get("/ready", deps.handlers.health.Ready)

	// Публичные эндпоинты
	r.Post("/auth/register", deps.handlers.auth.Register)
	r.Post("/auth/login", deps.handlers.auth.Login)
	r.Post("/admin/login", deps.handlers.auth.AdminLogin)
	r.Get("/services", deps.handlers.services.List)

	// Эндпоинты пользователя
	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(jwtManager))

		r.Get("/profile", deps.handlers.account.Profile)
		r.Put("/profile", deps.handlers.account.UpdateProfile)
		r.Post("/profile/change-password", deps.handlers.auth.ChangePassword)
		r.Get("/referrals", deps.handlers.account.Referrals)
		r.Get("/notifications", deps.handlers.account.Notifications)
		r.Post("/notifications/{notificationID}/read", deps.handlers.account.MarkNotificationRead)

		r.Post("/orders/place", deps.handlers.orders.Place)
		r.Get("/orders", deps.handlers.orders.ListMine)
		r.Get("/orders/{orderID}", deps.handlers.orders.Get)
		r.Post("/orders/{orderID}/cancel", deps.handlers.orders.Cancel)
		r.Post("/orders/{orderID}/refill", deps.handlers.orders.Refill)

		r.Post("/deposit/request", deps.handlers.deposits.Request)
		r.Post("/deposit/upload-proof", deps.handlers.deposits.UploadProof)
		r.Get("/transactions", deps.handlers.deposits.Transactions)

		r.Post("/support/ticket", deps.handlers.tickets.Create)
		r.Post("/support/ticket/{ticketID}/reply", deps.handlers.tickets.Reply)
		r.Get("/support/my-tickets", deps.handlers.tickets.MyTickets)
	})

	// Панель администратора: списки доступны и поддержке,
	// действия только администратору
	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(jwtManager))
		r.Use(handlers.RequireRole(domain.RoleAdmin, domain.RoleSupport))

		r.Get("/admin/stats", deps.handlers.admin.Stats)
		r.Get("/admin/users", deps.handlers.admin.Users)
		r.Get("/admin/orders", deps.handlers.admin.Orders)
		r.Get("/admin/transactions", deps.handlers.admin.Transactions)
		r.Get("/admin/deposits/pending", deps.handlers.admin.PendingDeposits)
		r.Get("/admin/tickets", deps.handlers.admin.Tickets)
		r.Post("/admin/tickets/{ticketID}/reply", deps.handlers.admin.ReplyTicket)
		r.Put("/admin/tickets/{ticketID}", deps.handlers.admin.UpdateTicket)
	})

	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(jwtManager))
		r.Use(handlers.RequireRole(domain.RoleAdmin))

		r.Post("/admin/deposit/approve", deps.handlers.admin.ResolveDeposit)
		r.Post("/admin/services/sync", deps.handlers.admin.SyncServices)
		r.Put("/admin/services/{serviceID}", deps.handlers.admin.SetServiceActive)
		r.Put("/admin/users/{userID}/active", deps.handlers.admin.SetUserActive)
		r.Put("/admin/users/{userID}/role", deps.handlers.admin.SetUserRole)
	})
}
