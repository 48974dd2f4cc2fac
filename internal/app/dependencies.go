package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/avc/smm-panel/internal/config"
	"github.com/avc/smm-panel/internal/domain"
	"github.com/avc/smm-panel/internal/handlers"
	"github.com/avc/smm-panel/internal/notify"
	"github.com/avc/smm-panel/internal/repository/postgres"
	"github.com/avc/smm-panel/internal/service"
	"github.com/avc/smm-panel/internal/utils/jwt"
	"github.com/avc/smm-panel/internal/utils/password"
)

// repositories содержит все репозитории приложения
type repositories struct {
	user         domain.UserRepository
	service      domain.ServiceRepository
	order        domain.OrderRepository
	transaction  domain.TransactionRepository
	ticket       domain.TicketRepository
	notification domain.NotificationRepository
	stats        domain.StatsRepository
}

// services содержит все сервисы приложения
type services struct {
	auth    *service.AuthService
	catalog *service.CatalogService
	order   *service.OrderService
	deposit *service.DepositService
	ticket  *service.TicketService
	account *service.AccountService
	admin   *service.AdminService
}

// handlerSet содержит все хендлеры приложения
type handlerSet struct {
	auth     *handlers.AuthHandler
	services *handlers.ServicesHandler
	orders   *handlers.OrdersHandler
	deposits *handlers.DepositsHandler
	account  *handlers.AccountHandler
	tickets  *handlers.TicketsHandler
	admin    *handlers.AdminHandler
	health   *handlers.HealthHandler
}

// dependencies содержит все зависимости приложения
type dependencies struct {
	repos      *repositories
	services   *services
	handlers   *handlerSet
	jwtManager *jwt.Manager
	supplier   domain.SupplierClient
}

// initDependencies создает все зависимости приложения
func initDependencies(cfg *config.Config, dbPool *pgxpool.Pool, logger *zap.Logger) *dependencies {
	// Создание репозиториев
	repos := &repositories{
		user:         postgres.NewUserRepository(dbPool),
		service:      postgres.NewServiceRepository(dbPool),
		order:        postgres.NewOrderRepository(dbPool),
		transaction:  postgres.NewTransactionRepository(dbPool),
		ticket:       postgres.NewTicketRepository(dbPool),
		notification: postgres.NewNotificationRepository(dbPool),
		stats:        postgres.NewStatsRepository(dbPool),
	}

	// Создание утилит и внешних клиентов
	passwordHasher := password.NewBCryptHasher(password.DefaultCost)
	jwtManager := jwt.NewManager(cfg.JWTSecret, cfg.JWTTokenTTL)
	supplier := service.NewSupplierClient(cfg.SupplierAPIURL, cfg.SupplierAPIKey, cfg.SupplierTimeout)
	notifier := notify.New(repos.notification, cfg.TelegramBotToken, cfg.TelegramAdminChatID, logger)

	bank := service.BankDetails{
		BankName:      cfg.BankName,
		AccountName:   cfg.BankAccountName,
		AccountNumber: cfg.BankAccountNumber,
	}

	// Создание сервисов
	svcs := &services{
		auth: service.NewAuthService(repos.user, passwordHasher, jwtManager,
			cfg.AdminUsername, cfg.AdminPassword, cfg.MinPasswordLength),
		catalog: service.NewCatalogService(repos.service, supplier,
			cfg.MarkupPercent, cfg.EquityValue, logger),
		order: service.NewOrderService(repos.order, repos.service, repos.user,
			repos.transaction, supplier, notifier, cfg.EquityValue, logger),
		deposit: service.NewDepositService(repos.transaction, repos.user, notifier,
			bank, cfg.DepositMin, cfg.DepositMax, cfg.EquityValue, cfg.ReferralBonusPercent, logger),
		ticket:  service.NewTicketService(repos.ticket, notifier),
		account: service.NewAccountService(repos.user, repos.notification),
		admin:   service.NewAdminService(repos.stats, repos.user),
	}

	// Создание handlers
	hdlrs := &handlerSet{
		auth:     handlers.NewAuthHandler(svcs.auth, logger),
		services: handlers.NewServicesHandler(svcs.catalog, logger),
		orders:   handlers.NewOrdersHandler(svcs.order, logger),
		deposits: handlers.NewDepositsHandler(svcs.deposit, logger),
		account:  handlers.NewAccountHandler(svcs.account, logger),
		tickets:  handlers.NewTicketsHandler(svcs.ticket, logger),
		admin: handlers.NewAdminHandler(svcs.admin, svcs.catalog, svcs.order,
			svcs.deposit, svcs.ticket, cfg.AdminUsername, logger),
		health: handlers.NewHealthHandler(dbPool, supplier, logger),
	}

	return &dependencies{
		repos:      repos,
		services:   svcs,
		handlers:   hdlrs,
		jwtManager: jwtManager,
		supplier:   supplier,
	}
}
