package domain

import (
	"context"
	"time"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByReferralCode(ctx context.Context, code string) (*User, error)
	UpdateProfile(ctx context.Context, id int64, phone string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	AdjustBalance(ctx context.Context, id int64, delta int64) error
	ApplyOrderDebit(ctx context.Context, id int64, cost int64) error
	CreditReferral(ctx context.Context, id int64, bonus int64) error
	ListUsers(ctx context.Context, page, limit int64) ([]*User, int64, error)
	SetActive(ctx context.Context, id int64, active bool) error
	SetRole(ctx context.Context, id int64, role Role) error
}

// ServiceRepository определяет методы для работы с каталогом услуг
type ServiceRepository interface {
	UpsertService(ctx context.Context, svc *Service) (bool, error)
	GetServiceByID(ctx context.Context, serviceID int64) (*Service, error)
	ListActiveServices(ctx context.Context) ([]*Service, error)
	SetServiceActive(ctx context.Context, serviceID int64, active bool) error
}

// OrderRepository определяет методы для работы с заказами
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	GetOrdersByUserID(ctx context.Context, userID, page, limit int64) ([]*Order, int64, error)
	UpdateOrderProgress(ctx context.Context, orderID string, status OrderStatus, startCount, remains int64, deliveredAt *time.Time) error
	UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) error
	ListOrders(ctx context.Context, page, limit int64) ([]*Order, int64, error)
}

// TransactionRepository определяет методы для работы с леджером
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetPendingDeposit(ctx context.Context, transactionID string) (*Transaction, error)
	AttachProof(ctx context.Context, transactionID string, userID int64, proofImage, senderName, senderAccount, transferDate string) error
	ResolveDeposit(ctx context.Context, transactionID string, status TransactionStatus, verifiedBy, reason string) error
	GetTransactionsByUserID(ctx context.Context, userID, page, limit int64) ([]*Transaction, int64, error)
	ListTransactions(ctx context.Context, page, limit int64) ([]*Transaction, int64, error)
	ListPendingDeposits(ctx context.Context, page, limit int64) ([]*Transaction, int64, error)
}

// TicketRepository определяет методы для работы с тикетами поддержки
type TicketRepository interface {
	CreateTicket(ctx context.Context, ticket *Ticket) error
	GetTicketByID(ctx context.Context, ticketID string) (*Ticket, error)
	GetTicketsByUserID(ctx context.Context, userID int64) ([]*Ticket, error)
	ListTickets(ctx context.Context, page, limit int64) ([]*Ticket, int64, error)
	AppendReply(ctx context.Context, ticketID string, reply TicketReply, status TicketStatus) error
	UpdateTicket(ctx context.Context, ticketID string, status TicketStatus, assignedTo string) error
}

// NotificationRepository определяет методы для работы с уведомлениями
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *Notification) error
	GetNotificationsByUserID(ctx context.Context, userID, page, limit int64) ([]*Notification, int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
}

// StatsRepository определяет сводные запросы для панели администратора
type StatsRepository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

// SupplierClient определяет методы взаимодействия с API поставщика
type SupplierClient interface {
	ListServices(ctx context.Context) ([]SupplierService, error)
	GetBalance(ctx context.Context) (*SupplierBalance, error)
	PlaceOrder(ctx context.Context, serviceID int64, link string, quantity int64) (int64, error)
	CheckStatus(ctx context.Context, apiOrderID int64) (*SupplierOrderStatus, error)
	RequestRefill(ctx context.Context, apiOrderID int64) error
	CancelOrder(ctx context.Context, apiOrderID int64) error
}

// Notifier определяет методы отправки уведомлений
type Notifier interface {
	Notify(ctx context.Context, userID int64, ntype, title, message string)
	AlertAdmin(ctx context.Context, text string)
}
