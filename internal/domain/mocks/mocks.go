// Package mocks содержит моки доменных интерфейсов для тестов сервисного слоя.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/avc/smm-panel/internal/domain"
)

// UserRepository мок domain.UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetUserByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) UpdateProfile(ctx context.Context, id int64, phone string) error {
	return m.Called(ctx, id, phone).Error(0)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *UserRepository) AdjustBalance(ctx context.Context, id int64, delta int64) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *UserRepository) ApplyOrderDebit(ctx context.Context, id int64, cost int64) error {
	return m.Called(ctx, id, cost).Error(0)
}

func (m *UserRepository) CreditReferral(ctx context.Context, id int64, bonus int64) error {
	return m.Called(ctx, id, bonus).Error(0)
}

func (m *UserRepository) ListUsers(ctx context.Context, page, limit int64) ([]*domain.User, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *UserRepository) SetRole(ctx context.Context, id int64, role domain.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

// ServiceRepository мок domain.ServiceRepository
type ServiceRepository struct {
	mock.Mock
}

func (m *ServiceRepository) UpsertService(ctx context.Context, svc *domain.Service) (bool, error) {
	args := m.Called(ctx, svc)
	return args.Bool(0), args.Error(1)
}

func (m *ServiceRepository) GetServiceByID(ctx context.Context, serviceID int64) (*domain.Service, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *ServiceRepository) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Service), args.Error(1)
}

func (m *ServiceRepository) SetServiceActive(ctx context.Context, serviceID int64, active bool) error {
	return m.Called(ctx, serviceID, active).Error(0)
}

// OrderRepository мок domain.OrderRepository
type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderRepository) GetOrdersByUserID(ctx context.Context, userID, page, limit int64) ([]*domain.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepository) UpdateOrderProgress(ctx context.Context, orderID string, status domain.OrderStatus, startCount, remains int64, deliveredAt *time.Time) error {
	return m.Called(ctx, orderID, status, startCount, remains, deliveredAt).Error(0)
}

func (m *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *OrderRepository) ListOrders(ctx context.Context, page, limit int64) ([]*domain.Order, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Order), args.Get(1).(int64), args.Error(2)
}

// TransactionRepository мок domain.TransactionRepository
type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *TransactionRepository) GetPendingDeposit(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *TransactionRepository) AttachProof(ctx context.Context, transactionID string, userID int64, proofImage, senderName, senderAccount, transferDate string) error {
	return m.Called(ctx, transactionID, userID, proofImage, senderName, senderAccount, transferDate).Error(0)
}

func (m *TransactionRepository) ResolveDeposit(ctx context.Context, transactionID string, status domain.TransactionStatus, verifiedBy, reason string) error {
	return m.Called(ctx, transactionID, status, verifiedBy, reason).Error(0)
}

func (m *TransactionRepository) GetTransactionsByUserID(ctx context.Context, userID, page, limit int64) ([]*domain.Transaction, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *TransactionRepository) ListTransactions(ctx context.Context, page, limit int64) ([]*domain.Transaction, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *TransactionRepository) ListPendingDeposits(ctx context.Context, page, limit int64) ([]*domain.Transaction, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Transaction), args.Get(1).(int64), args.Error(2)
}

// TicketRepository мок domain.TicketRepository
type TicketRepository struct {
	mock.Mock
}

func (m *TicketRepository) CreateTicket(ctx context.Context, ticket *domain.Ticket) error {
	return m.Called(ctx, ticket).Error(0)
}

func (m *TicketRepository) GetTicketByID(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *TicketRepository) GetTicketsByUserID(ctx context.Context, userID int64) ([]*domain.Ticket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *TicketRepository) ListTickets(ctx context.Context, page, limit int64) ([]*domain.Ticket, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Ticket), args.Get(1).(int64), args.Error(2)
}

func (m *TicketRepository) AppendReply(ctx context.Context, ticketID string, reply domain.TicketReply, status domain.TicketStatus) error {
	return m.Called(ctx, ticketID, reply, status).Error(0)
}

func (m *TicketRepository) UpdateTicket(ctx context.Context, ticketID string, status domain.TicketStatus, assignedTo string) error {
	return m.Called(ctx, ticketID, status, assignedTo).Error(0)
}

// NotificationRepository мок domain.NotificationRepository
type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *NotificationRepository) GetNotificationsByUserID(ctx context.Context, userID, page, limit int64) ([]*domain.Notification, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

// StatsRepository мок domain.StatsRepository
type StatsRepository struct {
	mock.Mock
}

func (m *StatsRepository) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

// SupplierClient мок domain.SupplierClient
type SupplierClient struct {
	mock.Mock
}

func (m *SupplierClient) ListServices(ctx context.Context) ([]domain.SupplierService, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierService), args.Error(1)
}

func (m *SupplierClient) GetBalance(ctx context.Context) (*domain.SupplierBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierBalance), args.Error(1)
}

func (m *SupplierClient) PlaceOrder(ctx context.Context, serviceID int64, link string, quantity int64) (int64, error) {
	args := m.Called(ctx, serviceID, link, quantity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SupplierClient) CheckStatus(ctx context.Context, apiOrderID int64) (*domain.SupplierOrderStatus, error) {
	args := m.Called(ctx, apiOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierOrderStatus), args.Error(1)
}

func (m *SupplierClient) RequestRefill(ctx context.Context, apiOrderID int64) error {
	return m.Called(ctx, apiOrderID).Error(0)
}

func (m *SupplierClient) CancelOrder(ctx context.Context, apiOrderID int64) error {
	return m.Called(ctx, apiOrderID).Error(0)
}

// Notifier мок domain.Notifier
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(ctx context.Context, userID int64, ntype, title, message string) {
	m.Called(ctx, userID, ntype, title, message)
}

func (m *Notifier) AlertAdmin(ctx context.Context, text string) {
	m.Called(ctx, text)
}
