package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/avc/smm-panel/internal/domain"
	"github.com/avc/smm-panel/internal/utils/ident"
	"github.com/avc/smm-panel/internal/utils/pricing"
)

// OrderService реализует workflow заказов: размещение, чтение с обновлением
// статуса от поставщика, отмена с возвратом средств и запрос пополнения.
type OrderService struct {
	orderRepo   domain.OrderRepository
	serviceRepo domain.ServiceRepository
	userRepo    domain.UserRepository
	txRepo      domain.TransactionRepository
	supplier    domain.SupplierClient
	notifier    domain.Notifier
	equityValue int64
	logger      *zap.Logger
}

// NewOrderService создает новый OrderService
func NewOrderService(
	orderRepo domain.OrderRepository,
	serviceRepo domain.ServiceRepository,
	userRepo domain.UserRepository,
	txRepo domain.TransactionRepository,
	supplier domain.SupplierClient,
	notifier domain.Notifier,
	equityValue int64,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
		txRepo:      txRepo,
		supplier:    supplier,
		notifier:    notifier,
		equityValue: equityValue,
		logger:      logger,
	}
}

// Place размещает заказ.
// Шаги после вызова поставщика не обернуты в общую транзакцию: падение
// процесса между ними оставляет частичное состояние. Две конкурентные
// покупки одного пользователя могут обе пройти проверку баланса.
func (s *OrderService) Place(ctx context.Context, userID int64, serviceID int64, targetURL string, quantity int64) (*domain.Order, error) {
	if targetURL == "" {
		return nil, fmt.Errorf("%w: target URL is required", ErrInvalidInput)
	}

	svc, err := s.serviceRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("order service: failed to get service %d: %w", serviceID, err)
	}
	if !svc.IsActive {
		return nil, domain.ErrServiceInactive
	}

	if quantity < svc.Min || quantity > svc.Max {
		return nil, fmt.Errorf("%w: quantity must be between %d and %d", domain.ErrInvalidQuantity, svc.Min, svc.Max)
	}

	cost := pricing.OrderCost(svc.OurRate, quantity)

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("order service: failed to get user %d: %w", userID, err)
	}
	if user.Balance < cost {
		return nil, domain.ErrInsufficientBalance
	}

	order := &domain.Order{
		OrderID:     ident.OrderID(),
		UserID:      userID,
		ServiceID:   svc.ServiceID,
		ServiceName: svc.Name,
		Platform:    svc.Platform,
		ServiceType: svc.ServiceType,
		TargetURL:   targetURL,
		Quantity:    quantity,
		Cost:        cost,
	}

	apiOrderID, err := s.supplier.PlaceOrder(ctx, svc.ServiceID, targetURL, quantity)
	if err != nil {
		// Баланс еще не списан, возврат не нужен. Заказ сохраняется
		// как failed с сырой ошибкой поставщика для диагностики.
		order.Status = domain.OrderStatusFailed
		order.SupplierError = err.Error()
		if createErr := s.orderRepo.CreateOrder(ctx, order); createErr != nil {
			s.logger.Error("failed to persist failed order",
				zap.String("order_id", order.OrderID),
				zap.Error(createErr))
		}
		return nil, fmt.Errorf("order service: supplier rejected order: %w", err)
	}

	order.Status = domain.OrderStatusProcessing
	order.APIOrderID = apiOrderID

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("order service: failed to create order %q: %w", order.OrderID, err)
	}

	if err := s.userRepo.ApplyOrderDebit(ctx, userID, cost); err != nil {
		return nil, fmt.Errorf("order service: failed to debit user %d for order %q: %w", userID, order.OrderID, err)
	}

	tx := &domain.Transaction{
		TransactionID: ident.TransactionID(),
		UserID:        userID,
		Type:          domain.TransactionTypeOrder,
		Amount:        float64(cost * s.equityValue),
		Equities:      cost,
		Status:        domain.TransactionStatusCompleted,
		Reference:     order.OrderID,
	}
	if err := s.txRepo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("order service: failed to record transaction for order %q: %w", order.OrderID, err)
	}

	s.notifier.Notify(ctx, userID, "order", "Order placed",
		fmt.Sprintf("Order %s for %s is being processed.", order.OrderID, order.ServiceName))

	return order, nil
}

// mapSupplierStatus переводит статус поставщика во внутренний.
// Неизвестные строки оставляют локальный статус без изменений.
func mapSupplierStatus(supplierStatus string) (domain.OrderStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(supplierStatus)) {
	case "pending":
		return domain.OrderStatusProcessing, true
	case "processing":
		return domain.OrderStatusProcessing, true
	case "in progress", "inprogress":
		return domain.OrderStatusInProgress, true
	case "completed":
		return domain.OrderStatusCompleted, true
	case "partial":
		return domain.OrderStatusPartial, true
	case "canceled", "cancelled":
		return domain.OrderStatusCancelled, true
	case "refunded":
		return domain.OrderStatusRefunded, true
	default:
		return "", false
	}
}

// refreshable сообщает, имеет ли смысл опрашивать поставщика по заказу
func refreshable(status domain.OrderStatus) bool {
	return status == domain.OrderStatusProcessing || status == domain.OrderStatusInProgress
}

// Get возвращает заказ пользователя, синхронно обновив его статус
// от поставщика. Ошибки опроса проглатываются: возвращается локальное
// (возможно устаревшее) состояние.
func (s *OrderService) Get(ctx context.Context, userID int64, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("order service: failed to get order %q: %w", orderID, err)
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}

	if refreshable(order.Status) && order.APIOrderID != 0 {
		s.refreshStatus(ctx, order)
	}

	return order, nil
}

// refreshStatus опрашивает поставщика и применяет его ответ к заказу.
// Любой сбой логируется и игнорируется.
func (s *OrderService) refreshStatus(ctx context.Context, order *domain.Order) {
	status, err := s.supplier.CheckStatus(ctx, order.APIOrderID)
	if err != nil {
		s.logger.Warn("order status poll failed",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
		return
	}

	mapped, ok := mapSupplierStatus(status.Status)
	if !ok {
		s.logger.Warn("unknown supplier order status",
			zap.String("order_id", order.OrderID),
			zap.String("status", status.Status))
		return
	}

	var deliveredAt *time.Time
	if mapped == domain.OrderStatusCompleted && order.DeliveredAt == nil {
		now := time.Now()
		deliveredAt = &now
	}

	if err := s.orderRepo.UpdateOrderProgress(ctx, order.OrderID, mapped, status.StartCount, status.Remains, deliveredAt); err != nil {
		s.logger.Warn("failed to persist order progress",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
		return
	}

	order.Status = mapped
	order.StartCount = status.StartCount
	order.Remains = status.Remains
	if deliveredAt != nil {
		order.DeliveredAt = deliveredAt
		s.notifier.Notify(ctx, order.UserID, "order", "Order completed",
			fmt.Sprintf("Order %s has been delivered.", order.OrderID))
	}
}

// ListMine возвращает страницу заказов пользователя
func (s *OrderService) ListMine(ctx context.Context, userID, page, limit int64) ([]*domain.Order, int64, error) {
	orders, total, err := s.orderRepo.GetOrdersByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("order service: failed to list orders for user %d: %w", userID, err)
	}
	return orders, total, nil
}

// Cancel отменяет заказ с полным возвратом стоимости.
// Разрешено только для pending/processing и только если услуга
// поддерживает отмену. Отказ поставщика прерывает операцию.
func (s *OrderService) Cancel(ctx context.Context, userID int64, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("order service: failed to get order %q: %w", orderID, err)
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}

	if order.Status != domain.OrderStatusPending && order.Status != domain.OrderStatusProcessing {
		return nil, domain.ErrOrderNotCancelable
	}

	svc, err := s.serviceRepo.GetServiceByID(ctx, order.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("order service: failed to get service %d: %w", order.ServiceID, err)
	}
	if !svc.Cancel {
		return nil, domain.ErrCancelNotSupported
	}

	if order.APIOrderID != 0 {
		if err := s.supplier.CancelOrder(ctx, order.APIOrderID); err != nil {
			return nil, fmt.Errorf("order service: supplier refused to cancel order %q: %w", orderID, err)
		}
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, domain.OrderStatusCancelled); err != nil {
		return nil, fmt.Errorf("order service: failed to mark order %q cancelled: %w", orderID, err)
	}

	if err := s.userRepo.AdjustBalance(ctx, userID, order.Cost); err != nil {
		return nil, fmt.Errorf("order service: failed to refund user %d for order %q: %w", userID, orderID, err)
	}

	tx := &domain.Transaction{
		TransactionID: ident.TransactionID(),
		UserID:        userID,
		Type:          domain.TransactionTypeRefund,
		Amount:        float64(order.Cost * s.equityValue),
		Equities:      order.Cost,
		Status:        domain.TransactionStatusCompleted,
		Reference:     order.OrderID,
	}
	if err := s.txRepo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("order service: failed to record refund for order %q: %w", orderID, err)
	}

	s.notifier.Notify(ctx, userID, "order", "Order cancelled",
		fmt.Sprintf("Order %s was cancelled, %d equities refunded.", order.OrderID, order.Cost))

	order.Status = domain.OrderStatusCancelled
	return order, nil
}

// Refill запрашивает у поставщика пополнение доставленного заказа
func (s *OrderService) Refill(ctx context.Context, userID int64, orderID string) error {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("order service: failed to get order %q: %w", orderID, err)
	}
	if order.UserID != userID {
		return domain.ErrOrderNotFound
	}

	svc, err := s.serviceRepo.GetServiceByID(ctx, order.ServiceID)
	if err != nil {
		return fmt.Errorf("order service: failed to get service %d: %w", order.ServiceID, err)
	}
	if !svc.Refill {
		return domain.ErrRefillNotSupported
	}
	if order.APIOrderID == 0 {
		return domain.ErrRefillNotSupported
	}

	if err := s.supplier.RequestRefill(ctx, order.APIOrderID); err != nil {
		return fmt.Errorf("order service: refill request for order %q failed: %w", orderID, err)
	}

	return nil
}

// ListAll возвращает страницу всех заказов для панели администратора
func (s *OrderService) ListAll(ctx context.Context, page, limit int64) ([]*domain.Order, int64, error) {
	orders, total, err := s.orderRepo.ListOrders(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("order service: failed to list orders: %w", err)
	}
	return orders, total, nil
}
