package domain

import "time"

// Role представляет роль пользователя в системе
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleSupport Role = "support"
)

// OrderStatus представляет статус заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusInProgress OrderStatus = "in progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusPartial    OrderStatus = "partial"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusFailed     OrderStatus = "failed"
)

// TransactionType представляет тип транзакции
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeOrder      TransactionType = "order"
	TransactionTypeRefund     TransactionType = "refund"
	TransactionTypeReferral   TransactionType = "referral"
	TransactionTypeBonus      TransactionType = "bonus"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// TransactionStatus представляет статус транзакции
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// TicketStatus представляет статус тикета поддержки
type TicketStatus string

const (
	TicketStatusOpen          TicketStatus = "open"
	TicketStatusInProgress    TicketStatus = "in progress"
	TicketStatusAwaitingReply TicketStatus = "awaiting reply"
	TicketStatusResolved      TicketStatus = "resolved"
	TicketStatusClosed        TicketStatus = "closed"
)

// User представляет аккаунт пользователя.
// Баланс и все денежные счетчики хранятся в эквити (целые единицы).
type User struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	PasswordHash     string    `json:"-"`
	Balance          int64     `json:"balance"`
	TotalSpent       int64     `json:"totalSpent"`
	TotalOrders      int64     `json:"totalOrders"`
	ReferralCode     string    `json:"referralCode"`
	ReferredBy       string    `json:"referredBy,omitempty"`
	ReferralCount    int64     `json:"referralCount"`
	ReferralEarnings int64     `json:"referralEarnings"`
	Role             Role      `json:"role"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Service представляет позицию каталога, зеркалируемую от поставщика.
// Rate — цена поставщика за 1000 единиц в найре, OurRate — цена перепродажи
// за 1000 единиц в эквити, NairaRate — цена перепродажи за 1000 в найре.
type Service struct {
	ServiceID   int64     `json:"serviceId"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Platform    string    `json:"platform"`
	ServiceType string    `json:"serviceType"`
	Rate        float64   `json:"rate"`
	NairaRate   int64     `json:"nairaRate"`
	OurRate     int64     `json:"ourRate"`
	Min         int64     `json:"min"`
	Max         int64     `json:"max"`
	Refill      bool      `json:"refill"`
	Cancel      bool      `json:"cancel"`
	IsActive    bool      `json:"isActive"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Order представляет покупку услуги пользователем.
// ServiceName/Platform/ServiceType — снимок на момент покупки,
// последующие правки каталога их не меняют. Cost фиксируется при создании.
type Order struct {
	OrderID       string      `json:"orderId"`
	UserID        int64       `json:"-"`
	ServiceID     int64       `json:"serviceId"`
	ServiceName   string      `json:"serviceName"`
	Platform      string      `json:"platform"`
	ServiceType   string      `json:"serviceType"`
	TargetURL     string      `json:"targetUrl"`
	Quantity      int64       `json:"quantity"`
	Cost          int64       `json:"cost"`
	Status        OrderStatus `json:"status"`
	APIOrderID    int64       `json:"-"`
	StartCount    int64       `json:"startCount"`
	Remains       int64       `json:"remains"`
	SupplierError string      `json:"-"`
	CreatedAt     time.Time   `json:"createdAt"`
	DeliveredAt   *time.Time  `json:"deliveredAt,omitempty"`
}

// Transaction представляет запись в леджере.
// Amount в найре и Equities в эквити должны соответствовать курсу на момент
// создания. Мутируются только депозиты: pending -> completed/cancelled,
// ровно один раз, действием администратора.
type Transaction struct {
	TransactionID string            `json:"transactionId"`
	UserID        int64             `json:"-"`
	Type          TransactionType   `json:"type"`
	Amount        float64           `json:"amount"`
	Equities      int64             `json:"equities"`
	Status        TransactionStatus `json:"status"`
	Reference     string            `json:"reference"`
	ProofImage    string            `json:"proofImage,omitempty"`
	SenderName    string            `json:"senderName,omitempty"`
	SenderAccount string            `json:"senderAccount,omitempty"`
	TransferDate  string            `json:"transferDate,omitempty"`
	VerifiedBy    string            `json:"verifiedBy,omitempty"`
	VerifiedAt    *time.Time        `json:"verifiedAt,omitempty"`
	Reason        string            `json:"reason,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// TicketReply представляет одно сообщение в переписке тикета
type TicketReply struct {
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	IsStaff   bool      `json:"isStaff"`
	CreatedAt time.Time `json:"createdAt"`
}

// Ticket представляет обращение в поддержку
type Ticket struct {
	TicketID   string        `json:"ticketId"`
	UserID     int64         `json:"-"`
	Subject    string        `json:"subject"`
	Message    string        `json:"message"`
	Status     TicketStatus  `json:"status"`
	Priority   string        `json:"priority"`
	Category   string        `json:"category"`
	AssignedTo string        `json:"assignedTo,omitempty"`
	Replies    []TicketReply `json:"replies"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// Notification представляет уведомление пользователя
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// SupplierService представляет позицию каталога в ответе поставщика.
// Rate приходит строкой и парсится при синхронизации.
type SupplierService struct {
	ID       int64  `json:"service"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Rate     string `json:"rate"`
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Refill   bool   `json:"refill"`
	Cancel   bool   `json:"cancel"`
}

// SupplierBalance представляет баланс аккаунта у поставщика
type SupplierBalance struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// SupplierOrderStatus представляет статус заказа у поставщика
type SupplierOrderStatus struct {
	Status     string `json:"status"`
	StartCount int64  `json:"start_count"`
	Remains    int64  `json:"remains"`
	Charge     string `json:"charge"`
}

// SyncResult представляет итог синхронизации каталога
type SyncResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

// DashboardStats представляет сводку для панели администратора
type DashboardStats struct {
	TotalUsers      int64   `json:"totalUsers"`
	ActiveUsers     int64   `json:"activeUsers"`
	TotalOrders     int64   `json:"totalOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingDeposits int64   `json:"pendingDeposits"`
	OpenTickets     int64   `json:"openTickets"`
}
