package domain

import "errors"

// Ошибки пользователей
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is deactivated")
)

// Ошибки каталога и заказов
var (
	ErrServiceNotFound    = errors.New("service not found")
	ErrServiceInactive    = errors.New("service is not available")
	ErrInvalidQuantity    = errors.New("quantity outside service limits")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotCancelable = errors.New("order cannot be cancelled")
	ErrCancelNotSupported = errors.New("service does not support cancellation")
	ErrRefillNotSupported = errors.New("service does not support refill")
)

// Ошибки леджера
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("invalid amount")
)

// Ошибки тикетов
var (
	ErrTicketNotFound = errors.New("ticket not found")
)
