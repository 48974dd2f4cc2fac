package service

import (
	"errors"
	"fmt"
)

// Ошибки валидации ввода
var (
	ErrInvalidInput = errors.New("invalid input")
)

// SupplierError представляет отказ внешнего API поставщика.
// Сохраняет HTTP статус и сырое тело ошибки для диагностики администратором.
// Сетевые ошибки и таймауты приводятся к той же форме со статусом 0.
type SupplierError struct {
	Status int
	Body   string
}

func (e *SupplierError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("supplier API unreachable: %s", e.Body)
	}
	return fmt.Sprintf("supplier API error (status %d): %s", e.Status, e.Body)
}

// NewSupplierError создает новую ошибку поставщика
func NewSupplierError(status int, body string) *SupplierError {
	return &SupplierError{Status: status, Body: body}
}
