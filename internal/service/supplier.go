package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avc/smm-panel/internal/domain"
)

// HTTPSupplierClient реализует domain.SupplierClient.
// Все операции — form-encoded POST на один эндпоинт; API ключ передается
// полем формы, не заголовком. Повторов и бэкоффа нет, каждый вызов
// ограничен фиксированным таймаутом.
type HTTPSupplierClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewSupplierClient создает новый клиент API поставщика
func NewSupplierClient(apiURL, apiKey string, timeout time.Duration) *HTTPSupplierClient {
	return &HTTPSupplierClient{
		apiURL: apiURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// call выполняет один запрос к поставщику и декодирует ответ в out.
// Любой отказ (сеть, не-200, error-пейлоад) приводится к *SupplierError.
func (c *HTTPSupplierClient) call(ctx context.Context, params url.Values, out any) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("supplier client: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewSupplierError(0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewSupplierError(resp.StatusCode, err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return NewSupplierError(resp.StatusCode, string(body))
	}

	// Поставщик сообщает об ошибках полем error при статусе 200
	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		return NewSupplierError(resp.StatusCode, apiErr.Error)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("supplier client: failed to decode response: %w", err)
		}
	}

	return nil
}

// supplierServiceWire описывает позицию каталога как ее присылает поставщик:
// числовые поля приходят строками
type supplierServiceWire struct {
	Service  json.Number `json:"service"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Rate     string      `json:"rate"`
	Min      json.Number `json:"min"`
	Max      json.Number `json:"max"`
	Refill   bool        `json:"refill"`
	Cancel   bool        `json:"cancel"`
}

// ListServices получает полный каталог поставщика
func (c *HTTPSupplierClient) ListServices(ctx context.Context) ([]domain.SupplierService, error) {
	var wire []supplierServiceWire
	if err := c.call(ctx, url.Values{"action": {"services"}}, &wire); err != nil {
		return nil, err
	}

	services := make([]domain.SupplierService, 0, len(wire))
	for _, w := range wire {
		id, _ := w.Service.Int64()
		minQty, _ := w.Min.Int64()
		maxQty, _ := w.Max.Int64()
		services = append(services, domain.SupplierService{
			ID:       id,
			Name:     w.Name,
			Category: w.Category,
			Rate:     w.Rate,
			Min:      minQty,
			Max:      maxQty,
			Refill:   w.Refill,
			Cancel:   w.Cancel,
		})
	}

	return services, nil
}

// GetBalance получает баланс аккаунта у поставщика
func (c *HTTPSupplierClient) GetBalance(ctx context.Context) (*domain.SupplierBalance, error) {
	var wire struct {
		Balance  string `json:"balance"`
		Currency string `json:"currency"`
	}
	if err := c.call(ctx, url.Values{"action": {"balance"}}, &wire); err != nil {
		return nil, err
	}

	balance, err := strconv.ParseFloat(wire.Balance, 64)
	if err != nil {
		return nil, fmt.Errorf("supplier client: unparsable balance %q: %w", wire.Balance, err)
	}

	return &domain.SupplierBalance{Balance: balance, Currency: wire.Currency}, nil
}

// PlaceOrder размещает заказ у поставщика и возвращает его внешний идентификатор
func (c *HTTPSupplierClient) PlaceOrder(ctx context.Context, serviceID int64, link string, quantity int64) (int64, error) {
	var wire struct {
		Order json.Number `json:"order"`
	}
	params := url.Values{
		"action":   {"add"},
		"service":  {strconv.FormatInt(serviceID, 10)},
		"link":     {link},
		"quantity": {strconv.FormatInt(quantity, 10)},
	}
	if err := c.call(ctx, params, &wire); err != nil {
		return 0, err
	}

	apiOrderID, err := wire.Order.Int64()
	if err != nil {
		return 0, fmt.Errorf("supplier client: unparsable order id %q: %w", wire.Order.String(), err)
	}

	return apiOrderID, nil
}

// CheckStatus получает статус заказа у поставщика
func (c *HTTPSupplierClient) CheckStatus(ctx context.Context, apiOrderID int64) (*domain.SupplierOrderStatus, error) {
	var wire struct {
		Status     string      `json:"status"`
		StartCount json.Number `json:"start_count"`
		Remains    json.Number `json:"remains"`
		Charge     string      `json:"charge"`
	}
	params := url.Values{
		"action": {"status"},
		"order":  {strconv.FormatInt(apiOrderID, 10)},
	}
	if err := c.call(ctx, params, &wire); err != nil {
		return nil, err
	}

	startCount, _ := wire.StartCount.Int64()
	remains, _ := wire.Remains.Int64()

	return &domain.SupplierOrderStatus{
		Status:     wire.Status,
		StartCount: startCount,
		Remains:    remains,
		Charge:     wire.Charge,
	}, nil
}

// RequestRefill запрашивает пополнение доставленного заказа
func (c *HTTPSupplierClient) RequestRefill(ctx context.Context, apiOrderID int64) error {
	params := url.Values{
		"action": {"refill"},
		"order":  {strconv.FormatInt(apiOrderID, 10)},
	}
	return c.call(ctx, params, nil)
}

// CancelOrder отменяет заказ у поставщика
func (c *HTTPSupplierClient) CancelOrder(ctx context.Context, apiOrderID int64) error {
	params := url.Values{
		"action": {"cancel"},
		"order":  {strconv.FormatInt(apiOrderID, 10)},
	}
	return c.call(ctx, params, nil)
}
