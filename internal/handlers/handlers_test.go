package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avc/smm-panel/internal/domain"
	"github.com/avc/smm-panel/internal/domain/mocks"
	"github.com/avc/smm-panel/internal/service"
	"github.com/avc/smm-panel/internal/utils/jwt"
	"github.com/avc/smm-panel/internal/utils/password"
)

func authedRequest(method, target, body string, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_Register(t *testing.T) {
	logger := zap.NewNop()
	newHandler := func(userRepo domain.UserRepository) *AuthHandler {
		authService := service.NewAuthService(
			userRepo,
			password.NewBCryptHasher(password.DefaultCost),
			jwt.NewManager("test-secret", time.Hour),
			"admin", "admin-secret", 6,
		)
		return NewAuthHandler(authService, logger)
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*domain.User")).
			Return(&domain.User{ID: 1, Username: "chidi", Role: domain.RoleUser}, nil).Once()
		handler := newHandler(userRepo)

		body := `{"username":"chidi","email":"chidi@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)

		resp := decodeBody(t, w)
		assert.Equal(t, true, resp["success"])
		assert.NotEmpty(t, resp["token"])
	})

	t.Run("User exists", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*domain.User")).
			Return(nil, domain.ErrUserExists).Once()
		handler := newHandler(userRepo)

		body := `{"username":"chidi","email":"chidi@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["success"])
	})

	t.Run("Short password", func(t *testing.T) {
		handler := newHandler(new(mocks.UserRepository))

		body := `{"username":"chidi","email":"chidi@example.com","password":"123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		handler := newHandler(new(mocks.UserRepository))

		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(`{"username":}`))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func newTestOrderService(m *orderMocks) *service.OrderService {
	return service.NewOrderService(m.orderRepo, m.serviceRepo, m.userRepo, m.txRepo,
		m.supplier, m.notifier, 10, zap.NewNop())
}

type orderMocks struct {
	orderRepo   *mocks.OrderRepository
	serviceRepo *mocks.ServiceRepository
	userRepo    *mocks.UserRepository
	txRepo      *mocks.TransactionRepository
	supplier    *mocks.SupplierClient
	notifier    *mocks.Notifier
}

func newOrderMocks() *orderMocks {
	return &orderMocks{
		orderRepo:   new(mocks.OrderRepository),
		serviceRepo: new(mocks.ServiceRepository),
		userRepo:    new(mocks.UserRepository),
		txRepo:      new(mocks.TransactionRepository),
		supplier:    new(mocks.SupplierClient),
		notifier:    new(mocks.Notifier),
	}
}

func TestOrdersHandler_Place(t *testing.T) {
	logger := zap.NewNop()

	svcEntry := &domain.Service{
		ServiceID: 101,
		Name:      "Instagram Followers",
		OurRate:   12,
		Min:       10,
		Max:       10000,
		IsActive:  true,
	}

	t.Run("Insufficient balance", func(t *testing.T) {
		m := newOrderMocks()
		m.serviceRepo.On("GetServiceByID", mock.Anything, int64(101)).Return(svcEntry, nil).Once()
		m.userRepo.On("GetUserByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Balance: 1}, nil).Once()
		handler := NewOrdersHandler(newTestOrderService(m), logger)

		body := `{"serviceId":101,"targetUrl":"https://instagram.com/someone","quantity":500}`
		w := httptest.NewRecorder()

		handler.Place(w, authedRequest(http.MethodPost, "/orders/place", body, 1))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "insufficient balance", decodeBody(t, w)["message"])
	})

	t.Run("Quantity outside limits", func(t *testing.T) {
		m := newOrderMocks()
		m.serviceRepo.On("GetServiceByID", mock.Anything, int64(101)).Return(svcEntry, nil).Once()
		handler := NewOrdersHandler(newTestOrderService(m), logger)

		body := `{"serviceId":101,"targetUrl":"https://instagram.com/someone","quantity":5}`
		w := httptest.NewRecorder()

		handler.Place(w, authedRequest(http.MethodPost, "/orders/place", body, 1))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown service", func(t *testing.T) {
		m := newOrderMocks()
		m.serviceRepo.On("GetServiceByID", mock.Anything, int64(999)).
			Return(nil, domain.ErrServiceNotFound).Once()
		handler := NewOrdersHandler(newTestOrderService(m), logger)

		body := `{"serviceId":999,"targetUrl":"https://instagram.com/someone","quantity":500}`
		w := httptest.NewRecorder()

		handler.Place(w, authedRequest(http.MethodPost, "/orders/place", body, 1))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Missing auth context", func(t *testing.T) {
		handler := NewOrdersHandler(newTestOrderService(newOrderMocks()), logger)

		req := httptest.NewRequest(http.MethodPost, "/orders/place", bytes.NewBufferString(`{}`))
		w := httptest.NewRecorder()

		handler.Place(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestDepositsHandler_Request(t *testing.T) {
	logger := zap.NewNop()
	bank := service.BankDetails{BankName: "Moniepoint MFB", AccountName: "SMM Panel Ltd", AccountNumber: "0123456789"}

	newHandler := func(txRepo domain.TransactionRepository) *DepositsHandler {
		depositService := service.NewDepositService(txRepo, new(mocks.UserRepository),
			new(mocks.Notifier), bank, 500, 500000, 10, 10, zap.NewNop())
		return NewDepositsHandler(depositService, logger)
	}

	t.Run("Success returns bank instructions", func(t *testing.T) {
		txRepo := new(mocks.TransactionRepository)
		txRepo.On("CreateTransaction", mock.Anything, mock.AnythingOfType("*domain.Transaction")).
			Return(nil).Once()
		handler := newHandler(txRepo)

		w := httptest.NewRecorder()
		handler.Request(w, authedRequest(http.MethodPost, "/deposit/request", `{"amount":1000}`, 1))

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeBody(t, w)
		instructions := resp["instructions"].(map[string]any)
		assert.Equal(t, "Moniepoint MFB", instructions["bankName"])
	})

	t.Run("Amount out of range", func(t *testing.T) {
		handler := newHandler(new(mocks.TransactionRepository))

		w := httptest.NewRecorder()
		handler.Request(w, authedRequest(http.MethodPost, "/deposit/request", `{"amount":100}`, 1))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandler_ResolveDeposit(t *testing.T) {
	logger := zap.NewNop()
	bank := service.BankDetails{}

	newHandler := func(txRepo domain.TransactionRepository, userRepo domain.UserRepository) *AdminHandler {
		notifier := new(mocks.Notifier)
		notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
		depositService := service.NewDepositService(txRepo, userRepo, notifier, bank, 500, 500000, 10, 10, zap.NewNop())
		return NewAdminHandler(nil, nil, nil, depositService, nil, "admin", logger)
	}

	t.Run("Approve", func(t *testing.T) {
		txRepo := new(mocks.TransactionRepository)
		userRepo := new(mocks.UserRepository)
		txRepo.On("GetPendingDeposit", mock.Anything, "TXN1").Return(&domain.Transaction{
			TransactionID: "TXN1", UserID: 1, Equities: 100,
		}, nil).Once()
		txRepo.On("ResolveDeposit", mock.Anything, "TXN1", domain.TransactionStatusCompleted, "admin", "").
			Return(nil).Once()
		userRepo.On("AdjustBalance", mock.Anything, int64(1), int64(100)).Return(nil).Once()
		userRepo.On("GetUserByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil).Once()
		handler := newHandler(txRepo, userRepo)

		body := `{"transactionId":"TXN1","action":"approve"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/deposit/approve", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.ResolveDeposit(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		txRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("Second attempt finds nothing", func(t *testing.T) {
		txRepo := new(mocks.TransactionRepository)
		txRepo.On("GetPendingDeposit", mock.Anything, "TXN1").
			Return(nil, domain.ErrTransactionNotFound).Once()
		handler := newHandler(txRepo, new(mocks.UserRepository))

		body := `{"transactionId":"TXN1","action":"approve"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/deposit/approve", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.ResolveDeposit(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Unknown action", func(t *testing.T) {
		handler := newHandler(new(mocks.TransactionRepository), new(mocks.UserRepository))

		body := `{"transactionId":"TXN1","action":"maybe"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/deposit/approve", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.ResolveDeposit(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestServicesHandler_List(t *testing.T) {
	serviceRepo := new(mocks.ServiceRepository)
	serviceRepo.On("ListActiveServices", mock.Anything).Return([]*domain.Service{
		{ServiceID: 101, Platform: "instagram"},
		{ServiceID: 201, Platform: "youtube"},
	}, nil).Once()

	catalogService := service.NewCatalogService(serviceRepo, new(mocks.SupplierClient), 20, 10, zap.NewNop())
	handler := NewServicesHandler(catalogService, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	services := resp["services"].(map[string]any)
	assert.Len(t, services, 2)
}
