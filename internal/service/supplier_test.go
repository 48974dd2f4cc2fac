package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplierClient_ListServices(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "services", r.FormValue("action"))
			assert.Equal(t, "test-key", r.FormValue("key"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"service": 101, "name": "Instagram Followers [Real]", "category": "Instagram", "rate": "100.00", "min": "10", "max": "10000", "refill": true, "cancel": true},
				{"service": "102", "name": "YouTube Views", "category": "YouTube", "rate": "55.50", "min": 100, "max": 100000, "refill": false, "cancel": false}
			]`))
		}))
		defer server.Close()

		client := NewSupplierClient(server.URL, "test-key", 5*time.Second)

		services, err := client.ListServices(context.Background())
		require.NoError(t, err)
		require.Len(t, services, 2)
		assert.Equal(t, int64(101), services[0].ID)
		assert.Equal(t, "100.00", services[0].Rate)
		assert.Equal(t, int64(10), services[0].Min)
		// Числовые поля строками тоже принимаются
		assert.Equal(t, int64(102), services[1].ID)
		assert.Equal(t, int64(100), services[1].Min)
	})

	t.Run("Error payload with status 200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error": "invalid api key"}`))
		}))
		defer server.Close()

		client := NewSupplierClient(server.URL, "bad-key", 5*time.Second)

		_, err := client.ListServices(context.Background())
		require.Error(t, err)

		var supErr *SupplierError
		require.ErrorAs(t, err, &supErr)
		assert.Equal(t, http.StatusOK, supErr.Status)
		assert.Contains(t, supErr.Body, "invalid api key")
	})

	t.Run("HTTP error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewSupplierClient(server.URL, "test-key", 5*time.Second)

		_, err := client.ListServices(context.Background())
		var supErr *SupplierError
		require.ErrorAs(t, err, &supErr)
		assert.Equal(t, http.StatusInternalServerError, supErr.Status)
	})

	t.Run("Network failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewSupplierClient(server.URL, "test-key", time.Second)

		_, err := client.ListServices(context.Background())
		var supErr *SupplierError
		require.ErrorAs(t, err, &supErr)
		assert.Equal(t, 0, supErr.Status)
	})
}

func TestSupplierClient_GetBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "balance", r.FormValue("action"))

		w.Write([]byte(`{"balance": "12500.75", "currency": "NGN"}`))
	}))
	defer server.Close()

	client := NewSupplierClient(server.URL, "test-key", 5*time.Second)

	balance, err := client.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12500.75, balance.Balance)
	assert.Equal(t, "NGN", balance.Currency)
}

func TestSupplierClient_PlaceOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "add", r.FormValue("action"))
			assert.Equal(t, "101", r.FormValue("service"))
			assert.Equal(t, "https://instagram.com/someone", r.FormValue("link"))
			assert.Equal(t, "500", r.FormValue("quantity"))

			w.Write([]byte(`{"order": 777}`))
		}))
		defer server.Close()

		client := NewSupplierClient(server.URL, "test-key", 5*time.Second)

		apiOrderID, err := client.PlaceOrder(context.Background(), 101, "https://instagram.com/someone", 500)
		require.NoError(t, err)
		assert.Equal(t, int64(777), apiOrderID)
	})

	t.Run("Order id as string", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"order": "778"}`))
		}))
		defer server.Close()

		client := NewSupplierClient(server.URL, "test-key", 5*time.Second)

		apiOrderID, err := client.PlaceOrder(context.Background(), 101, "https://instagram.com/someone", 500)
		require.NoError(t, err)
		assert.Equal(t, int64(778), apiOrderID)
	})

	t.Run("Not enough funds", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error": "not_enough_funds"}`))
		}))
		defer server.Close()

		client := NewSupplierClient(server.URL, "test-key", 5*time.Second)

		_, err := client.PlaceOrder(context.Background(), 101, "https://instagram.com/someone", 500)
		var supErr *SupplierError
		require.ErrorAs(t, err, &supErr)
		assert.Contains(t, supErr.Body, "not_enough_funds")
	})
}

func TestSupplierClient_CheckStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "status", r.FormValue("action"))
		assert.Equal(t, "777", r.FormValue("order"))

		w.Write([]byte(`{"status": "In progress", "start_count": "150", "remains": "350", "charge": "0.60"}`))
	}))
	defer server.Close()

	client := NewSupplierClient(server.URL, "test-key", 5*time.Second)

	status, err := client.CheckStatus(context.Background(), 777)
	require.NoError(t, err)
	assert.Equal(t, "In progress", status.Status)
	assert.Equal(t, int64(150), status.StartCount)
	assert.Equal(t, int64(350), status.Remains)
	assert.Equal(t, "0.60", status.Charge)
}

func TestSupplierClient_CancelOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "cancel", r.FormValue("action"))
			assert.Equal(t, "777", r.FormValue("order"))

			w.Write([]byte(`{"cancel": 1}`))
		}))
		defer server.Close()

		client := NewSupplierClient(server.URL, "test-key", 5*time.Second)

		err := client.CancelOrder(context.Background(), 777)
		assert.NoError(t, err)
	})

	t.Run("Cancel not supported", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error": "order cannot be cancelled"}`))
		}))
		defer server.Close()

		client := NewSupplierClient(server.URL, "test-key", 5*time.Second)

		err := client.CancelOrder(context.Background(), 777)
		var supErr *SupplierError
		require.ErrorAs(t, err, &supErr)
	})
}
