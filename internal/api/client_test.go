package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xtart-crm/internal/logger"
	"xtart-crm/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second, logger.Nop{})
}

func TestInvoicesNormalizesWireFormat(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/facturas", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"facturaId": "F001",
				"cliente": {"clienteId": 7, "nombre": "Ana"},
				"comercial": {"comercialId": 2},
				"producto": {"productoId": 9},
				"fechaEmision": "2024-01-15T00:00:00",
				"estado": "pagada",
				"total": "121,00€",
				"subtotal": 100,
				"totalIva": 21
			}
		]`))
	}))

	invoices, ok := client.Invoices(0, 0)

	require.True(t, ok)
	require.Len(t, invoices, 1)
	inv := invoices[0]
	assert.Equal(t, "F001", inv.ID)
	assert.Equal(t, int64(7), inv.CustomerID)
	assert.Equal(t, int64(2), inv.AgentID)
	assert.Equal(t, int64(9), inv.ProductID)
	assert.Equal(t, "pagada", inv.Status)
	assert.Equal(t, 121.0, inv.Total)
	assert.Equal(t, 100.0, inv.Subtotal)
	assert.Equal(t, 21.0, inv.TaxTotal)
}

func TestCustomersSendsAgentFilter(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("comercialId"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	customers, ok := client.Customers(3)

	require.True(t, ok)
	assert.Empty(t, customers)
}

func TestEmptyListIsNotFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	agents, ok := client.Agents()

	require.True(t, ok)
	assert.NotNil(t, agents)
	assert.Empty(t, agents)
}

func TestServerErrorIsFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, ok := client.Agents()
	assert.False(t, ok)
}

func TestUndecodableBodyIsFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>definitely not json</html>`))
	}))

	_, ok := client.Agents()
	assert.False(t, ok)
}

func TestLoginParsesRoleAndName(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "david", r.PostForm.Get("username"))
		assert.Equal(t, "secreto", r.PostForm.Get("password"))
		_, _ = w.Write([]byte("ADMIN,David García"))
	}))

	sess, err := client.Login("david", "secreto")

	require.NoError(t, err)
	assert.Equal(t, "david", sess.Username)
	assert.Equal(t, "David García", sess.Name)
	assert.Equal(t, session.RoleAdmin, sess.Role)
	assert.True(t, sess.IsAdmin())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Login("david", "mal")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStatisticsDefaultsOnFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	stats := client.Statistics()

	assert.Zero(t, stats.TotalRequests)
	assert.Zero(t, stats.AverageResponseTime)
}

func TestStatisticsDecodesCounters(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalRequests": 120,
			"successfulRequests": 110,
			"failedRequests": 10,
			"averageResponseTime": 35.5
		}`))
	}))

	stats := client.Statistics()

	assert.Equal(t, int64(120), stats.TotalRequests)
	assert.Equal(t, int64(110), stats.SuccessfulRequests)
	assert.Equal(t, int64(10), stats.FailedRequests)
	assert.Equal(t, 35.5, stats.AverageResponseTime)
}

func TestStartReportValidatesKind(t *testing.T) {
	var hits int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/informes/clientes", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.True(t, client.StartReport("clientes"))
	assert.False(t, client.StartReport("nóminas"))
	assert.Equal(t, 1, hits)
}

func TestDeleteHandlesNoContent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/clientes/5", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.True(t, client.DeleteCustomer(5))
}
