package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL + "/api/", Timeout: 2 * time.Second})
	return client, srv
}

func TestLogin_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users/login/", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Username)

		json.NewEncoder(w).Encode(map[string]string{"access": "acc-1", "refresh": "ref-1"})
	}))

	sess, err := client.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", sess.AccessToken)
	assert.Equal(t, "ref-1", sess.RefreshToken)
}

func TestLogin_BadCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
	}))

	_, err := client.Login(context.Background(), Credentials{Username: "alice", Password: "wrong"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, http.StatusUnauthorized, verr.Status)
	assert.Contains(t, string(verr.Detail), "No active account")
}

func TestRegister_ValidationFailureKeepsPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/register/", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"password":["Password fields didn't match."]}`))
	}))

	err := client.Register(context.Background(), RegisterRequest{Username: "bob", Password: "a", Password2: "b"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.JSONEq(t, `{"password":["Password fields didn't match."]}`, string(verr.Detail))
}

func TestListProducts(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "product listing is unauthenticated")

		w.Write([]byte(`[{"id":7,"name":"Widget","price":"9.99","image":"/media/widget.png"}]`))
	}))

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("9.99")))
}

func TestListOrders_SendsBearerToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/", r.URL.Path)
		require.Equal(t, "Bearer acc-1", r.Header.Get("Authorization"))

		w.Write([]byte(`[{"id":3,"date_created":"2026-08-30","total":"19.98","items":[{"name":"Widget","qty":2,"price":"9.99"}]}]`))
	}))

	orders, err := client.ListOrders(context.Background(), "acc-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(3), orders[0].ID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
}

func TestListOrders_NoTokenNoRequest(t *testing.T) {
	called := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.ListOrders(context.Background(), "")
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.False(t, called)
}

func TestCheckout_SendsItems(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/checkout/", r.URL.Path)
		require.Equal(t, "Bearer acc-1", r.Header.Get("Authorization"))

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "items")

		w.WriteHeader(http.StatusCreated)
	}))

	items := []domain.CartLine{{ProductID: 7, Name: "Widget", UnitPrice: decimal.RequireFromString("9.99"), Quantity: 1}}
	err := client.Checkout(context.Background(), "acc-1", items)
	assert.NoError(t, err)
}

func TestCheckout_NilItemsSendsEmptyBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, 1)
		n, _ := r.Body.Read(b)
		assert.Zero(t, n, "expected empty body")
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.Checkout(context.Background(), "acc-1", nil)
	assert.NoError(t, err)
}

func TestCheckout_ServerRejection(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"cart is empty"}`))
	}))

	err := client.Checkout(context.Background(), "acc-1", []domain.CartLine{})

	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadRequest, serr.Status)
	assert.Contains(t, string(serr.Detail), "cart is empty")
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(Config{BaseURL: srv.URL + "/api/", Timeout: time.Second})
	srv.Close() // nothing listening anymore

	_, err := client.ListProducts(context.Background())

	var terr *TransportError
	assert.ErrorAs(t, err, &terr)
}

func TestImageURL_StripsAPIPrefix(t *testing.T) {
	client := NewClient(Config{BaseURL: "https://shop.example.com/api/"})

	assert.Equal(t, "https://shop.example.com/media/widget.png", client.ImageURL("/media/widget.png"))
	assert.Equal(t, "https://shop.example.com/media/widget.png", client.ImageURL("media/widget.png"))
}
