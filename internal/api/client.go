package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/domain"
)

// Client talks to the remote storefront API. All calls are one-shot: no
// retries, no backoff. A circuit breaker sits in front of the transport so a
// dead backend fails fast instead of tying up every page load.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	log     *slog.Logger
}

type Config struct {
	// BaseURL is the API root, e.g. "https://shop.example.com/api/".
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "backend-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/") + "/",
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
		log:     log,
	}
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password"`
	Password2 string `json:"password2,omitempty"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// checkoutRequest is the client-sent item list variant of the checkout body.
type checkoutRequest struct {
	Items []domain.CartLine `json:"items"`
}

// Register creates an account. A 4xx response comes back as *ValidationError
// with the server's field errors intact.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	const op = "register"

	resp, err := c.post(ctx, op, "users/register/", "", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &ValidationError{Op: op, Status: resp.StatusCode, Detail: readDetail(resp.Body)}
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, creds Credentials) (domain.Session, error) {
	const op = "login"

	resp, err := c.post(ctx, op, "users/login/", "", creds)
	if err != nil {
		return domain.Session{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Session{}, &ValidationError{Op: op, Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var sess domain.Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		return domain.Session{}, &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if sess.AccessToken == "" {
		return domain.Session{}, &ValidationError{Op: op, Status: resp.StatusCode, Detail: json.RawMessage(`"login response had no access token"`)}
	}
	return sess, nil
}

// ListProducts fetches the catalog. No auth needed.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "list products"

	resp, err := c.get(ctx, op, "products/", "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServerError{Op: op, Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return products, nil
}

// ListOrders fetches the caller's order history.
func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	const op = "list orders"

	if token == "" {
		return nil, ErrAuthRequired
	}

	resp, err := c.get(ctx, op, "orders/", token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServerError{Op: op, Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var orders []domain.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return orders, nil
}

// Checkout submits the order. A nil item list sends an empty body, telling the
// server to use its own cart for the user.
func (c *Client) Checkout(ctx context.Context, token string, items []domain.CartLine) error {
	const op = "checkout"

	if token == "" {
		return ErrAuthRequired
	}

	var body any
	if items != nil {
		body = checkoutRequest{Items: items}
	}

	resp, err := c.post(ctx, op, "orders/checkout/", token, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServerError{Op: op, Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	return nil
}

// ImageURL resolves a product image path against the backend origin. Image
// paths are served from the site root, not under the API prefix.
func (c *Client) ImageURL(path string) string {
	origin := strings.TrimSuffix(c.baseURL, "api/")
	return strings.TrimSuffix(origin, "/") + "/" + strings.TrimPrefix(path, "/")
}

func (c *Client) get(ctx context.Context, op, path, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return c.do(op, req, token)
}

func (c *Client) post(ctx context.Context, op, path, token string, body any) (*http.Response, error) {
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(op, req, token)
}

func (c *Client) do(op string, req *http.Request, token string) (*http.Response, error) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(req)
	})
	if err != nil {
		c.log.Error("backend request failed", "op", op, "url", req.URL.String(), "err", err)
		return nil, &TransportError{Op: op, Err: err}
	}
	return resp, nil
}

// readDetail pulls the error payload out of a non-success response. Bodies
// that are not JSON are passed through as a JSON string.
func readDetail(r io.Reader) json.RawMessage {
	raw, err := io.ReadAll(io.LimitReader(r, 1<<16))
	if err != nil || len(raw) == 0 {
		return nil
	}
	if json.Valid(raw) {
		return raw
	}
	quoted, _ := json.Marshal(string(raw))
	return quoted
}
