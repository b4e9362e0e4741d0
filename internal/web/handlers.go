package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/api"
	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/domain"
	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/render"
)

// Ports the page controllers need. Consumers define the interfaces; the
// concrete types live in their own packages.

type Catalog interface {
	Products(ctx context.Context, limit int) ([]domain.Product, error)
}

type AccountAPI interface {
	Register(ctx context.Context, req api.RegisterRequest) error
	Login(ctx context.Context, creds api.Credentials) (domain.Session, error)
	ListOrders(ctx context.Context, token string) ([]domain.Order, error)
	ImageURL(path string) string
}

type CartStore interface {
	Add(ctx context.Context, productID int64, name string, unitPrice decimal.Decimal) error
	Remove(ctx context.Context, productID int64) error
	Items(ctx context.Context) ([]domain.CartLine, error)
	Total(ctx context.Context) (decimal.Decimal, error)
}

type SessionStore interface {
	Save(ctx context.Context, sess domain.Session) error
	Token(ctx context.Context) (string, error)
	Authenticated(ctx context.Context) bool
	Clear(ctx context.Context) error
}

type Checkout interface {
	PlaceOrder(ctx context.Context) error
}

// Options are the variant knobs the two deployed web clients disagree on.
type Options struct {
	IncludeEmailOnSignup bool
	RequireLoginForCart  bool

	// ProductLimit caps the home page grid. 0 shows everything.
	ProductLimit int
}

type Handlers struct {
	catalog  Catalog
	account  AccountAPI
	cart     CartStore
	session  SessionStore
	checkout Checkout
	renderer *render.Renderer
	opts     Options
	log      *slog.Logger
}

func NewHandlers(catalog Catalog, account AccountAPI, cart CartStore, session SessionStore, checkout Checkout, renderer *render.Renderer, opts Options, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{
		catalog:  catalog,
		account:  account,
		cart:     cart,
		session:  session,
		checkout: checkout,
		renderer: renderer,
		opts:     opts,
		log:      log,
	}
}

// Home renders the product grid.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Products(r.Context(), h.opts.ProductLimit)
	if err != nil {
		h.log.Error("product listing failed", "request_id", getRequestID(r.Context()), "err", err)
		h.renderPage(w, r, "Products", template.HTML("<p>Could not load products. Please try again.</p>"))
		return
	}

	views := make([]render.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, render.ProductView{Product: p, ImageURL: h.account.ImageURL(p.Image)})
	}

	var buf bytes.Buffer
	if err := h.renderer.ProductsGrid(&buf, views); err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderPage(w, r, "Products", template.HTML(buf.String()))
}

func (h *Handlers) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "Signup", "signup-form")
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "/signup", "invalid form submission")
		return
	}

	req := api.RegisterRequest{
		Username:  r.PostFormValue("username"),
		Password:  r.PostFormValue("password"),
		Password2: r.PostFormValue("password2"),
	}
	if h.opts.IncludeEmailOnSignup {
		req.Email = r.PostFormValue("email")
	}

	if err := h.account.Register(r.Context(), req); err != nil {
		h.redirectWithError(w, r, "/signup", userMessage(err))
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "Login", "login-form")
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "/login", "invalid form submission")
		return
	}

	sess, err := h.account.Login(r.Context(), api.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		h.redirectWithError(w, r, "/login", userMessage(err))
		return
	}

	if err := h.session.Save(r.Context(), sess); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Clear(r.Context()); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Cart renders the cart page with line totals and the place-order button.
func (h *Handlers) Cart(w http.ResponseWriter, r *http.Request) {
	lines, err := h.cart.Items(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	total, err := h.cart.Total(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.CartRows(&buf, lines, total); err != nil {
		h.renderError(w, r, err)
		return
	}
	buf.WriteString(`<form method="post" action="/orders"><button type="submit" class="btn btn-success w-100 mt-2">Place Order</button></form>`)
	h.renderPage(w, r, "Cart", template.HTML(buf.String()))
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	if h.opts.RequireLoginForCart && !h.session.Authenticated(r.Context()) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "/", "invalid form submission")
		return
	}

	productID, err := strconv.ParseInt(r.PostFormValue("product_id"), 10, 64)
	if err != nil || productID <= 0 {
		h.redirectWithError(w, r, "/", "invalid product")
		return
	}
	name := r.PostFormValue("name")
	price, err := decimal.NewFromString(r.PostFormValue("price"))
	if err != nil || price.IsNegative() {
		h.redirectWithError(w, r, "/", "invalid price")
		return
	}

	if err := h.cart.Add(r.Context(), productID, name, price); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		h.redirectWithError(w, r, "/cart", "invalid product")
		return
	}

	if err := h.cart.Remove(r.Context(), productID); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// PlaceOrder submits the checkout and routes by outcome: orders page on
// success, login when anonymous, back to the cart with a message otherwise.
func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	err := h.checkout.PlaceOrder(r.Context())
	if err == nil {
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}
	if errors.Is(err, api.ErrAuthRequired) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.log.Warn("order submission failed", "request_id", getRequestID(r.Context()), "err", err)
	h.redirectWithError(w, r, "/cart", userMessage(err))
}

func (h *Handlers) Orders(w http.ResponseWriter, r *http.Request) {
	token, err := h.session.Token(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if token == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	var buf bytes.Buffer
	orders, err := h.account.ListOrders(r.Context(), token)
	if err != nil {
		// Matches the deployed client: a failed fetch shows the empty state.
		h.log.Warn("order listing failed", "request_id", getRequestID(r.Context()), "err", err)
		orders = nil
	}
	if err := h.renderer.OrderCards(&buf, orders); err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderPage(w, r, "Your Orders", template.HTML(buf.String()))
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		h.log.Error("failed to encode response", "err", err)
	}
}

func (h *Handlers) redirectWithError(w http.ResponseWriter, r *http.Request, path, msg string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("request failed", "request_id", getRequestID(r.Context()), "path", r.URL.Path, "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// userMessage maps the error taxonomy to what the user should see: server
// validation detail verbatim, a generic notice for transport trouble.
func userMessage(err error) string {
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		return string(verr.Detail)
	}
	var serr *api.ServerError
	if errors.As(err, &serr) {
		if len(serr.Detail) > 0 {
			return string(serr.Detail)
		}
		return "the server rejected the request"
	}
	return "something went wrong, please try again"
}
