package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/shopspring/decimal"

	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/domain"
)

// Renderer projects store contents and API responses into HTML fragments. It
// holds no state beyond the parsed templates; output is a pure function of
// the input data.
type Renderer struct {
	tmpl *template.Template
}

// ProductView pairs a product with its resolved image URL, since the API
// serves image paths relative to the site origin.
type ProductView struct {
	Product  domain.Product
	ImageURL string
}

func New() (*Renderer, error) {
	tmpl, err := template.New("fragments").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	}).Parse(fragments)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) ProductsGrid(w io.Writer, products []ProductView) error {
	return r.tmpl.ExecuteTemplate(w, "products", products)
}

func (r *Renderer) CartRows(w io.Writer, lines []domain.CartLine, total decimal.Decimal) error {
	data := struct {
		Lines []domain.CartLine
		Total decimal.Decimal
	}{lines, total}
	return r.tmpl.ExecuteTemplate(w, "cart", data)
}

func (r *Renderer) OrderCards(w io.Writer, orders []domain.Order) error {
	return r.tmpl.ExecuteTemplate(w, "orders", orders)
}

// NavLinks renders the auth section of the navbar: logout when a session
// exists, login and signup links otherwise.
func (r *Renderer) NavLinks(w io.Writer, authenticated bool) error {
	return r.tmpl.ExecuteTemplate(w, "nav", authenticated)
}

const fragments = `
{{define "products"}}
{{range .}}
<div class="col-md-4 mb-3">
  <div class="card h-100">
    <img src="{{.ImageURL}}" class="card-img-top" alt="{{.Product.Name}}">
    <div class="card-body">
      <h5>{{.Product.Name}}</h5>
      <p>${{money .Product.Price}}</p>
      {{if .Product.Category}}<p class="text-muted">{{.Product.Category}}</p>{{end}}
    </div>
    <div class="card-footer">
      <form method="post" action="/cart/items">
        <input type="hidden" name="product_id" value="{{.Product.ID}}">
        <input type="hidden" name="name" value="{{.Product.Name}}">
        <input type="hidden" name="price" value="{{money .Product.Price}}">
        <button type="submit" class="btn btn-primary w-100">Add to Cart</button>
      </form>
    </div>
  </div>
</div>
{{end}}
{{end}}

{{define "cart"}}
{{range .Lines}}
<div class="d-flex justify-content-between border p-2">
  <span>{{.Name}} (x{{.Quantity}})</span>
  <span>${{money .LineTotal}}</span>
  <form method="post" action="/cart/items/{{.ProductID}}/remove">
    <button type="submit" class="btn btn-sm btn-outline-danger">Remove</button>
  </form>
</div>
{{end}}
<div class="d-flex justify-content-between p-2 fw-bold">
  <span>Total</span>
  <span>${{money .Total}}</span>
</div>
{{end}}

{{define "orders"}}
{{range .}}
<div class="border p-2 mb-2">
  <h5>Order #{{.ID}}</h5>
  <p>Date: {{.DateCreated}}</p>
  {{if .Status}}<p>Status: {{.Status}}</p>{{end}}
  <p>Items:</p>
  <ul>
    {{range .Items}}<li>{{.Name}} x{{.Quantity}} - ${{money .ItemTotal}}</li>{{end}}
  </ul>
  <p>Total: ${{money .Total}}</p>
</div>
{{else}}
<p>No orders yet.</p>
{{end}}
{{end}}

{{define "nav"}}
{{if .}}<li class="nav-item"><a class="nav-link" href="/logout">Logout</a></li>
{{else}}<li class="nav-item"><a class="nav-link" href="/login">Login</a></li>
<li class="nav-item"><a class="nav-link" href="/signup">Signup</a></li>
{{end}}
{{end}}
`
