package web

import (
	"bytes"
	"html/template"
	"net/http"
)

// layout is the shared page shell. Fragment HTML arrives pre-escaped from the
// renderer; the error banner comes from the query string and is escaped here.
var layout = template.Must(template.New("layout").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} - Storefront</title>
  <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css" rel="stylesheet">
</head>
<body>
<nav class="navbar navbar-expand-lg navbar-dark bg-dark mb-3">
  <div class="container">
    <a class="navbar-brand" href="/">Storefront</a>
    <ul class="navbar-nav ms-auto">
      <li class="nav-item"><a class="nav-link" href="/cart">Cart</a></li>
      <li class="nav-item"><a class="nav-link" href="/orders">Orders</a></li>
      {{.Nav}}
    </ul>
  </div>
</nav>
<div class="container">
  {{if .Error}}<div class="alert alert-danger">{{.Error}}</div>{{end}}
  <h1>{{.Title}}</h1>
  <div class="row">{{.Content}}</div>
</div>
</body>
</html>
`))

// forms holds the static signup and login pages.
var forms = template.Must(template.New("forms").Parse(`
{{define "signup-form"}}
<form method="post" action="/signup" class="col-md-6">
  <div class="mb-3"><label class="form-label">Username</label>
    <input class="form-control" name="username" required></div>
  {{if .IncludeEmail}}
  <div class="mb-3"><label class="form-label">Email</label>
    <input class="form-control" type="email" name="email"></div>
  {{end}}
  <div class="mb-3"><label class="form-label">Password</label>
    <input class="form-control" type="password" name="password" required></div>
  <div class="mb-3"><label class="form-label">Confirm password</label>
    <input class="form-control" type="password" name="password2" required></div>
  <button type="submit" class="btn btn-primary">Sign up</button>
</form>
{{end}}

{{define "login-form"}}
<form method="post" action="/login" class="col-md-6">
  <div class="mb-3"><label class="form-label">Username</label>
    <input class="form-control" name="username" required></div>
  <div class="mb-3"><label class="form-label">Password</label>
    <input class="form-control" type="password" name="password" required></div>
  <button type="submit" class="btn btn-primary">Log in</button>
</form>
{{end}}
`))

type pageData struct {
	Title   string
	Nav     template.HTML
	Content template.HTML
	Error   string
}

func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, title string, content template.HTML) {
	var nav bytes.Buffer
	if err := h.renderer.NavLinks(&nav, h.session.Authenticated(r.Context())); err != nil {
		h.renderError(w, r, err)
		return
	}

	data := pageData{
		Title:   title,
		Nav:     template.HTML(nav.String()),
		Content: content,
		Error:   r.URL.Query().Get("error"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layout.Execute(w, data); err != nil {
		h.log.Error("render page failed", "page", title, "err", err)
	}
}

func (h *Handlers) renderForm(w http.ResponseWriter, r *http.Request, title, name string) {
	var buf bytes.Buffer
	err := forms.ExecuteTemplate(&buf, name, struct{ IncludeEmail bool }{h.opts.IncludeEmailOnSignup})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderPage(w, r, title, template.HTML(buf.String()))
}
