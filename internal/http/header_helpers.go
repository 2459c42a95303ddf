package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"et21/internal/http/middleware"
	"et21/internal/logging"
	"et21/internal/nav"
	"et21/internal/web"
)

func loadHeader(r *http.Request) web.HeaderData {
	email := middleware.Email(r)
	return web.HeaderData{
		LoggedIn: email != "",
		Email:    email,
		Path:     r.URL.Path,
		Query:    r.URL.Query().Get("q"),
		Nav:      nav.Build(r.URL.Path),
	}
}

// render buffers the page so a template error can still become a clean 500.
func render(w http.ResponseWriter, r *http.Request, tpl *web.Renderer, name string, status int, data any) {
	var buf bytes.Buffer
	if err := tpl.Render(&buf, name, data); err != nil {
		logging.From(r.Context()).Error("could not render", "template", name, "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
