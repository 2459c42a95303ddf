package http

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"et21/internal/auth"
	"et21/internal/content"
	"et21/internal/http/middleware"
	"et21/internal/logging"
	"et21/internal/notify"
	"et21/internal/store"
	"et21/internal/web"
	"et21/resources"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Deps is everything the handlers share. Zero-valued optional fields get
// defaults in NewMux.
type Deps struct {
	Store    store.Store
	TPL      *web.Renderer
	Content  *content.Table
	Notifier notify.Notifier

	// Public is an optional on-disk bundle whose files win over the
	// catch-all landing page.
	Public fs.FS

	LoginRateLimit int
	SecureCookies  bool
}

func NewMux(d Deps) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	if d.TPL == nil {
		rend, err := web.NewRenderer()
		if err != nil {
			return nil, err
		}
		d.TPL = rend
	}
	if d.Content == nil {
		d.Content = content.Default
	}
	if d.Notifier == nil {
		d.Notifier = notify.Noop{}
	}

	static, err := fs.Sub(resources.FS, "static")
	if err != nil {
		return nil, err
	}
	bundle := &publicBundle{fsys: d.Public}

	pages := &PageHandler{TPL: d.TPL, Content: d.Content, Public: bundle}
	mux.HandleFunc("GET /{$}", pages.Landing)
	mux.HandleFunc("GET /buscar", pages.Search)
	mux.HandleFunc("GET /{section}", pages.Info)
	mux.HandleFunc("GET /{section}/{sub...}", pages.Info)
	mux.HandleFunc("GET /", pages.CatchAll)

	mux.Handle("GET /static/", http.StripPrefix("/static/", cacheControl(http.FileServerFS(static))))

	home := &HomeHandler{TPL: d.TPL, Content: d.Content}
	mux.Handle("GET /home", middleware.RequireSession(home))

	contact := &ContactHandler{Store: d.Store, Notifier: d.Notifier}
	mux.Handle("POST /api/contact", contact)

	ah := &AuthHandler{
		Auth:          &auth.Authenticator{Store: d.Store},
		TPL:           d.TPL,
		SecureCookies: d.SecureCookies,
		LoginLimit:    middleware.LoginLimit(d.LoginRateLimit),
	}
	ah.Routes(mux)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := d.Store.Ping(ctx); err != nil {
			logging.From(r.Context()).Warn("http.readyz", "err", err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	return mux, nil
}

// WithStandardMiddleware wraps the mux. trustProxy makes X-Forwarded-For
// and X-Real-IP the client address; leave it off unless a reverse proxy
// overwrites those headers, since the login rate limit keys on it.
func WithStandardMiddleware(next http.Handler, trustProxy bool) http.Handler {
	h := middleware.WithAuth(next)
	h = chimw.Compress(5)(h)
	h = securityHeaders(h)
	h = chimw.Recoverer(h)
	h = requestLogger(h)
	if trustProxy {
		h = chimw.RealIP(h)
	}
	return chimw.RequestID(h)
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data:; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		l := slog.Default().With("request_id", chimw.GetReqID(r.Context()))
		r = r.WithContext(logging.WithLogger(r.Context(), l))

		ww := &wrapWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(ww, r)
		l.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"remote_ip", r.RemoteAddr,
			logging.Since(start),
		)
	})
}

type wrapWriter struct {
	http.ResponseWriter
	status int
}

func (w *wrapWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *wrapWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func cacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		next.ServeHTTP(w, r)
	})
}
