package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"et21/internal/auth"
	"et21/internal/config"
	apphttp "et21/internal/http"
	"et21/internal/logging"
	"et21/internal/store"
	"et21/internal/telegram"
	"et21/internal/web"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil && cfg == nil {
		panic(err)
	}

	l := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	slog.SetDefault(l)

	if err != nil {
		slog.Warn("Could not get `config.yaml` file. Will run with default values", "err", err)
		slog.Warn("The JWT secret will be defined to a default value. This is a security risk in production.")
	}

	auth.SetSecret(cfg.Security.JWTSecret)
	auth.SetSessionTTL(cfg.Security.SessionTTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	st, err := store.Open(dbctx, cfg.Database)
	cancel()
	if err != nil {
		slog.Error("db.open", "driver", cfg.Database.Driver, "err", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("db.ready", "driver", cfg.Database.Driver)

	rend, err := newRenderer(ctx, cfg.Web.TemplatesDir)
	if err != nil {
		slog.Error("Couldn't parse templates", "err", err)
		os.Exit(1)
	}

	var public fs.FS
	if cfg.Web.PublicDir != "" {
		public = os.DirFS(cfg.Web.PublicDir)
	}

	mux, err := apphttp.NewMux(apphttp.Deps{
		Store:          st,
		TPL:            rend,
		Notifier:       telegram.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID),
		Public:         public,
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
		SecureCookies:  cfg.SecureCookies(),
	})
	if err != nil {
		slog.Error("http.mux", "err", err)
		os.Exit(1)
	}
	srv := &http.Server{
		Addr:         cfg.HTTP.Address, // e.g. ":3000"
		Handler:      apphttp.WithStandardMiddleware(mux, cfg.HTTP.TrustProxy),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start
	go func() {
		slog.Info("http.starting", "addr", cfg.HTTP.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http.listen", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("http.shutting_down")
	_ = srv.Shutdown(shutdownCtx)
	slog.Info("http.stopped")
}

// newRenderer uses the embedded templates, or in development the ones under
// dir, reloaded on change.
func newRenderer(ctx context.Context, dir string) (*web.Renderer, error) {
	if dir == "" {
		return web.NewRenderer()
	}
	r, err := web.NewDevRenderer(dir)
	if err != nil {
		return nil, err
	}
	if err := web.Watch(ctx, dir, r); err != nil {
		return nil, err
	}
	slog.Info("web.watching", "dir", dir)
	return r, nil
}
