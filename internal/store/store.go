package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"et21/internal/config"
	"et21/internal/db"
	"et21/internal/dbinit"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: already exists")
)

// Credential is one row of the usuarios table. Password holds whatever
// is stored: a bcrypt hash, or plaintext for rows imported from the old
// database that have not logged in since.
type Credential struct {
	Email    string
	Password string
}

// Message is a contact form submission.
type Message struct {
	ID        int64
	Name      string
	Email     string
	Body      string
	CreatedAt time.Time
}

// Store is the persistence surface of the site.
type Store interface {
	FindCredential(ctx context.Context, email string) (Credential, error)
	CreateCredential(ctx context.Context, email, password string) error
	SetPassword(ctx context.Context, email, password string) error
	DeleteCredential(ctx context.Context, email string) error
	ListCredentials(ctx context.Context) ([]string, error)

	SaveMessage(ctx context.Context, m Message) (int64, error)
	ListMessages(ctx context.Context, limit int) ([]Message, error)

	Ping(ctx context.Context) error
	Close() error
}

const (
	queryTimeout   = 3 * time.Second
	defaultListMax = 50
)

// Open connects to the configured backend and brings its schema up to date.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case "", config.DriverSQLite:
		d, err := db.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
		}
		return NewSQLite(d), nil
	case config.DriverPostgres:
		adminURL, pgURL, err := postgresURLs(cfg)
		if err != nil {
			return nil, err
		}
		if adminURL != "" {
			if err := dbinit.EnsureDatabaseAndMigrate(ctx, adminURL, cfg.Name, cfg.User); err != nil {
				return nil, fmt.Errorf("db init: %w", err)
			}
		}
		pool, err := db.NewPool(ctx, pgURL)
		if err != nil {
			return nil, err
		}
		if cfg.URL != "" {
			if err := migratePool(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("db migrate: %w", err)
			}
		}
		return NewPostgres(pool), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// postgresURLs returns the admin URL used to create the database, empty
// when cfg.URL names an existing database, and the application URL.
func postgresURLs(cfg config.DatabaseConfig) (admin, app string, err error) {
	app, err = cfg.AppURL()
	if err != nil {
		return "", "", err
	}
	if cfg.URL != "" {
		return "", app, nil
	}
	admin, err = dbinit.AdminURL(app)
	if err != nil {
		return "", "", err
	}
	return admin, app, nil
}

func migratePool(ctx context.Context, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return dbinit.Migrate(ctx, conn.Conn())
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return defaultListMax
	}
	return limit
}
