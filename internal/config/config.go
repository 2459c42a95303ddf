package config

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BaseURL string `yaml:"base_url"`

	HTTP struct {
		Address        string `yaml:"address"`
		LoginRateLimit int    `yaml:"login_rate_limit"` // attempts per minute per client IP
		TrustProxy     bool   `yaml:"trust_proxy"`      // take the client IP from X-Forwarded-For / X-Real-IP
	} `yaml:"http"`

	Database DatabaseConfig `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
		Format string `yaml:"format"` // "text" | "json"
	} `yaml:"logging"`

	Security struct {
		JWTSecret  string        `yaml:"jwt_secret"`
		SessionTTL time.Duration `yaml:"session_ttl"`
	} `yaml:"security"`

	Web struct {
		PublicDir    string `yaml:"public_dir"`    // optional on-disk bundle served before the embedded assets
		TemplatesDir string `yaml:"templates_dir"` // dev only: parse templates from disk and reload on change
	} `yaml:"web"`

	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite" | "postgres"
	Path   string `yaml:"path"`   // sqlite file

	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"` // e.g. "disable" | "require"
}

func (c *Config) Defaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":3000"
	}
	if c.HTTP.LoginRateLimit == 0 {
		c.HTTP.LoginRateLimit = 10
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.Path == "" {
		c.Database.Path = "database/base_de_datos.db"
	}
	if c.Database.Driver == DriverPostgres {
		if c.Database.Host == "" {
			c.Database.Host = "db"
		}
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.User == "" {
			c.Database.User = "et21"
		}
		if c.Database.Name == "" {
			c.Database.Name = "et21"
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	}
	if c.Security.JWTSecret == "" {
		c.Security.JWTSecret = "change-me"
	}
	if c.Security.SessionTTL == 0 {
		c.Security.SessionTTL = 72 * time.Hour
	}
}

func (c *Config) Validate() error {
	var errs []string
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			errs = append(errs, "database.path must be set for sqlite")
		}
	case DriverPostgres:
		// DB must have either URL or (Host, User, Name)
		if c.Database.URL == "" {
			if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
				errs = append(errs, "database.url or database.{host,user,name} must be set")
			}
		}
	default:
		errs = append(errs, "database.driver must be sqlite or postgres")
	}
	if c.HTTP.LoginRateLimit < 0 {
		errs = append(errs, "http.login_rate_limit must not be negative")
	}
	if c.Security.SessionTTL < 0 {
		errs = append(errs, "security.session_ttl must not be negative")
	}
	if c.BaseURL != "" {
		if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, "base_url must be an absolute URL")
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// SecureCookies reports whether session cookies should carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(c.BaseURL, "https://")
}

// AppURL returns a postgres connection URL for the application DB.
func (d *DatabaseConfig) AppURL() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return "", errors.New("database config incomplete: need host, user, name or set url")
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   d.Host + ":" + strconv.Itoa(d.Port),
		Path:   "/" + d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}
	q := url.Values{}
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
