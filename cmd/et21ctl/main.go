package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"syscall"

	"et21/internal/config"
	"et21/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v   *viper.Viper
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "et21ctl",
		Short: "et21ctl - administración del sitio de la E.T. N° 21",
		Long: `et21ctl manages the site's credential table and contact messages.

Examples:
  et21ctl user create preceptor@et21.edu.ar
  et21ctl user passwd preceptor@et21.edu.ar --config ./config.yaml
  et21ctl messages list --limit 20
  et21ctl migrate --db-driver postgres --db postgres://et21@localhost/et21`,
		SilenceUsage:      true,
		PersistentPreRunE: a.loadConfig,
	}
	pf := root.PersistentFlags()
	pf.String("config", "config.yaml", "path to config file")
	pf.String("db-driver", "", "override database driver (sqlite|postgres)")
	pf.String("db", "", "override database path (sqlite) or connection URL (postgres)")
	_ = a.v.BindPFlags(pf)
	a.v.SetEnvPrefix("ET21")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(newUserCmd(a), newMessagesCmd(a), newMigrateCmd(a))
	return root
}

func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v.GetString("config"))
	if err != nil {
		if cfg == nil || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; using defaults\n", err)
	}
	applyDBOverrides(&cfg.Database, a.v.GetString("db-driver"), a.v.GetString("db"))
	a.cfg = cfg
	return nil
}

func applyDBOverrides(d *config.DatabaseConfig, driver, target string) {
	if driver = strings.TrimSpace(driver); driver != "" {
		d.Driver = driver
	}
	if target = strings.TrimSpace(target); target == "" {
		return
	}
	if d.Driver == config.DriverPostgres {
		d.URL = target
	} else {
		d.Path = target
	}
}

func (a *app) openStore(ctx context.Context) (store.Store, error) {
	s, err := store.Open(ctx, a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	return s, nil
}

// readPassword is swapped out by tests.
var readPassword = func(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after input
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

const minPasswordLen = 6

func promptNewPassword() (string, error) {
	pw, err := readPassword("Password: ")
	if err != nil {
		return "", err
	}
	pw2, err := readPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if pw != pw2 {
		return "", errors.New("passwords do not match")
	}
	if len(pw) < minPasswordLen {
		return "", fmt.Errorf("password too short (min %d chars)", minPasswordLen)
	}
	return pw, nil
}
