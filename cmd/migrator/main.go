package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/niksmo/shopcart/config"
	"github.com/spf13/pflag"
)

const (
	dsnFlag           = "dsn"
	configFlag        = "config"
	migrationPathFlag = "migrations-path"
	downFlag          = "down"
)

type flags struct {
	dsn            string
	configPath     string
	migrationsPath string
	down           bool
}

func main() {
	f := getFlagsValues(os.Args[1:])
	dsn, err := resolveDSN(f)
	if err != nil {
		slog.Error("too few args", "err", err)
		fallDown()
	}
	makeMigrations(dsn, f.migrationsPath, f.down)
}

type MigrationLogger struct {
	logger  *slog.Logger
	verbose bool
}

func NewMigrationLogger() *MigrationLogger {
	return &MigrationLogger{
		logger:  slog.Default(),
		verbose: true,
	}
}

func (ml *MigrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(strings.TrimRight(fmt.Sprintf(format, v...), "\n"))
}

func (ml *MigrationLogger) Verbose() bool {
	return ml.verbose
}

func getFlagsValues(args []string) flags {
	var f flags
	fs := pflag.NewFlagSet("migrator", pflag.ExitOnError)
	fs.StringVarP(&f.dsn, dsnFlag, "d", "", "postgres connection url")
	fs.StringVarP(&f.configPath, configFlag, "c", "", "shop config file with storage.sql_db")
	fs.StringVarP(&f.migrationsPath, migrationPathFlag, "m", "migrations", "migrations directory")
	fs.BoolVar(&f.down, downFlag, false, "roll back all migrations")
	_ = fs.Parse(args)
	return f
}

// resolveDSN prefers the --dsn flag and falls back to the config file.
func resolveDSN(f flags) (string, error) {
	var errs []error

	if f.migrationsPath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", migrationPathFlag))
	}

	dsn := f.dsn
	if dsn == "" && f.configPath != "" {
		cfg, err := config.Read(f.configPath)
		if err != nil {
			errs = append(errs, fmt.Errorf("--%s flag: %w", configFlag, err))
		} else {
			dsn = cfg.Storage.SQLDB
		}
	}
	if dsn == "" && len(errs) == 0 {
		errs = append(errs, fmt.Errorf("--%s or --%s flag: required", dsnFlag, configFlag))
	}

	if len(errs) != 0 {
		return "", errors.Join(errs...)
	}
	return databaseURL(dsn), nil
}

// databaseURL rewrites the postgres scheme to the pgx5 driver of migrate.
func databaseURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	if strings.HasPrefix(dsn, "pgx5://") {
		return dsn
	}
	return "pgx5://" + dsn
}

func makeMigrations(dbURL, migrationsPath string, down bool) {
	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		dbURL,
	)
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	defer m.Close()

	m.Log = NewMigrationLogger()

	apply, msg := m.Up, "migration applied"
	if down {
		apply, msg = m.Down, "migration rolled back"
	}

	if err := apply(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	m.Log.Printf("%s", msg)
}

func fallDown() {
	os.Exit(2)
}
