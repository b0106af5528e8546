// Package storage opens the economy.Store selected by a binary's configuration.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/MarkoPoloResearchLab/ink/internal/store/gormstore"
	"github.com/MarkoPoloResearchLab/ink/internal/store/memstore"
	"github.com/MarkoPoloResearchLab/ink/internal/store/pgstore"
	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	BackendGorm   = "gorm"
	BackendPgx    = "pgx"
	BackendMemory = "memory"

	driverPostgres = "postgres"
	driverSQLite   = "sqlite"

	defaultSQLiteFile = "ink.db"
)

// Options selects the backend. The gorm backend speaks PostgreSQL or SQLite depending on DatabaseURL.
type Options struct {
	Backend     string
	DatabaseURL string
}

// Open returns the store and a cleanup func releasing its connections.
func Open(ctx context.Context, options Options) (economy.Store, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(options.Backend)) {
	case "", BackendGorm:
		return openGorm(ctx, options.DatabaseURL)
	case BackendPgx:
		return openPgx(ctx, options.DatabaseURL)
	case BackendMemory:
		return memstore.New(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", options.Backend)
	}
}

func openGorm(ctx context.Context, dsn string) (economy.Store, func() error, error) {
	driver, sqlitePath, err := resolveDriver(dsn)
	if err != nil {
		return nil, nil, err
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	var db *gorm.DB
	switch driver {
	case driverPostgres:
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	default:
		db, err = gorm.Open(sqlite.Open(sqlitePath), cfg)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error { return sqlDB.Close() }
	if err := gormstore.Migrate(db.WithContext(ctx)); err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	return gormstore.New(db), cleanup, nil
}

func openPgx(ctx context.Context, dsn string) (economy.Store, func() error, error) {
	if driver, _, err := resolveDriver(dsn); err != nil || driver != driverPostgres {
		return nil, nil, fmt.Errorf("pgx backend requires a postgres:// database url")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("pgx pool: %w", err)
	}
	cleanup := func() error {
		pool.Close()
		return nil
	}
	store := pgstore.New(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return store, cleanup, nil
}

func resolveDriver(dsn string) (string, string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return driverPostgres, "", nil
	}
	if strings.HasPrefix(dsn, "sqlite://") {
		parsed, err := url.Parse(dsn)
		if err != nil {
			return "", "", fmt.Errorf("parse sqlite url: %w", err)
		}
		path := parsed.Path
		if path == "" {
			path = parsed.Host
		}
		if path == "" || path == "/" {
			path = defaultSQLiteFile
		}
		sqlitePath, err := normalizeSQLitePath(path)
		return driverSQLite, sqlitePath, err
	}
	// Anything else is a direct sqlite path.
	sqlitePath, err := normalizeSQLitePath(defaultIfEmpty(dsn, defaultSQLiteFile))
	return driverSQLite, sqlitePath, err
}

func normalizeSQLitePath(path string) (string, error) {
	if path == ":memory:" {
		return path, nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(".", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path, nil
}

func defaultIfEmpty(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
