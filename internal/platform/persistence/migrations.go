package persistence

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// migrationsSourceURL turns a directory such as migrations/postgres into a file:// source
// URL. Values that already carry a scheme are returned unchanged.
func migrationsSourceURL(migrationsPath string) (string, error) {
	if migrationsPath == "" {
		return "", errors.New("migrations path cannot be empty")
	}
	if strings.Contains(migrationsPath, "://") {
		return migrationsPath, nil
	}
	return "file://" + filepath.ToSlash(filepath.Clean(migrationsPath)), nil
}

// RunMigrations brings the ledger schema at databaseURL up to the latest version
func RunMigrations(logger *slog.Logger, databaseURL string, migrationsPath string) error {
	sourceURL, err := migrationsSourceURL(migrationsPath)
	if err != nil {
		return err
	}
	if databaseURL == "" {
		return errors.New("database URL cannot be empty")
	}

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			logger.Warn("Failed to close migrate instance", "source_error", sourceErr, "database_error", dbErr)
		}
	}()

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Debug("Ledger schema already up to date", "source", sourceURL)
	case err != nil:
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("ledger schema version %d is dirty, fix it manually before starting", version)
	}
	logger.Info("Ledger schema migrated", "version", version)
	return nil
}
