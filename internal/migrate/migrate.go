package migrate

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

type migrator interface {
	Up() error
}

// Migrator applies the sessions schema before the postgres state is used.
type Migrator struct {
	migrator migrator
}

func NewMigrator(cfg *MigrationConfig) (*Migrator, error) {
	m, err := migrate.New(fmt.Sprintf("file://%s", cfg.MigrationsPath), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("migration initialization failed: %w", err)
	}
	return NewMigratorWithDriver(m), nil
}

func NewMigratorWithDriver(driver migrator) *Migrator {
	return &Migrator{
		migrator: driver,
	}
}

// Run applies all pending up migrations. An already current schema is not an error.
func (m *Migrator) Run() error {
	log.Info().Msg("Applying database migrations...")
	if err := m.migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("an error occurred while applying migrations: %w", err)
	}
	log.Info().Msg("Migrations applied successfully.")
	return nil
}
