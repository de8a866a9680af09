package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/Soumyadip04/MindMesh/migrations"
)

// Migrator is a thin wrapper over goose running the embedded migrations.
type Migrator struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMigrator prepares goose for MySQL with the embedded migration set.
func NewMigrator(db *sql.DB, logger *zap.Logger) (*Migrator, error) {
	if err := goose.SetDialect("mysql"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(migrations.FS)
	return &Migrator{db: db, logger: logger}, nil
}

// Run applies all pending migrations.
func (m *Migrator) Run(ctx context.Context) error {
	m.logger.Info("applying database migrations")
	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}
	m.logger.Info("migrations applied", zap.Int64("version", version))
	return nil
}
