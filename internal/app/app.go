// Package app wires configuration into the run service and its backing
// stores. Both entrypoints share it.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/RMahshie/scanlist/internal/automation"
	"github.com/RMahshie/scanlist/internal/config"
	"github.com/RMahshie/scanlist/internal/device"
	"github.com/RMahshie/scanlist/internal/metrics"
	"github.com/RMahshie/scanlist/internal/repository"
	"github.com/RMahshie/scanlist/internal/repository/memory"
	"github.com/RMahshie/scanlist/internal/repository/postgres"
	"github.com/RMahshie/scanlist/internal/spectral"
	"github.com/RMahshie/scanlist/internal/storage"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// App holds the wired dependencies
type App struct {
	Runs    repository.RunRepository
	Archive storage.ReportArchive // nil when archiving is disabled
	Service automation.Service

	db *sql.DB
}

// New builds the application from cfg. Metrics are registered on reg.
func New(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*App, error) {
	a := &App{}

	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgres.MigrateUp(db); err != nil {
			db.Close()
			return nil, err
		}
		a.db = db
		a.Runs = postgres.NewPostgresRunRepository(db)
		log.Info().Msg("Run history stored in PostgreSQL")
	} else {
		a.Runs = memory.NewRunRepository()
		log.Info().Msg("Run history kept in memory")
	}

	if cfg.AWS.S3Bucket != "" {
		archive, err := storage.NewS3Archive(ctx, storage.S3Config{
			Bucket:    cfg.AWS.S3Bucket,
			Endpoint:  cfg.AWS.S3Endpoint,
			Region:    cfg.AWS.Region,
			AccessKey: cfg.AWS.AccessKeyID,
			SecretKey: cfg.AWS.SecretAccessKey,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Archive = archive
		log.Info().Str("bucket", cfg.AWS.S3Bucket).Msg("Report archiving enabled")
	}

	opts := spectral.Options{
		Interface: cfg.Device.Interface,
		Duration:  cfg.Device.ScanDuration,
	}
	a.Service = automation.NewService(
		device.NewRouterOS(cfg.Device.Port, cfg.Device.TLS),
		a.Runs,
		a.Archive,
		metrics.NewPrometheus(reg),
		opts,
	)

	return a, nil
}

// Close releases the database connection, if any
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
