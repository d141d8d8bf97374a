package database

import (
	"fmt"

	"github.com/arnavshah/crewplan-api/pkg/config"
	"github.com/arnavshah/crewplan-api/pkg/models"
	"github.com/arnavshah/crewplan-api/pkg/seed"
	"github.com/arnavshah/crewplan-api/pkg/store"
	"go.uber.org/zap"
)

// OpenStore builds the entity store selected by cfg, wrapped with metrics.
// The memory store starts from data; a SQL store is seeded with data only
// when it has no projects yet. The returned func releases the database.
func OpenStore(cfg config.Config, data seed.Data, logger *zap.Logger) (*store.Store, func(), error) {
	if cfg.StoreDriver == config.DriverMemory {
		s := store.NewMemory(data.Projects, data.Staff, data.Tasks, data.Assignments, store.DefaultLatency(cfg.LatencyScale))
		logger.Info("Using in-memory store",
			zap.Float64("latency_scale", cfg.LatencyScale),
			zap.Int("projects", len(data.Projects)),
			zap.Int("staff", len(data.Staff)))
		return store.Instrumented(s), func() {}, nil
	}

	db, err := InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	closer := func() { _ = sqlDB.Close() }

	var count int64
	if err := db.Model(&models.Project{}).Count(&count).Error; err != nil {
		closer()
		return nil, nil, fmt.Errorf("failed to count projects: %w", err)
	}
	if count == 0 {
		counts, err := Seed(db, data, false)
		if err != nil {
			closer()
			return nil, nil, fmt.Errorf("failed to seed database: %w", err)
		}
		logger.Info("Seeded empty database",
			zap.Int("projects", counts.Projects),
			zap.Int("staff", counts.Staff),
			zap.Int("tasks", counts.Tasks),
			zap.Int("assignments", counts.Assignments))
	}

	logger.Info("Using SQL store", zap.String("driver", cfg.StoreDriver))
	return store.Instrumented(store.NewGorm(db)), closer, nil
}
