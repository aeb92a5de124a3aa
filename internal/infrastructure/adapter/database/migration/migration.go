package migration

import (
	"context"
	"errors"
	"fmt"

	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.1.0"
)

// step upgrades the schema to version
type step struct {
	version string
	details string
	run     func(ctx context.Context) error
}

// MigrationManager manages database migrations
type MigrationManager struct {
	db               *gorm.DB
	logger           coreport.Logger
	timeProvider     coreport.TimeProvider
	driver           string
	advancedIndexMgr *AdvancedIndexManager
}

// NewMigrationManager creates a new migration manager. Advanced indexes only apply to postgres.
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider, driver string) *MigrationManager {
	return &MigrationManager{
		db:               db,
		logger:           logger,
		timeProvider:     timeProvider,
		driver:           driver,
		advancedIndexMgr: NewAdvancedIndexManager(db, logger),
	}
}

// Models lists every table the core owns
func Models() []any {
	return []any{
		&model.User{},
		&model.LedgerEntry{},
		&model.BorrowRequest{},
		&model.DeliveryJob{},
		&model.PaymentIntent{},
		&model.Notification{},
	}
}

// MigrateAll brings the schema to CurrentSchemaVersion, skipping steps already applied
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
		"driver":         m.driver,
	})

	if err := m.db.WithContext(ctx).AutoMigrate(&model.SchemaVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(ctx)
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	for _, s := range m.steps() {
		if currentVersion != "" && s.version <= currentVersion {
			continue
		}
		m.logger.Info("Applying migration", map[string]any{
			"version": s.version,
			"details": s.details,
		})
		if err := s.run(ctx); err != nil {
			m.logger.Error("Migration failed", map[string]any{
				"error":   err.Error(),
				"version": s.version,
			})
			return fmt.Errorf("migration %s: %w", s.version, err)
		}
		if err := m.setVersion(ctx, s.version, s.details); err != nil {
			return err
		}
		currentVersion = s.version
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": currentVersion,
	})
	return nil
}

func (m *MigrationManager) steps() []step {
	return []step{
		{version: "1.0.0", details: "Base schema", run: m.autoMigrateModels},
		{version: "1.1.0", details: "Query indexes", run: m.createIndexes},
	}
}

// GetCurrentVersion gets the current migration version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.SchemaVersion
	result := m.db.WithContext(ctx).Order("applied_at desc").Order("id desc").First(&version)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}
	return version.Version, nil
}

// setVersion records an applied step
func (m *MigrationManager) setVersion(ctx context.Context, version string, details string) error {
	row := model.SchemaVersion{
		Version:   version,
		Driver:    m.driver,
		Details:   details,
		AppliedAt: m.timeProvider.Now().UTC(),
	}
	return m.db.WithContext(ctx).Create(&row).Error
}

func (m *MigrationManager) autoMigrateModels(ctx context.Context) error {
	m.logger.Info("Auto-migrating database models", nil)
	return m.db.WithContext(ctx).AutoMigrate(Models()...)
}

// createIndexes adds the indexes tag declarations cannot express
func (m *MigrationManager) createIndexes(ctx context.Context) error {
	m.logger.Info("Creating database indexes", nil)

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_delivery_jobs_agent_status ON delivery_jobs (agent_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_payment_intents_subject ON payment_intents (subject, subject_id)",
	}
	for _, stmt := range statements {
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return err
		}
	}

	if m.driver != "postgres" {
		return nil
	}
	if err := m.advancedIndexMgr.CreateAdvancedIndexes(ctx); err != nil {
		return err
	}
	return m.advancedIndexMgr.CreatePerformanceTweaks(ctx)
}
