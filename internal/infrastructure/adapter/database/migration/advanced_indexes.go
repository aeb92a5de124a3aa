package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"gorm.io/gorm"
)

// AdvancedIndexManager manages PostgreSQL-specific advanced indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

type indexDef struct {
	name string
	sql  string
}

// CreateAdvancedIndexes creates partial and BRIN indexes
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	indexes := []indexDef{
		{
			// Feed of claimable jobs
			name: "idx_delivery_jobs_available",
			sql: `CREATE INDEX IF NOT EXISTS idx_delivery_jobs_available
				ON delivery_jobs (created_at)
				WHERE status = 'PENDING' AND agent_id IS NULL`,
		},
		{
			name: "idx_payment_intents_pending",
			sql: `CREATE INDEX IF NOT EXISTS idx_payment_intents_pending
				ON payment_intents (payer_id, created_at)
				WHERE status = 'PENDING'`,
		},
		{
			name: "idx_notifications_unread",
			sql: `CREATE INDEX IF NOT EXISTS idx_notifications_unread
				ON notifications (user_id, created_at)
				WHERE read = false`,
		},
		{
			name: "idx_ledger_entries_created_at_brin",
			sql: `CREATE INDEX IF NOT EXISTS idx_ledger_entries_created_at_brin
				ON ledger_entries USING BRIN (created_at)
				WITH (pages_per_range = 32)`,
		},
	}

	for _, idx := range indexes {
		if err := m.db.WithContext(ctx).Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL storage settings. Failures are logged only.
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) error {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// delivery_jobs rows are updated in place several times per trip
	tweaks := []string{
		`ALTER TABLE delivery_jobs SET (fillfactor = 85)`,
		`ALTER TABLE users SET (fillfactor = 90)`,
		`ALTER TABLE ledger_entries ALTER COLUMN account_id SET STATISTICS 1000`,
	}
	for _, stmt := range tweaks {
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			m.logger.Warn("Failed to apply performance tweak", map[string]any{
				"statement": stmt,
				"error":     err.Error(),
			})
		}
	}
	return nil
}
