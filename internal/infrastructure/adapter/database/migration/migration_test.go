package migration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/lending-core/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/model"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/notification"
	timeprovider "github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/time"
)

func TestMigrateAll(t *testing.T) {
	ctx := context.Background()
	db := database.NewTestDB(t)
	clock := timeprovider.NewFixedTimeProvider(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	mgr := migration.NewMigrationManager(db.DB, logger.NewNoopLogger(), clock, database.DriverSQLite)

	t.Run("should leave the schema at the current version", func(t *testing.T) {
		version, err := mgr.GetCurrentVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, migration.CurrentSchemaVersion, version)

		for _, m := range migration.Models() {
			assert.True(t, db.DB.Migrator().HasTable(m), "%T", m)
		}
		assert.True(t, db.DB.Migrator().HasIndex(&model.DeliveryJob{}, "idx_delivery_jobs_agent_status"))
	})

	t.Run("should skip steps already applied", func(t *testing.T) {
		require.NoError(t, mgr.MigrateAll(ctx))

		var count int64
		require.NoError(t, db.DB.Model(&model.SchemaVersion{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})

	t.Run("should refuse a negative balance", func(t *testing.T) {
		db.CreateUser(t, 1, "USER", 0)

		err := db.DB.Model(&model.User{}).Where("id = ?", 1).Update("point_balance", -1).Error
		assert.Error(t, err)
	})
}

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()
	db := database.NewTestDB(t)
	clock := timeprovider.NewFixedTimeProvider(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	log := logger.NewNoopLogger()
	svc := ledger.NewService(db.UoW, notification.NewStoreNotifier(db.UoW, clock, log), clock, log,
		metrics.NewCollector(nil), ledger.DefaultSettings())

	require.NoError(t, migration.SeedDemoData(ctx, db.DB, svc))
	// seeding twice is harmless
	require.NoError(t, migration.SeedDemoData(ctx, db.DB, svc))

	var users, requests int64
	require.NoError(t, db.DB.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, db.DB.Model(&model.BorrowRequest{}).Count(&requests).Error)
	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(2), requests)

	rec, err := svc.Reconcile(ctx, 2)
	require.NoError(t, err)
	assert.True(t, rec.Balanced())
	assert.Equal(t, ledger.DefaultSettings().InitialPoints, rec.CachedBalance)
}
