package database

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/database/migration"
	applogger "github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/model"
	timeprovider "github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/time"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is an in-memory sqlite database with the full schema
type TestDB struct {
	DB  *gorm.DB
	UoW persistence.UnitOfWork
}

// NewTestDB opens a private in-memory database and migrates every model.
// The pool holds a single connection so transactions serialize like row locks would.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_fk=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	log := applogger.NewNoopLogger()
	tp := timeprovider.NewRealTimeProvider()
	if err := migration.NewMigrationManager(db, log, tp, DriverSQLite).MigrateAll(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return &TestDB{
		DB:  db,
		UoW: NewUnitOfWork(db, log, tp, "", DefaultRetryConfig()),
	}
}

// CreateUser inserts an account row with the given balance, bypassing the ledger
func (d *TestDB) CreateUser(t *testing.T, id uint64, role string, balance int64) {
	t.Helper()

	now := time.Now().UTC()
	user := model.User{
		ID:           id,
		Role:         role,
		PointBalance: balance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := d.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// CreateBorrowRequest inserts a borrow request row
func (d *TestDB) CreateBorrowRequest(t *testing.T, req model.BorrowRequest) {
	t.Helper()

	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	if err := d.DB.Create(&req).Error; err != nil {
		t.Fatalf("Failed to create test borrow request: %v", err)
	}
}
