package migration

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Demo accounts opened in development
var demoAccounts = []usecase.OpenAccountCommand{
	{UserID: 1, Name: "Owner One", Role: entity.RoleUser},
	{UserID: 2, Name: "Borrower Two", Role: entity.RoleUser},
	{UserID: 3, Name: "Agent Three", Role: entity.RoleDeliveryAgent},
	{UserID: 4, Name: "Agent Four", Role: entity.RoleDeliveryAgent},
	{UserID: 9, Name: "Admin", Role: entity.RoleAdmin},
}

// Pending borrow requests between the demo accounts
var demoBorrowRequests = []model.BorrowRequest{
	{ID: 1, BookID: 101, OwnerID: 1, BorrowerID: 2, Status: string(entity.BorrowStatusPending)},
	{ID: 2, BookID: 102, OwnerID: 1, BorrowerID: 2, Status: string(entity.BorrowStatusPending)},
}

// SeedDemoData opens the demo accounts through the ledger so each gets its
// welcome credit, then inserts borrow requests that do not exist yet
func SeedDemoData(ctx context.Context, db *gorm.DB, ledger usecase.LedgerUseCase) error {
	for _, cmd := range demoAccounts {
		if _, err := ledger.OpenAccount(ctx, cmd); err != nil {
			return err
		}
	}

	for _, req := range demoBorrowRequests {
		err := db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&req).Error
		if err != nil {
			return err
		}
	}
	return nil
}
