package repository

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// BorrowRequestRepository reads borrow requests and performs their acceptance
type BorrowRequestRepository struct {
	db              *gorm.DB
	errorClassifier *ErrorClassifier
}

// NewBorrowRequestRepository creates a new BorrowRequestRepository instance
func NewBorrowRequestRepository(db *gorm.DB) *BorrowRequestRepository {
	return &BorrowRequestRepository{db: db, errorClassifier: NewErrorClassifier()}
}

// GetByID retrieves a borrow request
func (r *BorrowRequestRepository) GetByID(ctx context.Context, id uint64) (*entity.BorrowRequest, error) {
	var m model.BorrowRequest
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, r.errorClassifier.Translate(err, errs.ErrBorrowRequestNotFound)
	}
	return &entity.BorrowRequest{
		ID:         m.ID,
		BookID:     m.BookID,
		OwnerID:    m.OwnerID,
		BorrowerID: m.BorrowerID,
		Status:     entity.BorrowStatus(m.Status),
		PointsCost: m.PointsCost,
	}, nil
}

// AcceptIfPending moves a PENDING request to ACCEPTED
func (r *BorrowRequestRepository) AcceptIfPending(ctx context.Context, id uint64, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.BorrowRequest{}).
		Where("id = ? AND status = ?", id, string(entity.BorrowStatusPending)).
		Updates(map[string]any{
			"status":     string(entity.BorrowStatusAccepted),
			"updated_at": now,
		})
	if result.Error != nil {
		return false, r.errorClassifier.Translate(result.Error, errs.ErrBorrowRequestNotFound)
	}
	return result.RowsAffected == 1, nil
}
