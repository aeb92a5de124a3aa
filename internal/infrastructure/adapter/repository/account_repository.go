package repository

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountRepository implements AccountRepository on the users table using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func accountToEntity(m *model.User) *entity.Account {
	return &entity.Account{
		ID:           m.ID,
		Name:         m.Name,
		Role:         entity.Role(m.Role),
		PointBalance: m.PointBalance,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// Create inserts a new account
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	m := model.User{
		ID:           account.ID,
		Name:         account.Name,
		Role:         string(account.Role),
		PointBalance: account.PointBalance,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		r.logger.Error("Failed to create account", map[string]any{
			"user_id": account.ID,
			"error":   err.Error(),
		})
		return r.errorClassifier.Translate(err, errs.ErrAccountNotFound)
	}
	return nil
}

// GetByID retrieves an account without locking
func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*entity.Account, error) {
	var m model.User
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, r.errorClassifier.Translate(err, errs.ErrAccountNotFound)
	}
	return accountToEntity(&m), nil
}

// GetForUpdate retrieves an account holding its row lock until the transaction ends
func (r *AccountRepository) GetForUpdate(ctx context.Context, id uint64) (*entity.Account, error) {
	var m model.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		return nil, r.errorClassifier.Translate(err, errs.ErrAccountNotFound)
	}
	return accountToEntity(&m), nil
}

// ApplyDelta adds delta to the cached balance in one guarded statement and
// returns the new balance. The guard keeps the balance from going negative
// even without a prior lock.
func (r *AccountRepository) ApplyDelta(ctx context.Context, id uint64, delta int64) (int64, error) {
	db := r.db.WithContext(ctx)

	result := db.Model(&model.User{}).
		Where("id = ? AND point_balance + ? >= 0", id, delta).
		Updates(map[string]any{
			"point_balance": gorm.Expr("point_balance + ?", delta),
			"updated_at":    r.timeProvider.Now(),
		})
	if result.Error != nil {
		r.logger.Error("Failed to apply balance delta", map[string]any{
			"user_id": id,
			"delta":   delta,
			"error":   result.Error.Error(),
		})
		return 0, r.errorClassifier.Translate(result.Error, errs.ErrAccountNotFound)
	}

	var m model.User
	if err := db.Select("id", "point_balance").First(&m, id).Error; err != nil {
		return 0, r.errorClassifier.Translate(err, errs.ErrAccountNotFound)
	}
	if result.RowsAffected == 0 {
		return 0, errs.NewInsufficientFundsError(id, -delta, m.PointBalance)
	}

	r.logger.Debug("Balance updated", map[string]any{
		"user_id": id,
		"delta":   delta,
		"balance": m.PointBalance,
	})
	return m.PointBalance, nil
}

// ListIDsByRole returns the ids of all accounts with a role
func (r *AccountRepository) ListIDsByRole(ctx context.Context, role entity.Role) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", string(role)).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.errorClassifier.Translate(err, errs.ErrAccountNotFound)
	}
	return ids, nil
}
