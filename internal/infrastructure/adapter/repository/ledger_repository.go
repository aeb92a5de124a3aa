package repository

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// LedgerRepository implements the append-only ledger using GORM
type LedgerRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, logger coreport.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func entryToEntity(m *model.LedgerEntry) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:           m.ID,
		AccountID:    m.AccountID,
		Amount:       m.Amount,
		Kind:         entity.EntryKind(m.Kind),
		RelatedID:    m.RelatedID,
		Description:  m.Description,
		BalanceAfter: m.BalanceAfter,
		CreatedAt:    m.CreatedAt,
	}
}

// Append inserts an entry and sets its id. A repeated (account, kind, related id)
// is rejected as a duplicate.
func (r *LedgerRepository) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	m := model.LedgerEntry{
		AccountID:    entry.AccountID,
		Amount:       entry.Amount,
		Kind:         string(entry.Kind),
		RelatedID:    entry.RelatedID,
		Description:  entry.Description,
		BalanceAfter: entry.BalanceAfter,
		CreatedAt:    entry.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		r.logger.Error("Failed to append ledger entry", map[string]any{
			"account_id": entry.AccountID,
			"kind":       string(entry.Kind),
			"related_id": entry.RelatedID,
			"error":      err.Error(),
		})
		return r.errorClassifier.Translate(err, errs.ErrNotFound)
	}
	entry.ID = m.ID
	return nil
}

// ListByAccount returns entries newest first
func (r *LedgerRepository) ListByAccount(ctx context.Context, accountID uint64, limit, offset int) ([]*entity.LedgerEntry, error) {
	var rows []model.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, r.errorClassifier.Translate(err, errs.ErrNotFound)
	}

	entries := make([]*entity.LedgerEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, entryToEntity(&rows[i]))
	}
	return entries, nil
}

// SumByAccount returns the signed sum and count of an account's entries
func (r *LedgerRepository) SumByAccount(ctx context.Context, accountID uint64) (int64, int64, error) {
	var agg struct {
		Total int64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("account_id = ?", accountID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, r.errorClassifier.Translate(err, errs.ErrNotFound)
	}
	return agg.Total, agg.Count, nil
}

// Exists reports whether an entry with the key was already written
func (r *LedgerRepository) Exists(ctx context.Context, accountID uint64, kind entity.EntryKind, relatedID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Where("account_id = ? AND kind = ? AND related_id = ?", accountID, string(kind), relatedID).
		Count(&count).Error
	if err != nil {
		return false, r.errorClassifier.Translate(err, errs.ErrNotFound)
	}
	return count > 0, nil
}
