package repository

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// NotificationRepository stores user notifications using GORM
type NotificationRepository struct {
	db              *gorm.DB
	errorClassifier *ErrorClassifier
}

// NewNotificationRepository creates a new NotificationRepository instance
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db, errorClassifier: NewErrorClassifier()}
}

// CreateBatch inserts notifications in one statement and sets their ids
func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	rows := make([]model.Notification, len(notifications))
	for i, n := range notifications {
		rows[i] = model.Notification{
			UserID:    n.UserID,
			Kind:      string(n.Kind),
			Title:     n.Title,
			Message:   n.Message,
			RelatedID: n.RelatedID,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return r.errorClassifier.Translate(err, errs.ErrNotFound)
	}
	for i := range rows {
		notifications[i].ID = rows[i].ID
	}
	return nil
}

// DeleteByKindAndRelated removes notifications of a kind about relatedID,
// except those addressed to keepUserID
func (r *NotificationRepository) DeleteByKindAndRelated(ctx context.Context, kind entity.NotificationKind, relatedID string, keepUserID uint64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("kind = ? AND related_id = ? AND user_id <> ?", string(kind), relatedID, keepUserID).
		Delete(&model.Notification{})
	if result.Error != nil {
		return 0, r.errorClassifier.Translate(result.Error, errs.ErrNotFound)
	}
	return result.RowsAffected, nil
}

// ListByUser returns a user's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.Notification, error) {
	var rows []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.errorClassifier.Translate(err, errs.ErrNotFound)
	}

	out := make([]*entity.Notification, 0, len(rows))
	for _, m := range rows {
		out = append(out, &entity.Notification{
			ID:        m.ID,
			UserID:    m.UserID,
			Kind:      entity.NotificationKind(m.Kind),
			Title:     m.Title,
			Message:   m.Message,
			RelatedID: m.RelatedID,
			Read:      m.Read,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
