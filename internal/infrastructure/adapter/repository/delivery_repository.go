package repository

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeliveryRepository implements delivery job persistence using GORM.
// State changes are conditional updates whose WHERE clause carries the precondition.
type DeliveryRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewDeliveryRepository creates a new DeliveryRepository instance
func NewDeliveryRepository(db *gorm.DB, logger coreport.Logger) *DeliveryRepository {
	return &DeliveryRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func jobToModel(j *entity.DeliveryJob) model.DeliveryJob {
	return model.DeliveryJob{
		ID:                  j.ID,
		BorrowRequestID:     j.BorrowRequestID,
		BookID:              j.BookID,
		OwnerID:             j.OwnerID,
		BorrowerID:          j.BorrowerID,
		IsReturn:            j.IsReturn,
		Status:              string(j.Status),
		AgentID:             j.AgentID,
		PickupAddress:       j.PickupAddress,
		DeliveryAddress:     j.DeliveryAddress,
		PaymentPolicy:       string(j.PaymentPolicy),
		PaymentStatus:       string(j.PaymentStatus),
		PaymentReference:    j.PaymentReference,
		FeePaise:            j.FeePaise,
		VerificationCode:    j.VerificationCode,
		CodeVerifiedAt:      j.CodeVerifiedAt,
		PickupCompletedAt:   j.PickupCompletedAt,
		DeliveryCompletedAt: j.DeliveryCompletedAt,
		TrackingNotes:       j.TrackingNotes,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
}

func jobToEntity(m *model.DeliveryJob) *entity.DeliveryJob {
	return &entity.DeliveryJob{
		ID:                  m.ID,
		BorrowRequestID:     m.BorrowRequestID,
		BookID:              m.BookID,
		OwnerID:             m.OwnerID,
		BorrowerID:          m.BorrowerID,
		IsReturn:            m.IsReturn,
		Status:              entity.DeliveryStatus(m.Status),
		AgentID:             m.AgentID,
		PickupAddress:       m.PickupAddress,
		DeliveryAddress:     m.DeliveryAddress,
		PaymentPolicy:       entity.PaymentPolicy(m.PaymentPolicy),
		PaymentStatus:       entity.PaymentStatus(m.PaymentStatus),
		PaymentReference:    m.PaymentReference,
		FeePaise:            m.FeePaise,
		VerificationCode:    m.VerificationCode,
		CodeVerifiedAt:      m.CodeVerifiedAt,
		PickupCompletedAt:   m.PickupCompletedAt,
		DeliveryCompletedAt: m.DeliveryCompletedAt,
		TrackingNotes:       m.TrackingNotes,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func jobsToEntities(rows []model.DeliveryJob) []*entity.DeliveryJob {
	out := make([]*entity.DeliveryJob, 0, len(rows))
	for i := range rows {
		out = append(out, jobToEntity(&rows[i]))
	}
	return out
}

// Create inserts a new job and sets its id
func (r *DeliveryRepository) Create(ctx context.Context, job *entity.DeliveryJob) error {
	m := jobToModel(job)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		r.logger.Error("Failed to create delivery job", map[string]any{
			"borrow_request_id": job.BorrowRequestID,
			"is_return":         job.IsReturn,
			"error":             err.Error(),
		})
		return r.errorClassifier.Translate(err, errs.ErrDeliveryNotFound)
	}
	job.ID = m.ID
	return nil
}

// GetByID retrieves a job without locking
func (r *DeliveryRepository) GetByID(ctx context.Context, id uint64) (*entity.DeliveryJob, error) {
	var m model.DeliveryJob
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, r.errorClassifier.Translate(err, errs.ErrDeliveryNotFound)
	}
	return jobToEntity(&m), nil
}

// GetForUpdate retrieves a job holding its row lock
func (r *DeliveryRepository) GetForUpdate(ctx context.Context, id uint64) (*entity.DeliveryJob, error) {
	var m model.DeliveryJob
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		return nil, r.errorClassifier.Translate(err, errs.ErrDeliveryNotFound)
	}
	return jobToEntity(&m), nil
}

// FindByBorrowRequest returns the forward or return job of a borrow request
func (r *DeliveryRepository) FindByBorrowRequest(ctx context.Context, borrowRequestID uint64, isReturn bool) (*entity.DeliveryJob, error) {
	var m model.DeliveryJob
	err := r.db.WithContext(ctx).
		Where("borrow_request_id = ? AND is_return = ?", borrowRequestID, isReturn).
		First(&m).Error
	if err != nil {
		return nil, r.errorClassifier.Translate(err, errs.ErrDeliveryNotFound)
	}
	return jobToEntity(&m), nil
}

// ListAvailable lists pending, unassigned jobs, oldest first
func (r *DeliveryRepository) ListAvailable(ctx context.Context, limit int) ([]*entity.DeliveryJob, error) {
	var rows []model.DeliveryJob
	err := r.db.WithContext(ctx).
		Where("status = ? AND agent_id IS NULL", string(entity.DeliveryStatusPending)).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.errorClassifier.Translate(err, errs.ErrDeliveryNotFound)
	}
	return jobsToEntities(rows), nil
}

// ListByAgent lists an agent's jobs, newest first
func (r *DeliveryRepository) ListByAgent(ctx context.Context, agentID uint64, limit int) ([]*entity.DeliveryJob, error) {
	var rows []model.DeliveryJob
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("updated_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.errorClassifier.Translate(err, errs.ErrDeliveryNotFound)
	}
	return jobsToEntities(rows), nil
}

// AssignIfPending is the claim: one UPDATE whose WHERE clause requires a
// PENDING job without an agent. Exactly one concurrent caller sees true.
func (r *DeliveryRepository) AssignIfPending(ctx context.Context, id, agentID uint64, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.DeliveryJob{}).
		Where("id = ? AND status = ? AND agent_id IS NULL", id, string(entity.DeliveryStatusPending)).
		Updates(map[string]any{
			"agent_id":   agentID,
			"status":     string(entity.DeliveryStatusAssigned),
			"updated_at": now,
		})
	if result.Error != nil {
		return false, r.errorClassifier.Translate(result.Error, errs.ErrDeliveryNotFound)
	}
	return result.RowsAffected == 1, nil
}

// MarkCodeVerified sets code_verified_at once for the assigned agent of a paid job
func (r *DeliveryRepository) MarkCodeVerified(ctx context.Context, id, agentID uint64, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.DeliveryJob{}).
		Where("id = ? AND agent_id = ? AND payment_status = ? AND code_verified_at IS NULL",
			id, agentID, string(entity.PaymentStatusCompleted)).
		Updates(map[string]any{
			"code_verified_at": at,
			"updated_at":       at,
		})
	if result.Error != nil {
		return false, r.errorClassifier.Translate(result.Error, errs.ErrDeliveryNotFound)
	}
	return result.RowsAffected == 1, nil
}

// SaveTransition writes the status, timestamps and notes only while the stored
// status still equals from. Timestamps already set are kept by COALESCE.
func (r *DeliveryRepository) SaveTransition(ctx context.Context, job *entity.DeliveryJob, from entity.DeliveryStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.DeliveryJob{}).
		Where("id = ? AND status = ?", job.ID, string(from)).
		Updates(map[string]any{
			"status":                string(job.Status),
			"pickup_completed_at":   gorm.Expr("COALESCE(pickup_completed_at, ?)", job.PickupCompletedAt),
			"delivery_completed_at": gorm.Expr("COALESCE(delivery_completed_at, ?)", job.DeliveryCompletedAt),
			"tracking_notes":        job.TrackingNotes,
			"updated_at":            job.UpdatedAt,
		})
	if result.Error != nil {
		return false, r.errorClassifier.Translate(result.Error, errs.ErrDeliveryNotFound)
	}
	return result.RowsAffected == 1, nil
}

// UpdateTrackingNotes overwrites the tracking notes
func (r *DeliveryRepository) UpdateTrackingNotes(ctx context.Context, id uint64, notes string, now time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.DeliveryJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"tracking_notes": notes,
			"updated_at":     now,
		})
	if result.Error != nil {
		return r.errorClassifier.Translate(result.Error, errs.ErrDeliveryNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrDeliveryNotFound
	}
	return nil
}

// SetPaymentReference records the gateway order for a job whose payment is
// not completed and puts a failed gate back to PENDING
func (r *DeliveryRepository) SetPaymentReference(ctx context.Context, id uint64, reference string, now time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.DeliveryJob{}).
		Where("id = ? AND payment_status <> ?", id, string(entity.PaymentStatusCompleted)).
		Updates(map[string]any{
			"payment_reference": reference,
			"payment_status":    string(entity.PaymentStatusPending),
			"updated_at":        now,
		})
	if result.Error != nil {
		return r.errorClassifier.Translate(result.Error, errs.ErrDeliveryNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.NewPreconditionError("delivery %d is already paid", id)
	}
	return nil
}

// MarkPaymentCompleted opens the payment gate once
func (r *DeliveryRepository) MarkPaymentCompleted(ctx context.Context, id uint64, reference string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.DeliveryJob{}).
		Where("id = ? AND payment_status <> ?", id, string(entity.PaymentStatusCompleted)).
		Updates(map[string]any{
			"payment_status":    string(entity.PaymentStatusCompleted),
			"payment_reference": reference,
			"updated_at":        now,
		})
	if result.Error != nil {
		return false, r.errorClassifier.Translate(result.Error, errs.ErrDeliveryNotFound)
	}
	return result.RowsAffected == 1, nil
}

// MarkPaymentFailed records a failed payment unless it already completed
func (r *DeliveryRepository) MarkPaymentFailed(ctx context.Context, id uint64, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.DeliveryJob{}).
		Where("id = ? AND payment_status = ?", id, string(entity.PaymentStatusPending)).
		Updates(map[string]any{
			"payment_status": string(entity.PaymentStatusFailed),
			"updated_at":     now,
		})
	if result.Error != nil {
		return false, r.errorClassifier.Translate(result.Error, errs.ErrDeliveryNotFound)
	}
	return result.RowsAffected == 1, nil
}
