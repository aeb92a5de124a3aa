package repository

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// PaymentRepository implements payment intent persistence using GORM
type PaymentRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewPaymentRepository creates a new PaymentRepository instance
func NewPaymentRepository(db *gorm.DB, logger coreport.Logger) *PaymentRepository {
	return &PaymentRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func intentToEntity(m *model.PaymentIntent) *entity.PaymentIntent {
	p := &entity.PaymentIntent{
		ID:               m.ID,
		Subject:          entity.PaymentSubject(m.Subject),
		SubjectID:        m.SubjectID,
		PayerID:          m.PayerID,
		AmountPaise:      m.AmountPaise,
		Currency:         m.Currency,
		Points:           m.Points,
		Receipt:          m.Receipt,
		GatewayPaymentID: m.GatewayPaymentID,
		Status:           entity.PaymentStatus(m.Status),
		FailureReason:    m.FailureReason,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		SettledAt:        m.SettledAt,
	}
	if m.GatewayOrderID != nil {
		p.GatewayOrderID = *m.GatewayOrderID
	}
	return p
}

// Create inserts a pending intent and sets its id
func (r *PaymentRepository) Create(ctx context.Context, intent *entity.PaymentIntent) error {
	m := model.PaymentIntent{
		Subject:          string(intent.Subject),
		SubjectID:        intent.SubjectID,
		PayerID:          intent.PayerID,
		AmountPaise:      intent.AmountPaise,
		Currency:         intent.Currency,
		Points:           intent.Points,
		Receipt:          intent.Receipt,
		GatewayPaymentID: intent.GatewayPaymentID,
		Status:           string(intent.Status),
		FailureReason:    intent.FailureReason,
		CreatedAt:        intent.CreatedAt,
		UpdatedAt:        intent.UpdatedAt,
		SettledAt:        intent.SettledAt,
	}
	if intent.GatewayOrderID != "" {
		orderID := intent.GatewayOrderID
		m.GatewayOrderID = &orderID
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		r.logger.Error("Failed to create payment intent", map[string]any{
			"payer_id": intent.PayerID,
			"receipt":  intent.Receipt,
			"error":    err.Error(),
		})
		return r.errorClassifier.Translate(err, errs.ErrPaymentNotFound)
	}
	intent.ID = m.ID
	return nil
}

// GetByID retrieves an intent
func (r *PaymentRepository) GetByID(ctx context.Context, id uint64) (*entity.PaymentIntent, error) {
	var m model.PaymentIntent
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, r.errorClassifier.Translate(err, errs.ErrPaymentNotFound)
	}
	return intentToEntity(&m), nil
}

// GetByGatewayOrderID retrieves the intent behind a gateway order
func (r *PaymentRepository) GetByGatewayOrderID(ctx context.Context, orderID string) (*entity.PaymentIntent, error) {
	if orderID == "" {
		return nil, errs.ErrPaymentNotFound
	}
	var m model.PaymentIntent
	if err := r.db.WithContext(ctx).Where("gateway_order_id = ?", orderID).First(&m).Error; err != nil {
		return nil, r.errorClassifier.Translate(err, errs.ErrPaymentNotFound)
	}
	return intentToEntity(&m), nil
}

// AttachGatewayOrder stores the gateway order id of a pending intent
func (r *PaymentRepository) AttachGatewayOrder(ctx context.Context, id uint64, orderID string, now time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.PaymentIntent{}).
		Where("id = ? AND status = ?", id, string(entity.PaymentStatusPending)).
		Updates(map[string]any{
			"gateway_order_id": orderID,
			"updated_at":       now,
		})
	if result.Error != nil {
		return r.errorClassifier.Translate(result.Error, errs.ErrPaymentNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrPaymentNotFound
	}
	return nil
}

// Complete moves a PENDING intent to COMPLETED
func (r *PaymentRepository) Complete(ctx context.Context, id uint64, paymentID string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.PaymentIntent{}).
		Where("id = ? AND status = ?", id, string(entity.PaymentStatusPending)).
		Updates(map[string]any{
			"status":             string(entity.PaymentStatusCompleted),
			"gateway_payment_id": paymentID,
			"settled_at":         now,
			"updated_at":         now,
		})
	if result.Error != nil {
		return false, r.errorClassifier.Translate(result.Error, errs.ErrPaymentNotFound)
	}
	return result.RowsAffected == 1, nil
}

// Fail moves a PENDING intent to FAILED
func (r *PaymentRepository) Fail(ctx context.Context, id uint64, reason string, now time.Time) (bool, error) {
	if len(reason) > 255 {
		reason = reason[:255]
	}
	result := r.db.WithContext(ctx).Model(&model.PaymentIntent{}).
		Where("id = ? AND status = ?", id, string(entity.PaymentStatusPending)).
		Updates(map[string]any{
			"status":         string(entity.PaymentStatusFailed),
			"failure_reason": reason,
			"updated_at":     now,
		})
	if result.Error != nil {
		return false, r.errorClassifier.Translate(result.Error, errs.ErrPaymentNotFound)
	}
	return result.RowsAffected == 1, nil
}
