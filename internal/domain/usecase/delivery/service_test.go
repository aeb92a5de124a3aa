package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/model"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/notification"
	timeprovider "github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/time"
)

const (
	ownerID    = uint64(1)
	borrowerID = uint64(2)
	agentA     = uint64(3)
	agentB     = uint64(4)
)

// codeReader replays the bytes crypto/rand.Int consumes to draw 482913
type codeReader struct{ pos int }

func (r *codeReader) Read(p []byte) (int, error) {
	pattern := []byte{0x07, 0x5E, 0x61}
	for i := range p {
		p[i] = pattern[r.pos%len(pattern)]
		r.pos++
	}
	return len(p), nil
}

type harness struct {
	db      *database.TestDB
	clock   *timeprovider.FixedTimeProvider
	service *Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := database.NewTestDB(t)
	db.CreateUser(t, ownerID, string(entity.RoleUser), 100)
	db.CreateUser(t, borrowerID, string(entity.RoleUser), 100)
	db.CreateUser(t, agentA, string(entity.RoleDeliveryAgent), 0)
	db.CreateUser(t, agentB, string(entity.RoleDeliveryAgent), 0)
	db.CreateBorrowRequest(t, model.BorrowRequest{
		ID: 1, BookID: 101, OwnerID: ownerID, BorrowerID: borrowerID, Status: string(entity.BorrowStatusAccepted),
	})

	clock := timeprovider.NewFixedTimeProvider(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	log := logger.NewNoopLogger()
	notifier := notification.NewStoreNotifier(db.UoW, clock, log)
	service := NewService(db.UoW, notifier, clock, log, metrics.NewCollector(nil), &codeReader{}, Settings{FeePaise: 5000})

	return &harness{db: db, clock: clock, service: service}
}

func (h *harness) create(t *testing.T) *usecase.CreateDeliveryResult {
	t.Helper()
	res, err := h.service.CreateDelivery(context.Background(), borrowerID, usecase.CreateDeliveryCommand{
		BorrowRequestID: 1,
		PickupAddress:   "12 Owner Street",
		DeliveryAddress: "34 Borrower Avenue",
	})
	require.NoError(t, err)
	return res
}

func (h *harness) markPaid(t *testing.T, jobID uint64) {
	t.Helper()
	ctx := context.Background()
	ok, err := h.db.UoW.Deliveries(ctx).MarkPaymentCompleted(ctx, jobID, "order_test", h.clock.Now())
	require.NoError(t, err)
	require.True(t, ok)
}

func (h *harness) notifications(t *testing.T, userID uint64, kind entity.NotificationKind) int {
	t.Helper()
	var count int64
	require.NoError(t, h.db.DB.Model(&model.Notification{}).
		Where("user_id = ? AND kind = ?", userID, string(kind)).
		Count(&count).Error)
	return int(count)
}

func TestService_CreateDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("should create a pending job and announce it to every agent", func(t *testing.T) {
		h := newHarness(t)

		res := h.create(t)

		assert.Equal(t, "482913", res.VerificationCode)
		assert.Equal(t, entity.DeliveryStatusPending, res.Job.Status)
		assert.Equal(t, int64(5000), res.Job.FeePaise)
		assert.Equal(t, 1, h.notifications(t, agentA, entity.NotificationDeliveryAvailable))
		assert.Equal(t, 1, h.notifications(t, agentB, entity.NotificationDeliveryAvailable))

		available, err := h.service.ListAvailable(ctx, 10)
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, res.Job.ID, available[0].ID)
	})

	t.Run("should only let the borrower request delivery once", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.service.CreateDelivery(ctx, ownerID, usecase.CreateDeliveryCommand{
			BorrowRequestID: 1, PickupAddress: "a", DeliveryAddress: "b",
		})
		assert.ErrorIs(t, err, errs.ErrForbidden)

		h.create(t)
		_, err = h.service.CreateDelivery(ctx, borrowerID, usecase.CreateDeliveryCommand{
			BorrowRequestID: 1, PickupAddress: "a", DeliveryAddress: "b",
		})
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("should reject unknown borrow requests and empty commands", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.service.CreateDelivery(ctx, borrowerID, usecase.CreateDeliveryCommand{
			BorrowRequestID: 99, PickupAddress: "a", DeliveryAddress: "b",
		})
		assert.ErrorIs(t, err, errs.ErrBorrowRequestNotFound)

		_, err = h.service.CreateDelivery(ctx, borrowerID, usecase.CreateDeliveryCommand{BorrowRequestID: 1})
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})
}

func TestService_ConcurrentClaims(t *testing.T) {
	h := newHarness(t)
	job := h.create(t).Job
	ctx := context.Background()

	const agents = 12
	results := make([]error, agents)
	var g errgroup.Group
	for i := 0; i < agents; i++ {
		i := i
		g.Go(func() error {
			_, err := h.service.Claim(ctx, job.ID, uint64(100+i))
			results[i] = err
			return nil
		})
	}
	require.NoError(t, g.Wait())

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, errs.ErrAlreadyAssigned)
	}
	assert.Equal(t, 1, winners)

	stored, err := h.db.UoW.Deliveries(ctx).GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusAssigned, stored.Status)
	require.NotNil(t, stored.AgentID)

	available, err := h.service.ListAvailable(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestService_ClaimWithdrawsAnnouncements(t *testing.T) {
	h := newHarness(t)
	job := h.create(t).Job

	_, err := h.service.Claim(context.Background(), job.ID, agentA)
	require.NoError(t, err)

	assert.Equal(t, 1, h.notifications(t, agentA, entity.NotificationDeliveryAvailable))
	assert.Equal(t, 0, h.notifications(t, agentB, entity.NotificationDeliveryAvailable))
	assert.Equal(t, 1, h.notifications(t, borrowerID, entity.NotificationDeliveryAssigned))

	_, err = h.service.Claim(context.Background(), job.ID, agentB)
	assert.ErrorIs(t, err, errs.ErrAlreadyAssigned)
}

func TestService_VerifyCode(t *testing.T) {
	ctx := context.Background()

	t.Run("should walk the pickup handoff", func(t *testing.T) {
		h := newHarness(t)
		job := h.create(t).Job
		_, err := h.service.Claim(ctx, job.ID, agentA)
		require.NoError(t, err)

		// unpaid job
		_, err = h.service.VerifyCode(ctx, job.ID, agentA, "482913")
		assert.ErrorIs(t, err, errs.ErrPaymentNotComplete)

		h.markPaid(t, job.ID)

		// another agent
		_, err = h.service.VerifyCode(ctx, job.ID, agentB, "482913")
		assert.ErrorIs(t, err, errs.ErrForbidden)

		// wrong code
		_, err = h.service.VerifyCode(ctx, job.ID, agentA, "111111")
		assert.ErrorIs(t, err, errs.ErrInvalidCode)

		// status cannot move before the code is verified
		_, err = h.service.AdvanceStatus(ctx, job.ID, agentA, usecase.UpdateStatusCommand{Status: entity.DeliveryStatusPickedUp})
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)

		var stored model.DeliveryJob
		require.NoError(t, h.db.DB.First(&stored, job.ID).Error)
		assert.Equal(t, string(entity.DeliveryStatusAssigned), stored.Status)
		assert.Nil(t, stored.PickupCompletedAt)

		first, err := h.service.VerifyCode(ctx, job.ID, agentA, " 482913 ")
		require.NoError(t, err)
		assert.False(t, first.AlreadyVerified)
		assert.Equal(t, h.clock.Now(), first.VerifiedAt)

		h.clock.Advance(time.Minute)
		second, err := h.service.VerifyCode(ctx, job.ID, agentA, "482913")
		require.NoError(t, err)
		assert.True(t, second.AlreadyVerified)
		assert.True(t, first.VerifiedAt.Equal(second.VerifiedAt))

		assert.Equal(t, 1, h.notifications(t, borrowerID, entity.NotificationCodeVerified))
	})
}

func TestService_RevealCode(t *testing.T) {
	h := newHarness(t)
	job := h.create(t).Job
	ctx := context.Background()

	code, err := h.service.RevealCode(ctx, job.ID, borrowerID)
	require.NoError(t, err)
	assert.Equal(t, "482913", code)

	code, err = h.service.RevealCode(ctx, job.ID, agentA)
	require.NoError(t, err)
	assert.Empty(t, code)

	_, err = h.service.Claim(ctx, job.ID, agentA)
	require.NoError(t, err)
	code, err = h.service.RevealCode(ctx, job.ID, agentA)
	require.NoError(t, err)
	assert.Equal(t, "482913", code)

	_, err = h.service.RevealCode(ctx, 999, borrowerID)
	assert.ErrorIs(t, err, errs.ErrDeliveryNotFound)
}

func TestService_AdvanceStatus(t *testing.T) {
	ctx := context.Background()

	ready := func(t *testing.T) (*harness, *entity.DeliveryJob) {
		h := newHarness(t)
		job := h.create(t).Job
		_, err := h.service.Claim(ctx, job.ID, agentA)
		require.NoError(t, err)
		h.markPaid(t, job.ID)
		_, err = h.service.VerifyCode(ctx, job.ID, agentA, "482913")
		require.NoError(t, err)
		return h, job
	}

	t.Run("should move through the lifecycle and set timestamps once", func(t *testing.T) {
		h, job := ready(t)

		notes := "left at the front desk"
		for _, status := range []entity.DeliveryStatus{
			entity.DeliveryStatusPickedUp,
			entity.DeliveryStatusInTransit,
			entity.DeliveryStatusDelivered,
			entity.DeliveryStatusCompleted,
		} {
			h.clock.Advance(time.Minute)
			cmd := usecase.UpdateStatusCommand{Status: status}
			if status == entity.DeliveryStatusDelivered {
				cmd.TrackingNotes = &notes
			}
			res, err := h.service.AdvanceStatus(ctx, job.ID, agentA, cmd)
			require.NoError(t, err, "status %s", status)
			assert.True(t, res.Changed)
		}

		stored, err := h.db.UoW.Deliveries(ctx).GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.DeliveryStatusCompleted, stored.Status)
		assert.Equal(t, notes, stored.TrackingNotes)
		require.NotNil(t, stored.PickupCompletedAt)
		require.NotNil(t, stored.DeliveryCompletedAt)
		assert.True(t, stored.PickupCompletedAt.Before(*stored.DeliveryCompletedAt))
		assert.Equal(t, 4, h.notifications(t, borrowerID, entity.NotificationDeliveryUpdate))
	})

	t.Run("should treat a repeated status as a no-op", func(t *testing.T) {
		h, job := ready(t)

		_, err := h.service.AdvanceStatus(ctx, job.ID, agentA, usecase.UpdateStatusCommand{Status: entity.DeliveryStatusPickedUp})
		require.NoError(t, err)

		h.clock.Advance(time.Hour)
		res, err := h.service.AdvanceStatus(ctx, job.ID, agentA, usecase.UpdateStatusCommand{Status: entity.DeliveryStatusPickedUp})
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Equal(t, 1, h.notifications(t, borrowerID, entity.NotificationDeliveryUpdate))
	})

	t.Run("should reject skips and other agents", func(t *testing.T) {
		h, job := ready(t)

		_, err := h.service.AdvanceStatus(ctx, job.ID, agentA, usecase.UpdateStatusCommand{Status: entity.DeliveryStatusDelivered})
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)

		_, err = h.service.AdvanceStatus(ctx, job.ID, agentB, usecase.UpdateStatusCommand{Status: entity.DeliveryStatusPickedUp})
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)

		stored, err := h.db.UoW.Deliveries(ctx).GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.DeliveryStatusAssigned, stored.Status)
	})
}

func TestService_CreateReturn(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	job := h.create(t).Job
	_, err := h.service.Claim(ctx, job.ID, agentA)
	require.NoError(t, err)
	h.markPaid(t, job.ID)
	_, err = h.service.VerifyCode(ctx, job.ID, agentA, "482913")
	require.NoError(t, err)

	_, err = h.service.CreateReturn(ctx, borrowerID, job.ID)
	assert.ErrorIs(t, err, errs.ErrPreconditionFailed, "return before delivery")

	for _, status := range []entity.DeliveryStatus{entity.DeliveryStatusPickedUp, entity.DeliveryStatusInTransit, entity.DeliveryStatusDelivered} {
		_, err := h.service.AdvanceStatus(ctx, job.ID, agentA, usecase.UpdateStatusCommand{Status: status})
		require.NoError(t, err)
	}

	_, err = h.service.CreateReturn(ctx, ownerID, job.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	ret, err := h.service.CreateReturn(ctx, borrowerID, job.ID)
	require.NoError(t, err)
	assert.True(t, ret.Job.IsReturn)
	assert.True(t, ret.Job.IsAssignedTo(agentA))
	assert.True(t, ret.Job.IsPaid())
	assert.Equal(t, "34 Borrower Avenue", ret.Job.PickupAddress)
	assert.Equal(t, 1, h.notifications(t, ownerID, entity.NotificationReturnScheduled))
	assert.Equal(t, 1, h.notifications(t, agentA, entity.NotificationDeliveryAssigned))

	_, err = h.service.CreateReturn(ctx, borrowerID, job.ID)
	assert.ErrorIs(t, err, errs.ErrPreconditionFailed, "second return")

	// the return trip needs no payment before its code is checked
	verified, err := h.service.VerifyCode(ctx, ret.Job.ID, agentA, ret.VerificationCode)
	require.NoError(t, err)
	assert.False(t, verified.AlreadyVerified)
}

func TestService_GetDelivery(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	job := h.create(t).Job

	_, err := h.service.GetDelivery(ctx, job.ID, entity.Principal{UserID: borrowerID, Role: entity.RoleUser})
	assert.NoError(t, err)

	// open jobs are visible to agents deciding whether to claim
	_, err = h.service.GetDelivery(ctx, job.ID, entity.Principal{UserID: agentB, Role: entity.RoleDeliveryAgent})
	assert.NoError(t, err)

	_, err = h.service.GetDelivery(ctx, job.ID, entity.Principal{UserID: 50, Role: entity.RoleUser})
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = h.service.Claim(ctx, job.ID, agentA)
	require.NoError(t, err)
	_, err = h.service.GetDelivery(ctx, job.ID, entity.Principal{UserID: agentB, Role: entity.RoleDeliveryAgent})
	assert.ErrorIs(t, err, errs.ErrForbidden)

	assigned, err := h.service.ListAssigned(ctx, agentA, 0)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)
}
