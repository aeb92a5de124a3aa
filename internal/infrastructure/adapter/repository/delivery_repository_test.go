package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/model"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func seedJob(t *testing.T) (*database.TestDB, persistence.DeliveryRepository, *entity.DeliveryJob) {
	t.Helper()
	ctx := context.Background()

	db := database.NewTestDB(t)
	db.CreateBorrowRequest(t, model.BorrowRequest{
		ID: 1, BookID: 10, OwnerID: 1, BorrowerID: 2, Status: string(entity.BorrowStatusAccepted),
	})
	borrow := &entity.BorrowRequest{ID: 1, BookID: 10, OwnerID: 1, BorrowerID: 2, Status: entity.BorrowStatusAccepted}
	job, err := entity.NewDeliveryJob(borrow, "12 Owner Street", "34 Borrower Avenue", 5000, "482913", now)
	require.NoError(t, err)

	repo := db.UoW.Deliveries(ctx)
	require.NoError(t, repo.Create(ctx, job))
	require.NotZero(t, job.ID)
	return db, repo, job
}

func TestDeliveryRepository_Create(t *testing.T) {
	ctx := context.Background()
	_, repo, job := seedJob(t)

	dup := *job
	dup.ID = 0
	err := repo.Create(ctx, &dup)
	assert.ErrorIs(t, err, errs.ErrDuplicate)

	found, err := repo.FindByBorrowRequest(ctx, 1, false)
	require.NoError(t, err)
	assert.Equal(t, job.ID, found.ID)
	assert.Equal(t, "482913", found.VerificationCode)
	assert.Equal(t, entity.PaymentPolicyPrepaid, found.PaymentPolicy)

	_, err = repo.FindByBorrowRequest(ctx, 1, true)
	assert.ErrorIs(t, err, errs.ErrDeliveryNotFound)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, errs.ErrDeliveryNotFound)
}

func TestDeliveryRepository_AssignIfPending(t *testing.T) {
	ctx := context.Background()
	_, repo, job := seedJob(t)

	won, err := repo.AssignIfPending(ctx, job.ID, 3, now)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = repo.AssignIfPending(ctx, job.ID, 4, now)
	require.NoError(t, err)
	assert.False(t, won)

	stored, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusAssigned, stored.Status)
	assert.True(t, stored.IsAssignedTo(3))

	available, err := repo.ListAvailable(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, available)

	mine, err := repo.ListByAgent(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestDeliveryRepository_MarkCodeVerified(t *testing.T) {
	ctx := context.Background()
	_, repo, job := seedJob(t)
	_, err := repo.AssignIfPending(ctx, job.ID, 3, now)
	require.NoError(t, err)

	marked, err := repo.MarkCodeVerified(ctx, job.ID, 3, now)
	require.NoError(t, err)
	assert.False(t, marked, "unpaid job")

	paid, err := repo.MarkPaymentCompleted(ctx, job.ID, "order_1", now)
	require.NoError(t, err)
	assert.True(t, paid)

	marked, err = repo.MarkCodeVerified(ctx, job.ID, 4, now)
	require.NoError(t, err)
	assert.False(t, marked, "other agent")

	marked, err = repo.MarkCodeVerified(ctx, job.ID, 3, now)
	require.NoError(t, err)
	assert.True(t, marked)

	marked, err = repo.MarkCodeVerified(ctx, job.ID, 3, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, marked, "second verification")

	stored, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CodeVerifiedAt)
	assert.True(t, stored.CodeVerifiedAt.Equal(now))
}

func TestDeliveryRepository_SaveTransition(t *testing.T) {
	ctx := context.Background()
	_, repo, job := seedJob(t)
	_, err := repo.AssignIfPending(ctx, job.ID, 3, now)
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)

	picked := now.Add(time.Minute)
	stored.Status = entity.DeliveryStatusPickedUp
	stored.PickupCompletedAt = &picked
	stored.UpdatedAt = picked

	saved, err := repo.SaveTransition(ctx, stored, entity.DeliveryStatusAssigned)
	require.NoError(t, err)
	assert.True(t, saved)

	// a stale writer still expecting ASSIGNED loses
	later := now.Add(time.Hour)
	stored.PickupCompletedAt = &later
	saved, err = repo.SaveTransition(ctx, stored, entity.DeliveryStatusAssigned)
	require.NoError(t, err)
	assert.False(t, saved)

	// timestamps already set are kept
	stored.Status = entity.DeliveryStatusInTransit
	saved, err = repo.SaveTransition(ctx, stored, entity.DeliveryStatusPickedUp)
	require.NoError(t, err)
	assert.True(t, saved)

	reloaded, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusInTransit, reloaded.Status)
	require.NotNil(t, reloaded.PickupCompletedAt)
	assert.True(t, reloaded.PickupCompletedAt.Equal(picked))
}

func TestDeliveryRepository_PaymentGate(t *testing.T) {
	ctx := context.Background()
	_, repo, job := seedJob(t)

	require.NoError(t, repo.SetPaymentReference(ctx, job.ID, "order_1", now))

	failed, err := repo.MarkPaymentFailed(ctx, job.ID, now)
	require.NoError(t, err)
	assert.True(t, failed)

	// a new order reopens a failed gate
	require.NoError(t, repo.SetPaymentReference(ctx, job.ID, "order_2", now))

	paid, err := repo.MarkPaymentCompleted(ctx, job.ID, "order_2", now)
	require.NoError(t, err)
	assert.True(t, paid)

	paid, err = repo.MarkPaymentCompleted(ctx, job.ID, "order_2", now)
	require.NoError(t, err)
	assert.False(t, paid)

	failed, err = repo.MarkPaymentFailed(ctx, job.ID, now)
	require.NoError(t, err)
	assert.False(t, failed, "completed payments never fail")

	err = repo.SetPaymentReference(ctx, job.ID, "order_3", now)
	assert.ErrorIs(t, err, errs.ErrPreconditionFailed)

	stored, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPaid())
	assert.Equal(t, "order_2", stored.PaymentReference)
}

func TestDeliveryRepository_UpdateTrackingNotes(t *testing.T) {
	ctx := context.Background()
	_, repo, job := seedJob(t)

	require.NoError(t, repo.UpdateTrackingNotes(ctx, job.ID, "gate code 1234", now))
	stored, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "gate code 1234", stored.TrackingNotes)

	assert.ErrorIs(t, repo.UpdateTrackingNotes(ctx, 999, "x", now), errs.ErrDeliveryNotFound)
}
