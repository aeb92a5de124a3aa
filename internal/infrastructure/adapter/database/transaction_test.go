package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	applogger "github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/repository"
)

var errBoom = errors.New("boom")

func fastRetry() RetryConfig {
	return RetryConfig{MaxRetries: 3, RetryInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
}

func accountExists(t *testing.T, db *TestDB, id uint64) bool {
	t.Helper()
	_, err := db.UoW.Accounts(context.Background()).GetByID(context.Background(), id)
	if errors.Is(err, errs.ErrAccountNotFound) {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestUnitOfWork_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("should commit when the function succeeds", func(t *testing.T) {
		db := NewTestDB(t)

		err := db.UoW.Do(ctx, func(ctx context.Context) error {
			return db.UoW.Accounts(ctx).Create(ctx, &entity.Account{ID: 1, Role: entity.RoleUser})
		})

		require.NoError(t, err)
		assert.True(t, accountExists(t, db, 1))
	})

	t.Run("should roll back when the function fails", func(t *testing.T) {
		db := NewTestDB(t)

		err := db.UoW.Do(ctx, func(ctx context.Context) error {
			if err := db.UoW.Accounts(ctx).Create(ctx, &entity.Account{ID: 1, Role: entity.RoleUser}); err != nil {
				return err
			}
			return errBoom
		})

		assert.ErrorIs(t, err, errBoom)
		assert.False(t, accountExists(t, db, 1))
	})

	t.Run("should join an enclosing transaction", func(t *testing.T) {
		db := NewTestDB(t)

		err := db.UoW.Do(ctx, func(ctx context.Context) error {
			inner := db.UoW.Do(ctx, func(ctx context.Context) error {
				return db.UoW.Accounts(ctx).Create(ctx, &entity.Account{ID: 1, Role: entity.RoleUser})
			})
			assert.NoError(t, inner)
			return errBoom
		})

		assert.ErrorIs(t, err, errBoom)
		assert.False(t, accountExists(t, db, 1), "inner write must roll back with the outer transaction")
	})

	t.Run("should roll back and rethrow panics", func(t *testing.T) {
		db := NewTestDB(t)

		assert.Panics(t, func() {
			_ = db.UoW.Do(ctx, func(ctx context.Context) error {
				_ = db.UoW.Accounts(ctx).Create(ctx, &entity.Account{ID: 1, Role: entity.RoleUser})
				panic("boom")
			})
		})
		assert.False(t, accountExists(t, db, 1))
	})

	t.Run("should rerun transient failures", func(t *testing.T) {
		db := NewTestDB(t)
		uow := NewUnitOfWork(db.DB, applogger.NewNoopLogger(), nil, "", fastRetry())

		attempts := 0
		err := uow.Do(ctx, func(ctx context.Context) error {
			attempts++
			if attempts < 3 {
				return errors.New("database is locked")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("should not rerun domain failures", func(t *testing.T) {
		db := NewTestDB(t)
		uow := NewUnitOfWork(db.DB, applogger.NewNoopLogger(), nil, "", fastRetry())

		attempts := 0
		err := uow.Do(ctx, func(ctx context.Context) error {
			attempts++
			return errs.NewInsufficientFundsError(1, 35, 20)
		})

		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, 1, attempts)
	})
}

func TestUnitOfWork_CommitWithoutTransaction(t *testing.T) {
	db := NewTestDB(t)

	assert.Error(t, db.UoW.Commit(context.Background()))
	assert.Error(t, db.UoW.Rollback(context.Background()))
}

func TestRetryOnTransientError(t *testing.T) {
	classifier := repository.NewErrorClassifier()
	log := applogger.NewNoopLogger()

	t.Run("should give up after the configured attempts", func(t *testing.T) {
		attempts := 0
		err := RetryOnTransientError(context.Background(), fastRetry(), func() error {
			attempts++
			return errors.New("database is locked")
		}, classifier, log)

		assert.Error(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("should stop when the context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cfg := RetryConfig{MaxRetries: 5, RetryInterval: time.Hour}

		attempts := 0
		err := RetryOnTransientError(ctx, cfg, func() error {
			attempts++
			cancel()
			return errors.New("database is locked")
		}, classifier, log)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})

	t.Run("should run at least once", func(t *testing.T) {
		attempts := 0
		err := RetryOnTransientError(context.Background(), RetryConfig{}, func() error {
			attempts++
			return nil
		}, classifier, log)

		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	cfg := RetryConfig{RetryInterval: 50 * time.Millisecond, MaxInterval: time.Second, JitterFactor: 0.2}

	assert.GreaterOrEqual(t, calculateBackoffWithJitter(0, cfg), 50*time.Millisecond)
	assert.LessOrEqual(t, calculateBackoffWithJitter(0, cfg), 60*time.Millisecond)
	assert.GreaterOrEqual(t, calculateBackoffWithJitter(2, cfg), 200*time.Millisecond)
	assert.LessOrEqual(t, calculateBackoffWithJitter(10, cfg), 1200*time.Millisecond)
}

func TestParseIsolationLevel(t *testing.T) {
	testCases := map[string]sql.IsolationLevel{
		"":                sql.LevelDefault,
		"read committed":  sql.LevelReadCommitted,
		"Repeatable Read": sql.LevelRepeatableRead,
		" serializable ":  sql.LevelSerializable,
		"chaos":           sql.LevelDefault,
	}
	for input, expected := range testCases {
		assert.Equal(t, expected, parseIsolationLevel(input), input)
	}
}
