package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/shipment-schedule-service/internal/domain/model"
	"github.com/guttosm/shipment-schedule-service/internal/mocks"
)

// fakeTaskScheduler records scheduled tasks instead of arming timers so tests
// can fire or cancel them deterministically.
type fakeTaskScheduler struct {
	name      string
	delay     time.Duration
	fn        func()
	cancelled bool
}

func (f *fakeTaskScheduler) Schedule(name string, delay time.Duration, fn func()) CancelFunc {
	f.name = name
	f.delay = delay
	f.fn = fn
	return func() bool {
		f.cancelled = true
		return true
	}
}

type deferredFixture struct {
	recomputer *mocks.MockMissingSchedsRecomputer
	products   *mocks.MockProductInfoProvider
	schedules  *mocks.MockScheduleRepository
	locks      *mocks.MockLockManager
	tasks      *fakeTaskScheduler

	scheduler *DeferredRecomputeScheduler
}

func newDeferredFixture() *deferredFixture {
	f := &deferredFixture{
		recomputer: new(mocks.MockMissingSchedsRecomputer),
		products:   new(mocks.MockProductInfoProvider),
		schedules:  new(mocks.MockScheduleRepository),
		locks:      new(mocks.MockLockManager),
		tasks:      &fakeTaskScheduler{},
	}
	f.scheduler = NewDeferredRecomputeScheduler(
		f.recomputer,
		f.products,
		f.schedules,
		f.locks,
		f.tasks,
		zerolog.Nop(),
	)
	return f
}

func TestDeferredRecomputeScheduler_PostponeMissingSchedsCreation(t *testing.T) {
	t.Run("flag is scoped to the derived context", func(t *testing.T) {
		f := newDeferredFixture()

		parent := context.Background()
		assert.False(t, f.scheduler.AllMissingSchedsWillBeCreatedLater(parent))

		ctx, release := f.scheduler.PostponeMissingSchedsCreation(parent)
		assert.True(t, f.scheduler.AllMissingSchedsWillBeCreatedLater(ctx))
		assert.False(t, f.scheduler.AllMissingSchedsWillBeCreatedLater(parent))

		f.recomputer.On("RecomputeMissing", mock.Anything).Return(nil)
		require.NoError(t, release(ctx))

		assert.False(t, f.scheduler.AllMissingSchedsWillBeCreatedLater(ctx))
		f.recomputer.AssertNumberOfCalls(t, "RecomputeMissing", 1)
	})

	t.Run("nested acquisition yields a no-op handle", func(t *testing.T) {
		f := newDeferredFixture()

		ctx, outerRelease := f.scheduler.PostponeMissingSchedsCreation(context.Background())
		innerCtx, innerRelease := f.scheduler.PostponeMissingSchedsCreation(ctx)

		// The inner acquisition joins the outer scope rather than stacking.
		assert.Equal(t, ctx, innerCtx)

		require.NoError(t, innerRelease(innerCtx))
		assert.True(t, f.scheduler.AllMissingSchedsWillBeCreatedLater(ctx),
			"inner release must not end the outer scope")
		f.recomputer.AssertNotCalled(t, "RecomputeMissing", mock.Anything)

		f.recomputer.On("RecomputeMissing", mock.Anything).Return(nil)
		require.NoError(t, outerRelease(ctx))
		f.recomputer.AssertNumberOfCalls(t, "RecomputeMissing", 1)
	})

	t.Run("owning release recomputes once despite sibling acquisitions", func(t *testing.T) {
		f := newDeferredFixture()

		ctx, release := f.scheduler.PostponeMissingSchedsCreation(context.Background())

		// A sibling acquire on the already-flagged context gets a no-op
		// handle; ownership stays with the first release.
		_, siblingRelease := f.scheduler.PostponeMissingSchedsCreation(ctx)
		require.NoError(t, siblingRelease(ctx))

		f.recomputer.On("RecomputeMissing", mock.Anything).Return(nil)
		require.NoError(t, release(ctx))

		assert.False(t, f.scheduler.AllMissingSchedsWillBeCreatedLater(ctx))
		f.recomputer.AssertNumberOfCalls(t, "RecomputeMissing", 1)
	})

	t.Run("recompute failure surfaces on release", func(t *testing.T) {
		f := newDeferredFixture()

		ctx, release := f.scheduler.PostponeMissingSchedsCreation(context.Background())

		recomputeErr := errors.New("backend unavailable")
		f.recomputer.On("RecomputeMissing", mock.Anything).Return(recomputeErr)

		err := release(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, recomputeErr)
	})
}

func TestDeferredRecomputeScheduler_UpdateCatchUoms(t *testing.T) {
	const productID = model.ProductID(42)

	t.Run("negative delay suppresses the update", func(t *testing.T) {
		f := newDeferredFixture()

		cancel, err := f.scheduler.UpdateCatchUoms(context.Background(), productID, -1)
		require.NoError(t, err)
		assert.False(t, cancel())

		assert.Nil(t, f.tasks.fn, "nothing may be scheduled")
		f.schedules.AssertNotCalled(t, "BulkSetCatchUom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero delay runs synchronously", func(t *testing.T) {
		f := newDeferredFixture()

		lockedIDs := []model.ShipmentScheduleID{7, 8}
		f.products.On("CatchUomID", mock.Anything, productID).Return(model.UomID(9), nil)
		f.locks.On("LockedScheduleIDs", mock.Anything, productID).Return(lockedIDs, nil)
		f.schedules.On("BulkSetCatchUom", mock.Anything, productID, model.UomID(9), lockedIDs).
			Return(int64(3), nil)

		_, err := f.scheduler.UpdateCatchUoms(context.Background(), productID, 0)
		require.NoError(t, err)

		assert.Nil(t, f.tasks.fn, "sync run must not go through the task scheduler")
		f.schedules.AssertExpectations(t)
	})

	t.Run("positive delay schedules a single task", func(t *testing.T) {
		f := newDeferredFixture()

		f.products.On("CatchUomID", mock.Anything, productID).Return(model.UomID(9), nil)
		f.locks.On("LockedScheduleIDs", mock.Anything, productID).
			Return([]model.ShipmentScheduleID(nil), nil)
		f.schedules.On("BulkSetCatchUom", mock.Anything, productID, model.UomID(9), []model.ShipmentScheduleID(nil)).
			Return(int64(1), nil)

		_, err := f.scheduler.UpdateCatchUoms(context.Background(), productID, 10*time.Second)
		require.NoError(t, err)

		assert.Equal(t, "update-catch-uoms-product-42", f.tasks.name)
		assert.Equal(t, 10*time.Second, f.tasks.delay)
		f.schedules.AssertNotCalled(t, "BulkSetCatchUom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

		// Firing the deferred task performs the actual update.
		require.NotNil(t, f.tasks.fn)
		f.tasks.fn()
		f.schedules.AssertExpectations(t)
	})

	t.Run("scheduled task can be cancelled", func(t *testing.T) {
		f := newDeferredFixture()

		cancel, err := f.scheduler.UpdateCatchUoms(context.Background(), productID, time.Minute)
		require.NoError(t, err)

		assert.True(t, cancel())
		assert.True(t, f.tasks.cancelled)
		f.schedules.AssertNotCalled(t, "BulkSetCatchUom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lock lookup failure aborts before any write", func(t *testing.T) {
		f := newDeferredFixture()

		lockErr := errors.New("lock backend down")
		f.products.On("CatchUomID", mock.Anything, productID).Return(model.UomID(9), nil)
		f.locks.On("LockedScheduleIDs", mock.Anything, productID).
			Return([]model.ShipmentScheduleID(nil), lockErr)

		_, err := f.scheduler.UpdateCatchUoms(context.Background(), productID, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, lockErr)
		f.schedules.AssertNotCalled(t, "BulkSetCatchUom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTimerScheduler_Schedule(t *testing.T) {
	scheduler := NewTimerScheduler(zerolog.Nop())

	fired := make(chan struct{})
	scheduler.Schedule("test-task", time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled task did not fire")
	}

	cancel := scheduler.Schedule("cancelled-task", time.Hour, func() {
		t.Error("cancelled task must not fire")
	})
	assert.True(t, cancel())
}
