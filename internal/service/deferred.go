package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/shipment-schedule-service/internal/domain/model"
	"github.com/guttosm/shipment-schedule-service/internal/metrics"
)

type postponeCtxKey struct{}

// postponeState is the per-context postponement flag. It is carried as a
// context value, so propagation across goroutines happens exactly when the
// caller passes the derived context on.
type postponeState struct {
	mu     sync.Mutex
	active bool
}

func (s *postponeState) setActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *postponeState) isActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ReleaseFunc ends a postponement scope. The real handle returned by the
// first acquisition triggers the missing-schedules recompute; re-entrant
// handles do nothing.
type ReleaseFunc func(ctx context.Context) error

// DeferredRecomputeScheduler postpones "create missing schedules" side
// effects for the duration of a processing context and schedules the
// delayed catch-UOM mass update.
type DeferredRecomputeScheduler struct {
	recomputer MissingSchedsRecomputer
	products   ProductInfoProvider
	schedules  ScheduleRepository
	locks      LockManager
	tasks      TaskScheduler
	log        zerolog.Logger
}

// NewDeferredRecomputeScheduler creates a new scheduler. tasks may be nil,
// in which case a plain timer-backed scheduler is used.
func NewDeferredRecomputeScheduler(
	recomputer MissingSchedsRecomputer,
	products ProductInfoProvider,
	schedules ScheduleRepository,
	locks LockManager,
	tasks TaskScheduler,
	log zerolog.Logger,
) *DeferredRecomputeScheduler {
	componentLog := log.With().Str("component", "deferred_recompute_scheduler").Logger()
	if tasks == nil {
		tasks = NewTimerScheduler(componentLog)
	}
	return &DeferredRecomputeScheduler{
		recomputer: recomputer,
		products:   products,
		schedules:  schedules,
		locks:      locks,
		tasks:      tasks,
		log:        componentLog,
	}
}

// AllMissingSchedsWillBeCreatedLater reports whether missing-schedule
// creation is currently postponed on this context.
func (s *DeferredRecomputeScheduler) AllMissingSchedsWillBeCreatedLater(ctx context.Context) bool {
	state, ok := ctx.Value(postponeCtxKey{}).(*postponeState)
	return ok && state.isActive()
}

// PostponeMissingSchedsCreation flips the postponement flag on the returned
// context. The first acquisition on a context returns the owning release
// handle; acquisitions on a context whose flag is already active return the
// context unchanged and a no-op handle.
//
// Releasing the owning handle clears the flag and triggers the
// missing-schedules recompute, unless another acquisition re-flagged the
// context in the meantime; the check happens at release time, not at
// capture time.
func (s *DeferredRecomputeScheduler) PostponeMissingSchedsCreation(ctx context.Context) (context.Context, ReleaseFunc) {
	if s.AllMissingSchedsWillBeCreatedLater(ctx) {
		// Already owned by an outer scope.
		return ctx, func(context.Context) error { return nil }
	}

	state, ok := ctx.Value(postponeCtxKey{}).(*postponeState)
	if !ok {
		state = &postponeState{}
		ctx = context.WithValue(ctx, postponeCtxKey{}, state)
	}
	state.setActive(true)

	release := func(releaseCtx context.Context) error {
		state.setActive(false)

		if s.AllMissingSchedsWillBeCreatedLater(releaseCtx) {
			// A sibling scope took over; it will trigger the recompute.
			return nil
		}
		if err := s.recomputer.RecomputeMissing(releaseCtx); err != nil {
			return fmt.Errorf("recompute missing shipment schedules: %w", err)
		}
		return nil
	}

	return ctx, release
}

// UpdateCatchUoms aligns the catch unit of all open schedules of the product
// with the product's current catch unit.
//
// delay < 0 suppresses the update entirely, delay == 0 runs it synchronously,
// delay > 0 schedules a single background run. The returned cancel handle is
// only meaningful for the scheduled case.
func (s *DeferredRecomputeScheduler) UpdateCatchUoms(ctx context.Context, productID model.ProductID, delay time.Duration) (CancelFunc, error) {
	noop := CancelFunc(func() bool { return false })

	if delay < 0 {
		metrics.RecordCatchUomTask("suppressed")
		return noop, nil
	}

	if delay == 0 {
		metrics.RecordCatchUomTask("sync")
		return noop, s.updateCatchUoms(ctx, productID)
	}

	s.log.Info().
		Int("product_id", int(productID)).
		Dur("delay", delay).
		Msg("going to update catch uoms of shipment schedules")

	name := fmt.Sprintf("update-catch-uoms-product-%d", productID)
	cancel := s.tasks.Schedule(name, delay, func() {
		// The originating request is long gone by the time the timer fires.
		if err := s.updateCatchUoms(context.Background(), productID); err != nil {
			s.log.Error().
				Int("product_id", int(productID)).
				Err(err).
				Msg("deferred catch uom update failed")
		}
	})

	metrics.RecordCatchUomTask("scheduled")
	return cancel, nil
}

func (s *DeferredRecomputeScheduler) updateCatchUoms(ctx context.Context, productID model.ProductID) error {
	start := time.Now()

	catchUomID, err := s.products.CatchUomID(ctx, productID)
	if err != nil {
		return fmt.Errorf("catch uom of product %d: %w", productID, err)
	}

	// Locked records must not be touched; a failing lock lookup aborts the
	// whole update rather than risking a write under someone else's lock.
	lockedIDs, err := s.locks.LockedScheduleIDs(ctx, productID)
	if err != nil {
		return fmt.Errorf("locked schedules of product %d: %w", productID, err)
	}

	count, err := s.schedules.BulkSetCatchUom(ctx, productID, catchUomID, lockedIDs)
	if err != nil {
		return fmt.Errorf("bulk catch uom update for product %d: %w", productID, err)
	}

	elapsed := time.Since(start)
	metrics.RecordCatchUomUpdate(count, elapsed)
	s.log.Info().
		Int("product_id", int(productID)).
		Int64("updated", count).
		Dur("elapsed", elapsed).
		Msg("updated catch uoms of shipment schedules")

	return nil
}

// TimerScheduler is the default TaskScheduler, backed by time.AfterFunc.
type TimerScheduler struct {
	log zerolog.Logger
}

// NewTimerScheduler creates a timer-backed task scheduler.
func NewTimerScheduler(log zerolog.Logger) *TimerScheduler {
	return &TimerScheduler{log: log}
}

// Schedule runs fn once after delay. The returned cancel stops the timer and
// reports whether it fired before fn ran.
func (t *TimerScheduler) Schedule(name string, delay time.Duration, fn func()) CancelFunc {
	t.log.Debug().Str("task", name).Dur("delay", delay).Msg("scheduling deferred task")
	timer := time.AfterFunc(delay, fn)
	return timer.Stop
}
