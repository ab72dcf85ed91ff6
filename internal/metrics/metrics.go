// Package metrics provides Prometheus metrics collection for the shipment schedule service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SchedulesClosedTotal tracks how many shipment schedules were closed.
	SchedulesClosedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shipment_schedules_closed_total",
			Help: "Total number of shipment schedules closed",
		},
	)

	// SchedulesOpenedTotal tracks how many shipment schedules were reopened.
	SchedulesOpenedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shipment_schedules_opened_total",
			Help: "Total number of shipment schedules reopened",
		},
	)

	// UserChangeBatchesTotal tracks bulk user-change batches by outcome.
	UserChangeBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipment_schedule_user_change_batches_total",
			Help: "Total number of bulk user-change batches",
		},
		[]string{"status"},
	)

	// UserChangeSkippedTotal tracks schedule ids skipped during bulk apply
	// because no record was found.
	UserChangeSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shipment_schedule_user_changes_skipped_total",
			Help: "Total number of user-change requests skipped for missing records",
		},
	)

	// CatchUomTasksTotal tracks catch-UOM update requests by how they ran.
	CatchUomTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipment_schedule_catch_uom_tasks_total",
			Help: "Total number of catch UOM update tasks by outcome",
		},
		[]string{"outcome"},
	)

	// CatchUomUpdatedSchedules tracks how many schedules each mass update touched.
	CatchUomUpdatedSchedules = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shipment_schedule_catch_uom_updated_schedules_total",
			Help: "Total number of shipment schedules touched by catch UOM updates",
		},
	)

	// CatchUomUpdateDuration tracks the duration of catch-UOM mass updates.
	CatchUomUpdateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shipment_schedule_catch_uom_update_duration_seconds",
			Help:    "Catch UOM mass update duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 15.0, 60.0},
		},
	)
)

// RecordScheduleClosed records one closed schedule.
func RecordScheduleClosed() {
	SchedulesClosedTotal.Inc()
}

// RecordScheduleOpened records one reopened schedule.
func RecordScheduleOpened() {
	SchedulesOpenedTotal.Inc()
}

// RecordUserChangeBatch records one bulk user-change batch with its outcome.
func RecordUserChangeBatch(status string) {
	UserChangeBatchesTotal.WithLabelValues(status).Inc()
}

// RecordUserChangeSkipped records one skipped user-change request.
func RecordUserChangeSkipped() {
	UserChangeSkippedTotal.Inc()
}

// RecordCatchUomTask records how a catch-UOM update request ran
// (suppressed, sync, scheduled).
func RecordCatchUomTask(outcome string) {
	CatchUomTasksTotal.WithLabelValues(outcome).Inc()
}

// RecordCatchUomUpdate records the result of one catch-UOM mass update.
func RecordCatchUomUpdate(count int64, duration time.Duration) {
	CatchUomUpdatedSchedules.Add(float64(count))
	CatchUomUpdateDuration.Observe(duration.Seconds())
}
