package detector

import (
	"context"

	"github.com/c360/storesight/config"
	"github.com/c360/storesight/dataset"
	"github.com/c360/storesight/types"
)

// QueueMonitor flags queue congestion: long queues, long waits, and
// the staffing need either implies.
type QueueMonitor struct {
	lengthThreshold int
	waitThreshold   float64
}

// NewQueueMonitor builds the detector from the resolved thresholds.
func NewQueueMonitor(cfg config.Detection) *QueueMonitor {
	return &QueueMonitor{
		lengthThreshold: cfg.QueueLengthThreshold,
		waitThreshold:   cfg.WaitTimeThreshold,
	}
}

func (d *QueueMonitor) Name() string { return "queue_monitor" }

func (d *QueueMonitor) Ordinal() int { return ordinalQueueMonitor }

// Detect evaluates each sample independently. Both thresholds are
// at-or-above. A sample tripping either threshold also yields exactly
// one StaffingNeed event, never two, even when both trip at once.
func (d *QueueMonitor) Detect(_ context.Context, ds *dataset.Dataset) []types.Event {
	var events []types.Event

	for _, q := range ds.QueueSamples {
		longQueue := q.CustomerCount >= d.lengthThreshold
		longWait := q.AverageDwellTime >= d.waitThreshold

		if longQueue {
			events = append(events, types.Event{
				Timestamp: q.Timestamp,
				Kind:      types.EventLongQueueLength,
				StationID: q.StationID,
				Attributes: map[string]any{
					"customer_count": q.CustomerCount,
				},
			})
		}
		if longWait {
			events = append(events, types.Event{
				Timestamp: q.Timestamp,
				Kind:      types.EventLongWaitTime,
				StationID: q.StationID,
				Attributes: map[string]any{
					"wait_time_seconds": int(q.AverageDwellTime),
				},
			})
		}
		if longQueue || longWait {
			events = append(events, types.Event{
				Timestamp: q.Timestamp,
				Kind:      types.EventStaffingNeed,
				StationID: q.StationID,
				Attributes: map[string]any{
					"staff_type": "Cashier",
				},
			})
		}
	}

	return events
}
