package detector

import (
	"context"
	"time"

	"github.com/c360/storesight/config"
	"github.com/c360/storesight/dataset"
	"github.com/c360/storesight/pkg/timestamp"
	"github.com/c360/storesight/types"
)

// ActivityGap flags station downtime: a silence on a station's merged
// activity timeline long enough to indicate a crash rather than a lull.
type ActivityGap struct {
	inactiveThreshold time.Duration
}

// NewActivityGap builds the detector from the resolved thresholds.
func NewActivityGap(cfg config.Detection) *ActivityGap {
	return &ActivityGap{
		inactiveThreshold: time.Duration(cfg.StationInactiveThreshold * float64(time.Second)),
	}
}

func (d *ActivityGap) Name() string { return "activity_gap" }

func (d *ActivityGap) Ordinal() int { return ordinalActivityGap }

// Detect measures consecutive gaps on each station's merged transaction
// and queue timeline. A gap at or above the threshold yields a crash
// event timestamped at the gap midpoint, carrying the gap bounds. A
// station with fewer than two activity records has no measurable gap
// and produces nothing.
func (d *ActivityGap) Detect(_ context.Context, ds *dataset.Dataset) []types.Event {
	var events []types.Event
	thresholdMs := d.inactiveThreshold.Milliseconds()

	for _, stationID := range ds.Stations() {
		timeline := ds.ActivityTimeline(stationID)

		for i := 0; i+1 < len(timeline); i++ {
			start, end := timeline[i], timeline[i+1]
			if end-start < thresholdMs {
				continue
			}

			events = append(events, types.Event{
				Timestamp: timestamp.Midpoint(start, end),
				Kind:      types.EventSystemCrash,
				StationID: stationID,
				Attributes: map[string]any{
					"start":            timestamp.Format(start),
					"end":              timestamp.Format(end),
					"duration_seconds": int((end - start) / 1000),
				},
			})
		}
	}

	return events
}
