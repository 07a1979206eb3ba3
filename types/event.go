package types

import (
	"encoding/json"
	"fmt"

	"github.com/c360/storesight/pkg/timestamp"
)

// EventKind identifies one of the eight detected event types.
type EventKind int

const (
	// EventScannerAvoidance is a product seen by vision but never scanned.
	EventScannerAvoidance EventKind = iota
	// EventBarcodeSwitching is a scan whose best vision match disagrees on SKU.
	EventBarcodeSwitching
	// EventWeightDiscrepancy is a scale reading outside catalog tolerance.
	EventWeightDiscrepancy
	// EventLongQueueLength is a queue sample at or above the length threshold.
	EventLongQueueLength
	// EventLongWaitTime is a queue sample at or above the dwell-time threshold.
	EventLongWaitTime
	// EventStaffingNeed is emitted once per sample when either queue threshold trips.
	EventStaffingNeed
	// EventInventoryDiscrepancy is a snapshot delta beyond the unit threshold.
	EventInventoryDiscrepancy
	// EventSystemCrash is a per-station activity gap beyond the inactive threshold.
	EventSystemCrash
)

// kindNames are the display names carried on the output contract. They
// match the historical event log format consumed downstream.
var kindNames = map[EventKind]string{
	EventScannerAvoidance:     "Scanner Avoidance",
	EventBarcodeSwitching:     "Barcode Switching",
	EventWeightDiscrepancy:    "Weight Discrepancies",
	EventLongQueueLength:      "Long Queue Length",
	EventLongWaitTime:         "Long Wait Time",
	EventStaffingNeed:         "Staffing Needs",
	EventInventoryDiscrepancy: "Inventory Discrepancy",
	EventSystemCrash:          "Unexpected Systems Crash",
}

// String returns the display name of the event kind
func (k EventKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Kinds returns all event kinds in declaration order
func Kinds() []EventKind {
	return []EventKind{
		EventScannerAvoidance,
		EventBarcodeSwitching,
		EventWeightDiscrepancy,
		EventLongQueueLength,
		EventLongWaitTime,
		EventStaffingNeed,
		EventInventoryDiscrepancy,
		EventSystemCrash,
	}
}

// Event is a single detected event. ID is empty until the assembler
// allocates identifiers after the global sort, and is never mutated
// afterward. Timestamp is inherited from the triggering record, or the
// window midpoint where a pair of records is involved.
type Event struct {
	ID         string
	Timestamp  int64
	Kind       EventKind
	StationID  string
	Attributes map[string]any
}

// eventEnvelope is the external representation of an Event.
type eventEnvelope struct {
	Timestamp string         `json:"timestamp"`
	EventID   string         `json:"event_id"`
	EventData map[string]any `json:"event_data"`
}

// MarshalJSON renders the event in the output contract shape:
//
//	{"timestamp": "<ISO-8601>", "event_id": "E###",
//	 "event_data": {"event_name": ..., "station_id": ..., ...}}
//
// station_id is omitted for events without one (inventory discrepancies
// are store-wide).
func (e Event) MarshalJSON() ([]byte, error) {
	data := make(map[string]any, len(e.Attributes)+2)
	data["event_name"] = e.Kind.String()
	if e.StationID != "" {
		data["station_id"] = e.StationID
	}
	for k, v := range e.Attributes {
		data[k] = v
	}

	return json.Marshal(eventEnvelope{
		Timestamp: timestamp.Format(e.Timestamp),
		EventID:   e.ID,
		EventData: data,
	})
}
