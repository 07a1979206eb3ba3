package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/storesight/types"
)

func TestAssemble_SortsByTimestamp(t *testing.T) {
	events := assemble([][]types.Event{
		{{Timestamp: 3000, Kind: types.EventScannerAvoidance}},
		{{Timestamp: 1000, Kind: types.EventBarcodeSwitching}},
		{{Timestamp: 2000, Kind: types.EventWeightDiscrepancy}},
	})

	require.Len(t, events, 3)
	assert.Equal(t, int64(1000), events[0].Timestamp)
	assert.Equal(t, int64(2000), events[1].Timestamp)
	assert.Equal(t, int64(3000), events[2].Timestamp)
}

func TestAssemble_StableForEqualTimestamps(t *testing.T) {
	// Two detectors emit at the same instant: the lower-ordinal
	// detector's event must come first.
	events := assemble([][]types.Event{
		{{Timestamp: 1000, Kind: types.EventScannerAvoidance}},
		{{Timestamp: 1000, Kind: types.EventBarcodeSwitching}},
		{{Timestamp: 1000, Kind: types.EventWeightDiscrepancy}},
	})

	require.Len(t, events, 3)
	assert.Equal(t, types.EventScannerAvoidance, events[0].Kind)
	assert.Equal(t, types.EventBarcodeSwitching, events[1].Kind)
	assert.Equal(t, types.EventWeightDiscrepancy, events[2].Kind)
}

func TestAssemble_IDAllocation(t *testing.T) {
	events := assemble([][]types.Event{
		{
			{Timestamp: 1000},
			{Timestamp: 2000},
			{Timestamp: 3000},
		},
	})

	require.Len(t, events, 3)
	assert.Equal(t, "E001", events[0].ID)
	assert.Equal(t, "E002", events[1].ID)
	assert.Equal(t, "E003", events[2].ID)
}

func TestAssemble_IDPaddingBeyondThreeDigits(t *testing.T) {
	var out []types.Event
	for i := 0; i < 1200; i++ {
		out = append(out, types.Event{Timestamp: int64(i)})
	}

	events := assemble([][]types.Event{out})

	assert.Equal(t, "E999", events[998].ID)
	assert.Equal(t, "E1000", events[999].ID)
	assert.Equal(t, "E1200", events[1199].ID)
}

func TestAssemble_Empty(t *testing.T) {
	assert.Empty(t, assemble(nil))
	assert.Empty(t, assemble([][]types.Event{nil, nil}))
}
