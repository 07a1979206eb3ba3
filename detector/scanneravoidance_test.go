package detector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/storesight/types"
)

func TestScannerAvoidance_UnmatchedRecognition(t *testing.T) {
	ds := testDataset(t,
		nil,
		[]types.Recognition{
			{Timestamp: sec(100), StationID: "SCC1", PredictedSKU: "PRD_S_04", Confidence: 0.95},
		},
		nil, nil, nil)

	events := NewScannerAvoidance(defaults()).Detect(context.Background(), ds)

	require.Len(t, events, 1)
	assert.Equal(t, types.EventScannerAvoidance, events[0].Kind)
	assert.Equal(t, sec(100), events[0].Timestamp)
	assert.Equal(t, "SCC1", events[0].StationID)
	assert.Equal(t, "PRD_S_04", events[0].Attributes["product_sku"])
	assert.InDelta(t, 0.95, events[0].Attributes["confidence"].(float64), 1e-9)
}

func TestScannerAvoidance_MatchedScanSuppresses(t *testing.T) {
	ds := testDataset(t,
		[]types.Transaction{
			{Timestamp: sec(105), StationID: "SCC1", SKU: "PRD_S_04"},
		},
		[]types.Recognition{
			{Timestamp: sec(100), StationID: "SCC1", PredictedSKU: "PRD_S_04", Confidence: 0.95},
		},
		nil, nil, nil)

	events := NewScannerAvoidance(defaults()).Detect(context.Background(), ds)
	assert.Empty(t, events)
}

func TestScannerAvoidance_WindowBoundsInclusive(t *testing.T) {
	// Window is [t-5s, t+10s], both ends inclusive.
	tests := []struct {
		name  string
		txAt  int64
		match bool
	}{
		{"at lower bound", sec(95), true},
		{"just below lower bound", sec(95) - 1, false},
		{"at upper bound", sec(110), true},
		{"just above upper bound", sec(110) + 1, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ds := testDataset(t,
				[]types.Transaction{
					{Timestamp: test.txAt, StationID: "SCC1", SKU: "PRD_S_04"},
				},
				[]types.Recognition{
					{Timestamp: sec(100), StationID: "SCC1", PredictedSKU: "PRD_S_04", Confidence: 0.95},
				},
				nil, nil, nil)

			events := NewScannerAvoidance(defaults()).Detect(context.Background(), ds)
			if test.match {
				assert.Empty(t, events)
			} else {
				assert.Len(t, events, 1)
			}
		})
	}
}

func TestScannerAvoidance_LowConfidenceNotEvaluated(t *testing.T) {
	ds := testDataset(t,
		nil,
		[]types.Recognition{
			{Timestamp: sec(100), StationID: "SCC1", PredictedSKU: "PRD_S_04", Confidence: 0.5},
		},
		nil, nil, nil)

	events := NewScannerAvoidance(defaults()).Detect(context.Background(), ds)
	assert.Empty(t, events)
}

func TestScannerAvoidance_WrongSKUOrStationDoesNotMatch(t *testing.T) {
	ds := testDataset(t,
		[]types.Transaction{
			{Timestamp: sec(100), StationID: "SCC1", SKU: "PRD_A_01"},
			{Timestamp: sec(100), StationID: "SCC2", SKU: "PRD_S_04"},
		},
		[]types.Recognition{
			{Timestamp: sec(100), StationID: "SCC1", PredictedSKU: "PRD_S_04", Confidence: 0.9},
		},
		nil, nil, nil)

	events := NewScannerAvoidance(defaults()).Detect(context.Background(), ds)
	assert.Len(t, events, 1)
}

func TestScannerAvoidance_NoDeduplicationAcrossRecognitions(t *testing.T) {
	ds := testDataset(t,
		nil,
		[]types.Recognition{
			{Timestamp: sec(100), StationID: "SCC1", PredictedSKU: "PRD_S_04", Confidence: 0.9},
			{Timestamp: sec(101), StationID: "SCC1", PredictedSKU: "PRD_S_04", Confidence: 0.8},
		},
		nil, nil, nil)

	events := NewScannerAvoidance(defaults()).Detect(context.Background(), ds)
	assert.Len(t, events, 2)
}
