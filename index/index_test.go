package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	station string
	ts      int64
	seq     int
}

func build(samples []sample) *Index[sample] {
	return New(samples,
		func(s sample) string { return s.station },
		func(s sample) int64 { return s.ts })
}

func TestWindow_InclusiveBothEnds(t *testing.T) {
	ix := build([]sample{
		{station: "SCC1", ts: 1000},
		{station: "SCC1", ts: 2000},
		{station: "SCC1", ts: 3000},
		{station: "SCC1", ts: 4000},
	})

	got := ix.Window("SCC1", 2000, 3000)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2000), got[0].ts)
	assert.Equal(t, int64(3000), got[1].ts)
}

func TestWindow_BoundaryRecordOnly(t *testing.T) {
	ix := build([]sample{{station: "SCC1", ts: 5000}})

	assert.Len(t, ix.Window("SCC1", 5000, 5000), 1)
	assert.Empty(t, ix.Window("SCC1", 5001, 6000))
	assert.Empty(t, ix.Window("SCC1", 4000, 4999))
}

func TestWindow_StationIsolation(t *testing.T) {
	ix := build([]sample{
		{station: "SCC1", ts: 1000},
		{station: "SCC2", ts: 1000},
		{station: "SCC2", ts: 2000},
	})

	assert.Len(t, ix.Window("SCC1", 0, 10000), 1)
	assert.Len(t, ix.Window("SCC2", 0, 10000), 2)
	assert.Empty(t, ix.Window("SCC3", 0, 10000))
}

func TestWindow_AllStations(t *testing.T) {
	ix := build([]sample{
		{station: "SCC2", ts: 3000},
		{station: "SCC1", ts: 1000},
		{station: "SCC3", ts: 2000},
	})

	got := ix.Window("", 0, 10000)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1000), got[0].ts)
	assert.Equal(t, int64(2000), got[1].ts)
	assert.Equal(t, int64(3000), got[2].ts)
}

func TestWindow_InvertedRange(t *testing.T) {
	ix := build([]sample{{station: "SCC1", ts: 1000}})
	assert.Empty(t, ix.Window("SCC1", 2000, 1000))
}

func TestNew_StableForEqualTimestamps(t *testing.T) {
	ix := build([]sample{
		{station: "SCC1", ts: 1000, seq: 0},
		{station: "SCC1", ts: 1000, seq: 1},
		{station: "SCC1", ts: 1000, seq: 2},
	})

	got := ix.Station("SCC1")
	require.Len(t, got, 3)
	for i, rec := range got {
		assert.Equal(t, i, rec.seq)
	}
}

func TestStations_Sorted(t *testing.T) {
	ix := build([]sample{
		{station: "SCC3", ts: 1},
		{station: "SCC1", ts: 2},
		{station: "SCC2", ts: 3},
	})
	assert.Equal(t, []string{"SCC1", "SCC2", "SCC3"}, ix.Stations())
}

func TestNew_DoesNotMutateInput(t *testing.T) {
	in := []sample{
		{station: "SCC1", ts: 2000},
		{station: "SCC1", ts: 1000},
	}
	build(in)
	assert.Equal(t, int64(2000), in[0].ts)
}

func TestMergeTimestamps(t *testing.T) {
	merged := MergeTimestamps([]int64{1000, 3000}, []int64{2000, 3000, 4000})
	assert.Equal(t, []int64{1000, 2000, 3000, 3000, 4000}, merged)

	assert.Nil(t, MergeTimestamps(nil, nil))
	assert.Equal(t, []int64{5}, MergeTimestamps([]int64{5}))
}

func TestTimestamps(t *testing.T) {
	ix := build([]sample{
		{station: "SCC1", ts: 3000},
		{station: "SCC1", ts: 1000},
	})
	assert.Equal(t, []int64{1000, 3000}, Timestamps(ix, "SCC1"))
	assert.Nil(t, Timestamps(ix, "SCC9"))
}
