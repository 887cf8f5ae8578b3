package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparkNarrowJob(t *testing.T) {
	s := NewFakeSpark("unit")
	m, err := s.ExecuteJob(SparkJob{
		Name:       "narrow",
		Operations: []SparkOperation{OpMap, OpFilter},
		InputRows:  1_000_000,
	})
	require.NoError(t, err)

	// map+filter never shuffle: one stage, no shuffle, no spill
	assert.Equal(t, 1, m.StagesCompleted)
	assert.Zero(t, m.ShuffleBytes)
	assert.Zero(t, m.SpillBytes)
	assert.Equal(t, 200, m.PartitionsUsed) // default parallelism
	assert.Equal(t, 200, m.TasksCompleted)

	// 500 base + 100 per stage + 1M rows * 50ms/M * complexity 1.8
	assert.InDelta(t, 690.0, m.LatencyMS, 1e-9)
	assert.Greater(t, m.Throughput, 0.0)
}

func TestSparkShuffleAddsStages(t *testing.T) {
	s := NewFakeSpark("unit")
	m, err := s.ExecuteJob(SparkJob{
		Name:       "wide",
		Operations: []SparkOperation{OpMap, OpGroupBy, OpJoin},
		InputRows:  1_000_000,
		Partitions: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, m.StagesCompleted)
	assert.Equal(t, int64(200_000_000), m.ShuffleBytes) // 1M rows * 100B * 2 shuffles
	assert.Zero(t, m.SpillBytes, "default memory absorbs 200MB of shuffle")
	// 500 + 3*100 + 1 * 50 * (1.0+2.0+3.0)
	assert.InDelta(t, 1100.0, m.LatencyMS, 1e-9)

	require.Len(t, s.JobHistory(), 1)
	assert.Equal(t, "wide", s.JobHistory()[0].Name)
}

func TestSparkSpillInflatesLatency(t *testing.T) {
	s := NewFakeSpark("unit")
	m, err := s.ExecuteJob(SparkJob{
		Name:       "huge",
		Operations: []SparkOperation{OpJoin},
		InputRows:  2_000_000_000,
	})
	require.NoError(t, err)

	assert.Greater(t, m.SpillBytes, int64(0))
	// 500 + 2*100 + 2000 * 50 * 3.0, then *1.5 for the spill
	assert.InDelta(t, 451050.0, m.LatencyMS, 1e-6)

	var spillWarned, shuffleWarned, sizeWarned bool
	for _, w := range m.Warnings {
		switch {
		case strings.Contains(w, "disk spill"):
			spillWarned = true
		case strings.Contains(w, "large shuffle"):
			shuffleWarned = true
		case strings.Contains(w, ">1B rows"):
			sizeWarned = true
		}
	}
	assert.True(t, spillWarned)
	assert.True(t, shuffleWarned)
	assert.True(t, sizeWarned)
}

func TestSparkRejectsNegativeRows(t *testing.T) {
	s := NewFakeSpark("unit")
	_, err := s.ExecuteJob(SparkJob{Name: "bad", InputRows: -1})
	assert.Error(t, err)
}
