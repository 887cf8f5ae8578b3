package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etl-tycoon/internal/graph"
	"etl-tycoon/internal/model"
	"etl-tycoon/internal/sim"
)

func ingestToStorage(t *testing.T) *graph.PipelineGraph {
	t.Helper()
	return buildGraph(t, model.PipelineSpec{
		Blocks: []model.Block{
			{ID: "src", Category: model.CategoryIngestion},
			{ID: "lake", Category: model.CategoryStorage},
		},
		Connections: []model.Connection{
			{SourceID: "src", TargetID: "lake"},
		},
	})
}

func TestSimulateFormulaMode(t *testing.T) {
	report, err := NewSimulator().Simulate(ingestToStorage(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"src", "lake"}, report.Order)

	// defaults: volume 10 GB, parallelism 1, 1000 rps
	src := report.Nodes["src"]
	assert.InDelta(t, 500.0, src.LatencyMS, 1e-9) // 50 * (10/1)
	assert.InDelta(t, 0.5, src.CostUnits, 1e-9)   // 0.5 * (1000/1000)
	assert.InDelta(t, 1000.0, src.Throughput, 1e-9)

	lake := report.Nodes["lake"]
	assert.InDelta(t, 1000.0, lake.LatencyMS, 1e-9) // 100 * (10/1)
	assert.InDelta(t, 1.0, lake.CostUnits, 1e-9)    // 1.0 * (10/10)
	assert.InDelta(t, 500.0, lake.Throughput, 1e-9)

	assert.InDelta(t, 1500.0, report.TotalLatencyMS, 1e-9)
	assert.InDelta(t, 1.5, report.TotalCost, 1e-9)
	assert.InDelta(t, 500.0, report.BottleneckThroughput, 1e-9)
	assert.Equal(t, "lake", report.BottleneckBlockID)
	assert.InDelta(t, 0.90725, report.QualityScore, 1e-9)
}

func TestSimulateConfigurationDrivesMetrics(t *testing.T) {
	g := buildGraph(t, model.PipelineSpec{
		Blocks: []model.Block{
			{ID: "src", Category: model.CategoryIngestion, Configuration: map[string]interface{}{
				model.ConfigThroughputRPS: 4000,
			}},
			{ID: "lake", Category: model.CategoryStorage, Configuration: map[string]interface{}{
				model.ConfigDataVolumeGB: 20,
				model.ConfigParallelism:  4,
			}},
			{ID: "clean", Category: model.CategoryTransform, Configuration: map[string]interface{}{
				model.ConfigComplexity: 3,
			}},
		},
		Connections: []model.Connection{
			{SourceID: "src", TargetID: "lake"},
			{SourceID: "lake", TargetID: "clean"},
		},
	})
	report, err := NewSimulator().Simulate(g)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, report.Nodes["src"].CostUnits, 1e-9) // 0.5 * 4000/1000

	lake := report.Nodes["lake"]
	assert.InDelta(t, 500.0, lake.LatencyMS, 1e-9) // 100 * (20/4)
	assert.InDelta(t, 2.0, lake.CostUnits, 1e-9)   // 1.0 * 20/10
	assert.InDelta(t, 2000.0, lake.Throughput, 1e-9)
	assert.True(t, lake.Bottleneck, "parallelism 4 saturates the category baseline")

	clean := report.Nodes["clean"]
	assert.InDelta(t, 6.0, clean.CostUnits, 1e-9) // 2.0 * complexity 3
	assert.InDelta(t, 200.0, clean.Throughput, 1e-9)
	assert.Equal(t, "clean", report.BottleneckBlockID)
}

func TestSimulateZeroParallelismCannotDivideByZero(t *testing.T) {
	g := buildGraph(t, model.PipelineSpec{
		Blocks: []model.Block{
			{ID: "lake", Category: model.CategoryStorage, Configuration: map[string]interface{}{
				model.ConfigParallelism: 0,
			}},
		},
	})
	report, err := NewSimulator().Simulate(g)
	require.NoError(t, err)

	// parallelism floors at 1
	lake := report.Nodes["lake"]
	assert.InDelta(t, 1000.0, lake.LatencyMS, 1e-9)
	assert.InDelta(t, 500.0, lake.Throughput, 1e-9)
}

func TestSimulateRejectsInvalidGraphs(t *testing.T) {
	s := NewSimulator()

	_, err := s.Simulate(graph.New())
	assert.ErrorIs(t, err, ErrInvalidPipeline)

	cyclic := buildGraph(t, model.PipelineSpec{
		Blocks: []model.Block{
			{ID: "a", Category: model.CategoryTransform},
			{ID: "b", Category: model.CategoryTransform},
		},
		Connections: []model.Connection{
			{SourceID: "a", TargetID: "b"},
			{SourceID: "b", TargetID: "a"},
		},
	})
	_, err = s.Simulate(cyclic)
	assert.ErrorIs(t, err, ErrInvalidPipeline)
}

func TestSimulateJitterIsSeededAndBounded(t *testing.T) {
	g := ingestToStorage(t)

	a := &Simulator{Rates: DefaultRates(), Jitter: true, Seed: 42}
	b := &Simulator{Rates: DefaultRates(), Jitter: true, Seed: 42}
	c := &Simulator{Rates: DefaultRates(), Jitter: true, Seed: 7}

	ra, err := a.Simulate(g)
	require.NoError(t, err)
	rb, err := b.Simulate(g)
	require.NoError(t, err)
	rc, err := c.Simulate(g)
	require.NoError(t, err)

	assert.Equal(t, ra, rb, "same seed must reproduce")
	assert.NotEqual(t, ra.TotalLatencyMS, rc.TotalLatencyMS, "different seeds should differ")

	// jitter stays within ±20% of the deterministic latency
	assert.GreaterOrEqual(t, ra.Nodes["src"].LatencyMS, 0.8*500.0)
	assert.LessOrEqual(t, ra.Nodes["src"].LatencyMS, 1.2*500.0)

	// cost and throughput are never jittered
	assert.InDelta(t, 1.5, ra.TotalCost, 1e-9)
	assert.InDelta(t, 500.0, ra.BottleneckThroughput, 1e-9)
}

func TestSimulateOrchestrationNeverBottlenecks(t *testing.T) {
	g := buildGraph(t, model.PipelineSpec{
		Blocks: []model.Block{
			{ID: "sched", Category: model.CategoryOrchestration},
			{ID: "src", Category: model.CategoryIngestion, Configuration: map[string]interface{}{
				model.ConfigParallelism: 20,
			}},
			{ID: "lake", Category: model.CategoryStorage, Configuration: map[string]interface{}{
				model.ConfigParallelism: 40,
			}},
		},
		Connections: []model.Connection{
			{SourceID: "sched", TargetID: "lake"},
			{SourceID: "src", TargetID: "lake"},
		},
	})
	report, err := NewSimulator().Simulate(g)
	require.NoError(t, err)

	// sched runs at 10000; both data blocks run at 20000. The scheduler is
	// excluded, so the bottleneck is a data block.
	assert.InDelta(t, 20000.0, report.BottleneckThroughput, 1e-9)
	assert.NotEqual(t, "sched", report.BottleneckBlockID)
}

type runnerFunc func(model.Block) (sim.Metrics, error)

func (f runnerFunc) MetricsFor(b model.Block) (sim.Metrics, error) { return f(b) }

func TestSimulateServiceModeUsesRunner(t *testing.T) {
	s := NewSimulator()
	s.Services = runnerFunc(func(b model.Block) (sim.Metrics, error) {
		return sim.Metrics{LatencyMS: 10, CostUnits: 0.2, Throughput: 300}, nil
	})

	report, err := s.Simulate(ingestToStorage(t))
	require.NoError(t, err)
	assert.InDelta(t, 20.0, report.TotalLatencyMS, 1e-9)
	assert.InDelta(t, 0.4, report.TotalCost, 1e-9)
	assert.InDelta(t, 300.0, report.BottleneckThroughput, 1e-9)
	// quality still comes from the category model
	assert.InDelta(t, 0.90725, report.QualityScore, 1e-9)
}

func TestSimulateServiceFailureZeroesBlock(t *testing.T) {
	s := NewSimulator()
	s.Services = runnerFunc(func(b model.Block) (sim.Metrics, error) {
		if b.ID == "lake" {
			return sim.Metrics{}, fmt.Errorf("bucket on fire")
		}
		return sim.Metrics{LatencyMS: 10, CostUnits: 0.2, Throughput: 300}, nil
	})

	report, err := s.Simulate(ingestToStorage(t))
	require.NoError(t, err, "one failing service must not abort the pass")

	lake := report.Nodes["lake"]
	assert.Zero(t, lake.LatencyMS)
	assert.Zero(t, lake.CostUnits)
	require.Len(t, lake.Warnings, 1)
	assert.Contains(t, lake.Warnings[0], "simulation error")
	assert.Contains(t, lake.Warnings[0], "bucket on fire")
}

func TestSimulateServicePanicIsRecovered(t *testing.T) {
	s := NewSimulator()
	s.Services = runnerFunc(func(b model.Block) (sim.Metrics, error) {
		panic("segfault in the fake cluster")
	})

	report, err := s.Simulate(ingestToStorage(t))
	require.NoError(t, err)
	for id, m := range report.Nodes {
		assert.Zero(t, m.LatencyMS, "block %s", id)
		require.NotEmpty(t, m.Warnings)
		assert.Contains(t, m.Warnings[0], "simulation error")
	}
}
