package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"etl-tycoon/internal/graph"
	"etl-tycoon/internal/model"
	"etl-tycoon/internal/sim"
)

// ErrInvalidPipeline is returned by Simulate when the graph fails
// structural validation. Callers are expected to validate first.
var ErrInvalidPipeline = errors.New("pipeline failed structural validation")

// Rates are the per-category base rates the simulator derives metrics
// from. Injectable so levels can rebalance the economy.
type Rates struct {
	BaseLatencyMS  map[model.Category]float64
	BaseCost       map[model.Category]float64
	BaseThroughput map[model.Category]float64
}

// DefaultRates returns the standard game economy.
func DefaultRates() Rates {
	return Rates{
		BaseLatencyMS: map[model.Category]float64{
			model.CategoryIngestion:     50,
			model.CategoryStorage:       100,
			model.CategoryTransform:     200,
			model.CategoryOrchestration: 10,
		},
		BaseCost: map[model.Category]float64{
			model.CategoryIngestion:     0.5,
			model.CategoryStorage:       1.0,
			model.CategoryTransform:     2.0,
			model.CategoryOrchestration: 0.3,
		},
		BaseThroughput: map[model.Category]float64{
			model.CategoryIngestion:     1000,
			model.CategoryStorage:       500,
			model.CategoryTransform:     200,
			model.CategoryOrchestration: 10000,
		},
	}
}

// Quality dimension weights; they sum to 1.0.
var qualityWeights = map[string]float64{
	"completeness": 0.20,
	"accuracy":     0.25,
	"consistency":  0.15,
	"timeliness":   0.15,
	"validity":     0.15,
	"uniqueness":   0.10,
}

// qualityFor computes the per-block quality estimate in [0,1]: category
// baselines over six dimensions, combined by the fixed weights.
func qualityFor(c model.Category) float64 {
	dims := map[string]float64{
		"completeness": 0.95,
		"accuracy":     0.90,
		"consistency":  0.85,
		"timeliness":   0.88,
		"validity":     0.92,
		"uniqueness":   0.94,
	}
	switch c {
	case model.CategoryIngestion:
		// high completeness, but data arrives late
		dims["timeliness"] = 0.75
	case model.CategoryTransform:
		// transforms can introduce errors
		dims["accuracy"] = 0.85
		dims["validity"] = 0.80
	case model.CategoryStorage:
		// storage preserves what it is given
		dims["completeness"] = 0.98
		dims["consistency"] = 0.95
	}

	total := 0.0
	for name, score := range dims {
		total += score * qualityWeights[name]
	}
	return total
}

// ServiceRunner is what the simulator needs from a mock-service stack.
type ServiceRunner interface {
	MetricsFor(b model.Block) (sim.Metrics, error)
}

// Simulator derives per-block and aggregate metrics from a structurally
// valid graph. A pure function of graph + rates unless Jitter or a
// service stack is attached.
type Simulator struct {
	Rates Rates

	// Jitter applies a ±20% uniform factor to per-block latency for
	// Monte-Carlo style estimates. Off by default so results reproduce.
	Jitter bool
	Seed   int64

	// Services switches the simulator to service mode: per-block metrics
	// come from the mock services instead of the pure formulas. A failing
	// service zeroes that block's metrics and adds a warning; it never
	// aborts the pass.
	Services ServiceRunner
}

// NewSimulator returns a deterministic formula-mode simulator with the
// default rates.
func NewSimulator() *Simulator {
	return &Simulator{Rates: DefaultRates()}
}

// Simulate runs one pass over the graph in topological order. Returns
// ErrInvalidPipeline when the graph has structural errors.
func (s *Simulator) Simulate(g *graph.PipelineGraph) (model.SimulationReport, error) {
	if report := (Validator{}).Validate(g); !report.IsValid() {
		return model.SimulationReport{}, fmt.Errorf("%w (%d errors)", ErrInvalidPipeline, report.ErrorCount())
	}
	order, err := g.TopologicalOrder()
	if err != nil {
		return model.SimulationReport{}, fmt.Errorf("%w: %v", ErrInvalidPipeline, err)
	}

	var rng *rand.Rand
	if s.Jitter {
		rng = rand.New(rand.NewSource(s.Seed))
	}

	report := model.SimulationReport{
		Order: order,
		Nodes: make(map[string]model.NodeMetrics, len(order)),
	}

	qualitySum := 0.0
	bottleneck := 0.0
	bottleneckID := ""

	for _, id := range order {
		b, _ := g.Block(id)
		m := s.blockMetrics(b, rng)
		report.Nodes[id] = m

		report.TotalLatencyMS += m.LatencyMS
		report.TotalCost += m.CostUnits
		qualitySum += m.Quality

		// orchestration has effectively unbounded throughput and never
		// becomes the bottleneck
		if b.Category != model.CategoryOrchestration && m.Throughput > 0 {
			if bottleneckID == "" || m.Throughput < bottleneck {
				bottleneck = m.Throughput
				bottleneckID = id
			}
		}
	}

	report.BottleneckThroughput = bottleneck
	report.BottleneckBlockID = bottleneckID
	if len(order) > 0 {
		report.QualityScore = qualitySum / float64(len(order))
	}
	return report, nil
}

// blockMetrics computes one block's metrics in formula or service mode.
func (s *Simulator) blockMetrics(b model.Block, rng *rand.Rand) model.NodeMetrics {
	if s.Services != nil {
		return s.serviceMetrics(b)
	}

	volume := b.ConfigNumber(model.ConfigDataVolumeGB, 10)
	parallelism := b.ConfigNumber(model.ConfigParallelism, 1)
	if parallelism < 1 {
		parallelism = 1
	}
	complexity := b.ConfigNumber(model.ConfigComplexity, 1)
	rps := b.ConfigNumber(model.ConfigThroughputRPS, 1000)

	latency := s.Rates.BaseLatencyMS[b.Category] * (volume / parallelism)
	if rng != nil {
		latency *= 0.8 + rng.Float64()*0.4
	}

	multiplier := 1.0
	switch b.Category {
	case model.CategoryStorage:
		multiplier = volume / 10
	case model.CategoryTransform:
		multiplier = complexity
	case model.CategoryIngestion:
		multiplier = rps / 1000
	}
	cost := s.Rates.BaseCost[b.Category] * multiplier

	base := s.Rates.BaseThroughput[b.Category]
	throughput := base * parallelism

	m := model.NodeMetrics{
		LatencyMS:  latency,
		CostUnits:  cost,
		Throughput: throughput,
		Quality:    qualityFor(b.Category),
	}
	if base > 0 && throughput/(2*base) > 0.7 {
		m.Bottleneck = true
		m.Warnings = append(m.Warnings, fmt.Sprintf("utilization %.0f%% - block is saturating", throughput/(2*base)*100))
	}
	return m
}

// serviceMetrics runs the block against the mock-service stack. Errors
// and panics are converted to a zero-metric result with a warning so a
// single failing node never aborts the simulation.
func (s *Simulator) serviceMetrics(b model.Block) (m model.NodeMetrics) {
	m.Quality = qualityFor(b.Category)

	defer func() {
		if r := recover(); r != nil {
			m = model.NodeMetrics{
				Quality:  qualityFor(b.Category),
				Warnings: []string{fmt.Sprintf("simulation error: %v", r)},
			}
		}
	}()

	sm, err := s.Services.MetricsFor(b)
	if err != nil {
		m.Warnings = append(m.Warnings, fmt.Sprintf("simulation error: %v", err))
		return m
	}

	m.LatencyMS = sm.LatencyMS
	m.CostUnits = sm.CostUnits
	m.Throughput = sm.Throughput
	m.Warnings = append(m.Warnings, sm.Warnings...)

	if base := s.Rates.BaseThroughput[b.Category]; base > 0 && sm.Throughput/(2*base) > 0.7 {
		m.Bottleneck = true
	}
	return m
}
