// Package sim contains the mock external services the simulator can run
// pipeline blocks against: a streaming broker, an object store, a
// distributed compute cluster, and a SQL warehouse. Everything is
// in-memory and CPU-only; the services exist purely as parameterized
// latency/cost/throughput producers.
package sim

// Metrics is the standard result shape every mock service returns.
type Metrics struct {
	LatencyMS  float64  `json:"latency_ms"`
	CostUnits  float64  `json:"cost_units"`
	Throughput float64  `json:"throughput"`
	Warnings   []string `json:"warnings,omitempty"`
}
