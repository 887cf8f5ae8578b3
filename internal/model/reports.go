package model

// Severity of a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding codes produced by the structural validator.
const (
	CodeEmptyPipeline   = "empty_pipeline"
	CodeMissingBlockRef = "missing_block_ref"
	CodeSelfLoop        = "self_loop"
	CodeCycle           = "cycle_detected"
	CodeOrphanBlock     = "orphan_block"
	CodeNoSource        = "no_source"
	CodeNoSink          = "no_sink"
	CodeIllegalFlow     = "illegal_flow"
)

// Finding is a single validation result tied to a block or connection.
type Finding struct {
	Severity     Severity `json:"severity"`
	Code         string   `json:"code"`
	Message      string   `json:"message"`
	BlockID      string   `json:"block_id,omitempty"`
	ConnectionID string   `json:"connection_id,omitempty"`
}

// ValidationReport is the ordered list of findings for one validation pass.
type ValidationReport struct {
	Findings []Finding `json:"findings"`
}

// ErrorCount returns the number of error-severity findings.
func (r ValidationReport) ErrorCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity findings.
func (r ValidationReport) WarningCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// structuralCodes are the finding codes that make a graph ineligible for
// simulation when raised at error severity. Category-flow errors (strict
// mode) deliberately do not gate simulation.
var structuralCodes = map[string]bool{
	CodeEmptyPipeline:   true,
	CodeMissingBlockRef: true,
	CodeSelfLoop:        true,
	CodeCycle:           true,
	CodeNoSource:        true,
}

// IsValid reports whether the graph is eligible for simulation.
func (r ValidationReport) IsValid() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError && structuralCodes[f.Code] {
			return false
		}
	}
	return true
}

// NodeMetrics holds the simulated metrics for a single block.
type NodeMetrics struct {
	LatencyMS  float64  `json:"latency_ms"`
	CostUnits  float64  `json:"cost_units"`
	Throughput float64  `json:"throughput"`
	Quality    float64  `json:"quality"`
	Bottleneck bool     `json:"bottleneck,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// SimulationReport aggregates per-block metrics into pipeline totals.
type SimulationReport struct {
	Order                []string               `json:"order"`
	Nodes                map[string]NodeMetrics `json:"nodes"`
	TotalLatencyMS       float64                `json:"total_latency_ms"`
	TotalCost            float64                `json:"total_cost"`
	BottleneckThroughput float64                `json:"bottleneck_throughput"`
	BottleneckBlockID    string                 `json:"bottleneck_block_id,omitempty"`
	QualityScore         float64                `json:"quality_score"`
}

// WarningCount returns the total number of per-node warnings.
func (r SimulationReport) WarningCount() int {
	n := 0
	for _, m := range r.Nodes {
		n += len(m.Warnings)
	}
	return n
}

// Badge names awarded by the scoring engine.
const (
	BadgeZeroLatency     = "Zero Latency"
	BadgeCostSaver       = "Cost Saver"
	BadgePerformanceGuru = "Performance Guru"
)

// ScoreReport is the final graded result for one pipeline.
type ScoreReport struct {
	LatencyScore    float64  `json:"latency_score"`
	ThroughputScore float64  `json:"throughput_score"`
	QualityScore    float64  `json:"quality_score"`
	CostPenalty     float64  `json:"cost_penalty"`
	FinalScore      float64  `json:"final_score"`
	QualityGrade    string   `json:"quality_grade"`
	Badges          []string `json:"badges,omitempty"`
}

// HasBadge reports whether the given badge was awarded.
func (r ScoreReport) HasBadge(name string) bool {
	for _, b := range r.Badges {
		if b == name {
			return true
		}
	}
	return false
}
