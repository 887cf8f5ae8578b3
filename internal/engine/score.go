package engine

import (
	"etl-tycoon/internal/model"
	"etl-tycoon/pkg/utils"
)

// Scoring thresholds. Fixed-shape scoring functions interpolate between
// the ideal and the maximum acceptable value of each metric.
const (
	IdealLatencyMS  = 100.0
	MaxLatencyMS    = 10000.0
	IdealThroughput = 100000.0
	IdealCost       = 0.01
	MaxCost         = 1.00
)

// Badge thresholds.
const (
	badgeLatencyMS  = 200.0
	badgeCost       = 10.0
	badgeFinalScore = 150.0
)

// Quality grade thresholds on the simulator's [0,1] quality estimate.
var gradeThresholds = []struct {
	grade string
	min   float64
}{
	{"A", 0.95},
	{"B", 0.85},
	{"C", 0.70},
	{"D", 0.50},
}

// Score maps simulation totals and validation findings to a bounded
// final score with badges. Pure and deterministic.
func Score(simReport model.SimulationReport, valReport model.ValidationReport) model.ScoreReport {
	report := model.ScoreReport{
		LatencyScore:    latencyScore(simReport.TotalLatencyMS),
		ThroughputScore: throughputScore(simReport.BottleneckThroughput),
		QualityScore:    qualityScore(valReport),
		CostPenalty:     costPenalty(simReport.TotalCost),
		QualityGrade:    qualityGrade(simReport.QualityScore),
	}

	final := report.LatencyScore + report.ThroughputScore + report.QualityScore - report.CostPenalty
	if final < 0 {
		final = 0
	}
	report.FinalScore = final

	if simReport.TotalLatencyMS < badgeLatencyMS {
		report.Badges = append(report.Badges, model.BadgeZeroLatency)
	}
	if simReport.TotalCost < badgeCost {
		report.Badges = append(report.Badges, model.BadgeCostSaver)
	}
	if report.FinalScore > badgeFinalScore {
		report.Badges = append(report.Badges, model.BadgePerformanceGuru)
	}
	return report
}

// latencyScore is 100 at or below the ideal latency, 0 at or above the
// maximum, linear in between.
func latencyScore(totalLatencyMS float64) float64 {
	if totalLatencyMS <= IdealLatencyMS {
		return 100
	}
	if totalLatencyMS >= MaxLatencyMS {
		return 0
	}
	return 100 * (MaxLatencyMS - totalLatencyMS) / (MaxLatencyMS - IdealLatencyMS)
}

// throughputScore scales the bottleneck throughput against the ideal.
func throughputScore(bottleneck float64) float64 {
	return utils.Clamp(bottleneck/IdealThroughput*100, 0, 100)
}

// qualityScore is penalty-based: each validation error costs 20 points,
// each warning 5, from a base of 100.
func qualityScore(valReport model.ValidationReport) float64 {
	score := 100.0 - 20.0*float64(valReport.ErrorCount()) - 5.0*float64(valReport.WarningCount())
	return utils.Clamp(score, 0, 100)
}

// costPenalty grows linearly from 0 at the ideal cost to 100 at the
// maximum cost.
func costPenalty(totalCost float64) float64 {
	return utils.Clamp(100*(totalCost-IdealCost)/(MaxCost-IdealCost), 0, 100)
}

// qualityGrade assigns a letter grade to the simulated quality estimate.
func qualityGrade(quality float64) string {
	for _, t := range gradeThresholds {
		if quality >= t.min {
			return t.grade
		}
	}
	return "F"
}
