package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"etl-tycoon/internal/model"
)

func TestScoreComposition(t *testing.T) {
	simReport := model.SimulationReport{
		TotalLatencyMS:       1500,
		TotalCost:            1.5,
		BottleneckThroughput: 500,
		QualityScore:         0.90725,
	}
	score := Score(simReport, model.ValidationReport{})

	assert.InDelta(t, 85.8586, score.LatencyScore, 1e-3)
	assert.InDelta(t, 0.5, score.ThroughputScore, 1e-9)
	assert.InDelta(t, 100.0, score.QualityScore, 1e-9)
	assert.InDelta(t, 100.0, score.CostPenalty, 1e-9, "cost 1.5 is past the max, penalty clamps")
	assert.InDelta(t, 86.3586, score.FinalScore, 1e-3)
	assert.Equal(t, "B", score.QualityGrade)

	assert.False(t, score.HasBadge(model.BadgeZeroLatency))
	assert.True(t, score.HasBadge(model.BadgeCostSaver))
	assert.False(t, score.HasBadge(model.BadgePerformanceGuru))
}

func TestScorePerfectPipeline(t *testing.T) {
	score := Score(model.SimulationReport{
		TotalLatencyMS:       100,
		TotalCost:            0.01,
		BottleneckThroughput: 100000,
		QualityScore:         0.96,
	}, model.ValidationReport{})

	assert.InDelta(t, 100.0, score.LatencyScore, 1e-9)
	assert.InDelta(t, 100.0, score.ThroughputScore, 1e-9)
	assert.InDelta(t, 0.0, score.CostPenalty, 1e-9)
	assert.InDelta(t, 300.0, score.FinalScore, 1e-9)
	assert.Equal(t, "A", score.QualityGrade)
	assert.ElementsMatch(t, []string{
		model.BadgeZeroLatency,
		model.BadgeCostSaver,
		model.BadgePerformanceGuru,
	}, score.Badges)
}

func TestScoreNeverNegative(t *testing.T) {
	findings := make([]model.Finding, 10)
	for i := range findings {
		findings[i] = model.Finding{Severity: model.SeverityError, Code: model.CodeIllegalFlow}
	}
	score := Score(model.SimulationReport{
		TotalLatencyMS:       MaxLatencyMS,
		TotalCost:            5.0,
		BottleneckThroughput: 0,
		QualityScore:         0.2,
	}, model.ValidationReport{Findings: findings})

	assert.Zero(t, score.LatencyScore)
	assert.Zero(t, score.ThroughputScore)
	assert.Zero(t, score.QualityScore)
	assert.InDelta(t, 100.0, score.CostPenalty, 1e-9)
	assert.Zero(t, score.FinalScore)
	assert.Equal(t, "F", score.QualityGrade)
}

func TestScoreQualityPenalties(t *testing.T) {
	report := model.ValidationReport{Findings: []model.Finding{
		{Severity: model.SeverityError, Code: model.CodeIllegalFlow},
		{Severity: model.SeverityWarning, Code: model.CodeOrphanBlock},
		{Severity: model.SeverityWarning, Code: model.CodeNoSink},
	}}
	score := Score(model.SimulationReport{}, report)
	assert.InDelta(t, 70.0, score.QualityScore, 1e-9) // 100 - 20 - 5 - 5
}

func TestScoreGradeThresholds(t *testing.T) {
	cases := map[float64]string{
		0.97: "A",
		0.95: "A",
		0.90: "B",
		0.85: "B",
		0.75: "C",
		0.60: "D",
		0.20: "F",
	}
	for quality, want := range cases {
		score := Score(model.SimulationReport{QualityScore: quality}, model.ValidationReport{})
		assert.Equal(t, want, score.QualityGrade, "quality %.2f", quality)
	}
}

func TestScoreCheapFastPipeline(t *testing.T) {
	cheap := Score(model.SimulationReport{
		TotalLatencyMS:       150,
		BottleneckThroughput: 50000,
		TotalCost:            0.005,
		QualityScore:         0.9,
	}, model.ValidationReport{})

	assert.InDelta(t, 99.49, cheap.LatencyScore, 0.01)
	assert.InDelta(t, 50.0, cheap.ThroughputScore, 1e-9)
	assert.Zero(t, cheap.CostPenalty, "cost below the ideal carries no penalty")
	assert.True(t, cheap.HasBadge(model.BadgeZeroLatency))

	pricier := Score(model.SimulationReport{
		TotalLatencyMS:       150,
		BottleneckThroughput: 50000,
		TotalCost:            0.5,
		QualityScore:         0.9,
	}, model.ValidationReport{})
	assert.Greater(t, cheap.FinalScore, pricier.FinalScore)
}

func TestScoreCostPenaltyIsMonotonic(t *testing.T) {
	prev := -1.0
	for _, cost := range []float64{0, 0.01, 0.1, 0.5, 0.75, 1.0, 2.0} {
		score := Score(model.SimulationReport{TotalCost: cost}, model.ValidationReport{})
		assert.GreaterOrEqual(t, score.CostPenalty, prev, "cost %.2f", cost)
		assert.LessOrEqual(t, score.CostPenalty, 100.0)
		prev = score.CostPenalty
	}
}
