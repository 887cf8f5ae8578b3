// Package engine holds the pipeline core: structural validation,
// deterministic simulation, and scoring. The three operations are pure
// functions over an immutable graph snapshot; one validate-simulate-score
// pass runs per user interaction.
package engine

import (
	"etl-tycoon/internal/graph"
	"etl-tycoon/internal/model"
)

// Analysis is the combined output of one full pass over a pipeline.
// Simulation and Score stay nil when structural validation fails.
type Analysis struct {
	Valid      bool                    `json:"valid"`
	Validation model.ValidationReport  `json:"validation"`
	Simulation *model.SimulationReport `json:"simulation,omitempty"`
	Score      *model.ScoreReport      `json:"score,omitempty"`
}

// Engine wires the validator and simulator with one configuration.
type Engine struct {
	Validator Validator
	Simulator *Simulator
}

// New returns an engine in lenient, deterministic formula mode.
func New() *Engine {
	return &Engine{Simulator: NewSimulator()}
}

// Analyze runs validate, then simulate and score when the graph is
// eligible. Validation short-circuits hard errors; warnings never block.
func (e *Engine) Analyze(g *graph.PipelineGraph) Analysis {
	a := Analysis{Validation: e.Validator.Validate(g)}
	a.Valid = a.Validation.IsValid()
	if !a.Valid {
		return a
	}

	simReport, err := e.Simulator.Simulate(g)
	if err != nil {
		// validation said the graph was eligible; Simulate disagreeing
		// would be a bug, surface it as a finding rather than panicking
		a.Valid = false
		a.Validation.Findings = append(a.Validation.Findings, model.Finding{
			Severity: model.SeverityError,
			Code:     model.CodeCycle,
			Message:  err.Error(),
		})
		return a
	}

	score := Score(simReport, a.Validation)
	a.Simulation = &simReport
	a.Score = &score
	return a
}
