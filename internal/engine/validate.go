package engine

import (
	"fmt"

	"etl-tycoon/internal/graph"
	"etl-tycoon/internal/model"
)

// legalTargets is the category transition table for DATA_FLOW edges.
// A STORAGE target is always legal regardless of source (data lake sink),
// handled before this table is consulted.
var legalTargets = map[model.Category]map[model.Category]bool{
	model.CategoryIngestion: {
		model.CategoryStorage:   true,
		model.CategoryTransform: true,
	},
	model.CategoryStorage: {
		model.CategoryStorage:       true,
		model.CategoryTransform:     true,
		model.CategoryOrchestration: true,
	},
	model.CategoryTransform: {
		model.CategoryStorage:       true,
		model.CategoryTransform:     true,
		model.CategoryOrchestration: true,
	},
	model.CategoryOrchestration: {
		model.CategoryStorage:   true,
		model.CategoryTransform: true,
	},
}

// Validator checks the structure of a pipeline graph. It never mutates
// the graph and always returns a report, never an error.
type Validator struct {
	// StrictCategoryFlow raises category-flow violations from warning to
	// error severity. Even as errors they do not block simulation.
	StrictCategoryFlow bool
}

// Validate runs all structural rules in order and returns the findings.
// Reference-integrity errors short-circuit the rules that would be
// meaningless over dangling edges.
func (v Validator) Validate(g *graph.PipelineGraph) model.ValidationReport {
	var report model.ValidationReport
	add := func(f model.Finding) {
		report.Findings = append(report.Findings, f)
	}

	// Rule 5a: an empty block set is its own terminal case.
	if g.Size() == 0 {
		add(model.Finding{
			Severity: model.SeverityError,
			Code:     model.CodeEmptyPipeline,
			Message:  "pipeline has no blocks",
		})
		return report
	}

	// Rule 1: reference integrity.
	refErrors := false
	for _, c := range g.Connections() {
		if _, ok := g.Block(c.SourceID); !ok {
			refErrors = true
			add(model.Finding{
				Severity:     model.SeverityError,
				Code:         model.CodeMissingBlockRef,
				Message:      fmt.Sprintf("connection source %q does not exist", c.SourceID),
				ConnectionID: c.ID,
			})
		}
		if _, ok := g.Block(c.TargetID); !ok {
			refErrors = true
			add(model.Finding{
				Severity:     model.SeverityError,
				Code:         model.CodeMissingBlockRef,
				Message:      fmt.Sprintf("connection target %q does not exist", c.TargetID),
				ConnectionID: c.ID,
			})
		}
	}
	if refErrors {
		return report
	}

	// Rule 2: self-loops.
	for _, c := range g.Connections() {
		if c.SourceID == c.TargetID {
			add(model.Finding{
				Severity:     model.SeverityError,
				Code:         model.CodeSelfLoop,
				Message:      fmt.Sprintf("block %q connects to itself", c.SourceID),
				BlockID:      c.SourceID,
				ConnectionID: c.ID,
			})
		}
	}

	// Rule 3: cycle detection, first cycle only.
	if from, to, found := g.FindCycle(); found && from != to {
		add(model.Finding{
			Severity: model.SeverityError,
			Code:     model.CodeCycle,
			Message:  fmt.Sprintf("data flow is cyclic (edge %s -> %s closes a cycle)", from, to),
			BlockID:  from,
		})
	}

	// Rule 4: orphan blocks, only meaningful past a single block.
	if g.Size() > 1 {
		touched := make(map[string]bool)
		for _, c := range g.Connections() {
			touched[c.SourceID] = true
			touched[c.TargetID] = true
		}
		for _, id := range g.BlockIDs() {
			if !touched[id] {
				add(model.Finding{
					Severity: model.SeverityWarning,
					Code:     model.CodeOrphanBlock,
					Message:  fmt.Sprintf("block %q has no connections", id),
					BlockID:  id,
				})
			}
		}
	}

	// Rule 5: source/sink existence. Single-block graphs are exempt.
	if g.Size() > 1 {
		if len(g.Sources()) == 0 {
			add(model.Finding{
				Severity: model.SeverityError,
				Code:     model.CodeNoSource,
				Message:  "pipeline has no source block (every block has incoming data flow)",
			})
		}
		if len(g.Sinks()) == 0 {
			add(model.Finding{
				Severity: model.SeverityWarning,
				Code:     model.CodeNoSink,
				Message:  "pipeline has no sink block (every block has outgoing data flow)",
			})
		}
	}

	// Rule 6: category-flow legality over DATA_FLOW edges.
	severity := model.SeverityWarning
	if v.StrictCategoryFlow {
		severity = model.SeverityError
	}
	for _, c := range g.Connections() {
		if c.Kind != model.KindDataFlow || c.SourceID == c.TargetID {
			continue
		}
		src, _ := g.Block(c.SourceID)
		dst, _ := g.Block(c.TargetID)
		if dst.Category == model.CategoryStorage {
			// data lake exception: storage accepts from anything
			continue
		}
		if !legalTargets[src.Category][dst.Category] {
			add(model.Finding{
				Severity:     severity,
				Code:         model.CodeIllegalFlow,
				Message:      fmt.Sprintf("illegal data flow %s -> %s (%s -> %s)", src.Category, dst.Category, c.SourceID, c.TargetID),
				ConnectionID: c.ID,
			})
		}
	}

	return report
}
