package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"etl-tycoon/internal/engine"
	"etl-tycoon/internal/graph"
	"etl-tycoon/internal/level"
	"etl-tycoon/internal/model"
	"etl-tycoon/internal/store"
)

// analysisOptions tweak one analysis pass. All fields are optional; the
// zero value is the lenient, deterministic default.
type analysisOptions struct {
	Strict bool  `json:"strict"`
	Jitter bool  `json:"jitter"`
	Seed   int64 `json:"seed"`
}

// engineFor builds an engine for one request. The shared engine is used
// unless the request asks for non-default behavior.
func engineFor(opts analysisOptions) *engine.Engine {
	if !opts.Strict && !opts.Jitter {
		return eng
	}
	e := engine.New()
	e.Validator.StrictCategoryFlow = opts.Strict
	e.Simulator.Jitter = opts.Jitter
	e.Simulator.Seed = opts.Seed
	return e
}

// AnalyzeSession runs validate, simulate and score over a session's pipeline
// @Summary Analyze session pipeline
// @Description Run the full validate-simulate-score pass; simulation and score are omitted when validation fails
// @Tags analysis
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param options body analysisOptions false "Analysis options"
// @Success 200 {object} engine.Analysis
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/analyze [post]
func AnalyzeSession(w http.ResponseWriter, r *http.Request) {
	var opts analysisOptions
	json.NewDecoder(r.Body).Decode(&opts)

	analysis, err := sessions.Analyze(sessionID(r), engineFor(opts))
	if errors.Is(err, store.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// GetReport returns the session's most recent analysis
// @Summary Get last analysis
// @Tags analysis
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} engine.Analysis
// @Failure 404 {object} map[string]interface{} "Session not found or never analyzed"
// @Router /sessions/{id}/report [get]
func GetReport(w http.ResponseWriter, r *http.Request) {
	sess, err := sessions.Session(sessionID(r))
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if sess.LastAnalysis == nil {
		http.Error(w, "Session has not been analyzed yet", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sess.LastAnalysis)
}

// analyzeRequest is the stateless analysis payload.
type analyzeRequest struct {
	Pipeline model.PipelineSpec `json:"pipeline"`
	Options  analysisOptions    `json:"options"`
	LevelID  string             `json:"level_id,omitempty"`
}

type analyzeResponse struct {
	engine.Analysis
	Level *level.Result `json:"level,omitempty"`
}

// AnalyzePipeline analyzes a pipeline descriptor without a session
// @Summary Analyze a pipeline descriptor
// @Description Stateless validate-simulate-score over a submitted pipeline; optionally checks it against a level
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body analyzeRequest true "Pipeline and options"
// @Success 200 {object} analyzeResponse
// @Failure 400 {object} map[string]interface{} "Invalid pipeline descriptor"
// @Failure 404 {object} map[string]interface{} "Unknown level"
// @Router /analyze [post]
func AnalyzePipeline(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	var lvl *level.Config
	if req.LevelID != "" {
		for i := range levels {
			if levels[i].ID == req.LevelID {
				lvl = &levels[i]
				break
			}
		}
		if lvl == nil {
			http.Error(w, "Unknown level", http.StatusNotFound)
			return
		}
	}

	g, err := graph.FromSpec(req.Pipeline)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := analyzeResponse{Analysis: engineFor(req.Options).Analyze(g)}
	if lvl != nil && resp.Simulation != nil && resp.Score != nil {
		res := lvl.Evaluate(req.Pipeline, *resp.Simulation, *resp.Score)
		resp.Level = &res
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListLevels returns the loaded level catalog
// @Summary List levels
// @Tags levels
// @Produce json
// @Success 200 {array} level.Config
// @Router /levels [get]
func ListLevels(w http.ResponseWriter, r *http.Request) {
	if levels == nil {
		writeJSON(w, http.StatusOK, []level.Config{})
		return
	}
	writeJSON(w, http.StatusOK, levels)
}

// CheckLevel analyzes a session's pipeline against one level
// @Summary Check session against a level
// @Description Runs a fresh analysis and evaluates the level's cost, latency, throughput and block-category requirements
// @Tags levels
// @Produce json
// @Param id path string true "Session ID"
// @Param levelID path string true "Level ID"
// @Success 200 {object} level.Result
// @Failure 400 {object} map[string]interface{} "Pipeline failed validation"
// @Failure 404 {object} map[string]interface{} "Session or level not found"
// @Router /sessions/{id}/levels/{levelID} [post]
func CheckLevel(w http.ResponseWriter, r *http.Request) {
	levelID := pathSegment(r, 5)
	var lvl *level.Config
	for i := range levels {
		if levels[i].ID == levelID {
			lvl = &levels[i]
			break
		}
	}
	if lvl == nil {
		http.Error(w, "Unknown level", http.StatusNotFound)
		return
	}

	id := sessionID(r)
	analysis, err := sessions.Analyze(id, eng)
	if errors.Is(err, store.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if analysis.Simulation == nil || analysis.Score == nil {
		http.Error(w, "Pipeline failed validation; fix the errors before attempting the level", http.StatusBadRequest)
		return
	}

	spec, err := sessions.Spec(id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, lvl.Evaluate(spec, *analysis.Simulation, *analysis.Score))
}
