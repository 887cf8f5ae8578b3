// Package level loads the YAML level definitions and decides whether a
// scored pipeline completes a level. The completion check is a thin
// comparison layer on top of the engine's reports; it owns no scoring
// formulas of its own.
package level

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"etl-tycoon/internal/model"
)

// Config is one playable level.
type Config struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Description   string   `yaml:"description,omitempty" json:"description,omitempty"`
	MaxCost       float64  `yaml:"max_cost" json:"max_cost"`
	MaxLatencyMS  float64  `yaml:"max_latency_ms" json:"max_latency_ms"`
	MinThroughput float64  `yaml:"min_throughput" json:"min_throughput"`
	TargetBlocks  []string `yaml:"target_blocks,omitempty" json:"target_blocks,omitempty"`
	BaseScore     float64  `yaml:"base_score" json:"base_score"`
}

// Result is the outcome of checking a scored pipeline against a level.
type Result struct {
	LevelID    string   `json:"level_id"`
	Complete   bool     `json:"complete"`
	FinalScore float64  `json:"final_score"`
	Reasons    []string `json:"reasons,omitempty"`
}

// Load reads a single level file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read level %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse level %s: %w", path, err)
	}
	if cfg.ID == "" {
		cfg.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("level %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir reads every .yaml/.yml level in a directory, sorted by ID.
func LoadDir(dir string) ([]Config, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read levels dir %s: %w", dir, err)
	}
	var levels []Config
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		cfg, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		levels = append(levels, cfg)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].ID < levels[j].ID })
	return levels, nil
}

func (c Config) validate() error {
	if c.Name == "" {
		return fmt.Errorf("level name is required")
	}
	if c.MaxCost < 0 || c.MaxLatencyMS < 0 || c.MinThroughput < 0 {
		return fmt.Errorf("level thresholds must be non-negative")
	}
	return nil
}

// Evaluate checks the simulation totals against the level thresholds and
// confirms the required block categories are present. The final score is
// the level's base score plus the engine's final score when complete.
func (c Config) Evaluate(spec model.PipelineSpec, simReport model.SimulationReport, scoreReport model.ScoreReport) Result {
	res := Result{LevelID: c.ID}

	if c.MaxCost > 0 && simReport.TotalCost > c.MaxCost {
		res.Reasons = append(res.Reasons, fmt.Sprintf("cost %.2f exceeds budget %.2f", simReport.TotalCost, c.MaxCost))
	}
	if c.MaxLatencyMS > 0 && simReport.TotalLatencyMS > c.MaxLatencyMS {
		res.Reasons = append(res.Reasons, fmt.Sprintf("latency %.0fms exceeds limit %.0fms", simReport.TotalLatencyMS, c.MaxLatencyMS))
	}
	if c.MinThroughput > 0 && simReport.BottleneckThroughput < c.MinThroughput {
		res.Reasons = append(res.Reasons, fmt.Sprintf("throughput %.0f below required %.0f", simReport.BottleneckThroughput, c.MinThroughput))
	}

	present := make(map[string]bool)
	for _, b := range spec.Blocks {
		present[string(b.Category)] = true
	}
	for _, want := range c.TargetBlocks {
		if !present[strings.ToLower(want)] {
			res.Reasons = append(res.Reasons, fmt.Sprintf("missing required block category %q", want))
		}
	}

	res.Complete = len(res.Reasons) == 0
	if res.Complete {
		res.FinalScore = c.BaseScore + scoreReport.FinalScore
	} else {
		res.FinalScore = scoreReport.FinalScore
	}
	return res
}
