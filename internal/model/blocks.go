package model

import (
	"fmt"
	"strings"

	"etl-tycoon/pkg/utils"
)

// Category classifies a pipeline block and drives its default rates
// and its legal connection targets.
type Category string

const (
	CategoryIngestion     Category = "ingestion"
	CategoryStorage       Category = "storage"
	CategoryTransform     Category = "transform"
	CategoryOrchestration Category = "orchestration"
)

// Categories lists all block categories in pipeline order.
var Categories = []Category{
	CategoryIngestion,
	CategoryStorage,
	CategoryTransform,
	CategoryOrchestration,
}

// ParseCategory parses a category string (case-insensitive).
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryIngestion, CategoryStorage, CategoryTransform, CategoryOrchestration:
		return c, nil
	}
	return "", fmt.Errorf("unknown block category: %q", s)
}

// ConnectionKind types the edges between blocks.
type ConnectionKind string

const (
	KindDataFlow    ConnectionKind = "data_flow"
	KindControlFlow ConnectionKind = "control_flow"
	KindConditional ConnectionKind = "conditional"
)

// ParseConnectionKind parses a connection kind, defaulting empty input
// to data flow like the original canvas does.
func ParseConnectionKind(s string) (ConnectionKind, error) {
	k := ConnectionKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case "":
		return KindDataFlow, nil
	case KindDataFlow, KindControlFlow, KindConditional:
		return k, nil
	}
	return "", fmt.Errorf("unknown connection kind: %q", s)
}

// Backing names the external service a block is simulated against when
// the simulator runs in service mode. Explicit field instead of guessing
// from display names.
type Backing string

const (
	BackingNone        Backing = ""
	BackingKafka       Backing = "kafka"
	BackingObjectStore Backing = "object_store"
	BackingSpark       Backing = "spark"
	BackingSQL         Backing = "sql"
	BackingScheduler   Backing = "scheduler"
)

// DefaultBacking maps a category to the service that simulates it when a
// block does not declare one.
func DefaultBacking(c Category) Backing {
	switch c {
	case CategoryIngestion:
		return BackingKafka
	case CategoryStorage:
		return BackingObjectStore
	case CategoryTransform:
		return BackingSpark
	case CategoryOrchestration:
		return BackingScheduler
	}
	return BackingNone
}

// Configuration keys recognized by the simulator.
const (
	ConfigDataVolumeGB  = "data_volume_gb"
	ConfigThroughputRPS = "throughput_rps"
	ConfigComplexity    = "complexity"
	ConfigParallelism   = "parallelism"
)

var numericConfigKeys = []string{
	ConfigDataVolumeGB,
	ConfigThroughputRPS,
	ConfigComplexity,
	ConfigParallelism,
}

// Block is a single pipeline stage placed by the player.
type Block struct {
	ID            string                 `json:"id"`
	Category      Category               `json:"category"`
	DisplayName   string                 `json:"display_name,omitempty"`
	Backing       Backing                `json:"backing,omitempty"`
	Configuration map[string]interface{} `json:"configuration,omitempty"`
}

// Validate rejects blocks that must never enter a pipeline graph:
// empty IDs, unknown categories, and non-numeric values under numeric
// configuration keys.
func (b Block) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("block ID is required")
	}
	if _, err := ParseCategory(string(b.Category)); err != nil {
		return fmt.Errorf("block %s: %w", b.ID, err)
	}
	for _, key := range numericConfigKeys {
		raw, ok := b.Configuration[key]
		if !ok {
			continue
		}
		if _, ok := utils.NumericOK(raw); !ok {
			return fmt.Errorf("block %s: configuration %s must be numeric, got %T", b.ID, key, raw)
		}
	}
	return nil
}

// ConfigNumber returns a numeric configuration value, or def when the key
// is absent. Validate guarantees present keys are coercible.
func (b Block) ConfigNumber(key string, def float64) float64 {
	raw, ok := b.Configuration[key]
	if !ok {
		return def
	}
	if n, ok := utils.NumericOK(raw); ok {
		return n
	}
	return def
}

// EffectiveBacking returns the declared backing service or the category
// default.
func (b Block) EffectiveBacking() Backing {
	if b.Backing != BackingNone {
		return b.Backing
	}
	return DefaultBacking(b.Category)
}

// Connection is a directed edge between two blocks.
type Connection struct {
	ID       string         `json:"id,omitempty"`
	SourceID string         `json:"source_id"`
	TargetID string         `json:"target_id"`
	Kind     ConnectionKind `json:"kind,omitempty"`
}

// PipelineSpec is the serializable descriptor form of a pipeline: the
// contract between the UI/CLI/test harness and the core. Round-trips
// through graph.FromSpec / Graph.ToSpec.
type PipelineSpec struct {
	Name        string       `json:"name,omitempty"`
	Blocks      []Block      `json:"blocks"`
	Connections []Connection `json:"connections"`
}
