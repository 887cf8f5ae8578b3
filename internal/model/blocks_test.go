package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Ingestion ")
	require.NoError(t, err)
	assert.Equal(t, CategoryIngestion, c)

	_, err = ParseCategory("warehouse")
	assert.Error(t, err)
	_, err = ParseCategory("")
	assert.Error(t, err)
}

func TestParseConnectionKindDefaultsToDataFlow(t *testing.T) {
	k, err := ParseConnectionKind("")
	require.NoError(t, err)
	assert.Equal(t, KindDataFlow, k)

	k, err = ParseConnectionKind("CONTROL_FLOW")
	require.NoError(t, err)
	assert.Equal(t, KindControlFlow, k)

	_, err = ParseConnectionKind("teleport")
	assert.Error(t, err)
}

func TestBlockValidate(t *testing.T) {
	good := Block{ID: "src", Category: CategoryIngestion, Configuration: map[string]interface{}{
		ConfigThroughputRPS: 2000,
		"notes":             "free-form values are fine outside numeric keys",
	}}
	assert.NoError(t, good.Validate())

	assert.Error(t, Block{ID: "  ", Category: CategoryIngestion}.Validate())
	assert.Error(t, Block{ID: "x", Category: "warehouse"}.Validate())
	assert.Error(t, Block{ID: "x", Category: CategoryStorage, Configuration: map[string]interface{}{
		ConfigDataVolumeGB: "lots",
	}}.Validate())
}

func TestConfigNumberCoercion(t *testing.T) {
	b := Block{ID: "x", Category: CategoryStorage, Configuration: map[string]interface{}{
		ConfigDataVolumeGB: "25", // strings holding numbers coerce
		ConfigParallelism:  4,
	}}
	assert.Equal(t, 25.0, b.ConfigNumber(ConfigDataVolumeGB, 0))
	assert.Equal(t, 4.0, b.ConfigNumber(ConfigParallelism, 0))
	assert.Equal(t, 1.0, b.ConfigNumber(ConfigComplexity, 1), "absent keys fall back to the default")
}

func TestEffectiveBackingPrefersDeclared(t *testing.T) {
	assert.Equal(t, BackingKafka, Block{ID: "x", Category: CategoryIngestion}.EffectiveBacking())
	assert.Equal(t, BackingObjectStore, Block{ID: "x", Category: CategoryStorage}.EffectiveBacking())
	assert.Equal(t, BackingSpark, Block{ID: "x", Category: CategoryTransform}.EffectiveBacking())
	assert.Equal(t, BackingScheduler, Block{ID: "x", Category: CategoryOrchestration}.EffectiveBacking())

	declared := Block{ID: "x", Category: CategoryStorage, Backing: BackingSQL}
	assert.Equal(t, BackingSQL, declared.EffectiveBacking())
}

func TestPipelineSpecJSONShape(t *testing.T) {
	raw := `{
		"name": "demo",
		"blocks": [
			{"id": "src", "category": "ingestion", "configuration": {"throughput_rps": 2000}},
			{"id": "lake", "category": "storage", "backing": "sql"}
		],
		"connections": [
			{"source_id": "src", "target_id": "lake", "kind": "data_flow"}
		]
	}`
	var spec PipelineSpec
	require.NoError(t, json.Unmarshal([]byte(raw), &spec))

	assert.Equal(t, "demo", spec.Name)
	require.Len(t, spec.Blocks, 2)
	assert.Equal(t, CategoryIngestion, spec.Blocks[0].Category)
	assert.Equal(t, 2000.0, spec.Blocks[0].ConfigNumber(ConfigThroughputRPS, 0))
	assert.Equal(t, BackingSQL, spec.Blocks[1].Backing)
	require.Len(t, spec.Connections, 1)
	assert.Equal(t, KindDataFlow, spec.Connections[0].Kind)
}

func TestIsValidGatesOnStructuralCodesOnly(t *testing.T) {
	structural := ValidationReport{Findings: []Finding{
		{Severity: SeverityError, Code: CodeCycle},
	}}
	assert.False(t, structural.IsValid())

	categorical := ValidationReport{Findings: []Finding{
		{Severity: SeverityError, Code: CodeIllegalFlow},
		{Severity: SeverityWarning, Code: CodeOrphanBlock},
	}}
	assert.True(t, categorical.IsValid())
	assert.Equal(t, 1, categorical.ErrorCount())
	assert.Equal(t, 1, categorical.WarningCount())
}
