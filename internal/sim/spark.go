package sim

import "fmt"

// SparkOperation is a transformation step in a simulated compute job.
type SparkOperation string

const (
	OpMap       SparkOperation = "map"
	OpFilter    SparkOperation = "filter"
	OpReduce    SparkOperation = "reduce"
	OpJoin      SparkOperation = "join"
	OpGroupBy   SparkOperation = "group_by"
	OpSort      SparkOperation = "sort"
	OpAggregate SparkOperation = "aggregate"
	OpWindow    SparkOperation = "window"
)

// operationComplexity multiplies processing time per operation.
var operationComplexity = map[SparkOperation]float64{
	OpMap:       1.0,
	OpFilter:    0.8,
	OpReduce:    1.5,
	OpJoin:      3.0,
	OpGroupBy:   2.0,
	OpSort:      2.5,
	OpAggregate: 1.8,
	OpWindow:    2.5,
}

// shuffleOps are the operations that force a stage boundary and shuffle
// data between executors.
var shuffleOps = map[SparkOperation]bool{
	OpJoin:    true,
	OpGroupBy: true,
	OpSort:    true,
	OpReduce:  true,
}

// SparkJob configures one simulated distributed compute job.
type SparkJob struct {
	Name             string
	Operations       []SparkOperation
	InputRows        int64
	Partitions       int
	ExecutorMemoryGB float64
	ExecutorCores    int
	NumExecutors     int
}

// SparkMetrics extends the standard metrics with job internals.
type SparkMetrics struct {
	Metrics
	RowsProcessed   int64 `json:"rows_processed"`
	PartitionsUsed  int   `json:"partitions_used"`
	ShuffleBytes    int64 `json:"shuffle_bytes"`
	SpillBytes      int64 `json:"spill_bytes"`
	StagesCompleted int   `json:"stages_completed"`
	TasksCompleted  int   `json:"tasks_completed"`
}

// FakeSpark simulates a compute cluster without one.
type FakeSpark struct {
	AppName            string
	DefaultParallelism int
	history            []SparkJob
}

// Cost and latency constants for the compute simulation.
const (
	costPerExecutorHour    = 0.10
	costPerShuffleGB       = 0.01
	baseJobLatencyMS       = 500.0 // job startup overhead
	latencyPerStageMS      = 100.0
	latencyPerMillionRowMS = 50.0
)

// NewFakeSpark returns a cluster session with default parallelism 200.
func NewFakeSpark(appName string) *FakeSpark {
	return &FakeSpark{AppName: appName, DefaultParallelism: 200}
}

// ExecuteJob runs a simulated job and returns its metrics.
func (s *FakeSpark) ExecuteJob(job SparkJob) (SparkMetrics, error) {
	if job.InputRows < 0 {
		return SparkMetrics{}, fmt.Errorf("job %s: negative input rows", job.Name)
	}
	if job.Partitions <= 0 {
		job.Partitions = s.DefaultParallelism
	}
	if job.NumExecutors <= 0 {
		job.NumExecutors = 2
	}
	if job.ExecutorCores <= 0 {
		job.ExecutorCores = 2
	}
	if job.ExecutorMemoryGB <= 0 {
		job.ExecutorMemoryGB = 4.0
	}
	s.history = append(s.history, job)

	stages := 1
	for _, op := range job.Operations {
		if shuffleOps[op] {
			stages++
		}
	}
	tasks := stages * job.Partitions

	// ~100 bytes per row per shuffle operation
	shuffleCount := int64(0)
	for _, op := range job.Operations {
		if shuffleOps[op] {
			shuffleCount++
		}
	}
	shuffleBytes := job.InputRows * 100 * shuffleCount

	totalMemory := float64(job.NumExecutors) * job.ExecutorMemoryGB * 1024 * 1024 * 1024
	spillBytes := shuffleBytes - int64(totalMemory*0.6)
	if spillBytes < 0 {
		spillBytes = 0
	}

	complexity := 0.0
	for _, op := range job.Operations {
		if c, ok := operationComplexity[op]; ok {
			complexity += c
		} else {
			complexity += 1.0
		}
	}
	if complexity == 0 {
		complexity = 1.0
	}

	rowsMillions := float64(job.InputRows) / 1e6
	latencyMS := baseJobLatencyMS +
		float64(stages)*latencyPerStageMS +
		rowsMillions*latencyPerMillionRowMS*complexity
	if spillBytes > 0 {
		latencyMS *= 1.5
	}

	executionHours := latencyMS / (1000 * 60 * 60)
	cost := float64(job.NumExecutors)*executionHours*costPerExecutorHour +
		float64(shuffleBytes)/(1024*1024*1024)*costPerShuffleGB

	throughput := 0.0
	if latencyMS > 0 {
		throughput = float64(job.InputRows) / latencyMS * 1000
	}

	m := SparkMetrics{
		Metrics: Metrics{
			LatencyMS:  latencyMS,
			CostUnits:  cost,
			Throughput: throughput,
		},
		RowsProcessed:   job.InputRows,
		PartitionsUsed:  job.Partitions,
		ShuffleBytes:    shuffleBytes,
		SpillBytes:      spillBytes,
		StagesCompleted: stages,
		TasksCompleted:  tasks,
	}
	m.Warnings = s.jobWarnings(job, m)
	return m, nil
}

func (s *FakeSpark) jobWarnings(job SparkJob, m SparkMetrics) []string {
	var warnings []string

	if job.InputRows > 1_000_000_000 {
		warnings = append(warnings, "very large dataset (>1B rows) - consider incremental processing")
	}
	if m.ShuffleBytes > 10*1024*1024*1024 {
		warnings = append(warnings, "large shuffle detected - consider broadcast joins or repartitioning")
	}
	if m.SpillBytes > 0 {
		warnings = append(warnings, "disk spill detected - consider increasing executor memory")
	}
	if job.Partitions < job.NumExecutors*job.ExecutorCores {
		warnings = append(warnings, "under-partitioned data - increase partitions for better parallelism")
	}
	if job.InputRows > 0 && int64(job.Partitions) > job.InputRows/1000 {
		warnings = append(warnings, "over-partitioned data - consider coalescing")
	}
	joins := 0
	for _, op := range job.Operations {
		if op == OpJoin {
			joins++
		}
	}
	if joins > 3 {
		warnings = append(warnings, fmt.Sprintf("multiple JOINs (%d) - consider restructuring query", joins))
	}
	return warnings
}

// JobHistory returns all jobs executed on this session.
func (s *FakeSpark) JobHistory() []SparkJob {
	out := make([]SparkJob, len(s.history))
	copy(out, s.history)
	return out
}
