package sim

import (
	"fmt"

	"etl-tycoon/internal/model"
)

// Stack bundles one instance of every mock service and dispatches a block
// to the service its declared backing kind selects. Used by the simulator
// in service mode instead of the pure formulas.
type Stack struct {
	Spark     *FakeSpark
	Warehouse *FakeWarehouse
}

// NewStack builds a connected service stack. The warehouse gets a probe
// table so SQL-backed blocks have something to query.
func NewStack() (*Stack, error) {
	wh := NewFakeWarehouse(":memory:")
	if err := wh.Connect(); err != nil {
		return nil, err
	}
	if err := wh.Exec(`CREATE TABLE IF NOT EXISTS probe (id INTEGER PRIMARY KEY, payload TEXT)`); err != nil {
		wh.Close()
		return nil, err
	}
	if err := wh.Exec(`INSERT INTO probe (payload) VALUES ('ping')`); err != nil {
		wh.Close()
		return nil, err
	}
	return &Stack{
		Spark:     NewFakeSpark("etl-tycoon"),
		Warehouse: wh,
	}, nil
}

// Close releases the stack's resources.
func (s *Stack) Close() error {
	if s.Warehouse != nil {
		return s.Warehouse.Close()
	}
	return nil
}

// MetricsFor runs the block against its backing service and returns the
// standard metric shape. Unknown backings fall back to a flat minimal
// profile, matching how the original treats unclassified nodes.
func (s *Stack) MetricsFor(b model.Block) (Metrics, error) {
	volume := b.ConfigNumber(model.ConfigDataVolumeGB, 10)
	parallelism := b.ConfigNumber(model.ConfigParallelism, 1)
	if parallelism < 1 {
		parallelism = 1
	}

	switch b.EffectiveBacking() {
	case model.BackingKafka:
		k := NewFakeKafka("topic_" + b.ID)
		k.EventsPerSecond = b.ConfigNumber(model.ConfigThroughputRPS, 1000)
		k.ConsumerSpeed = k.EventsPerSecond * 1.2
		k.Partitions = int(parallelism) * 3
		return k.SimulateIngestion(1.0)

	case model.BackingObjectStore:
		store := NewFakeObjectStore("bucket_" + b.ID)
		return store.PutObject(volume * 1024) // GB to MB

	case model.BackingSpark:
		complexity := b.ConfigNumber(model.ConfigComplexity, 1)
		ops := []SparkOperation{OpMap, OpFilter}
		if complexity >= 2 {
			ops = append(ops, OpGroupBy)
		}
		if complexity >= 3 {
			ops = append(ops, OpJoin)
		}
		sm, err := s.Spark.ExecuteJob(SparkJob{
			Name:         "job_" + b.ID,
			Operations:   ops,
			InputRows:    int64(volume * 100_000),
			Partitions:   int(parallelism) * 100,
			NumExecutors: int(parallelism) * 2,
		})
		if err != nil {
			return Metrics{}, err
		}
		return sm.Metrics, nil

	case model.BackingSQL:
		qm, err := s.Warehouse.Execute(`SELECT id, payload FROM probe`)
		if err != nil {
			return Metrics{}, err
		}
		return qm.Metrics, nil

	case model.BackingScheduler:
		// orchestration adds overhead but moves no data; zero throughput
		// keeps it out of the bottleneck minimum
		return Metrics{LatencyMS: 50.0, CostUnits: 0.01}, nil
	}

	return Metrics{}, fmt.Errorf("block %s has no backing service", b.ID)
}
