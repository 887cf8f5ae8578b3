package sim

import "fmt"

// FakeKafka simulates a streaming broker without a real cluster. Producer
// and consumer rates are fixed per instance; lag drives latency.
type FakeKafka struct {
	Topic           string
	Partitions      int
	EventsPerSecond float64
	ConsumerSpeed   float64
}

// NewFakeKafka returns a broker with sane single-topic defaults.
func NewFakeKafka(topic string) *FakeKafka {
	return &FakeKafka{
		Topic:           topic,
		Partitions:      3,
		EventsPerSecond: 1000.0,
		ConsumerSpeed:   1200.0,
	}
}

// SimulateIngestion models consuming a topic for the given duration.
// Lag accumulates when the producer outruns the consumer:
//
//	lag        = max(0, produced - consumed)
//	latency_ms = lag * 0.1
//	cost       = partitions * 0.05
func (k *FakeKafka) SimulateIngestion(seconds float64) (Metrics, error) {
	if seconds <= 0 {
		return Metrics{}, fmt.Errorf("ingestion duration must be positive, got %v", seconds)
	}
	if k.Partitions <= 0 {
		return Metrics{}, fmt.Errorf("topic %s has no partitions", k.Topic)
	}

	produced := k.EventsPerSecond * seconds
	consumed := k.ConsumerSpeed * seconds
	lag := produced - consumed
	if lag < 0 {
		lag = 0
	}

	var warnings []string
	if lag > 0 {
		warnings = append(warnings, fmt.Sprintf("consumer lag detected: %.0f events behind", lag))
	}
	if k.ConsumerSpeed < k.EventsPerSecond {
		warnings = append(warnings, fmt.Sprintf(
			"consumer speed (%.0f/s) slower than producer (%.0f/s) - lag will accumulate",
			k.ConsumerSpeed, k.EventsPerSecond))
	}
	if k.Partitions < 3 && k.EventsPerSecond > 5000 {
		warnings = append(warnings, fmt.Sprintf(
			"high event rate (%.0f/s) with %d partitions - consider more partitions",
			k.EventsPerSecond, k.Partitions))
	}

	return Metrics{
		LatencyMS:  lag * 0.1,
		CostUnits:  float64(k.Partitions) * 0.05,
		Throughput: consumed,
		Warnings:   warnings,
	}, nil
}
