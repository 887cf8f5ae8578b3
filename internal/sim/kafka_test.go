package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaKeepingUpHasNoLag(t *testing.T) {
	k := NewFakeKafka("orders")
	m, err := k.SimulateIngestion(10)
	require.NoError(t, err)

	// consumer (1200/s) outruns producer (1000/s): zero lag, zero latency
	assert.Zero(t, m.LatencyMS)
	assert.InDelta(t, 0.15, m.CostUnits, 1e-9) // 3 partitions * 0.05
	assert.InDelta(t, 12000.0, m.Throughput, 1e-9)
	assert.Empty(t, m.Warnings)
}

func TestKafkaLagDrivesLatency(t *testing.T) {
	k := NewFakeKafka("clicks")
	k.EventsPerSecond = 5000
	k.ConsumerSpeed = 3000

	m, err := k.SimulateIngestion(10)
	require.NoError(t, err)

	// lag = (5000-3000)*10 = 20000 events, latency = lag * 0.1
	assert.InDelta(t, 2000.0, m.LatencyMS, 1e-9)
	require.Len(t, m.Warnings, 2)
	assert.Contains(t, m.Warnings[0], "consumer lag")
	assert.Contains(t, m.Warnings[1], "slower than producer")
}

func TestKafkaUnderPartitionedWarning(t *testing.T) {
	k := NewFakeKafka("firehose")
	k.Partitions = 2
	k.EventsPerSecond = 8000
	k.ConsumerSpeed = 10000

	m, err := k.SimulateIngestion(1)
	require.NoError(t, err)
	require.Len(t, m.Warnings, 1)
	assert.Contains(t, m.Warnings[0], "consider more partitions")
}

func TestKafkaRejectsBadInput(t *testing.T) {
	k := NewFakeKafka("orders")
	_, err := k.SimulateIngestion(0)
	assert.Error(t, err)

	k.Partitions = 0
	_, err = k.SimulateIngestion(1)
	assert.Error(t, err)
}
