package sim

import "fmt"

// FakeObjectStore simulates a blob store bucket. Latency and cost scale
// with object size; cost accumulates across operations.
type FakeObjectStore struct {
	Bucket    string
	totalCost float64
}

// NewFakeObjectStore returns an empty bucket.
func NewFakeObjectStore(bucket string) *FakeObjectStore {
	return &FakeObjectStore{Bucket: bucket}
}

// PutObject simulates writing an object of the given size.
// latency = size_mb * 2 ms, cost = size_mb * 0.01.
func (s *FakeObjectStore) PutObject(sizeMB float64) (Metrics, error) {
	return s.transfer(sizeMB, 2.0, true)
}

// GetObject simulates reading an object of the given size.
// latency = size_mb * 1.5 ms, cost = size_mb * 0.01.
func (s *FakeObjectStore) GetObject(sizeMB float64) (Metrics, error) {
	return s.transfer(sizeMB, 1.5, false)
}

func (s *FakeObjectStore) transfer(sizeMB, msPerMB float64, upload bool) (Metrics, error) {
	if sizeMB <= 0 {
		return Metrics{}, fmt.Errorf("object size must be positive, got %v MB", sizeMB)
	}

	latencyMS := sizeMB * msPerMB
	cost := sizeMB * 0.01
	s.totalCost += cost

	// MB per second
	throughput := sizeMB / (latencyMS / 1000.0)

	var warnings []string
	if sizeMB > 100 {
		if upload {
			warnings = append(warnings, fmt.Sprintf("large object (%.2f MB) - consider multipart upload", sizeMB))
		} else {
			warnings = append(warnings, fmt.Sprintf("large object (%.2f MB) - download may take time", sizeMB))
		}
	}
	if upload && sizeMB > 5000 {
		warnings = append(warnings, fmt.Sprintf("very large object (%.2f MB) - exceeds 5GB single upload limit", sizeMB))
	}

	return Metrics{
		LatencyMS:  latencyMS,
		CostUnits:  cost,
		Throughput: throughput,
		Warnings:   warnings,
	}, nil
}

// TotalCost returns the cost accumulated across all operations.
func (s *FakeObjectStore) TotalCost() float64 {
	return s.totalCost
}
