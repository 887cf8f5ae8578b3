package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectStorePutAndGet(t *testing.T) {
	s := NewFakeObjectStore("landing")

	put, err := s.PutObject(50)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, put.LatencyMS, 1e-9) // 50 MB * 2ms
	assert.InDelta(t, 0.5, put.CostUnits, 1e-9)   // 50 MB * 0.01
	assert.Empty(t, put.Warnings)

	get, err := s.GetObject(50)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, get.LatencyMS, 1e-9) // 50 MB * 1.5ms
	assert.InDelta(t, 0.5, get.CostUnits, 1e-9)

	assert.InDelta(t, 1.0, s.TotalCost(), 1e-9)
}

func TestObjectStoreLargeObjectWarnings(t *testing.T) {
	s := NewFakeObjectStore("landing")

	m, err := s.PutObject(200)
	require.NoError(t, err)
	require.Len(t, m.Warnings, 1)
	assert.Contains(t, m.Warnings[0], "multipart upload")

	m, err = s.PutObject(6000)
	require.NoError(t, err)
	require.Len(t, m.Warnings, 2)
	assert.Contains(t, m.Warnings[1], "5GB single upload limit")

	m, err = s.GetObject(200)
	require.NoError(t, err)
	require.Len(t, m.Warnings, 1)
	assert.Contains(t, m.Warnings[0], "download may take time")
}

func TestObjectStoreRejectsEmptyObjects(t *testing.T) {
	s := NewFakeObjectStore("landing")
	_, err := s.PutObject(0)
	assert.Error(t, err)
	_, err = s.GetObject(-1)
	assert.Error(t, err)
	assert.Zero(t, s.TotalCost())
}
