package hints

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leengari/relopt/internal/plan"
	"github.com/leengari/relopt/internal/schema"
)

func TestDefaults(t *testing.T) {
	h := New()

	_, ok := h.KeyCardinality()
	require.False(t, ok, "key cardinality starts unknown")
	_, ok = h.AvgValuesPerKey()
	require.False(t, ok)
	_, ok = h.AvgBytesPerRecord()
	require.False(t, ok)

	require.Equal(t, 1.0, h.AvgRecordsEmittedPerCall())
}

func TestSetAndGet(t *testing.T) {
	h := New()

	require.NoError(t, h.SetKeyCardinality(1100))
	card, ok := h.KeyCardinality()
	require.True(t, ok)
	require.Equal(t, uint64(1100), card)

	require.NoError(t, h.SetAvgValuesPerKey(2.5))
	v, ok := h.AvgValuesPerKey()
	require.True(t, ok)
	require.Equal(t, 2.5, v)

	require.NoError(t, h.SetAvgBytesPerRecord(64))
	b, ok := h.AvgBytesPerRecord()
	require.True(t, ok)
	require.Equal(t, 64.0, b)

	require.NoError(t, h.SetAvgRecordsEmittedPerCall(0.5))
	require.Equal(t, 0.5, h.AvgRecordsEmittedPerCall())
}

func TestZeroIsValid(t *testing.T) {
	h := New()

	require.NoError(t, h.SetKeyCardinality(0))
	card, ok := h.KeyCardinality()
	require.True(t, ok, "an explicit 0 must be distinguishable from unknown")
	require.Equal(t, uint64(0), card)

	require.NoError(t, h.SetAvgRecordsEmittedPerCall(0))
	require.Equal(t, 0.0, h.AvgRecordsEmittedPerCall())
}

func TestNegativeRejected(t *testing.T) {
	h := New()

	err := h.SetKeyCardinality(-1)
	var invalid *InvalidHintError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "key_cardinality", invalid.Field)
	require.Equal(t, -1.0, invalid.Value)
	_, ok := h.KeyCardinality()
	require.False(t, ok, "failed mutation must leave the record unchanged")

	// A failed set keeps the previous value, not just "unknown"
	require.NoError(t, h.SetAvgValuesPerKey(3))
	require.Error(t, h.SetAvgValuesPerKey(-0.5))
	v, ok := h.AvgValuesPerKey()
	require.True(t, ok)
	require.Equal(t, 3.0, v)

	require.Error(t, h.SetAvgBytesPerRecord(-10))
	require.Error(t, h.SetAvgRecordsEmittedPerCall(-1))
	require.Equal(t, 1.0, h.AvgRecordsEmittedPerCall())
}

func TestSetKeyedByIdentity(t *testing.T) {
	cols := schema.Schema{{Name: "a", Type: schema.TypeInt}}

	// Two structurally identical scans carry independent statistics
	scanA := plan.NewScan("t", cols)
	scanB := plan.NewScan("t", cols)

	s := NewSet()
	require.NoError(t, s.For(scanA).SetKeyCardinality(10))
	require.NoError(t, s.For(scanB).SetKeyCardinality(99))

	ha, ok := s.Lookup(scanA)
	require.True(t, ok)
	cardA, _ := ha.KeyCardinality()
	require.Equal(t, uint64(10), cardA)

	hb, _ := s.Lookup(scanB)
	cardB, _ := hb.KeyCardinality()
	require.Equal(t, uint64(99), cardB)

	s.Drop(scanA)
	_, ok = s.Lookup(scanA)
	require.False(t, ok)
	_, ok = s.Lookup(scanB)
	require.True(t, ok)
}

func TestInvalidHintErrorMessage(t *testing.T) {
	err := New().SetAvgBytesPerRecord(-2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "avg_bytes_per_record")
	require.True(t, errors.As(err, new(*InvalidHintError)))
}
