// Package hints holds per-operator statistics the cost model consults
// when ranking otherwise-legal rewrites. Hints are advisory: however they
// are set, the optimizer produces a correct plan; good hints only make
// the chosen plan faster.
package hints

import (
	"fmt"

	"github.com/leengari/relopt/internal/plan"
)

// InvalidHintError reports a hint setter called with a negative value.
// The mutation is rejected and the previous value is retained.
type InvalidHintError struct {
	Field string
	Value float64
}

func (e *InvalidHintError) Error() string {
	return fmt.Sprintf("invalid hint: %s must be >= 0, got %v", e.Field, e.Value)
}

func newInvalidHint(field string, value float64) *InvalidHintError {
	return &InvalidHintError{Field: field, Value: value}
}

// Hints is one operator's statistics record. Every numeric field is
// optional; an unset field reads back as unknown rather than a sentinel
// value, so a genuine 0 can never be confused with "not set".
type Hints struct {
	keyCardinality    uint64
	hasKeyCardinality bool

	avgValuesPerKey    float64
	hasAvgValuesPerKey bool

	avgBytesPerRecord    float64
	hasAvgBytesPerRecord bool

	// Expansion/contraction factor of the producing operator.
	// Unlike the optional fields this always has a value.
	avgRecordsEmittedPerCall float64
}

// New creates an empty hint record with the default emission factor of 1.0
func New() *Hints {
	return &Hints{avgRecordsEmittedPerCall: 1.0}
}

// SetKeyCardinality records the number of distinct keys the operator produces
func (h *Hints) SetKeyCardinality(n int64) error {
	if n < 0 {
		return newInvalidHint("key_cardinality", float64(n))
	}
	h.keyCardinality = uint64(n)
	h.hasKeyCardinality = true
	return nil
}

// KeyCardinality returns the distinct key count, or ok=false if unknown
func (h *Hints) KeyCardinality() (uint64, bool) {
	return h.keyCardinality, h.hasKeyCardinality
}

// SetAvgValuesPerKey records the average multiplicity per distinct key
func (h *Hints) SetAvgValuesPerKey(v float64) error {
	if v < 0 {
		return newInvalidHint("avg_values_per_key", v)
	}
	h.avgValuesPerKey = v
	h.hasAvgValuesPerKey = true
	return nil
}

// AvgValuesPerKey returns the average values per key, or ok=false if unknown
func (h *Hints) AvgValuesPerKey() (float64, bool) {
	return h.avgValuesPerKey, h.hasAvgValuesPerKey
}

// SetAvgBytesPerRecord records the average serialized record size
func (h *Hints) SetAvgBytesPerRecord(b float64) error {
	if b < 0 {
		return newInvalidHint("avg_bytes_per_record", b)
	}
	h.avgBytesPerRecord = b
	h.hasAvgBytesPerRecord = true
	return nil
}

// AvgBytesPerRecord returns the average record size, or ok=false if unknown
func (h *Hints) AvgBytesPerRecord() (float64, bool) {
	return h.avgBytesPerRecord, h.hasAvgBytesPerRecord
}

// SetAvgRecordsEmittedPerCall records the operator's emission factor
func (h *Hints) SetAvgRecordsEmittedPerCall(r float64) error {
	if r < 0 {
		return newInvalidHint("avg_records_emitted_per_call", r)
	}
	h.avgRecordsEmittedPerCall = r
	return nil
}

// AvgRecordsEmittedPerCall returns the emission factor (default 1.0)
func (h *Hints) AvgRecordsEmittedPerCall() float64 {
	return h.avgRecordsEmittedPerCall
}

// Set attaches hint records to plan nodes. Records are keyed by node
// identity, not value: two structurally identical operators may carry
// different statistics from different contexts. A node produced by a
// rewrite never inherits the hints of the node it replaced.
type Set struct {
	records map[plan.Node]*Hints
}

// NewSet creates an empty hint set
func NewSet() *Set {
	return &Set{records: make(map[plan.Node]*Hints)}
}

// Attach binds a hint record to node, replacing any previous record
func (s *Set) Attach(node plan.Node, h *Hints) {
	s.records[node] = h
}

// For returns the record attached to node, creating an empty one if needed
func (s *Set) For(node plan.Node) *Hints {
	h, ok := s.records[node]
	if !ok {
		h = New()
		s.records[node] = h
	}
	return h
}

// Lookup returns the record attached to node, or ok=false if none
func (s *Set) Lookup(node plan.Node) (*Hints, bool) {
	h, ok := s.records[node]
	return h, ok
}

// Drop discards the record attached to node, if any.
// Called when a rewrite supersedes the node and its statistics go stale.
func (s *Set) Drop(node plan.Node) {
	delete(s.records, node)
}
