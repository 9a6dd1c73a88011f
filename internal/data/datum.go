package data

import (
	"fmt"
	"strings"

	"github.com/leengari/relopt/internal/schema"
)

// Datum is a single typed value, possibly NULL
type Datum struct {
	Null bool
	Type schema.DataType
	I    int64
	S    string
	B    bool
}

// NewInt creates an integer datum
func NewInt(v int64) Datum {
	return Datum{Type: schema.TypeInt, I: v}
}

// NewString creates a string datum
func NewString(v string) Datum {
	return Datum{Type: schema.TypeString, S: v}
}

// NewBool creates a boolean datum
func NewBool(v bool) Datum {
	return Datum{Type: schema.TypeBool, B: v}
}

// NewNull creates a NULL datum of the given type
func NewNull(t schema.DataType) Datum {
	return Datum{Null: true, Type: t}
}

// Equal reports whether two datums are the same value.
// NULL never equals anything, including another NULL.
func (d Datum) Equal(other Datum) bool {
	if d.Null || other.Null {
		return false
	}
	if d.Type != other.Type {
		return false
	}
	switch d.Type {
	case schema.TypeInt:
		return d.I == other.I
	case schema.TypeString:
		return d.S == other.S
	case schema.TypeBool:
		return d.B == other.B
	}
	return false
}

// String renders the datum for debugging and result printing
func (d Datum) String() string {
	if d.Null {
		return "NULL"
	}
	switch d.Type {
	case schema.TypeInt:
		return fmt.Sprintf("%d", d.I)
	case schema.TypeString:
		return d.S
	case schema.TypeBool:
		return fmt.Sprintf("%t", d.B)
	default:
		return "?"
	}
}

// Row is one tuple, positionally aligned with an operator's schema
type Row []Datum

// Concat returns a new row with other's datums appended after r's
func (r Row) Concat(other Row) Row {
	out := make(Row, 0, len(r)+len(other))
	out = append(out, r...)
	out = append(out, other...)
	return out
}

// Key builds a string key identifying the row's values.
// Used for order-insensitive multiset comparison of results.
func (r Row) Key() string {
	parts := make([]string, len(r))
	for i, d := range r {
		parts[i] = d.String()
	}
	return strings.Join(parts, "|")
}
