package schema

import "strings"

// DataType identifies the type of a column or expression
type DataType int

const (
	TypeInt DataType = iota
	TypeString
	TypeBool
)

// String returns the string representation of the data type
func (t DataType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeString:
		return "STRING"
	case TypeBool:
		return "BOOL"
	default:
		return "UNKNOWN"
	}
}

// Column describes one output column of a relational operator
type Column struct {
	Name     string
	Type     DataType
	Nullable bool
}

// Schema is the ordered list of columns an operator produces.
// Column references in predicates resolve by position into this list.
type Schema []Column

// Len returns the number of columns
func (s Schema) Len() int {
	return len(s)
}

// Concat returns a new schema with other's columns appended after s's.
// Used to build the combined input schema of a join condition.
func (s Schema) Concat(other Schema) Schema {
	out := make(Schema, 0, len(s)+len(other))
	out = append(out, s...)
	out = append(out, other...)
	return out
}

// String renders the schema as "(name type, ...)" for plan printing
func (s Schema) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, col := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col.Name)
		b.WriteByte(' ')
		b.WriteString(col.Type.String())
		if col.Nullable {
			b.WriteString(" NULL")
		}
	}
	b.WriteByte(')')
	return b.String()
}
