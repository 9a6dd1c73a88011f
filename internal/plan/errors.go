package plan

import "fmt"

// SchemaMismatchError reports an operator constructed with children whose
// schemas are inconsistent with the operator's own predicate, projection
// or declared output. Construction fails; nothing is coerced.
type SchemaMismatchError struct {
	Op     string // node type being constructed ("FILTER", "JOIN", ...)
	Reason string // human-readable explanation
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch in %s: %s", e.Op, e.Reason)
}

func newSchemaMismatch(op, format string, args ...interface{}) *SchemaMismatchError {
	return &SchemaMismatchError{
		Op:     op,
		Reason: fmt.Sprintf(format, args...),
	}
}
