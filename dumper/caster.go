package dumper

import "time"

// Field is one member of an object as presented to a Caster.
type Field struct {
	Key   string
	Value any
}

// Caster customizes how objects are cloned. Cast receives the object,
// the fields collected for it, the node's stub and whether the object
// sits below the root of the dump. The returned fields are cloned as
// the object's children.
type Caster interface {
	Cast(v any, fields []Field, stub *Stub, nested bool) []Field
}

// CasterFunc adapts a function to the Caster interface.
type CasterFunc func(v any, fields []Field, stub *Stub, nested bool) []Field

// Cast calls fn.
func (fn CasterFunc) Cast(v any, fields []Field, stub *Stub, nested bool) []Field {
	return fn(v, fields, stub, nested)
}

// IsDateTime reports whether v is a date/time-like value.
func IsDateTime(v any) bool {
	switch v.(type) {
	case time.Time, *time.Time:
		return true
	}
	return false
}

// dateLayout mirrors the detail level of a full timestamp dump.
const dateLayout = "2006-01-02 15:04:05.000000 MST (-07:00)"

func timeFields(t time.Time) []Field {
	return []Field{{Key: "date", Value: t.Format(dateLayout)}}
}
