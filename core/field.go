package core

// Field represents a key-value pair for structured logging.
// Fields are collected by the logger and stored in a record's context.
type Field struct {
	Key   string
	Value any
}

// FieldsToMap appends fields to a copy of base. Later fields with the same
// key overwrite earlier values in place.
func FieldsToMap(base Map, fields ...Field) Map {
	m := base.Clone()
	for _, f := range fields {
		m.Set(f.Key, f.Value)
	}
	return m
}
