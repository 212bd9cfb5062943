// Package core defines the shared types used across consoleline.
//
// It provides the Level type for the eight log severities, the Record
// type that represents a single log event, the insertion-ordered Map
// used for a record's context and extra data, and the Field type used
// by the logger front-end to build context entries.
//
// Records are plain values. Formatters and handlers treat them as
// read-only; WithMessage returns a modified copy instead of changing
// the receiver. Map keeps the order in which keys were first set so
// that dumped context reads in the order the caller supplied it.
package core
