// Package dumper renders arbitrary Go values as readable text.
//
// Dumping happens in two steps. A Cloner walks a value by reflection
// and produces a Data tree of scalar and compound nodes. A CliDumper
// then renders that tree line by line into a LineSink, which receives
// every line together with its nesting depth so that callers can
// indent, filter or collapse the output.
//
// Objects (structs and date/time values) pass through a Caster while
// they are cloned. The Caster sees the object's fields and may drop
// them or mark the node as cut, which renders as "Class {…}". This is
// how callers bound the size of a dump without changing the engine.
//
// Reference handles (#N after an object's class) identify objects
// within one dump. Data.WithRefHandles(false) hides them.
package dumper
