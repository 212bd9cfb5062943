package dumper

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// DefaultMaxItems bounds the number of nodes a Cloner creates per value.
const DefaultMaxItems = 2500

// OrderedMap is implemented by maps that iterate in a stable order.
// Such maps are cloned as associative arrays in their own key order.
type OrderedMap interface {
	Keys() []string
	Get(key string) (any, bool)
}

// Cloner converts Go values into Data trees.
// A Cloner holds no per-call state and is safe for concurrent use.
type Cloner struct {
	caster   Caster
	maxItems int
}

// NewCloner creates a Cloner that passes every object through c.
// A nil Caster keeps all fields.
func NewCloner(c Caster) *Cloner {
	return &Cloner{caster: c, maxItems: DefaultMaxItems}
}

// SetMaxItems changes the node budget. Values <= 0 remove the limit.
func (c *Cloner) SetMaxItems(n int) {
	c.maxItems = n
}

// Clone walks v and returns its tree. Reference handles are shown by default.
func (c *Cloner) Clone(v any) *Data {
	if d, ok := v.(*Data); ok {
		return d
	}
	w := &walk{cloner: c, onPath: make(map[visit]int)}
	return &Data{root: w.value(reflect.ValueOf(v), 0), refHandles: true}
}

// walk carries the state of a single Clone call.
type walk struct {
	cloner  *Cloner
	items   int
	handles int
	onPath  map[visit]int
}

// visit identifies a pointer-like value on the current path. The type is
// part of the key because a struct and its first field share an address.
type visit struct {
	addr uintptr
	typ  reflect.Type
}

func (w *walk) overBudget() bool {
	return w.cloner.maxItems > 0 && w.items >= w.cloner.maxItems
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	orderedType  = reflect.TypeOf((*OrderedMap)(nil)).Elem()
)

func (w *walk) value(rv reflect.Value, depth int) *Node {
	w.items++
	if !rv.IsValid() {
		return &Node{Kind: KindNull}
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return &Node{Kind: KindNull}
		}
	}

	t := rv.Type()
	switch {
	case t == timeType:
		return w.object(rv, timeFields(rv.Interface().(time.Time)), depth)
	case t == durationType:
		return &Node{Kind: KindConst, Scalar: time.Duration(rv.Int()).String()}
	case t.Implements(orderedType) && rv.CanInterface():
		return w.ordered(rv.Interface().(OrderedMap), depth)
	case t.Implements(errorType) && rv.CanInterface():
		return &Node{Kind: KindString, Scalar: rv.Interface().(error).Error()}
	case t.Implements(stringerType) && rv.CanInterface() && t.Kind() != reflect.Struct && t.Kind() != reflect.Pointer:
		return &Node{Kind: KindString, Scalar: rv.Interface().(fmt.Stringer).String()}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return &Node{Kind: KindBool, Scalar: rv.Bool()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &Node{Kind: KindInt, Scalar: rv.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return &Node{Kind: KindUint, Scalar: rv.Uint()}
	case reflect.Float32, reflect.Float64:
		return &Node{Kind: KindFloat, Scalar: rv.Float()}
	case reflect.Complex64, reflect.Complex128:
		return &Node{Kind: KindConst, Scalar: strconv.FormatComplex(rv.Complex(), 'g', -1, 128)}
	case reflect.String:
		return &Node{Kind: KindString, Scalar: rv.String()}
	case reflect.Interface:
		return w.value(rv.Elem(), depth)
	case reflect.Pointer:
		return w.pointer(rv, depth)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return &Node{Kind: KindBinary, Scalar: string(bytesOf(rv))}
		}
		return w.list(rv, depth)
	case reflect.Map:
		return w.hash(rv, depth)
	case reflect.Struct:
		return w.object(rv, structFields(rv), depth)
	default:
		return &Node{Kind: KindConst, Scalar: t.String()}
	}
}

func bytesOf(rv reflect.Value) []byte {
	if rv.Kind() == reflect.Slice {
		return rv.Bytes()
	}
	b := make([]byte, rv.Len())
	for i := range b {
		b[i] = byte(rv.Index(i).Uint())
	}
	return b
}

func (w *walk) pointer(rv reflect.Value, depth int) *Node {
	addr := visit{rv.Pointer(), rv.Type()}
	if handle, ok := w.onPath[addr]; ok {
		return &Node{Kind: KindRecursion, Stub: &Stub{Class: rv.Type().Elem().String(), Handle: handle}}
	}
	// Handles are assigned when the pointed-to object is cloned; record
	// the next one so that a cycle back to it can name its target.
	w.onPath[addr] = w.handles + 1
	defer delete(w.onPath, addr)
	return w.value(rv.Elem(), depth)
}

func (w *walk) list(rv reflect.Value, depth int) *Node {
	n := &Node{Kind: KindArray, Stub: &Stub{Indexed: true, Count: rv.Len()}}
	for i := 0; i < rv.Len(); i++ {
		if w.overBudget() {
			n.Stub.Cut = true
			break
		}
		n.Children = append(n.Children, Child{
			Key:  strconv.Itoa(i),
			Node: w.value(rv.Index(i), depth+1),
		})
	}
	return n
}

func (w *walk) hash(rv reflect.Value, depth int) *Node {
	addr := visit{rv.Pointer(), rv.Type()}
	if _, ok := w.onPath[addr]; ok {
		return &Node{Kind: KindRecursion, Stub: &Stub{Class: rv.Type().String()}}
	}
	w.onPath[addr] = 0
	defer delete(w.onPath, addr)

	keys := rv.MapKeys()
	for i, k := range keys {
		if k.Kind() == reflect.Interface && !k.IsNil() {
			keys[i] = k.Elem()
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keyLess(keys[i], keys[j])
	})
	n := &Node{Kind: KindArray, Stub: &Stub{Count: len(keys)}}
	for _, k := range keys {
		if w.overBudget() {
			n.Stub.Cut = true
			break
		}
		n.Children = append(n.Children, Child{
			Key:       fmt.Sprint(k.Interface()),
			QuotedKey: k.Kind() == reflect.String,
			Node:      w.value(rv.MapIndex(k), depth+1),
		})
	}
	return n
}

// keyLess orders numeric map keys by value and everything else by its
// printed form. Numbers sort before other keys.
func keyLess(a, b reflect.Value) bool {
	an, bn := isNumber(a), isNumber(b)
	switch {
	case an && bn:
		if isInt(a) && isInt(b) {
			return a.Int() < b.Int()
		}
		if isUint(a) && isUint(b) {
			return a.Uint() < b.Uint()
		}
		return toFloat(a) < toFloat(b)
	case an != bn:
		return an
	}
	return fmt.Sprint(a.Interface()) < fmt.Sprint(b.Interface())
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNumber(v reflect.Value) bool {
	return isInt(v) || isUint(v) || v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v):
		return float64(v.Int())
	case isUint(v):
		return float64(v.Uint())
	}
	return v.Float()
}

func (w *walk) ordered(m OrderedMap, depth int) *Node {
	keys := m.Keys()
	n := &Node{Kind: KindArray, Stub: &Stub{Count: len(keys)}}
	for _, k := range keys {
		if w.overBudget() {
			n.Stub.Cut = true
			break
		}
		v, _ := m.Get(k)
		n.Children = append(n.Children, Child{
			Key:       k,
			QuotedKey: true,
			Node:      w.value(reflect.ValueOf(v), depth+1),
		})
	}
	return n
}

func structFields(rv reflect.Value) []Field {
	t := rv.Type()
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fields = append(fields, Field{Key: sf.Name, Value: rv.Field(i).Interface()})
	}
	return fields
}

func (w *walk) object(rv reflect.Value, fields []Field, depth int) *Node {
	w.handles++
	stub := &Stub{Class: rv.Type().String(), Handle: w.handles, Count: len(fields)}

	if w.cloner.caster != nil {
		var v any
		if rv.CanInterface() {
			v = rv.Interface()
		}
		fields = w.cloner.caster.Cast(v, fields, stub, depth > 0)
	}

	n := &Node{Kind: KindObject, Stub: stub}
	if stub.Cut {
		return n
	}
	for _, f := range fields {
		if w.overBudget() {
			stub.Cut = true
			break
		}
		n.Children = append(n.Children, Child{
			Key:  f.Key,
			Node: w.value(reflect.ValueOf(f.Value), depth+1),
		})
	}
	return n
}
