package dumper

// Kind identifies the type of a Node.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindBinary
	KindConst
	KindArray
	KindObject
	KindRecursion
)

// Stub describes a compound node while it is cloned and dumped.
type Stub struct {
	// Class is the type name shown before an object's braces.
	Class string
	// Handle identifies an object within one dump. Zero for arrays.
	Handle int
	// Cut elides the node's children; it renders as [ … ] or Class {…}.
	Cut bool
	// Indexed marks arrays whose keys are 0..n-1.
	Indexed bool
	// Count is the number of members the value had before casting.
	Count int
}

// Node is one value in a cloned tree.
type Node struct {
	Kind     Kind
	Scalar   any
	Stub     *Stub
	Children []Child
}

// Child is a keyed member of an array or object node.
type Child struct {
	Key string
	// QuotedKey renders the key between double quotes (string map keys).
	QuotedKey bool
	Node      *Node
}

// DataKey is the reserved map key under which callers may pass an already
// cloned value instead of the raw one.
const DataKey = "\x00~dumper.Data"

// Data is the result of cloning a value.
type Data struct {
	root       *Node
	refHandles bool
}

// Root returns the root node of the tree.
func (d *Data) Root() *Node {
	return d.root
}

// WithRefHandles returns a copy of d that shows or hides object handles.
func (d *Data) WithRefHandles(show bool) *Data {
	c := *d
	c.refHandles = show
	return &c
}
