package vm

import "unsafe"

// ArrayObject is the ordered-collection object the construction algorithms
// produce. Its length is decoupled from element storage: setting the length
// never allocates, so Array(1e6) is a holey array with no own index
// properties. Elements beyond len(elements), and Hole entries within it,
// are holes.
type ArrayObject struct {
	Object
	length      int
	elements    []Value
	properties  map[string]Value        // Named non-index properties
	symbolProps map[*SymbolObject]Value // Symbol-keyed properties (e.g., Symbol.iterator override)
	prototype   Value                   // Undefined means the realm's %Array.prototype%
	extensible  bool
}

func NewArray() Value {
	return Value{typ: TypeArray, obj: unsafe.Pointer(&ArrayObject{extensible: true})}
}

// NewArrayWithLength creates a holey array of the given length with no own
// index properties.
func NewArrayWithLength(length int) Value {
	arr := NewArray()
	if length > 0 {
		arr.AsArray().SetLength(length)
	}
	return arr
}

// NewArrayWithArgs creates a populated array holding the given elements.
func NewArrayWithArgs(args []Value) Value {
	arr := NewArray()
	arr.AsArray().SetElements(args)
	return arr
}

func (a *ArrayObject) Length() int {
	return a.length
}

// SetLength sets the length invariant directly. Shrinking truncates element
// storage; growing leaves the tail holey.
func (a *ArrayObject) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(a.elements) {
		a.elements = a.elements[:n]
	}
	a.length = n
}

// Get returns the element at index i, or Undefined for holes and
// out-of-range indices.
func (a *ArrayObject) Get(i int) Value {
	if i < 0 || i >= len(a.elements) {
		return Undefined
	}
	v := a.elements[i]
	if v.Type() == TypeHole {
		return Undefined
	}
	return v
}

// HasOwnIndex reports whether index i is an own property (not a hole).
func (a *ArrayObject) HasOwnIndex(i int) bool {
	return i >= 0 && i < len(a.elements) && a.elements[i].Type() != TypeHole
}

// Set stores an element at index i, growing storage with holes as needed and
// extending the length when i is past the end.
func (a *ArrayObject) Set(i int, v Value) {
	if i < 0 {
		return
	}
	for len(a.elements) <= i {
		a.elements = append(a.elements, Hole)
	}
	a.elements[i] = v
	if i >= a.length {
		a.length = i + 1
	}
}

func (a *ArrayObject) Append(v Value) {
	a.Set(a.length, v)
}

// SetElements replaces the element storage wholesale.
func (a *ArrayObject) SetElements(elements []Value) {
	a.elements = make([]Value, len(elements))
	copy(a.elements, elements)
	a.length = len(elements)
}

func (a *ArrayObject) GetProperty(name string) (Value, bool) {
	if a.properties == nil {
		return Undefined, false
	}
	v, ok := a.properties[name]
	return v, ok
}

func (a *ArrayObject) SetProperty(name string, v Value) {
	if a.properties == nil {
		a.properties = make(map[string]Value)
	}
	a.properties[name] = v
}

func (a *ArrayObject) GetSymbolProperty(sym Value) (Value, bool) {
	if a.symbolProps == nil || !sym.IsSymbol() {
		return Undefined, false
	}
	v, ok := a.symbolProps[sym.AsSymbolObject()]
	return v, ok
}

func (a *ArrayObject) SetSymbolProperty(sym Value, v Value) {
	if a.symbolProps == nil {
		a.symbolProps = make(map[*SymbolObject]Value)
	}
	a.symbolProps[sym.AsSymbolObject()] = v
}

// Prototype returns the array's own prototype link; Undefined means the
// realm default applies.
func (a *ArrayObject) Prototype() Value {
	return a.prototype
}

func (a *ArrayObject) SetPrototype(proto Value) {
	a.prototype = proto
}

func (a *ArrayObject) IsExtensible() bool {
	return a.extensible
}

func (a *ArrayObject) SetExtensible(extensible bool) {
	a.extensible = extensible
}
