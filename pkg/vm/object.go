package vm

import "unsafe"

type Object struct {
}

// PropertyDesc stores property descriptor attributes
type PropertyDesc struct {
	Writable     bool
	Enumerable   bool
	Configurable bool
}

type property struct {
	value      Value
	desc       PropertyDesc
	getter     Value
	setter     Value
	isAccessor bool
}

// PlainObject is the ordinary-object surface the construction algorithms
// commit results into: ordered own properties with descriptor attributes,
// symbol-keyed properties, accessor properties, a prototype link, and an
// extensible flag.
type PlainObject struct {
	Object
	prototype Value
	keys      []string // insertion order of string-keyed own properties
	props     map[string]*property
	symKeys   []*SymbolObject // insertion order of symbol-keyed own properties
	symProps  map[*SymbolObject]*property
	extensible bool
}

// GetOwn looks up a direct (own) data property by name. Returns (value, true) if present.
// Accessor properties report their getter slot as absent here; use GetOwnAccessor.
func (o *PlainObject) GetOwn(name string) (Value, bool) {
	p, ok := o.props[name]
	if !ok || p.isAccessor {
		return Undefined, false
	}
	return p.value, true
}

// GetOwnDescriptor returns the value and attribute flags for an own data property.
// Returns (value, writable, enumerable, configurable, exists).
func (o *PlainObject) GetOwnDescriptor(name string) (Value, bool, bool, bool, bool) {
	p, ok := o.props[name]
	if !ok {
		return Undefined, false, false, false, false
	}
	return p.value, p.desc.Writable, p.desc.Enumerable, p.desc.Configurable, true
}

// GetOwnAccessor returns (getter, setter, isAccessor) for an own property.
func (o *PlainObject) GetOwnAccessor(name string) (Value, Value, bool) {
	p, ok := o.props[name]
	if !ok || !p.isAccessor {
		return Undefined, Undefined, false
	}
	return p.getter, p.setter, true
}

// SetOwn creates or updates an own enumerable/writable/configurable data property.
func (o *PlainObject) SetOwn(name string, v Value) {
	o.defineOwn(name, v, PropertyDesc{Writable: true, Enumerable: true, Configurable: true}, false)
}

// SetOwnNonEnumerable creates or updates an own data property that does not
// show up in enumeration. Built-in prototype methods are installed this way.
func (o *PlainObject) SetOwnNonEnumerable(name string, v Value) {
	o.defineOwn(name, v, PropertyDesc{Writable: true, Enumerable: false, Configurable: true}, false)
}

func (o *PlainObject) defineOwn(name string, v Value, desc PropertyDesc, updateAttrs bool) {
	if p, ok := o.props[name]; ok {
		p.value = v
		p.isAccessor = false
		if updateAttrs {
			p.desc = desc
		}
		return
	}
	o.keys = append(o.keys, name)
	o.props[name] = &property{value: v, desc: desc}
}

// DefineOwnProperty defines or redefines an own data property. Nil attribute
// pointers leave existing attributes untouched (false for a fresh property).
func (o *PlainObject) DefineOwnProperty(name string, value Value, writable *bool, enumerable *bool, configurable *bool) {
	p, ok := o.props[name]
	if !ok {
		p = &property{}
		o.keys = append(o.keys, name)
		o.props[name] = p
	}
	p.value = value
	p.isAccessor = false
	if writable != nil {
		p.desc.Writable = *writable
	}
	if enumerable != nil {
		p.desc.Enumerable = *enumerable
	}
	if configurable != nil {
		p.desc.Configurable = *configurable
	}
}

// DefineAccessorProperty defines an own accessor property.
func (o *PlainObject) DefineAccessorProperty(name string, getter Value, hasGetter bool, setter Value, hasSetter bool, enumerable *bool, configurable *bool) {
	p, ok := o.props[name]
	if !ok {
		p = &property{getter: Undefined, setter: Undefined}
		o.keys = append(o.keys, name)
		o.props[name] = p
	}
	p.isAccessor = true
	p.value = Undefined
	if hasGetter {
		p.getter = getter
	}
	if hasSetter {
		p.setter = setter
	}
	if enumerable != nil {
		p.desc.Enumerable = *enumerable
	}
	if configurable != nil {
		p.desc.Configurable = *configurable
	}
}

// GetOwnSymbol looks up a direct symbol-keyed data property.
func (o *PlainObject) GetOwnSymbol(sym Value) (Value, bool) {
	if o.symProps == nil || !sym.IsSymbol() {
		return Undefined, false
	}
	p, ok := o.symProps[sym.AsSymbolObject()]
	if !ok || p.isAccessor {
		return Undefined, false
	}
	return p.value, true
}

// SetOwnSymbol creates or updates a symbol-keyed non-enumerable data property.
func (o *PlainObject) SetOwnSymbol(sym Value, v Value) {
	key := sym.AsSymbolObject()
	if o.symProps == nil {
		o.symProps = make(map[*SymbolObject]*property)
	}
	if p, ok := o.symProps[key]; ok {
		p.value = v
		p.isAccessor = false
		return
	}
	o.symKeys = append(o.symKeys, key)
	o.symProps[key] = &property{value: v, desc: PropertyDesc{Writable: true, Configurable: true}}
}

// DefineSymbolAccessor defines a symbol-keyed accessor property.
func (o *PlainObject) DefineSymbolAccessor(sym Value, getter Value, setter Value, configurable bool) {
	key := sym.AsSymbolObject()
	if o.symProps == nil {
		o.symProps = make(map[*SymbolObject]*property)
	}
	p, ok := o.symProps[key]
	if !ok {
		p = &property{}
		o.symKeys = append(o.symKeys, key)
		o.symProps[key] = p
	}
	p.isAccessor = true
	p.getter = getter
	p.setter = setter
	p.desc.Configurable = configurable
}

// GetOwnSymbolAccessor returns (getter, setter, isAccessor) for a symbol-keyed own property.
func (o *PlainObject) GetOwnSymbolAccessor(sym Value) (Value, Value, bool) {
	if o.symProps == nil || !sym.IsSymbol() {
		return Undefined, Undefined, false
	}
	p, ok := o.symProps[sym.AsSymbolObject()]
	if !ok || !p.isAccessor {
		return Undefined, Undefined, false
	}
	return p.getter, p.setter, true
}

func (o *PlainObject) HasOwn(name string) bool {
	_, ok := o.props[name]
	return ok
}

// OwnKeys returns string-keyed own property names in insertion order.
func (o *PlainObject) OwnKeys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// OwnSymbolKeys returns symbol-keyed own property keys in insertion order.
func (o *PlainObject) OwnSymbolKeys() []Value {
	out := make([]Value, 0, len(o.symKeys))
	for _, k := range o.symKeys {
		out = append(out, Value{typ: TypeSymbol, obj: unsafe.Pointer(k)})
	}
	return out
}

// Get looks up a data property by name, walking the prototype chain.
// Accessor properties are not resolved here; the VM resolves them because a
// getter invocation can fail.
func (o *PlainObject) Get(name string) (Value, bool) {
	cur := o
	for cur != nil {
		if p, ok := cur.props[name]; ok && !p.isAccessor {
			return p.value, true
		}
		proto := cur.prototype
		if proto.Type() != TypeObject {
			break
		}
		cur = proto.AsPlainObject()
	}
	return Undefined, false
}

func (o *PlainObject) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

func (o *PlainObject) GetPrototype() Value {
	return o.prototype
}

func (o *PlainObject) SetPrototype(proto Value) bool {
	if !o.extensible {
		return false
	}
	o.prototype = proto
	return true
}

func (o *PlainObject) IsExtensible() bool {
	return o.extensible
}

func (o *PlainObject) SetExtensible(extensible bool) {
	o.extensible = extensible
}
