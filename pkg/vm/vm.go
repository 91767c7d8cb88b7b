package vm

// VM is a single runtime instance: the global bindings, the intrinsic
// prototypes, and the well-known symbol registry. Execution is strictly
// single-threaded and synchronous; native calls reenter through Call on the
// same goroutine, so no locking is needed or wanted here.
type VM struct {
	globals     map[string]Value
	globalNames []string

	// Intrinsic prototypes, created empty by NewVM and populated by the
	// builtins initializers.
	ObjectPrototype   Value
	FunctionPrototype Value
	ArrayPrototype    Value
	StringPrototype   Value
	SymbolPrototype   Value
	IteratorPrototype Value
	ErrorPrototype    Value

	// Well-known symbols. Fixed at construction: one identity per runtime
	// instance, passed by capability rather than looked up ambiently.
	SymbolIterator Value
	SymbolSpecies  Value

	thisStack      []Value
	newTargetStack []Value
}

func NewVM() *VM {
	vm := &VM{
		globals:        make(map[string]Value),
		SymbolIterator: NewSymbol("Symbol.iterator"),
		SymbolSpecies:  NewSymbol("Symbol.species"),
	}
	vm.ObjectPrototype = NewObject(Null)
	vm.FunctionPrototype = NewObject(vm.ObjectPrototype)
	vm.ArrayPrototype = NewObject(vm.ObjectPrototype)
	vm.StringPrototype = NewObject(vm.ObjectPrototype)
	vm.SymbolPrototype = NewObject(vm.ObjectPrototype)
	vm.IteratorPrototype = NewObject(vm.ObjectPrototype)
	vm.ErrorPrototype = NewObject(vm.ObjectPrototype)
	return vm
}

func (vm *VM) DefineGlobal(name string, value Value) error {
	if _, exists := vm.globals[name]; !exists {
		vm.globalNames = append(vm.globalNames, name)
	}
	vm.globals[name] = value
	return nil
}

func (vm *VM) GetGlobal(name string) (Value, bool) {
	v, ok := vm.globals[name]
	if !ok {
		return Undefined, false
	}
	return v, true
}

func (vm *VM) GlobalNames() []string {
	out := make([]string, len(vm.globalNames))
	copy(out, vm.globalNames)
	return out
}

// GetThis returns the this-binding of the innermost active native call.
func (vm *VM) GetThis() Value {
	if len(vm.thisStack) == 0 {
		return Undefined
	}
	return vm.thisStack[len(vm.thisStack)-1]
}

// GetNewTarget returns the new-target of the innermost active native call,
// or Undefined when it was not invoked as a constructor.
func (vm *VM) GetNewTarget() Value {
	if len(vm.newTargetStack) == 0 {
		return Undefined
	}
	return vm.newTargetStack[len(vm.newTargetStack)-1]
}

func (vm *VM) pushCall(thisValue, newTarget Value) {
	vm.thisStack = append(vm.thisStack, thisValue)
	vm.newTargetStack = append(vm.newTargetStack, newTarget)
}

func (vm *VM) popCall() {
	vm.thisStack = vm.thisStack[:len(vm.thisStack)-1]
	vm.newTargetStack = vm.newTargetStack[:len(vm.newTargetStack)-1]
}

func (vm *VM) nativeFn(fn Value) *NativeFunctionObject {
	switch fn.Type() {
	case TypeNativeFunction:
		return fn.AsNativeFunction()
	case TypeNativeFunctionWithProps:
		return &fn.AsNativeFunctionWithProps().NativeFunctionObject
	}
	return nil
}

// Call invokes a callable value with an explicit this-binding. Returns the
// callee's completion: (result, nil) or (Undefined, abrupt).
func (vm *VM) Call(fn Value, thisValue Value, args []Value) (Value, error) {
	native := vm.nativeFn(fn)
	if native == nil {
		return Undefined, vm.NewTypeError(fn.ToString() + " is not a function")
	}
	vm.pushCall(thisValue, Undefined)
	defer vm.popCall()
	return native.Fn(args)
}

// IsConstructor reports whether the value can be invoked with Construct.
func (vm *VM) IsConstructor(v Value) bool {
	if fn := v.AsNativeFunctionWithProps(); fn != nil {
		return fn.IsConstructor
	}
	return false
}

// Construct invokes a constructible value as a constructor: the callee sees
// the constructor itself as its new-target, so it can be
// prototype-determining.
func (vm *VM) Construct(ctor Value, args []Value) (Value, error) {
	if !vm.IsConstructor(ctor) {
		return Undefined, vm.NewTypeError(ctor.ToString() + " is not a constructor")
	}
	native := &ctor.AsNativeFunctionWithProps().NativeFunctionObject
	vm.pushCall(Undefined, ctor)
	defer vm.popCall()
	return native.Fn(args)
}

// GetProperty reads a named property off any value, resolving accessor
// properties (a getter invocation can fail, hence the error return) and
// falling back to the per-kind intrinsic prototype for primitives.
func (vm *VM) GetProperty(v Value, name string) (Value, error) {
	switch v.Type() {
	case TypeUndefined, TypeNull:
		return Undefined, vm.NewTypeError("Cannot read properties of " + v.ToString() + " (reading '" + name + "')")
	case TypeArray:
		arr := v.AsArray()
		if name == "length" {
			// Lengths range up to 2^32-1, past int32.
			return NumberValue(float64(arr.Length())), nil
		}
		if idx, ok := parseArrayIndex(name); ok {
			return arr.Get(idx), nil
		}
		if pv, ok := arr.GetProperty(name); ok {
			return pv, nil
		}
		return vm.getFromObject(vm.arrayProtoFor(arr).AsPlainObject(), v, name)
	case TypeString:
		if name == "length" {
			// length counts UTF-16 code units, not runes: a supplementary-
			// plane character contributes 2.
			return IntegerValue(int32(stringLength(v.AsString()))), nil
		}
		return vm.getFromObject(vm.StringPrototype.AsPlainObject(), v, name)
	case TypeObject:
		return vm.getFromObject(v.AsPlainObject(), v, name)
	case TypeNativeFunction:
		if name == "name" {
			return NewString(v.AsNativeFunction().Name), nil
		}
		if name == "length" {
			return IntegerValue(int32(v.AsNativeFunction().Arity)), nil
		}
		return Undefined, nil
	case TypeNativeFunctionWithProps:
		fn := v.AsNativeFunctionWithProps()
		if pv, ok := fn.Properties.GetOwn(name); ok {
			return pv, nil
		}
		if getter, _, isAccessor := fn.Properties.GetOwnAccessor(name); isAccessor {
			return vm.Call(getter, v, nil)
		}
		if name == "name" {
			return NewString(fn.Name), nil
		}
		if name == "length" {
			return IntegerValue(int32(fn.Arity)), nil
		}
		return Undefined, nil
	default:
		return Undefined, nil
	}
}

// getFromObject walks a plain-object prototype chain resolving data and
// accessor properties, with receiver as the getter's this-binding.
func (vm *VM) getFromObject(obj *PlainObject, receiver Value, name string) (Value, error) {
	cur := obj
	for cur != nil {
		if pv, ok := cur.GetOwn(name); ok {
			return pv, nil
		}
		if getter, _, isAccessor := cur.GetOwnAccessor(name); isAccessor {
			if !getter.IsCallable() {
				return Undefined, nil
			}
			return vm.Call(getter, receiver, nil)
		}
		proto := cur.GetPrototype()
		if proto.Type() != TypeObject {
			break
		}
		cur = proto.AsPlainObject()
	}
	return Undefined, nil
}

// GetSymbolProperty looks up a symbol-keyed data property on a value,
// walking its prototype chain. Primitives consult their intrinsic prototype,
// which is how strings expose an iterator method.
func (vm *VM) GetSymbolProperty(v Value, sym Value) (Value, bool) {
	switch v.Type() {
	case TypeArray:
		arr := v.AsArray()
		if pv, ok := arr.GetSymbolProperty(sym); ok {
			return pv, true
		}
		return vm.symbolFromObject(vm.arrayProtoFor(arr).AsPlainObject(), sym)
	case TypeString:
		return vm.symbolFromObject(vm.StringPrototype.AsPlainObject(), sym)
	case TypeObject:
		return vm.symbolFromObject(v.AsPlainObject(), sym)
	case TypeNativeFunctionWithProps:
		return v.AsNativeFunctionWithProps().Properties.GetOwnSymbol(sym)
	default:
		return Undefined, false
	}
}

func (vm *VM) symbolFromObject(obj *PlainObject, sym Value) (Value, bool) {
	cur := obj
	for cur != nil {
		if pv, ok := cur.GetOwnSymbol(sym); ok {
			return pv, true
		}
		proto := cur.GetPrototype()
		if proto.Type() != TypeObject {
			break
		}
		cur = proto.AsPlainObject()
	}
	return Undefined, false
}

func (vm *VM) arrayProtoFor(arr *ArrayObject) Value {
	if proto := arr.Prototype(); !proto.IsUndefined() {
		return proto
	}
	return vm.ArrayPrototype
}

// stringLength counts UTF-16 code units.
func stringLength(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func parseArrayIndex(key string) (int, bool) {
	if key == "" || len(key) > 10 {
		return 0, false
	}
	if key == "0" {
		return 0, true
	}
	if key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	n := 0
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
