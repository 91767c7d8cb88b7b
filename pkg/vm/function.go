package vm

import "unsafe"

// NativeFunctionObject represents a native Go function callable from the
// runtime. A returned error is an abrupt completion carrying the thrown
// runtime value (see errors.go); a nil error is a normal completion.
type NativeFunctionObject struct {
	Object
	Arity    int
	Variadic bool
	Name     string
	Fn       func(args []Value) (Value, error)
}

// NativeFunctionObjectWithProps is a native function that also carries own
// properties, e.g. a constructor with static methods and a prototype link.
type NativeFunctionObjectWithProps struct {
	NativeFunctionObject
	Properties    *PlainObject
	IsConstructor bool
}

func NewNativeFunction(arity int, variadic bool, name string, fn func(args []Value) (Value, error)) Value {
	return Value{typ: TypeNativeFunction, obj: unsafe.Pointer(&NativeFunctionObject{
		Arity:    arity,
		Variadic: variadic,
		Name:     name,
		Fn:       fn,
	})}
}

func NewNativeFunctionWithProps(arity int, variadic bool, name string, fn func(args []Value) (Value, error)) Value {
	return Value{typ: TypeNativeFunctionWithProps, obj: unsafe.Pointer(&NativeFunctionObjectWithProps{
		NativeFunctionObject: NativeFunctionObject{
			Arity:    arity,
			Variadic: variadic,
			Name:     name,
			Fn:       fn,
		},
		Properties: NewObject(Undefined).AsPlainObject(),
	})}
}

// NewConstructorWithProps creates a constructible native function.
func NewConstructorWithProps(arity int, variadic bool, name string, fn func(args []Value) (Value, error)) Value {
	v := NewNativeFunctionWithProps(arity, variadic, name, fn)
	v.AsNativeFunctionWithProps().IsConstructor = true
	return v
}
