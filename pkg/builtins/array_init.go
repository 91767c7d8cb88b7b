package builtins

import (
	"strconv"

	"kestrel/pkg/vm"
)

// ArrayInitializer installs the Array constructor, its static methods
// (from, of, isArray), the @@species accessor, and an iterable
// Array.prototype.
type ArrayInitializer struct{}

func (a *ArrayInitializer) Name() string {
	return "Array"
}

func (a *ArrayInitializer) Priority() int {
	return PriorityArray
}

func (a *ArrayInitializer) InitRuntime(ctx *RuntimeContext) error {
	vmInstance := ctx.VM
	arrayProto := vmInstance.ArrayPrototype.AsPlainObject()

	// Array.prototype.values, aliased as [Symbol.iterator], so constructed
	// arrays are themselves iterable sources.
	valuesFn := vm.NewNativeFunction(0, false, "values", func(args []vm.Value) (vm.Value, error) {
		thisVal := vmInstance.GetThis()
		arr := thisVal.AsArray()
		if arr == nil {
			return vm.Undefined, vmInstance.NewTypeError("Array.prototype.values requires that 'this' be an Array")
		}
		return newArrayIterator(vmInstance, arr), nil
	})
	arrayProto.SetOwnNonEnumerable("values", valuesFn)
	arrayProto.SetOwnSymbol(vmInstance.SymbolIterator, valuesFn)

	// 23.1.1.1 Array ( ...values )
	ctorWithProps := vm.NewConstructorWithProps(1, true, "Array", func(args []vm.Value) (vm.Value, error) {
		proto := prototypeFromNewTarget(vmInstance)

		if len(args) == 0 {
			return newArrayForProto(proto, 0), nil
		}

		if len(args) == 1 {
			length := args[0]
			array := newArrayForProto(proto, 0)
			var intLength int
			if !length.IsNumber() {
				if err := vmInstance.CreateDataPropertyOrThrow(array, 0, length); err != nil {
					return vm.Undefined, err
				}
				intLength = 1
			} else {
				// A fractional or out-of-range length is rejected outright,
				// not truncated; nothing is constructed on the error path.
				n, err := vmInstance.ArrayLengthFromValue(length)
				if err != nil {
					return vm.Undefined, err
				}
				intLength = n
			}
			vm.MustSetLength(array, intLength)
			return array, nil
		}

		array := newArrayForProto(proto, len(args))
		for k := 0; k < len(args); k++ {
			if err := vmInstance.CreateDataPropertyOrThrow(array, k, args[k]); err != nil {
				return vm.Undefined, err
			}
		}
		return array, nil
	})

	ctorProps := ctorWithProps.AsNativeFunctionWithProps().Properties

	// 23.1.2.4 Array.prototype
	ctorProps.DefineOwnProperty("prototype", vmInstance.ArrayPrototype, boolPtr(false), boolPtr(false), boolPtr(false))
	arrayProto.SetOwnNonEnumerable("constructor", ctorWithProps)

	// 23.1.2.2 Array.isArray ( arg )
	ctorProps.SetOwnNonEnumerable("isArray", vm.NewNativeFunction(1, false, "isArray", func(args []vm.Value) (vm.Value, error) {
		if len(args) < 1 {
			return vm.False, nil
		}
		return vm.BooleanValue(args[0].IsArray()), nil
	}))

	// 23.1.2.1 Array.from ( items [ , mapfn [ , thisArg ] ] )
	ctorProps.SetOwnNonEnumerable("from", vm.NewNativeFunction(1, false, "from", func(args []vm.Value) (vm.Value, error) {
		return arrayFrom(vmInstance, args)
	}))

	// 23.1.2.3 Array.of ( ...items )
	ctorProps.SetOwnNonEnumerable("of", vm.NewNativeFunction(0, true, "of", func(args []vm.Value) (vm.Value, error) {
		return arrayOf(vmInstance, args)
	}))

	// 23.1.2.5 get Array [ @@species ]
	ctorProps.DefineSymbolAccessor(vmInstance.SymbolSpecies, vm.NewNativeFunction(0, false, "get [Symbol.species]", func(args []vm.Value) (vm.Value, error) {
		return vmInstance.GetThis(), nil
	}), vm.Undefined, true)

	return ctx.DefineGlobal("Array", ctorWithProps)
}

// arrayFrom builds an array from either an iterable or an array-like
// source. The receiver (Array itself, or a subclass-style constructible)
// decides how the destination is produced.
func arrayFrom(vmInstance *vm.VM, args []vm.Value) (vm.Value, error) {
	constructor := vmInstance.GetThis()
	items := argument(args, 0)

	// A supplied mapping function must be callable before the source is
	// touched at all.
	mapFn := vm.Undefined
	if mf := argument(args, 1); !mf.IsUndefined() {
		if !mf.IsCallable() {
			return vm.Undefined, vmInstance.NewTypeError(mf.ToString() + " is not a function")
		}
		mapFn = mf
	}
	thisArg := argument(args, 2)

	if usingIterator, ok := vmInstance.GetIteratorMethod(items); ok {
		var array vm.Value
		if vmInstance.IsConstructor(constructor) {
			constructed, err := vmInstance.Construct(constructor, nil)
			if err != nil {
				return vm.Undefined, err
			}
			array = constructed
		} else {
			array = vm.NewArray()
		}

		record, err := vmInstance.GetIterator(items, usingIterator)
		if err != nil {
			return vm.Undefined, err
		}

		k := 0
		for {
			if int64(k) >= int64(vm.MaxArrayIndex) {
				// The overflow completion is routed through close like any
				// other mid-stream abandonment.
				overflow := vmInstance.NewRangeError("Maximum array size exceeded")
				return vm.Undefined, vmInstance.IteratorClose(record, overflow)
			}

			nextValue, hasValue, err := vmInstance.IteratorStep(record)
			if err != nil {
				return vm.Undefined, err
			}
			if !hasValue {
				if err := vmInstance.SetLengthOrThrow(array, k); err != nil {
					return vm.Undefined, err
				}
				return array, nil
			}

			mappedValue := nextValue
			if mapFn.IsCallable() {
				mappedValue, err = vmInstance.Call(mapFn, thisArg, []vm.Value{nextValue, vm.NumberValue(float64(k))})
				if err != nil {
					return vm.Undefined, vmInstance.IteratorClose(record, err)
				}
			}

			if err := vmInstance.CreateDataPropertyOrThrow(array, k, mappedValue); err != nil {
				return vm.Undefined, vmInstance.IteratorClose(record, err)
			}
			k++
		}
	}

	// Array-like path: no iterator was ever opened, so no close semantics.
	arrayLike := items
	length, err := vmInstance.LengthOfArrayLike(arrayLike)
	if err != nil {
		return vm.Undefined, err
	}

	var array vm.Value
	if vmInstance.IsConstructor(constructor) {
		constructed, err := vmInstance.Construct(constructor, []vm.Value{vm.NumberValue(float64(length))})
		if err != nil {
			return vm.Undefined, err
		}
		array = constructed
	} else {
		array = vm.NewArrayWithLength(int(length))
	}

	for k := int64(0); k < length; k++ {
		kValue, err := vmInstance.GetProperty(arrayLike, strconv.FormatInt(k, 10))
		if err != nil {
			return vm.Undefined, err
		}
		mappedValue := kValue
		if mapFn.IsCallable() {
			mappedValue, err = vmInstance.Call(mapFn, thisArg, []vm.Value{kValue, vm.NumberValue(float64(k))})
			if err != nil {
				return vm.Undefined, err
			}
		}
		if err := vmInstance.CreateDataPropertyOrThrow(array, int(k), mappedValue); err != nil {
			return vm.Undefined, err
		}
	}

	if err := vmInstance.SetLengthOrThrow(array, int(length)); err != nil {
		return vm.Undefined, err
	}
	return array, nil
}

// arrayOf writes every positional argument unconditionally, including the
// zero- and one-argument cases. The asymmetry with the constructor's
// single-numeric-argument branch is part of the language, not a bug to fix.
func arrayOf(vmInstance *vm.VM, args []vm.Value) (vm.Value, error) {
	constructor := vmInstance.GetThis()

	var array vm.Value
	if vmInstance.IsConstructor(constructor) {
		constructed, err := vmInstance.Construct(constructor, []vm.Value{vm.NumberValue(float64(len(args)))})
		if err != nil {
			return vm.Undefined, err
		}
		array = constructed
	} else {
		array = vm.NewArrayWithLength(len(args))
	}

	for k := 0; k < len(args); k++ {
		if err := vmInstance.CreateDataPropertyOrThrow(array, k, args[k]); err != nil {
			return vm.Undefined, err
		}
	}

	if err := vmInstance.SetLengthOrThrow(array, len(args)); err != nil {
		return vm.Undefined, err
	}
	return array, nil
}

// prototypeFromNewTarget resolves the prototype a construct call should
// stamp onto the new array. Undefined means the realm default applies.
func prototypeFromNewTarget(vmInstance *vm.VM) vm.Value {
	newTarget := vmInstance.GetNewTarget()
	if newTarget.IsUndefined() {
		return vm.Undefined
	}
	proto, err := vmInstance.GetProperty(newTarget, "prototype")
	if err != nil || !proto.IsObject() {
		return vm.Undefined
	}
	return proto
}

func newArrayForProto(proto vm.Value, length int) vm.Value {
	array := vm.NewArrayWithLength(length)
	if !proto.IsUndefined() {
		array.AsArray().SetPrototype(proto)
	}
	return array
}

// newArrayIterator builds the values iterator for an array.
func newArrayIterator(vmInstance *vm.VM, arr *vm.ArrayObject) vm.Value {
	index := 0
	iterator := vm.NewObject(vmInstance.IteratorPrototype).AsPlainObject()
	iterator.SetOwnNonEnumerable("next", vm.NewNativeFunction(0, false, "next", func(args []vm.Value) (vm.Value, error) {
		result := vm.NewObject(vmInstance.ObjectPrototype).AsPlainObject()
		if index >= arr.Length() {
			result.SetOwn("done", vm.True)
			result.SetOwn("value", vm.Undefined)
		} else {
			result.SetOwn("done", vm.False)
			result.SetOwn("value", arr.Get(index))
			index++
		}
		return vm.NewValueFromPlainObject(result), nil
	}))
	return vm.NewValueFromPlainObject(iterator)
}

func argument(args []vm.Value, i int) vm.Value {
	if i < len(args) {
		return args[i]
	}
	return vm.Undefined
}

func boolPtr(b bool) *bool {
	return &b
}
