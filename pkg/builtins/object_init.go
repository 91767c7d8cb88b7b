package builtins

import (
	"strconv"

	"kestrel/pkg/vm"
)

// ObjectInitializer seeds Object.prototype and the Object constructor. Only
// the surface the construction core leans on is installed here; the full
// Object catalog is out of scope.
type ObjectInitializer struct{}

func (o *ObjectInitializer) Name() string {
	return "Object"
}

func (o *ObjectInitializer) Priority() int {
	return PriorityObject
}

func (o *ObjectInitializer) InitRuntime(ctx *RuntimeContext) error {
	vmInstance := ctx.VM
	objectProto := vmInstance.ObjectPrototype.AsPlainObject()

	objectProto.SetOwnNonEnumerable("hasOwnProperty", vm.NewNativeFunction(1, false, "hasOwnProperty", func(args []vm.Value) (vm.Value, error) {
		thisVal := vmInstance.GetThis()
		if len(args) < 1 {
			return vm.False, nil
		}
		name := args[0].ToString()
		switch thisVal.Type() {
		case vm.TypeObject:
			return vm.BooleanValue(thisVal.AsPlainObject().HasOwn(name)), nil
		case vm.TypeArray:
			arr := thisVal.AsArray()
			if name == "length" {
				return vm.True, nil
			}
			if idx, err := strconv.Atoi(name); err == nil {
				return vm.BooleanValue(arr.HasOwnIndex(idx)), nil
			}
			if _, ok := arr.GetProperty(name); ok {
				return vm.True, nil
			}
			return vm.False, nil
		default:
			return vm.False, nil
		}
	}))

	objectProto.SetOwnNonEnumerable("toString", vm.NewNativeFunction(0, false, "toString", func(args []vm.Value) (vm.Value, error) {
		thisVal := vmInstance.GetThis()
		if thisVal.IsArray() {
			return vm.NewString("[object Array]"), nil
		}
		return vm.NewString("[object Object]"), nil
	}))

	objectCtor := vm.NewConstructorWithProps(1, false, "Object", func(args []vm.Value) (vm.Value, error) {
		if len(args) > 0 && args[0].IsObject() {
			return args[0], nil
		}
		return vm.NewObject(vmInstance.ObjectPrototype), nil
	})
	objectCtor.AsNativeFunctionWithProps().Properties.SetOwnNonEnumerable("prototype", vmInstance.ObjectPrototype)
	objectProto.SetOwnNonEnumerable("constructor", objectCtor)

	return ctx.DefineGlobal("Object", objectCtor)
}
