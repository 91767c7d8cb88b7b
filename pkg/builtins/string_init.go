package builtins

import (
	"kestrel/pkg/vm"
)

// StringInitializer makes string primitives iterable: the prototype's
// [Symbol.iterator] yields one-code-point strings. This is what routes
// Array.from("ab") down the iterable path instead of the array-like one.
type StringInitializer struct{}

func (s *StringInitializer) Name() string {
	return "String"
}

func (s *StringInitializer) Priority() int {
	return PriorityString
}

func (s *StringInitializer) InitRuntime(ctx *RuntimeContext) error {
	vmInstance := ctx.VM
	stringProto := vmInstance.StringPrototype.AsPlainObject()

	stringProto.SetOwnSymbol(vmInstance.SymbolIterator, vm.NewNativeFunction(0, false, "[Symbol.iterator]", func(args []vm.Value) (vm.Value, error) {
		thisVal := vmInstance.GetThis()
		if !thisVal.IsString() {
			return vm.Undefined, vmInstance.NewTypeError("String.prototype[Symbol.iterator] requires that 'this' be a String")
		}
		return newStringIterator(vmInstance, thisVal.AsString()), nil
	}))

	stringProto.SetOwnNonEnumerable("charAt", vm.NewNativeFunction(1, false, "charAt", func(args []vm.Value) (vm.Value, error) {
		thisVal := vmInstance.GetThis()
		if !thisVal.IsString() {
			return vm.Undefined, vmInstance.NewTypeError("String.prototype.charAt requires that 'this' be a String")
		}
		pos := 0
		if len(args) > 0 {
			pos = int(args[0].ToFloat())
		}
		runes := []rune(thisVal.AsString())
		if pos < 0 || pos >= len(runes) {
			return vm.NewString(""), nil
		}
		return vm.NewString(string(runes[pos])), nil
	}))

	return nil
}

// newStringIterator builds an iterator over the string's code points.
func newStringIterator(vmInstance *vm.VM, s string) vm.Value {
	runes := []rune(s)
	index := 0
	iterator := vm.NewObject(vmInstance.IteratorPrototype).AsPlainObject()
	iterator.SetOwnNonEnumerable("next", vm.NewNativeFunction(0, false, "next", func(args []vm.Value) (vm.Value, error) {
		result := vm.NewObject(vmInstance.ObjectPrototype).AsPlainObject()
		if index >= len(runes) {
			result.SetOwn("done", vm.True)
			result.SetOwn("value", vm.Undefined)
		} else {
			result.SetOwn("done", vm.False)
			result.SetOwn("value", vm.NewString(string(runes[index])))
			index++
		}
		return vm.NewValueFromPlainObject(result), nil
	}))
	return vm.NewValueFromPlainObject(iterator)
}
