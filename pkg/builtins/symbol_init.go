package builtins

import (
	"kestrel/pkg/vm"
)

// SymbolInitializer exposes the Symbol constructor and the runtime's
// well-known symbols. The well-known identities themselves live on the VM
// (one registry per runtime instance, created in NewVM); this initializer
// only publishes them.
type SymbolInitializer struct{}

func (s *SymbolInitializer) Name() string {
	return "Symbol"
}

func (s *SymbolInitializer) Priority() int {
	return PrioritySymbol
}

func (s *SymbolInitializer) InitRuntime(ctx *RuntimeContext) error {
	vmInstance := ctx.VM

	symbolCtor := vm.NewNativeFunctionWithProps(0, true, "Symbol", func(args []vm.Value) (vm.Value, error) {
		description := ""
		if len(args) > 0 && !args[0].IsUndefined() {
			description = args[0].ToString()
		}
		return vm.NewSymbol(description), nil
	})

	props := symbolCtor.AsNativeFunctionWithProps().Properties
	props.SetOwnNonEnumerable("iterator", vmInstance.SymbolIterator)
	props.SetOwnNonEnumerable("species", vmInstance.SymbolSpecies)

	symbolProto := vmInstance.SymbolPrototype.AsPlainObject()
	symbolProto.SetOwnNonEnumerable("toString", vm.NewNativeFunction(0, false, "toString", func(args []vm.Value) (vm.Value, error) {
		thisVal := vmInstance.GetThis()
		if !thisVal.IsSymbol() {
			return vm.Undefined, vmInstance.NewTypeError("Symbol.prototype.toString requires that 'this' be a Symbol")
		}
		return vm.NewString(thisVal.ToString()), nil
	}))

	return ctx.DefineGlobal("Symbol", symbolCtor)
}
