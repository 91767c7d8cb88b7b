package builtins

import (
	"kestrel/pkg/vm"
)

// IteratorInitializer installs %IteratorPrototype%, the object every
// built-in iterator inherits from. Its only member is the self-returning
// [Symbol.iterator] method, which makes iterators themselves iterable.
type IteratorInitializer struct{}

func (i *IteratorInitializer) Name() string {
	return "Iterator"
}

func (i *IteratorInitializer) Priority() int {
	return PriorityIterator
}

func (i *IteratorInitializer) InitRuntime(ctx *RuntimeContext) error {
	vmInstance := ctx.VM
	iteratorProto := vmInstance.IteratorPrototype.AsPlainObject()

	iteratorProto.SetOwnSymbol(vmInstance.SymbolIterator, vm.NewNativeFunction(0, false, "[Symbol.iterator]", func(args []vm.Value) (vm.Value, error) {
		return vmInstance.GetThis(), nil
	}))

	return nil
}
