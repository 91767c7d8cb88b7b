package builtins

import (
	"fmt"
	"sort"

	"kestrel/pkg/vm"
)

// GetStandardInitializers returns all built-in initializers sorted by priority
func GetStandardInitializers() []BuiltinInitializer {
	var initializers []BuiltinInitializer

	// Core builtins
	initializers = append(initializers, &ObjectInitializer{})
	initializers = append(initializers, &SymbolInitializer{})
	initializers = append(initializers, &IteratorInitializer{})
	initializers = append(initializers, &ArrayInitializer{})

	// Additional builtins
	initializers = append(initializers, &StringInitializer{})
	initializers = append(initializers, &ErrorInitializer{})

	// Sort by priority (lower numbers first)
	sort.Slice(initializers, func(i, j int) bool {
		return initializers[i].Priority() < initializers[j].Priority()
	})

	return initializers
}

// InitializeStandardRuntime runs every standard initializer against a VM and
// returns it ready for use.
func InitializeStandardRuntime(vmInstance *vm.VM) error {
	ctx := &RuntimeContext{
		VM:                vmInstance,
		DefineGlobal:      vmInstance.DefineGlobal,
		ObjectPrototype:   vmInstance.ObjectPrototype,
		FunctionPrototype: vmInstance.FunctionPrototype,
		ArrayPrototype:    vmInstance.ArrayPrototype,
	}
	for _, init := range GetStandardInitializers() {
		if err := init.InitRuntime(ctx); err != nil {
			return fmt.Errorf("initializing %s: %w", init.Name(), err)
		}
	}
	return nil
}

// NewStandardVM creates a VM with the standard builtins installed. Panics on
// initializer failure; the standard set failing to install is a programming
// error, not a runtime condition.
func NewStandardVM() *vm.VM {
	vmInstance := vm.NewVM()
	if err := InitializeStandardRuntime(vmInstance); err != nil {
		panic(err)
	}
	return vmInstance
}
