package builtins

import (
	"kestrel/pkg/vm"
)

// BuiltinInitializer is implemented by each builtin module
type BuiltinInitializer interface {
	// Name returns the module name (e.g., "Array", "Symbol", "Error")
	Name() string

	// Priority returns initialization order (lower = earlier)
	Priority() int

	// InitRuntime creates runtime values for the VM
	InitRuntime(ctx *RuntimeContext) error
}

// RuntimeContext provides everything needed for runtime initialization
type RuntimeContext struct {
	// The VM instance
	VM *vm.VM

	// Define a global value
	DefineGlobal func(name string, value vm.Value) error

	// Get built-in prototypes (set as initializers run)
	ObjectPrototype   vm.Value
	FunctionPrototype vm.Value
	ArrayPrototype    vm.Value
}

// Priority constants for initialization order
const (
	PriorityObject   = 0  // Object must be first (base prototype)
	PrioritySymbol   = 1  // Symbols needed for iterator protocol
	PriorityIterator = 2  // Iterator prototype (needed for iterables)
	PriorityArray    = 3  // Array (inherits from Object, implements Iterable)
	PriorityString   = 10 // String primitives (iterable over code points)
	PriorityError    = 20 // Error constructors (Error, TypeError, RangeError)
)
