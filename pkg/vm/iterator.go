package vm

// IteratorRecord tracks one in-progress iteration. It is owned exclusively
// by the call that obtained it and must not be reused after Done or after
// IteratorClose.
type IteratorRecord struct {
	Iterator   Value
	NextMethod Value
	Done       bool
}

// GetIteratorMethod looks up the iterator-producing method on a value.
// Absence is a distinguishable non-error outcome ("not iterable"), which is
// how Array.from decides between its iterable and array-like paths.
func (vm *VM) GetIteratorMethod(v Value) (Value, bool) {
	method, ok := vm.GetSymbolProperty(v, vm.SymbolIterator)
	if !ok || !method.IsCallable() {
		return Undefined, false
	}
	return method, true
}

// GetIterator invokes the iterator method and builds an IteratorRecord.
func (vm *VM) GetIterator(v Value, method Value) (*IteratorRecord, error) {
	iterator, err := vm.Call(method, v, nil)
	if err != nil {
		return nil, err
	}
	if !iterator.IsObject() {
		return nil, vm.NewTypeError("Result of the Symbol.iterator method is not an object")
	}
	nextMethod, err := vm.GetProperty(iterator, "next")
	if err != nil {
		return nil, err
	}
	if !nextMethod.IsCallable() {
		return nil, vm.NewTypeError("iterator.next is not a function")
	}
	return &IteratorRecord{Iterator: iterator, NextMethod: nextMethod}, nil
}

// IteratorStep advances the iterator. Returns (value, true, nil) when a
// value was yielded, (Undefined, false, nil) on exhaustion, and an abrupt
// completion when the next call or the result reads fail.
func (vm *VM) IteratorStep(record *IteratorRecord) (Value, bool, error) {
	result, err := vm.Call(record.NextMethod, record.Iterator, nil)
	if err != nil {
		record.Done = true
		return Undefined, false, err
	}
	if !result.IsObject() {
		record.Done = true
		return Undefined, false, vm.NewTypeError("Iterator result is not an object")
	}
	done, err := vm.GetProperty(result, "done")
	if err != nil {
		record.Done = true
		return Undefined, false, err
	}
	if done.IsTruthy() {
		record.Done = true
		return Undefined, false, nil
	}
	value, err := vm.GetProperty(result, "value")
	if err != nil {
		record.Done = true
		return Undefined, false, err
	}
	return value, true, nil
}

// IteratorClose notifies the iterator that consumption stopped early and
// re-raises the completion that caused the abandonment. The original
// completion always wins: a failure inside the return method (or a
// non-callable return slot) is suppressed so the caller sees the reason the
// iteration was actually abandoned. This suppression is deliberate and is
// the one place in the runtime where a completion is discarded.
func (vm *VM) IteratorClose(record *IteratorRecord, completion error) error {
	record.Done = true
	returnMethod, err := vm.GetProperty(record.Iterator, "return")
	if err == nil && returnMethod.IsCallable() {
		_, _ = vm.Call(returnMethod, record.Iterator, nil)
	}
	return completion
}
