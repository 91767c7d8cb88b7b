package vm

import "testing"

// makeIterable builds a plain-object iterable over values. returnFn, when
// non-nil, is installed as the iterator's return method.
func makeIterable(t *testing.T, vmInstance *VM, values []Value, returnFn func(args []Value) (Value, error)) Value {
	t.Helper()
	obj := NewObject(Null).AsPlainObject()
	obj.SetOwnSymbol(vmInstance.SymbolIterator, NewNativeFunction(0, false, "[Symbol.iterator]", func(args []Value) (Value, error) {
		index := 0
		iterator := NewObject(Null).AsPlainObject()
		iterator.SetOwnNonEnumerable("next", NewNativeFunction(0, false, "next", func(args []Value) (Value, error) {
			result := NewObject(Null).AsPlainObject()
			if index >= len(values) {
				result.SetOwn("done", True)
				result.SetOwn("value", Undefined)
			} else {
				result.SetOwn("done", False)
				result.SetOwn("value", values[index])
				index++
			}
			return NewValueFromPlainObject(result), nil
		}))
		if returnFn != nil {
			iterator.SetOwnNonEnumerable("return", NewNativeFunction(0, false, "return", returnFn))
		}
		return NewValueFromPlainObject(iterator), nil
	}))
	return NewValueFromPlainObject(obj)
}

func TestGetIteratorMethodAbsence(t *testing.T) {
	vmInstance := NewVM()

	obj := NewObject(Null)
	if _, ok := vmInstance.GetIteratorMethod(obj); ok {
		t.Error("plain object without @@iterator must report not-iterable")
	}
	if _, ok := vmInstance.GetIteratorMethod(NumberValue(1)); ok {
		t.Error("numbers are not iterable")
	}

	// A non-callable @@iterator slot is still "not iterable".
	bad := NewObject(Null).AsPlainObject()
	bad.SetOwnSymbol(vmInstance.SymbolIterator, NumberValue(1))
	if _, ok := vmInstance.GetIteratorMethod(NewValueFromPlainObject(bad)); ok {
		t.Error("non-callable iterator method must report not-iterable")
	}
}

func TestIteratorStepSequence(t *testing.T) {
	vmInstance := NewVM()
	iterable := makeIterable(t, vmInstance, []Value{NumberValue(10), NumberValue(20)}, nil)

	method, ok := vmInstance.GetIteratorMethod(iterable)
	if !ok {
		t.Fatal("iterable must expose an iterator method")
	}
	record, err := vmInstance.GetIterator(iterable, method)
	if err != nil {
		t.Fatalf("GetIterator failed: %v", err)
	}

	v, hasValue, err := vmInstance.IteratorStep(record)
	if err != nil || !hasValue || v.ToFloat() != 10 {
		t.Fatalf("first step = (%v, %v, %v)", v, hasValue, err)
	}
	v, hasValue, err = vmInstance.IteratorStep(record)
	if err != nil || !hasValue || v.ToFloat() != 20 {
		t.Fatalf("second step = (%v, %v, %v)", v, hasValue, err)
	}
	_, hasValue, err = vmInstance.IteratorStep(record)
	if err != nil || hasValue {
		t.Fatalf("third step must exhaust, got (%v, %v)", hasValue, err)
	}
	if !record.Done {
		t.Error("record must transition to Done on exhaustion")
	}
}

func TestIteratorStepNonObjectResult(t *testing.T) {
	vmInstance := NewVM()
	obj := NewObject(Null).AsPlainObject()
	obj.SetOwnSymbol(vmInstance.SymbolIterator, NewNativeFunction(0, false, "[Symbol.iterator]", func(args []Value) (Value, error) {
		iterator := NewObject(Null).AsPlainObject()
		iterator.SetOwnNonEnumerable("next", NewNativeFunction(0, false, "next", func(args []Value) (Value, error) {
			return NumberValue(1), nil
		}))
		return NewValueFromPlainObject(iterator), nil
	}))

	method, _ := vmInstance.GetIteratorMethod(NewValueFromPlainObject(obj))
	record, err := vmInstance.GetIterator(NewValueFromPlainObject(obj), method)
	if err != nil {
		t.Fatalf("GetIterator failed: %v", err)
	}
	if _, _, err := vmInstance.IteratorStep(record); err == nil {
		t.Error("a primitive iterator result must produce an abrupt completion")
	}
}

func TestGetIteratorRejectsBadIterator(t *testing.T) {
	vmInstance := NewVM()

	method := NewNativeFunction(0, false, "[Symbol.iterator]", func(args []Value) (Value, error) {
		return NumberValue(3), nil
	})
	if _, err := vmInstance.GetIterator(NewObject(Null), method); err == nil {
		t.Error("a primitive iterator must be rejected")
	}

	noNext := NewNativeFunction(0, false, "[Symbol.iterator]", func(args []Value) (Value, error) {
		return NewObject(Null), nil
	})
	if _, err := vmInstance.GetIterator(NewObject(Null), noNext); err == nil {
		t.Error("an iterator without a callable next must be rejected")
	}
}

func TestIteratorCloseInvokesReturn(t *testing.T) {
	vmInstance := NewVM()
	closeCalls := 0
	iterable := makeIterable(t, vmInstance, []Value{NumberValue(1)}, func(args []Value) (Value, error) {
		closeCalls++
		return NewObject(Null), nil
	})

	method, _ := vmInstance.GetIteratorMethod(iterable)
	record, err := vmInstance.GetIterator(iterable, method)
	if err != nil {
		t.Fatalf("GetIterator failed: %v", err)
	}

	original := NewThrownError(NewString("original"))
	got := vmInstance.IteratorClose(record, original)
	if got != original {
		t.Errorf("close must re-raise the original completion, got %v", got)
	}
	if closeCalls != 1 {
		t.Errorf("return invoked %d times, want 1", closeCalls)
	}
	if !record.Done {
		t.Error("record must be Done after close")
	}
}

func TestIteratorCloseSuppressesSecondaryFailure(t *testing.T) {
	vmInstance := NewVM()
	iterable := makeIterable(t, vmInstance, nil, func(args []Value) (Value, error) {
		return Undefined, NewThrownError(NewString("secondary"))
	})

	method, _ := vmInstance.GetIteratorMethod(iterable)
	record, err := vmInstance.GetIterator(iterable, method)
	if err != nil {
		t.Fatalf("GetIterator failed: %v", err)
	}

	original := NewThrownError(NewString("original"))
	got := vmInstance.IteratorClose(record, original)
	if got != original {
		t.Errorf("the original completion must win over a close failure, got %v", got)
	}
}

func TestIteratorCloseWithoutReturnMethod(t *testing.T) {
	vmInstance := NewVM()
	iterable := makeIterable(t, vmInstance, nil, nil)

	method, _ := vmInstance.GetIteratorMethod(iterable)
	record, err := vmInstance.GetIterator(iterable, method)
	if err != nil {
		t.Fatalf("GetIterator failed: %v", err)
	}

	original := NewThrownError(NewString("original"))
	if got := vmInstance.IteratorClose(record, original); got != original {
		t.Errorf("close without a return method must still re-raise the original, got %v", got)
	}
}
