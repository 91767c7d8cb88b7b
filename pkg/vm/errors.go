package vm

// Abrupt completions are modeled as Go errors carrying the thrown runtime
// value. Normal completions are plain (Value, nil) returns. Once a call
// returns a non-nil error, callers must stop normal evaluation and propagate
// it unchanged; the only deliberate exception is IteratorClose, which
// performs cleanup and re-raises the original (see iterator.go).
type exceptionError struct {
	exception Value
}

func (e exceptionError) Error() string {
	return e.exception.ToString()
}

// NewThrownError wraps an arbitrary runtime value as an abrupt completion.
func NewThrownError(v Value) error {
	return exceptionError{exception: v}
}

// ThrownValue extracts the thrown runtime value from an abrupt completion.
// Returns (Undefined, false) for errors that did not originate as thrown
// runtime values.
func ThrownValue(err error) (Value, bool) {
	if ee, ok := err.(exceptionError); ok {
		return ee.exception, true
	}
	return Undefined, false
}

func (vm *VM) newErrorKind(ctorName, message string) error {
	ctor, ok := vm.GetGlobal(ctorName)
	if ok && ctor.IsCallable() {
		errObj, err := vm.Call(ctor, Undefined, []Value{NewString(message)})
		if err == nil {
			return exceptionError{exception: errObj}
		}
	}
	// Fallback generic error object for runtimes without the constructor installed
	obj := NewObject(Null).AsPlainObject()
	obj.SetOwn("name", NewString(ctorName))
	obj.SetOwn("message", NewString(message))
	return exceptionError{exception: NewValueFromPlainObject(obj)}
}

// NewTypeError constructs a TypeError exception error for builtin helpers to return
func (vm *VM) NewTypeError(message string) error {
	return vm.newErrorKind("TypeError", message)
}

// NewRangeError constructs a RangeError exception error for builtin helpers to return
func (vm *VM) NewRangeError(message string) error {
	return vm.newErrorKind("RangeError", message)
}

// NewError constructs a plain Error exception error for builtin helpers to return
func (vm *VM) NewError(message string) error {
	return vm.newErrorKind("Error", message)
}

// ErrorKindName reports the name property of a thrown error object, or ""
// when the completion does not carry one. Diagnostic helper for harnesses
// and tests.
func ErrorKindName(err error) string {
	v, ok := ThrownValue(err)
	if !ok {
		return ""
	}
	if obj := v.AsPlainObject(); obj != nil {
		if name, ok := obj.Get("name"); ok {
			return name.ToString()
		}
	}
	return ""
}
