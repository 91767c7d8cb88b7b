package vm

import (
	"fmt"
	"strconv"
)

// CreateDataPropertyOrThrow defines an own enumerable/writable/configurable
// data property at a numeric index. A definition that cannot be performed
// (non-extensible target, non-configurable existing property) is an
// observable failure and comes back as a TypeError completion, never
// silently dropped.
func (vm *VM) CreateDataPropertyOrThrow(target Value, index int, v Value) error {
	pk := strconv.Itoa(index)
	switch target.Type() {
	case TypeArray:
		arr := target.AsArray()
		if !arr.IsExtensible() && !arr.HasOwnIndex(index) {
			return vm.NewTypeError(fmt.Sprintf("Cannot add property %s, object is not extensible", pk))
		}
		arr.Set(index, v)
		return nil
	case TypeObject:
		po := target.AsPlainObject()
		_, _, _, configurable, exists := po.GetOwnDescriptor(pk)
		if !exists && !po.IsExtensible() {
			return vm.NewTypeError(fmt.Sprintf("Cannot add property %s, object is not extensible", pk))
		}
		if exists && !configurable {
			return vm.NewTypeError(fmt.Sprintf("Cannot redefine property: %s", pk))
		}
		w, e, c := true, true, true
		po.DefineOwnProperty(pk, v, &w, &e, &c)
		return nil
	default:
		return vm.NewTypeError("Cannot create property on " + target.TypeName())
	}
}

// SetLengthOrThrow performs the observable length write used when the
// destination may be a user-supplied constructible object: a non-writable
// length property fails with a TypeError completion.
func (vm *VM) SetLengthOrThrow(target Value, length int) error {
	switch target.Type() {
	case TypeArray:
		target.AsArray().SetLength(length)
		return nil
	case TypeObject:
		po := target.AsPlainObject()
		_, writable, _, _, exists := po.GetOwnDescriptor("length")
		if exists && !writable {
			return vm.NewTypeError("Cannot assign to read only property 'length'")
		}
		po.SetOwn("length", NumberValue(float64(length)))
		return nil
	default:
		return vm.NewTypeError("Cannot set length on " + target.TypeName())
	}
}

// MustSetLength is the must-succeed form of the length write, used only
// where the algorithm proves the write cannot fail (a freshly created plain
// array nothing else has observed). A failure here is a broken invariant in
// this runtime, not a recoverable condition.
func MustSetLength(target Value, length int) {
	arr := target.AsArray()
	if arr == nil {
		panic("MustSetLength on non-array target")
	}
	arr.SetLength(length)
}
