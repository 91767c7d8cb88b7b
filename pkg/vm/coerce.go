package vm

import (
	"math"

	"fortio.org/safecast"
)

const (
	// MaxArrayLength is the largest valid array length (2^32 - 1).
	MaxArrayLength = math.MaxUint32

	// MaxArrayIndex is the largest valid array-like index (2^53 - 1), the
	// bound iteration in Array.from runs up against.
	MaxArrayIndex = 1<<53 - 1
)

// ArrayLengthFromValue validates a numeric length argument: it must be an
// exact non-negative integer no larger than MaxArrayLength. Fractional,
// negative, or out-of-range values are not truncated; they produce a
// RangeError completion. safecast's round-trip check is exactly this
// predicate: uint32(3.5) and uint32(-1) both fail it.
func (vm *VM) ArrayLengthFromValue(v Value) (int, error) {
	n, err := safecast.Convert[uint32](v.ToFloat())
	if err != nil {
		return 0, vm.NewRangeError("Invalid array length")
	}
	return int(n), nil
}

// ToLength clamps a value to a valid array-like length: NaN and negatives
// become 0, anything above MaxArrayIndex saturates. Total: never produces an
// abrupt completion.
func ToLength(v Value) int64 {
	f := v.ToFloat()
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	f = math.Trunc(f)
	if f > MaxArrayIndex {
		return MaxArrayIndex
	}
	return int64(f)
}

// LengthOfArrayLike reads and clamps the length property of an array-like
// source. The property read itself can fail abruptly; the coercion cannot.
func (vm *VM) LengthOfArrayLike(v Value) (int64, error) {
	lengthVal, err := vm.GetProperty(v, "length")
	if err != nil {
		return 0, err
	}
	return ToLength(lengthVal), nil
}
