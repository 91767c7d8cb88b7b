package vm

import (
	"math"
	"strconv"
	"unsafe"
)

type ValueType uint8

const (
	TypeUndefined ValueType = iota
	TypeNull

	TypeString
	TypeSymbol

	TypeFloatNumber
	TypeIntegerNumber

	TypeBoolean

	TypeNativeFunction
	TypeNativeFunctionWithProps

	TypeObject
	TypeArray
	TypeHole // Internal marker for array holes (sparse arrays)
)

// String returns a human-readable string representation of the ValueType
func (vt ValueType) String() string {
	switch vt {
	case TypeNull:
		return "null"
	case TypeUndefined:
		return "undefined"
	case TypeString:
		return "string"
	case TypeSymbol:
		return "symbol"
	case TypeFloatNumber, TypeIntegerNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeNativeFunction, TypeNativeFunctionWithProps:
		return "native function"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	default:
		return "unknown"
	}
}

type StringObject struct {
	Object
	value string
}

// SymbolObject identity is pointer identity: two symbols are the same symbol
// only when they are the same allocation, regardless of description.
type SymbolObject struct {
	Object
	value string
}

type Value struct {
	typ     ValueType
	payload uint64
	obj     unsafe.Pointer
}

var (
	Undefined = Value{typ: TypeUndefined}
	Null      = Value{typ: TypeNull}
	Hole      = Value{typ: TypeHole}
	True      = Value{typ: TypeBoolean, payload: 1}
	False     = Value{typ: TypeBoolean, payload: 0}
	NaN       = Value{typ: TypeFloatNumber, payload: math.Float64bits(math.NaN())}
)

func NumberValue(value float64) Value {
	return Value{typ: TypeFloatNumber, payload: math.Float64bits(value)}
}

func IntegerValue(value int32) Value {
	return Value{typ: TypeIntegerNumber, payload: uint64(int64(value))}
}

func BooleanValue(value bool) Value {
	if value {
		return True
	}
	return False
}

func NewString(value string) Value {
	return Value{typ: TypeString, obj: unsafe.Pointer(&StringObject{value: value})}
}

func NewSymbol(value string) Value {
	return Value{typ: TypeSymbol, obj: unsafe.Pointer(&SymbolObject{value: value})}
}

// NewObject creates an empty extensible plain object with the given prototype.
func NewObject(proto Value) Value {
	obj := &PlainObject{
		prototype:  proto,
		props:      make(map[string]*property),
		extensible: true,
	}
	return Value{typ: TypeObject, obj: unsafe.Pointer(obj)}
}

func NewValueFromPlainObject(plainObj *PlainObject) Value {
	return Value{typ: TypeObject, obj: unsafe.Pointer(plainObj)}
}

func (v Value) Type() ValueType {
	return v.typ
}

func (v Value) TypeName() string {
	return v.typ.String()
}

func (v Value) IsUndefined() bool {
	return v.typ == TypeUndefined
}

func (v Value) IsNull() bool {
	return v.typ == TypeNull
}

func (v Value) IsNumber() bool {
	return v.typ == TypeFloatNumber || v.typ == TypeIntegerNumber
}

func (v Value) IsString() bool {
	return v.typ == TypeString
}

func (v Value) IsSymbol() bool {
	return v.typ == TypeSymbol
}

func (v Value) IsBoolean() bool {
	return v.typ == TypeBoolean
}

func (v Value) IsArray() bool {
	return v.typ == TypeArray
}

// IsObject reports whether the value is an object-kind value (plain object,
// array, or function object). Primitives return false.
func (v Value) IsObject() bool {
	switch v.typ {
	case TypeObject, TypeArray, TypeNativeFunction, TypeNativeFunctionWithProps:
		return true
	}
	return false
}

func (v Value) IsCallable() bool {
	return v.typ == TypeNativeFunction || v.typ == TypeNativeFunctionWithProps
}

func (v Value) AsFloat() float64 {
	if v.typ == TypeIntegerNumber {
		return float64(int64(v.payload))
	}
	return math.Float64frombits(v.payload)
}

func (v Value) AsInteger() int32 {
	return int32(int64(v.payload))
}

func (v Value) AsString() string {
	return (*StringObject)(v.obj).value
}

func (v Value) AsSymbol() string {
	return (*SymbolObject)(v.obj).value
}

func (v Value) AsSymbolObject() *SymbolObject {
	return (*SymbolObject)(v.obj)
}

func (v Value) AsBoolean() bool {
	return v.payload != 0
}

func (v Value) AsPlainObject() *PlainObject {
	if v.typ != TypeObject {
		return nil
	}
	return (*PlainObject)(v.obj)
}

func (v Value) AsArray() *ArrayObject {
	if v.typ != TypeArray {
		return nil
	}
	return (*ArrayObject)(v.obj)
}

func (v Value) AsNativeFunction() *NativeFunctionObject {
	if v.typ != TypeNativeFunction {
		return nil
	}
	return (*NativeFunctionObject)(v.obj)
}

func (v Value) AsNativeFunctionWithProps() *NativeFunctionObjectWithProps {
	if v.typ != TypeNativeFunctionWithProps {
		return nil
	}
	return (*NativeFunctionObjectWithProps)(v.obj)
}

// ToFloat converts the value to a number following ToNumber semantics for the
// kinds this core deals with. Objects convert to NaN rather than invoking
// user-observable valueOf; the algorithms here only number-convert primitives.
func (v Value) ToFloat() float64 {
	switch v.typ {
	case TypeFloatNumber:
		return math.Float64frombits(v.payload)
	case TypeIntegerNumber:
		return float64(int64(v.payload))
	case TypeBoolean:
		if v.payload != 0 {
			return 1
		}
		return 0
	case TypeNull:
		return 0
	case TypeString:
		s := v.AsString()
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}

// ToString renders a value for diagnostics and error messages.
func (v Value) ToString() string {
	switch v.typ {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		if v.payload != 0 {
			return "true"
		}
		return "false"
	case TypeFloatNumber:
		f := math.Float64frombits(v.payload)
		if math.IsNaN(f) {
			return "NaN"
		}
		if math.IsInf(f, 1) {
			return "Infinity"
		}
		if math.IsInf(f, -1) {
			return "-Infinity"
		}
		if f == math.Trunc(f) && math.Abs(f) < 1e21 {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case TypeIntegerNumber:
		return strconv.FormatInt(int64(v.payload), 10)
	case TypeString:
		return v.AsString()
	case TypeSymbol:
		return "Symbol(" + v.AsSymbol() + ")"
	case TypeNativeFunction:
		return "function " + v.AsNativeFunction().Name + "() { [native code] }"
	case TypeNativeFunctionWithProps:
		return "function " + v.AsNativeFunctionWithProps().Name + "() { [native code] }"
	case TypeArray:
		return "[object Array]"
	case TypeObject:
		return "[object Object]"
	default:
		return "<" + v.typ.String() + ">"
	}
}

func (v Value) IsTruthy() bool {
	switch v.typ {
	case TypeUndefined, TypeNull:
		return false
	case TypeBoolean:
		return v.payload != 0
	case TypeFloatNumber:
		f := math.Float64frombits(v.payload)
		return f != 0 && !math.IsNaN(f)
	case TypeIntegerNumber:
		return v.payload != 0
	case TypeString:
		return v.AsString() != ""
	default:
		return true
	}
}

func (v Value) IsFalsey() bool {
	return !v.IsTruthy()
}

// Is implements SameValue-style identity: reference identity for objects,
// value identity for primitives (NaN is itself, +0 and -0 are distinct).
func (v Value) Is(other Value) bool {
	if v.typ != other.typ {
		// The two number representations compare by numeric value.
		if v.IsNumber() && other.IsNumber() {
			a, b := v.ToFloat(), other.ToFloat()
			if math.IsNaN(a) && math.IsNaN(b) {
				return true
			}
			return math.Float64bits(a) == math.Float64bits(b)
		}
		return false
	}
	switch v.typ {
	case TypeUndefined, TypeNull:
		return true
	case TypeBoolean, TypeIntegerNumber:
		return v.payload == other.payload
	case TypeFloatNumber:
		a, b := v.AsFloat(), other.AsFloat()
		if math.IsNaN(a) && math.IsNaN(b) {
			return true
		}
		return math.Float64bits(a) == math.Float64bits(b)
	case TypeString:
		return v.AsString() == other.AsString()
	default:
		return v.obj == other.obj
	}
}
