package vm

import (
	"math"
	"testing"
)

func TestValuePredicates(t *testing.T) {
	cases := []struct {
		name     string
		value    Value
		isNumber bool
		isObject bool
		callable bool
	}{
		{"undefined", Undefined, false, false, false},
		{"null", Null, false, false, false},
		{"float", NumberValue(1.5), true, false, false},
		{"integer", IntegerValue(42), true, false, false},
		{"string", NewString("hi"), false, false, false},
		{"symbol", NewSymbol("s"), false, false, false},
		{"boolean", True, false, false, false},
		{"object", NewObject(Null), false, true, false},
		{"array", NewArray(), false, true, false},
		{"native function", NewNativeFunction(0, false, "f", func(args []Value) (Value, error) { return Undefined, nil }), false, true, true},
		{"constructor", NewConstructorWithProps(0, false, "C", func(args []Value) (Value, error) { return Undefined, nil }), false, true, true},
	}
	for _, tc := range cases {
		if got := tc.value.IsNumber(); got != tc.isNumber {
			t.Errorf("%s: IsNumber() = %v, want %v", tc.name, got, tc.isNumber)
		}
		if got := tc.value.IsObject(); got != tc.isObject {
			t.Errorf("%s: IsObject() = %v, want %v", tc.name, got, tc.isObject)
		}
		if got := tc.value.IsCallable(); got != tc.callable {
			t.Errorf("%s: IsCallable() = %v, want %v", tc.name, got, tc.callable)
		}
	}
}

func TestValueToFloat(t *testing.T) {
	if got := NumberValue(3.25).ToFloat(); got != 3.25 {
		t.Errorf("ToFloat(3.25) = %v", got)
	}
	if got := IntegerValue(-7).ToFloat(); got != -7 {
		t.Errorf("ToFloat(-7) = %v", got)
	}
	if got := NewString("12").ToFloat(); got != 12 {
		t.Errorf("ToFloat(\"12\") = %v", got)
	}
	if got := NewString("").ToFloat(); got != 0 {
		t.Errorf("ToFloat(\"\") = %v", got)
	}
	if got := NewString("nope").ToFloat(); !math.IsNaN(got) {
		t.Errorf("ToFloat(\"nope\") = %v, want NaN", got)
	}
	if got := Undefined.ToFloat(); !math.IsNaN(got) {
		t.Errorf("ToFloat(undefined) = %v, want NaN", got)
	}
	if got := Null.ToFloat(); got != 0 {
		t.Errorf("ToFloat(null) = %v", got)
	}
	if got := True.ToFloat(); got != 1 {
		t.Errorf("ToFloat(true) = %v", got)
	}
}

func TestValueToString(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{Undefined, "undefined"},
		{Null, "null"},
		{True, "true"},
		{NumberValue(3), "3"},
		{NumberValue(3.5), "3.5"},
		{IntegerValue(-2), "-2"},
		{NaN, "NaN"},
		{NumberValue(math.Inf(1)), "Infinity"},
		{NewString("abc"), "abc"},
		{NewSymbol("tag"), "Symbol(tag)"},
	}
	for _, tc := range cases {
		if got := tc.value.ToString(); got != tc.want {
			t.Errorf("ToString() = %q, want %q", got, tc.want)
		}
	}
}

func TestValueIs(t *testing.T) {
	if !Undefined.Is(Undefined) {
		t.Error("undefined must be itself")
	}
	if !NaN.Is(NaN) {
		t.Error("NaN must be itself under SameValue")
	}
	if NumberValue(0).Is(NumberValue(math.Copysign(0, -1))) {
		t.Error("+0 and -0 must be distinct under SameValue")
	}
	if !NumberValue(5).Is(IntegerValue(5)) {
		t.Error("the two number representations must compare by value")
	}
	if !NewString("a").Is(NewString("a")) {
		t.Error("equal strings must compare equal")
	}
	sym := NewSymbol("s")
	if !sym.Is(sym) {
		t.Error("a symbol must be itself")
	}
	if sym.Is(NewSymbol("s")) {
		t.Error("two symbols with the same description are distinct")
	}
	arr := NewArray()
	if !arr.Is(arr) || arr.Is(NewArray()) {
		t.Error("object identity must be reference identity")
	}
}

func TestValueTruthiness(t *testing.T) {
	truthy := []Value{True, NumberValue(1), NewString("x"), NewArray(), NewObject(Null)}
	for _, v := range truthy {
		if !v.IsTruthy() {
			t.Errorf("%s should be truthy", v.ToString())
		}
	}
	falsey := []Value{False, Undefined, Null, NumberValue(0), NaN, NewString("")}
	for _, v := range falsey {
		if v.IsTruthy() {
			t.Errorf("%s should be falsey", v.ToString())
		}
	}
}
