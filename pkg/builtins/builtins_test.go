package builtins

import (
	"testing"

	"kestrel/pkg/vm"
)

func TestStandardInitializersOrdered(t *testing.T) {
	initializers := GetStandardInitializers()
	if len(initializers) == 0 {
		t.Fatal("no standard initializers registered")
	}
	for i := 1; i < len(initializers); i++ {
		if initializers[i-1].Priority() > initializers[i].Priority() {
			t.Fatalf("initializer %s (priority %d) ordered after %s (priority %d)",
				initializers[i-1].Name(), initializers[i-1].Priority(),
				initializers[i].Name(), initializers[i].Priority())
		}
	}

	names := make(map[string]bool)
	for _, init := range initializers {
		names[init.Name()] = true
	}
	for _, want := range []string{"Object", "Symbol", "Iterator", "Array", "String", "Error"} {
		if !names[want] {
			t.Errorf("missing initializer %q", want)
		}
	}
}

func TestNewStandardVMGlobals(t *testing.T) {
	vmInstance := NewStandardVM()

	for _, name := range []string{"Object", "Symbol", "Array", "Error", "TypeError", "RangeError"} {
		v, ok := vmInstance.GetGlobal(name)
		if !ok {
			t.Errorf("global %q not installed", name)
			continue
		}
		if !v.IsCallable() {
			t.Errorf("global %q must be callable", name)
		}
	}
}

func TestErrorConstructorsProduceKinds(t *testing.T) {
	vmInstance := NewStandardVM()

	cases := []struct {
		ctor string
		kind string
	}{
		{"TypeError", "TypeError"},
		{"RangeError", "RangeError"},
		{"Error", "Error"},
	}
	for _, tc := range cases {
		ctor, _ := vmInstance.GetGlobal(tc.ctor)
		errObj, err := vmInstance.Construct(ctor, []vm.Value{vm.NewString("boom")})
		if err != nil {
			t.Fatalf("new %s failed: %v", tc.ctor, err)
		}
		name, err := vmInstance.GetProperty(errObj, "name")
		if err != nil || name.AsString() != tc.kind {
			t.Errorf("%s instance name = %s", tc.ctor, name.ToString())
		}
		message, err := vmInstance.GetProperty(errObj, "message")
		if err != nil || message.AsString() != "boom" {
			t.Errorf("%s instance message = %s", tc.ctor, message.ToString())
		}
	}
}

func TestThrownErrorKindDetection(t *testing.T) {
	vmInstance := NewStandardVM()

	if kind := vm.ErrorKindName(vmInstance.NewTypeError("x")); kind != "TypeError" {
		t.Errorf("NewTypeError kind = %q", kind)
	}
	if kind := vm.ErrorKindName(vmInstance.NewRangeError("x")); kind != "RangeError" {
		t.Errorf("NewRangeError kind = %q", kind)
	}
}

func TestSymbolWellKnowns(t *testing.T) {
	vmInstance := NewStandardVM()

	symbolCtor, _ := vmInstance.GetGlobal("Symbol")
	props := symbolCtor.AsNativeFunctionWithProps().Properties

	iter, ok := props.GetOwn("iterator")
	if !ok || !iter.Is(vmInstance.SymbolIterator) {
		t.Error("Symbol.iterator must expose the runtime iterator symbol")
	}
	species, ok := props.GetOwn("species")
	if !ok || !species.Is(vmInstance.SymbolSpecies) {
		t.Error("Symbol.species must expose the runtime species symbol")
	}
	if iter.Is(species) {
		t.Error("well-known symbols must be distinct")
	}
}

func TestSymbolConstructorMakesFreshSymbols(t *testing.T) {
	vmInstance := NewStandardVM()
	symbolCtor, _ := vmInstance.GetGlobal("Symbol")

	a, err := vmInstance.Call(symbolCtor, vm.Undefined, []vm.Value{vm.NewString("k")})
	if err != nil {
		t.Fatalf("Symbol(\"k\") failed: %v", err)
	}
	b, err := vmInstance.Call(symbolCtor, vm.Undefined, []vm.Value{vm.NewString("k")})
	if err != nil {
		t.Fatalf("Symbol(\"k\") failed: %v", err)
	}
	if a.Is(b) {
		t.Error("each Symbol() call must mint a distinct symbol")
	}
}

func TestStringIteration(t *testing.T) {
	vmInstance := NewStandardVM()

	method, ok := vmInstance.GetIteratorMethod(vm.NewString("hé"))
	if !ok {
		t.Fatal("strings must be iterable")
	}
	record, err := vmInstance.GetIterator(vm.NewString("hé"), method)
	if err != nil {
		t.Fatalf("GetIterator failed: %v", err)
	}

	var got []string
	for {
		v, hasValue, err := vmInstance.IteratorStep(record)
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}
		if !hasValue {
			break
		}
		got = append(got, v.AsString())
	}
	if len(got) != 2 || got[0] != "h" || got[1] != "é" {
		t.Errorf("string iteration = %v, want [h é]", got)
	}
}

func TestObjectPrototypeBasics(t *testing.T) {
	vmInstance := NewStandardVM()

	obj := vm.NewObject(vmInstance.ObjectPrototype)
	obj.AsPlainObject().SetOwn("x", vm.NumberValue(1))

	hasOwn, err := vmInstance.GetProperty(obj, "hasOwnProperty")
	if err != nil || !hasOwn.IsCallable() {
		t.Fatal("hasOwnProperty must be inherited from Object.prototype")
	}
	got, err := vmInstance.Call(hasOwn, obj, []vm.Value{vm.NewString("x")})
	if err != nil || !got.Is(vm.True) {
		t.Error("hasOwnProperty(x) must be true")
	}
	got, err = vmInstance.Call(hasOwn, obj, []vm.Value{vm.NewString("y")})
	if err != nil || !got.Is(vm.False) {
		t.Error("hasOwnProperty(y) must be false")
	}
}
