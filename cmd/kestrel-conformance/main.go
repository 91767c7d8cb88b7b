package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kestrel/pkg/builtins"
	"kestrel/pkg/vm"
)

// A scenario exercises one observable behavior of the construction core
// against a fresh runtime. Returning an error fails the scenario.
type scenario struct {
	name string
	run  func(vmInstance *vm.VM) error
}

func main() {
	var (
		verbose bool
		filter  string
	)

	rootCmd := &cobra.Command{
		Use:   "kestrel-conformance",
		Short: "Run the built-in conformance scenarios against the kestrel runtime core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(verbose, filter)
		},
	}
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every scenario, not just failures")
	rootCmd.Flags().StringVar(&filter, "filter", "", "Only run scenarios whose name contains this substring")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScenarios(verbose bool, filter string) error {
	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	passed, failed := 0, 0
	for _, sc := range scenarios() {
		if filter != "" && !strings.Contains(sc.name, filter) {
			continue
		}
		vmInstance := builtins.NewStandardVM()
		err := sc.run(vmInstance)
		if err != nil {
			failed++
			fmt.Printf("%s %s: %v\n", fail("FAIL"), sc.name, err)
		} else {
			passed++
			if verbose {
				fmt.Printf("%s %s\n", pass("PASS"), sc.name)
			}
		}
	}

	fmt.Printf("\n%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		return fmt.Errorf("%d conformance scenario(s) failed", failed)
	}
	return nil
}

func scenarios() []scenario {
	return []scenario{
		{"construct/no-arguments", func(v *vm.VM) error {
			arr, err := constructArray(v)
			if err != nil {
				return err
			}
			return expectLength(arr, 0)
		}},
		{"construct/single-numeric-length", func(v *vm.VM) error {
			arr, err := constructArray(v, vm.NumberValue(7))
			if err != nil {
				return err
			}
			if err := expectLength(arr, 7); err != nil {
				return err
			}
			if arr.AsArray().HasOwnIndex(0) {
				return fmt.Errorf("length-only construction must not create index properties")
			}
			return nil
		}},
		{"construct/fractional-length-rejected", func(v *vm.VM) error {
			_, err := constructArray(v, vm.NumberValue(3.5))
			return expectErrorKind(err, "RangeError")
		}},
		{"construct/single-non-numeric", func(v *vm.VM) error {
			arr, err := constructArray(v, vm.NewString("x"))
			if err != nil {
				return err
			}
			if err := expectLength(arr, 1); err != nil {
				return err
			}
			return expectElement(arr, 0, vm.NewString("x"))
		}},
		{"construct/multiple-arguments", func(v *vm.VM) error {
			arr, err := constructArray(v, vm.NumberValue(1), vm.NumberValue(2), vm.NumberValue(3))
			if err != nil {
				return err
			}
			if err := expectLength(arr, 3); err != nil {
				return err
			}
			for i, want := range []float64{1, 2, 3} {
				if err := expectElement(arr, i, vm.NumberValue(want)); err != nil {
					return err
				}
			}
			return nil
		}},
		{"from/string-is-iterable", func(v *vm.VM) error {
			arr, err := callArrayStatic(v, "from", vm.NewString("ab"))
			if err != nil {
				return err
			}
			if err := expectLength(arr, 2); err != nil {
				return err
			}
			if err := expectElement(arr, 0, vm.NewString("a")); err != nil {
				return err
			}
			return expectElement(arr, 1, vm.NewString("b"))
		}},
		{"from/array-like-holes", func(v *vm.VM) error {
			src := vm.NewObject(v.ObjectPrototype).AsPlainObject()
			src.SetOwn("length", vm.NumberValue(3))
			arr, err := callArrayStatic(v, "from", vm.NewValueFromPlainObject(src))
			if err != nil {
				return err
			}
			if err := expectLength(arr, 3); err != nil {
				return err
			}
			for i := 0; i < 3; i++ {
				if err := expectElement(arr, i, vm.Undefined); err != nil {
					return err
				}
			}
			return nil
		}},
		{"from/mapfn-failure-closes-iterator", func(v *vm.VM) error {
			closeCalls := 0
			iterable := makeCountingIterable(v, []vm.Value{vm.NumberValue(1), vm.NumberValue(2), vm.NumberValue(3)}, &closeCalls)
			boom := vm.NewString("boom")
			mapFn := vm.NewNativeFunction(2, false, "mapFn", func(args []vm.Value) (vm.Value, error) {
				if args[1].ToFloat() >= 1 {
					return vm.Undefined, vm.NewThrownError(boom)
				}
				return args[0], nil
			})
			_, err := callArrayStatic(v, "from", iterable, mapFn)
			if err == nil {
				return fmt.Errorf("expected abrupt completion from mapping function")
			}
			if thrown, ok := vm.ThrownValue(err); !ok || !thrown.Is(boom) {
				return fmt.Errorf("original thrown value must win, got %v", err)
			}
			if closeCalls != 1 {
				return fmt.Errorf("iterator return must be called exactly once, got %d", closeCalls)
			}
			return nil
		}},
		{"isArray/structural", func(v *vm.VM) error {
			res, err := callArrayStaticRaw(v, "isArray", vm.NewArray())
			if err != nil {
				return err
			}
			if !res.IsTruthy() {
				return fmt.Errorf("isArray([]) must be true")
			}
			obj := vm.NewObject(v.ObjectPrototype).AsPlainObject()
			obj.SetOwn("length", vm.NumberValue(0))
			res, err = callArrayStaticRaw(v, "isArray", vm.NewValueFromPlainObject(obj))
			if err != nil {
				return err
			}
			if res.IsTruthy() {
				return fmt.Errorf("isArray({length:0}) must be false")
			}
			return nil
		}},
		{"of/single-numeric-element", func(v *vm.VM) error {
			arr, err := callArrayStatic(v, "of", vm.NumberValue(7))
			if err != nil {
				return err
			}
			if err := expectLength(arr, 1); err != nil {
				return err
			}
			return expectElement(arr, 0, vm.NumberValue(7))
		}},
		{"species/returns-receiver", func(v *vm.VM) error {
			ctor, _ := v.GetGlobal("Array")
			getter, _, ok := ctor.AsNativeFunctionWithProps().Properties.GetOwnSymbolAccessor(v.SymbolSpecies)
			if !ok {
				return fmt.Errorf("Array must expose a @@species accessor")
			}
			got, err := v.Call(getter, ctor, nil)
			if err != nil {
				return err
			}
			if !got.Is(ctor) {
				return fmt.Errorf("species getter must return the receiver unchanged")
			}
			return nil
		}},
		{"from/reentrant-mapfn", func(v *vm.VM) error {
			// A mapping function that itself calls Array.from must not
			// corrupt the outer iteration.
			mapFn := vm.NewNativeFunction(2, false, "mapFn", func(args []vm.Value) (vm.Value, error) {
				return callArrayStatic(v, "from", vm.NewString("xy"))
			})
			arr, err := callArrayStatic(v, "from", vm.NewString("ab"), mapFn)
			if err != nil {
				return err
			}
			if err := expectLength(arr, 2); err != nil {
				return err
			}
			inner := arr.AsArray().Get(0)
			if !inner.IsArray() {
				return fmt.Errorf("mapped element must be the inner array")
			}
			return expectLength(inner, 2)
		}},
	}
}

func constructArray(v *vm.VM, args ...vm.Value) (vm.Value, error) {
	ctor, ok := v.GetGlobal("Array")
	if !ok {
		return vm.Undefined, fmt.Errorf("Array constructor not installed")
	}
	return v.Construct(ctor, args)
}

func callArrayStaticRaw(v *vm.VM, name string, args ...vm.Value) (vm.Value, error) {
	ctor, ok := v.GetGlobal("Array")
	if !ok {
		return vm.Undefined, fmt.Errorf("Array constructor not installed")
	}
	method, err := v.GetProperty(ctor, name)
	if err != nil {
		return vm.Undefined, err
	}
	return v.Call(method, ctor, args)
}

func callArrayStatic(v *vm.VM, name string, args ...vm.Value) (vm.Value, error) {
	res, err := callArrayStaticRaw(v, name, args...)
	if err != nil {
		return vm.Undefined, err
	}
	if !res.IsArray() {
		return vm.Undefined, fmt.Errorf("Array.%s did not return an array", name)
	}
	return res, nil
}

func expectLength(arr vm.Value, want int) error {
	if got := arr.AsArray().Length(); got != want {
		return fmt.Errorf("length = %d, want %d", got, want)
	}
	return nil
}

func expectElement(arr vm.Value, index int, want vm.Value) error {
	got := arr.AsArray().Get(index)
	if !got.Is(want) {
		return fmt.Errorf("element %d = %s, want %s", index, got.ToString(), want.ToString())
	}
	return nil
}

func expectErrorKind(err error, kind string) error {
	if err == nil {
		return fmt.Errorf("expected a %s completion, got normal completion", kind)
	}
	if got := vm.ErrorKindName(err); got != kind {
		return fmt.Errorf("expected a %s completion, got %s (%v)", kind, got, err)
	}
	return nil
}

// makeCountingIterable builds an iterable over the given values whose
// iterator counts invocations of its return method.
func makeCountingIterable(v *vm.VM, values []vm.Value, closeCalls *int) vm.Value {
	obj := vm.NewObject(v.ObjectPrototype).AsPlainObject()
	obj.SetOwnSymbol(v.SymbolIterator, vm.NewNativeFunction(0, false, "[Symbol.iterator]", func(args []vm.Value) (vm.Value, error) {
		index := 0
		iterator := vm.NewObject(v.IteratorPrototype).AsPlainObject()
		iterator.SetOwnNonEnumerable("next", vm.NewNativeFunction(0, false, "next", func(args []vm.Value) (vm.Value, error) {
			result := vm.NewObject(v.ObjectPrototype).AsPlainObject()
			if index >= len(values) {
				result.SetOwn("done", vm.True)
				result.SetOwn("value", vm.Undefined)
			} else {
				result.SetOwn("done", vm.False)
				result.SetOwn("value", values[index])
				index++
			}
			return vm.NewValueFromPlainObject(result), nil
		}))
		iterator.SetOwnNonEnumerable("return", vm.NewNativeFunction(0, false, "return", func(args []vm.Value) (vm.Value, error) {
			*closeCalls++
			result := vm.NewObject(v.ObjectPrototype).AsPlainObject()
			result.SetOwn("done", vm.True)
			result.SetOwn("value", vm.Undefined)
			return vm.NewValueFromPlainObject(result), nil
		}))
		return vm.NewValueFromPlainObject(iterator), nil
	}))
	return vm.NewValueFromPlainObject(obj)
}
