package builtins

import (
	"kestrel/pkg/vm"
)

// ErrorInitializer implements the Error constructor and its RangeError and
// TypeError subclasses — the two error kinds the construction algorithms
// produce themselves. Everything else they throw is a propagated completion.
type ErrorInitializer struct{}

func (e *ErrorInitializer) Name() string {
	return "Error"
}

func (e *ErrorInitializer) Priority() int {
	return PriorityError
}

func (e *ErrorInitializer) InitRuntime(ctx *RuntimeContext) error {
	vmInstance := ctx.VM

	errorPrototype := vmInstance.ErrorPrototype.AsPlainObject()
	errorPrototype.SetOwnNonEnumerable("name", vm.NewString("Error"))
	errorPrototype.SetOwnNonEnumerable("message", vm.NewString(""))

	errorPrototype.SetOwnNonEnumerable("toString", vm.NewNativeFunction(0, false, "toString", func(args []vm.Value) (vm.Value, error) {
		thisValue := vmInstance.GetThis()
		name := "Error"
		message := ""
		if plainObj := thisValue.AsPlainObject(); plainObj != nil {
			if nameValue, ok := plainObj.Get("name"); ok && nameValue.IsString() {
				name = nameValue.AsString()
			}
			if messageValue, ok := plainObj.Get("message"); ok && messageValue.IsString() {
				message = messageValue.AsString()
			}
		}
		if message == "" {
			return vm.NewString(name), nil
		}
		return vm.NewString(name + ": " + message), nil
	}))

	errorCtor := e.makeErrorConstructor(vmInstance, "Error", vmInstance.ErrorPrototype)
	if err := ctx.DefineGlobal("Error", errorCtor); err != nil {
		return err
	}

	for _, name := range []string{"TypeError", "RangeError"} {
		proto := vm.NewObject(vmInstance.ErrorPrototype)
		protoObj := proto.AsPlainObject()
		protoObj.SetOwnNonEnumerable("name", vm.NewString(name))
		protoObj.SetOwnNonEnumerable("message", vm.NewString(""))
		ctor := e.makeErrorConstructor(vmInstance, name, proto)
		if err := ctx.DefineGlobal(name, ctor); err != nil {
			return err
		}
	}
	return nil
}

func (e *ErrorInitializer) makeErrorConstructor(vmInstance *vm.VM, name string, prototype vm.Value) vm.Value {
	ctor := vm.NewConstructorWithProps(1, false, name, func(args []vm.Value) (vm.Value, error) {
		instance := vm.NewObject(prototype).AsPlainObject()
		if len(args) > 0 && !args[0].IsUndefined() {
			instance.SetOwnNonEnumerable("message", vm.NewString(args[0].ToString()))
		}
		return vm.NewValueFromPlainObject(instance), nil
	})
	props := ctor.AsNativeFunctionWithProps().Properties
	props.SetOwnNonEnumerable("prototype", prototype)
	prototype.AsPlainObject().SetOwnNonEnumerable("constructor", ctor)
	return ctor
}
