package interp

import (
	"fmt"
	"time"
)

// TypeDescriptor is the runtime value returned by `type()`: an opaque
// handle identifying one of JAPL's built-in runtime categories. Two
// descriptors are `==` exactly when they name the same category, which is
// what makes `type(x) == type(y)` a meaningful identity check.
type TypeDescriptor struct {
	name string
}

func (t *TypeDescriptor) String() string { return "<type '" + t.name + "'>" }

var (
	typeNil      = &TypeDescriptor{name: "nil"}
	typeBool     = &TypeDescriptor{name: "bool"}
	typeNumber   = &TypeDescriptor{name: "number"}
	typeString   = &TypeDescriptor{name: "string"}
	typeFunction = &TypeDescriptor{name: "function"}
	typeClass    = &TypeDescriptor{name: "class"}
	typeInstance = &TypeDescriptor{name: "instance"}
)

// typeOf maps a runtime value to its TypeDescriptor.
func typeOf(value interface{}) *TypeDescriptor {
	switch value.(type) {
	case nil:
		return typeNil
	case bool:
		return typeBool
	case float64:
		return typeNumber
	case string:
		return typeString
	case *Class:
		return typeClass
	case *Instance:
		return typeInstance
	default:
		return typeFunction
	}
}

// nativeFn adapts a Go closure to Callable, for the fixed-arity intrinsics
// registered as globals.
type nativeFn struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []interface{}) (interface{}, error)
}

func (n *nativeFn) Arity() int { return n.arity }

func (n *nativeFn) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	return n.fn(in, args)
}

func (n *nativeFn) String() string { return fmt.Sprintf("<built-in function %s>", n.name) }

// defineNatives registers JAPL's intrinsic globals: clock, type, truthy,
// stringify, print, isinstance, issubclass, issuperclass.
func defineNatives(globals *Environment) {
	globals.Define("clock", &nativeFn{
		name: "clock", arity: 0,
		fn: func(_ *Interpreter, _ []interface{}) (interface{}, error) {
			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		},
	})

	globals.Define("type", &nativeFn{
		name: "type", arity: 1,
		fn: func(_ *Interpreter, args []interface{}) (interface{}, error) {
			return typeOf(args[0]), nil
		},
	})

	globals.Define("truthy", &nativeFn{
		name: "truthy", arity: 1,
		fn: func(_ *Interpreter, args []interface{}) (interface{}, error) {
			return isTruthy(args[0]), nil
		},
	})

	globals.Define("stringify", &nativeFn{
		name: "stringify", arity: 1,
		fn: func(_ *Interpreter, args []interface{}) (interface{}, error) {
			return stringify(args[0]), nil
		},
	})

	globals.Define("print", &nativeFn{
		name: "print", arity: 1,
		fn: func(in *Interpreter, args []interface{}) (interface{}, error) {
			fmt.Fprintln(in.output, stringify(args[0]))
			return nil, nil
		},
	})

	globals.Define("isinstance", &nativeFn{
		name: "isinstance", arity: 2,
		fn: func(_ *Interpreter, args []interface{}) (interface{}, error) {
			instance, ok := args[0].(*Instance)
			if !ok {
				return false, nil
			}
			class, ok := args[1].(*Class)
			if !ok {
				return false, nil
			}
			return instance.class == class, nil
		},
	})

	globals.Define("issubclass", &nativeFn{
		name: "issubclass", arity: 2,
		fn: func(_ *Interpreter, args []interface{}) (interface{}, error) {
			first, ok := args[0].(*Class)
			if !ok {
				return false, nil
			}
			second, ok := args[1].(*Class)
			if !ok {
				return false, nil
			}
			return first.superclass == second, nil
		},
	})

	globals.Define("issuperclass", &nativeFn{
		name: "issuperclass", arity: 2,
		fn: func(_ *Interpreter, args []interface{}) (interface{}, error) {
			first, ok := args[0].(*Class)
			if !ok {
				return false, nil
			}
			second, ok := args[1].(*Class)
			if !ok {
				return false, nil
			}
			return second.superclass == first, nil
		},
	})
}

// isTruthy implements JAPL's truthiness rule: nil and false are falsy,
// every other value (including 0 and "") is truthy.
func isTruthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

// stringify renders a runtime value the way `print` and the REPL display
// it: integer-valued floats drop their trailing ".0".
func stringify(value interface{}) string {
	if value == nil {
		return "nil"
	}
	switch v := value.(type) {
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
