package interp

import "github.com/japl-lang/japl/internal/ast"

// Function is a user-declared function or bound method: its declaration
// plus the environment that was active when it was declared, which is what
// gives closures their captured variables.
type Function struct {
	declaration   *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

func newFunction(declaration *ast.FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

// Bind returns a copy of the function whose closure additionally defines
// `this` as instance, used to produce a method value from `obj.method`.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return newFunction(f.declaration, env, f.isInitializer)
}

func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

func (f *Function) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.execBlock(f.declaration.Body, env)
	if ret, ok := err.(returnSignal); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.Value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

func (f *Function) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}
