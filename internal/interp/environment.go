package interp

import (
	"fmt"

	ierrors "github.com/japl-lang/japl/internal/errors"
	"github.com/japl-lang/japl/internal/token"
)

// Environment is one lexical scope: a map of bindings plus a link to the
// enclosing scope it shadows.
type Environment struct {
	enclosing *Environment
	values    map[string]interface{}
}

// NewEnvironment creates a scope nested inside enclosing (nil for the
// global scope).
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: make(map[string]interface{})}
}

// Define binds name in this scope, overwriting any existing binding —
// redeclaration of the same name in the same scope is allowed at this layer
// (the resolver rejects it statically in non-global scopes).
func (e *Environment) Define(name string, value interface{}) {
	e.values[name] = value
}

// Get resolves name by walking outward from this scope.
func (e *Environment) Get(name *token.Token) (interface{}, error) {
	if value, ok := e.values[name.Lexeme]; ok {
		return value, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, ierrors.NewRuntimeError(name, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}

// Assign rebinds an existing name, walking outward from this scope.
func (e *Environment) Assign(name *token.Token, value interface{}) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return ierrors.NewRuntimeError(name, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}

// Delete removes a binding, always searching outward from this scope
// regardless of any resolver-computed distance — `del` is deliberately not
// depth-annotated, matching the reference interpreter's Environment.delete.
func (e *Environment) Delete(name *token.Token) error {
	if _, ok := e.values[name.Lexeme]; ok {
		delete(e.values, name.Lexeme)
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Delete(name)
	}
	return ierrors.NewRuntimeError(name, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}

// Ancestor walks exactly distance enclosing links outward.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt resolves name in the scope exactly distance links outward, as
// computed by the resolver — this is what makes closures see the binding
// that was in scope at definition time rather than whatever a same-named
// variable later shadows it with.
func (e *Environment) GetAt(distance int, name string) interface{} {
	return e.Ancestor(distance).values[name]
}

// AssignAt rebinds name in the scope exactly distance links outward.
func (e *Environment) AssignAt(distance int, name *token.Token, value interface{}) {
	e.Ancestor(distance).values[name.Lexeme] = value
}
