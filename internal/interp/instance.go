package interp

import (
	"fmt"

	ierrors "github.com/japl-lang/japl/internal/errors"
	"github.com/japl-lang/japl/internal/token"
)

// Instance is a runtime object: a class pointer plus its own field table.
type Instance struct {
	class  *Class
	fields map[string]interface{}
}

func newInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]interface{})}
}

// Get reads a field, falling back to a bound method from the class (or its
// superclass chain) if no field by that name exists.
func (inst *Instance) Get(name *token.Token) (interface{}, error) {
	if value, ok := inst.fields[name.Lexeme]; ok {
		return value, nil
	}
	if method, ok := inst.class.FindMethod(name.Lexeme); ok {
		return method.Bind(inst), nil
	}
	return nil, ierrors.NewRuntimeError(name, fmt.Sprintf("Undefined property '%s'.", name.Lexeme))
}

// Set writes a field, creating it if it does not already exist.
func (inst *Instance) Set(name *token.Token, value interface{}) {
	inst.fields[name.Lexeme] = value
}

func (inst *Instance) String() string {
	return inst.class.Name + " instance"
}
