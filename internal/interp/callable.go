package interp

// Callable is implemented by every JAPL value that can appear on the left
// of a call expression: user-defined functions, classes (as constructors),
// and native intrinsics.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []interface{}) (interface{}, error)
}
