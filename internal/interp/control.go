package interp

// breakSignal unwinds exactly one enclosing While loop. It is carried
// through the same (interface{}, error) channel every Visit method uses,
// but is never handed to a Reporter — loop execution intercepts it.
type breakSignal struct{}

func (breakSignal) Error() string { return "break" }

// returnSignal unwinds to the active function call boundary, carrying the
// function's result (nil for a bare `return;`).
type returnSignal struct {
	Value interface{}
}

func (returnSignal) Error() string { return "return" }
