package interp

// Class is a runtime class value: a method table plus an optional
// superclass, itself callable as a constructor that produces an Instance.
type Class struct {
	Name       string
	superclass *Class
	methods    map[string]*Function
}

func newClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, superclass: superclass, methods: methods}
}

// FindMethod looks up a method by name, walking the superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if fn, ok := c.methods[name]; ok {
		return fn, true
	}
	if c.superclass != nil {
		return c.superclass.FindMethod(name)
	}
	return nil, false
}

func (c *Class) Arity() int {
	if initializer, ok := c.FindMethod("init"); ok {
		return initializer.Arity()
	}
	return 0
}

func (c *Class) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	instance := newInstance(c)
	if initializer, ok := c.FindMethod("init"); ok {
		if _, err := initializer.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) String() string {
	return c.Name
}
