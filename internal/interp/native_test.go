package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringifyIntegerValuedFloatDropsDecimal(t *testing.T) {
	assert.Equal(t, "3", stringify(3.0))
	assert.Equal(t, "3.5", stringify(3.5))
}

func TestStringifyNilAndBool(t *testing.T) {
	assert.Equal(t, "nil", stringify(nil))
	assert.Equal(t, "true", stringify(true))
	assert.Equal(t, "false", stringify(false))
}

func TestIsTruthyRules(t *testing.T) {
	assert.False(t, isTruthy(nil))
	assert.False(t, isTruthy(false))
	assert.True(t, isTruthy(true))
	assert.True(t, isTruthy(0.0))
	assert.True(t, isTruthy(""))
}

func TestTypeOfDistinguishesCategories(t *testing.T) {
	assert.Equal(t, typeNumber, typeOf(1.0))
	assert.Equal(t, typeString, typeOf("s"))
	assert.Equal(t, typeBool, typeOf(true))
	assert.Equal(t, typeNil, typeOf(nil))
}

func TestFindMethodWalksSuperclassChain(t *testing.T) {
	base := newClass("Base", nil, map[string]*Function{"greet": nil})
	derived := newClass("Derived", base, map[string]*Function{})

	_, ok := derived.FindMethod("greet")
	assert.True(t, ok)
	_, ok = derived.FindMethod("missing")
	assert.False(t, ok)
}
