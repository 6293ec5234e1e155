package session

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkampitakis/go-snaps/snaps"
)

func run(t *testing.T, source string) (string, *Session) {
	t.Helper()
	var buf bytes.Buffer
	s := New(&buf, false)
	s.Run(source)
	return buf.String(), s
}

func TestClosureCapturesDefiningScope(t *testing.T) {
	out, s := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				print(count);
			}
			return increment;
		}
		var counter = makeCounter();
		counter();
		counter();
		counter();
	`)
	require.False(t, s.Reporter().HadError())
	require.False(t, s.Reporter().HadRuntimeError())
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInheritanceAndSuper(t *testing.T) {
	out, s := run(t, `
		class Greeter {
			greet() {
				return "hello";
			}
		}
		class LoudGreeter < Greeter {
			greet() {
				return super.greet() + "!";
			}
		}
		print(LoudGreeter().greet());
	`)
	require.False(t, s.Reporter().HadError())
	assert.Equal(t, "hello!\n", out)
}

func TestInitializerAlwaysReturnsInstance(t *testing.T) {
	out, s := run(t, `
		class Point {
			init(x, y) {
				this.x = x;
				this.y = y;
			}
		}
		var p = Point(1, 2);
		print(p.x);
		print(p.y);
	`)
	require.False(t, s.Reporter().HadError())
	assert.Equal(t, "1\n2\n", out)
}

func TestForLoopDesugaring(t *testing.T) {
	out, s := run(t, `
		var sum = 0;
		for (var i = 1; i <= 5; i = i + 1) {
			sum = sum + i;
		}
		print(sum);
	`)
	require.False(t, s.Reporter().HadError())
	assert.Equal(t, "15\n", out)
}

func TestBreakExitsInnermostLoop(t *testing.T) {
	out, s := run(t, `
		var last = 0;
		for (var i = 0; i < 10; i = i + 1) {
			if (i == 3) {
				break;
			}
			last = i;
		}
		print(last);
	`)
	require.False(t, s.Reporter().HadError())
	assert.Equal(t, "2\n", out)
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	_, s := run(t, `print(1 / 0);`)
	assert.True(t, s.Reporter().HadRuntimeError())
}

func TestModuloFollowsDivisorSign(t *testing.T) {
	out, s := run(t, `print(-1 % 4);`)
	require.False(t, s.Reporter().HadError())
	assert.Equal(t, "3\n", out)
}

func TestStringNumberConcatenation(t *testing.T) {
	out, s := run(t, `print("count: " + 5);`)
	require.False(t, s.Reporter().HadError())
	assert.Equal(t, "count: 5\n", out)
}

func TestShadowingResolvesToNearestScope(t *testing.T) {
	out, s := run(t, `
		var a = "global";
		{
			var a = "local";
			print(a);
		}
		print(a);
	`)
	require.False(t, s.Reporter().HadError())
	assert.Equal(t, "local\nglobal\n", out)
}

func TestSelfInitializationIsStaticError(t *testing.T) {
	_, s := run(t, `{ var a = a; }`)
	assert.True(t, s.Reporter().HadError())
	assert.False(t, s.Reporter().HadRuntimeError())
}

func TestDelRemovesBindingFromCurrentScopeOutward(t *testing.T) {
	_, s := run(t, `
		var a = 1;
		del a;
		print(a);
	`)
	assert.True(t, s.Reporter().HadRuntimeError())
}

func TestReplEchoesBareExpressionButNotAssignmentOrCall(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, true)
	s.Run(`1 + 2;`)
	s.Run(`var a = 1;`)
	s.Run(`a = 5;`)
	s.Run(`fun f() { return 1; } f();`)
	assert.Equal(t, "3\n", buf.String())
}

func TestIsSubclassAndIsSuperclassCheckDirectParentOnly(t *testing.T) {
	out, s := run(t, `
		class Base {}
		class Mid < Base {}
		class Leaf < Mid {}
		print(issubclass(Mid, Base));
		print(issubclass(Leaf, Base));
		print(issuperclass(Base, Mid));
	`)
	require.False(t, s.Reporter().HadError())
	assert.Equal(t, "true\nfalse\ntrue\n", out)
}

func TestIsInstanceChecksExactClass(t *testing.T) {
	out, s := run(t, `
		class Animal {}
		class Dog < Animal {}
		var d = Dog();
		print(isinstance(d, Dog));
		print(isinstance(d, Animal));
	`)
	require.False(t, s.Reporter().HadError())
	assert.Equal(t, "true\nfalse\n", out)
}

func TestClassMethodsAndTypeSnapshot(t *testing.T) {
	out, s := run(t, `
		class Counter {
			init() {
				this.n = 0;
			}
			next() {
				this.n = this.n + 1;
				return this.n;
			}
		}
		var c = Counter();
		print(c.next());
		print(c.next());
		print(type(c));
		print(type(1));
		print(type("s"));
	`)
	require.False(t, s.Reporter().HadError())
	snaps.MatchSnapshot(t, out)
}
