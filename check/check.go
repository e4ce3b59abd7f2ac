// Package check validates decoded values with compiled expressions.
//
// A Check wraps an expr-lang expression whose environment is the value
// under test, so struct fields are referenced by name:
//
//	chk := check.MustNew[Server]("Port > 0 && Port < 65536")
//	res := chk.Validate(srv)
//
// Validate plugs straight into codec.Validated:
//
//	codec.Validated(serverCodec, chk.Validate)
package check

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/anyform/go-anyform/result"
)

// Check is a boolean expression over values of type A, compiled once and
// safe for concurrent use.
type Check[A any] struct {
	src  string
	prog *vm.Program
}

// New compiles src against A's fields. Expressions must be bool-typed;
// non-bool expressions and references to unknown fields fail here rather
// than at Validate time.
func New[A any](src string) (*Check[A], error) {
	var env A
	prog, err := expr.Compile(src, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling check %q: %w", src, err)
	}
	return &Check[A]{src: src, prog: prog}, nil
}

// MustNew is New for package-level checks, panicking on compile errors.
func MustNew[A any](src string) *Check[A] {
	c, err := New[A](src)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate runs the check against v. Failures name the source expression
// and keep v as the partial, so callers can still recover the value.
func (c *Check[A]) Validate(v A) result.Result[A] {
	out, err := expr.Run(c.prog, v)
	if err != nil {
		return result.ErrorPartial(fmt.Sprintf("check %q: %v", c.src, err), v)
	}
	if ok, _ := out.(bool); !ok {
		return result.ErrorPartial(fmt.Sprintf("check %q failed", c.src), v)
	}
	return result.Success(v)
}

// Src reports the source expression the check was compiled from.
func (c *Check[A]) Src() string { return c.src }

func (c *Check[A]) String() string { return fmt.Sprintf("Check(%s)", c.src) }
