// Package dim provides symbolic tensor dimensions: a Dim is either a concrete
// non-negative integer or a named symbol, and two Dims unify when either side
// is symbolic or both integers are equal. A shape is an ordered sequence of
// Dims; rank is fixed per tensor.
package dim

import "fmt"

// Dim is either a concrete non-negative integer or a symbolic name.
// The zero value is the concrete dimension 0.
type Dim struct {
	symbol string
	value  int
	isSym  bool
}

// Int creates a concrete Dim. It panics on a negative value; shapes never
// carry negative extents.
func Int(v int) Dim {
	if v < 0 {
		panic(fmt.Sprintf("dim: negative concrete dimension %d", v))
	}

	return Dim{value: v}
}

// Sym creates a symbolic Dim with the given name.
func Sym(name string) Dim {
	if name == "" {
		panic("dim: symbol name cannot be empty")
	}

	return Dim{symbol: name, isSym: true}
}

// IsSymbol reports whether d is symbolic.
func (d Dim) IsSymbol() bool {
	return d.isSym
}

// Symbol returns the symbol name; it panics if d is concrete.
func (d Dim) Symbol() string {
	if !d.isSym {
		panic("dim: Symbol called on a concrete dimension")
	}

	return d.symbol
}

// Value returns the concrete integer value; it panics if d is symbolic.
func (d Dim) Value() int {
	if d.isSym {
		panic("dim: Value called on a symbolic dimension")
	}

	return d.value
}

// String renders the dim as either its integer or its symbol name.
func (d Dim) String() string {
	if d.isSym {
		return d.symbol
	}

	return fmt.Sprintf("%d", d.value)
}

// Equal reports structural equality: same concrete value, or same symbol name.
// A symbolic dim is never Equal to a concrete one, even if they could unify.
func (d Dim) Equal(o Dim) bool {
	if d.isSym != o.isSym {
		return false
	}

	if d.isSym {
		return d.symbol == o.symbol
	}

	return d.value == o.value
}

// Unify resolves two Dims that must describe the same extent: integer vs
// integer must be equal; integer vs symbol resolves to the integer; symbol vs
// symbol with identical names unifies to that symbol; distinct symbols never
// unify (there is no cross-symbol solver).
func Unify(a, b Dim) (Dim, bool) {
	switch {
	case !a.isSym && !b.isSym:
		if a.value == b.value {
			return a, true
		}

		return Dim{}, false
	case !a.isSym && b.isSym:
		return a, true
	case a.isSym && !b.isSym:
		return b, true
	default: // both symbolic
		if a.symbol == b.symbol {
			return a, true
		}

		return Dim{}, false
	}
}
