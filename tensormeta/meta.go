// Package tensormeta provides Shape and TensorMeta, the structural tensor
// metadata that flows along every edge of a symgraph computation graph.
package tensormeta

import (
	"fmt"
	"strings"

	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/dtype"
)

// Shape is an ordered sequence of dimensions. Rank is len(Shape).
type Shape []dim.Dim

// Rank returns the number of axes.
func (s Shape) Rank() int {
	return len(s)
}

// Equal reports structural equality, dim by dim.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}

	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}

	return true
}

// String renders the shape as "[d0,d1,...]".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = d.String()
	}

	return "[" + strings.Join(parts, ",") + "]"
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)

	return out
}

// Ints converts a Shape to concrete integers. It fails if any dim is symbolic.
func (s Shape) Ints() ([]int, error) {
	out := make([]int, len(s))
	for i, d := range s {
		if d.IsSymbol() {
			return nil, fmt.Errorf("tensormeta: shape %s has unresolved symbol %q at axis %d", s, d.Symbol(), i)
		}

		out[i] = d.Value()
	}

	return out, nil
}

// FromInts builds a concrete Shape from plain integers.
func FromInts(vals ...int) Shape {
	out := make(Shape, len(vals))
	for i, v := range vals {
		out[i] = dim.Int(v)
	}

	return out
}

// TensorMeta is the structural description of a tensor: its dtype and shape.
// Equality is by component, through Equal. Because Shape is a slice,
// TensorMeta is not comparable with == and cannot be used as a map key.
type TensorMeta struct {
	DType dtype.DType
	Shape Shape
}

// New constructs a TensorMeta.
func New(dt dtype.DType, shape Shape) TensorMeta {
	return TensorMeta{DType: dt, Shape: shape}
}

// Equal reports whether two metas describe the same dtype and shape.
func (m TensorMeta) Equal(o TensorMeta) bool {
	return m.DType == o.DType && m.Shape.Equal(o.Shape)
}

// String renders the meta as "dtype[shape]", e.g. "f32[7,128]".
func (m TensorMeta) String() string {
	return m.DType.String() + m.Shape.String()
}

// Unify resolves two metas that describe the same edge: dtypes must match
// exactly, and shapes unify dim-by-dim via dim.Unify. It returns the unified
// meta (symbols resolved to concrete values where known) or false if either
// the dtypes differ, the ranks differ, or any dim pair fails to unify.
func Unify(a, b TensorMeta) (TensorMeta, bool) {
	if a.DType != b.DType {
		return TensorMeta{}, false
	}

	if len(a.Shape) != len(b.Shape) {
		return TensorMeta{}, false
	}

	out := make(Shape, len(a.Shape))

	for i := range a.Shape {
		d, ok := dim.Unify(a.Shape[i], b.Shape[i])
		if !ok {
			return TensorMeta{}, false
		}

		out[i] = d
	}

	return TensorMeta{DType: a.DType, Shape: out}, true
}

// Size returns the total element count of a fully concrete shape. It panics
// if any dim is symbolic; callers should resolve symbols first via Unify.
func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		if d.IsSymbol() {
			panic(fmt.Sprintf("tensormeta: Size called on shape with unresolved symbol %q", d.Symbol()))
		}

		n *= d.Value()
	}

	return n
}
