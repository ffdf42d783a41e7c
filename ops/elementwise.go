package ops

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

// Add, Mul, Sub, and Div share the element-wise binary rule: shapes unify
// with broadcasting, dtype must match.
var (
	Add oplib.Op = oplib.OpFunc(inferBinary("add"))
	Mul oplib.Op = oplib.OpFunc(inferBinary("mul"))
	Sub oplib.Op = oplib.OpFunc(inferBinary("sub"))
	Div oplib.Op = oplib.OpFunc(inferBinary("div"))
)

func inferBinary(name string) func([]tensormeta.TensorMeta, argval.Arg) ([]tensormeta.TensorMeta, error) {
	return func(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
		if err := requireNoArg(arg); err != nil {
			return nil, err
		}

		if err := requireInputCount(name, inputs, 2); err != nil {
			return nil, err
		}

		a, b := inputs[0], inputs[1]

		if err := requireSameDType(name, a, b); err != nil {
			return nil, err
		}

		shape, err := broadcastShapes(name, a.Shape, b.Shape)
		if err != nil {
			return nil, err
		}

		return []tensormeta.TensorMeta{tensormeta.New(a.DType, shape)}, nil
	}
}

// broadcastShapes unifies two shapes under NumPy-style trailing-axis
// broadcasting: shorter shapes are implicitly left-padded with size-1 axes,
// and a size-1 axis unifies against any extent on the other side.
func broadcastShapes(name string, a, b tensormeta.Shape) (tensormeta.Shape, error) {
	rank := len(a)
	if len(b) > rank {
		rank = len(b)
	}

	out := make(tensormeta.Shape, rank)

	for i := 0; i < rank; i++ {
		ai := axisFromRight(a, i)
		bi := axisFromRight(b, i)

		switch {
		case ai == nil:
			out[rank-1-i] = *bi
		case bi == nil:
			out[rank-1-i] = *ai
		case !ai.IsSymbol() && ai.Value() == 1:
			out[rank-1-i] = *bi
		case !bi.IsSymbol() && bi.Value() == 1:
			out[rank-1-i] = *ai
		default:
			d, err := unifyDim(name, rank-1-i, *ai, *bi)
			if err != nil {
				return nil, err
			}

			out[rank-1-i] = d
		}
	}

	return out, nil
}

func axisFromRight(s tensormeta.Shape, i int) *dim.Dim {
	idx := len(s) - 1 - i
	if idx < 0 {
		return nil
	}

	return &s[idx]
}
