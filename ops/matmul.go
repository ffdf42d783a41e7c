package ops

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

// MatMul infers (A:[...,M,K], B:[K,N]) -> [...,M,N], with broadcasting on
// A's leading dims and dtype promoted to A's dtype; K must unify.
var MatMul oplib.Op = oplib.OpFunc(inferMatMul)

func inferMatMul(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireNoArg(arg); err != nil {
		return nil, err
	}

	if err := requireInputCount("matmul", inputs, 2); err != nil {
		return nil, err
	}

	a, b := inputs[0], inputs[1]

	if a.Shape.Rank() < 2 {
		return nil, oplib.NewShapeError("matmul: A must have rank >= 2, got %s", a.Shape)
	}

	if err := requireRank("matmul", b, 2); err != nil {
		return nil, err
	}

	if _, err := unifyDim("matmul", a.Shape.Rank()-1, a.Shape[a.Shape.Rank()-1], b.Shape[0]); err != nil {
		return nil, err
	}

	// M (the second-to-last axis of A) is carried through unchanged; only
	// the trailing axis is replaced by B's output width.
	out := a.Shape.Clone()
	out[len(out)-1] = b.Shape[1]

	return []tensormeta.TensorMeta{tensormeta.New(a.DType, out)}, nil
}
