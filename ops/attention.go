package ops

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

// Attention infers (Q:[N,H,Dh], K:[L,Hk,Dh], V:[L,Hk,Dh]) with an optional
// mask arg -> [N,H,Dh]. The head-dim axis Dh must agree across all three and
// the head counts obey the grouped-query ratio H % Hk == 0.
var Attention oplib.Op = oplib.OpFunc(inferAttention)

func inferAttention(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireInputCount("attention", inputs, 3); err != nil {
		return nil, err
	}

	if !arg.IsNone() {
		if _, err := dictArg("attention", arg, "mask"); err != nil {
			return nil, err
		}
	}

	q, k, v := inputs[0], inputs[1], inputs[2]

	if err := requireRank("attention", q, 3); err != nil {
		return nil, err
	}

	if err := requireRank("attention", k, 3); err != nil {
		return nil, err
	}

	if err := requireRank("attention", v, 3); err != nil {
		return nil, err
	}

	if err := requireSameDType("attention", q, k); err != nil {
		return nil, err
	}

	if err := requireSameDType("attention", q, v); err != nil {
		return nil, err
	}

	dh, err := unifyDim("attention", 2, q.Shape[2], k.Shape[2])
	if err != nil {
		return nil, err
	}

	if _, err := unifyDim("attention", 2, dh, v.Shape[2]); err != nil {
		return nil, err
	}

	if _, err := unifyDim("attention", 0, k.Shape[0], v.Shape[0]); err != nil {
		return nil, err
	}

	hk, err := unifyDim("attention", 1, k.Shape[1], v.Shape[1])
	if err != nil {
		return nil, err
	}

	h := q.Shape[1]

	if !h.IsSymbol() && !hk.IsSymbol() {
		if hk.Value() == 0 || h.Value()%hk.Value() != 0 {
			return nil, oplib.NewShapeMismatch("attention: head count %d is not a multiple of kv head count %d", h.Value(), hk.Value())
		}
	}

	n := q.Shape[0]

	return []tensormeta.TensorMeta{
		tensormeta.New(q.DType, tensormeta.Shape{n, h, dh}),
	}, nil
}
