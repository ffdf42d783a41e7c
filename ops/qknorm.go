package ops

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

// QKNorm implements (Q, K) -> (Q', K'): independent per-tensor RMS
// normalization of Query and Key ahead of attention, requiring Q and K share
// a shape and dtype. The arg optionally carries epsilon.
var QKNorm oplib.Op = oplib.OpFunc(inferQKNorm)

func inferQKNorm(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireInputCount("qknorm", inputs, 2); err != nil {
		return nil, err
	}

	if !arg.IsNone() {
		d, err := dictArg("qknorm", arg, "epsilon")
		if err != nil {
			return nil, err
		}

		if eps, ok, _ := d.DictGet("epsilon"); ok {
			if _, err := eps.AsFloat(); err != nil {
				return nil, oplib.NewArgError("qknorm: epsilon: %v", err)
			}
		}
	}

	q, k := inputs[0], inputs[1]

	if err := requireSameDType("qknorm", q, k); err != nil {
		return nil, err
	}

	if _, err := unifyShapes("qknorm", q.Shape, k.Shape); err != nil {
		return nil, err
	}

	return []tensormeta.TensorMeta{
		tensormeta.New(q.DType, q.Shape.Clone()),
		tensormeta.New(k.DType, k.Shape.Clone()),
	}, nil
}
