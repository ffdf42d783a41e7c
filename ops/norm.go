package ops

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

// RMSNorm and LayerNorm infer (X:[...,D], gamma:[D], beta?:[D]) -> [...,D];
// the arg carries epsilon and is validated but not otherwise consulted by
// shape inference.
var (
	RMSNorm   oplib.Op = oplib.OpFunc(inferNorm("rmsnorm"))
	LayerNorm oplib.Op = oplib.OpFunc(inferNorm("layernorm"))
)

func inferNorm(name string) func([]tensormeta.TensorMeta, argval.Arg) ([]tensormeta.TensorMeta, error) {
	return func(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
		if err := requireInputCount(name, inputs, 2, 3); err != nil {
			return nil, err
		}

		if !arg.IsNone() {
			d, err := dictArg(name, arg, "epsilon")
			if err != nil {
				return nil, err
			}

			if eps, ok, _ := d.DictGet("epsilon"); ok {
				if _, err := eps.AsFloat(); err != nil {
					return nil, oplib.NewArgError("%s: epsilon: %v", name, err)
				}
			}
		}

		x, gamma := inputs[0], inputs[1]

		if x.Shape.Rank() < 1 {
			return nil, oplib.NewShapeError("%s: X must have rank >= 1, got %s", name, x.Shape)
		}

		d := x.Shape[x.Shape.Rank()-1]

		if err := requireRank(name, gamma, 1); err != nil {
			return nil, err
		}

		if _, err := unifyDim(name, 0, gamma.Shape[0], d); err != nil {
			return nil, err
		}

		if err := requireSameDType(name, x, gamma); err != nil {
			return nil, err
		}

		if len(inputs) == 3 {
			beta := inputs[2]

			if err := requireRank(name, beta, 1); err != nil {
				return nil, err
			}

			if _, err := unifyDim(name, 0, beta.Shape[0], d); err != nil {
				return nil, err
			}

			if err := requireSameDType(name, x, beta); err != nil {
				return nil, err
			}
		}

		return []tensormeta.TensorMeta{tensormeta.New(x.DType, x.Shape.Clone())}, nil
	}
}
