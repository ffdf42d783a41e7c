package ops

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

// Gather infers (Params:[V,...], Indices:[N]) -> [N,...]: the indexed rows
// of Params, one per entry of Indices, with arbitrary trailing shape.
var Gather oplib.Op = oplib.OpFunc(inferGather)

func inferGather(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireNoArg(arg); err != nil {
		return nil, err
	}

	if err := requireInputCount("gather", inputs, 2); err != nil {
		return nil, err
	}

	params, indices := inputs[0], inputs[1]

	if params.Shape.Rank() < 1 {
		return nil, oplib.NewShapeError("gather: params must have rank >= 1, got %s", params.Shape)
	}

	if err := requireRank("gather", indices, 1); err != nil {
		return nil, err
	}

	out := make(tensormeta.Shape, 0, params.Shape.Rank())
	out = append(out, indices.Shape[0])
	out = append(out, params.Shape[1:]...)

	return []tensormeta.TensorMeta{tensormeta.New(params.DType, out)}, nil
}

// ReduceSum takes arg Dict{axes: Arr[int], keepdims: Bool} and sums the
// given axes, either collapsing them (keepdims=false, default) or leaving
// them as size-1 axes (keepdims=true).
var ReduceSum oplib.Op = oplib.OpFunc(inferReduceSum)

func inferReduceSum(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireInputCount("reducesum", inputs, 1); err != nil {
		return nil, err
	}

	x := inputs[0]

	d, err := dictArg("reducesum", arg, "axes", "keepdims")
	if err != nil {
		return nil, err
	}

	axes, err := dictInts("reducesum", d, "axes", true)
	if err != nil {
		return nil, err
	}

	keepDims := false

	if kd, ok, _ := d.DictGet("keepdims"); ok {
		keepDims, err = kd.AsBool()
		if err != nil {
			return nil, oplib.NewArgError("reducesum: keepdims: %v", err)
		}
	}

	reduced := make(map[int]bool, len(axes))

	for _, a := range axes {
		if a < 0 || a >= x.Shape.Rank() {
			return nil, oplib.NewArgError("reducesum: axis %d out of range for rank %d", a, x.Shape.Rank())
		}

		reduced[a] = true
	}

	out := make(tensormeta.Shape, 0, x.Shape.Rank())

	for i, dm := range x.Shape {
		if !reduced[i] {
			out = append(out, dm)
			continue
		}

		if keepDims {
			out = append(out, dim.Int(1))
		}
	}

	return []tensormeta.TensorMeta{tensormeta.New(x.DType, out)}, nil
}
