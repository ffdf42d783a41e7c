package ops

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

// Concat infers (X0, X1, ...) -> concatenation along arg Dict{axis: int};
// every input shares rank, dtype, and every axis but the concatenation axis.
var Concat oplib.Op = oplib.OpFunc(inferConcat)

func inferConcat(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if len(inputs) < 1 {
		return nil, oplib.NewShapeError("concat: at least 1 input required, got 0")
	}

	d, err := dictArg("concat", arg, "axis")
	if err != nil {
		return nil, err
	}

	axis, err := dictInt("concat", d, "axis", true, 0)
	if err != nil {
		return nil, err
	}

	first := inputs[0]

	if axis < 0 || int(axis) >= first.Shape.Rank() {
		return nil, oplib.NewArgError("concat: axis %d out of range for rank %d", axis, first.Shape.Rank())
	}

	total := dim.Int(0)
	allConcrete := true

	for i, x := range inputs {
		if err := requireSameDType("concat", first, x); err != nil {
			return nil, err
		}

		if x.Shape.Rank() != first.Shape.Rank() {
			return nil, oplib.NewShapeError("concat: input %d rank %d does not match input 0 rank %d", i, x.Shape.Rank(), first.Shape.Rank())
		}

		for j := 0; j < first.Shape.Rank(); j++ {
			if j == int(axis) {
				continue
			}

			if _, err := unifyDim("concat", j, first.Shape[j], x.Shape[j]); err != nil {
				return nil, err
			}
		}

		ax := x.Shape[axis]
		if ax.IsSymbol() {
			allConcrete = false
			continue
		}

		if allConcrete {
			total = dim.Int(total.Value() + ax.Value())
		}
	}

	out := first.Shape.Clone()

	if allConcrete {
		out[axis] = total
	} else {
		out[axis] = dim.Sym("concat_axis")
	}

	return []tensormeta.TensorMeta{tensormeta.New(first.DType, out)}, nil
}

// BroadcastTo implements (X) -> arg Dict{shape: Arr[int]}: broadcasts X's
// shape to the target shape, following the same trailing-axis, size-1-only
// broadcasting rule as the element-wise binary ops.
var BroadcastTo oplib.Op = oplib.OpFunc(inferBroadcastTo)

func inferBroadcastTo(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireInputCount("broadcast_to", inputs, 1); err != nil {
		return nil, err
	}

	d, err := dictArg("broadcast_to", arg, "shape")
	if err != nil {
		return nil, err
	}

	target, err := dictInts("broadcast_to", d, "shape", true)
	if err != nil {
		return nil, err
	}

	x := inputs[0]

	if len(target) < x.Shape.Rank() {
		return nil, oplib.NewShapeError("broadcast_to: target rank %d is smaller than input rank %d", len(target), x.Shape.Rank())
	}

	targetShape := tensormeta.FromInts(target...)

	out, err := broadcastShapes("broadcast_to", x.Shape, targetShape)
	if err != nil {
		return nil, err
	}

	if !out.Equal(targetShape) {
		return nil, oplib.NewShapeMismatch("broadcast_to: input %s is not broadcastable to %s", x.Shape, targetShape)
	}

	return []tensormeta.TensorMeta{tensormeta.New(x.DType, out)}, nil
}
