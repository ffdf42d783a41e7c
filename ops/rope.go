package ops

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

// RoPE infers (X:[N,H,Dh], pos:[N], sin:[C,Dh/2], cos:[C,Dh/2]) -> [N,H,Dh].
// The cos/sin tables are [contextLen, headDim/2]; headDim must be even.
var RoPE oplib.Op = oplib.OpFunc(inferRoPE)

func inferRoPE(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireNoArg(arg); err != nil {
		return nil, err
	}

	if err := requireInputCount("rope", inputs, 4); err != nil {
		return nil, err
	}

	x, pos, sin, cos := inputs[0], inputs[1], inputs[2], inputs[3]

	if err := requireRank("rope", x, 3); err != nil {
		return nil, err
	}

	if err := requireRank("rope", pos, 1); err != nil {
		return nil, err
	}

	if err := requireRank("rope", sin, 2); err != nil {
		return nil, err
	}

	if err := requireRank("rope", cos, 2); err != nil {
		return nil, err
	}

	if _, err := unifyDim("rope", 0, x.Shape[0], pos.Shape[0]); err != nil {
		return nil, err
	}

	half, err := unifyDim("rope", 1, sin.Shape[1], cos.Shape[1])
	if err != nil {
		return nil, err
	}

	if _, err := unifyDim("rope", 0, sin.Shape[0], cos.Shape[0]); err != nil {
		return nil, err
	}

	dh := x.Shape[2]
	if dh.IsSymbol() {
		return nil, oplib.NewShapeError("rope: head dim must be concrete to check evenness, got %s", dh)
	}

	if dh.Value()%2 != 0 {
		return nil, oplib.NewShapeError("rope: head dim %d must be even", dh.Value())
	}

	if _, err := unifyDim("rope", 2, half, dim.Int(dh.Value()/2)); err != nil {
		return nil, err
	}

	return []tensormeta.TensorMeta{tensormeta.New(x.DType, x.Shape.Clone())}, nil
}

// MRoPE is like RoPE, but pos is [N,2] with no arg, or [N,3] with arg
// Arr(mrope_section); any other pos width is a ShapeError. The sin/cos
// context length and half-dim must still match.
var MRoPE oplib.Op = oplib.OpFunc(inferMRoPE)

func inferMRoPE(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireInputCount("mrope", inputs, 4); err != nil {
		return nil, err
	}

	x, pos, sin, cos := inputs[0], inputs[1], inputs[2], inputs[3]

	if err := requireRank("mrope", x, 3); err != nil {
		return nil, err
	}

	if err := requireRank("mrope", sin, 2); err != nil {
		return nil, err
	}

	if err := requireRank("mrope", cos, 2); err != nil {
		return nil, err
	}

	if err := requireRank("mrope", pos, 2); err != nil {
		return nil, err
	}

	switch {
	case pos.Shape[1].IsSymbol():
		return nil, oplib.NewShapeError("mrope: pos's second axis must be concrete, got %s", pos.Shape[1])
	case pos.Shape[1].Value() == 2:
		if !arg.IsNone() {
			return nil, oplib.NewArgError("mrope: 2-axis pos takes no argument, got %s", arg.Canonical())
		}
	case pos.Shape[1].Value() == 3:
		section, err := arg.AsInts()
		if err != nil {
			return nil, oplib.NewArgError("mrope: 3-axis pos requires an Arr(mrope_section) argument: %v", err)
		}

		if len(section) != 3 {
			return nil, oplib.NewArgError("mrope: mrope_section must have 3 entries, got %d", len(section))
		}
	default:
		return nil, oplib.NewShapeError("mrope: pos's second axis must be 2 or 3, got %d", pos.Shape[1].Value())
	}

	if _, err := unifyDim("mrope", 0, x.Shape[0], pos.Shape[0]); err != nil {
		return nil, err
	}

	half, err := unifyDim("mrope", 1, sin.Shape[1], cos.Shape[1])
	if err != nil {
		return nil, err
	}

	if _, err := unifyDim("mrope", 0, sin.Shape[0], cos.Shape[0]); err != nil {
		return nil, err
	}

	dh := x.Shape[2]
	if dh.IsSymbol() {
		return nil, oplib.NewShapeError("mrope: head dim must be concrete to check evenness, got %s", dh)
	}

	if dh.Value()%2 != 0 {
		return nil, oplib.NewShapeError("mrope: head dim %d must be even", dh.Value())
	}

	if _, err := unifyDim("mrope", 2, half, dim.Int(dh.Value()/2)); err != nil {
		return nil, err
	}

	return []tensormeta.TensorMeta{tensormeta.New(x.DType, x.Shape.Clone())}, nil
}
