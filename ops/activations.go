package ops

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

// Gelu, Sigmoid, Relu, and Tanh are the unary, shape-preserving activations:
// (X) -> same meta, no argument.
var (
	Gelu    oplib.Op = oplib.OpFunc(inferUnaryActivation("gelu"))
	Sigmoid oplib.Op = oplib.OpFunc(inferUnaryActivation("sigmoid"))
	Relu    oplib.Op = oplib.OpFunc(inferUnaryActivation("relu"))
	Tanh    oplib.Op = oplib.OpFunc(inferUnaryActivation("tanh"))
)

func inferUnaryActivation(name string) func([]tensormeta.TensorMeta, argval.Arg) ([]tensormeta.TensorMeta, error) {
	return func(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
		if err := requireNoArg(arg); err != nil {
			return nil, err
		}

		if err := requireInputCount(name, inputs, 1); err != nil {
			return nil, err
		}

		x := inputs[0]

		return []tensormeta.TensorMeta{tensormeta.New(x.DType, x.Shape.Clone())}, nil
	}
}

// SwiGLU infers (X:[...,2*D]) -> [...,D]: the input's last axis must be even
// and is halved, the gate half multiplying the up half.
var SwiGLU oplib.Op = oplib.OpFunc(inferSwiGLU)

func inferSwiGLU(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireNoArg(arg); err != nil {
		return nil, err
	}

	if err := requireInputCount("swiglu", inputs, 1); err != nil {
		return nil, err
	}

	x := inputs[0]

	if x.Shape.Rank() < 1 {
		return nil, oplib.NewShapeError("swiglu: input must have rank >= 1, got %s", x.Shape)
	}

	last := x.Shape[x.Shape.Rank()-1]

	if last.IsSymbol() {
		return nil, oplib.NewShapeError("swiglu: last axis must be concrete to check evenness, got %s", last)
	}

	if last.Value()%2 != 0 {
		return nil, oplib.NewShapeError("swiglu: last axis %d must be even", last.Value())
	}

	out := x.Shape.Clone()
	out[len(out)-1] = dim.Int(last.Value() / 2)

	return []tensormeta.TensorMeta{tensormeta.New(x.DType, out)}, nil
}
