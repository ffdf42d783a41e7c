package ops

import (
	"testing"

	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/dtype"
	"github.com/zerfoo/symgraph/tensormeta"
)

func TestAttentionGQA(t *testing.T) {
	q := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(11), dim.Int(64), dim.Int(128)})
	k := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(11), dim.Int(8), dim.Int(128)})
	v := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(11), dim.Int(8), dim.Int(128)})

	out, err := inferAttention([]tensormeta.TensorMeta{q, k, v}, argval.None)
	if err != nil {
		t.Fatalf("inferAttention: %v", err)
	}

	want := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(11), dim.Int(64), dim.Int(128)})
	if !out[0].Equal(want) {
		t.Fatalf("got %s, want %s", out[0], want)
	}
}

func TestAttentionWithMaskArg(t *testing.T) {
	q := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(11), dim.Int(8), dim.Int(128)})
	k := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(11), dim.Int(8), dim.Int(128)})
	v := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(11), dim.Int(8), dim.Int(128)})
	arg := argval.NewDict(argval.KV("mask", argval.Str("causal")))

	if _, err := inferAttention([]tensormeta.TensorMeta{q, k, v}, arg); err != nil {
		t.Fatalf("inferAttention: %v", err)
	}
}

func TestAttentionGroupRatioRejected(t *testing.T) {
	q := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(11), dim.Int(65), dim.Int(128)})
	k := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(11), dim.Int(8), dim.Int(128)})
	v := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(11), dim.Int(8), dim.Int(128)})

	if _, err := inferAttention([]tensormeta.TensorMeta{q, k, v}, argval.None); err == nil {
		t.Fatal("expected ShapeMismatch for non-integer head-group ratio")
	}
}

func TestAttentionHeadDimMismatch(t *testing.T) {
	q := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(11), dim.Int(8), dim.Int(128)})
	k := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(11), dim.Int(8), dim.Int(64)})
	v := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(11), dim.Int(8), dim.Int(64)})

	if _, err := inferAttention([]tensormeta.TensorMeta{q, k, v}, argval.None); err == nil {
		t.Fatal("expected ShapeMismatch for head dim")
	}
}
