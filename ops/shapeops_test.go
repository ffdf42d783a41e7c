package ops

import (
	"testing"

	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/dtype"
	"github.com/zerfoo/symgraph/tensormeta"
)

func TestRearrangeIdentity(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(3)})

	out, err := inferRearrange([]tensormeta.TensorMeta{x}, argval.None)
	if err != nil {
		t.Fatalf("inferRearrange: %v", err)
	}

	if !out[0].Equal(x) {
		t.Fatalf("got %s, want %s", out[0], x)
	}
}

func TestRearrangeRejectsArg(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2)})

	if _, err := inferRearrange([]tensormeta.TensorMeta{x}, argval.Int(1)); err == nil {
		t.Fatal("expected ArgError")
	}
}

func TestTransposePermutes(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(3), dim.Int(4)})
	arg := argval.NewDict(argval.KV("perm", argval.Ints(2, 0, 1)))

	out, err := inferTranspose([]tensormeta.TensorMeta{x}, arg)
	if err != nil {
		t.Fatalf("inferTranspose: %v", err)
	}

	want := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(4), dim.Int(2), dim.Int(3)})
	if !out[0].Equal(want) {
		t.Fatalf("got %s, want %s", out[0], want)
	}
}

func TestTransposeInvalidPerm(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(3)})
	arg := argval.NewDict(argval.KV("perm", argval.Ints(0, 0)))

	if _, err := inferTranspose([]tensormeta.TensorMeta{x}, arg); err == nil {
		t.Fatal("expected ArgError for invalid perm")
	}
}

func TestTileSplitsAxis(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(12), dim.Int(8)})
	arg := argval.NewDict(argval.KV("axis", argval.Int(0)), argval.KV("tiles", argval.Ints(3, 4)))

	out, err := inferTile([]tensormeta.TensorMeta{x}, arg)
	if err != nil {
		t.Fatalf("inferTile: %v", err)
	}

	want := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(3), dim.Int(4), dim.Int(8)})
	if !out[0].Equal(want) {
		t.Fatalf("got %s, want %s", out[0], want)
	}
}

func TestTileProductMismatch(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(12), dim.Int(8)})
	arg := argval.NewDict(argval.KV("axis", argval.Int(0)), argval.KV("tiles", argval.Ints(3, 5)))

	if _, err := inferTile([]tensormeta.TensorMeta{x}, arg); err == nil {
		t.Fatal("expected ShapeMismatch")
	}
}

func TestMergeCollapsesAxes(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(3), dim.Int(4), dim.Int(8)})
	arg := argval.NewDict(argval.KV("start", argval.Int(1)), argval.KV("len", argval.Int(2)))

	out, err := inferMerge([]tensormeta.TensorMeta{x}, arg)
	if err != nil {
		t.Fatalf("inferMerge: %v", err)
	}

	want := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(12), dim.Int(8)})
	if !out[0].Equal(want) {
		t.Fatalf("got %s, want %s", out[0], want)
	}
}

func TestMergeOutOfRange(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(3)})
	arg := argval.NewDict(argval.KV("start", argval.Int(1)), argval.KV("len", argval.Int(5)))

	if _, err := inferMerge([]tensormeta.TensorMeta{x}, arg); err == nil {
		t.Fatal("expected ArgError")
	}
}

func TestSoftmaxPreservesMeta(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(3)})

	out, err := inferSoftmax([]tensormeta.TensorMeta{x}, argval.None)
	if err != nil {
		t.Fatalf("inferSoftmax: %v", err)
	}

	if !out[0].Equal(x) {
		t.Fatalf("got %s, want %s", out[0], x)
	}
}

func TestSoftmaxAxisOutOfRange(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(3)})
	arg := argval.NewDict(argval.KV("axis", argval.Int(5)))

	if _, err := inferSoftmax([]tensormeta.TensorMeta{x}, arg); err == nil {
		t.Fatal("expected ArgError")
	}
}
