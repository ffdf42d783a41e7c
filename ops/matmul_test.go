package ops

import (
	"testing"

	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/dtype"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

func TestMatMulBasic(t *testing.T) {
	a := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(3), dim.Int(4)})
	b := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(4), dim.Int(5)})

	out, err := inferMatMul([]tensormeta.TensorMeta{a, b}, argval.None)
	if err != nil {
		t.Fatalf("inferMatMul: %v", err)
	}

	want := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(3), dim.Int(5)})
	if !out[0].Equal(want) {
		t.Fatalf("got %s, want %s", out[0], want)
	}
}

func TestMatMulSymbolicK(t *testing.T) {
	a := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Sym("m"), dim.Sym("k")})
	b := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(4), dim.Int(5)})

	out, err := inferMatMul([]tensormeta.TensorMeta{a, b}, argval.None)
	if err != nil {
		t.Fatalf("inferMatMul: %v", err)
	}

	want := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Sym("m"), dim.Int(5)})
	if !out[0].Equal(want) {
		t.Fatalf("got %s, want %s", out[0], want)
	}
}

func TestMatMulKMismatch(t *testing.T) {
	a := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(3)})
	b := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(4), dim.Int(5)})

	_, err := inferMatMul([]tensormeta.TensorMeta{a, b}, argval.None)
	if err == nil {
		t.Fatal("expected error")
	}

	var opErr *oplib.OpError
	if !castOpError(err, &opErr) || opErr.Kind != oplib.KindShapeMismatch {
		t.Fatalf("expected ShapeMismatch, got %v", err)
	}
}

func TestMatMulRankTooLow(t *testing.T) {
	a := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(4)})
	b := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(4), dim.Int(5)})

	if _, err := inferMatMul([]tensormeta.TensorMeta{a, b}, argval.None); err == nil {
		t.Fatal("expected error for rank < 2")
	}
}

func TestMatMulBRankMismatch(t *testing.T) {
	a := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(4)})
	b := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(1), dim.Int(4), dim.Int(5)})

	if _, err := inferMatMul([]tensormeta.TensorMeta{a, b}, argval.None); err == nil {
		t.Fatal("expected ShapeError for B rank != 2")
	}
}

func TestMatMulRejectsArg(t *testing.T) {
	a := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(4)})
	b := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(4), dim.Int(5)})

	if _, err := inferMatMul([]tensormeta.TensorMeta{a, b}, argval.Int(1)); err == nil {
		t.Fatal("expected ArgError")
	}
}

func castOpError(err error, out **oplib.OpError) bool {
	oe, ok := err.(*oplib.OpError)
	if !ok {
		return false
	}

	*out = oe

	return true
}
