package ops

import (
	"testing"

	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/dtype"
	"github.com/zerfoo/symgraph/tensormeta"
)

func TestRMSNormNoBeta(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(7), dim.Int(128)})
	gamma := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(128)})

	out, err := inferNorm("rmsnorm")([]tensormeta.TensorMeta{x, gamma}, argval.None)
	if err != nil {
		t.Fatalf("inferNorm: %v", err)
	}

	if !out[0].Equal(x) {
		t.Fatalf("got %s, want %s", out[0], x)
	}
}

func TestLayerNormWithBetaAndEpsilon(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(2), dim.Int(64)})
	gamma := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(64)})
	beta := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(64)})
	arg := argval.NewDict(argval.KV("epsilon", argval.Float(1e-5)))

	out, err := inferNorm("layernorm")([]tensormeta.TensorMeta{x, gamma, beta}, arg)
	if err != nil {
		t.Fatalf("inferNorm: %v", err)
	}

	if !out[0].Equal(x) {
		t.Fatalf("got %s, want %s", out[0], x)
	}
}

func TestNormGammaDimMismatch(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(7), dim.Int(128)})
	gamma := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(64)})

	if _, err := inferNorm("rmsnorm")([]tensormeta.TensorMeta{x, gamma}, argval.None); err == nil {
		t.Fatal("expected ShapeMismatch")
	}
}

func TestNormUnknownArgKeyRejected(t *testing.T) {
	x := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(7), dim.Int(128)})
	gamma := tensormeta.New(dtype.F32, tensormeta.Shape{dim.Int(128)})
	arg := argval.NewDict(argval.KV("momentum", argval.Float(0.1)))

	if _, err := inferNorm("rmsnorm")([]tensormeta.TensorMeta{x, gamma}, arg); err == nil {
		t.Fatal("expected ArgError for unknown key")
	}
}
