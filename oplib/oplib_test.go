package oplib

import (
	"testing"

	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/tensormeta"
)

func identityOp(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if !arg.IsNone() {
		return nil, NewArgError("identityOp takes no argument")
	}

	return inputs, nil
}

func TestRegisterAndLookup(t *testing.T) {
	lib := NewLibrary()
	lib.Register("rearrange", OpFunc(identityOp))

	op, ok := lib.Lookup("rearrange")
	if !ok {
		t.Fatal("expected rearrange to be registered")
	}

	out, err := op.Infer([]tensormeta.TensorMeta{}, argval.None)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}

	if len(out) != 0 {
		t.Fatalf("got %v", out)
	}
}

func TestLookupMissing(t *testing.T) {
	lib := NewLibrary()
	if _, ok := lib.Lookup("nope"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestDoubleRegisterPanics(t *testing.T) {
	lib := NewLibrary()
	lib.Register("rearrange", OpFunc(identityOp))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()

	lib.Register("rearrange", OpFunc(identityOp))
}

func TestOpErrorKindString(t *testing.T) {
	cases := []Kind{KindArgError, KindShapeError, KindShapeMismatch, KindDTypeMismatch}
	for _, k := range cases {
		if k.String() == "UnknownKind" {
			t.Errorf("kind %d should stringify", k)
		}
	}
}
