package externals

import (
	"testing"

	"github.com/zerfoo/symgraph/dtype"
	"github.com/zerfoo/symgraph/tensormeta"
	"github.com/zerfoo/zmf"
)

func TestByteLength(t *testing.T) {
	it := Item{Meta: tensormeta.New(dtype.F32, tensormeta.FromInts(32000, 128))}
	if got, want := it.ByteLength(), int64(32000*128*4); got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestFromZMFTensor(t *testing.T) {
	zt := &zmf.Tensor{
		Dtype: zmf.Tensor_FLOAT32,
		Shape: []int64{32000, 128},
		Data:  make([]byte, 32000*128*4),
	}

	it, err := FromZMFTensor("Omega.embed.wte", zt, 1024)
	if err != nil {
		t.Fatalf("FromZMFTensor: %v", err)
	}

	if it.Meta.DType != dtype.F32 {
		t.Fatalf("got dtype %v", it.Meta.DType)
	}

	ints, err := it.Meta.Shape.Ints()
	if err != nil || ints[0] != 32000 || ints[1] != 128 {
		t.Fatalf("got %v, %v", ints, err)
	}

	if it.Offset != 1024 {
		t.Fatalf("got offset %d", it.Offset)
	}
}

func TestFromZMFTensorUnsupportedDtype(t *testing.T) {
	zt := &zmf.Tensor{Dtype: zmf.Tensor_DataType(999), Shape: []int64{1}}
	if _, err := FromZMFTensor("x", zt, 0); err == nil {
		t.Fatal("expected error for unsupported dtype")
	}
}
