// Package externals defines the opaque payload token the builder hands to
// the graph's externals_in/externals_out tables: a weight blob named as a
// byte range plus a declared dtype/shape.
//
// This package does not read or free the bytes it describes; that remains
// the weight-file reader's job. Item only carries enough to name a byte
// range inside an already-opened archive: a dtype, a shape, and a raw
// offset/length pair the weight-file reader produced.
package externals

import (
	"fmt"

	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/dtype"
	"github.com/zerfoo/symgraph/tensormeta"
	"github.com/zerfoo/zmf"
)

// Item is the opaque token passed as the `item` argument to
// builder.Context.LoadExternal / SaveExternal. It never owns the weight
// bytes; Offset/Length describe where they live in a memory-mapped archive
// the weight-file reader manages.
type Item struct {
	Name   string
	Meta   tensormeta.TensorMeta
	Offset int64
	Length int64
}

// ByteLength returns Meta.Shape.Size() * Meta.DType.NBytes(), the number of
// bytes this item's range must span.
func (it Item) ByteLength() int64 {
	return int64(it.Meta.Shape.Size()) * int64(it.Meta.DType.NBytes())
}

// FromZMFTensor builds an Item from a zmf.Tensor descriptor (dtype, shape,
// and byte range) without decoding the bytes themselves.
func FromZMFTensor(name string, t *zmf.Tensor, offset int64) (Item, error) {
	if t == nil {
		return Item{}, fmt.Errorf("externals: nil zmf.Tensor for %q", name)
	}

	dt, err := dtypeFromZMF(t.Dtype)
	if err != nil {
		return Item{}, fmt.Errorf("externals: %q: %w", name, err)
	}

	shape := make(tensormeta.Shape, len(t.Shape))
	for i, d := range t.Shape {
		shape[i] = dim.Int(int(d))
	}

	meta := tensormeta.New(dt, shape)

	return Item{
		Name:   name,
		Meta:   meta,
		Offset: offset,
		Length: int64(len(t.Data)),
	}, nil
}

func dtypeFromZMF(dt zmf.Tensor_DataType) (dtype.DType, error) {
	switch dt {
	case zmf.Tensor_FLOAT32:
		return dtype.F32, nil
	case zmf.Tensor_FLOAT16:
		return dtype.F16, nil
	case zmf.Tensor_BFLOAT16:
		return dtype.BF16, nil
	case zmf.Tensor_INT8:
		return dtype.I8, nil
	case zmf.Tensor_INT32:
		return dtype.I32, nil
	case zmf.Tensor_INT64:
		return dtype.I64, nil
	default:
		return dtype.Invalid, fmt.Errorf("unsupported zmf dtype %v", dt)
	}
}
