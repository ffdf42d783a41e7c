package ops

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

// Rearrange infers (X) -> same meta; no argument permitted. It describes a
// pure relayout that shape inference treats as identity.
var Rearrange oplib.Op = oplib.OpFunc(inferRearrange)

func inferRearrange(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireNoArg(arg); err != nil {
		return nil, err
	}

	if err := requireInputCount("rearrange", inputs, 1); err != nil {
		return nil, err
	}

	x := inputs[0]

	return []tensormeta.TensorMeta{tensormeta.New(x.DType, x.Shape.Clone())}, nil
}

// Transpose takes arg Dict{perm: Arr[int]} and permutes the shape.
var Transpose oplib.Op = oplib.OpFunc(inferTranspose)

func inferTranspose(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireInputCount("transpose", inputs, 1); err != nil {
		return nil, err
	}

	d, err := dictArg("transpose", arg, "perm")
	if err != nil {
		return nil, err
	}

	perm, err := dictInts("transpose", d, "perm", true)
	if err != nil {
		return nil, err
	}

	x := inputs[0]

	if len(perm) != x.Shape.Rank() {
		return nil, oplib.NewShapeError("transpose: perm length %d does not match rank %d", len(perm), x.Shape.Rank())
	}

	seen := make([]bool, len(perm))
	out := make(tensormeta.Shape, len(perm))

	for i, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return nil, oplib.NewArgError("transpose: perm %v is not a valid permutation", perm)
		}

		seen[p] = true
		out[i] = x.Shape[p]
	}

	return []tensormeta.TensorMeta{tensormeta.New(x.DType, out)}, nil
}

// Tile takes arg Dict{axis: int, tiles: Arr[int]} and splits the selected
// axis into the listed tiles, whose product must equal the original extent.
var Tile oplib.Op = oplib.OpFunc(inferTile)

func inferTile(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireInputCount("tile", inputs, 1); err != nil {
		return nil, err
	}

	d, err := dictArg("tile", arg, "axis", "tiles")
	if err != nil {
		return nil, err
	}

	axis, err := dictInt("tile", d, "axis", true, 0)
	if err != nil {
		return nil, err
	}

	tiles, err := dictInts("tile", d, "tiles", true)
	if err != nil {
		return nil, err
	}

	x := inputs[0]

	if axis < 0 || int(axis) >= x.Shape.Rank() {
		return nil, oplib.NewArgError("tile: axis %d out of range for rank %d", axis, x.Shape.Rank())
	}

	extent := x.Shape[axis]
	if extent.IsSymbol() {
		return nil, oplib.NewShapeError("tile: axis %d extent must be concrete, got %s", axis, extent)
	}

	product := 1
	for _, t := range tiles {
		product *= t
	}

	if product != extent.Value() {
		return nil, oplib.NewShapeMismatch("tile: tile product %d does not equal axis extent %d", product, extent.Value())
	}

	out := make(tensormeta.Shape, 0, x.Shape.Rank()-1+len(tiles))
	out = append(out, x.Shape[:axis]...)

	for _, t := range tiles {
		out = append(out, dim.Int(t))
	}

	out = append(out, x.Shape[axis+1:]...)

	return []tensormeta.TensorMeta{tensormeta.New(x.DType, out)}, nil
}

// Merge takes arg Dict{start: int, len: int} and collapses len consecutive
// axes starting at start into one axis whose extent is their product.
var Merge oplib.Op = oplib.OpFunc(inferMerge)

func inferMerge(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireInputCount("merge", inputs, 1); err != nil {
		return nil, err
	}

	d, err := dictArg("merge", arg, "start", "len")
	if err != nil {
		return nil, err
	}

	start, err := dictInt("merge", d, "start", true, 0)
	if err != nil {
		return nil, err
	}

	length, err := dictInt("merge", d, "len", true, 0)
	if err != nil {
		return nil, err
	}

	x := inputs[0]

	if start < 0 || length < 1 || int(start+length) > x.Shape.Rank() {
		return nil, oplib.NewArgError("merge: start=%d len=%d out of range for rank %d", start, length, x.Shape.Rank())
	}

	merged := dim.Int(1)

	for i := int(start); i < int(start+length); i++ {
		axis := x.Shape[i]
		if axis.IsSymbol() {
			return nil, oplib.NewShapeError("merge: axis %d extent must be concrete, got %s", i, axis)
		}

		merged = dim.Int(merged.Value() * axis.Value())
	}

	out := make(tensormeta.Shape, 0, x.Shape.Rank()-int(length)+1)
	out = append(out, x.Shape[:start]...)
	out = append(out, merged)
	out = append(out, x.Shape[start+length:]...)

	return []tensormeta.TensorMeta{tensormeta.New(x.DType, out)}, nil
}

// Softmax preserves meta; the arg optionally carries the reduction axis.
var Softmax oplib.Op = oplib.OpFunc(inferSoftmax)

func inferSoftmax(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireInputCount("softmax", inputs, 1); err != nil {
		return nil, err
	}

	x := inputs[0]

	if !arg.IsNone() {
		d, err := dictArg("softmax", arg, "axis")
		if err != nil {
			return nil, err
		}

		axis, err := dictInt("softmax", d, "axis", true, 0)
		if err != nil {
			return nil, err
		}

		if axis < 0 || int(axis) >= x.Shape.Rank() {
			return nil, oplib.NewArgError("softmax: axis %d out of range for rank %d", axis, x.Shape.Rank())
		}
	}

	return []tensormeta.TensorMeta{tensormeta.New(x.DType, x.Shape.Clone())}, nil
}
