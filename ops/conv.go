package ops

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

// Conv infers (X:[N,C,H,W], W:[M,C,Kh,Kw], B:[M]) -> [N,M,H',W'], with
// strides, dilations, and pads carried in the arg (default stride=kernel,
// dilation=1, pad=0).
var Conv oplib.Op = oplib.OpFunc(inferConv)

func inferConv(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireInputCount("conv", inputs, 3); err != nil {
		return nil, err
	}

	x, w, b := inputs[0], inputs[1], inputs[2]

	if err := requireRank("conv", x, 4); err != nil {
		return nil, err
	}

	if err := requireRank("conv", w, 4); err != nil {
		return nil, err
	}

	if err := requireRank("conv", b, 1); err != nil {
		return nil, err
	}

	if err := requireSameDType("conv", x, w); err != nil {
		return nil, err
	}

	if err := requireSameDType("conv", x, b); err != nil {
		return nil, err
	}

	if _, err := unifyDim("conv", 1, x.Shape[1], w.Shape[1]); err != nil {
		return nil, err
	}

	m, err := unifyDim("conv", 0, w.Shape[0], b.Shape[0])
	if err != nil {
		return nil, err
	}

	kh, kw := w.Shape[2], w.Shape[3]

	strideH, strideW := kh, kw
	dilH, dilW := dim.Int(1), dim.Int(1)
	padH, padW := int64(0), int64(0)

	if !arg.IsNone() {
		d, err := dictArg("conv", arg, "stride", "dilation", "pad")
		if err != nil {
			return nil, err
		}

		if stride, err := dictInts("conv", d, "stride", false); err != nil {
			return nil, err
		} else if len(stride) == 2 {
			strideH, strideW = dim.Int(stride[0]), dim.Int(stride[1])
		} else if len(stride) != 0 {
			return nil, oplib.NewArgError("conv: stride must have 2 entries, got %d", len(stride))
		}

		if dilation, err := dictInts("conv", d, "dilation", false); err != nil {
			return nil, err
		} else if len(dilation) == 2 {
			dilH, dilW = dim.Int(dilation[0]), dim.Int(dilation[1])
		} else if len(dilation) != 0 {
			return nil, oplib.NewArgError("conv: dilation must have 2 entries, got %d", len(dilation))
		}

		if pad, err := dictInts("conv", d, "pad", false); err != nil {
			return nil, err
		} else if len(pad) == 2 {
			padH, padW = int64(pad[0]), int64(pad[1])
		} else if len(pad) != 0 {
			return nil, oplib.NewArgError("conv: pad must have 2 entries, got %d", len(pad))
		}
	}

	if kh.IsSymbol() || kw.IsSymbol() || strideH.IsSymbol() || strideW.IsSymbol() || dilH.IsSymbol() || dilW.IsSymbol() {
		return nil, oplib.NewShapeError("conv: kernel, stride, and dilation must be concrete")
	}

	outH, err := convOutputExtent("conv", x.Shape[2], kh, strideH, dilH, padH)
	if err != nil {
		return nil, err
	}

	outW, err := convOutputExtent("conv", x.Shape[3], kw, strideW, dilW, padW)
	if err != nil {
		return nil, err
	}

	n := x.Shape[0]

	return []tensormeta.TensorMeta{
		tensormeta.New(x.DType, tensormeta.Shape{n, m, outH, outW}),
	}, nil
}

func convOutputExtent(name string, in, kernel, stride, dilation dim.Dim, pad int64) (dim.Dim, error) {
	if in.IsSymbol() {
		return dim.Dim{}, oplib.NewShapeError("%s: spatial input extent must be concrete, got %s", name, in)
	}

	effectiveKernel := (kernel.Value()-1)*dilation.Value() + 1
	numerator := int64(in.Value()) + 2*pad - int64(effectiveKernel)

	if numerator < 0 || numerator%int64(stride.Value()) != 0 {
		return dim.Dim{}, oplib.NewShapeMismatch("%s: kernel/stride/pad geometry does not evenly divide input extent %d", name, in.Value())
	}

	return dim.Int(int(numerator/int64(stride.Value())) + 1), nil
}
