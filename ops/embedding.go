package ops

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

// Embedding infers (W:[V,D], tokens:[N]) -> [N,D]; with a positional table,
// (W, tokens, WP:[P,D], pos:[N]) -> [N,D]. The arg may carry image metadata
// as a 3-tuple of ints, which is opaque to shape inference and only validated
// for shape.
var Embedding oplib.Op = oplib.OpFunc(inferEmbedding)

func inferEmbedding(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	if err := requireInputCount("embedding", inputs, 2, 4); err != nil {
		return nil, err
	}

	if !arg.IsNone() {
		if info, err := arg.AsInts(); err != nil || len(info) != 3 {
			return nil, oplib.NewArgError("embedding: image metadata arg must be an Arr of 3 Ints, got %s", arg.Canonical())
		}
	}

	w, tokens := inputs[0], inputs[1]

	if err := requireRank("embedding", w, 2); err != nil {
		return nil, err
	}

	if err := requireRank("embedding", tokens, 1); err != nil {
		return nil, err
	}

	d := w.Shape[1]

	if len(inputs) == 4 {
		wp, pos := inputs[2], inputs[3]

		if err := requireRank("embedding", wp, 2); err != nil {
			return nil, err
		}

		if err := requireRank("embedding", pos, 1); err != nil {
			return nil, err
		}

		if err := requireSameDType("embedding", w, wp); err != nil {
			return nil, err
		}

		if _, err := unifyDim("embedding", 1, wp.Shape[1], d); err != nil {
			return nil, err
		}

		if _, err := unifyDim("embedding", 0, tokens.Shape[0], pos.Shape[0]); err != nil {
			return nil, err
		}
	}

	n := tokens.Shape[0]

	return []tensormeta.TensorMeta{
		tensormeta.New(w.DType, tensormeta.Shape{n, d}),
	}, nil
}
