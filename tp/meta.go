package tp

import (
	"fmt"

	"github.com/zerfoo/symgraph/tensormeta"
)

// RewriteMeta adapts a weight leaf's declared TensorMeta under action: a nil
// action (or one whose Dist.IsMono()) returns meta unchanged; otherwise it
// resolves meta.Shape to concrete integers (weight leaves never carry
// symbolic dims) and applies action.Kind.SplitShape.
func RewriteMeta(meta tensormeta.TensorMeta, action *TPAction) (tensormeta.TensorMeta, error) {
	if action == nil || action.Dist.IsMono() {
		return meta, nil
	}

	ints, err := meta.Shape.Ints()
	if err != nil {
		return tensormeta.TensorMeta{}, fmt.Errorf("tp: weight leaf shape must be concrete: %w", err)
	}

	sharded, err := action.Kind.SplitShape(action.Dist, ints)
	if err != nil {
		return tensormeta.TensorMeta{}, err
	}

	return tensormeta.New(meta.DType, tensormeta.FromInts(sharded...)), nil
}

// RewriteBytes materializes action's shard of src into a freshly allocated
// byte slice, sized per WeightKind.ByteLength. srcMeta describes src in its
// unsharded (whole-tensor) form. A nil action returns a verbatim copy of src.
func RewriteBytes(srcMeta tensormeta.TensorMeta, action *TPAction, src []byte) ([]byte, error) {
	if action == nil {
		dst := make([]byte, len(src))
		copy(dst, src)

		return dst, nil
	}

	ints, err := srcMeta.Shape.Ints()
	if err != nil {
		return nil, fmt.Errorf("tp: weight leaf shape must be concrete: %w", err)
	}

	elemSize := srcMeta.DType.NBytes()

	n, err := action.Kind.ByteLength(action.Dist, ints, elemSize)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, n)
	if err := action.Kind.Materialize(action.Dist, dst, src, ints, elemSize); err != nil {
		return nil, err
	}

	return dst, nil
}
