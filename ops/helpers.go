package ops

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

func requireNoArg(arg argval.Arg) error {
	if !arg.IsNone() {
		return oplib.NewArgError("operator takes no argument, got %s", arg.Canonical())
	}

	return nil
}

func requireRank(name string, m tensormeta.TensorMeta, rank int) error {
	if m.Shape.Rank() != rank {
		return oplib.NewShapeError("%s: expected rank %d, got %d (%s)", name, rank, m.Shape.Rank(), m.Shape)
	}

	return nil
}

func requireInputCount(name string, inputs []tensormeta.TensorMeta, counts ...int) error {
	for _, c := range counts {
		if len(inputs) == c {
			return nil
		}
	}

	return oplib.NewShapeError("%s: unexpected input count %d", name, len(inputs))
}

func requireSameDType(name string, a, b tensormeta.TensorMeta) error {
	if a.DType != b.DType {
		return oplib.NewDTypeMismatch("%s: dtype %s does not match %s", name, a.DType, b.DType)
	}

	return nil
}

func unifyDim(name string, axis int, a, b dim.Dim) (dim.Dim, error) {
	d, ok := dim.Unify(a, b)
	if !ok {
		return dim.Dim{}, oplib.NewShapeMismatch("%s: dim mismatch at axis %d: %s vs %s", name, axis, a, b)
	}

	return d, nil
}

func unifyShapes(name string, a, b tensormeta.Shape) (tensormeta.Shape, error) {
	if len(a) != len(b) {
		return nil, oplib.NewShapeError("%s: rank mismatch %d vs %d", name, len(a), len(b))
	}

	out := make(tensormeta.Shape, len(a))

	for i := range a {
		d, err := unifyDim(name, i, a[i], b[i])
		if err != nil {
			return nil, err
		}

		out[i] = d
	}

	return out, nil
}

// dictArg validates that arg is a Dict whose keys are a subset of allowed,
// returning an ArgError naming the offending key otherwise.
func dictArg(name string, arg argval.Arg, allowed ...string) (argval.Arg, error) {
	if arg.Kind() != argval.KindDict {
		return argval.Arg{}, oplib.NewArgError("%s: expected a Dict argument, got %s", name, arg.Canonical())
	}

	keys, err := arg.DictKeys()
	if err != nil {
		return argval.Arg{}, oplib.NewArgError("%s: %v", name, err)
	}

	allowedSet := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		allowedSet[k] = true
	}

	for _, k := range keys {
		if !allowedSet[k] {
			return argval.Arg{}, oplib.NewArgError("%s: unknown argument key %q", name, k)
		}
	}

	return arg, nil
}

func dictInt(name string, d argval.Arg, key string, required bool, def int64) (int64, error) {
	v, ok, err := d.DictGet(key)
	if err != nil {
		return 0, oplib.NewArgError("%s: %v", name, err)
	}

	if !ok {
		if required {
			return 0, oplib.NewArgError("%s: missing required argument key %q", name, key)
		}

		return def, nil
	}

	i, err := v.AsInt()
	if err != nil {
		return 0, oplib.NewArgError("%s: key %q: %v", name, key, err)
	}

	return i, nil
}

func dictInts(name string, d argval.Arg, key string, required bool) ([]int, error) {
	v, ok, err := d.DictGet(key)
	if err != nil {
		return nil, oplib.NewArgError("%s: %v", name, err)
	}

	if !ok {
		if required {
			return nil, oplib.NewArgError("%s: missing required argument key %q", name, key)
		}

		return nil, nil
	}

	ints, err := v.AsInts()
	if err != nil {
		return nil, oplib.NewArgError("%s: key %q: %v", name, key, err)
	}

	return ints, nil
}
