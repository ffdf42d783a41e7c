package tp

// TPAction pairs a WeightKind with the Distribution a rewrite is targeting.
// A nil *TPAction means "no rewrite": the leaf passes through unchanged.
type TPAction struct {
	Kind WeightKind
	Dist Distribution
}

// Equal reports whether two actions describe the same rewrite: same
// WeightKind identity and equal Distribution. A nil receiver/argument is
// only Equal to another nil.
func (a *TPAction) Equal(o *TPAction) bool {
	if a == nil || o == nil {
		return a == o
	}

	return a.Kind.Equal(o.Kind) && a.Dist == o.Dist
}

// TPTensor wraps a weight leaf value of any type with the TP action the
// rewriter will apply to it. A model description wraps its weight-carrying
// leaves in TPTensor before graph construction; plain activations and
// non-weight state are never wrapped.
type TPTensor[T any] struct {
	Value  T
	Action *TPAction
}

// Plain wraps v with no TP action: the leaf's shape and bytes are untouched
// by the rewriter regardless of Distribution.
func Plain[T any](v T) TPTensor[T] {
	return TPTensor[T]{Value: v}
}

// Sharded wraps v with the given WeightKind/Distribution rewrite.
func Sharded[T any](v T, kind WeightKind, dist Distribution) TPTensor[T] {
	return TPTensor[T]{Value: v, Action: &TPAction{Kind: kind, Dist: dist}}
}

// IsSharded reports whether t carries a rewrite action.
func (t TPTensor[T]) IsSharded() bool {
	return t.Action != nil
}

// ShardedShape returns the shape t's leaf should be declared with once
// rewritten: shape unchanged if t carries no action, otherwise
// t.Action.Kind.SplitShape(t.Action.Dist, shape).
func (t TPTensor[T]) ShardedShape(shape []int) ([]int, error) {
	if t.Action == nil {
		return shape, nil
	}

	return t.Action.Kind.SplitShape(t.Action.Dist, shape)
}
