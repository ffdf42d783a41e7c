// Package ops implements the shape-inference rules for the operator set:
// embedding, matmul, rmsnorm/layernorm, rope/mrope, attention, swiglu/gelu
// and friends, conv, rearrange, tile, merge, transpose, the element-wise
// binary ops, softmax, plus gather, reducesum, concat, qknorm, and
// broadcast_to, which round out a usable transformer block.
//
// Every rule here is total over well-typed inputs: reject unknown arg keys
// or an arg when none is permitted (ArgError), unify all dim equalities
// (ShapeMismatch), and require rank exactness (ShapeError). None of these
// rules execute a kernel; they only describe the output TensorMeta a real
// kernel would produce.
package ops
