package ops

import "github.com/zerfoo/symgraph/oplib"

// NewStandardLibrary returns an oplib.Library with every operator in this
// package registered under its canonical name. It is a constructor rather
// than a package-level init() registry: the operator library is scoped to a
// builder instance, not a process-wide singleton, so each caller gets its own
// Library rather than sharing mutable global state.
func NewStandardLibrary() *oplib.Library {
	lib := oplib.NewLibrary()

	lib.Register("embedding", Embedding)
	lib.Register("matmul", MatMul)
	lib.Register("rmsnorm", RMSNorm)
	lib.Register("layernorm", LayerNorm)
	lib.Register("rope", RoPE)
	lib.Register("mrope", MRoPE)
	lib.Register("attention", Attention)
	lib.Register("swiglu", SwiGLU)
	lib.Register("gelu", Gelu)
	lib.Register("sigmoid", Sigmoid)
	lib.Register("relu", Relu)
	lib.Register("tanh", Tanh)
	lib.Register("conv", Conv)
	lib.Register("rearrange", Rearrange)
	lib.Register("transpose", Transpose)
	lib.Register("tile", Tile)
	lib.Register("merge", Merge)
	lib.Register("add", Add)
	lib.Register("mul", Mul)
	lib.Register("sub", Sub)
	lib.Register("div", Div)
	lib.Register("softmax", Softmax)
	lib.Register("qknorm", QKNorm)
	lib.Register("gather", Gather)
	lib.Register("reducesum", ReduceSum)
	lib.Register("concat", Concat)
	lib.Register("broadcast_to", BroadcastTo)

	return lib
}
