package netlib

import (
	"fmt"

	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/builder"
	"github.com/zerfoo/symgraph/dtype"
	"github.com/zerfoo/symgraph/network"
	"github.com/zerfoo/symgraph/tensormeta"
)

// TransformerBlock composes rmsnorm -> attention(QKV+RoPE) -> add ->
// rmsnorm -> swiglu(gate-up) -> add over a [N,DModel] residual stream, with
// grouped-query attention when NKVHeads < NHeads.
type TransformerBlock struct {
	DModel    int
	NHeads    int
	NKVHeads  int
	HeadDim   int
	DFF       int
	MaxSeqLen int
}

// Launch implements network.Network over a single [N,DModel] input.
func (b TransformerBlock) Launch(inputs []network.Tensor, ctx *builder.Context) (*builder.Context, []network.Tensor, error) {
	if len(inputs) != 1 {
		return ctx, nil, fmt.Errorf("netlib: TransformerBlock: expected 1 input, got %d", len(inputs))
	}

	x := inputs[0]

	attnOut, err := ctx.Trap("attn", attentionStage{b}, []network.Tensor{x})
	if err != nil {
		return ctx, nil, err
	}

	resid1, err := ctx.Call("resid1", "add", argval.None, []network.Tensor{x, attnOut[0]})
	if err != nil {
		return ctx, nil, err
	}

	ffnOut, err := ctx.Trap("ffn", feedForwardStage{b}, resid1)
	if err != nil {
		return ctx, nil, err
	}

	resid2, err := ctx.Call("resid2", "add", argval.None, []network.Tensor{resid1[0], ffnOut[0]})
	if err != nil {
		return ctx, nil, err
	}

	return ctx, resid2, nil
}

// attentionStage is TransformerBlock's grouped-query attention sub-network:
// rmsnorm -> Q/K/V projections -> head split -> RoPE on Q,K -> attention ->
// head merge -> output projection.
type attentionStage struct{ b TransformerBlock }

func (s attentionStage) Launch(inputs []network.Tensor, ctx *builder.Context) (*builder.Context, []network.Tensor, error) {
	b := s.b
	x := inputs[0]

	gamma, err := ctx.LoadExternal("norm_gamma", dtype.F32, tensormeta.FromInts(b.DModel), nil)
	if err != nil {
		return ctx, nil, err
	}

	normed, err := ctx.Call("norm", "rmsnorm", argval.None, []network.Tensor{x, gamma})
	if err != nil {
		return ctx, nil, err
	}

	wq, err := ctx.LoadExternal("wq", dtype.F32, tensormeta.FromInts(b.DModel, b.NHeads*b.HeadDim), nil)
	if err != nil {
		return ctx, nil, err
	}

	wk, err := ctx.LoadExternal("wk", dtype.F32, tensormeta.FromInts(b.DModel, b.NKVHeads*b.HeadDim), nil)
	if err != nil {
		return ctx, nil, err
	}

	wv, err := ctx.LoadExternal("wv", dtype.F32, tensormeta.FromInts(b.DModel, b.NKVHeads*b.HeadDim), nil)
	if err != nil {
		return ctx, nil, err
	}

	wo, err := ctx.LoadExternal("wo", dtype.F32, tensormeta.FromInts(b.NHeads*b.HeadDim, b.DModel), nil)
	if err != nil {
		return ctx, nil, err
	}

	qFlat, err := ctx.Call("q_proj", "matmul", argval.None, []network.Tensor{normed[0], wq})
	if err != nil {
		return ctx, nil, err
	}

	kFlat, err := ctx.Call("k_proj", "matmul", argval.None, []network.Tensor{normed[0], wk})
	if err != nil {
		return ctx, nil, err
	}

	vFlat, err := ctx.Call("v_proj", "matmul", argval.None, []network.Tensor{normed[0], wv})
	if err != nil {
		return ctx, nil, err
	}

	q, err := ctx.Call("q_split", "tile", splitHeadsArg(b.NHeads, b.HeadDim), qFlat)
	if err != nil {
		return ctx, nil, err
	}

	k, err := ctx.Call("k_split", "tile", splitHeadsArg(b.NKVHeads, b.HeadDim), kFlat)
	if err != nil {
		return ctx, nil, err
	}

	v, err := ctx.Call("v_split", "tile", splitHeadsArg(b.NKVHeads, b.HeadDim), vFlat)
	if err != nil {
		return ctx, nil, err
	}

	seqLen := x.Meta().Shape[0]

	pos, err := ctx.LoadExternal("pos", dtype.I32, tensormeta.Shape{seqLen}, nil)
	if err != nil {
		return ctx, nil, err
	}

	sin, err := ctx.LoadExternal("rope_sin", dtype.F32, tensormeta.FromInts(b.MaxSeqLen, b.HeadDim/2), nil)
	if err != nil {
		return ctx, nil, err
	}

	cos, err := ctx.LoadExternal("rope_cos", dtype.F32, tensormeta.FromInts(b.MaxSeqLen, b.HeadDim/2), nil)
	if err != nil {
		return ctx, nil, err
	}

	ropedQ, err := ctx.Call("q_rope", "rope", argval.None, []network.Tensor{q[0], pos, sin, cos})
	if err != nil {
		return ctx, nil, err
	}

	ropedK, err := ctx.Call("k_rope", "rope", argval.None, []network.Tensor{k[0], pos, sin, cos})
	if err != nil {
		return ctx, nil, err
	}

	attn, err := ctx.Call("sdpa", "attention", argval.None, []network.Tensor{ropedQ[0], ropedK[0], v[0]})
	if err != nil {
		return ctx, nil, err
	}

	merged, err := ctx.Call("merge_heads", "merge", argval.NewDict(
		argval.KV("start", argval.Int(1)),
		argval.KV("len", argval.Int(2)),
	), attn)
	if err != nil {
		return ctx, nil, err
	}

	out, err := ctx.Call("o_proj", "matmul", argval.None, []network.Tensor{merged[0], wo})
	if err != nil {
		return ctx, nil, err
	}

	return ctx, out, nil
}

func splitHeadsArg(heads, headDim int) argval.Arg {
	return argval.NewDict(
		argval.KV("axis", argval.Int(1)),
		argval.KV("tiles", argval.Ints(heads, headDim)),
	)
}

// feedForwardStage is TransformerBlock's SwiGLU feed-forward sub-network:
// rmsnorm -> combined gate/up projection -> swiglu -> down projection.
type feedForwardStage struct{ b TransformerBlock }

func (s feedForwardStage) Launch(inputs []network.Tensor, ctx *builder.Context) (*builder.Context, []network.Tensor, error) {
	b := s.b
	x := inputs[0]

	gamma, err := ctx.LoadExternal("norm_gamma", dtype.F32, tensormeta.FromInts(b.DModel), nil)
	if err != nil {
		return ctx, nil, err
	}

	normed, err := ctx.Call("norm", "rmsnorm", argval.None, []network.Tensor{x, gamma})
	if err != nil {
		return ctx, nil, err
	}

	wGateUp, err := ctx.LoadExternal("w_gate_up", dtype.F32, tensormeta.FromInts(b.DModel, 2*b.DFF), nil)
	if err != nil {
		return ctx, nil, err
	}

	wDown, err := ctx.LoadExternal("w_down", dtype.F32, tensormeta.FromInts(b.DFF, b.DModel), nil)
	if err != nil {
		return ctx, nil, err
	}

	gateUp, err := ctx.Call("gate_up_proj", "matmul", argval.None, []network.Tensor{normed[0], wGateUp})
	if err != nil {
		return ctx, nil, err
	}

	activated, err := ctx.Call("swiglu", "swiglu", argval.None, gateUp)
	if err != nil {
		return ctx, nil, err
	}

	out, err := ctx.Call("down_proj", "matmul", argval.None, []network.Tensor{activated[0], wDown})
	if err != nil {
		return ctx, nil, err
	}

	return ctx, out, nil
}
