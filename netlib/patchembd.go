package netlib

import (
	"fmt"

	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/builder"
	"github.com/zerfoo/symgraph/dtype"
	"github.com/zerfoo/symgraph/network"
	"github.com/zerfoo/symgraph/tensormeta"
	"github.com/zerfoo/symgraph/tp"
)

// PatchEmbd patchifies a [N,C,H,W] image-like input into a sequence of
// embedded patches via conv -> transpose -> merge.
type PatchEmbd struct {
	InChannels, OutChannels, KernelH, KernelW int
}

// Launch implements network.Network: one conv with a [OutChannels,
// InChannels, KernelH, KernelW] weight and a [OutChannels] bias produces
// [N,OutChannels,H',W']; a transpose to channel-last yields
// [N,H',W',OutChannels], and a merge folding the leading three axes together
// yields the final [N*H'*W', OutChannels] sequence of patch embeddings.
func (p PatchEmbd) Launch(inputs []network.Tensor, ctx *builder.Context) (*builder.Context, []network.Tensor, error) {
	if len(inputs) != 1 {
		return ctx, nil, fmt.Errorf("netlib: PatchEmbd: expected 1 input, got %d", len(inputs))
	}

	weight, err := ctx.LoadExternal("weight", dtype.F32, tensormeta.FromInts(p.OutChannels, p.InChannels, p.KernelH, p.KernelW), nil)
	if err != nil {
		return ctx, nil, err
	}

	bias, err := ctx.LoadExternal("bias", dtype.F32, tensormeta.FromInts(p.OutChannels), nil)
	if err != nil {
		return ctx, nil, err
	}

	conv, err := ctx.Call("patchify", "conv", argval.None, []network.Tensor{inputs[0], weight, bias})
	if err != nil {
		return ctx, nil, err
	}

	channelLast, err := ctx.Call("to_channel_last", "transpose", argval.NewDict(
		argval.KV("perm", argval.Ints(0, 2, 3, 1)),
	), conv)
	if err != nil {
		return ctx, nil, err
	}

	patches, err := ctx.Call("flatten", "merge", argval.NewDict(
		argval.KV("start", argval.Int(0)),
		argval.KV("len", argval.Int(3)),
	), channelLast)
	if err != nil {
		return ctx, nil, err
	}

	return ctx, patches, nil
}

// TensorParallel is PatchEmbd's tensor-parallel rewrite: a mono distribution
// returns p unchanged; any sharded distribution is rejected outright, since
// no sharding rule is defined for patch embeddings.
func (p PatchEmbd) TensorParallel(dist tp.Distribution) (PatchEmbd, error) {
	if dist.IsMono() {
		return p, nil
	}

	return PatchEmbd{}, ErrNonMonoUnsupported
}
