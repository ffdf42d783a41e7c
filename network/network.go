// Package network names the neural-network abstraction and supplies
// composition helpers over it. The interface itself is declared in package
// builder, whose Context.Trap is its consumer; Network here is a type alias
// to the same contract, so implementations written against either name are
// interchangeable.
package network

import "github.com/zerfoo/symgraph/builder"

// Network is the sub-network contract: consume the declared number of
// inputs, emit operator calls through ctx, return outputs.
type Network = builder.Network

// Tensor is the handle type Networks consume and produce.
type Tensor = builder.Tensor

// Sequential composes a fixed list of Networks, feeding each stage's outputs
// as the next stage's inputs and trapping every stage under its own name so
// the resulting fq names nest one level, the way a transformer block traps
// its attention and feed-forward sub-networks.
type Sequential struct {
	Stages []NamedNetwork
}

// NamedNetwork pairs a Network with the name it is trapped under.
type NamedNetwork struct {
	Name string
	Net  Network
}

// Launch implements Network by running every stage in order via ctx.Trap.
func (s Sequential) Launch(inputs []Tensor, ctx *builder.Context) (*builder.Context, []Tensor, error) {
	cur := inputs

	for _, stage := range s.Stages {
		out, err := ctx.Trap(stage.Name, stage.Net, cur)
		if err != nil {
			return ctx, nil, err
		}

		cur = out
	}

	return ctx, cur, nil
}
