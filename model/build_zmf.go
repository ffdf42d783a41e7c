// BuildFromZMF replays a deserialized ZMF model through the builder package:
// walk parameters into root-scope externals, walk declared inputs into
// root-scope externals, walk the node list in order turning each zmf.Node
// into a single builder.Context.Call, then resolve the declared outputs.
//
// The replay only threads symbolic Tensor handles: inference, naming, and
// externals bookkeeping are entirely builder/oplib's job. zmf.Node carries no
// explicit outputs list, so a node's own Name is also its one output's
// identity.
package model

import (
	"fmt"
	"sort"

	"github.com/zerfoo/zmf"

	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/builder"
	"github.com/zerfoo/symgraph/dim"
	"github.com/zerfoo/symgraph/dtype"
	"github.com/zerfoo/symgraph/externals"
	"github.com/zerfoo/symgraph/graph"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
	"github.com/zerfoo/symgraph/tp"
)

// WeightShardSpec names a tensor-parallel rewrite to apply to one named
// parameter as it is loaded: Kind selects the sharding rule, and the
// Distribution BuildFromZMF is called with selects the shard.
type WeightShardSpec struct {
	Kind tp.WeightKind
}

// ParamPayload is the opaque item BuildFromZMF hands to
// builder.Context.LoadExternal for each parameter: the declared metadata plus
// the (possibly TP-rewritten) raw bytes a downstream executor would consume.
// Meta comes from the tensor's declared dtype and shape (its Length from the
// byte count); BuildFromZMF reads Data only to copy out a shard through
// tp.RewriteBytes when the parameter is sharded under a non-mono distribution.
type ParamPayload struct {
	Item externals.Item
	Data []byte
}

// BuildFromZMF constructs a symbolic graph.Graph from m by replaying its
// nodes through a single builder.Context, sharding parameters named in specs
// for the given shard dist. Pass tp.Mono and a nil specs map to build the
// unsharded graph.
func BuildFromZMF(lib *oplib.Library, m *zmf.Model, dist tp.Distribution, specs map[string]WeightShardSpec) (*graph.Graph, []builder.Tensor, error) {
	if m == nil || m.Graph == nil {
		return nil, nil, ErrNilModel
	}

	nn := &zmfNetwork{g: m.Graph, dist: dist, specs: specs}

	return builder.Build(lib, nn, nil)
}

type zmfNetwork struct {
	g     *zmf.Graph
	dist  tp.Distribution
	specs map[string]WeightShardSpec
}

func (n *zmfNetwork) Launch(_ []builder.Tensor, ctx *builder.Context) (*builder.Context, []builder.Tensor, error) {
	handles := make(map[string]builder.Tensor, len(n.g.Parameters)+len(n.g.Inputs)+len(n.g.Nodes))

	// Parameters is a map; bind in sorted order so externals_in is stable
	// across builds of the same model.
	paramNames := make([]string, 0, len(n.g.Parameters))
	for name := range n.g.Parameters {
		paramNames = append(paramNames, name)
	}

	sort.Strings(paramNames)

	for _, name := range paramNames {
		h, err := n.loadParameter(ctx, name, n.g.Parameters[name])
		if err != nil {
			return nil, nil, err
		}

		handles[name] = h
	}

	for _, in := range n.g.Inputs {
		if _, bound := handles[in.Name]; bound {
			continue
		}

		shape := make(tensormeta.Shape, len(in.Shape))
		for i, d := range in.Shape {
			shape[i] = dim.Int(int(d))
		}

		h, err := ctx.LoadExternal(in.Name, dtype.F32, shape, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("model: loading graph input %q: %w", in.Name, err)
		}

		handles[in.Name] = h
	}

	for _, node := range n.g.Nodes {
		ins := make([]builder.Tensor, len(node.Inputs))

		for i, name := range node.Inputs {
			h, ok := handles[name]
			if !ok {
				return nil, nil, fmt.Errorf("%w: node %q references %q", ErrUnknownInput, node.Name, name)
			}

			ins[i] = h
		}

		arg, err := attributesToArg(node.Attributes)
		if err != nil {
			return nil, nil, fmt.Errorf("model: node %q: %w", node.Name, err)
		}

		outs, err := ctx.Call(node.Name, node.OpType, arg, ins)
		if err != nil {
			return nil, nil, err
		}

		if len(outs) == 0 {
			return nil, nil, fmt.Errorf("model: node %q produced no outputs", node.Name)
		}

		handles[node.Name] = outs[0]
	}

	outputs := make([]builder.Tensor, len(n.g.Outputs))

	for i, out := range n.g.Outputs {
		h, ok := handles[out.Name]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownOutput, out.Name)
		}

		outputs[i] = h
	}

	return ctx, outputs, nil
}

func (n *zmfNetwork) loadParameter(ctx *builder.Context, name string, t *zmf.Tensor) (builder.Tensor, error) {
	item, err := externals.FromZMFTensor(name, t, 0)
	if err != nil {
		return builder.Tensor{}, fmt.Errorf("model: parameter %q: %w", name, err)
	}

	meta := item.Meta
	data := t.Data

	if spec, sharded := n.specs[name]; sharded && !n.dist.IsMono() {
		action := &tp.TPAction{Kind: spec.Kind, Dist: n.dist}

		meta, err = tp.RewriteMeta(meta, action)
		if err != nil {
			return builder.Tensor{}, fmt.Errorf("model: sharding parameter %q: %w", name, err)
		}

		data, err = tp.RewriteBytes(item.Meta, action, t.Data)
		if err != nil {
			return builder.Tensor{}, fmt.Errorf("model: sharding parameter %q: %w", name, err)
		}

		item.Meta = meta
		item.Length = int64(len(data))
	}

	payload := ParamPayload{Item: item, Data: data}

	return ctx.LoadExternal(name, meta.DType, meta.Shape, payload)
}

func attributesToArg(attrs map[string]*zmf.Attribute) (argval.Arg, error) {
	if len(attrs) == 0 {
		return argval.None, nil
	}

	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	pairs := make([]argval.DictPair, 0, len(attrs))

	for _, key := range keys {
		v, err := argval.FromZMFAttribute(attrs[key])
		if err != nil {
			return argval.Arg{}, fmt.Errorf("attribute %q: %w", key, err)
		}

		pairs = append(pairs, argval.KV(key, v))
	}

	return argval.NewDict(pairs...), nil
}
