package graph

import (
	"fmt"
	"sync/atomic"

	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/tensormeta"
)

var nextGraphID int64

// Graph is the append-only container a Builder accumulates nodes into.
// It is frozen the moment Build returns it; nothing
// in this package mutates a Graph after construction finishes, but the
// exported Append/LoadExternal/SaveExternal methods are kept package-visible
// to the builder package rather than private, since the builder *is* the
// single writer for the scope of one construction pass.
type Graph struct {
	id           int64
	nodes        []Node
	names        map[string]struct{}
	externalsIn  []External
	externalsOut []External
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		id:    atomic.AddInt64(&nextGraphID, 1),
		names: make(map[string]struct{}),
	}
}

// Append records one operator invocation. inputs must be Handles produced by
// this same Graph (via a prior Append or LoadExternal); fqName must not
// already exist in the graph. On success it returns freshly allocated
// handles for each output TensorMeta, one per outs entry, each referencing
// the newly appended node as producer. Freshly allocated handles never alias
// inputs.
func (g *Graph) Append(fqName, opName string, inputs []Handle, arg argval.Arg, outs []tensormeta.TensorMeta) ([]Handle, error) {
	if _, exists := g.names[fqName]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, fqName)
	}

	for _, in := range inputs {
		if in.graphID != g.id {
			return nil, fmt.Errorf("%w: handle from a different graph passed to %q", ErrDanglingInput, fqName)
		}

		if !in.IsExternal() && in.index >= len(g.nodes) {
			return nil, fmt.Errorf("%w: %q references node index %d not yet appended", ErrDanglingInput, fqName, in.index)
		}
	}

	nodeIndex := len(g.nodes)

	outputs := make([]Handle, len(outs))
	for i, m := range outs {
		outputs[i] = Handle{graphID: g.id, index: nodeIndex, meta: m}
	}

	g.nodes = append(g.nodes, Node{
		FQName:  fqName,
		OpName:  opName,
		Inputs:  inputs,
		Arg:     arg,
		Outputs: outputs,
	})
	g.names[fqName] = struct{}{}

	return outputs, nil
}

// LoadExternal registers an externally sourced tensor (a weight or a graph
// input) at fqName, returning a fresh handle bound to the given meta.
// fqName must not already be claimed anywhere in the graph.
func (g *Graph) LoadExternal(fqName string, meta tensormeta.TensorMeta, item interface{}) (Handle, error) {
	if _, exists := g.names[fqName]; exists {
		return Handle{}, fmt.Errorf("%w: %q", ErrDuplicateName, fqName)
	}

	h := Handle{graphID: g.id, index: -(len(g.externalsIn) + 1), meta: meta}
	g.names[fqName] = struct{}{}
	g.externalsIn = append(g.externalsIn, External{FQName: fqName, Handle: h, Item: item})

	return h, nil
}

// SaveExternal records an output binding at fqName for handle h, which must
// have been produced by this Graph.
func (g *Graph) SaveExternal(fqName string, h Handle, item interface{}) error {
	if h.graphID != g.id {
		return fmt.Errorf("%w: SaveExternal handle from a different graph", ErrDanglingInput)
	}

	if _, exists := g.names[fqName]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, fqName)
	}

	g.names[fqName] = struct{}{}
	g.externalsOut = append(g.externalsOut, External{FQName: fqName, Handle: h, Item: item})

	return nil
}

// NameClaimed reports whether fqName has already been bound anywhere in this
// graph, as either a node or an external.
func (g *Graph) NameClaimed(fqName string) bool {
	_, ok := g.names[fqName]

	return ok
}

// Nodes returns the ordered node list. Node i may only reference output
// handles produced by nodes < i or by ExternalsIn, an invariant Append
// enforces at construction time.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)

	return out
}

// ExternalsIn returns the recorded external input bindings in first-come order.
func (g *Graph) ExternalsIn() []External {
	out := make([]External, len(g.externalsIn))
	copy(out, g.externalsIn)

	return out
}

// ExternalsOut returns the recorded external output bindings in first-come order.
func (g *Graph) ExternalsOut() []External {
	out := make([]External, len(g.externalsOut))
	copy(out, g.externalsOut)

	return out
}

// GetNodeMetadata returns an introspection record for the node at fqName:
// op type, each output's rendered TensorMeta, and the node's argument.
func (g *Graph) GetNodeMetadata(fqName string) (map[string]interface{}, bool) {
	for _, n := range g.nodes {
		if n.FQName != fqName {
			continue
		}

		outputMetas := make([]string, len(n.Outputs))
		for i, o := range n.Outputs {
			outputMetas[i] = o.Meta().String()
		}

		return map[string]interface{}{
			"op_type":      n.OpName,
			"output_metas": outputMetas,
			"arg":          n.Arg.Canonical(),
		}, true
	}

	return nil, false
}

// GetDependencies returns, for every node's fully qualified name, the names
// of the nodes or externals that produced each of its inputs. An external
// producer is reported as its bound fqName; a node producer is reported as
// that node's FQName.
func (g *Graph) GetDependencies() map[string][]string {
	deps := make(map[string][]string, len(g.nodes))

	for _, n := range g.nodes {
		names := make([]string, len(n.Inputs))
		for i, in := range n.Inputs {
			names[i] = g.producerName(in)
		}

		deps[n.FQName] = names
	}

	return deps
}

// GetTopologicalOrder returns every node's FQName in construction order.
// Append already enforces that a node's inputs are all produced by an earlier
// node or an external, so append order is a valid topological order.
func (g *Graph) GetTopologicalOrder() []string {
	out := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.FQName
	}

	return out
}

func (g *Graph) producerName(h Handle) string {
	if h.IsExternal() {
		for _, ext := range g.externalsIn {
			if ext.Handle.index == h.index {
				return ext.FQName
			}
		}

		return ""
	}

	if h.index < len(g.nodes) {
		return g.nodes[h.index].FQName
	}

	return ""
}

// Validate re-checks topological validity: for every input handle of node i,
// the producer either appears at index < i or is external. Append already
// enforces this at construction time; Validate is the read-back counterpart
// for frozen graphs.
func (g *Graph) Validate() error {
	for i, n := range g.nodes {
		for _, in := range n.Inputs {
			if in.graphID != g.id {
				return fmt.Errorf("%w: node %q references a handle from another graph", ErrDanglingInput, n.FQName)
			}

			if !in.IsExternal() && in.index >= i {
				return fmt.Errorf("%w: node %q (index %d) references producer at index %d", ErrDanglingInput, n.FQName, i, in.index)
			}
		}
	}

	return nil
}
