// Package graph provides the append-only computation-graph container: Node,
// Handle, Graph, and the external input/output binding tables.
//
// A graph.Node is pure data: a record of one operator invocation's fully
// qualified name, operator name, input/output handles, and argument.
// Shape/dtype inference has already happened by the time a Node is appended
// (see the builder package); the Graph itself enforces the structural
// invariants of name uniqueness and topological validity.
package graph

import (
	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/tensormeta"
)

// Handle is an opaque reference to one tensor produced within a specific
// Graph. It is only ever constructed by that Graph; callers compare/pass it
// by value.
type Handle struct {
	graphID int64
	// index is the position of the producing Node in Graph.Nodes() when
	// non-negative. A handle bound via LoadExternal instead carries a unique
	// negative slot (-1, -2, ...), one per external, so GetDependencies can
	// resolve each input back to the external that produced it.
	index int
	meta  tensormeta.TensorMeta
}

// Meta returns the TensorMeta this handle refers to.
func (h Handle) Meta() tensormeta.TensorMeta { return h.meta }

// IsExternal reports whether this handle was bound via LoadExternal rather
// than produced by a Node.
func (h Handle) IsExternal() bool { return h.index < 0 }

// Node is one operator invocation recorded in the graph.
type Node struct {
	FQName  string
	OpName  string
	Inputs  []Handle
	Arg     argval.Arg
	Outputs []Handle
}

// External is one binding recorded in externals_in or externals_out: a fully
// qualified tensor name, the handle it is bound to, and the opaque payload
// token (weight bytes, or an activation crossing the system boundary) the
// executor will dereference.
type External struct {
	FQName string
	Handle Handle
	Item   interface{}
}
