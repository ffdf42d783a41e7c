// Package builder implements the hierarchical graph-construction driver:
// Context, the scoped name generation it performs over a graph.Graph, and
// dispatch into the operator library. It is the recursive-descent engine
// that a model author drives by implementing Network and composing
// sub-networks through Context.Trap.
package builder

import (
	"fmt"

	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dtype"
	"github.com/zerfoo/symgraph/graph"
	"github.com/zerfoo/symgraph/oplib"
	"github.com/zerfoo/symgraph/tensormeta"
)

// Tensor is the handle type Context operations produce and consume.
type Tensor = graph.Handle

// Network is the sub-network contract: consume the declared number of
// inputs, emit operator calls through ctx, return outputs.
// Sub-networks compose via Context.Trap; errors surface unchanged.
type Network interface {
	Launch(inputs []Tensor, ctx *Context) (*Context, []Tensor, error)
}

// Context is tied to one graph-under-construction scope.
type Context struct {
	path        string
	g           *graph.Graph
	lib         *oplib.Library
	tensorNames map[string]struct{}
	subDecor    *decorator
	opDecor     *decorator
}

// Input describes one graph input to be bound as an external at root scope
// before nn.Launch runs, since a Tensor handle can only be minted by the
// Graph that Build itself owns.
type Input struct {
	Name  string
	DType dtype.DType
	Shape tensormeta.Shape
	Item  interface{}
}

// Build performs a root-scope descent over nn with path "Ω". Each entry of
// inputs is registered as a root-scope external (fq "Ω.<name>")
// before nn.Launch is invoked with the resulting handles, in declaration
// order.
func Build(lib *oplib.Library, nn Network, inputs []Input) (*graph.Graph, []Tensor, error) {
	g := graph.New()
	ctx := newContext("Ω", g, lib)

	handles := make([]Tensor, len(inputs))

	for i, in := range inputs {
		h, err := ctx.LoadExternal(in.Name, in.DType, in.Shape, in.Item)
		if err != nil {
			return nil, nil, err
		}

		handles[i] = h
	}

	_, outputs, err := nn.Launch(handles, ctx)
	if err != nil {
		return nil, nil, err
	}

	return g, outputs, nil
}

func newContext(path string, g *graph.Graph, lib *oplib.Library) *Context {
	return &Context{
		path:        path,
		g:           g,
		lib:         lib,
		tensorNames: make(map[string]struct{}),
		subDecor:    newDecorator(),
		opDecor:     newDecorator(),
	}
}

// Path returns this scope's dotted fully-qualified prefix.
func (c *Context) Path() string {
	return c.path
}

// Trap descends into sub with a new context scoped at
// path + "." + decorate(name), fresh deduplication tables, and returns sub's
// outputs.
func (c *Context) Trap(name string, sub Network, inputs []Tensor) ([]Tensor, error) {
	scope := c.path + "." + c.subDecor.decorate(name)
	child := newContext(scope, c.g, c.lib)

	_, outputs, err := sub.Launch(inputs, child)
	if err != nil {
		return nil, err
	}

	return outputs, nil
}

// LoadExternal registers a weight/input binding at fq = path + "." + name.
// name must not already be claimed in this scope.
func (c *Context) LoadExternal(name string, dt dtype.DType, shape tensormeta.Shape, item interface{}) (Tensor, error) {
	if _, claimed := c.tensorNames[name]; claimed {
		return Tensor{}, fmt.Errorf("%w: %q in scope %q", ErrNameCollision, name, c.path)
	}

	fq := c.path + "." + name
	meta := tensormeta.New(dt, shape)

	h, err := c.g.LoadExternal(fq, meta, item)
	if err != nil {
		return Tensor{}, err
	}

	c.tensorNames[name] = struct{}{}

	return h, nil
}

// SaveExternal records an output binding at fq = path + "." + name for t.
func (c *Context) SaveExternal(name string, t Tensor, item interface{}) error {
	if _, claimed := c.tensorNames[name]; claimed {
		return fmt.Errorf("%w: %q in scope %q", ErrNameCollision, name, c.path)
	}

	fq := c.path + "." + name

	if err := c.g.SaveExternal(fq, t, item); err != nil {
		return err
	}

	c.tensorNames[name] = struct{}{}

	return nil
}

// Call produces fq = path + ":" + decorate(name or op_name), looks up
// op_name in the library, invokes inference over inputs' metas, and on
// success appends a node and returns fresh output handles. Any OpError from
// inference is wrapped with fq.
func (c *Context) Call(name, opName string, arg argval.Arg, inputs []Tensor) ([]Tensor, error) {
	base := name
	if base == "" {
		base = opName
	}

	fq := c.path + ":" + c.opDecor.decorate(base)

	op, ok := c.lib.Lookup(opName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, fq)
	}

	metas := make([]tensormeta.TensorMeta, len(inputs))
	for i, in := range inputs {
		metas[i] = in.Meta()
	}

	outs, err := op.Infer(metas, arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fq, err)
	}

	handles, err := c.g.Append(fq, opName, inputs, arg, outs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fq, err)
	}

	return handles, nil
}
