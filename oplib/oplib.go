// Package oplib is the operator library: a name -> Op mapping, where each Op
// implements shape-and-dtype inference over its inputs and argument.
// Registration is single-shot per name; double registration is a programmer
// error and panics.
package oplib

import (
	"fmt"

	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/tensormeta"
)

// Op is the contract every operator implementation satisfies. Implementations
// are value objects with no mutable state: Infer must be a pure function of
// its inputs and arg.
type Op interface {
	Infer(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error)
}

// OpFunc adapts a plain function to the Op interface.
type OpFunc func(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error)

// Infer calls f.
func (f OpFunc) Infer(inputs []tensormeta.TensorMeta, arg argval.Arg) ([]tensormeta.TensorMeta, error) {
	return f(inputs, arg)
}

// Library is a closed, name-scoped operator registry. It is handed to a
// builder once; after the first graph is built it behaves as immutable.
// Library never mutates its own map outside Register.
type Library struct {
	ops map[string]Op
}

// NewLibrary creates an empty operator library.
func NewLibrary() *Library {
	return &Library{ops: make(map[string]Op)}
}

// Register adds op under name. It panics if name is already registered;
// double registration is a programmer error, not a runtime condition to
// recover from.
func (l *Library) Register(name string, op Op) {
	if _, exists := l.ops[name]; exists {
		panic(fmt.Sprintf("oplib: operator %q already registered", name))
	}

	l.ops[name] = op
}

// Lookup resolves name to its Op. The bool result is false when name is not
// registered; the builder turns a miss into an unknown-operator error carrying
// the fully qualified call name.
func (l *Library) Lookup(name string) (Op, bool) {
	op, ok := l.ops[name]

	return op, ok
}

// Names returns the registered operator names, for diagnostics.
func (l *Library) Names() []string {
	out := make([]string, 0, len(l.ops))
	for n := range l.ops {
		out = append(out, n)
	}

	return out
}
