package graph

import (
	"testing"

	"github.com/zerfoo/symgraph/argval"
	"github.com/zerfoo/symgraph/dtype"
	"github.com/zerfoo/symgraph/tensormeta"
)

func meta(vals ...int) tensormeta.TensorMeta {
	return tensormeta.New(dtype.F32, tensormeta.FromInts(vals...))
}

func TestAppendAllocatesFreshHandles(t *testing.T) {
	g := New()

	in, err := g.LoadExternal("Omega.x", meta(7, 128), "item-x")
	if err != nil {
		t.Fatalf("LoadExternal: %v", err)
	}

	outs, err := g.Append("Omega:op1", "rearrange", []Handle{in}, argval.None, []tensormeta.TensorMeta{meta(7, 128)})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if len(outs) != 1 {
		t.Fatalf("expected 1 output handle, got %d", len(outs))
	}

	if outs[0].index == in.index && outs[0].graphID == in.graphID {
		t.Fatal("output handle must never alias an input handle")
	}
}

func TestDuplicateFQNameRejected(t *testing.T) {
	g := New()

	if _, err := g.LoadExternal("Omega.w", meta(4), "a"); err != nil {
		t.Fatal(err)
	}

	if _, err := g.LoadExternal("Omega.w", meta(4), "b"); err == nil {
		t.Fatal("expected duplicate name rejection")
	}

	if _, err := g.Append("Omega.w", "op", nil, argval.None, []tensormeta.TensorMeta{meta(4)}); err == nil {
		t.Fatal("expected duplicate name rejection across node/external namespaces")
	}
}

func TestDanglingInputRejected(t *testing.T) {
	g := New()
	other := New()

	foreign, err := other.LoadExternal("Omega.x", meta(1), nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := g.Append("Omega:op", "add", []Handle{foreign}, argval.None, []tensormeta.TensorMeta{meta(1)}); err == nil {
		t.Fatal("expected rejection of a handle from a different graph")
	}
}

func TestTopologicalValidity(t *testing.T) {
	g := New()

	x, _ := g.LoadExternal("Omega.x", meta(2), nil)

	outs1, err := g.Append("Omega:a", "rearrange", []Handle{x}, argval.None, []tensormeta.TensorMeta{meta(2)})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := g.Append("Omega:b", "rearrange", []Handle{outs1[0]}, argval.None, []tensormeta.TensorMeta{meta(2)}); err != nil {
		t.Fatal(err)
	}

	if err := g.Validate(); err != nil {
		t.Fatalf("expected valid topology: %v", err)
	}
}

func TestSaveExternalRequiresSameGraph(t *testing.T) {
	g := New()
	other := New()

	x, _ := other.LoadExternal("Omega.x", meta(1), nil)

	if err := g.SaveExternal("Omega.out", x, nil); err == nil {
		t.Fatal("expected rejection of foreign handle in SaveExternal")
	}
}

func TestIntrospectionAccessors(t *testing.T) {
	g := New()

	x, _ := g.LoadExternal("Omega.x", meta(2), nil)

	outs, err := g.Append("Omega:a", "rearrange", []Handle{x}, argval.None, []tensormeta.TensorMeta{meta(2)})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := g.Append("Omega:b", "rearrange", []Handle{outs[0]}, argval.None, []tensormeta.TensorMeta{meta(2)}); err != nil {
		t.Fatal(err)
	}

	md, ok := g.GetNodeMetadata("Omega:a")
	if !ok || md["op_type"] != "rearrange" {
		t.Fatalf("GetNodeMetadata: got %+v, ok=%v", md, ok)
	}

	deps := g.GetDependencies()
	if len(deps["Omega:a"]) != 1 || deps["Omega:a"][0] != "Omega.x" {
		t.Fatalf("GetDependencies: Omega:a deps = %v", deps["Omega:a"])
	}

	if len(deps["Omega:b"]) != 1 || deps["Omega:b"][0] != "Omega:a" {
		t.Fatalf("GetDependencies: Omega:b deps = %v", deps["Omega:b"])
	}

	order := g.GetTopologicalOrder()
	if len(order) != 2 || order[0] != "Omega:a" || order[1] != "Omega:b" {
		t.Fatalf("GetTopologicalOrder: got %v", order)
	}
}

func TestExternalsRecordedInOrder(t *testing.T) {
	g := New()

	if _, err := g.LoadExternal("Omega.a", meta(1), "A"); err != nil {
		t.Fatal(err)
	}

	if _, err := g.LoadExternal("Omega.b", meta(1), "B"); err != nil {
		t.Fatal(err)
	}

	ins := g.ExternalsIn()
	if len(ins) != 2 || ins[0].FQName != "Omega.a" || ins[1].FQName != "Omega.b" {
		t.Fatalf("got %+v", ins)
	}
}
