package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerfoo/zmf"

	"github.com/zerfoo/symgraph/dtype"
	"github.com/zerfoo/symgraph/model"
	"github.com/zerfoo/symgraph/ops"
	"github.com/zerfoo/symgraph/tensormeta"
	"github.com/zerfoo/symgraph/tp"
)

func simpleZMFModel() *zmf.Model {
	return &zmf.Model{
		ZmfVersion: "1.0",
		Graph: &zmf.Graph{
			Inputs: []*zmf.ValueInfo{
				{Name: "x", Shape: []int64{4, 8}},
			},
			Parameters: map[string]*zmf.Tensor{
				"w": {
					Dtype: zmf.Tensor_FLOAT32,
					Shape: []int64{8, 16},
					Data:  make([]byte, 8*16*4),
				},
			},
			Nodes: []*zmf.Node{
				{Name: "y", OpType: "matmul", Inputs: []string{"x", "w"}},
			},
			Outputs: []*zmf.ValueInfo{
				{Name: "y"},
			},
		},
	}
}

func TestBuildFromZMF_ConnectedGraph(t *testing.T) {
	lib := ops.NewStandardLibrary()

	g, outputs, err := model.BuildFromZMF(lib, simpleZMFModel(), tp.Mono, nil)
	require.NoError(t, err)
	require.Len(t, outputs, 1)

	nodes := g.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, "matmul", nodes[0].OpName)

	want := tensormeta.New(dtype.F32, tensormeta.FromInts(4, 16))
	assert.True(t, outputs[0].Meta().Equal(want), "got %s want %s", outputs[0].Meta(), want)

	ext := g.ExternalsIn()
	require.Len(t, ext, 2) // parameter "w" and declared input "x"
}

func TestBuildFromZMF_NilModel(t *testing.T) {
	lib := ops.NewStandardLibrary()

	_, _, err := model.BuildFromZMF(lib, nil, tp.Mono, nil)
	assert.ErrorIs(t, err, model.ErrNilModel)
}

func TestBuildFromZMF_UnknownInputReference(t *testing.T) {
	lib := ops.NewStandardLibrary()

	m := &zmf.Model{
		Graph: &zmf.Graph{
			Nodes: []*zmf.Node{
				{Name: "y", OpType: "matmul", Inputs: []string{"missing", "also-missing"}},
			},
		},
	}

	_, _, err := model.BuildFromZMF(lib, m, tp.Mono, nil)
	assert.ErrorIs(t, err, model.ErrUnknownInput)
}

func TestBuildFromZMF_ShardsNamedParameter(t *testing.T) {
	lib := ops.NewStandardLibrary()

	m := &zmf.Model{
		Graph: &zmf.Graph{
			Parameters: map[string]*zmf.Tensor{
				"w": {
					Dtype: zmf.Tensor_FLOAT32,
					Shape: []int64{2048, 512},
					Data:  make([]byte, 2048*512*4),
				},
			},
			Outputs: []*zmf.ValueInfo{{Name: "w"}},
		},
	}

	dist, err := tp.New(1, 1, 4)
	require.NoError(t, err)

	specs := map[string]model.WeightShardSpec{
		"w": {Kind: tp.ColumnParallel()},
	}

	_, outputs, err := model.BuildFromZMF(lib, m, dist, specs)
	require.NoError(t, err)
	require.Len(t, outputs, 1)

	want := tensormeta.New(dtype.F32, tensormeta.FromInts(512, 512))
	assert.True(t, outputs[0].Meta().Equal(want), "got %s want %s", outputs[0].Meta(), want)
}

func TestBuildFromZMF_UnknownOutput(t *testing.T) {
	lib := ops.NewStandardLibrary()

	m := &zmf.Model{
		Graph: &zmf.Graph{
			Outputs: []*zmf.ValueInfo{{Name: "never-produced"}},
		},
	}

	_, _, err := model.BuildFromZMF(lib, m, tp.Mono, nil)
	assert.ErrorIs(t, err, model.ErrUnknownOutput)
}
