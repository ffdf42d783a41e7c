package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommandRegistersBuild(t *testing.T) {
	root := newRootCommand()

	build, _, err := root.Find([]string{"build"})
	require.NoError(t, err)
	assert.Equal(t, "build", build.Name())
}

func TestParseWeightKind(t *testing.T) {
	col, err := parseWeightKind("column")
	require.NoError(t, err)
	assert.True(t, col.Equal(col))

	_, err = parseWeightKind("attn_qkv:4")
	require.NoError(t, err)

	_, err = parseWeightKind("attn_qkv:not-a-number")
	assert.Error(t, err)

	_, err = parseWeightKind("nonsense")
	assert.Error(t, err)
}

func TestParseShardSpecs(t *testing.T) {
	specs, err := parseShardSpecs(nil)
	require.NoError(t, err)
	assert.Nil(t, specs)

	specs, err = parseShardSpecs([]string{"w_gate_up=ffn_gate_up", "wqkv=attn_qkv:4"})
	require.NoError(t, err)
	assert.Len(t, specs, 2)
	assert.Contains(t, specs, "w_gate_up")
	assert.Contains(t, specs, "wqkv")

	_, err = parseShardSpecs([]string{"missing-equals"})
	assert.Error(t, err)

	_, err = parseShardSpecs([]string{"name=bogus"})
	assert.Error(t, err)
}
