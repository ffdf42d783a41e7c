// Command symgraph-build loads a .zmf model description, replays it through
// the symbolic graph builder for one tensor-parallel shard, and prints the
// resulting node list.
package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zerfoo/symgraph/model"
	"github.com/zerfoo/symgraph/ops"
	"github.com/zerfoo/symgraph/tp"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "symgraph-build",
		Short: "Build and inspect a symbolic computation graph from a ZMF model",
	}

	root.AddCommand(newBuildCommand())

	return root
}

func newBuildCommand() *cobra.Command {
	var (
		modelPath string
		start     int
		shardLen  int
		total     int
		shards    []string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Replay a .zmf model through the graph builder and list its nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, modelPath, start, shardLen, total, shards)
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "path to a .zmf model file (required)")
	cmd.Flags().IntVar(&start, "start", 0, "this shard's start index")
	cmd.Flags().IntVar(&shardLen, "len", 1, "this shard's length in shards")
	cmd.Flags().IntVar(&total, "total", 1, "total shard count")
	cmd.Flags().StringArrayVar(&shards, "shard", nil, "name=kind weight-sharding override, repeatable (kind: column, row, ffn_gate_up, attn_qkv:<gqa>)")

	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func runBuild(cmd *cobra.Command, modelPath string, start, shardLen, total int, shardFlags []string) error {
	m, err := model.LoadZMF(modelPath)
	if err != nil {
		return err
	}

	dist, err := tp.New(start, shardLen, total)
	if err != nil {
		return fmt.Errorf("symgraph-build: %w", err)
	}

	specs, err := parseShardSpecs(shardFlags)
	if err != nil {
		return fmt.Errorf("symgraph-build: %w", err)
	}

	lib := ops.NewStandardLibrary()

	g, outputs, err := model.BuildFromZMF(lib, m, dist, specs)
	if err != nil {
		return fmt.Errorf("symgraph-build: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "shard %s: %d nodes, %d outputs\n", dist, len(g.Nodes()), len(outputs))

	for _, n := range g.Nodes() {
		fmt.Fprintf(out, "  %s\t%s\n", n.FQName, n.OpName)
	}

	return nil
}

// parseShardSpecs turns repeated "name=kind" flags into the map
// model.BuildFromZMF expects. kind is one of column, row, ffn_gate_up, or
// attn_qkv:<gqa>.
func parseShardSpecs(flags []string) (map[string]model.WeightShardSpec, error) {
	if len(flags) == 0 {
		return nil, nil
	}

	specs := make(map[string]model.WeightShardSpec, len(flags))

	for _, f := range flags {
		name, kindStr, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --shard %q: expected name=kind", f)
		}

		kind, err := parseWeightKind(kindStr)
		if err != nil {
			return nil, fmt.Errorf("--shard %q: %w", f, err)
		}

		specs[name] = model.WeightShardSpec{Kind: kind}
	}

	return specs, nil
}

func parseWeightKind(s string) (tp.WeightKind, error) {
	if rest, ok := strings.CutPrefix(s, "attn_qkv:"); ok {
		gqa, err := strconv.Atoi(rest)
		if err != nil {
			return tp.WeightKind{}, fmt.Errorf("invalid gqa ratio %q: %w", rest, err)
		}

		return tp.AttnQKV(gqa), nil
	}

	switch s {
	case "column":
		return tp.ColumnParallel(), nil
	case "row":
		return tp.RowParallel(), nil
	case "ffn_gate_up":
		return tp.FfnGateUp(), nil
	default:
		return tp.WeightKind{}, fmt.Errorf("unknown weight kind %q", s)
	}
}
