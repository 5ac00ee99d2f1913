package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoobzio/mapplan/graph"
	"github.com/zoobzio/mapplan/internal/ptest"
	"github.com/zoobzio/mapplan/processor"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a small demo processor dependency graph and print its shape",
	RunE:  runBuild,
}

// demoInput/demoOutput stand in for the struct-shaped input/output types a
// real processor would declare; the build command only needs to show the
// wiring, not do real work.
type demoInput struct {
	Center string
}

type demoOutput struct {
	Layout string
}

// runBuild wires three mock processors into a small chain — a layout
// engine consuming the "center" attribute, a legend processor fed by the
// layout engine's output, and a datasource reader declared with the
// wildcard VALUES input — and prints the resulting graph snapshot as JSON.
func runBuild(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	layout := ptest.New("layout").
		WithInputs(demoInput{}).
		WithInputMapper(map[string]string{"center": "Center"}).
		WithOutputSample(demoOutput{}).
		Build()

	legend := ptest.New("legend").
		WithInputs(demoOutput{}).
		Build()

	datasource := ptest.New("datasource").
		WithInputs(struct{ VALUES map[string]any }{}).
		WithCustomDependencies("layout").
		Build()

	processors := []processor.Processor{layout, legend, datasource}

	attributes := map[string]any{
		"center": "45.0,9.0",
	}

	g, err := graph.Build(ctx, processors, attributes)
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	snapshot := g.Snapshot()
	encoded, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
