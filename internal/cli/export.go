package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/collabgraph/pkg/errors"
	"github.com/matzehuels/collabgraph/pkg/pipeline"
)

// exportFlags holds flags for the export command.
type exportFlags struct {
	formats   string
	output    string
	highlight string
	noCache   bool
}

// exportCommand creates the export command for writing the graph to disk.
func (c *CLI) exportCommand() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export <dataset.json>",
		Short: "Write the social graph as JSON, DOT or SVG",
		Long: `Export builds the social graph of a dataset and writes it in one or more
formats. JSON output can be reloaded; DOT and SVG draw the graph with
edge thickness following weight.`,
		Example: `  collabgraph export events.json
  collabgraph export events.json -f json,svg -o out/graph
  collabgraph export events.json -f svg --highlight alice,bob`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.formats, "format", "f", pipeline.FormatJSON, "output formats: json, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path without extension (default: dataset name)")
	cmd.Flags().StringVar(&flags.highlight, "highlight", "", "users to emphasize in drawings (comma-separated)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, path string, flags exportFlags) error {
	ctx := cmd.Context()

	opts, err := c.baseOptions()
	if err != nil {
		return err
	}
	opts.Formats = splitList(flags.formats)
	opts.Highlight = splitList(flags.highlight)
	if err := opts.ValidateForExport(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, err := c.buildGraph(ctx, runner, path, opts)
	if err != nil {
		return err
	}
	for _, h := range opts.Highlight {
		if _, ok := g.Analyzer.Lookup(h); !ok {
			printWarning("%s is not in the graph", h)
		}
	}

	artifacts, cached, err := runner.Export(ctx, g, opts)
	if err != nil {
		return err
	}

	base := outputBase(flags.output, path)
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	for _, format := range opts.Formats {
		out := base + "." + format
		if err := os.WriteFile(out, artifacts[format], 0o644); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidPath, err, "write %s", out)
		}
		printFile(out)
	}
	if cached {
		printDetail("artifacts served from cache")
	}
	printNextStep("Explore it interactively", fmt.Sprintf("%s serve %s", appName, path))
	return nil
}

// outputBase derives the output path prefix from the flag or dataset path.
func outputBase(output, dataset string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	name := filepath.Base(dataset)
	return strings.TrimSuffix(name, filepath.Ext(name)) + "-graph"
}
