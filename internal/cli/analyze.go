package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/collabgraph/pkg/errors"
)

// analyzeFlags holds flags for the analyze command.
type analyzeFlags struct {
	top     int
	user    string
	json    bool
	noCache bool
	refresh bool
}

// analyzeCommand creates the analyze command for a full report.
func (c *CLI) analyzeCommand() *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze <dataset.json>",
		Short: "Report influencers, communities and fragmentation",
		Long: `Analyze builds the social graph of a dataset and prints a report.

The report contains the most influential users, the communities, the
connection level and the user whose absence fragments the graph most.
With --user it also ranks that user's closest collaborators.`,
		Example: `  collabgraph analyze events.json
  collabgraph analyze events.json --top 10 --user alice
  collabgraph analyze events.json --json > report.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVarP(&flags.top, "top", "n", 0, "size of ranked lists (default from config)")
	cmd.Flags().StringVarP(&flags.user, "user", "u", "", "also rank the closest users of this handle")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "rebuild the graph even if cached")

	return cmd
}

func (c *CLI) runAnalyze(cmd *cobra.Command, path string, flags analyzeFlags) error {
	ctx := cmd.Context()

	opts, err := c.baseOptions()
	if err != nil {
		return err
	}
	if flags.top != 0 {
		opts.Top = flags.top
	}
	opts.User = flags.user
	opts.Refresh = flags.refresh
	if err := opts.ValidateForAnalyze(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if flags.json {
		ds, err := runner.Load(ctx, path)
		if err != nil {
			return err
		}
		g, err := runner.Build(ctx, ds, opts)
		if err != nil {
			return err
		}
		report, err := runner.Analyze(ctx, g, opts)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "encode report")
		}
		return nil
	}

	g, err := c.buildGraph(ctx, runner, path, opts)
	if err != nil {
		return err
	}
	report, err := runner.Analyze(ctx, g, opts)
	if err != nil {
		return err
	}
	printNewline()
	printReport(report)
	return nil
}
