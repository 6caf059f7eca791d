package cli

import (
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/collabgraph/pkg/errors"
	"github.com/matzehuels/collabgraph/pkg/pipeline"
)

// closestCommand creates the closest command for per-user rankings.
func (c *CLI) closestCommand() *cobra.Command {
	var (
		top     int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "closest <dataset.json> [handle]",
		Short: "Rank the users closest to one user",
		Long: `Closest lists a user's strongest direct collaborators and the nearest
users they are only connected to through others.

Without a handle and on an interactive terminal, a picker lists every user
by influence.`,
		Example: `  collabgraph closest events.json alice
  collabgraph closest events.json --top 3`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			if top != 0 {
				opts.Top = top
			}
			if err := opts.ValidateForAnalyze(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			g, err := c.buildGraph(ctx, runner, args[0], opts)
			if err != nil {
				return err
			}

			var handle string
			if len(args) == 2 {
				handle = args[1]
			} else {
				if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
					return errs.New(errs.ErrCodeInvalidInput, "a handle is required when not running interactively")
				}
				a := g.Analyzer.WithContext(ctx)
				picked, ok, err := pickUser(a.MostInfluentialUsers(g.Store.VertexCount()))
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				handle = picked
			}

			return c.printClosest(g, handle, opts.Top)
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 0, "number of users to list (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) printClosest(g *pipeline.Graph, handle string, top int) error {
	if err := errs.ValidateLabel(handle); err != nil {
		return err
	}
	a := g.Analyzer
	if _, ok := a.Lookup(handle); !ok {
		return errs.New(errs.ErrCodeUserNotFound, "user %q is not in the graph", handle)
	}
	printNewline()
	printFocus(&pipeline.Focus{
		User:      handle,
		Closest:   a.ClosestUsers(handle, top),
		NonDirect: a.ClosestNonDirectUsers(handle, top),
	})
	return nil
}
