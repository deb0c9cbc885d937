package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/holocron/pkg/explorer"
	"github.com/matzehuels/holocron/pkg/integrations/swapi"
)

func (c *CLI) primeCommand() *cobra.Command {
	var types []string

	cmd := &cobra.Command{
		Use:   "prime",
		Short: "Load every page of each collection into the caches",
		Long: `Walk every page of the selected collections concurrently so later lookups
are served from the caches. With the file or redis backend the responses
outlive this process.`,
		Example: `  holocron prime
  holocron prime --types people,films`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runPrime(cmd, types)
		},
	}

	cmd.Flags().StringSliceVarP(&types, "types", "t", nil, "entity types to load (default all)")
	registerTypeCompletion(cmd, "types")

	return cmd
}

func (c *CLI) runPrime(cmd *cobra.Command, names []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	types, err := swapi.ParseEntityTypes(names)
	if err != nil {
		return err
	}

	s, err := c.newSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Priming caches...")
	spinner.Start()
	report, err := s.explorer.Seed(ctx, types...)
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Priming failed for %d of %d types", len(report.Failures), len(report.Types)))
		printReport(report)
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Primed %d entities", report.Total()))
	printReport(report)
	prog.done("Primed caches", "entities", report.Total())
	return nil
}

// printReport prints one line per seeded type.
func printReport(r *explorer.SeedReport) {
	for _, t := range r.Types {
		if err, failed := r.Failures[t]; failed {
			printKeyValue(t.String(), StyleWarning.Render("failed: "+err.Error()))
			continue
		}
		printKeyValue(t.String(), fmt.Sprint(r.Counts[t]))
	}
}
