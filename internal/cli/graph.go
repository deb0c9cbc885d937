package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/holocron/pkg/errors"
	"github.com/matzehuels/holocron/pkg/integrations/swapi"
	"github.com/matzehuels/holocron/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

type graphOpts struct {
	related  []string
	format   string
	output   string
	detailed bool
}

func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <query...>",
		Short: "Render an entity and the entities it references",
		Long: `Render the first entity matching the query together with the entities it
references as a node-link diagram. Without --related every reference is drawn.`,
		Example: `  holocron graph kenobi -o kenobi.svg
  holocron graph "a new hope" --related people --format dot`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.related, "related", "r", nil, "entity types to draw (default all)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSVG, "output format: dot or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with their type/id key")
	registerTypeCompletion(cmd, "related")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, query string, opts graphOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if opts.format != formatDOT && opts.format != formatSVG {
		return errs.New(errs.ErrCodeInvalidFormat, "unknown format %q (want dot or svg)", opts.format)
	}
	if err := errs.ValidateQuery(query); err != nil {
		return err
	}
	related, err := swapi.ParseEntityTypes(opts.related)
	if err != nil {
		return err
	}

	s, err := c.newSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Resolving %q...", query))
	spinner.Start()
	hood, err := s.explorer.Neighborhood(ctx, query, related)
	spinner.Stop()
	if err != nil {
		return err
	}
	logger.Debug("neighborhood", "center", hood.Center.Key, "neighbors", len(hood.Neighbors))

	out := []byte(nodelink.ToDOT(hood.Center, hood.Neighbors, nodelink.Options{Detailed: opts.detailed}))
	if opts.format == formatSVG {
		if out, err = nodelink.RenderSVG(ctx, string(out)); err != nil {
			return err
		}
	}

	if opts.output == "" {
		_, err = stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return err
	}
	printSuccess("Rendered %s with %d neighbors", hood.Center.Name, len(hood.Neighbors))
	printFile(opts.output)
	return nil
}
