package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/holocron/pkg/errors"
	"github.com/matzehuels/holocron/pkg/integrations/swapi"
)

type searchOpts struct {
	related []string
	json    bool
}

func (c *CLI) searchCommand() *cobra.Command {
	var opts searchOpts

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Find an entity and list the names it references",
		Long: `Search every collection for the query and print the first match with the
names of the entities it references, limited to the --related types.`,
		Example: `  holocron search kenobi
  holocron search "a new hope" --related people,planets
  holocron search hope --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.related, "related", "r", nil, "entity types to resolve (default from search.related)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	registerTypeCompletion(cmd, "related")

	return cmd
}

func (c *CLI) runSearch(cmd *cobra.Command, query string, opts searchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := errs.ValidateQuery(query); err != nil {
		return err
	}
	related, err := c.relatedTypes(opts.related)
	if err != nil {
		return err
	}

	s, err := c.newSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	prog := newProgress(logger)
	res, err := s.explorer.Search(ctx, query, related)
	if err != nil {
		return err
	}
	prog.done("Search complete", "query", query, "names", len(res.Names))

	if opts.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Fprintln(stdout, formatResult(res, joinTypes(related)))
	return nil
}

// joinTypes formats entity types for headers and messages.
func joinTypes(types []swapi.EntityType) string {
	ss := make([]string, len(types))
	for i, t := range types {
		ss[i] = t.String()
	}
	return strings.Join(ss, ", ")
}

// registerTypeCompletion completes a comma-separated entity type flag.
func registerTypeCompletion(cmd *cobra.Command, flag string) {
	_ = cmd.RegisterFlagCompletionFunc(flag, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, len(swapi.EntityTypes))
		for i, t := range swapi.EntityTypes {
			out[i] = t.String()
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}
