package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/holocron/pkg/errors"
	"github.com/matzehuels/holocron/pkg/explorer"
	"github.com/matzehuels/holocron/pkg/integrations/swapi"
)

const (
	shellPrompt = "holocron> "
	farewell    = "Have a great day!"
)

const shellHelp = `Type a name or title to search, e.g. kenobi or "a new hope".

  prime   load every collection into the caches in the background
  flush   clear the node cache
  help    show this message
  quit    leave the shell (also exit, Ctrl-C, Ctrl-D)`

type shellOpts struct {
	related []string
	listen  bool
}

func (c *CLI) shellCommand() *cobra.Command {
	var opts shellOpts

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive prompt; every line is a search",
		Long: `Start an interactive prompt. Each line is searched like the search command
and answered with the matched name and the related names. Lines typed while
a search runs are queued. With --listen the greeting listener runs alongside.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runShell(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.related, "related", "r", nil, "entity types to resolve (default from search.related)")
	cmd.Flags().BoolVar(&opts.listen, "listen", false, "also run the greeting listener on server.addr")
	registerTypeCompletion(cmd, "related")

	return cmd
}

func (c *CLI) runShell(cmd *cobra.Command, opts shellOpts) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	related, err := c.relatedTypes(opts.related)
	if err != nil {
		return err
	}
	s, err := c.newSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	var listenErr chan error
	if opts.listen {
		ln, err := net.Listen("tcp", c.Config.Server.Addr)
		if err != nil {
			return err
		}
		listenErr = make(chan error, 1)
		go func() {
			listenErr <- serveListener(ctx, ln, newRouter(c.Config.Server.Greeting, c.Logger), c.Logger)
		}()
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if in := cmd.InOrStdin(); in != os.Stdin {
		progOpts = append(progOpts, tea.WithInput(in))
	}
	if out := cmd.OutOrStdout(); out != os.Stdout {
		progOpts = append(progOpts, tea.WithOutput(out))
	}

	_, err = tea.NewProgram(newShellModel(ctx, s, related), progOpts...).Run()
	cancel()
	if listenErr != nil {
		if lerr := <-listenErr; err == nil {
			err = lerr
		}
	}
	if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
		return cmd.Context().Err()
	}
	return err
}

// =============================================================================
// Shell Model
// =============================================================================

// searchDoneMsg carries a finished search back into the update loop.
type searchDoneMsg struct {
	query  string
	result *explorer.Result
	err    error
}

// primeDoneMsg reports a finished background seeding job.
type primeDoneMsg struct {
	job    *explorer.Job
	report *explorer.SeedReport
	err    error
}

// shellModel is the bubbletea model behind the shell command. Output goes
// above the prompt through print; searches run one at a time and lines
// submitted meanwhile wait in pending.
type shellModel struct {
	ctx      context.Context
	explorer *explorer.Explorer
	flush    func()
	related  []swapi.EntityType
	print    func(string) tea.Cmd

	input    []rune
	pending  []string
	busy     bool
	jobs     int
	quitting bool
}

func newShellModel(ctx context.Context, s *session, related []swapi.EntityType) shellModel {
	return shellModel{
		ctx:      ctx,
		explorer: s.explorer,
		flush:    s.client.FlushCache,
		related:  related,
		print:    func(line string) tea.Cmd { return tea.Println(line) },
	}
}

func (m shellModel) Init() tea.Cmd {
	return m.print(StyleDim.Render(`Type a name to search, "help" for commands.`))
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case searchDoneMsg:
		m.busy = false
		out := m.print(formatSearch(msg, joinTypes(m.related)))
		next, steps, waits := m.drain()
		return next, tea.Batch(append(waits, tea.Sequence(out, steps))...)

	case primeDoneMsg:
		m.jobs--
		return m, m.print(formatPrime(msg))
	}
	return m, nil
}

func (m shellModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		line := string(m.input)
		m.input = nil
		echo := m.print(stylePrompt.Render(shellPrompt) + line)
		m.pending = append(m.pending, line)
		if m.busy {
			return m, echo
		}
		next, steps, waits := m.drain()
		return next, tea.Batch(append(waits, tea.Sequence(echo, steps))...)

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}

	case tea.KeySpace:
		m.input = append(m.input, ' ')

	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

// drain handles pending lines until one starts a search or the queue is
// empty. steps run in order; waits block on background jobs and run beside
// steps, never inside them.
func (m shellModel) drain() (next shellModel, steps tea.Cmd, waits []tea.Cmd) {
	var cmds []tea.Cmd
	for len(m.pending) > 0 && !m.busy && !m.quitting {
		line := m.pending[0]
		m.pending = m.pending[1:]
		var cmd, wait tea.Cmd
		m, cmd, wait = m.submit(line)
		cmds = append(cmds, cmd)
		if wait != nil {
			waits = append(waits, wait)
		}
	}
	return m, tea.Sequence(cmds...), waits
}

// submit runs one line: a command word or a search query. wait is set when
// the line started a background job.
func (m shellModel) submit(line string) (next shellModel, cmd, wait tea.Cmd) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return m, nil, nil

	case "quit", "exit":
		m.quitting = true
		return m, tea.Quit, nil

	case "help":
		return m, m.print(shellHelp), nil

	case "flush":
		m.flush()
		return m, m.print(successLine("Node cache flushed")), nil

	case "prime":
		job := m.explorer.Prime(m.ctx)
		m.jobs++
		return m, m.print(infoLine("Priming caches in the background (job " + shortID(job.ID) + ")")), waitForJob(job)
	}

	if err := errs.ValidateQuery(line); err != nil {
		return m, m.print(errorLine(errs.UserMessage(err))), nil
	}
	m.busy = true
	return m, search(m.ctx, m.explorer, line, m.related), nil
}

func search(ctx context.Context, e *explorer.Explorer, query string, related []swapi.EntityType) tea.Cmd {
	return func() tea.Msg {
		res, err := e.Search(ctx, query, related)
		return searchDoneMsg{query: query, result: res, err: err}
	}
}

func waitForJob(job *explorer.Job) tea.Cmd {
	return func() tea.Msg {
		report, err := job.Wait()
		return primeDoneMsg{job: job, report: report, err: err}
	}
}

func (m shellModel) View() string {
	if m.quitting {
		return farewell + "\n"
	}
	var b strings.Builder
	b.WriteString(stylePrompt.Render(shellPrompt))
	b.WriteString(string(m.input))
	b.WriteString("█")
	if m.busy {
		b.WriteString(StyleDim.Render("  searching..."))
	}
	if m.jobs > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  (priming: %d)", m.jobs)))
	}
	return b.String()
}

// =============================================================================
// Shell Output
// =============================================================================

// formatSearch renders a finished search. Errors are shown and the session
// carries on.
func formatSearch(msg searchDoneMsg, related string) string {
	if msg.err != nil {
		return errorLine(fmt.Sprintf("search %q: %s", msg.query, errs.UserMessage(msg.err)))
	}
	return formatResult(msg.result, related)
}

func formatPrime(msg primeDoneMsg) string {
	r := msg.report
	elapsed := time.Since(msg.job.StartedAt).Round(time.Millisecond)
	if msg.err != nil {
		lines := []string{errorLine(fmt.Sprintf("Priming failed for %d of %d types (job %s)",
			len(r.Failures), len(r.Types), shortID(msg.job.ID)))}
		for _, t := range r.Types {
			if err, ok := r.Failures[t]; ok {
				lines = append(lines, "  "+StyleDim.Render(t.String()+": "+err.Error()))
			}
		}
		return strings.Join(lines, "\n")
	}
	return successLine(fmt.Sprintf("Primed %d entities in %s (job %s)", r.Total(), elapsed, shortID(msg.job.ID)))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
