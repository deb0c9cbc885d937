package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/holocron/internal/cli"
	errs "github.com/matzehuels/holocron/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, cli.StyleError.Render("Error:"), describe(err))
		os.Exit(1)
	}
}

// describe is the user-facing text of err: the message of a coded error
// and its cause, without the code.
func describe(err error) string {
	var e *errs.Error
	if errors.As(err, &e) && e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return errs.UserMessage(err)
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	// Applied in the root's PersistentPreRunE, after the config's log.level.
	root.PersistentFlags().BoolVarP(&c.Verbose, "verbose", "v", false, "enable verbose logging")

	return root.ExecuteContext(ctx)
}
