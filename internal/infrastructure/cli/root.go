// Package cli is the terminal-facing layer: the cobra root command and the
// console, prompter and spinner adapters.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/doeshing/explain-go/internal/app"
	"github.com/doeshing/explain-go/internal/application/explain"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// Runner executes one invocation from raw tokens.
type Runner interface {
	Run(ctx context.Context, tokens []string) error
}

// NewRootCmd wires the cobra root command. The returned cleanup releases the
// history database.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, func(), error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, nil, err
	}
	attachTerminal(container.ExplainService, os.Stdin, os.Stdout, os.Stderr)

	cleanup := func() { _ = container.Close() }
	return newRootCommand(container.ExplainService), cleanup, nil
}

func attachTerminal(svc *explain.Service, in io.Reader, out io.Writer, errOut *os.File) {
	svc.Console = NewConsole(out)
	svc.Prompter = NewPrompter(in, out)
	svc.Progress = NewSpinner(errOut, term.IsTerminal(int(errOut.Fd())))
}

// newRootCommand hands every token, flags included, to runner untouched.
func newRootCommand(runner Runner) *cobra.Command {
	root := &cobra.Command{
		Use:   "explain [question | command [args...]]",
		Short: "explain - ask an AI to explain questions, files and command output",
		Long:  explain.Usage(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if isHelpRequest(args) {
				return cmd.Help()
			}
			return runner.Run(cmd.Context(), args)
		},
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
	}
	return root
}

func isHelpRequest(args []string) bool {
	return len(args) == 1 && (args[0] == "-h" || args[0] == "--help")
}
