// Package input gathers the text to explain: a redirected stdin, the output of
// a command named on the command line, or the literal question.
package input

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/doeshing/explain-go/internal/domain"
	"github.com/doeshing/explain-go/internal/ports"
)

// StderrMarker introduces captured standard error in subprocess output.
const StderrMarker = "(stderr):"

// pipeWaitDelay bounds how long Wait lingers on pipes after the child is killed.
const pipeWaitDelay = 500 * time.Millisecond

// Acquirer implements ports.InputAcquirer.
type Acquirer struct {
	stdin           io.Reader
	stdinRedirected func() bool
	prober          ports.ExecutableProber
	logger          ports.Logger
	commandTimeout  time.Duration
}

// Option customizes an Acquirer.
type Option func(*Acquirer)

// WithStdin replaces the process stdin and its redirection check.
func WithStdin(r io.Reader, redirected bool) Option {
	return func(a *Acquirer) {
		a.stdin = r
		a.stdinRedirected = func() bool { return redirected }
	}
}

// WithCommandTimeout bounds how long a spawned command may run. Zero disables the deadline.
func WithCommandTimeout(d time.Duration) Option {
	return func(a *Acquirer) {
		a.commandTimeout = d
	}
}

// NewAcquirer builds an acquirer reading the process stdin.
func NewAcquirer(prober ports.ExecutableProber, logger ports.Logger, opts ...Option) *Acquirer {
	a := &Acquirer{
		stdin:           os.Stdin,
		stdinRedirected: StdinIsRedirected,
		prober:          prober,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// StdinIsRedirected reports whether stdin is a pipe or file rather than a terminal.
func StdinIsRedirected() bool {
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

// Acquire resolves content in priority order: piped stdin, command output, question.
// Stdin read errors are returned as-is; command failures only leave the piped
// content empty. A command cut off by the deadline or cancellation contributes
// no output.
func (a *Acquirer) Acquire(ctx context.Context, args domain.Arguments) (*domain.InputContent, error) {
	content := &domain.InputContent{ArgumentContent: args.Question}

	if a.stdinRedirected != nil && a.stdinRedirected() {
		piped, err := a.readStdin()
		if err != nil {
			return nil, err
		}
		if piped != "" {
			content.PipedContent = piped
			return content, nil
		}
	}

	if !args.HasCommand() {
		return content, nil
	}

	content.PipedContent = a.runCommand(ctx, args)
	if content.PipedContent == "" && strings.TrimSpace(args.Question) == "" {
		content.ArgumentContent = args.CommandLine()
	}
	return content, nil
}

func (a *Acquirer) readStdin() (string, error) {
	if a.stdin == nil {
		return "", nil
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// runCommand executes the command without a shell and drains stdout and stderr
// concurrently before waiting, so a child that fills both pipes cannot block.
func (a *Acquirer) runCommand(ctx context.Context, args domain.Arguments) string {
	path := args.Command
	if a.prober != nil {
		if resolved, ok := a.prober.Resolve(args.Command); ok {
			path = resolved
		}
	}

	if a.commandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.commandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, args.CommandArguments...)
	isolateProcessGroup(cmd)
	cmd.WaitDelay = pipeWaitDelay
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		a.debug("stdout pipe failed", path, err)
		return ""
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		a.debug("stderr pipe failed", path, err)
		return ""
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		a.debug("command failed to start", path, err)
		return ""
	}

	// Cancellation also closes our ends of the pipes: a descendant that escaped
	// the process group must not keep the drain blocked.
	stopClosing := context.AfterFunc(ctx, func() {
		_ = stdoutPipe.Close()
		_ = stderrPipe.Close()
	})
	defer stopClosing()

	var stdout, stderr bytes.Buffer
	var group errgroup.Group
	group.Go(func() error {
		_, err := io.Copy(&stdout, stdoutPipe)
		return err
	})
	group.Go(func() error {
		_, err := io.Copy(&stderr, stderrPipe)
		return err
	})
	readErr := group.Wait()
	waitErr := cmd.Wait()

	fields := map[string]interface{}{
		"command":     path,
		"duration_ms": time.Since(start).Milliseconds(),
		"stdout_len":  stdout.Len(),
		"stderr_len":  stderr.Len(),
	}
	if readErr != nil {
		fields["read_error"] = readErr.Error()
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		fields["exit_code"] = exitErr.ExitCode()
	} else if waitErr != nil {
		fields["wait_error"] = waitErr.Error()
	}
	if ctx.Err() != nil {
		fields["context"] = ctx.Err().Error()
	}
	if a.logger != nil {
		a.logger.Debug("command finished", fields)
	}

	if ctx.Err() != nil {
		return ""
	}
	return CombineOutput(stdout.String(), stderr.String())
}

func (a *Acquirer) debug(msg, path string, err error) {
	if a.logger == nil {
		return
	}
	a.logger.Debug(msg, map[string]interface{}{"command": path, "error": err.Error()})
}

// CombineOutput merges trimmed stdout with stderr appended under StderrMarker.
func CombineOutput(stdout, stderr string) string {
	stdout = strings.TrimSpace(stdout)
	stderr = strings.TrimSpace(stderr)
	switch {
	case stderr == "":
		return stdout
	case stdout == "":
		return StderrMarker + "\n" + stderr
	default:
		return stdout + "\n" + StderrMarker + "\n" + stderr
	}
}

var _ ports.InputAcquirer = (*Acquirer)(nil)
