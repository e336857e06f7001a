package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/doeshing/explain-go/internal/infrastructure/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	opts := cli.Options{Verbose: isVerbose(os.Args[1:])}

	root, cleanup, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	err = root.ExecuteContext(ctx)
	cleanup()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// isVerbose enables debug logging for --verbose or EXPLAIN_DEBUG.
func isVerbose(args []string) bool {
	for _, arg := range args {
		if arg == "--verbose" {
			return true
		}
	}
	debug := os.Getenv("EXPLAIN_DEBUG")
	return strings.EqualFold(debug, "1") || strings.EqualFold(debug, "true")
}
