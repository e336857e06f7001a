// Package explain implements the explain use case: classify the command line,
// acquire content, compose the prompt, enforce the input budget, call the
// model and record history.
package explain

import (
	"strconv"
	"strings"

	"github.com/doeshing/explain-go/internal/domain"
	"github.com/doeshing/explain-go/internal/ports"
)

// Control flags recognized anywhere on the command line.
const (
	FlagVerbose        = "--verbose"
	FlagThink          = "--think"
	FlagShowHistory    = "--show-history"
	FlagIncludeHistory = "--include-history"
	FlagClearHistory   = "--clear-history"
)

// Classifier turns raw tokens into domain.Arguments. It never fails.
type Classifier struct {
	prober ports.ExecutableProber
}

// NewClassifier builds a classifier that uses prober to recognize programs.
func NewClassifier(prober ports.ExecutableProber) *Classifier {
	return &Classifier{prober: prober}
}

// Classify splits tokens into control flags, a question, and an optional command.
func (c *Classifier) Classify(tokens []string) domain.Arguments {
	args := domain.NewArguments()
	if len(tokens) == 0 {
		return args
	}

	remaining := extractFlags(tokens, &args)
	quoted, bare := splitQuoted(remaining)
	question := strings.TrimSpace(strings.Join(quoted, " "))

	if len(bare) > 0 {
		c.assignBareTokens(bare, question != "", &args)
	}

	if question != "" {
		args.Question = question
	}
	return args
}

// assignBareTokens prefers the first token as the program, then the last, then
// falls back to treating the tokens as the question.
func (c *Classifier) assignBareTokens(bare []string, hasQuotedQuestion bool, args *domain.Arguments) {
	if c.isExecutable(bare[0]) {
		args.Command = bare[0]
		args.CommandArguments = append([]string{}, bare[1:]...)
		return
	}
	last := len(bare) - 1
	if last > 0 && c.isExecutable(bare[last]) {
		args.Command = bare[last]
		args.CommandArguments = append([]string{}, bare[:last]...)
		return
	}
	if !hasQuotedQuestion {
		args.Question = strings.Join(bare, " ")
	}
}

func (c *Classifier) isExecutable(token string) bool {
	if c.prober == nil {
		return false
	}
	return c.prober.IsExecutable(token)
}

// extractFlags removes control flags, and any integer that follows a limit flag.
func extractFlags(tokens []string, args *domain.Arguments) []string {
	remaining := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case FlagVerbose:
			args.IsVerbose = true
		case FlagThink:
			args.ThinkDeep = true
		case FlagClearHistory:
			args.ClearHistory = true
		case FlagShowHistory:
			args.ShowHistory = true
			if limit, ok := limitAt(tokens, i+1); ok {
				args.HistoryLimit = limit
				i++
			}
		case FlagIncludeHistory:
			args.IncludeHistory = true
			if limit, ok := limitAt(tokens, i+1); ok {
				args.IncludeHistoryLimit = limit
				i++
			}
		default:
			remaining = append(remaining, tokens[i])
		}
	}
	return remaining
}

func limitAt(tokens []string, idx int) (int, bool) {
	if idx >= len(tokens) {
		return 0, false
	}
	limit, err := strconv.Atoi(tokens[idx])
	if err != nil {
		return 0, false
	}
	return limit, true
}

// splitQuoted separates quote-delimited runs from bare tokens. Quote characters
// surrounding a run are stripped.
func splitQuoted(tokens []string) (quoted []string, bare []string) {
	inQuote := false
	for _, token := range tokens {
		if !inQuote && startsWithQuote(token) {
			inQuote = true
			token = token[1:]
			if endsWithQuote(token) {
				token = token[:len(token)-1]
				inQuote = false
			}
			quoted = append(quoted, token)
			continue
		}
		if inQuote {
			if endsWithQuote(token) {
				token = token[:len(token)-1]
				inQuote = false
			}
			quoted = append(quoted, token)
			continue
		}
		bare = append(bare, token)
	}
	return quoted, bare
}

func startsWithQuote(token string) bool {
	return token != "" && isQuote(token[0])
}

func endsWithQuote(token string) bool {
	return token != "" && isQuote(token[len(token)-1])
}

func isQuote(b byte) bool {
	return b == '"' || b == '\''
}
