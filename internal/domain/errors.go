package domain

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

var (
	// ErrEmptyInput means neither a pipe, a command, nor a question produced any text.
	ErrEmptyInput = errors.New("no input provided: ask a question or pipe content to analyze")
	// ErrMissingAPIKey means the model backend cannot be called.
	ErrMissingAPIKey = errors.New("OpenAI API key is missing: set openai.api_key in the config file or EXPLAIN_OPENAI_KEY")
	// ErrEmptyResponse means the backend answered with no text.
	ErrEmptyResponse = errors.New("received empty response from model backend")
)

// OversizedInputError is returned when a composition exceeds the token ceiling.
type OversizedInputError struct {
	EstimatedTokens int
	MaxTokens       int
	Mode            string
}

func (e *OversizedInputError) Error() string {
	return fmt.Sprintf("input too large: ~%s tokens (max: %s for %s); consider reducing input size or splitting into smaller chunks",
		humanize.Comma(int64(e.EstimatedTokens)), humanize.Comma(int64(e.MaxTokens)), e.Mode)
}

// FlagConflictError is returned when an exclusive history flag is combined with other input.
type FlagConflictError struct {
	Flag string
}

func (e *FlagConflictError) Error() string {
	return fmt.Sprintf("%s cannot be combined with other input or flags", e.Flag)
}
