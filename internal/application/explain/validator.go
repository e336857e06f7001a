package explain

import (
	"strings"

	"github.com/doeshing/explain-go/internal/domain"
)

// ValidateShowHistory rejects --show-history combined with a question, --think or --clear-history.
func ValidateShowHistory(args domain.Arguments) error {
	if !args.ShowHistory {
		return nil
	}
	if hasQuestion(args) || args.ThinkDeep || args.ClearHistory {
		return &domain.FlagConflictError{Flag: FlagShowHistory}
	}
	return nil
}

// ValidateClearHistory rejects --clear-history combined with a question, --think or --show-history.
func ValidateClearHistory(args domain.Arguments) error {
	if !args.ClearHistory {
		return nil
	}
	if hasQuestion(args) || args.ThinkDeep || args.ShowHistory {
		return &domain.FlagConflictError{Flag: FlagClearHistory}
	}
	return nil
}

// hasQuestion treats a resolved command as input too: "explain --show-history ls"
// is as ambiguous as "explain --show-history what is ls".
func hasQuestion(args domain.Arguments) bool {
	return strings.TrimSpace(args.Question) != "" || args.HasCommand()
}
