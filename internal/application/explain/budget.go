package explain

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/explain-go/internal/domain"
)

// BudgetValidator rejects compositions that would exceed the model's input ceiling.
type BudgetValidator struct {
	Verbose bool
	Out     io.Writer
}

// Validate fails with *domain.OversizedInputError when content is longer than
// MaxInputTokens*CharsPerToken characters. Length is counted in runes.
func (v BudgetValidator) Validate(content string, thinkDeep bool) error {
	length := utf8.RuneCountInString(content)
	maxTokens := domain.MaxInputTokens(thinkDeep)
	estimated := domain.EstimateTokens(length)

	if length > maxTokens*domain.CharsPerToken {
		return &domain.OversizedInputError{
			EstimatedTokens: estimated,
			MaxTokens:       maxTokens,
			Mode:            domain.ModeLabel(thinkDeep),
		}
	}

	if v.Verbose && v.Out != nil {
		fmt.Fprintf(v.Out, "Estimated input tokens: ~%s (limit: %s for %s)\n",
			humanize.Comma(int64(estimated)), humanize.Comma(int64(maxTokens)), domain.ModeLabel(thinkDeep))
	}
	return nil
}
