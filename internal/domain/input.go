package domain

import "strings"

const (
	pipedContentLabel = "Piped content:"
	questionLabel     = "Question:"
	sectionSeparator  = "----------"
)

// PromptSource renders user input for the two audiences: the model and the history store.
type PromptSource interface {
	ComposeForAI() string
	RawUserInput() string
}

// InputContent holds the fragments gathered for one invocation.
type InputContent struct {
	PipedContent    string
	ArgumentContent string
}

// HasPipedInput reports whether piped or subprocess text was captured.
func (c *InputContent) HasPipedInput() bool {
	return strings.TrimSpace(c.PipedContent) != ""
}

// HasArgumentInput reports whether a question was supplied on the command line.
func (c *InputContent) HasArgumentInput() bool {
	return strings.TrimSpace(c.ArgumentContent) != ""
}

// IsEmpty reports whether there is nothing to send to the model.
func (c *InputContent) IsEmpty() bool {
	return !c.HasPipedInput() && !c.HasArgumentInput()
}

// ComposeForAI renders the model-facing prompt.
func (c *InputContent) ComposeForAI() string {
	switch {
	case c.HasPipedInput() && c.HasArgumentInput():
		return pipedContentLabel + "\n" + c.PipedContent + "\n" + sectionSeparator + "\n" + questionLabel + " " + c.ArgumentContent
	case c.HasPipedInput():
		return pipedContentLabel + "\n" + c.PipedContent
	case c.HasArgumentInput():
		return questionLabel + " " + c.ArgumentContent
	default:
		return ""
	}
}

// RawUserInput renders the input as it is stored in history, without prompt framing.
func (c *InputContent) RawUserInput() string {
	switch {
	case c.HasPipedInput() && c.HasArgumentInput():
		return c.PipedContent + "\n[" + questionLabel + " " + c.ArgumentContent + "]"
	case c.HasPipedInput():
		return c.PipedContent
	case c.HasArgumentInput():
		return c.ArgumentContent
	default:
		return ""
	}
}

// HistoryAugmentedInput prepends a history digest to the model-facing rendering only.
// It reads through to Base; it owns no copy of the fragments.
type HistoryAugmentedInput struct {
	Base   *InputContent
	Digest string
}

// WithHistory wraps content with a digest. An empty digest leaves rendering unchanged.
func WithHistory(content *InputContent, digest string) *HistoryAugmentedInput {
	return &HistoryAugmentedInput{Base: content, Digest: digest}
}

// ComposeForAI implements PromptSource.
func (h *HistoryAugmentedInput) ComposeForAI() string {
	return ComposeWithHistory(h.Base, h.Digest)
}

// RawUserInput implements PromptSource. History never leaks into the stored input.
func (h *HistoryAugmentedInput) RawUserInput() string {
	return h.Base.RawUserInput()
}

// ComposeWithHistory renders content for the model with an optional digest in front.
func ComposeWithHistory(content *InputContent, digest string) string {
	composed := content.ComposeForAI()
	if digest == "" {
		return composed
	}
	return digest + "\n" + composed
}

var (
	_ PromptSource = (*InputContent)(nil)
	_ PromptSource = (*HistoryAugmentedInput)(nil)
)
