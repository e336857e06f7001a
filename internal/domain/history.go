package domain

import (
	"fmt"
	"strings"
	"time"
)

// HistoryEntry is one persisted question/answer exchange.
type HistoryEntry struct {
	ID               int64
	InputText        string
	OutputText       string
	ModelName        string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	RecordedAt       time.Time
}

// NewHistoryEntry builds an entry stamped with the current time.
func NewHistoryEntry(input, output, modelName string, usage TokenUsage) HistoryEntry {
	return HistoryEntry{
		InputText:        input,
		OutputText:       output,
		ModelName:        modelName,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		RecordedAt:       time.Now(),
	}
}

// Validate checks the fields the history store requires.
func (e HistoryEntry) Validate() error {
	switch {
	case e.InputText == "":
		return fmt.Errorf("history input text cannot be empty")
	case e.OutputText == "":
		return fmt.Errorf("history output text cannot be empty")
	case e.ModelName == "":
		return fmt.Errorf("history model name cannot be empty")
	case e.PromptTokens < 0:
		return fmt.Errorf("prompt tokens cannot be negative: %d", e.PromptTokens)
	case e.CompletionTokens < 0:
		return fmt.Errorf("completion tokens cannot be negative: %d", e.CompletionTokens)
	case e.TotalTokens < 0:
		return fmt.Errorf("total tokens cannot be negative: %d", e.TotalTokens)
	}
	return nil
}

// Header returns the "[timestamp] Model: name" line shared by every history rendering.
func (e HistoryEntry) Header() string {
	return fmt.Sprintf("[%s] Model: %s", e.RecordedAt.Format(HistoryTimestampFormat), e.ModelName)
}

// FormatHistoryDigest renders entries as the plain-text block prepended to a prompt.
// It returns "" for an empty list.
func FormatHistoryDigest(entries []HistoryEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(HistoryBanner + "\n")
	for _, entry := range entries {
		b.WriteString(entry.Header() + "\n")
		b.WriteString("Input: " + entry.InputText + "\n")
		b.WriteString("Output: " + entry.OutputText + "\n")
		b.WriteString(HistorySeparator + "\n")
	}
	return b.String()
}
