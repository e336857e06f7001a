// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The explain use case depends only on these abstractions. Adapters in the
// infrastructure layer implement them: the filesystem prober, the stdin and
// subprocess acquirer, the SQLite history store, the OpenAI chat client and
// the styled console.
package ports

import (
	"context"
	"io"

	"github.com/doeshing/explain-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.config/explain/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ExecutableProber decides whether a command-line token names a runnable program.
type ExecutableProber interface {
	IsExecutable(token string) bool
	// Resolve returns the path that would be invoked for token.
	Resolve(token string) (string, bool)
}

// InputAcquirer gathers the text to explain from stdin, a subprocess, or the arguments.
type InputAcquirer interface {
	Acquire(ctx context.Context, args domain.Arguments) (*domain.InputContent, error)
}

// ChatModel is the language-model backend.
type ChatModel interface {
	Complete(ctx context.Context, messages []domain.ChatMessage, thinkDeep bool) (domain.ChatResponse, error)
}

// HistoryRepository persists question/answer exchanges.
type HistoryRepository interface {
	Add(ctx context.Context, entry domain.HistoryEntry) error
	// Latest returns at most limit entries, most recent first.
	Latest(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
	Clear(ctx context.Context) error
}

// ConfirmationPrompter asks the user to approve a destructive operation.
type ConfirmationPrompter interface {
	ConfirmDestructive(message string) (bool, error)
}

// Console is the output sink for everything the user sees.
type Console interface {
	Writer() io.Writer
	Info(text string)
	Success(text string)
	Error(text string)
	Header(text string)
	Response(text string)
	History(entries []domain.HistoryEntry)
}

// ProgressIndicator animates while a long call is in flight.
type ProgressIndicator interface {
	Start(label string)
	Stop()
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
