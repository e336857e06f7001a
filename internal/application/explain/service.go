package explain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/explain-go/internal/domain"
	"github.com/doeshing/explain-go/internal/ports"
)

// Spinner labels shown while the model is working.
const (
	ThinkingLabel       = "thinking.."
	ThinkingDeeplyLabel = "thinking deeply.."
)

// Service runs one explain invocation end-to-end.
type Service struct {
	Classifier     *Classifier
	Acquirer       ports.InputAcquirer
	Model          ports.ChatModel
	History        ports.HistoryRepository
	ConfigProvider ports.ConfigProvider
	Console        ports.Console
	Prompter       ports.ConfirmationPrompter
	Progress       ports.ProgressIndicator
	Logger         ports.Logger

	// SystemPrompt is sent ahead of every user message.
	SystemPrompt string
	// Now is the clock used for the current-time message; nil means time.Now.
	Now func() time.Time
}

// Run classifies tokens and dispatches to history display, history clearing,
// or a model call.
func (s *Service) Run(ctx context.Context, tokens []string) error {
	if s.Classifier == nil || s.Acquirer == nil || s.Model == nil || s.History == nil || s.Console == nil {
		return errors.New("explain.Service dependencies not satisfied")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	args := s.Classifier.Classify(tokens)

	if args.ShowHistory {
		return s.showHistory(ctx, args)
	}
	if args.ClearHistory {
		return s.clearHistory(ctx, args)
	}
	return s.explain(ctx, args)
}

func (s *Service) showHistory(ctx context.Context, args domain.Arguments) error {
	if err := ValidateShowHistory(args); err != nil {
		return err
	}
	entries, err := s.History.Latest(ctx, args.HistoryLimit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(entries) == 0 {
		s.Console.Info("No history found.")
		return nil
	}
	s.Console.History(entries)
	return nil
}

func (s *Service) clearHistory(ctx context.Context, args domain.Arguments) error {
	if err := ValidateClearHistory(args); err != nil {
		return err
	}
	if s.Prompter == nil {
		return errors.New("confirmation prompter not configured")
	}
	confirmed, err := s.Prompter.ConfirmDestructive("This will permanently delete all history entries.")
	if err != nil {
		return fmt.Errorf("read confirmation: %w", err)
	}
	if !confirmed {
		s.Console.Info("Operation cancelled.")
		return nil
	}
	if err := s.History.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	s.Console.Success("History cleared successfully.")
	return nil
}

func (s *Service) explain(ctx context.Context, args domain.Arguments) error {
	digest := ""
	if args.IncludeHistory {
		entries, err := s.History.Latest(ctx, args.IncludeHistoryLimit)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		digest = domain.FormatHistoryDigest(entries)
	}

	content, err := s.Acquirer.Acquire(ctx, args)
	if err != nil {
		return err
	}
	if content.IsEmpty() {
		s.Console.Info(Usage())
		return domain.ErrEmptyInput
	}

	prompt := domain.WithHistory(content, digest)
	composed := prompt.ComposeForAI()

	budget := BudgetValidator{Verbose: args.IsVerbose, Out: s.Console.Writer()}
	if err := budget.Validate(composed, args.ThinkDeep); err != nil {
		return err
	}

	if args.IsVerbose {
		s.showVerbose(ctx, args, content, composed)
	}

	response, err := s.complete(ctx, composed, args.ThinkDeep)
	if err != nil {
		return err
	}

	s.Console.Response(response.Text)

	entry := domain.NewHistoryEntry(prompt.RawUserInput(), response.Text, response.ModelName, response.Usage)
	if err := s.History.Add(ctx, entry); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	s.debug("exchange recorded", map[string]interface{}{
		"model":        response.ModelName,
		"total_tokens": response.Usage.TotalTokens,
	})
	return nil
}

// complete sends the prompt and keeps the progress indicator running only
// while the call is in flight.
func (s *Service) complete(ctx context.Context, composed string, thinkDeep bool) (domain.ChatResponse, error) {
	messages := s.buildMessages(composed)

	label := ThinkingLabel
	if thinkDeep {
		label = ThinkingDeeplyLabel
	}
	if s.Progress != nil {
		s.Progress.Start(label)
	}
	response, err := s.Model.Complete(ctx, messages, thinkDeep)
	if s.Progress != nil {
		s.Progress.Stop()
	}
	if err != nil {
		return domain.ChatResponse{}, fmt.Errorf("model completion: %w", err)
	}
	return response, nil
}

func (s *Service) buildMessages(composed string) []domain.ChatMessage {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	messages := make([]domain.ChatMessage, 0, 3)
	if s.SystemPrompt != "" {
		messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: s.SystemPrompt})
	}
	messages = append(messages,
		domain.ChatMessage{Role: domain.RoleSystem, Content: "The current time is: " + now().Format(domain.PromptClockFormat)},
		domain.ChatMessage{Role: domain.RoleUser, Content: composed},
	)
	return messages
}

func (s *Service) showVerbose(ctx context.Context, args domain.Arguments, content *domain.InputContent, composed string) {
	s.Console.Info("Verbose mode enabled.")
	if args.ThinkDeep {
		s.Console.Info("Think deep mode enabled.")
	}

	if s.ConfigProvider != nil {
		cfg, err := s.ConfigProvider.Load(ctx)
		if err != nil {
			s.Console.Error(fmt.Sprintf("Unable to load configuration: %v", err))
		} else {
			s.Console.Info(ConfigurationSummary(cfg))
		}
	}

	if content.HasPipedInput() {
		s.Console.Info("Input received from pipe.")
		s.Console.Info("Piped content: " + content.PipedContent)
	}
	if content.HasArgumentInput() {
		s.Console.Info("Argument content: " + content.ArgumentContent)
	}
	s.Console.Info("Composed content for AI: " + composed)
}

func (s *Service) debug(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Debug(msg, fields)
	}
}

// ConfigurationSummary renders the configuration with the API key masked.
func ConfigurationSummary(cfg domain.Config) string {
	var b strings.Builder
	b.WriteString("=== Configuration ===\n")
	b.WriteString("API Key: " + cfg.MaskedAPIKey() + "\n")
	b.WriteString("Model Name: " + cfg.ModelFor(false) + "\n")
	b.WriteString("Smart Model Name: " + cfg.ModelFor(true) + "\n")
	b.WriteString("Organization: " + cfg.OrganizationOrDefault() + "\n")
	b.WriteString("=====================")
	return b.String()
}

// Usage describes the accepted invocations and the input ceilings.
func Usage() string {
	var b strings.Builder
	b.WriteString("Please provide a question to explain or pipe content to analyze.\n")
	b.WriteString("Usage:\n")
	b.WriteString("  explain \"your question here\" [--verbose] [--think]\n")
	b.WriteString("  cat file.txt | explain [\"specific question about the content\"] [--verbose] [--think]\n")
	b.WriteString("  explain <command> [args...] [\"question about its output\"]\n")
	b.WriteString("  explain --show-history [N]\n")
	b.WriteString("  explain --clear-history\n")
	b.WriteString("  explain --include-history [N] \"follow-up question\"\n")
	b.WriteString("\n")
	b.WriteString("Input limits:\n")
	fmt.Fprintf(&b, "  Regular mode: ~%s tokens (~%sKB)\n", humanize.Comma(domain.MaxInputTokensRegular),
		humanize.Comma(domain.MaxInputTokensRegular*domain.CharsPerToken/1024))
	fmt.Fprintf(&b, "  Deep mode:    ~%s tokens (~%sKB)", humanize.Comma(domain.MaxInputTokensDeep),
		humanize.Comma(domain.MaxInputTokensDeep*domain.CharsPerToken/1024))
	return b.String()
}
