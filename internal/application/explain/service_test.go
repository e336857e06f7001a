package explain

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/explain-go/internal/domain"
)

func TestServiceRunExplainsQuestion(t *testing.T) {
	fx := newFixture()
	fx.model.response = domain.ChatResponse{
		Text:      "A zombie is a finished child not yet reaped.",
		ModelName: "gpt-4o-mini",
		Usage:     domain.TokenUsage{PromptTokens: 10, CompletionTokens: 12, TotalTokens: 22},
	}

	err := fx.service.Run(context.Background(), []string{"what", "is", "a", "zombie?"})
	require.NoError(t, err)

	require.Len(t, fx.model.messages, 3)
	assert.Equal(t, domain.ChatMessage{Role: domain.RoleSystem, Content: "system prompt"}, fx.model.messages[0])
	assert.Equal(t, domain.ChatMessage{Role: domain.RoleSystem, Content: "The current time is: 2024-03-01 09:30:00"}, fx.model.messages[1])
	assert.Equal(t, domain.ChatMessage{Role: domain.RoleUser, Content: "Question: what is a zombie?"}, fx.model.messages[2])
	assert.False(t, fx.model.deep)

	assert.Equal(t, []string{"response:A zombie is a finished child not yet reaped."}, fx.console.lines)
	assert.Equal(t, []string{"start:thinking..", "stop"}, fx.progress.events)

	require.Len(t, fx.history.added, 1)
	saved := fx.history.added[0]
	assert.Equal(t, "what is a zombie?", saved.InputText)
	assert.Equal(t, "gpt-4o-mini", saved.ModelName)
	assert.Equal(t, 22, saved.TotalTokens)
}

func TestServiceRunDeepModeLabel(t *testing.T) {
	fx := newFixture()

	require.NoError(t, fx.service.Run(context.Background(), []string{"--think", "why?"}))

	assert.True(t, fx.model.deep)
	assert.Equal(t, []string{"start:thinking deeply..", "stop"}, fx.progress.events)
}

func TestServiceRunIncludesHistoryOnlyInComposition(t *testing.T) {
	fx := newFixture()
	fx.history.entries = []domain.HistoryEntry{{
		InputText:  "previous question",
		OutputText: "previous answer",
		ModelName:  "gpt-4o",
		RecordedAt: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
	}}
	fx.acquirer.content = &domain.InputContent{PipedContent: "log line", ArgumentContent: "and now?"}

	require.NoError(t, fx.service.Run(context.Background(), []string{"--include-history", "2", "and", "now?"}))

	assert.Equal(t, 2, fx.history.lastLimit)
	userMessage := fx.model.messages[len(fx.model.messages)-1].Content
	assert.Equal(t, "=== History ===\n[2024-02-01 08:00:00] Model: gpt-4o\nInput: previous question\nOutput: previous answer\n----------\n\n"+
		"Piped content:\nlog line\n----------\nQuestion: and now?", userMessage)
	require.Len(t, fx.history.added, 1)
	assert.Equal(t, "log line\n[Question: and now?]", fx.history.added[0].InputText)
}

func TestServiceRunEmptyInputPrintsUsage(t *testing.T) {
	fx := newFixture()

	err := fx.service.Run(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	require.Len(t, fx.console.lines, 1)
	assert.True(t, strings.HasPrefix(fx.console.lines[0], "info:Please provide a question"))
	assert.Nil(t, fx.model.messages)
}

func TestServiceRunRejectsOversizedInput(t *testing.T) {
	fx := newFixture()
	fx.acquirer.content = &domain.InputContent{PipedContent: strings.Repeat("x", domain.MaxInputTokensRegular*domain.CharsPerToken)}

	err := fx.service.Run(context.Background(), []string{"--verbose"})

	var oversized *domain.OversizedInputError
	require.True(t, errors.As(err, &oversized))
	assert.Nil(t, fx.model.messages)
	assert.Empty(t, fx.history.added)
}

func TestServiceRunPropagatesAcquisitionError(t *testing.T) {
	fx := newFixture()
	readErr := errors.New("broken pipe")
	fx.acquirer.err = readErr

	err := fx.service.Run(context.Background(), []string{"question"})

	assert.Same(t, readErr, err)
}

func TestServiceRunModelFailureStopsProgress(t *testing.T) {
	fx := newFixture()
	fx.model.err = domain.ErrMissingAPIKey

	err := fx.service.Run(context.Background(), []string{"question"})

	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
	assert.Equal(t, []string{"start:thinking..", "stop"}, fx.progress.events)
	assert.Empty(t, fx.history.added)
}

func TestServiceRunVerbose(t *testing.T) {
	fx := newFixture()
	fx.acquirer.content = &domain.InputContent{PipedContent: "data", ArgumentContent: "what?"}

	require.NoError(t, fx.service.Run(context.Background(), []string{"--verbose", "--think", "what?"}))

	output := strings.Join(fx.console.lines, "\n")
	assert.Contains(t, output, "info:Verbose mode enabled.")
	assert.Contains(t, output, "info:Think deep mode enabled.")
	assert.Contains(t, output, "API Key: ***CONFIGURED***")
	assert.Contains(t, output, "Organization: Not set")
	assert.Contains(t, output, "info:Piped content: data")
	assert.Contains(t, output, "info:Argument content: what?")
	assert.Contains(t, output, "info:Composed content for AI: Piped content:\ndata\n----------\nQuestion: what?")
	assert.Contains(t, fx.console.out.String(), "Estimated input tokens: ~")
}

func TestServiceRunShowHistory(t *testing.T) {
	fx := newFixture()
	fx.history.entries = []domain.HistoryEntry{{InputText: "q", OutputText: "a", ModelName: "m"}}

	require.NoError(t, fx.service.Run(context.Background(), []string{"--show-history", "10"}))

	assert.Equal(t, 10, fx.history.lastLimit)
	assert.Equal(t, []string{"history:1"}, fx.console.lines)
	assert.Nil(t, fx.model.messages)
}

func TestServiceRunShowHistoryEmpty(t *testing.T) {
	fx := newFixture()

	require.NoError(t, fx.service.Run(context.Background(), []string{"--show-history"}))

	assert.Equal(t, domain.DefaultShowHistoryLimit, fx.history.lastLimit)
	assert.Equal(t, []string{"info:No history found."}, fx.console.lines)
}

func TestServiceRunShowHistoryConflict(t *testing.T) {
	fx := newFixture()

	err := fx.service.Run(context.Background(), []string{"--show-history", "--think"})

	var conflict *domain.FlagConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, -1, fx.history.lastLimit)
}

func TestServiceRunClearHistory(t *testing.T) {
	tests := []struct {
		name      string
		confirmed bool
		wantLine  string
		wantClear bool
	}{
		{name: "confirmed", confirmed: true, wantLine: "success:History cleared successfully.", wantClear: true},
		{name: "declined", confirmed: false, wantLine: "info:Operation cancelled."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture()
			fx.prompter.answer = tt.confirmed

			require.NoError(t, fx.service.Run(context.Background(), []string{"--clear-history"}))

			assert.Equal(t, tt.wantClear, fx.history.cleared)
			assert.Equal(t, []string{tt.wantLine}, fx.console.lines)
			assert.Equal(t, 1, fx.prompter.calls)
		})
	}
}

func TestServiceRunClearHistoryConflict(t *testing.T) {
	fx := newFixture()

	err := fx.service.Run(context.Background(), []string{"--clear-history", "\"really?\""})

	var conflict *domain.FlagConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Zero(t, fx.prompter.calls)
	assert.False(t, fx.history.cleared)
}

func TestServiceRunRequiresDependencies(t *testing.T) {
	err := (&Service{}).Run(context.Background(), []string{"x"})
	assert.Error(t, err)
}

func TestUsageListsBothCeilings(t *testing.T) {
	usage := Usage()
	assert.Contains(t, usage, "Regular mode: ~100,000 tokens (~390KB)")
	assert.Contains(t, usage, "Deep mode:    ~100,000 tokens (~390KB)")
}

type fixture struct {
	service  *Service
	acquirer *stubAcquirer
	model    *stubModel
	history  *stubHistory
	console  *recordingConsole
	prompter *stubPrompter
	progress *recordingProgress
}

func newFixture() *fixture {
	fx := &fixture{
		acquirer: &stubAcquirer{},
		model:    &stubModel{response: domain.ChatResponse{Text: "answer", ModelName: "gpt-4o-mini"}},
		history:  &stubHistory{lastLimit: -1},
		console:  &recordingConsole{},
		prompter: &stubPrompter{},
		progress: &recordingProgress{},
	}
	fx.service = &Service{
		Classifier:     NewClassifier(fakeProber{}),
		Acquirer:       fx.acquirer,
		Model:          fx.model,
		History:        fx.history,
		ConfigProvider: stubConfigProvider{cfg: domain.Config{OpenAI: domain.OpenAISettings{APIKey: "sk-test"}}},
		Console:        fx.console,
		Prompter:       fx.prompter,
		Progress:       fx.progress,
		SystemPrompt:   "system prompt",
		Now: func() time.Time {
			return time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
		},
	}
	return fx
}

type stubAcquirer struct {
	content *domain.InputContent
	err     error
}

func (s *stubAcquirer) Acquire(_ context.Context, args domain.Arguments) (*domain.InputContent, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.content != nil {
		return s.content, nil
	}
	return &domain.InputContent{ArgumentContent: args.Question}, nil
}

type stubModel struct {
	response domain.ChatResponse
	err      error
	messages []domain.ChatMessage
	deep     bool
}

func (s *stubModel) Complete(_ context.Context, messages []domain.ChatMessage, thinkDeep bool) (domain.ChatResponse, error) {
	s.messages = messages
	s.deep = thinkDeep
	return s.response, s.err
}

type stubHistory struct {
	entries   []domain.HistoryEntry
	added     []domain.HistoryEntry
	lastLimit int
	cleared   bool
}

func (s *stubHistory) Add(_ context.Context, entry domain.HistoryEntry) error {
	s.added = append(s.added, entry)
	return nil
}

func (s *stubHistory) Latest(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.lastLimit = limit
	return s.entries, nil
}

func (s *stubHistory) Clear(context.Context) error {
	s.cleared = true
	return nil
}

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubPrompter struct {
	answer bool
	calls  int
}

func (s *stubPrompter) ConfirmDestructive(string) (bool, error) {
	s.calls++
	return s.answer, nil
}

type recordingConsole struct {
	lines []string
	out   bytes.Buffer
}

func (c *recordingConsole) Writer() io.Writer { return &c.out }
func (c *recordingConsole) Info(text string) { c.lines = append(c.lines, "info:"+text) }
func (c *recordingConsole) Success(text string) { c.lines = append(c.lines, "success:"+text) }
func (c *recordingConsole) Error(text string) { c.lines = append(c.lines, "error:"+text) }
func (c *recordingConsole) Header(text string) { c.lines = append(c.lines, "header:"+text) }
func (c *recordingConsole) Response(text string) { c.lines = append(c.lines, "response:"+text) }
func (c *recordingConsole) History(entries []domain.HistoryEntry) {
	c.lines = append(c.lines, "history:"+strconv.Itoa(len(entries)))
}

type recordingProgress struct {
	events []string
}

func (p *recordingProgress) Start(label string) { p.events = append(p.events, "start:"+label) }
func (p *recordingProgress) Stop() { p.events = append(p.events, "stop") }
