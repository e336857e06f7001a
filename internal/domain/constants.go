package domain

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Input budget. Both modes share a ceiling today but are configured independently.
const (
	// CharsPerToken is the fixed heuristic used instead of a real tokenizer.
	CharsPerToken = 4
	// MaxInputTokensRegular bounds input for the default model.
	MaxInputTokensRegular = 100_000
	// MaxInputTokensDeep bounds input when --think selects the smart model.
	MaxInputTokensDeep = 100_000
)

// Mode labels used in budget diagnostics.
const (
	ModeRegular = "regular mode"
	ModeDeep    = "deep mode"
)

// History rendering constants
const (
	// HistoryTimestampFormat is the timestamp layout shown in history listings and digests.
	HistoryTimestampFormat = "2006-01-02 15:04:05"
	// HistoryBanner heads every history listing.
	HistoryBanner = "=== History ==="
	// HistorySeparator closes each history entry.
	HistorySeparator = "----------"
)

// Time formats
const (
	// TimestampFormat is the storage timestamp format. Fixed width so that
	// UTC values sort lexically.
	TimestampFormat = "2006-01-02T15:04:05.000000000Z07:00"
	// PromptClockFormat is the layout of the current-time system message.
	PromptClockFormat = "2006-01-02 15:04:05"
)

// Model defaults
const (
	DefaultModelName      = "gpt-4o-mini"
	DefaultSmartModelName = "gpt-4o"
	DefaultTemperature    = 0.1
	DefaultSeed           = 1235431345345
)

// EstimateTokens applies the CharsPerToken heuristic, rounding up.
func EstimateTokens(length int) int {
	return (length + CharsPerToken - 1) / CharsPerToken
}

// MaxInputTokens returns the ceiling for the selected mode.
func MaxInputTokens(thinkDeep bool) int {
	if thinkDeep {
		return MaxInputTokensDeep
	}
	return MaxInputTokensRegular
}

// ModeLabel names the selected mode for diagnostics.
func ModeLabel(thinkDeep bool) string {
	if thinkDeep {
		return ModeDeep
	}
	return ModeRegular
}
