package domain

// Default history limits applied when a history flag is given without a count.
const (
	DefaultShowHistoryLimit    = 5
	DefaultIncludeHistoryLimit = 3
)

// Arguments is the classified form of one invocation's command line.
// It is built once by the argument classifier and treated as read-only afterwards.
type Arguments struct {
	Question            string
	IsVerbose           bool
	ThinkDeep           bool
	ShowHistory         bool
	ClearHistory        bool
	IncludeHistory      bool
	HistoryLimit        int
	IncludeHistoryLimit int

	// Command is the program to execute when no stdin pipe is present.
	Command          string
	CommandArguments []string
}

// NewArguments returns arguments carrying only the default limits.
func NewArguments() Arguments {
	return Arguments{
		HistoryLimit:        DefaultShowHistoryLimit,
		IncludeHistoryLimit: DefaultIncludeHistoryLimit,
	}
}

// HasCommand reports whether a program to execute was resolved.
func (a Arguments) HasCommand() bool {
	return a.Command != ""
}

// CommandLine renders the command and its arguments as typed by the user.
func (a Arguments) CommandLine() string {
	if a.Command == "" {
		return ""
	}
	line := a.Command
	for _, arg := range a.CommandArguments {
		line += " " + arg
	}
	return line
}
