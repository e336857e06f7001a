package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/explain-go/internal/domain"
	"github.com/doeshing/explain-go/internal/ports"
)

// ANSI palette used for console output.
var (
	colorResponse = lipgloss.Color("5") // magenta
	colorError    = lipgloss.Color("1") // red
	colorSuccess  = lipgloss.Color("2") // green
	colorHeader   = lipgloss.Color("3") // yellow
	colorLabel    = lipgloss.Color("6") // cyan
)

// Console implements ports.Console. Colors are dropped automatically when
// the writer is not a terminal.
type Console struct {
	out      io.Writer
	response lipgloss.Style
	err      lipgloss.Style
	success  lipgloss.Style
	header   lipgloss.Style
	label    lipgloss.Style
}

// NewConsole styles output for out.
func NewConsole(out io.Writer) *Console {
	renderer := lipgloss.NewRenderer(out)
	return &Console{
		out:      out,
		response: renderer.NewStyle().Foreground(colorResponse),
		err:      renderer.NewStyle().Foreground(colorError),
		success:  renderer.NewStyle().Foreground(colorSuccess),
		header:   renderer.NewStyle().Foreground(colorHeader),
		label:    renderer.NewStyle().Foreground(colorLabel),
	}
}

// Writer exposes the underlying sink for plain diagnostics.
func (c *Console) Writer() io.Writer { return c.out }

// Info prints an unstyled line.
func (c *Console) Info(text string) {
	fmt.Fprintln(c.out, text)
}

// Success prints a line in green.
func (c *Console) Success(text string) {
	fmt.Fprintln(c.out, paint(c.success, text))
}

// Error prints a line in red.
func (c *Console) Error(text string) {
	fmt.Fprintln(c.out, paint(c.err, text))
}

// Header prints a line in yellow.
func (c *Console) Header(text string) {
	fmt.Fprintln(c.out, paint(c.header, text))
}

// Response prints the model answer in magenta.
func (c *Console) Response(text string) {
	fmt.Fprintln(c.out, paint(c.response, text))
}

// History lists entries newest first with labelled, colorized fields.
func (c *Console) History(entries []domain.HistoryEntry) {
	c.Header(domain.HistoryBanner)
	for _, entry := range entries {
		fmt.Fprintln(c.out, paint(c.label, entry.Header()))
		fmt.Fprintln(c.out, c.label.Render("Input: ")+entry.InputText)
		fmt.Fprintln(c.out, c.label.Render("Output: ")+paint(c.response, entry.OutputText))
		fmt.Fprintln(c.out, paint(c.success, domain.HistorySeparator))
	}
}

// paint styles each line on its own; lipgloss pads multi-line blocks to a
// common width otherwise.
func paint(style lipgloss.Style, text string) string {
	if !strings.Contains(text, "\n") {
		return style.Render(text)
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

var _ ports.Console = (*Console)(nil)
