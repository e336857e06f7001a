package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/explain-go/internal/ports"
)

// Prompter implements ConfirmationPrompter using stdin/stdout.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ConfirmDestructive describes the operation and requires the user to type
// "yes" in any letter case. End of input counts as a refusal.
func (p *Prompter) ConfirmDestructive(message string) (bool, error) {
	fmt.Fprintln(p.out, message)
	fmt.Fprint(p.out, "Are you sure you want to continue? Type 'yes' to confirm: ")
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.out)
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes"), nil
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
