package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter reads answers line by line from the command's input.
type prompter struct {
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	if br, ok := in.(*bufio.Reader); ok {
		return &prompter{r: br, out: out}
	}
	return &prompter{r: bufio.NewReader(in), out: out}
}

// Line prints label and returns the next line without its line ending.
// io.EOF is returned only when nothing was read.
func (p *prompter) Line(label string) (string, error) {
	if label != "" {
		fmt.Fprint(p.out, label)
	}
	line, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks a [y/N] question. Anything but y or yes is no.
func (p *prompter) Confirm(question string) bool {
	answer, err := p.Line(question + " [y/N] ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
