// Package ui holds the host-side adapters that render listings and collect
// user input: a line-oriented console, an fzf picker and a full-screen browser.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Console prompts on and notifies through plain streams. Prompts are only
// printed when the input is a terminal, so piped input stays quiet.
type Console struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewConsole creates a console host reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &Console{in: bufio.NewReader(in), out: out, interactive: interactive}
}

// Prompt reads one line. End of input without text counts as cancelled.
func (c *Console) Prompt(heading string) (string, bool) {
	if c.interactive {
		fmt.Fprintf(c.out, "%s: ", heading)
	}
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// Notify prints a one-line notification.
func (c *Console) Notify(heading, message string) {
	fmt.Fprintf(c.out, "%s: %s\n", heading, message)
}

// Query is a prompter that always answers with a fixed string. An empty
// Query behaves like a cancelled prompt.
type Query string

// Prompt returns the query.
func (q Query) Prompt(string) (string, bool) {
	return string(q), q != ""
}

// Notice is a notification captured for later display.
type Notice struct {
	Heading string
	Message string
}

func (n Notice) String() string {
	return n.Heading + ": " + n.Message
}

// Recorder collects notifications instead of showing them.
type Recorder struct {
	Notices []Notice
}

// Notify records the notification.
func (r *Recorder) Notify(heading, message string) {
	r.Notices = append(r.Notices, Notice{Heading: heading, Message: message})
}
