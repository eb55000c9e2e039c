package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
	inputFd      = func(r io.Reader) (int, bool) {
		f, ok := r.(interface{ Fd() uintptr })
		if !ok {
			return 0, false
		}
		return int(f.Fd()), true
	}
)

// prompter reads answers from in, hiding secrets when in is a terminal.
type prompter struct {
	in    *bufio.Reader
	out   io.Writer
	fd    int
	hasFd bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	fd, ok := inputFd(in)
	return &prompter{in: bufio.NewReader(in), out: out, fd: fd, hasFd: ok}
}

// line prints label and reads one line with surrounding whitespace trimmed.
// Use it for usernames, commands and entry numbers.
func (p *prompter) line(label string) (string, error) {
	s, err := p.raw(label)
	return strings.TrimSpace(s), err
}

// raw prints label and reads one line, dropping only the line terminator.
// EOF after partial input returns the partial line.
func (p *prompter) raw(label string) (string, error) {
	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", err
	}
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(s) > 0) {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// secret reads a line without echo on a terminal and as plain text
// otherwise. Either way the bytes are kept as typed, so a password entered
// through a pipe matches the same password typed at a prompt.
func (p *prompter) secret(label string) (string, error) {
	if !p.hasFd || !isTerminal(p.fd) || p.in.Buffered() > 0 {
		return p.raw(label)
	}
	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", err
	}
	b, err := readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return string(b), nil
}

// orPrompt returns v if set, otherwise asks for it.
func (p *prompter) orPrompt(v, label string, hidden bool) (string, error) {
	if v != "" {
		return v, nil
	}
	if hidden {
		return p.secret(label)
	}
	return p.line(label)
}
