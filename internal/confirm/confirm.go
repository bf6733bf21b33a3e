// Package confirm solicits single-character choices from the user, with a
// default applied when no explicit answer is given. Implementations are
// interface-backed so the command gate can be tested without a terminal.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer presents a prompt with an enumerated set of valid
// single-character choices and returns the chosen one.
type Confirmer interface {
	// Ask displays prompt and the choices, reading one response. Empty or
	// unreadable input resolves to def. Input outside choices is re-asked
	// until a valid choice (or EOF) arrives.
	Ask(prompt string, choices []string, def string) (string, error)
}

// StdinConfirmer reads responses line-by-line from an input stream.
type StdinConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdinConfirmer creates a confirmer reading from r and prompting on w.
func NewStdinConfirmer(r io.Reader, w io.Writer) *StdinConfirmer {
	return &StdinConfirmer{in: bufio.NewReader(r), out: w}
}

// Ask prompts until a valid choice is entered. EOF and empty input both
// resolve to the default.
func (c *StdinConfirmer) Ask(prompt string, choices []string, def string) (string, error) {
	for {
		_, _ = fmt.Fprintf(c.out, "%s [%s] (%s): ", prompt, strings.Join(choices, "/"), def)

		line, err := c.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading confirmation: %w", err)
		}

		input := strings.ToLower(strings.TrimSpace(line))
		if input == "" {
			return def, nil
		}
		for _, choice := range choices {
			if input == choice {
				return choice, nil
			}
		}
		if errors.Is(err, io.EOF) {
			return def, nil
		}
		_, _ = fmt.Fprintf(c.out, "invalid choice %q\n", input)
	}
}

// Scripted replays pre-configured responses, recording each prompt. Used in tests.
type Scripted struct {
	Responses []string
	Prompts   []string

	next int
}

// NewScripted creates a Scripted confirmer with the given responses.
func NewScripted(responses ...string) *Scripted {
	return &Scripted{Responses: responses}
}

// Ask returns the next scripted response, or the default when the script runs out.
func (s *Scripted) Ask(prompt string, choices []string, def string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.next < len(s.Responses) {
		r := s.Responses[s.next]
		s.next++
		return r, nil
	}
	return def, nil
}
