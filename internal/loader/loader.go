// Package loader reads and writes the line-oriented machine description:
//
//	<start state>
//	<q>,<s>,<qt>,<L|R>[,<write>]   (zero or more)
//	0
//	<input word>
//
// Fields are positional, so any single character, including ',', may be used
// as a symbol.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/san-kum/turing/internal/tm"
)

const terminator = "0"

type Description struct {
	Start tm.State
	Table *tm.Table
	Word  string
}

// Machine builds a fresh machine for this description.
func (d *Description) Machine(cfg tm.Config) (*tm.Machine, error) {
	return tm.New(d.Table, d.Start, d.Word, cfg)
}

// WithWord returns a copy of d running on a different input word.
func (d *Description) WithWord(word string) (*Description, error) {
	if err := checkWord(word); err != nil {
		return nil, err
	}
	c := *d
	c.Word = word
	return &c, nil
}

// SyntaxError reports the offending line of a description.
type SyntaxError struct {
	Line int
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("description: %v", e.Err)
	}
	return fmt.Sprintf("description line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func ParseString(s string) (*Description, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads a description. Blank lines are skipped and every line is trimmed.
func Parse(r io.Reader) (*Description, error) {
	sc := bufio.NewScanner(r)
	d := &Description{Table: tm.NewTable()}

	const (
		wantStart = iota
		wantTransition
		wantWord
		done
	)
	phase := wantStart
	lineNo := 0

	for sc.Scan() {
		lineNo++
		// transition lines keep trailing spaces: ' ' is a legal symbol
		raw := strings.TrimLeft(strings.TrimRight(sc.Text(), "\r"), " \t")
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		fail := func(err error) error {
			return &SyntaxError{Line: lineNo, Text: line, Err: err}
		}

		switch phase {
		case wantStart:
			q, err := parseState(line)
			if err != nil {
				return nil, fail(err)
			}
			d.Start = q
			phase = wantTransition

		case wantTransition:
			if line == terminator {
				phase = wantWord
				continue
			}
			tr, err := ParseTransition(raw)
			if err != nil {
				return nil, fail(err)
			}
			if err := d.Table.Insert(tr); err != nil {
				return nil, fail(err)
			}

		case wantWord:
			if err := checkWord(line); err != nil {
				return nil, fail(err)
			}
			d.Word = line
			phase = done

		case done:
			return nil, fail(fmt.Errorf("%w: unexpected content after input word", tm.ErrMalformedDescription))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read description: %w", err)
	}

	switch phase {
	case wantStart:
		return nil, &SyntaxError{Err: fmt.Errorf("%w: missing start state", tm.ErrMalformedDescription)}
	case wantTransition:
		return nil, &SyntaxError{Line: lineNo, Err: fmt.Errorf("%w: missing %q terminator after transitions", tm.ErrMalformedDescription, terminator)}
	}
	return d, nil
}

// ParseTransition parses one q,s,qt,m[,st] line.
func ParseTransition(line string) (tm.Transition, error) {
	var tr tm.Transition
	p := &cursor{s: line}

	from, err := p.state()
	if err != nil {
		return tr, err
	}
	if from == tm.Accept {
		return tr, fmt.Errorf("%w: transition out of accept state 0", tm.ErrMalformedDescription)
	}
	if err := p.comma("read symbol"); err != nil {
		return tr, err
	}
	read, err := p.symbol("read symbol")
	if err != nil {
		return tr, err
	}
	if err := p.comma("target state"); err != nil {
		return tr, err
	}
	to, err := p.state()
	if err != nil {
		return tr, err
	}
	if err := p.comma("direction"); err != nil {
		return tr, err
	}
	move, err := p.symbol("direction")
	if err != nil {
		return tr, err
	}
	dir := tm.Direction(move)
	if move > unicode.MaxASCII || !dir.Valid() {
		return tr, fmt.Errorf("%w: %q", tm.ErrInvalidDirection, rune(move))
	}

	tr = tm.Transition{From: from, Read: read, To: to, Move: dir}
	if p.blankRest() {
		return tr, nil
	}
	if err := p.comma("write symbol"); err != nil {
		return tr, err
	}
	w, err := p.symbol("write symbol")
	if err != nil {
		return tr, err
	}
	if !p.blankRest() {
		return tr, fmt.Errorf("%w: trailing %q", tm.ErrMalformedDescription, p.rest())
	}
	tr.Write = tm.WriteSymbol(w)
	return tr, nil
}

func parseState(s string) (tm.State, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: state %q is not an integer", tm.ErrMalformedDescription, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative state %d", tm.ErrMalformedDescription, n)
	}
	return tm.State(n), nil
}

func checkWord(word string) error {
	if !utf8.ValidString(word) {
		return fmt.Errorf("%w: input word is not valid UTF-8", tm.ErrMalformedDescription)
	}
	for _, r := range word {
		if tm.Symbol(r) == tm.Blank {
			return fmt.Errorf("%w: input word contains blank %q", tm.ErrMalformedDescription, rune(tm.Blank))
		}
		if unicode.IsSpace(r) {
			return fmt.Errorf("%w: input word contains whitespace", tm.ErrMalformedDescription)
		}
	}
	return nil
}

type cursor struct {
	s   string
	pos int
}

func (c *cursor) eof() bool    { return c.pos >= len(c.s) }
func (c *cursor) rest() string { return c.s[c.pos:] }

// blankRest reports whether only trailing whitespace is left.
func (c *cursor) blankRest() bool { return strings.TrimSpace(c.rest()) == "" }

func (c *cursor) state() (tm.State, error) {
	start := c.pos
	for c.pos < len(c.s) && c.s[c.pos] >= '0' && c.s[c.pos] <= '9' {
		c.pos++
	}
	if start == c.pos {
		return 0, fmt.Errorf("%w: expected state number at %q", tm.ErrMalformedDescription, c.rest())
	}
	return parseState(c.s[start:c.pos])
}

func (c *cursor) comma(before string) error {
	if c.eof() {
		return fmt.Errorf("%w: missing %s", tm.ErrMalformedDescription, before)
	}
	if c.s[c.pos] != ',' {
		return fmt.Errorf("%w: expected ',' before %s, got %q", tm.ErrMalformedDescription, before, c.rest())
	}
	c.pos++
	return nil
}

func (c *cursor) symbol(what string) (tm.Symbol, error) {
	if c.eof() {
		return 0, fmt.Errorf("%w: missing %s", tm.ErrMalformedDescription, what)
	}
	r, size := utf8.DecodeRuneInString(c.rest())
	if r == utf8.RuneError && size <= 1 {
		return 0, fmt.Errorf("%w: invalid UTF-8 in %s", tm.ErrMalformedDescription, what)
	}
	c.pos += size
	return tm.Symbol(r), nil
}

// IsLoadError reports whether err came from reading a description rather
// than from running a machine.
func IsLoadError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) || errors.Is(err, tm.ErrTapeTooSmall)
}
