// Package eqn parses equation listings and compares them, so a decoded
// device can be audited against the equations it is expected to hold.
package eqn

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
)

type Parser struct {
	parser *participle.Parser[Listing]
}

func NewParser() (*Parser, error) {
	parser, err := participle.Build[Listing](
		participle.Lexer(ListingLexer),
		participle.Elide("Comment", "Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

func (p *Parser) Parse(r io.Reader) (*Listing, error) {
	l, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return l, nil
}

func (p *Parser) ParseString(input string) (*Listing, error) {
	l, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return l, nil
}

func (p *Parser) ParseFile(filename string) (*Listing, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

// OutputName returns the output symbol without the '=' sign, keeping an
// inversion prefix.
func (e *Equation) OutputName() string {
	return strings.TrimSpace(strings.TrimSuffix(e.Output, "="))
}

func (l *Literal) String() string {
	if l.Neg {
		return "/" + l.Name
	}
	return l.Name
}

func (t *Term) String() string {
	if t.True {
		return "1"
	}
	parts := make([]string, len(t.Literals))
	for i, l := range t.Literals {
		parts[i] = l.String()
	}
	return strings.Join(parts, " * ")
}
