// Package parser assembles MAE tokens into structure blocks.
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-mae/block"
	maerr "github.com/KimNorgaard/go-mae/errors"
	"github.com/KimNorgaard/go-mae/internal/lexer"
	"github.com/KimNorgaard/go-mae/internal/token"
)

// Parser reads one top-level block at a time from a token stream. It
// never looks ahead past the block it is asked for, so it can consume a
// strictly sequential producer.
type Parser struct {
	l   *lexer.Lexer
	tok token.Token
}

// New creates a new parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	return p
}

// Next parses and returns the next top-level block. It returns io.EOF
// after the last block in the stream.
func (p *Parser) Next() (*block.Block, error) {
	if p.tok.Type == token.EOF {
		return nil, io.EOF
	}

	// A top-level block is an optional name followed by a braced body.
	// The stream-level header block has no name.
	var name string
	if p.tok.Type == token.VALUE {
		name = p.tok.Literal
		p.next()
	}
	if p.tok.Type != token.LBRACE {
		return nil, p.syntaxf("expected '{' at start of block, got %s (%q)", p.tok.Type, p.tok.Literal)
	}
	p.next()

	b := block.New(name)

	names, err := p.parseNameList()
	if err != nil {
		return nil, err
	}
	for _, propName := range names {
		if err := p.parseScalar(b, propName); err != nil {
			return nil, err
		}
	}

	// Any further bare words open nested indexed blocks.
	for p.tok.Type == token.VALUE {
		ib, err := p.parseIndexed()
		if err != nil {
			return nil, err
		}
		b.AddIndexed(ib)
	}

	if p.tok.Type != token.RBRACE {
		return nil, p.syntaxf("expected '}' at end of block, got %s (%q)", p.tok.Type, p.tok.Literal)
	}
	p.next()
	return b, nil
}

func (p *Parser) next() {
	p.tok = p.l.NextToken()
}

// parseNameList reads property names up to the ':::' separator and
// consumes the separator.
func (p *Parser) parseNameList() ([]string, error) {
	var names []string
	for p.tok.Type == token.VALUE {
		names = append(names, p.tok.Literal)
		p.next()
	}
	if p.tok.Type != token.SEP {
		return nil, p.syntaxf("expected ':::' after property names, got %s (%q)", p.tok.Type, p.tok.Literal)
	}
	p.next()
	return names, nil
}

// parseScalar reads one scalar value and stores it in b under name,
// dispatched by the name's type prefix. An undefined marker drops the
// property.
func (p *Parser) parseScalar(b *block.Block, name string) error {
	tok := p.tok
	switch tok.Type {
	case token.NULL:
		// An undefined scalar is simply not stored.
		p.next()
		return nil
	case token.VALUE, token.STRING:
		p.next()
	default:
		return p.syntaxf("expected value for property %q, got %s (%q)", name, tok.Type, tok.Literal)
	}

	t, ok := block.TypeOf(name)
	if !ok {
		return fmt.Errorf("line %d: property %q: %w", tok.Line, name, maerr.ErrUnsupportedPropertyType)
	}
	switch t {
	case block.Bool:
		v, err := parseBool(tok.Literal)
		if err != nil {
			return p.mismatch(tok, name, t)
		}
		b.SetBool(name, v)
	case block.Int:
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return p.mismatch(tok, name, t)
		}
		b.SetInt(name, v)
	case block.Real:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return p.mismatch(tok, name, t)
		}
		b.SetReal(name, v)
	case block.String:
		b.SetString(name, tok.Literal)
	}
	return nil
}

// parseIndexed reads one nested indexed block. The current token is its
// header, e.g. "m_atom[12]".
func (p *Parser) parseIndexed() (*block.IndexedBlock, error) {
	header := p.tok
	name, rows, err := splitHeader(header.Literal)
	if err != nil {
		return nil, p.syntaxf("invalid indexed block header %q", header.Literal)
	}
	p.next()

	if p.tok.Type != token.LBRACE {
		return nil, p.syntaxf("expected '{' after block header %q, got %s", header.Literal, p.tok.Type)
	}
	p.next()

	names, err := p.parseNameList()
	if err != nil {
		return nil, err
	}

	ib := block.NewIndexedBlock(name, rows)
	cols, err := makeColumns(ib, names, header.Line)
	if err != nil {
		return nil, err
	}

	for row := 0; row < rows; row++ {
		// The leading token of every row is its 1-based index. It is
		// not a declared column and carries no data.
		if p.tok.Type != token.VALUE {
			return nil, p.syntaxf("expected row index in block %q, got %s (%q)", name, p.tok.Type, p.tok.Literal)
		}
		p.next()
		for _, col := range cols {
			if err := col.parseCell(p, row); err != nil {
				return nil, err
			}
		}
	}

	if p.tok.Type == token.SEP {
		p.next()
	}
	if p.tok.Type != token.RBRACE {
		return nil, p.syntaxf("expected '}' at end of block %q, got %s (%q)", name, p.tok.Type, p.tok.Literal)
	}
	p.next()
	return ib, nil
}

// columnState decodes the cells of one declared column into its
// null-tracked destination.
type columnState struct {
	name string
	typ  block.Type

	bools   *block.Column[bool]
	ints    *block.Column[int64]
	reals   *block.Column[float64]
	strings *block.Column[string]
}

// makeColumns resolves every declared column name to a typed column,
// attached to ib up front. Columns start all-null; row parsing fills in
// the defined cells.
func makeColumns(ib *block.IndexedBlock, names []string, line int) ([]*columnState, error) {
	cols := make([]*columnState, 0, len(names))
	for _, name := range names {
		t, ok := block.TypeOf(name)
		if !ok {
			return nil, fmt.Errorf("line %d: column %q: %w", line, name, maerr.ErrUnsupportedPropertyType)
		}
		col := &columnState{name: name, typ: t}
		switch t {
		case block.Bool:
			col.bools = block.NewColumn[bool](ib.Rows())
			if err := ib.SetBoolColumn(name, col.bools); err != nil {
				return nil, err
			}
		case block.Int:
			col.ints = block.NewColumn[int64](ib.Rows())
			if err := ib.SetIntColumn(name, col.ints); err != nil {
				return nil, err
			}
		case block.Real:
			col.reals = block.NewColumn[float64](ib.Rows())
			if err := ib.SetRealColumn(name, col.reals); err != nil {
				return nil, err
			}
		case block.String:
			col.strings = block.NewColumn[string](ib.Rows())
			if err := ib.SetStringColumn(name, col.strings); err != nil {
				return nil, err
			}
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func (c *columnState) parseCell(p *Parser, row int) error {
	tok := p.tok
	switch tok.Type {
	case token.NULL:
		// Columns start all-null; nothing to store.
		p.next()
		return nil
	case token.VALUE, token.STRING:
		p.next()
	default:
		return p.syntaxf("expected cell for column %q, got %s (%q)", c.name, tok.Type, tok.Literal)
	}

	switch c.typ {
	case block.Bool:
		v, err := parseBool(tok.Literal)
		if err != nil {
			return p.mismatch(tok, c.name, c.typ)
		}
		c.bools.Set(row, v)
	case block.Int:
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return p.mismatch(tok, c.name, c.typ)
		}
		c.ints.Set(row, v)
	case block.Real:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return p.mismatch(tok, c.name, c.typ)
		}
		c.reals.Set(row, v)
	case block.String:
		c.strings.Set(row, tok.Literal)
	}
	return nil
}

// parseBool decodes the on-disk boolean representation: an integer,
// zero for false and non-zero for true.
func parseBool(s string) (bool, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// splitHeader splits an indexed block header like "m_atom[12]" into its
// name and row count.
func splitHeader(s string) (string, int, error) {
	open := strings.IndexByte(s, '[')
	if open <= 0 || !strings.HasSuffix(s, "]") {
		return "", 0, fmt.Errorf("malformed block header %q", s)
	}
	rows, err := strconv.Atoi(s[open+1 : len(s)-1])
	if err != nil || rows < 0 {
		return "", 0, fmt.Errorf("malformed row count in %q", s)
	}
	return s[:open], rows, nil
}

func (p *Parser) syntaxf(format string, args ...any) error {
	return &maerr.ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    p.tok.Line,
		Column:  p.tok.Column,
	}
}

func (p *Parser) mismatch(tok token.Token, name string, t block.Type) error {
	return fmt.Errorf("line %d: property %q: cannot decode %q as %s: %w",
		tok.Line, name, tok.Literal, t, maerr.ErrTypeMismatch)
}
