// Package lexer tokenizes the MAE textual format.
package lexer

import (
	"bufio"
	"bytes"
	"io"

	"github.com/KimNorgaard/go-mae/internal/token"
)

// Lexer holds the state for tokenizing a MAE stream.
type Lexer struct {
	r      *bufio.Reader
	buf    bytes.Buffer
	ch     rune
	line   int
	column int
}

// New creates and returns a new Lexer reading from r.
func New(r io.Reader) *Lexer {
	l := &Lexer{
		r:      bufio.NewReader(r),
		line:   1,
		column: 1,
	}
	l.readRune()
	return l
}

// NextToken scans the input and returns the next token. MAE is
// whitespace-delimited; newlines carry no meaning beyond separating
// tokens, and '#' starts a comment running to the end of the line.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	for l.ch == '#' {
		l.skipComment()
		l.skipWhitespace()
	}

	tok := token.Token{Line: l.line, Column: l.column}
	switch l.ch {
	case '{', '}':
		tok.Type = token.Type(l.ch)
		tok.Literal = string(l.ch)
		l.advance()
	case '"':
		lit, ok := l.readString()
		if !ok {
			tok.Type = token.ILLEGAL
		} else {
			tok.Type = token.STRING
		}
		tok.Literal = lit
	case -1: // Corresponds to io.EOF
		tok.Type = token.EOF
		tok.Literal = ""
	default:
		lit := l.readBare()
		switch lit {
		case ":::":
			tok.Type = token.SEP
		case "<>":
			tok.Type = token.NULL
		default:
			tok.Type = token.VALUE
		}
		tok.Literal = lit
	}
	return tok
}

func (l *Lexer) readRune() {
	r, _, err := l.r.ReadRune()
	if err != nil {
		l.ch = -1
		return
	}
	l.ch = r
}

func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.readRune()
	l.column++
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.advance()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != -1 {
		l.advance()
	}
}

// readBare reads a run of characters up to the next whitespace, brace,
// quote or end of stream.
func (l *Lexer) readBare() string {
	l.buf.Reset()
	for !isBareEnd(l.ch) {
		l.buf.WriteRune(l.ch)
		l.advance()
	}
	return l.buf.String()
}

// readString reads a double-quoted value. Only the quote and the
// backslash are escapable; strings may not span lines.
func (l *Lexer) readString() (string, bool) {
	l.advance() // consume opening quote
	l.buf.Reset()
	for {
		switch l.ch {
		case '"':
			l.advance() // consume closing quote
			return l.buf.String(), true
		case '\n', -1:
			return "unterminated string", false
		case '\\':
			l.advance()
			switch l.ch {
			case '"', '\\':
				l.buf.WriteRune(l.ch)
			default:
				return "invalid escape sequence", false
			}
		default:
			l.buf.WriteRune(l.ch)
		}
		l.advance()
	}
}

func isBareEnd(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '{', '}', '"', -1:
		return true
	}
	return false
}
