// Package formatter serializes structure blocks to the MAE textual
// format.
package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-mae/block"
)

// Formatter writes MAE blocks to an output stream. Output is
// deterministic: properties are grouped by type and sorted by name
// within each group.
type Formatter struct {
	w   io.Writer
	err error
}

// New returns a new formatter that writes to w.
func New(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// WriteHeader writes the stream-level version block that opens every
// MAE file.
func (f *Formatter) WriteHeader() error {
	f.writef("{\n  %s\n  :::\n  2.0.0\n}\n\n", block.VersionBlock)
	return f.err
}

// WriteBlock writes one structure block followed by a blank line.
func (f *Formatter) WriteBlock(b *block.Block) error {
	f.writef("%s {\n", b.Name())

	names := b.PropertyNames()
	for _, name := range names {
		f.writef("  %s\n", name)
	}
	f.writef("  :::\n")
	for _, name := range names {
		f.writef("  %s\n", f.scalar(b, name))
	}

	for _, name := range b.IndexedNames() {
		ib, _ := b.Indexed(name)
		f.writeIndexed(ib)
	}

	f.writef("}\n\n")
	return f.err
}

func (f *Formatter) writeIndexed(ib *block.IndexedBlock) {
	f.writef("  %s[%d] {\n", ib.Name(), ib.Rows())
	f.writef("    # First column is Index #\n")

	names := ib.ColumnNames()
	for _, name := range names {
		f.writef("    %s\n", name)
	}
	f.writef("    :::\n")

	for row := 0; row < ib.Rows(); row++ {
		f.writef("    %d", row+1)
		for _, name := range names {
			f.writef(" %s", f.cell(ib, name, row))
		}
		f.writef("\n")
	}
	f.writef("    :::\n  }\n")
}

// scalar encodes the value of one scalar property. The name's prefix
// decided the table at store time, so exactly one lookup hits.
func (f *Formatter) scalar(b *block.Block, name string) string {
	t, _ := block.TypeOf(name)
	switch t {
	case block.Bool:
		v, _ := b.Bool(name)
		return encodeBool(v)
	case block.Int:
		v, _ := b.Int(name)
		return strconv.FormatInt(v, 10)
	case block.Real:
		v, _ := b.Real(name)
		return encodeReal(v)
	default:
		v, _ := b.String(name)
		return quote(v)
	}
}

// cell encodes one cell of an indexed column, "<>" when null.
func (f *Formatter) cell(ib *block.IndexedBlock, name string, row int) string {
	t, _ := block.TypeOf(name)
	switch t {
	case block.Bool:
		c, _ := ib.BoolColumn(name)
		if v, ok := c.Get(row); ok {
			return encodeBool(v)
		}
	case block.Int:
		c, _ := ib.IntColumn(name)
		if v, ok := c.Get(row); ok {
			return strconv.FormatInt(v, 10)
		}
	case block.Real:
		c, _ := ib.RealColumn(name)
		if v, ok := c.Get(row); ok {
			return encodeReal(v)
		}
	default:
		c, _ := ib.StringColumn(name)
		if v, ok := c.Get(row); ok {
			return quote(v)
		}
	}
	return "<>"
}

func (f *Formatter) writef(format string, args ...any) {
	if f.err != nil {
		return
	}
	_, f.err = fmt.Fprintf(f.w, format, args...)
}

func encodeBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// encodeReal uses the shortest representation that round-trips through
// a 64-bit float.
func encodeReal(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// quote renders a string value. String values are always quoted, which
// keeps a literal "<>" distinct from an undefined cell.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}
