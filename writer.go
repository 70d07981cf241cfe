package mae

import (
	"bufio"
	"io"

	"github.com/KimNorgaard/go-mae/block"
	"github.com/KimNorgaard/go-mae/internal/formatter"
)

// Writer writes structure blocks to a MAE stream. The stream-level
// version header is written before the first block.
type Writer struct {
	bw          *bufio.Writer
	f           *formatter.Formatter
	wroteHeader bool
}

// NewWriter returns a new writer that writes to w. Call Flush after the
// last block to push buffered output.
func NewWriter(w io.Writer) *Writer {
	bw := bufio.NewWriter(w)
	return &Writer{bw: bw, f: formatter.New(bw)}
}

// WriteBlock writes one structure block in MAE text form.
func (w *Writer) WriteBlock(b *block.Block) error {
	if !w.wroteHeader {
		if err := w.f.WriteHeader(); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	return w.f.WriteBlock(b)
}

// Flush writes any buffered output to the underlying stream.
func (w *Writer) Flush() error { return w.bw.Flush() }
