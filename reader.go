package mae

import (
	"bufio"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/KimNorgaard/go-mae/block"
	"github.com/KimNorgaard/go-mae/internal/lexer"
	"github.com/KimNorgaard/go-mae/internal/parser"
)

// Reader reads structure blocks from a MAE stream, one at a time.
type Reader struct {
	p *parser.Parser
}

// NewReader returns a Reader for a plain or gzip-compressed MAE stream.
// Compression is detected from the stream content, not a file name.
//
// The reader may buffer data from r as necessary. It is the caller's
// responsibility to close r if required.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &Reader{p: parser.New(lexer.New(gz))}, nil
	}
	return &Reader{p: parser.New(lexer.New(br))}, nil
}

// Next returns the next structure block in the stream, skipping
// stream-level blocks such as the version header. It returns io.EOF
// after the last structure.
func (r *Reader) Next() (*block.Block, error) {
	for {
		b, err := r.p.Next()
		if err != nil {
			return nil, err
		}
		if b.Name() == block.CTBlock {
			return b, nil
		}
	}
}
