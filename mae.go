package mae

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/KimNorgaard/go-mae/block"
	maerr "github.com/KimNorgaard/go-mae/errors"
)

// Read reads every structure in the MAE file at path, in on-disk order.
// Gzip-compressed files are detected from their content, so both .mae
// and .maegz files work without hints.
func Read(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := NewReader(f)
	if err != nil {
		return nil, err
	}

	var records []Record
	for i := 0; ; i++ {
		b, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &maerr.StructureError{Index: i, Err: err}
		}
		records = append(records, FromBlock(b))
	}
	return records, nil
}

// Write writes records to a new MAE file at path, in input order. A
// ".gz" or ".maegz" extension selects gzip compression. Every record is
// converted before the file is created, so a malformed record never
// leaves a partial file behind.
func Write(records []Record, path string) error {
	blocks := make([]*block.Block, len(records))
	for i, rec := range records {
		b, err := ToBlock(rec)
		if err != nil {
			return &maerr.StructureError{Index: i, Err: err}
		}
		blocks[i] = b
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var out io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") || strings.HasSuffix(path, ".maegz") {
		gz = gzip.NewWriter(f)
		out = gz
	}

	w := NewWriter(out)
	for _, b := range blocks {
		if err := w.WriteBlock(b); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return err
		}
	}
	return f.Close()
}
