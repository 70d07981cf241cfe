package arrow

import (
	"bytes"
	"fmt"

	arrowlib "github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
)

// MarshalIPC serializes a record batch to Arrow IPC stream bytes.
func MarshalIPC(rec arrowlib.Record) ([]byte, error) {
	var buf bytes.Buffer

	w := ipc.NewWriter(&buf, ipc.WithSchema(rec.Schema()))
	if err := w.Write(rec); err != nil {
		w.Close()
		return nil, fmt.Errorf("write record: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close writer: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalIPC deserializes Arrow IPC stream bytes into a record batch.
// The caller owns the returned record and must Release it.
func UnmarshalIPC(data []byte) (arrowlib.Record, error) {
	r, err := ipc.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create reader: %w", err)
	}
	defer r.Release()

	if !r.Next() {
		if r.Err() != nil {
			return nil, r.Err()
		}
		return nil, fmt.Errorf("no records in IPC data")
	}

	rec := r.Record()
	rec.Retain() // survives the reader's Release
	return rec, nil
}
