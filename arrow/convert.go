package arrow

import (
	"fmt"
	"sort"

	arrowlib "github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	mae "github.com/KimNorgaard/go-mae"
	"github.com/KimNorgaard/go-mae/block"
	maerr "github.com/KimNorgaard/go-mae/errors"
)

// Schema derives an Arrow schema from a set of prefix-named columns.
// Every field is nullable; field order is the sorted column name order.
func Schema(columns map[string][]any) (*arrowlib.Schema, error) {
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]arrowlib.Field, 0, len(names))
	for _, name := range names {
		t, ok := block.TypeOf(name)
		if !ok {
			return nil, fmt.Errorf("column %q: %w", name, maerr.ErrUnsupportedPropertyType)
		}
		var dt arrowlib.DataType
		switch t {
		case block.Bool:
			dt = arrowlib.FixedWidthTypes.Boolean
		case block.Int:
			dt = arrowlib.PrimitiveTypes.Int64
		case block.Real:
			dt = arrowlib.PrimitiveTypes.Float64
		default:
			dt = arrowlib.BinaryTypes.String
		}
		fields = append(fields, arrowlib.Field{Name: name, Type: dt, Nullable: true})
	}
	return arrowlib.NewSchema(fields, nil), nil
}

// FromColumns builds an Arrow record batch from one indexed sub-mapping
// of a Record (its Atoms or Bonds). Absent cells become Arrow nulls.
// The caller owns the returned record and must Release it.
func FromColumns(columns map[string][]any) (arrowlib.Record, error) {
	schema, err := Schema(columns)
	if err != nil {
		return nil, err
	}

	rows := -1
	for _, cells := range columns {
		if rows < 0 {
			rows = len(cells)
		} else if len(cells) != rows {
			return nil, fmt.Errorf("columns disagree in length: %w", maerr.ErrInconsistentColumnLength)
		}
	}

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	for fi, field := range schema.Fields() {
		cells := columns[field.Name]
		if err := appendCells(builder.Field(fi), field.Name, cells); err != nil {
			return nil, err
		}
	}
	return builder.NewRecord(), nil
}

// ToColumns converts an Arrow record batch back into a Record
// sub-mapping. Arrow nulls become Absent cells.
func ToColumns(rec arrowlib.Record) (map[string][]any, error) {
	columns := make(map[string][]any, rec.NumCols())
	for ci, field := range rec.Schema().Fields() {
		cells, err := columnCells(rec.Column(ci), field.Name)
		if err != nil {
			return nil, err
		}
		columns[field.Name] = cells
	}
	return columns, nil
}

func appendCells(b array.Builder, name string, cells []any) error {
	switch fb := b.(type) {
	case *array.BooleanBuilder:
		for _, cell := range cells {
			if cell == nil || cell == mae.Absent {
				fb.AppendNull()
				continue
			}
			v, ok := cell.(bool)
			if !ok {
				return cellMismatch(name, cell, block.Bool)
			}
			fb.Append(v)
		}
	case *array.Int64Builder:
		for _, cell := range cells {
			if cell == nil || cell == mae.Absent {
				fb.AppendNull()
				continue
			}
			v, ok := asInt64(cell)
			if !ok {
				return cellMismatch(name, cell, block.Int)
			}
			fb.Append(v)
		}
	case *array.Float64Builder:
		for _, cell := range cells {
			if cell == nil || cell == mae.Absent {
				fb.AppendNull()
				continue
			}
			v, ok := asFloat64(cell)
			if !ok {
				return cellMismatch(name, cell, block.Real)
			}
			fb.Append(v)
		}
	case *array.StringBuilder:
		for _, cell := range cells {
			if cell == nil || cell == mae.Absent {
				fb.AppendNull()
				continue
			}
			v, ok := cell.(string)
			if !ok {
				return cellMismatch(name, cell, block.String)
			}
			fb.Append(v)
		}
	default:
		return fmt.Errorf("column %q: unexpected builder %T", name, b)
	}
	return nil
}

func columnCells(col arrowlib.Array, name string) ([]any, error) {
	cells := make([]any, col.Len())
	switch a := col.(type) {
	case *array.Boolean:
		for i := range cells {
			if a.IsNull(i) {
				cells[i] = mae.Absent
			} else {
				cells[i] = a.Value(i)
			}
		}
	case *array.Int64:
		for i := range cells {
			if a.IsNull(i) {
				cells[i] = mae.Absent
			} else {
				cells[i] = a.Value(i)
			}
		}
	case *array.Float64:
		for i := range cells {
			if a.IsNull(i) {
				cells[i] = mae.Absent
			} else {
				cells[i] = a.Value(i)
			}
		}
	case *array.String:
		for i := range cells {
			if a.IsNull(i) {
				cells[i] = mae.Absent
			} else {
				cells[i] = a.Value(i)
			}
		}
	default:
		return nil, fmt.Errorf("column %q: unsupported Arrow type %s", name, col.DataType())
	}
	return cells, nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if n, ok := asInt64(v); ok {
		return float64(n), true
	}
	return 0, false
}

func cellMismatch(name string, v any, t block.Type) error {
	return fmt.Errorf("column %q: cannot store %T as %s: %w", name, v, t, maerr.ErrTypeMismatch)
}
