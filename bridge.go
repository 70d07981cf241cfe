package mae

import (
	"fmt"

	"github.com/KimNorgaard/go-mae/block"
	maerr "github.com/KimNorgaard/go-mae/errors"
)

// ToBlock disassembles a Record into a structure block. The title, if
// present, is stored under the well-known title property; a Props entry
// under that same name takes precedence over the Title field. Scalar
// properties and columns are dispatched by their name prefix. An empty
// Atoms or Bonds map produces no sub-block at all.
func ToBlock(rec Record) (*block.Block, error) {
	if rec.Title == nil && len(rec.Props) == 0 && len(rec.Atoms) == 0 && len(rec.Bonds) == 0 {
		return nil, fmt.Errorf("empty record: %w", maerr.ErrUnsupportedPropertyType)
	}

	b := block.New(block.CTBlock)
	if rec.Title != nil {
		b.SetString(block.TitleProperty, *rec.Title)
	}
	for name, v := range rec.Props {
		if err := setScalar(b, name, v); err != nil {
			return nil, err
		}
	}
	if err := attachIndexed(b, block.AtomBlock, rec.Atoms); err != nil {
		return nil, err
	}
	if err := attachIndexed(b, block.BondBlock, rec.Bonds); err != nil {
		return nil, err
	}
	return b, nil
}

// FromBlock assembles a Record from a structure block. Boolean
// properties surface as bool, not as their storage representation; the
// title property is suppressed from Props since it is carried on the
// Title field. Sub-blocks with no rows or no columns are omitted.
func FromBlock(b *block.Block) Record {
	var rec Record
	if title, ok := b.String(block.TitleProperty); ok {
		rec.Title = &title
	}

	props := make(map[string]any)
	for name, v := range b.Bools() {
		props[name] = v
	}
	for name, v := range b.Ints() {
		props[name] = v
	}
	for name, v := range b.Reals() {
		props[name] = v
	}
	for name, v := range b.Strings() {
		props[name] = v
	}
	// Suppression keys on the property name, not its value: the block
	// may legitimately hold another property equal to the title text.
	delete(props, block.TitleProperty)
	if len(props) > 0 {
		rec.Props = props
	}

	if ib, ok := b.Indexed(block.AtomBlock); ok {
		rec.Atoms = flattenIndexed(ib)
	}
	if ib, ok := b.Indexed(block.BondBlock); ok {
		rec.Bonds = flattenIndexed(ib)
	}
	return rec
}

func setScalar(b *block.Block, name string, v any) error {
	t, ok := block.TypeOf(name)
	if !ok {
		return fmt.Errorf("property %q: %w", name, maerr.ErrUnsupportedPropertyType)
	}
	switch t {
	case block.Bool:
		bv, ok := v.(bool)
		if !ok {
			return mismatch(name, v, t)
		}
		b.SetBool(name, bv)
	case block.Int:
		iv, ok := asInt64(v)
		if !ok {
			return mismatch(name, v, t)
		}
		b.SetInt(name, iv)
	case block.Real:
		rv, ok := asFloat64(v)
		if !ok {
			return mismatch(name, v, t)
		}
		b.SetReal(name, rv)
	case block.String:
		sv, ok := v.(string)
		if !ok {
			return mismatch(name, v, t)
		}
		b.SetString(name, sv)
	}
	return nil
}

// attachIndexed builds an indexed block from a sub-mapping of columns.
// The first column encountered fixes the row count for the whole block.
func attachIndexed(b *block.Block, name string, cols map[string][]any) error {
	if len(cols) == 0 {
		return nil
	}
	rows := 0
	for _, col := range cols {
		rows = len(col)
		break
	}

	ib := block.NewIndexedBlock(name, rows)
	for cname, cells := range cols {
		if len(cells) != rows {
			return fmt.Errorf("block %q: column %q has %d rows, want %d: %w",
				name, cname, len(cells), rows, maerr.ErrInconsistentColumnLength)
		}
		if err := buildColumn(ib, cname, cells); err != nil {
			return fmt.Errorf("block %q: %w", name, err)
		}
	}
	b.AddIndexed(ib)
	return nil
}

func buildColumn(ib *block.IndexedBlock, name string, cells []any) error {
	t, ok := block.TypeOf(name)
	if !ok {
		return fmt.Errorf("column %q: %w", name, maerr.ErrUnsupportedPropertyType)
	}
	switch t {
	case block.Bool:
		c, err := fillColumn(name, t, cells, func(v any) (bool, bool) {
			bv, ok := v.(bool)
			return bv, ok
		})
		if err != nil {
			return err
		}
		return ib.SetBoolColumn(name, c)
	case block.Int:
		c, err := fillColumn(name, t, cells, asInt64)
		if err != nil {
			return err
		}
		return ib.SetIntColumn(name, c)
	case block.Real:
		c, err := fillColumn(name, t, cells, asFloat64)
		if err != nil {
			return err
		}
		return ib.SetRealColumn(name, c)
	default:
		c, err := fillColumn(name, t, cells, func(v any) (string, bool) {
			sv, ok := v.(string)
			return sv, ok
		})
		if err != nil {
			return err
		}
		return ib.SetStringColumn(name, c)
	}
}

// fillColumn builds a null-tracked column from a cell sequence,
// preserving row order exactly. Absent (or nil) cells stay null.
func fillColumn[T any](name string, t block.Type, cells []any, conv func(any) (T, bool)) (*block.Column[T], error) {
	c := block.NewColumn[T](len(cells))
	for i, cell := range cells {
		if cell == nil || cell == Absent {
			continue
		}
		v, ok := conv(cell)
		if !ok {
			return nil, mismatch(name, cell, t)
		}
		c.Set(i, v)
	}
	return c, nil
}

// flattenIndexed merges the four typed tables of an indexed block into
// one flat column mapping. Null rows surface as Absent.
func flattenIndexed(ib *block.IndexedBlock) map[string][]any {
	if ib.Rows() == 0 || ib.Empty() {
		return nil
	}
	cols := make(map[string][]any)
	for name, c := range ib.BoolColumns() {
		cols[name] = cellsOf(c)
	}
	for name, c := range ib.IntColumns() {
		cols[name] = cellsOf(c)
	}
	for name, c := range ib.RealColumns() {
		cols[name] = cellsOf(c)
	}
	for name, c := range ib.StringColumns() {
		cols[name] = cellsOf(c)
	}
	return cols
}

func cellsOf[T any](c *block.Column[T]) []any {
	cells := make([]any, c.Len())
	for i := range cells {
		if v, ok := c.Get(i); ok {
			cells[i] = v
		} else {
			cells[i] = Absent
		}
	}
	return cells
}

// asInt64 converts Go integer kinds to int64. Booleans are deliberately
// not accepted: the name prefix, not the value, decides the type.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint:
		if uint64(n) > 1<<63-1 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > 1<<63-1 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

// asFloat64 converts float and integer kinds to float64.
func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if iv, ok := asInt64(v); ok {
		return float64(iv), true
	}
	return 0, false
}

func mismatch(name string, v any, t block.Type) error {
	return fmt.Errorf("property %q: cannot store %T as %s: %w", name, v, t, maerr.ErrTypeMismatch)
}
