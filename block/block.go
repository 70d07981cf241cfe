// Package block implements the MAE data model: structure blocks holding
// typed scalar properties and column-oriented indexed sub-blocks with
// null-tracked columns.
package block

import (
	"fmt"
	"sort"

	maerr "github.com/KimNorgaard/go-mae/errors"
)

// Well-known block and property names from the MAE format.
const (
	CTBlock       = "f_m_ct"
	AtomBlock     = "m_atom"
	BondBlock     = "m_bond"
	TitleProperty = "s_m_title"
	VersionBlock  = "s_m_m2io_version"
)

// IndexedBlock is a named column-oriented record batch: a fixed row
// count plus up to four typed property tables. Every column in every
// table has exactly the block's row count.
type IndexedBlock struct {
	name string
	rows int

	bools   map[string]*Column[bool]
	ints    map[string]*Column[int64]
	reals   map[string]*Column[float64]
	strings map[string]*Column[string]
}

// NewIndexedBlock returns an empty indexed block with a fixed row count.
func NewIndexedBlock(name string, rows int) *IndexedBlock {
	return &IndexedBlock{
		name:    name,
		rows:    rows,
		bools:   make(map[string]*Column[bool]),
		ints:    make(map[string]*Column[int64]),
		reals:   make(map[string]*Column[float64]),
		strings: make(map[string]*Column[string]),
	}
}

// Name returns the block name, e.g. "m_atom".
func (ib *IndexedBlock) Name() string { return ib.name }

// Rows returns the fixed row count of the block.
func (ib *IndexedBlock) Rows() int { return ib.rows }

// Empty reports whether the block holds no columns.
func (ib *IndexedBlock) Empty() bool {
	return len(ib.bools)+len(ib.ints)+len(ib.reals)+len(ib.strings) == 0
}

func (ib *IndexedBlock) checkLen(name string, n int) error {
	if n != ib.rows {
		return fmt.Errorf("block %q: column %q has %d rows, want %d: %w",
			ib.name, name, n, ib.rows, maerr.ErrInconsistentColumnLength)
	}
	return nil
}

// SetBoolColumn attaches a boolean column under name. The column length
// must equal the block's row count.
func (ib *IndexedBlock) SetBoolColumn(name string, c *Column[bool]) error {
	if err := ib.checkLen(name, c.Len()); err != nil {
		return err
	}
	ib.bools[name] = c
	return nil
}

// SetIntColumn attaches an integer column under name.
func (ib *IndexedBlock) SetIntColumn(name string, c *Column[int64]) error {
	if err := ib.checkLen(name, c.Len()); err != nil {
		return err
	}
	ib.ints[name] = c
	return nil
}

// SetRealColumn attaches a real column under name.
func (ib *IndexedBlock) SetRealColumn(name string, c *Column[float64]) error {
	if err := ib.checkLen(name, c.Len()); err != nil {
		return err
	}
	ib.reals[name] = c
	return nil
}

// SetStringColumn attaches a string column under name.
func (ib *IndexedBlock) SetStringColumn(name string, c *Column[string]) error {
	if err := ib.checkLen(name, c.Len()); err != nil {
		return err
	}
	ib.strings[name] = c
	return nil
}

// BoolColumn returns the boolean column stored under name.
func (ib *IndexedBlock) BoolColumn(name string) (*Column[bool], bool) {
	c, ok := ib.bools[name]
	return c, ok
}

// IntColumn returns the integer column stored under name.
func (ib *IndexedBlock) IntColumn(name string) (*Column[int64], bool) {
	c, ok := ib.ints[name]
	return c, ok
}

// RealColumn returns the real column stored under name.
func (ib *IndexedBlock) RealColumn(name string) (*Column[float64], bool) {
	c, ok := ib.reals[name]
	return c, ok
}

// StringColumn returns the string column stored under name.
func (ib *IndexedBlock) StringColumn(name string) (*Column[string], bool) {
	c, ok := ib.strings[name]
	return c, ok
}

// BoolColumns returns the boolean property table.
func (ib *IndexedBlock) BoolColumns() map[string]*Column[bool] { return ib.bools }

// IntColumns returns the integer property table.
func (ib *IndexedBlock) IntColumns() map[string]*Column[int64] { return ib.ints }

// RealColumns returns the real property table.
func (ib *IndexedBlock) RealColumns() map[string]*Column[float64] { return ib.reals }

// StringColumns returns the string property table.
func (ib *IndexedBlock) StringColumns() map[string]*Column[string] { return ib.strings }

// ColumnNames returns every column name in the block, grouped by type
// (booleans, integers, reals, strings) and sorted within each group.
// Prefixes are disjoint, so no name can occur twice.
func (ib *IndexedBlock) ColumnNames() []string {
	names := make([]string, 0, len(ib.bools)+len(ib.ints)+len(ib.reals)+len(ib.strings))
	names = append(names, sortedKeys(ib.bools)...)
	names = append(names, sortedKeys(ib.ints)...)
	names = append(names, sortedKeys(ib.reals)...)
	names = append(names, sortedKeys(ib.strings)...)
	return names
}

// Block is one structure: a named block of scalar properties plus zero
// or more indexed sub-blocks. A Block exclusively owns its sub-blocks;
// nothing is shared between blocks.
type Block struct {
	name string

	bools   map[string]bool
	ints    map[string]int64
	reals   map[string]float64
	strings map[string]string

	indexed map[string]*IndexedBlock
}

// New returns an empty block. Structure blocks use the name CTBlock; the
// stream-level header block has an empty name.
func New(name string) *Block {
	return &Block{
		name:    name,
		bools:   make(map[string]bool),
		ints:    make(map[string]int64),
		reals:   make(map[string]float64),
		strings: make(map[string]string),
		indexed: make(map[string]*IndexedBlock),
	}
}

// Name returns the block name.
func (b *Block) Name() string { return b.name }

// SetBool stores a boolean scalar property.
func (b *Block) SetBool(name string, v bool) { b.bools[name] = v }

// SetInt stores an integer scalar property.
func (b *Block) SetInt(name string, v int64) { b.ints[name] = v }

// SetReal stores a real scalar property.
func (b *Block) SetReal(name string, v float64) { b.reals[name] = v }

// SetString stores a string scalar property.
func (b *Block) SetString(name string, v string) { b.strings[name] = v }

// Bool returns the boolean scalar property stored under name.
func (b *Block) Bool(name string) (bool, bool) {
	v, ok := b.bools[name]
	return v, ok
}

// Int returns the integer scalar property stored under name.
func (b *Block) Int(name string) (int64, bool) {
	v, ok := b.ints[name]
	return v, ok
}

// Real returns the real scalar property stored under name.
func (b *Block) Real(name string) (float64, bool) {
	v, ok := b.reals[name]
	return v, ok
}

// String returns the string scalar property stored under name.
func (b *Block) String(name string) (string, bool) {
	v, ok := b.strings[name]
	return v, ok
}

// Bools returns the boolean scalar property table.
func (b *Block) Bools() map[string]bool { return b.bools }

// Ints returns the integer scalar property table.
func (b *Block) Ints() map[string]int64 { return b.ints }

// Reals returns the real scalar property table.
func (b *Block) Reals() map[string]float64 { return b.reals }

// Strings returns the string scalar property table.
func (b *Block) Strings() map[string]string { return b.strings }

// PropertyNames returns every scalar property name in the block, grouped
// by type and sorted within each group, mirroring ColumnNames.
func (b *Block) PropertyNames() []string {
	names := make([]string, 0, len(b.bools)+len(b.ints)+len(b.reals)+len(b.strings))
	names = append(names, sortedKeys(b.bools)...)
	names = append(names, sortedKeys(b.ints)...)
	names = append(names, sortedKeys(b.reals)...)
	names = append(names, sortedKeys(b.strings)...)
	return names
}

// AddIndexed attaches an indexed sub-block, replacing any previous block
// of the same name.
func (b *Block) AddIndexed(ib *IndexedBlock) { b.indexed[ib.Name()] = ib }

// Indexed returns the indexed sub-block stored under name.
func (b *Block) Indexed(name string) (*IndexedBlock, bool) {
	ib, ok := b.indexed[name]
	return ib, ok
}

// IndexedNames returns the names of all indexed sub-blocks, sorted.
func (b *Block) IndexedNames() []string { return sortedKeys(b.indexed) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
