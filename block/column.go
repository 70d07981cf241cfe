package block

// bitset is a word-packed bit vector. It is sized once at construction
// and never grows.
type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) set(i int)       { b[i/64] |= 1 << (i % 64) }
func (b bitset) clear(i int)     { b[i/64] &^= 1 << (i % 64) }
func (b bitset) test(i int) bool { return b[i/64]&(1<<(i%64)) != 0 }

func (b bitset) setAll() {
	for i := range b {
		b[i] = ^uint64(0)
	}
}

// Column is a fixed-length, single-typed sequence of values with a
// per-row null marker. A row is either defined or null; the value slot
// behind a null row holds the type's zero value as a placeholder and is
// never surfaced to a caller.
type Column[T any] struct {
	values []T
	nulls  bitset
}

// NewColumn returns a column of n rows, all null.
func NewColumn[T any](n int) *Column[T] {
	c := &Column[T]{
		values: make([]T, n),
		nulls:  newBitset(n),
	}
	c.nulls.setAll()
	return c
}

// Len returns the number of rows in the column.
func (c *Column[T]) Len() int { return len(c.values) }

// Get returns the value at row i. The second result is false when the
// row is null, in which case the value is the type's zero value.
func (c *Column[T]) Get(i int) (T, bool) {
	if c.nulls.test(i) {
		var zero T
		return zero, false
	}
	return c.values[i], true
}

// IsNull reports whether row i is null.
func (c *Column[T]) IsNull(i int) bool { return c.nulls.test(i) }

// Set stores v at row i and marks the row defined.
func (c *Column[T]) Set(i int, v T) {
	c.values[i] = v
	c.nulls.clear(i)
}

// SetNull marks row i null. The stored placeholder is reset to the zero
// value so it can never leak through a stale read of the backing slice.
func (c *Column[T]) SetNull(i int) {
	var zero T
	c.values[i] = zero
	c.nulls.set(i)
}
