package mae_test

import (
	"testing"

	mae "github.com/KimNorgaard/go-mae"
	"github.com/KimNorgaard/go-mae/block"
	maerr "github.com/KimNorgaard/go-mae/errors"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestToBlock(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		rec := mae.Record{
			Title: strptr("mol1"),
			Props: map[string]any{
				"b_active": true,
				"i_charge": int64(-1),
				"r_weight": 94.11,
				"s_name":   "phenolate",
			},
			Atoms: map[string][]any{
				"r_x":    {0.0, 1.5},
				"b_flag": {true, mae.Absent},
			},
			Bonds: map[string][]any{
				"i_from": {int64(1)},
				"i_to":   {int64(2)},
			},
		}

		b, err := mae.ToBlock(rec)
		require.NoError(t, err)
		require.Equal(t, block.CTBlock, b.Name())

		title, ok := b.String(block.TitleProperty)
		require.True(t, ok)
		require.Equal(t, "mol1", title)

		charge, ok := b.Int("i_charge")
		require.True(t, ok)
		require.Equal(t, int64(-1), charge)

		atoms, ok := b.Indexed(block.AtomBlock)
		require.True(t, ok)
		require.Equal(t, 2, atoms.Rows())

		flags, ok := atoms.BoolColumn("b_flag")
		require.True(t, ok)
		v, ok := flags.Get(0)
		require.True(t, ok)
		require.True(t, v)
		require.True(t, flags.IsNull(1))

		bonds, ok := b.Indexed(block.BondBlock)
		require.True(t, ok)
		require.Equal(t, 1, bonds.Rows())
	})

	t.Run("plain int accepted for integer properties", func(t *testing.T) {
		b, err := mae.ToBlock(mae.Record{Props: map[string]any{"i_charge": 3}})
		require.NoError(t, err)
		v, _ := b.Int("i_charge")
		require.Equal(t, int64(3), v)
	})

	t.Run("int accepted for real properties", func(t *testing.T) {
		b, err := mae.ToBlock(mae.Record{Props: map[string]any{"r_weight": 5}})
		require.NoError(t, err)
		v, _ := b.Real("r_weight")
		require.Equal(t, 5.0, v)
	})

	t.Run("prefix is authoritative over the value", func(t *testing.T) {
		_, err := mae.ToBlock(mae.Record{Props: map[string]any{"i_count": true}})
		require.ErrorIs(t, err, maerr.ErrTypeMismatch)

		_, err = mae.ToBlock(mae.Record{Props: map[string]any{"b_flag": int64(1)}})
		require.ErrorIs(t, err, maerr.ErrTypeMismatch)

		_, err = mae.ToBlock(mae.Record{Props: map[string]any{"s_name": 1.5}})
		require.ErrorIs(t, err, maerr.ErrTypeMismatch)

		_, err = mae.ToBlock(mae.Record{
			Atoms: map[string][]any{"i_count": {"many"}},
		})
		require.ErrorIs(t, err, maerr.ErrTypeMismatch)
	})

	t.Run("unknown prefix rejected on both paths", func(t *testing.T) {
		_, err := mae.ToBlock(mae.Record{Props: map[string]any{"x_foo": 1}})
		require.ErrorIs(t, err, maerr.ErrUnsupportedPropertyType)

		_, err = mae.ToBlock(mae.Record{
			Atoms: map[string][]any{"x_foo": {1}},
		})
		require.ErrorIs(t, err, maerr.ErrUnsupportedPropertyType)
	})

	t.Run("inconsistent column lengths rejected", func(t *testing.T) {
		_, err := mae.ToBlock(mae.Record{
			Atoms: map[string][]any{
				"r_x": {0.0, 1.0},
				"r_y": {0.0},
			},
		})
		require.ErrorIs(t, err, maerr.ErrInconsistentColumnLength)
	})

	t.Run("empty sub-mapping attaches no block", func(t *testing.T) {
		b, err := mae.ToBlock(mae.Record{
			Title: strptr("mol"),
			Atoms: map[string][]any{},
		})
		require.NoError(t, err)
		_, ok := b.Indexed(block.AtomBlock)
		require.False(t, ok)
	})

	t.Run("empty record rejected", func(t *testing.T) {
		_, err := mae.ToBlock(mae.Record{})
		require.ErrorIs(t, err, maerr.ErrUnsupportedPropertyType)
	})

	t.Run("title property in props wins over the title field", func(t *testing.T) {
		b, err := mae.ToBlock(mae.Record{
			Title: strptr("from-field"),
			Props: map[string]any{block.TitleProperty: "from-props"},
		})
		require.NoError(t, err)

		title, ok := b.String(block.TitleProperty)
		require.True(t, ok)
		require.Equal(t, "from-props", title)

		// After a round trip the props entry is what survives, carried
		// on the Title field.
		rec := mae.FromBlock(b)
		require.NotNil(t, rec.Title)
		require.Equal(t, "from-props", *rec.Title)
		require.Nil(t, rec.Props)
	})

	t.Run("nil cell treated as absent", func(t *testing.T) {
		b, err := mae.ToBlock(mae.Record{
			Atoms: map[string][]any{"r_x": {1.0, nil}},
		})
		require.NoError(t, err)
		atoms, _ := b.Indexed(block.AtomBlock)
		xs, _ := atoms.RealColumn("r_x")
		require.True(t, xs.IsNull(1))
	})
}

func TestFromBlock(t *testing.T) {
	t.Run("title suppressed from props by name", func(t *testing.T) {
		b := block.New(block.CTBlock)
		b.SetString(block.TitleProperty, "mol1")
		// A second property holding the title text must survive: the
		// suppression keys on the name, not the value.
		b.SetString("s_alias", "mol1")

		rec := mae.FromBlock(b)
		require.NotNil(t, rec.Title)
		require.Equal(t, "mol1", *rec.Title)
		require.Equal(t, map[string]any{"s_alias": "mol1"}, rec.Props)
	})

	t.Run("booleans surface as bool", func(t *testing.T) {
		b := block.New(block.CTBlock)
		b.SetBool("b_m_prop_d", true)

		ib := block.NewIndexedBlock(block.AtomBlock, 1)
		c := block.NewColumn[bool](1)
		c.Set(0, true)
		require.NoError(t, ib.SetBoolColumn("b_m_prop_a", c))
		b.AddIndexed(ib)

		rec := mae.FromBlock(b)
		require.IsType(t, true, rec.Props["b_m_prop_d"])
		require.IsType(t, true, rec.Atoms["b_m_prop_a"][0])
	})

	t.Run("null rows surface as absent", func(t *testing.T) {
		b := block.New(block.CTBlock)
		ib := block.NewIndexedBlock(block.BondBlock, 2)
		c := block.NewColumn[int64](2)
		c.Set(0, 4)
		require.NoError(t, ib.SetIntColumn("i_order", c))
		b.AddIndexed(ib)

		rec := mae.FromBlock(b)
		require.Equal(t, []any{int64(4), mae.Absent}, rec.Bonds["i_order"])
	})

	t.Run("blocks without rows or columns are omitted", func(t *testing.T) {
		b := block.New(block.CTBlock)
		b.AddIndexed(block.NewIndexedBlock(block.AtomBlock, 0))

		emptyCols := block.NewIndexedBlock(block.BondBlock, 3)
		b.AddIndexed(emptyCols)

		rec := mae.FromBlock(b)
		require.Nil(t, rec.Atoms)
		require.Nil(t, rec.Bonds)
	})

	t.Run("round trip through a block", func(t *testing.T) {
		rec := mae.Record{
			Title: strptr("mol1"),
			Props: map[string]any{"i_charge": int64(0)},
			Atoms: map[string][]any{
				"r_x":    {0.0, 1.5},
				"b_flag": {true, mae.Absent},
			},
		}

		b, err := mae.ToBlock(rec)
		require.NoError(t, err)
		require.Equal(t, rec, mae.FromBlock(b))
	})
}
