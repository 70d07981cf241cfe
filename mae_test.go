package mae_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	mae "github.com/KimNorgaard/go-mae"
	maerr "github.com/KimNorgaard/go-mae/errors"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update golden files")

func TestReadTestdata(t *testing.T) {
	records, err := mae.Read("testdata/benzoate.mae")
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	require.NotNil(t, first.Title)
	require.Equal(t, "benzoate", *first.Title)
	require.Equal(t, map[string]any{
		"b_m_prop_d":    true,
		"i_m_ct_format": int64(2),
		"r_m_energy":    -12.5,
	}, first.Props)

	require.Equal(t, []any{int64(3), int64(3), int64(16)}, first.Atoms["i_m_mmod_type"])
	require.Equal(t, []any{-1.25, mae.Absent, 0.75}, first.Atoms["r_m_y_coord"])
	require.Equal(t, []any{"C1", "C2", mae.Absent}, first.Atoms["s_m_atom_name"])
	require.Equal(t, []any{true, false, mae.Absent}, first.Atoms["b_m_prop_a"])

	require.Equal(t, []any{int64(1), int64(2)}, first.Bonds["i_m_from"])
	require.Equal(t, []any{int64(1), int64(2)}, first.Bonds["i_m_order"])

	second := records[1]
	require.NotNil(t, second.Title)
	require.Equal(t, "methane", *second.Title)
	require.Nil(t, second.Props)
	require.Nil(t, second.Atoms)
	require.Nil(t, second.Bonds)
}

func roundTripRecords(t *testing.T) []mae.Record {
	t.Helper()
	return []mae.Record{
		{
			Title: strptr("mol1"),
			Props: map[string]any{"i_charge": int64(0)},
			Atoms: map[string][]any{
				"r_x":    {0.0, 1.5},
				"b_flag": {true, mae.Absent},
			},
		},
		{
			Title: strptr(""),
			Props: map[string]any{
				"b_active": false,
				"r_energy": -0.25,
				"s_smiles": `C(=O)[O-] "salt"`,
			},
			Bonds: map[string][]any{
				"i_from":  {int64(1), mae.Absent},
				"s_label": {mae.Absent, "aromatic"},
			},
		},
		{
			Props: map[string]any{"s_empty": ""},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	records := roundTripRecords(t)
	path := filepath.Join(t.TempDir(), "out.mae")

	require.NoError(t, mae.Write(records, path))

	got, err := mae.Read(path)
	require.NoError(t, err)
	require.Equal(t, records, got)
}

func TestRoundTripGzip(t *testing.T) {
	records := roundTripRecords(t)
	path := filepath.Join(t.TempDir(), "out.maegz")

	require.NoError(t, mae.Write(records, path))

	// The file must actually be compressed.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 2)
	require.Equal(t, byte(0x1f), raw[0])
	require.Equal(t, byte(0x8b), raw[1])

	got, err := mae.Read(path)
	require.NoError(t, err)
	require.Equal(t, records, got)
}

func TestWriteGolden(t *testing.T) {
	title := "mol1"
	records := []mae.Record{{
		Title: &title,
		Props: map[string]any{
			"b_active": true,
			"i_charge": int64(0),
			"r_weight": 1.25,
			"s_name":   "benzene",
		},
		Atoms: map[string][]any{
			"r_x":     {0.0, 1.5},
			"b_flag":  {true, mae.Absent},
			"s_label": {"a", mae.Absent},
		},
		Bonds: map[string][]any{
			"i_from": {int64(1)},
			"i_to":   {int64(2)},
		},
	}}

	path := filepath.Join(t.TempDir(), "simple.mae")
	require.NoError(t, mae.Write(records, path))

	actual, err := os.ReadFile(path)
	require.NoError(t, err)

	goldenFile := "testdata/simple.golden.mae"
	if *update {
		require.NoError(t, os.WriteFile(goldenFile, actual, 0o644))
	}

	expected, err := os.ReadFile(goldenFile)
	require.NoError(t, err, "Golden file not found. Run with -update to create it.")
	require.Equal(t, string(expected), string(actual))
}

func TestEmptySubMappingOmission(t *testing.T) {
	dir := t.TempDir()
	withEmpty := filepath.Join(dir, "empty.mae")
	without := filepath.Join(dir, "absent.mae")

	title := "mol"
	require.NoError(t, mae.Write([]mae.Record{{Title: &title, Atoms: map[string][]any{}}}, withEmpty))
	require.NoError(t, mae.Write([]mae.Record{{Title: &title}}, without))

	a, err := os.ReadFile(withEmpty)
	require.NoError(t, err)
	b, err := os.ReadFile(without)
	require.NoError(t, err)
	require.Equal(t, string(b), string(a))
}

func TestWriteErrors(t *testing.T) {
	t.Run("inconsistent columns fail before any write", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "never.mae")
		err := mae.Write([]mae.Record{{
			Atoms: map[string][]any{
				"r_x": {0.0, 1.0},
				"r_y": {0.0},
			},
		}}, path)
		require.ErrorIs(t, err, maerr.ErrInconsistentColumnLength)

		_, statErr := os.Stat(path)
		require.True(t, os.IsNotExist(statErr), "no partial file may be left behind")
	})

	t.Run("errors carry the structure index", func(t *testing.T) {
		title := "ok"
		err := mae.Write([]mae.Record{
			{Title: &title},
			{Props: map[string]any{"x_foo": 1}},
		}, filepath.Join(t.TempDir(), "never.mae"))
		require.ErrorIs(t, err, maerr.ErrUnsupportedPropertyType)

		var serr *maerr.StructureError
		require.ErrorAs(t, err, &serr)
		require.Equal(t, 1, serr.Index)
	})

	t.Run("unwritable path", func(t *testing.T) {
		title := "ok"
		err := mae.Write([]mae.Record{{Title: &title}}, filepath.Join(t.TempDir(), "missing", "out.mae"))
		require.Error(t, err)
	})
}

func TestReadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := mae.Read(filepath.Join(t.TempDir(), "nope.mae"))
		require.Error(t, err)
		require.True(t, os.IsNotExist(err))
	})

	t.Run("unknown prefix in file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.mae")
		require.NoError(t, os.WriteFile(path, []byte("f_m_ct {\n  x_foo\n  :::\n  1\n}\n"), 0o644))

		_, err := mae.Read(path)
		require.ErrorIs(t, err, maerr.ErrUnsupportedPropertyType)

		var serr *maerr.StructureError
		require.ErrorAs(t, err, &serr)
		require.Equal(t, 0, serr.Index)
	})

	t.Run("truncated file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trunc.mae")
		require.NoError(t, os.WriteFile(path, []byte("f_m_ct {\n  i_a\n  :::\n"), 0o644))

		_, err := mae.Read(path)
		var perr *maerr.ParseError
		require.ErrorAs(t, err, &perr)
	})
}
