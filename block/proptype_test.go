package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		want Type
		ok   bool
	}{
		{"b_m_prop", Bool, true},
		{"i_m_mmod_type", Int, true},
		{"r_m_x_coord", Real, true},
		{"s_m_title", String, true},
		{"b_", Bool, true},
		{"x_foo", 0, false},
		{"title", 0, false},
		{"i", 0, false},
		{"", 0, false},
		{"ri_value", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TypeOf(tt.name)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "bool", Bool.String())
	require.Equal(t, "int", Int.String())
	require.Equal(t, "real", Real.String())
	require.Equal(t, "string", String.String())
}
