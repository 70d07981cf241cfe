package mae

// Absent marks a null cell in an indexed column. It is distinct from
// every valid scalar value: a stored zero, false or empty string is
// never mistaken for an undefined cell. An untyped nil cell is accepted
// as absent on the write path; the read path always produces Absent.
var Absent = absent{}

type absent struct{}

func (absent) String() string { return "<>" }

// MarshalJSON renders an absent cell as JSON null.
func (absent) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Record is the flat, host-visible representation of one structure.
//
// Props values hold bool, int64, float64 or string. Atoms and Bonds map
// column names to cell sequences whose elements hold the same four
// types, or Absent for an undefined cell; all columns of one map share
// one length. Property names, scalar and column alike, carry a type
// prefix ("b_", "i_", "r_" or "s_") that is authoritative for how the
// value is stored.
type Record struct {
	Title *string          `json:"title,omitempty"`
	Props map[string]any   `json:"props,omitempty"`
	Atoms map[string][]any `json:"atoms,omitempty"`
	Bonds map[string][]any `json:"bonds,omitempty"`
}
