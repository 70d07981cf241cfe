package block

// Type identifies one of the four MAE scalar types.
type Type int

const (
	Bool Type = iota
	Int
	Real
	String
)

func (t Type) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Real:
		return "real"
	case String:
		return "string"
	}
	return "unknown"
}

// TypeOf resolves a property name to its scalar type using the
// two-character name prefix: "b_" is boolean, "i_" integer, "r_" real and
// "s_" string. The prefix is part of the stored name and is never
// stripped; it is authoritative regardless of the value a property
// carries. The second result is false when the name has no recognized
// prefix.
func TypeOf(name string) (Type, bool) {
	if len(name) < 2 || name[1] != '_' {
		return 0, false
	}
	switch name[0] {
	case 'b':
		return Bool, true
	case 'i':
		return Int, true
	case 'r':
		return Real, true
	case 's':
		return String, true
	}
	return 0, false
}
