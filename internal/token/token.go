package token

// Type is the type of a token.
type Type string

// Token represents a lexical token of a MAE stream.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // An unknown or invalid token
	EOF     Type = "EOF"     // End of stream

	// Literals
	VALUE  Type = "VALUE"  // bare word: property names, numbers, block headers
	STRING Type = "STRING" // "a quoted value"
	NULL   Type = "NULL"   // <>, an undefined cell

	// Delimiters
	LBRACE Type = "{"
	RBRACE Type = "}"
	SEP    Type = ":::" // separates the name list from the data section
)
