package eqn

import "github.com/alecthomas/participle/v2/lexer"

// ListingLexer tokenizes equation listings. An output symbol is lexed
// together with its '=' so that a statement with an empty right-hand side
// is not mistaken for a literal of the previous one.
var ListingLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Output", Pattern: `/?[A-Za-z_][A-Za-z0-9_]*[ \t]*=`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "One", Pattern: `1`},
	{Name: "Punct", Pattern: `[/*+]`},
	{Name: "Whitespace", Pattern: `\s+`},
})
