package eqn

import "github.com/alecthomas/participle/v2/lexer"

// Listing is a parsed equation listing as written by the disassembler.
type Listing struct {
	Equations []*Equation `@@*`
}

// Equation is one "<output> = <term> + <term>..." statement. The Output
// token carries the output symbol and the '=' sign.
type Equation struct {
	Pos    lexer.Position
	Output string  `@Output`
	Terms  []*Term `( @@ ( "+" @@ )* )?`
}

// Term is an AND of literals, or the constant "1".
type Term struct {
	True     bool       `  @One`
	Literals []*Literal `| @@ ( "*" @@ )*`
}

// Literal is a pin symbol, optionally inverted with '/'.
type Literal struct {
	Neg  bool   `@"/"?`
	Name string `@Ident`
}
