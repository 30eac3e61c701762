// Package grammar parses the rule pattern language (§4.5) into the
// behavior.Behavior AST, using participle/v2 as the parser generator and a
// struct-tag-driven grammar mirroring the pack's own DSL frontends.
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ruleLexer tokenizes rule pattern text. Hex must be tried before Int, or
// "0x50" would lex as Int("0") followed by a stray identifier "x50".
var ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `\b(if|while|switch|case|break)\b`},
	{Name: "Hex", Pattern: `[+-]?0[xX][0-9a-fA-F]+`},
	{Name: "Int", Pattern: `[+-]?[0-9]+`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[(){},:=+|]`},
	{Name: "Whitespace", Pattern: `\s+`},
})
