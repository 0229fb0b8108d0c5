package profile

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ProfileLexer defines the tokens of device profile files.
var ProfileLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments run from # to end of line
	{Name: "Comment", Pattern: `#[^\n]*`},

	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Keywords
	{Name: "KwDevice", Pattern: `\bdevice\b`},
	{Name: "KwKey", Pattern: `\bkey\b`},
	{Name: "KwGet", Pattern: `\bget\b`},
	{Name: "KwSet", Pattern: `\bset\b`},
	{Name: "KwList", Pattern: `\blist\b`},
	{Name: "KwFails", Pattern: `\bfails\b`},
	{Name: "KwTrue", Pattern: `\btrue\b`},
	{Name: "KwFalse", Pattern: `\bfalse\b`},

	// Punctuation
	{Name: "Assign", Pattern: `=`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Slash", Pattern: `/`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},

	// Literals
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Float", Pattern: `[-+]?[0-9]+\.[0-9]+([eE][-+]?[0-9]+)?`},
	{Name: "Int", Pattern: `[-+]?[0-9]+`},

	// Identifiers (must come after keywords)
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
})
