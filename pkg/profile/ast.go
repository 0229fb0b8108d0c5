package profile

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed profile file holding one or more device declarations.
type File struct {
	Devices []*DeviceDecl `@@*`
}

// DeviceDecl declares one simulated device.
// Example: device "Demo" "Logic" serial "0001" conn "usb/1.4" { ... }
type DeviceDecl struct {
	Pos lexer.Position

	Vendor string     `KwDevice @String`
	Model  string     `@String?`
	Attrs  []*Attr    `@@*`
	Keys   []*KeyDecl `LBrace @@* RBrace`
}

// Attr is a device information attribute such as serial or conn.
type Attr struct {
	Pos lexer.Position

	Name  string `@Ident`
	Value string `@String`
}

// KeyDecl declares a configuration key with its capabilities, current value
// and the values it lists.
// Example: key timebase get set list = 1/1000 [1/1000000, 1/1000];
type KeyDecl struct {
	Pos lexer.Position

	Name    string     `KwKey @Ident`
	Caps    []string   `( @KwGet | @KwSet | @KwList )*`
	Fails   bool       `@KwFails?`
	Value   *Literal   `( Assign @@ )?`
	Choices []*Literal `( LBracket ( @@ ( Comma @@ )* )? RBracket )? Semicolon`
}

// Literal is a key value. Integers stay textual until the key type is known.
type Literal struct {
	Pos lexer.Position

	Range    *RangeLit    `  @@`
	Rational *RationalLit `| @@`
	Float    *float64     `| @Float`
	Int      *string      `| @Int`
	Str      *string      `| @String`
	Bool     *string      `| @( KwTrue | KwFalse )`
}

// RangeLit is a voltage range written (lo, hi).
type RangeLit struct {
	Lo float64 `LParen @( Float | Int )`
	Hi float64 `Comma @( Float | Int ) RParen`
}

// RationalLit is a fraction written p/q.
type RationalLit struct {
	P string `@Int Slash`
	Q string `@Int`
}
