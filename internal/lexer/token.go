package lexer

import (
	"fmt"

	"github.com/mithril-lang/mithril/internal/extent"
)

// Kind is a token's lexical classification, drawn from the closed set
// named in spec.md §3.
type Kind int

const (
	Keyword Kind = iota
	Modifier
	Semicolon
	Colon
	EqualSign
	Parenthesis
	CurlyBracket
	Comma
	Dot
	Integer
	Decimal
	Character
	String
	Boolean
	Poison
	Identifier
)

var kindNames = map[Kind]string{
	Keyword:      "Keyword",
	Modifier:     "Modifier",
	Semicolon:    "Semicolon",
	Colon:        "Colon",
	EqualSign:    "EqualSign",
	Parenthesis:  "Parenthesis",
	CurlyBracket: "CurlyBracket",
	Comma:        "Comma",
	Dot:          "Dot",
	Integer:      "Integer",
	Decimal:      "Decimal",
	Character:    "Character",
	String:       "String",
	Boolean:      "Boolean",
	Poison:       "Poison",
	Identifier:   "Identifier",
}

// String renders the kind's name for diagnostics.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLiteral reports whether the kind is one of the literal kinds that,
// per spec.md §4.1's ambiguity resolution rule, wins over an Identifier
// candidate at the same starting offset.
func (k Kind) IsLiteral() bool {
	switch k {
	case Integer, Decimal, Character, String, Boolean, Poison:
		return true
	default:
		return false
	}
}

// Token is a single classified lexeme. Equality is structural over all
// three fields, matching spec.md §3: two tokens with the same kind,
// lexeme, and extents are the same token, even if produced independently.
type Token struct {
	Kind    Kind
	Lexeme  string
	Extents extent.Extent
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Extents)
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

// IsKeyword reports whether the token is a Keyword with the given lexeme.
func (t Token) IsKeyword(lexeme string) bool {
	return t.Kind == Keyword && t.Lexeme == lexeme
}

// IsModifier reports whether the token is a Modifier with the given lexeme.
func (t Token) IsModifier(lexeme string) bool {
	return t.Kind == Modifier && t.Lexeme == lexeme
}
