package order

import "attrsort/pkg/token"

// canonicalHint is the built-in attribute precedence table. It is applied
// after all custom hints, so user-supplied lists always win on conflict.
// Wildcard groups keep related attributes adjacent without enumerating
// them.
var canonicalHint = []token.Token{
	"id",
	"class",
	"name",
	"slot",
	"type",
	"value",
	"href",
	"src",
	"srcset",
	"for",
	"action",
	"method",
	"target",
	"rel",
	"alt",
	"title",
	"placeholder",
	"width",
	"height",
	"style",
	"tabindex",
	"role",
	"aria-*",
	"data-*",
}

// CanonicalHint returns a copy of the built-in precedence table as one
// ordering hint.
func CanonicalHint() []token.Token {
	return append([]token.Token(nil), canonicalHint...)
}
