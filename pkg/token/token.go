// Package token defines the normalized name type shared by every ordering
// component.
//
// A Token is the comparable form of a raw attribute or identifier name. All
// graphs, queues, and comparators operate on Tokens exclusively; callers are
// responsible for mapping sorted Tokens back to their original spellings.
//
// Tokens used inside ordering hints may carry a trailing '*' to act as
// prefix patterns ("data-*" matches "data-id" and "data-track"). Tokens used
// as graph nodes are always concrete.
package token

import "strings"

// Wildcard is the suffix marking a hint entry as a prefix pattern.
const Wildcard = "*"

// Token is a normalized, comparable attribute or identifier name.
// Equality is plain value equality.
type Token string

// Normalize folds a raw name into its comparable form: surrounding
// whitespace is trimmed, letters are lower-cased, and underscores are folded
// to hyphens so that "data_id" and "Data-ID" normalize identically.
func Normalize(raw string) Token {
	s := strings.TrimSpace(raw)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "-")
	return Token(s)
}

// NormalizeAll normalizes every raw name, preserving order.
func NormalizeAll(raws []string) []Token {
	out := make([]Token, len(raws))
	for i, r := range raws {
		out[i] = Normalize(r)
	}
	return out
}

// String returns the token text.
func (t Token) String() string { return string(t) }

// IsPattern reports whether the token ends with the wildcard marker and
// therefore acts as a prefix pattern inside hints.
func (t Token) IsPattern() bool {
	return strings.HasSuffix(string(t), Wildcard)
}

// Prefix returns the non-wildcard prefix of a pattern token. For concrete
// tokens it returns the full text.
func (t Token) Prefix() string {
	return strings.TrimSuffix(string(t), Wildcard)
}

// Matches reports whether the candidate token is covered by t. A pattern
// matches every candidate sharing its prefix; a concrete token matches only
// itself. Candidates are never treated as patterns.
func (t Token) Matches(candidate Token) bool {
	if t.IsPattern() {
		return strings.HasPrefix(string(candidate), t.Prefix())
	}
	return t == candidate
}
