package partial

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NamingPolicy converts a declared field name into a wire name. It is applied
// only to fields without a wire name override.
type NamingPolicy func(name string) string

// Built-in naming policies. Casers from x/text are stateful, so each call
// builds its own.
var (
	// CamelCase: BankBalance -> bankBalance, UserID -> userID.
	CamelCase NamingPolicy = func(name string) string {
		words := splitWords(name)
		if len(words) == 0 {
			return name
		}
		words[0] = cases.Lower(language.Und).String(words[0])
		return strings.Join(words, "")
	}
	// PascalCase: bankBalance -> BankBalance.
	PascalCase NamingPolicy = func(name string) string {
		title := cases.Title(language.Und, cases.NoLower)
		words := splitWords(name)
		for i, w := range words {
			words[i] = title.String(w)
		}
		return strings.Join(words, "")
	}
	// SnakeCase: BankBalance -> bank_balance.
	SnakeCase NamingPolicy = func(name string) string { return joinLower(name, "_") }
	// KebabCase: BankBalance -> bank-balance.
	KebabCase NamingPolicy = func(name string) string { return joinLower(name, "-") }
	// LowerCase: BankBalance -> bankbalance.
	LowerCase NamingPolicy = func(name string) string { return cases.Lower(language.Und).String(name) }
	// UpperCase: BankBalance -> BANKBALANCE.
	UpperCase NamingPolicy = func(name string) string { return cases.Upper(language.Und).String(name) }
)

func joinLower(name, sep string) string {
	lower := cases.Lower(language.Und)
	words := splitWords(name)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return strings.Join(words, sep)
}

// splitWords breaks an identifier at '_', '-', spaces and case transitions.
// An upper-case run followed by a lower-case letter keeps its last letter for
// the next word (HTTPServer -> HTTP, Server).
func splitWords(s string) []string {
	var words []string
	start := -1
	prev := rune(0)
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, s[start:end])
		}
		start = -1
	}
	for i, r := range s {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush(i)
			prev = r
			continue
		}
		if start < 0 {
			start = i
			prev = r
			continue
		}
		switch {
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush(i)
			start = i
		case unicode.IsLower(r) && unicode.IsUpper(prev):
			_, size := utf8.DecodeLastRuneInString(s[:i])
			if i-size > start {
				flush(i - size)
				start = i - size
			}
		}
		prev = r
	}
	flush(len(s))
	return words
}
