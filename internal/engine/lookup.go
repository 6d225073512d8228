package engine

import "strings"

// DuplicateMode controls how BuildLookup resolves two names that normalize to
// the same key.
type DuplicateMode int

const (
	DupError DuplicateMode = iota
	DupFirstWins
	DupLastWins
)

// Duplicate describes the first key collision found by BuildLookup. First and
// Second index into the names passed in.
type Duplicate struct {
	Key    string
	First  int
	Second int
}

// Folder normalizes a member or wire name into a lookup key.
type Folder func(string) string

// Verbatim keeps names as they are (case-sensitive matching).
func Verbatim(s string) string { return s }

// Upper maps every rune to its simple upper-case form, independent of the
// process locale. Special casings that change the rune count are not applied:
// "ß" stays "ß" and does not match "SS".
func Upper(s string) string { return strings.ToUpper(s) }

// BuildLookup maps fold(name) to the index of the member it came from.
// On collision DupError stops and reports the collision, the other modes
// keep the first or last index and continue.
func BuildLookup(names []string, fold Folder, mode DuplicateMode) (map[string]int, *Duplicate) {
	if fold == nil {
		fold = Verbatim
	}
	out := make(map[string]int, len(names))
	for i, n := range names {
		key := fold(n)
		prev, ok := out[key]
		if !ok {
			out[key] = i
			continue
		}
		switch mode {
		case DupFirstWins:
		case DupLastWins:
			out[key] = i
		default:
			return out, &Duplicate{Key: key, First: prev, Second: i}
		}
	}
	return out, nil
}
