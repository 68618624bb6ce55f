// Package slug turns titles into URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var pattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Letters that carry no combining mark and so survive NFD decomposition.
var foldReplacer = strings.NewReplacer(
	"ı", "i",
	"İ", "i",
	"ß", "ss",
	"æ", "ae",
	"Æ", "ae",
	"ø", "o",
	"Ø", "o",
	"œ", "oe",
	"Œ", "oe",
	"đ", "d",
	"Đ", "d",
	"ł", "l",
	"Ł", "l",
)

// Make derives a slug: lowercase, diacritics folded, every run of
// non-alphanumeric characters replaced by a single hyphen, no leading or
// trailing hyphen. It returns "" when nothing usable is left.
func Make(s string) string {
	s = foldReplacer.Replace(s)
	s = strings.ToLower(Fold(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// Fold strips combining marks, e.g. "Çalışma" -> "Calısma".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// Valid reports whether s is already in slug form
func Valid(s string) bool {
	return pattern.MatchString(s)
}
