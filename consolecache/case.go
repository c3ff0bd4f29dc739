package consolecache

import (
	"strings"
	"unicode"
)

// toSnake folds a namespace or fan-out name to snake_case. Manifest authors
// sometimes hand over camelCase names lifted from backend route constants;
// normalizing here keeps every key path and manifest lookup on one spelling.
// Punctuation collapses to underscores so a stray character can never split
// the prefix-based invalidation scheme.
func toSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)

	runes := []rune(s)
	pendingSep := false

	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			startsWord := i > 0 &&
				(unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
					(i+1 < len(runes) && unicode.IsLower(runes[i+1])))
			if startsWord {
				pendingSep = true
			}
			writeRune(&b, unicode.ToLower(r), &pendingSep)

		case unicode.IsLower(r) || unicode.IsDigit(r):
			writeRune(&b, r, &pendingSep)

		default:
			// underscores, dashes, spaces, and anything exotic
			if b.Len() > 0 {
				pendingSep = true
			}
		}
	}

	return b.String()
}

func writeRune(b *strings.Builder, r rune, pendingSep *bool) {
	if *pendingSep && b.Len() > 0 {
		b.WriteByte('_')
	}
	*pendingSep = false
	b.WriteRune(r)
}
