package ioutils

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// MaxUnicodeNameLen caps names produced by SanitizeUnicode, in runes.
	MaxUnicodeNameLen = 120

	// MaxASCIINameLen caps names produced by ASCIIFallback.
	MaxASCIINameLen = 80
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SanitizeUnicode turns arbitrary text into a safe file base name while
// keeping Unicode letters (Cyrillic, CJK, ...) intact.
//
// The following transformations are applied, in order:
//   - Percent-escapes are decoded (titles often come from URLs)
//   - The text is NFC-normalized so composed and decomposed forms of
//     the same title map to the same name
//   - Path separators (/ and \) become underscores
//   - Runs of whitespace collapse to a single underscore
//   - Everything that is not a letter, digit, underscore, hyphen or dot
//     in any script is dropped
//   - The result is truncated to MaxUnicodeNameLen runes
//
// SanitizeUnicode is total: empty input yields "unnamed", and input
// that is empty after cleaning yields "file". Same input always yields
// the same output, and sanitizing an already-sanitized name returns it
// unchanged.
//
// Example:
//
//	SanitizeUnicode("Мой сайт/главная")  // "Мой_сайт_главная"
//	SanitizeUnicode("a b\tc")            // "a_b_c"
//	SanitizeUnicode("???")               // "file"
func SanitizeUnicode(name string) string {
	if name == "" {
		return "unnamed"
	}
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	name = norm.NFC.String(name)
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = whitespaceRun.ReplaceAllString(name, "_")

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.' {
			b.WriteRune(r)
		}
	}
	name = truncateRunes(b.String(), MaxUnicodeNameLen)

	if name == "" {
		return "file"
	}
	return name
}

// ASCIIFallback reduces text to a pure-ASCII file base name for
// filesystems that reject Unicode names.
//
// Every non-ASCII rune is dropped, then everything outside
// letters/digits/underscore/hyphen/dot, and the result is truncated to
// MaxASCIINameLen. Never fails: input with no usable characters yields
// "file".
//
// Example:
//
//	ASCIIFallback("Пример-01")  // "-01"
//	ASCIIFallback("Пример")     // "file"
func ASCIIFallback(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r > unicode.MaxASCII {
			continue
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_', r == '-', r == '.':
			b.WriteRune(r)
		}
	}
	name = strings.TrimSpace(b.String())
	name = truncateRunes(name, MaxASCIINameLen)
	if name == "" {
		return "file"
	}
	return name
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
