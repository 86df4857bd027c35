// Package textmatch compares text scraped from the page against expectations
// without tripping over case, accents or spacing.
package textmatch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	intRegex   = regexp.MustCompile(`\d+`)
	spaceRegex = regexp.MustCompile(`\s+`)
)

// Normalize strips diacritics, lowercases and collapses whitespace.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.TrimSpace(spaceRegex.ReplaceAllString(strings.ToLower(result), " "))
}

// Contains reports whether needle occurs in s after normalizing both.
func Contains(s, needle string) bool {
	return strings.Contains(Normalize(s), Normalize(needle))
}

func ContainsAll(s string, needles ...string) bool {
	n := Normalize(s)
	for _, needle := range needles {
		if !strings.Contains(n, Normalize(needle)) {
			return false
		}
	}
	return true
}

func ContainsAny(s string, needles ...string) bool {
	n := Normalize(s)
	for _, needle := range needles {
		if strings.Contains(n, Normalize(needle)) {
			return true
		}
	}
	return false
}

// AnyMatches reports whether some message satisfies pred.
func AnyMatches(messages []string, pred func(string) bool) bool {
	for _, m := range messages {
		if pred(m) {
			return true
		}
	}
	return false
}

// FirstInt returns the first integer in s once thousands separators are
// removed, so "1,234 jobs found" is 1234. ok is false when s has no digits;
// a number that does not fit in an int is an error.
func FirstInt(s string) (n int, ok bool, err error) {
	match := intRegex.FindString(strings.ReplaceAll(s, ",", ""))
	if match == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(match)
	if err != nil {
		return 0, false, fmt.Errorf("parse %q: %w", match, err)
	}
	return n, true, nil
}
