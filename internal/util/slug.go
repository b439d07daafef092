// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)

	// Decomposes accented characters and strips the combining marks,
	// so "Café" slugifies to "cafe" rather than "caf".
	deaccenter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify converts a display name to a canonical URL slug.
// The slug is the source of truth for tool and category identity.
//
// Normalization rules:
//  1. Decompose accented characters and drop combining marks
//  2. Trim whitespace and lowercase
//  3. Replace spaces, underscores, and slashes with dashes
//  4. Remove non-alphanumeric characters (except dashes)
//  5. Collapse multiple dashes
//  6. Trim leading/trailing dashes
//
// Examples:
//
//	"Notion"          → "notion"
//	"AI & Writing"    → "ai-writing"
//	"Café Timer"      → "cafe-timer"
//	"  Dev / Tools  " → "dev-tools"
func Slugify(input string) string {
	// 1. Strip accents; fall back to the raw input on malformed UTF-8
	s, _, err := transform.String(deaccenter, input)
	if err != nil {
		s = input
	}

	// 2. Trim and lowercase
	s = strings.ToLower(strings.TrimSpace(s))

	// 3. Replace word separators (spaces, underscores, slashes) with dashes
	s = wordSeparatorRe.ReplaceAllString(s, "-")

	// 4. Remove non-alphanumeric (except dashes)
	s = nonAlphanumericRe.ReplaceAllString(s, "")

	// 5. Collapse multiple dashes
	s = multipleDashRe.ReplaceAllString(s, "-")

	// 6. Trim leading/trailing dashes
	return strings.Trim(s, "-")
}
