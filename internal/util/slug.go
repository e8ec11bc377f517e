package util

import (
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

// MaxSlugBase caps a generated slug so a numeric suffix still fits within the
// route limit of 200 characters.
const MaxSlugBase = 190

// Slugify turns a quiz title into a URL-safe slug. An empty result falls back
// to "quiz" so the unique column never receives an empty string.
func Slugify(title string) string {
	s := truncateSlug(slug.Make(strings.TrimSpace(title)), MaxSlugBase)
	if s == "" {
		return "quiz"
	}
	return s
}

// truncateSlug cuts s to at most limit bytes, preferring the last word boundary.
// slug.Make only emits ASCII, so byte and character counts agree.
func truncateSlug(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit]
	if s[limit] != '-' {
		if i := strings.LastIndexByte(cut, '-'); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.Trim(cut, "-")
}

// SuffixSlug returns base with a numeric disambiguator, e.g. "intro-2".
func SuffixSlug(base string, n int) string {
	return base + "-" + strconv.Itoa(n)
}
