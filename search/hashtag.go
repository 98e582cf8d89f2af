// search implements keyword search over users and public posts, hashtag
// extraction and the trending-hashtag aggregation.
package search

import (
	"regexp"
	"strings"
)

var hashtagPattern = regexp.MustCompile(`#\w+`)

// ExtractHashtags returns every hashtag token in text, in order of
// occurrence, case preserved. Duplicates are kept; aggregators count them,
// deduplicating callers collapse them. Text without hashtags yields nil.
func ExtractHashtags(text string) []string {
	return hashtagPattern.FindAllString(text, -1)
}

// NormalizeTag strips the leading '#' and lower-cases the tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(tag, "#"))
}

// HasHashtags reports whether text contains at least one hashtag token.
func HasHashtags(text string) bool {
	return hashtagPattern.MatchString(text)
}
