package matcher

import (
	"regexp"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

var (
	// Decoration tokens commonly appended to YouTube video titles, in
	// parentheses or brackets, matched case-insensitively and tolerant of
	// internal whitespace.
	decorationRegex = regexp.MustCompile(`(?i)\s*[(\[]\s*(official\s+video|official\s+music\s+video|official\s+audio|hd|4k|lyrics)\s*[)\]]`)

	// Auto-generated "- Topic" channel suffix.
	topicRegex = regexp.MustCompile(`(?i)\s*-\s*topic\s*$`)
)

// CleanTitle strips decoration tokens from a raw YouTube video title.
//
// All matches are removed regardless of count or order, then the result is
// trimmed. Empty input maps to empty output. The function is total and
// idempotent.
func CleanTitle(title string) string {
	if title == "" {
		return ""
	}

	cleaned := decorationRegex.ReplaceAllString(title, "")
	cleaned = topicRegex.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// PrepareSearchQuery converts a raw video title into a Spotify search query.
//
// Decorations are stripped first. When the cleaned title contains exactly one
// " - " separator, the left side is treated as an artist hint and the right
// as a title hint, and the two are re-ordered to "title artist", since Spotify
// search matches better when the distinguishing words come first. Titles with
// zero or multiple separators are returned as cleaned.
func PrepareSearchQuery(title string) string {
	cleaned := CleanTitle(title)

	if strings.Count(cleaned, " - ") == 1 {
		artist, song, _ := strings.Cut(cleaned, " - ")
		return strings.TrimSpace(song) + " " + strings.TrimSpace(artist)
	}

	return cleaned
}

// Confidence scores how closely a matched track resembles the search query
// using Jaro-Winkler similarity over lowercased "title artist" strings.
//
// The score is diagnostic only; it never changes the match decision.
func Confidence(query, title, artist string) float64 {
	candidate := strings.TrimSpace(title + " " + artist)
	return strutil.Similarity(strings.ToLower(query), strings.ToLower(candidate), metrics.NewJaroWinkler())
}
