package platform

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// mergeHashtags combines city hashtags with platform defaults,
// deduplicating case-insensitively and preserving order, capped at limit.
func mergeHashtags(cityTags, defaults []string, limit int) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, tag := range append(append([]string{}, cityTags...), defaults...) {
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
		if len(out) == limit {
			break
		}
	}
	return out
}

// hashtagFromName turns a display name into a single hashtag.
func hashtagFromName(name string) string {
	return "#" + strings.ReplaceAll(name, " ", "")
}

// titleCase capitalizes each word of a weather description.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// truncateRunes caps a caption at max runes. Captions lead with emoji
// and may carry localized text, so byte slicing would split runes.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
