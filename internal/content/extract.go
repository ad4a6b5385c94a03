// Package content provides pure text scanning for hashtags and mentions.
package content

import (
	"regexp"
	"strings"
)

var (
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
)

// ExtractHashtags returns the hashtags found in text, case-folded to lower
// case, deduplicated, in order of first appearance, without the # prefix.
func ExtractHashtags(text string) []string {
	return extract(text, hashtagPattern)
}

// ExtractMentions returns the usernames mentioned in text, case-folded to
// lower case, deduplicated, in order of first appearance, without the @ prefix.
func ExtractMentions(text string) []string {
	return extract(text, mentionPattern)
}

// Extract scans text once for both token kinds.
func Extract(text string) (hashtags, mentions []string) {
	return ExtractHashtags(text), ExtractMentions(text)
}

func extract(text string, pattern *regexp.Regexp) []string {
	if text == "" {
		return nil
	}
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		token := strings.ToLower(m[1])
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}
