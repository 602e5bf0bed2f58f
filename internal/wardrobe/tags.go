package wardrobe

import "strings"

const maxTagsPerField = 20

// normalizeTags lowercases, trims and dedupes a tag list, capping its size.
// Scoring compares tags as sets, so normalization happens on write.
func normalizeTags(tags []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(tags))

	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)

		if len(out) >= maxTagsPerField {
			break
		}
	}

	return out
}
