package label

import "strings"

// NormalizeName trims and lowercases a label name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SplitNames parses a comma separated list into normalized, de-duplicated
// names. Empty entries are dropped.
func SplitNames(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	return NormalizeNames(strings.Split(csv, ","))
}

// NormalizeNames normalizes each name, dropping empties and duplicates while
// keeping first-seen order.
func NormalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := NormalizeName(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
