package config

import "strings"

// ParseGroupList splits a comma-separated list of group names. Leading
// whitespace around each name is trimmed; trailing whitespace is preserved
// as part of the name. An empty input yields nil.
func ParseGroupList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = strings.TrimLeft(p, " \t")
	}
	return names
}
