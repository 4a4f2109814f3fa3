package models

import "strings"

// ModelName identifies an inference model, optionally tagged ("codellama:13b")
type ModelName string

// Base returns the name before the first ':' ("codellama" for "codellama:13b")
func (m ModelName) Base() string {
	base, _, _ := strings.Cut(string(m), ":")
	return base
}

// Tag returns the part after the first ':' or "" when untagged
func (m ModelName) Tag() string {
	_, tag, _ := strings.Cut(string(m), ":")
	return tag
}

func (m ModelName) String() string {
	return string(m)
}

// MatchesAny reports whether the model is present in the available list.
// An entry matches when it equals the requested name, equals the base name,
// or starts with "<base>:", so "codellama" matches an installed "codellama:13b".
func (m ModelName) MatchesAny(available []string) bool {
	base := m.Base()
	for _, name := range available {
		if name == string(m) || name == base || strings.HasPrefix(name, base+":") {
			return true
		}
	}
	return false
}

// DistinctModels returns the given names with duplicates and empties removed, order kept
func DistinctModels(names ...ModelName) []ModelName {
	seen := make(map[ModelName]bool)
	var out []ModelName
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
