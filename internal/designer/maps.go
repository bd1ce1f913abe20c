package designer

import "sort"

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func ensure[V any](m map[string]map[string]map[string]V, floor, group string) map[string]V {
	groups, ok := m[floor]
	if !ok {
		groups = make(map[string]map[string]V)
		m[floor] = groups
	}
	beams, ok := groups[group]
	if !ok {
		beams = make(map[string]V)
		groups[group] = beams
	}
	return beams
}
