package service

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// suggestRatio is the largest edit distance, relative to the longer string,
// still treated as a near miss.
const suggestRatio = 0.4

// Suggest returns up to limit names that nearly match query, closest first.
// Each name is compared whole and word by word.
func Suggest(query string, names []string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}
	type scored struct {
		name  string
		ratio float64
	}
	var hits []scored
	for _, name := range names {
		best := 1.0
		candidates := append([]string{strings.ToLower(name)}, strings.Fields(strings.ToLower(name))...)
		for _, c := range candidates {
			if r := distanceRatio(q, c); r < best {
				best = r
			}
		}
		if best <= suggestRatio {
			hits = append(hits, scored{name: name, ratio: best})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].ratio < hits[j].ratio })
	var out []string
	for _, h := range hits {
		if len(out) == limit {
			break
		}
		out = append(out, h.name)
	}
	return out
}

func distanceRatio(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}
