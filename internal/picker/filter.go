package picker

import (
	"sort"
	"strings"

	"selectsync/internal/widget"
)

// matchesFilter checks if an option matches the given filter query
func matchesFilter(opt widget.Option, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(opt.Search), q) ||
		strings.Contains(strings.ToLower(opt.Text), q)
}

// visibleOptions returns the options matching query, ordered by their sort
// text when sorted is set and by insertion order otherwise
func visibleOptions(options []widget.Option, query string, sorted bool) []widget.Option {
	out := make([]widget.Option, 0, len(options))
	for _, opt := range options {
		if matchesFilter(opt, query) {
			out = append(out, opt)
		}
	}
	if sorted {
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Sort) < strings.ToLower(out[j].Sort)
		})
	}
	return out
}
