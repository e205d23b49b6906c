package checker

import "sort"

type stringSet map[string]struct{}

func newStringSet(items ...string) stringSet {
	s := make(stringSet, len(items))
	for _, item := range items {
		s.add(item)
	}
	return s
}

func (s stringSet) add(item string) {
	s[item] = struct{}{}
}

func (s stringSet) has(item string) bool {
	_, ok := s[item]
	return ok
}

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

func (s stringSet) clear() {
	for item := range s {
		delete(s, item)
	}
}
