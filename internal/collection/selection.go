package collection

import "sort"

// Selection is the set of record ids marked for a bulk action. It is not tied
// to the fetched page.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection(ids ...string) *Selection {
	s := &Selection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s *Selection) Add(id string) {
	if id == "" {
		return
	}
	s.ids[id] = struct{}{}
}

func (s *Selection) Remove(id string) {
	delete(s.ids, id)
}

// Toggle flips membership and reports whether id is selected afterwards.
func (s *Selection) Toggle(id string) bool {
	if s.Has(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return s.Has(id)
}

func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int {
	return len(s.ids)
}

func (s *Selection) Clear() {
	clear(s.ids)
}

// IDs returns the selected ids in sorted order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
