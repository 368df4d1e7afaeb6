package collection

import (
	"maps"
	"net/url"
	"strconv"
	"strings"
)

// State is the serializable UI state of a view.
type State struct {
	Search  string
	Filters map[string]string
	Sort    Sort
	Page    int
}

const (
	paramSearch = "q"
	paramSort   = "sort"
	paramDir    = "dir"
	paramPage   = "page"
)

func (s State) Clone() State {
	out := s
	out.Filters = maps.Clone(s.Filters)
	if out.Filters == nil {
		out.Filters = map[string]string{}
	}
	return out
}

// Filter returns the raw value of a named filter, "" when unset.
func (s State) Filter(name string) string {
	return s.Filters[name]
}

// FromValues reads state from url query values. Only filters known to the
// schema are kept.
func FromValues(schema Schema, values url.Values) State {
	state := State{
		Search:  values.Get(paramSearch),
		Filters: map[string]string{},
		Page:    1,
	}

	for name := range schema.Filters {
		if v := strings.TrimSpace(values.Get(name)); v != "" && !strings.EqualFold(v, FilterAll) {
			state.Filters[name] = v
		}
	}

	if col := values.Get(paramSort); col != "" && schema.CanSort(col) {
		state.Sort = Sort{Column: col, Desc: values.Get(paramDir) != "asc"}
	}

	if page, err := strconv.Atoi(values.Get(paramPage)); err == nil {
		state.Page = normalizePage(page)
	}

	return state
}

func (s State) Values() url.Values {
	v := url.Values{}
	if strings.TrimSpace(s.Search) != "" {
		v.Set(paramSearch, s.Search)
	}
	for name, value := range s.Filters {
		if value != "" {
			v.Set(name, value)
		}
	}
	if s.Sort.Column != "" {
		v.Set(paramSort, s.Sort.Column)
		dir := "asc"
		if s.Sort.Desc {
			dir = "desc"
		}
		v.Set(paramDir, dir)
	}
	if s.Page > 1 {
		v.Set(paramPage, strconv.Itoa(s.Page))
	}
	return v
}

// WithPage returns a copy of s pointing at page.
func (s State) WithPage(page int) State {
	out := s.Clone()
	out.Page = normalizePage(page)
	return out
}

// WithToggledSort mirrors a header click: the active column flips direction,
// any other column starts descending. The page resets to 1.
func (s State) WithToggledSort(schema Schema, column string) State {
	out := s.Clone()
	out.Page = 1

	active := s.Sort
	if active.Column == "" {
		active = schema.DefaultSort
	}

	if active.Column == column {
		out.Sort = Sort{Column: column, Desc: !active.Desc}
	} else {
		out.Sort = Sort{Column: column, Desc: true}
	}

	return out
}
