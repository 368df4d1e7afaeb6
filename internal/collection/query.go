package collection

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"homerelief/pkg/types"
)

type FilterOp string

const (
	OpEq       FilterOp = "eq"
	OpContains FilterOp = "contains"
)

// FilterAll is the UI value meaning "no filter".
const FilterAll = "all"

type FilterSpec struct {
	Column string
	Op     FilterOp
	// Parse converts the raw UI value into the predicate value. ok=false drops
	// the filter.
	Parse func(raw string) (value any, ok bool)
}

type Sort struct {
	Column string
	Desc   bool
}

type Schema struct {
	Kind          types.RecordKind
	SearchColumns []string
	Filters       map[string]FilterSpec
	Sortable      []string
	DefaultSort   Sort
	PageSize      int
}

func (s Schema) CanSort(column string) bool {
	return slices.Contains(s.Sortable, column)
}

type Search struct {
	Term    string
	Columns []string
}

type Predicate struct {
	Column string
	Op     FilterOp
	Value  any
}

// Query is the store-agnostic descriptor handed to a Source.
type Query struct {
	Kind   types.RecordKind
	Search *Search
	Where  []Predicate
	Order  Sort
	Offset int
	Limit  int
	Count  bool
}

// Build translates view state into a query. Search matches any search column,
// each filter is ANDed with it. Blank search and unset filters are omitted.
func Build(schema Schema, state State) Query {
	q := Query{
		Kind:  schema.Kind,
		Order: schema.DefaultSort,
		Count: true,
	}

	if term := strings.TrimSpace(state.Search); term != "" && len(schema.SearchColumns) > 0 {
		q.Search = &Search{Term: term, Columns: slices.Clone(schema.SearchColumns)}
	}

	names := make([]string, 0, len(state.Filters))
	for name := range state.Filters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec, ok := schema.Filters[name]
		if !ok {
			continue
		}

		raw := strings.TrimSpace(state.Filters[name])
		if raw == "" || strings.EqualFold(raw, FilterAll) {
			continue
		}

		var value any = raw
		if spec.Parse != nil {
			value, ok = spec.Parse(raw)
			if !ok {
				continue
			}
		}

		op := spec.Op
		if op == "" {
			op = OpEq
		}

		q.Where = append(q.Where, Predicate{Column: spec.Column, Op: op, Value: value})
	}

	if state.Sort.Column != "" && schema.CanSort(state.Sort.Column) {
		q.Order = state.Sort
	}

	size := schema.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	q.Limit = size
	q.Offset = (normalizePage(state.Page) - 1) * size

	return q
}

const DefaultPageSize = 10

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ParseVerified accepts the dashboard vocabulary as well as plain booleans.
func ParseVerified(raw string) (any, bool) {
	switch strings.ToLower(raw) {
	case "verified":
		return true, true
	case "unverified", "pending":
		return false, true
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return b, true
}

func ParseOneOf[E ~string](allowed ...E) func(string) (any, bool) {
	return func(raw string) (any, bool) {
		for _, v := range allowed {
			if strings.EqualFold(string(v), raw) {
				return string(v), true
			}
		}
		return nil, false
	}
}

func ParseText(raw string) (any, bool) {
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}
