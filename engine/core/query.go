package core

// DefaultOrderBy is applied when a list query carries no sort.
const DefaultOrderBy = "createdAt_DESC"

// ListQuery is the shared pagination and sorting envelope for
// findAndCountAll style operations. Entity filters live with their
// entity package.
type ListQuery struct {
	Limit   int64
	Offset  int64
	OrderBy string
	// CountOnly skips fetching rows and returns only the total count.
	CountOnly bool
}

// Order returns the query's sort specification or the default.
func (q *ListQuery) Order() string {
	if q == nil || q.OrderBy == "" {
		return DefaultOrderBy
	}
	return q.OrderBy
}

// AutocompleteItem is one {id, label} pair returned by autocomplete
// lookups.
type AutocompleteItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
