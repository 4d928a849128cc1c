package repository

// SortOrder selects the creation-time ordering of a listing.
type SortOrder string

const (
	// SortNone leaves the ordering storage-defined. Callers must treat the
	// result as unordered, not as insertion order.
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListQuery is the per-request filter/sort/pagination descriptor for listing
// posts or comments. Predicates combine conjunctively. AuthorID is the
// resolved author filter; services translate a username filter into it before
// the query reaches storage. Zero means no author filter.
type ListQuery struct {
	Sort     SortOrder
	Search   string
	Page     int
	Limit    int
	AuthorID int64
}

// Normalize applies defaults and defensively resets out-of-range values.
// Upstream binding already rejects page/limit < 1; this is a fail-fast
// backstop, not coercion of user input.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Sort != SortAsc && q.Sort != SortDesc {
		q.Sort = SortNone
	}
	return q
}

// Offset returns the row offset of the requested page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
