// Package pagination implements the keyset page primitive shared by every
// listing endpoint: fixed page size, exclusive cursor keyed by the last
// item's id, stable under concurrent inserts.
package pagination

// PageSize is fixed for all listings.
const PageSize = 10

type Page[T any] struct {
	Items      []T  `json:"items"`
	NextCursor *int `json:"nextCursor"`
}

// NewPage wraps an already-ordered, already-limited slice. NextCursor is the
// id of the last item when a full page was returned; a short page means the
// end of the sequence was reached and NextCursor stays null.
func NewPage[T any](items []T, idOf func(T) int) Page[T] {
	if items == nil {
		items = []T{}
	}
	p := Page[T]{Items: items}
	if len(items) == PageSize {
		last := idOf(items[len(items)-1])
		p.NextCursor = &last
	}
	return p
}
