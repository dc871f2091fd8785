// Package pagination implements the skip/limit window math shared by every
// list endpoint and the response envelope the frontend depends on.
package pagination

// MaxLimit bounds the page size regardless of what the caller requests.
const MaxLimit = 100

// DefaultLimit is used when the caller does not send a limit.
const DefaultLimit = 100

// Params is a sanitized pagination window.
type Params struct {
	Skip  int
	Limit int
}

// Clamp normalizes raw skip/limit values: negative skip becomes 0 and limit
// is forced into [1, MaxLimit].
func Clamp(skip, limit int) Params {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Skip: skip, Limit: limit}
}

// Page is the list response envelope. The field set and names are fixed for
// frontend compatibility.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int   `json:"pages"`
}

// NewPage wraps items in the envelope. The page number is derived from skip,
// so a window that does not align to a page boundary reports the page it
// starts in (skip=5, limit=10 is page 1).
func NewPage[T any](items []T, total int64, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Page[T]{
		Items: items,
		Total: total,
		Page:  p.Skip/p.Limit + 1,
		Size:  p.Limit,
		Pages: pages,
	}
}
