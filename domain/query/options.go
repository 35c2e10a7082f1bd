package query

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// SortDirection is the numeric sort order Mongo expects: 1 ascending, -1 descending.
type SortDirection int

const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

// ParseSortDirection maps the wire values asc/desc; anything else defaults
// to descending, matching the API's documented default.
func ParseSortDirection(s string) SortDirection {
	if s == "asc" {
		return Ascending
	}
	return Descending
}

// Operator returns the Mongo comparison operator meaning "after the cursor"
// for this direction.
func (d SortDirection) Operator() string {
	if d == Ascending {
		return "$gt"
	}
	return "$lt"
}

// ListOptions is the declarative read request the aggregation builder and
// the pagination engine consume.
type ListOptions struct {
	Limit     int
	SortBy    string
	Direction SortDirection
	// Search is a case-insensitive substring filter applied to the
	// collection's designated text field (title for videos).
	Search string
	// Owner filters by the owning/channel user when non-zero.
	Owner bson.ObjectID
	// PublishedOnly excludes drafts; the public feed sets it, the owner's
	// dashboard does not.
	PublishedOnly bool
	// Cursor resumes after a previous page; nil fetches the first page.
	Cursor *Cursor
	// WithTotal requests the separate full-set count; never paid implicitly.
	WithTotal bool
}

// SortDoc is the composite ordering (sortKey, _id). The _id tie-break keeps
// pages disjoint when many rows share the same sort key value.
func (o ListOptions) SortDoc() bson.D {
	return bson.D{
		{Key: o.SortBy, Value: int(o.Direction)},
		{Key: "_id", Value: int(o.Direction)},
	}
}

// Page is one cursor-paginated result set.
type Page[T any] struct {
	Items []T
	// HasMore is the len(items)==limit heuristic: it may report one extra
	// empty page, it never hides data.
	HasMore bool
	// NextCursor is the opaque token for the following page; empty when the
	// page itself is empty.
	NextCursor string
	// Total is only populated when ListOptions.WithTotal was set.
	Total *int64
}

// EmptyPage is what limit<=0 and past-the-end cursors resolve to.
func EmptyPage[T any]() Page[T] {
	return Page[T]{Items: []T{}, HasMore: false}
}

// NewPage finalizes a fetched slice into a page: computes HasMore and mints
// the continuation cursor from the last row's composite key.
func NewPage[T any](items []T, opts ListOptions, sortValueOf func(T) interface{}, idOf func(T) bson.ObjectID) Page[T] {
	page := Page[T]{Items: items, HasMore: len(items) == opts.Limit && opts.Limit > 0}
	if len(items) == 0 {
		page.Items = []T{}
		return page
	}
	last := items[len(items)-1]
	next := &Cursor{
		SortBy:    opts.SortBy,
		Direction: opts.Direction,
		SortValue: sortValueOf(last),
		LastID:    idOf(last),
	}
	page.NextCursor = next.Encode()
	return page
}
