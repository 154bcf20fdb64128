package types

import "math"

// PaginationType classifies how a query's pagination, if any, is enforced.
type PaginationType int

const (
	// PaginationNone means no pagination was detected.
	PaginationNone PaginationType = iota
	// PaginationLogical means the caller supplies paging parameters but
	// nothing rewrites the query: the database returns the full result and
	// unwanted rows are discarded in application memory. This is a latent
	// out-of-memory risk.
	PaginationLogical
	// PaginationPhysical means row limiting is enforced by the database
	// (LIMIT/TOP/FETCH) or will be injected by a registered pagination plugin.
	PaginationPhysical
)

func (t PaginationType) String() string {
	switch t {
	case PaginationLogical:
		return "LOGICAL"
	case PaginationPhysical:
		return "PHYSICAL"
	default:
		return "NONE"
	}
}

// PageRequest is an explicit offset/row-count pagination request supplied by
// the caller alongside a statement, in the style of MyBatis RowBounds.
type PageRequest struct {
	Offset   int64
	RowCount int64
}

// NoPageRequest is the sentinel for "pagination never requested": offset zero
// with an unbounded row count.
var NoPageRequest = PageRequest{Offset: 0, RowCount: math.MaxInt64}

// Requested reports whether the caller actually asked for pagination. The
// unbounded sentinel does not count, and neither does the zero value, so a
// Context built as a struct literal rather than through NewContext is not
// misread as an offset-0/rowcount-0 paging request.
func (p PageRequest) Requested() bool {
	return p != NoPageRequest && p != (PageRequest{})
}

// PageParam is the structural marker for framework-native page objects bound
// as statement parameters. Recognition is by shape rather than concrete type
// so the validator does not depend on any specific paging framework.
type PageParam interface {
	PageNumber() int64
	PageSize() int64
}
