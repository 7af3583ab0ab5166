// Package pagination implements page/page_size windowing shared by all list
// operations. Out-of-range values are rejected, never clamped.
package pagination

import (
	"context"
	"fmt"

	"promptkeep/services/message-api/internal/utils/platformerrors"
)

const (
	// MaxPageSize is the largest accepted page_size.
	MaxPageSize = 100
	// DefaultListPageSize applies to message and persona listings.
	DefaultListPageSize = 20
	// DefaultHistoryPageSize applies to message history listings.
	DefaultHistoryPageSize = 5
)

// Params is a validated pagination window.
type Params struct {
	Page     int
	PageSize int
}

// New validates page and pageSize and returns the window. A nil page falls
// back to 1 and a nil pageSize to defaultSize; any supplied value outside
// [1, MaxPageSize] (or page < 1, including an explicit 0) is a validation
// error.
func New(ctx context.Context, page, pageSize *int, defaultSize int) (Params, error) {
	p := 1
	if page != nil {
		p = *page
	}
	size := defaultSize
	if pageSize != nil {
		size = *pageSize
	}
	if p < 1 {
		return Params{}, platformerrors.NewError(ctx, platformerrors.LayerService, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("page must be >= 1, got %d", p), nil, "pagination-page-001")
	}
	if size < 1 || size > MaxPageSize {
		return Params{}, platformerrors.NewError(ctx, platformerrors.LayerService, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("page_size must be between 1 and %d, got %d", MaxPageSize, size), nil, "pagination-size-001")
	}
	return Params{Page: p, PageSize: size}, nil
}

// Offset returns the row offset for the window.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// HasMore reports whether rows exist beyond this window given the total
// count taken without the window applied.
func (p Params) HasMore(total int64) bool {
	return int64(p.Page)*int64(p.PageSize) < total
}
