package pagination

import (
	"math"

	"github.com/SscSPs/library_ledger_app/internal/apperrors"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Params are the page-based pagination inputs of a listing.
type Params struct {
	Page    int `form:"page,default=1" json:"page"`
	PerPage int `form:"per_page,default=10" json:"per_page"`
}

// NewParams returns Params with the package defaults applied to zero values.
func NewParams(page, perPage int) Params {
	if page == 0 {
		page = DefaultPage
	}
	if perPage == 0 {
		perPage = DefaultPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// Validate rejects non-positive page numbers and sizes, sizes above MaxPerPage and
// pages whose offset would not fit in an int.
func (p Params) Validate() error {
	if p.Page < 1 || p.PerPage < 1 {
		return apperrors.NewValidationError("page and per_page parameters must be positive integers")
	}
	if p.PerPage > MaxPerPage {
		return apperrors.NewValidationError("per_page must not exceed 100")
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return apperrors.NewValidationError("page is out of range")
	}
	return nil
}

// Offset is the number of rows skipped before this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit is the maximum number of rows on this page.
func (p Params) Limit() int {
	return p.PerPage
}

// TotalPages returns how many pages of perPage rows are needed to hold total rows.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Page is one slice of a filtered listing together with the size of the full result.
type Page[T any] struct {
	Items  []T
	Total  int
	Params Params
}

// TotalPages returns the page count of the full result.
func (p Page[T]) TotalPages() int {
	return TotalPages(p.Total, p.Params.PerPage)
}
