package pagination

import (
	"math"
	"testing"

	"github.com/SscSPs/library_ledger_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestNewParamsDefaults(t *testing.T) {
	assert.Equal(t, Params{Page: 1, PerPage: 10}, NewParams(0, 0))
	assert.Equal(t, Params{Page: 3, PerPage: 25}, NewParams(3, 25))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Params{Page: 1, PerPage: 1}.Validate())

	for _, p := range []Params{{Page: 0, PerPage: 10}, {Page: 1, PerPage: 0}, {Page: -2, PerPage: 5}} {
		err := p.Validate()
		assert.ErrorIs(t, err, apperrors.ErrValidation, "params %+v", p)
		assert.Contains(t, err.Error(), "positive integers")
	}
}

func TestValidate_Bounds(t *testing.T) {
	assert.NoError(t, Params{Page: 1, PerPage: MaxPerPage}.Validate())

	err := Params{Page: 1, PerPage: MaxPerPage + 1}.Validate()
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "per_page must not exceed 100", apperrors.UserMessage(err))

	err = Params{Page: math.MaxInt, PerPage: 10}.Validate()
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "page is out of range", apperrors.UserMessage(err))

	last := Params{Page: math.MaxInt/10 + 1, PerPage: 10}
	assert.NoError(t, last.Validate())
	assert.GreaterOrEqual(t, last.Offset(), 0)
}

func TestOffsetAndLimit(t *testing.T) {
	p := Params{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 20, p.Limit())
	assert.Equal(t, 0, Params{Page: 1, PerPage: 20}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))

	page := Page[string]{Items: []string{"a"}, Total: 21, Params: Params{Page: 3, PerPage: 10}}
	assert.Equal(t, 3, page.TotalPages())
}
