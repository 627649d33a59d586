// internal/utils/pagination_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateDefaults(t *testing.T) {
	p := Paginate(PaginationOptions{})

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Skip)
}

func TestPaginateNegativeValues(t *testing.T) {
	p := Paginate(PaginationOptions{Page: -3, Limit: -1})

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Skip)
}

func TestPaginateSkipCalculation(t *testing.T) {
	p := Paginate(PaginationOptions{Page: 3, Limit: 25})

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Skip)
}

func TestPaginatePassesSortThrough(t *testing.T) {
	p := Paginate(PaginationOptions{Page: 1, Limit: 5, SortBy: "price", SortOrder: "desc"})

	assert.Equal(t, "price", p.SortBy)
	assert.Equal(t, "desc", p.SortOrder)
}

func TestNewPagedResult(t *testing.T) {
	data := []string{"a", "b"}
	p := Paginate(PaginationOptions{Page: 2, Limit: 2})

	result := NewPagedResult(data, 17, p)

	assert.Equal(t, 2, result.Meta.Page)
	assert.Equal(t, 2, result.Meta.Limit)
	assert.Equal(t, int64(17), result.Meta.Total)
	assert.Equal(t, data, result.Data)
}
