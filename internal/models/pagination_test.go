package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, meta := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, &Pagination{Page: 2, PageSize: 2, TotalCount: 5}, meta)

	page, meta = Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, page)
	assert.Equal(t, 3, meta.Page)

	page, _ = Paginate(items, 9, 2)
	assert.Empty(t, page)
	assert.NotNil(t, page)
}

func TestPaginateClampsArguments(t *testing.T) {
	items := make([]int, MaxPageSize+10)

	page, meta := Paginate(items, 0, 0)
	assert.Len(t, page, DefaultPageSize)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, DefaultPageSize, meta.PageSize)

	page, meta = Paginate(items, 1, 10_000)
	assert.Len(t, page, MaxPageSize)
	assert.Equal(t, MaxPageSize, meta.PageSize)
	assert.Equal(t, MaxPageSize+10, meta.TotalCount)
}
