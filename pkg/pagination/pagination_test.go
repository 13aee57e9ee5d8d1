package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Validate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	res := Paginate(items, &PaginationParams{Page: 2, PerPage: 2})
	assert.Equal(t, []int{3, 4}, res.Items)
	assert.Equal(t, 3, res.Pagination.TotalPages)
	assert.True(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrev)

	last := Paginate(items, &PaginationParams{Page: 3, PerPage: 2})
	assert.Equal(t, []int{5}, last.Items)
	assert.False(t, last.Pagination.HasNext)

	beyond := Paginate(items, &PaginationParams{Page: 9, PerPage: 2})
	assert.NotNil(t, beyond.Items)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, int64(5), beyond.Pagination.Total)
}

func TestPaginate_Defaults(t *testing.T) {
	res := Paginate([]string{}, nil)
	assert.Empty(t, res.Items)
	assert.Equal(t, 15, res.Pagination.PerPage)
	assert.Equal(t, 0, res.Pagination.TotalPages)
}
