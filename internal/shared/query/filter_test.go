package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageFilter(t *testing.T) {
	assert.Equal(t, 0, PageFilter{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 20, PageFilter{Page: 3, PageSize: 10}.Offset())
	assert.Equal(t, 10, PageFilter{}.Limit())
	assert.Equal(t, 100, PageFilter{PageSize: 500}.Limit())
}

func TestSortFilter_OrderClause(t *testing.T) {
	allowed := map[string]string{"amount": "amount", "consumptionAt": "consumption_at"}

	assert.Equal(t, "amount ASC", SortFilter{SortBy: "amount", SortOrder: "asc"}.OrderClause(allowed, "consumption_at", true))
	assert.Equal(t, "consumption_at DESC", SortFilter{SortBy: "id; DROP TABLE x"}.OrderClause(allowed, "consumption_at", true))
	assert.Equal(t, "consumption_at DESC", SortFilter{SortBy: "consumptionAt", SortOrder: "DESC"}.OrderClause(allowed, "amount", false))
}
