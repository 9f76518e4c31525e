// internal/domain/common/types_test.go
package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// One declaration per shared type; listing filters and adapters build
// against exactly this surface.
func TestSharedTypesSurface(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	tr := TimeRange{From: &from}
	assert.Nil(t, tr.To)

	s := Sort{Column: "createdAt", Order: SortDesc}
	assert.Equal(t, SortOrder("desc"), s.Order)
	assert.Equal(t, SortOrder("asc"), SortAsc)

	pr := PageResult[string]{
		Items:      []string{"a", "b"},
		TotalCount: 2,
		TotalPages: 1,
		Page:       1,
		PerPage:    50,
	}
	assert.Len(t, pr.Items, pr.TotalCount)
}
