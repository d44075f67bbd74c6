package caching

import (
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestLocalCache_CategoryListRoundTrip(t *testing.T) {
	lc := NewLocalCache()

	_, ok := lc.GetCategoryList("top-level")
	assert.False(t, ok)

	list := []*models.Category{{ID: 1, Name: "Fasteners", Slug: "fasteners"}}
	lc.SetCategoryList("top-level", list)

	got, ok := lc.GetCategoryList("top-level")
	assert.True(t, ok)
	assert.Equal(t, list, got)
}

func TestLocalCache_TypeMismatchIsAMiss(t *testing.T) {
	lc := NewLocalCache()
	lc.SetCategory("slug:fasteners", &models.Category{ID: 1})

	// Same key space, wrong accessor: must not panic, just miss.
	_, ok := lc.GetCategoryList("slug:fasteners")
	assert.False(t, ok)
}

func TestLocalCache_Flush(t *testing.T) {
	lc := NewLocalCache()
	lc.SetCategory("slug:fasteners", &models.Category{ID: 1})
	lc.SetBreadcrumb("breadcrumb:fasteners", []models.Breadcrumb{{ID: 1, Name: "Fasteners"}})

	lc.Flush()

	_, ok := lc.GetCategory("slug:fasteners")
	assert.False(t, ok)
	_, ok = lc.GetBreadcrumb("breadcrumb:fasteners")
	assert.False(t, ok)
}
