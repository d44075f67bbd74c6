package caching

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"storefront/internal/models"
)

// LocalCache is the process-local (L1) tier: category tree shape and hot
// single-row lookups. Entries are not shared across serving instances; the
// data changes rarely and every entry expires on its own, so bounded
// staleness is acceptable. Flush is the explicit deploy/write correction
// hook. The cache is constructed and injected, never package-global.
type LocalCache struct {
	categories *gocache.Cache
	hotRows    *gocache.Cache
}

const (
	categoryTTL = time.Hour
	hotRowTTL   = 2 * time.Minute
)

func NewLocalCache() *LocalCache {
	return &LocalCache{
		categories: gocache.New(categoryTTL, 10*time.Minute),
		hotRows:    gocache.New(hotRowTTL, time.Minute),
	}
}

func (l *LocalCache) GetCategoryList(key string) ([]*models.Category, bool) {
	v, ok := l.categories.Get(key)
	if !ok {
		return nil, false
	}
	list, ok := v.([]*models.Category)
	return list, ok
}

func (l *LocalCache) SetCategoryList(key string, list []*models.Category) {
	l.categories.SetDefault(key, list)
}

func (l *LocalCache) GetCategory(key string) (*models.Category, bool) {
	v, ok := l.categories.Get(key)
	if !ok {
		return nil, false
	}
	c, ok := v.(*models.Category)
	return c, ok
}

func (l *LocalCache) SetCategory(key string, c *models.Category) {
	l.categories.SetDefault(key, c)
}

func (l *LocalCache) GetSections(key string) ([]models.CategorySection, bool) {
	v, ok := l.categories.Get(key)
	if !ok {
		return nil, false
	}
	s, ok := v.([]models.CategorySection)
	return s, ok
}

func (l *LocalCache) SetSections(key string, sections []models.CategorySection) {
	l.categories.SetDefault(key, sections)
}

func (l *LocalCache) GetBreadcrumb(key string) ([]models.Breadcrumb, bool) {
	v, ok := l.hotRows.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]models.Breadcrumb)
	return b, ok
}

func (l *LocalCache) SetBreadcrumb(key string, trail []models.Breadcrumb) {
	l.hotRows.SetDefault(key, trail)
}

// Flush drops both tiers. Called on deploy and by the explicit
// invalidation hook when the write path touches category data.
func (l *LocalCache) Flush() {
	l.categories.Flush()
	l.hotRows.Flush()
}
