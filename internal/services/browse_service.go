package services

import (
	"context"
	"fmt"
	"log"

	"storefront/internal/caching"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// BrowseService drives faceted navigation. Every result is cached in the
// shared tier under a canonicalized (scope, filters) key; a cache failure
// is logged and treated as a miss, never surfaced.
type BrowseService interface {
	FilteredChildren(ctx context.Context, category *models.Category, filters models.FilterSet) ([]models.FilteredChild, error)
	Facets(ctx context.Context, category *models.Category, filters models.FilterSet) ([]models.FacetGroup, error)
	LeafGroupTables(ctx context.Context, category *models.Category, filters models.FilterSet) ([]models.LeafGroupTable, error)
}

type browseService struct {
	browseRepo    repositories.BrowseRepository
	attributeRepo repositories.AttributeRepository
	skuRepo       repositories.SkuRepository
	groupRepo     repositories.ProductGroupRepository
	cache         caching.CacheService
}

func NewBrowseService(
	browseRepo repositories.BrowseRepository,
	attributeRepo repositories.AttributeRepository,
	skuRepo repositories.SkuRepository,
	groupRepo repositories.ProductGroupRepository,
	cache caching.CacheService,
) BrowseService {
	return &browseService{
		browseRepo:    browseRepo,
		attributeRepo: attributeRepo,
		skuRepo:       skuRepo,
		groupRepo:     groupRepo,
		cache:         cache,
	}
}

func (s *browseService) FilteredChildren(ctx context.Context, category *models.Category, filters models.FilterSet) ([]models.FilteredChild, error) {
	key := fmt.Sprintf("children:%d:%s", category.ID, filters.CanonicalKey())
	var cached []models.FilteredChild
	if hit := s.cacheGet(ctx, caching.NamespaceCategoryBrowse, key, &cached); hit {
		return cached, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	children, err := s.browseRepo.FilteredChildren(ctx, category.ID, filters)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	s.cacheSet(ctx, caching.NamespaceCategoryBrowse, key, children)
	return children, nil
}

// Facets dispatches on the scope shape: a leaf category reads its own
// index slice, a mid-level category aggregates across its leaf descendants.
func (s *browseService) Facets(ctx context.Context, category *models.Category, filters models.FilterSet) ([]models.FacetGroup, error) {
	key := fmt.Sprintf("facets:%d:%s", category.ID, filters.CanonicalKey())
	var cached []models.FacetGroup
	if hit := s.cacheGet(ctx, caching.NamespaceCategoryFacets, key, &cached); hit {
		return cached, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var (
		facets []models.FacetGroup
		err    error
	)
	if category.IsLeaf {
		facets, err = s.browseRepo.LeafFacets(ctx, category.ID, filters)
	} else {
		facets, err = s.browseRepo.MidLevelFacets(ctx, category.Path, filters)
	}
	if err != nil {
		return nil, mapStoreErr(err)
	}
	s.cacheSet(ctx, caching.NamespaceCategoryFacets, key, facets)
	return facets, nil
}

// LeafGroupTables builds the leaf page payload: for every product group
// with at least one matching SKU, the group's column layout joined with its
// matching variant rows. Groups whose SKUs are all filtered out simply do
// not appear.
func (s *browseService) LeafGroupTables(ctx context.Context, category *models.Category, filters models.FilterSet) ([]models.LeafGroupTable, error) {
	key := fmt.Sprintf("tables:%d:%s", category.ID, filters.CanonicalKey())
	var cached []models.LeafGroupTable
	if hit := s.cacheGet(ctx, caching.NamespaceCategoryBrowse, key, &cached); hit {
		return cached, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	matching, err := s.browseRepo.MatchingSkuIDsByGroup(ctx, category.ID, filters)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	summaries, err := s.groupRepo.GroupsByCategory(ctx, category.ID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	summaryByID := make(map[string]models.ProductGroupSummary, len(summaries))
	for _, g := range summaries {
		summaryByID[g.ID.String()] = g
	}

	tables := make([]models.LeafGroupTable, 0, len(matching))
	for _, m := range matching {
		summary, ok := summaryByID[m.GroupID.String()]
		if !ok {
			// Index row for a group that is no longer active.
			continue
		}
		columns, err := s.attributeRepo.ColumnConfig(ctx, m.GroupID)
		if err != nil {
			return nil, mapStoreErr(err)
		}
		rows, err := s.skuRepo.VariantTable(ctx, m.GroupID, m.SkuIDs)
		if err != nil {
			return nil, mapStoreErr(err)
		}
		tables = append(tables, models.LeafGroupTable{
			GroupID:          m.GroupID,
			GroupName:        summary.Name,
			GroupSlug:        summary.Slug,
			OverviewImageURL: summary.OverviewImageURL,
			MinPriceUSD:      summary.MinPriceUSD,
			Columns:          columns,
			Rows:             rows,
		})
	}

	s.cacheSet(ctx, caching.NamespaceCategoryBrowse, key, tables)
	return tables, nil
}

func (s *browseService) cacheGet(ctx context.Context, namespace, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, namespace, key, dest)
	if err != nil {
		log.Printf("cache read %s/%s failed, falling through: %v", namespace, key, err)
		return false
	}
	return hit
}

func (s *browseService) cacheSet(ctx context.Context, namespace, key string, value interface{}) {
	if err := s.cache.Set(ctx, namespace, key, value); err != nil {
		log.Printf("cache write %s/%s failed: %v", namespace, key, err)
	}
}
