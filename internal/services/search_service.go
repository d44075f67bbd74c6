package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"storefront/internal/caching"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// SearchService is the keyword lookup over product groups. It is a plain
// tsquery/trigram match, deliberately separate from the faceted navigation
// core: no facet interaction, no relevance tuning beyond ts_rank.
type SearchService interface {
	Search(ctx context.Context, query string, req models.PageRequest) (models.GroupPage, error)
	Dropdown(ctx context.Context, query string, limit int) ([]models.ProductGroupSummary, error)
}

type searchService struct {
	groupRepo repositories.ProductGroupRepository
	cache     caching.CacheService
}

func NewSearchService(groupRepo repositories.ProductGroupRepository, cache caching.CacheService) SearchService {
	return &searchService{groupRepo: groupRepo, cache: cache}
}

func (s *searchService) Search(ctx context.Context, query string, req models.PageRequest) (models.GroupPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.NewGroupPage(nil, 0, req), nil
	}

	key := fmt.Sprintf("search:%s:%d:%d", query, req.Page, req.PageSize)
	var cached models.GroupPage
	if hit, err := s.cache.Get(ctx, caching.NamespaceSearchResults, key, &cached); hit {
		return cached, nil
	} else if err != nil {
		log.Printf("cache read search %q failed, falling through: %v", query, err)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	total, err := s.groupRepo.SearchCount(ctx, query)
	if err != nil {
		return models.GroupPage{}, mapStoreErr(err)
	}
	items, err := s.groupRepo.Search(ctx, query, req.PageSize, req.Offset())
	if err != nil {
		return models.GroupPage{}, mapStoreErr(err)
	}

	page := models.NewGroupPage(items, total, req)
	if err := s.cache.Set(ctx, caching.NamespaceSearchResults, key, page); err != nil {
		log.Printf("cache write search %q failed: %v", query, err)
	}
	return page, nil
}

// Dropdown is the typeahead variant: small limit, no count, not cached
// (queries are too diverse for a 30s TTL to pay off).
func (s *searchService) Dropdown(ctx context.Context, query string, limit int) ([]models.ProductGroupSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	items, err := s.groupRepo.SearchDropdown(ctx, query, limit)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return items, nil
}
