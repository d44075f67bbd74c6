package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/caching"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
)

type ProductService interface {
	BrowseByCategory(ctx context.Context, categoryPath string, req models.SliceRequest) (models.GroupSlice, error)
	GetGroupBySlug(ctx context.Context, slug string) (*models.ProductGroupDetail, error)
	MatchingSkuIDs(ctx context.Context, groupID uuid.UUID, filters models.FilterSet) ([]uuid.UUID, error)
	VariantTable(ctx context.Context, groupID uuid.UUID, skuIDs []uuid.UUID) ([]models.SkuRow, error)
	ColumnConfig(ctx context.Context, groupID uuid.UUID) ([]models.ColumnConfig, error)
	FacetCounts(ctx context.Context, groupID uuid.UUID, filters models.FilterSet) ([]models.FacetGroup, error)
	GetSkuByPartNumber(ctx context.Context, partNumber string) (*models.SkuRow, error)

	// Cross-module pass-throughs for the cart/order collaborators.
	SkuExistsAndActive(ctx context.Context, skuID uuid.UUID) (bool, error)
	SkuPriceInfo(ctx context.Context, skuID uuid.UUID, quantity int) (*models.SkuPriceInfo, error)
}

type productService struct {
	groupRepo     repositories.ProductGroupRepository
	skuRepo       repositories.SkuRepository
	attributeRepo repositories.AttributeRepository
	media         MediaService
	cache         caching.CacheService
}

func NewProductService(
	groupRepo repositories.ProductGroupRepository,
	skuRepo repositories.SkuRepository,
	attributeRepo repositories.AttributeRepository,
	media MediaService,
	cache caching.CacheService,
) ProductService {
	return &productService{
		groupRepo:     groupRepo,
		skuRepo:       skuRepo,
		attributeRepo: attributeRepo,
		media:         media,
		cache:         cache,
	}
}

func (s *productService) BrowseByCategory(ctx context.Context, categoryPath string, req models.SliceRequest) (models.GroupSlice, error) {
	key := fmt.Sprintf("browse:%s:%d:%d", categoryPath, req.Page, req.PageSize)
	var cached models.GroupSlice
	if hit := s.cacheGet(ctx, caching.NamespaceProductListing, key, &cached); hit {
		return cached, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.groupRepo.BrowseByCategory(ctx, categoryPath, req.FetchSize(), req.Offset())
	if err != nil {
		return models.GroupSlice{}, mapStoreErr(err)
	}
	slice := models.NewGroupSlice(rows, req)
	s.cacheSet(ctx, caching.NamespaceProductListing, key, slice)
	return slice, nil
}

func (s *productService) GetGroupBySlug(ctx context.Context, slug string) (*models.ProductGroupDetail, error) {
	key := "group:" + slug
	var cached models.ProductGroupDetail
	if hit := s.cacheGet(ctx, caching.NamespaceProductDetail, key, &cached); hit {
		return &cached, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	detail, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	detail.OverviewImageURL = s.resolveImage(detail.OverviewImageURL)
	detail.DiagramImageURL = s.resolveImage(detail.DiagramImageURL)

	s.cacheSet(ctx, caching.NamespaceProductDetail, key, detail)
	return detail, nil
}

func (s *productService) MatchingSkuIDs(ctx context.Context, groupID uuid.UUID, filters models.FilterSet) ([]uuid.UUID, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	ids, err := s.skuRepo.MatchingSkuIDs(ctx, groupID, filters)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return ids, nil
}

func (s *productService) VariantTable(ctx context.Context, groupID uuid.UUID, skuIDs []uuid.UUID) ([]models.SkuRow, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.skuRepo.VariantTable(ctx, groupID, skuIDs)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return rows, nil
}

func (s *productService) ColumnConfig(ctx context.Context, groupID uuid.UUID) ([]models.ColumnConfig, error) {
	key := "columns:" + groupID.String()
	var cached []models.ColumnConfig
	if hit := s.cacheGet(ctx, caching.NamespaceProductDetail, key, &cached); hit {
		return cached, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	columns, err := s.attributeRepo.ColumnConfig(ctx, groupID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	s.cacheSet(ctx, caching.NamespaceProductDetail, key, columns)
	return columns, nil
}

func (s *productService) FacetCounts(ctx context.Context, groupID uuid.UUID, filters models.FilterSet) ([]models.FacetGroup, error) {
	key := fmt.Sprintf("group-facets:%s:%s", groupID, filters.CanonicalKey())
	var cached []models.FacetGroup
	if hit := s.cacheGet(ctx, caching.NamespaceCategoryFacets, key, &cached); hit {
		return cached, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	facets, err := s.attributeRepo.GroupFacetCounts(ctx, groupID, filters)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	s.cacheSet(ctx, caching.NamespaceCategoryFacets, key, facets)
	return facets, nil
}

func (s *productService) GetSkuByPartNumber(ctx context.Context, partNumber string) (*models.SkuRow, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	sku, err := s.skuRepo.GetByPartNumber(ctx, partNumber)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return sku, nil
}

func (s *productService) SkuExistsAndActive(ctx context.Context, skuID uuid.UUID) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	exists, err := s.skuRepo.ExistsAndActive(ctx, skuID)
	if err != nil {
		return false, mapStoreErr(err)
	}
	return exists, nil
}

func (s *productService) SkuPriceInfo(ctx context.Context, skuID uuid.UUID, quantity int) (*models.SkuPriceInfo, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	info, err := s.skuRepo.PriceInfo(ctx, skuID, quantity)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return info, nil
}

// resolveImage turns a stored object key into a presigned URL. Absolute
// URLs (externally hosted assets) pass through unchanged.
func (s *productService) resolveImage(ref *string) *string {
	if ref == nil || s.media == nil {
		return ref
	}
	if strings.HasPrefix(*ref, "http://") || strings.HasPrefix(*ref, "https://") {
		return ref
	}
	url, err := s.media.PresignedImageURL(*ref, 15*time.Minute)
	if err != nil {
		log.Printf("presign image %s failed, serving key as-is: %v", *ref, err)
		return ref
	}
	return &url
}

func (s *productService) cacheGet(ctx context.Context, namespace, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, namespace, key, dest)
	if err != nil {
		log.Printf("cache read %s/%s failed, falling through: %v", namespace, key, err)
		return false
	}
	return hit
}

func (s *productService) cacheSet(ctx context.Context, namespace, key string, value interface{}) {
	if err := s.cache.Set(ctx, namespace, key, value); err != nil {
		log.Printf("cache write %s/%s failed: %v", namespace, key, err)
	}
}
