package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"storefront/internal/caching"
	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) TopLevel(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Children(ctx context.Context, parentID int) ([]*models.Category, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Descendants(ctx context.Context, path string) ([]*models.Category, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Breadcrumb(ctx context.Context, path string) ([]models.Breadcrumb, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Breadcrumb), args.Error(1)
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

type MockBrowseRepository struct {
	mock.Mock
}

func (m *MockBrowseRepository) FilteredChildren(ctx context.Context, parentID int, filters models.FilterSet) ([]models.FilteredChild, error) {
	args := m.Called(ctx, parentID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FilteredChild), args.Error(1)
}

func (m *MockBrowseRepository) MidLevelFacets(ctx context.Context, categoryPath string, filters models.FilterSet) ([]models.FacetGroup, error) {
	args := m.Called(ctx, categoryPath, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FacetGroup), args.Error(1)
}

func (m *MockBrowseRepository) LeafFacets(ctx context.Context, categoryID int, filters models.FilterSet) ([]models.FacetGroup, error) {
	args := m.Called(ctx, categoryID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FacetGroup), args.Error(1)
}

func (m *MockBrowseRepository) MatchingSkuIDsByGroup(ctx context.Context, categoryID int, filters models.FilterSet) ([]models.GroupSkuIDs, error) {
	args := m.Called(ctx, categoryID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GroupSkuIDs), args.Error(1)
}

type MockProductGroupRepository struct {
	mock.Mock
}

func (m *MockProductGroupRepository) BrowseByCategory(ctx context.Context, categoryPath string, limit, offset int) ([]models.ProductGroupSummary, error) {
	args := m.Called(ctx, categoryPath, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductGroupSummary), args.Error(1)
}

func (m *MockProductGroupRepository) GetBySlug(ctx context.Context, slug string) (*models.ProductGroupDetail, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductGroupDetail), args.Error(1)
}

func (m *MockProductGroupRepository) GroupsByCategory(ctx context.Context, categoryID int) ([]models.ProductGroupSummary, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductGroupSummary), args.Error(1)
}

func (m *MockProductGroupRepository) Search(ctx context.Context, query string, limit, offset int) ([]models.ProductGroupSummary, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductGroupSummary), args.Error(1)
}

func (m *MockProductGroupRepository) SearchCount(ctx context.Context, query string) (int, error) {
	args := m.Called(ctx, query)
	return args.Int(0), args.Error(1)
}

func (m *MockProductGroupRepository) SearchDropdown(ctx context.Context, query string, limit int) ([]models.ProductGroupSummary, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductGroupSummary), args.Error(1)
}

func (m *MockProductGroupRepository) SummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.ProductGroupSummary, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductGroupSummary), args.Error(1)
}

type MockSkuRepository struct {
	mock.Mock
}

func (m *MockSkuRepository) MatchingSkuIDs(ctx context.Context, groupID uuid.UUID, filters models.FilterSet) ([]uuid.UUID, error) {
	args := m.Called(ctx, groupID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockSkuRepository) VariantTable(ctx context.Context, groupID uuid.UUID, skuIDs []uuid.UUID) ([]models.SkuRow, error) {
	args := m.Called(ctx, groupID, skuIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SkuRow), args.Error(1)
}

func (m *MockSkuRepository) GetByPartNumber(ctx context.Context, partNumber string) (*models.SkuRow, error) {
	args := m.Called(ctx, partNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SkuRow), args.Error(1)
}

func (m *MockSkuRepository) ExistsAndActive(ctx context.Context, skuID uuid.UUID) (bool, error) {
	args := m.Called(ctx, skuID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSkuRepository) PriceInfo(ctx context.Context, skuID uuid.UUID, quantity int) (*models.SkuPriceInfo, error) {
	args := m.Called(ctx, skuID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SkuPriceInfo), args.Error(1)
}

type MockAttributeRepository struct {
	mock.Mock
}

func (m *MockAttributeRepository) ColumnConfig(ctx context.Context, groupID uuid.UUID) ([]models.ColumnConfig, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ColumnConfig), args.Error(1)
}

func (m *MockAttributeRepository) GroupFacetCounts(ctx context.Context, groupID uuid.UUID, filters models.FilterSet) ([]models.FacetGroup, error) {
	args := m.Called(ctx, groupID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FacetGroup), args.Error(1)
}

func (m *MockAttributeRepository) FilterableAttributes(ctx context.Context, categoryID int) ([]models.AttributeDefinition, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttributeDefinition), args.Error(1)
}

// fakeCache is an in-memory CacheService for service tests: JSON round-trip
// like the real tier, plus key capture so tests can assert cache key shape.
// When failing is set every call errors, exercising the fail-open path.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	SetKeys []string
	failing bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

var errCacheDown = errors.New("cache down")

func (f *fakeCache) Get(_ context.Context, namespace, key string, dest interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return false, errCacheDown
	}
	data, ok := f.entries[caching.BuildKey(namespace, key)]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(_ context.Context, namespace, key string, value interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errCacheDown
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	full := caching.BuildKey(namespace, key)
	f.entries[full] = data
	f.SetKeys = append(f.SetKeys, full)
	return nil
}

func (f *fakeCache) Delete(_ context.Context, namespace, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, caching.BuildKey(namespace, key))
	return nil
}

func (f *fakeCache) InvalidateNamespace(_ context.Context, namespace string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := caching.BuildKey(namespace, "")
	for k := range f.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(f.entries, k)
		}
	}
	return nil
}

func (f *fakeCache) InvalidateAll(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = make(map[string][]byte)
	return nil
}

func (f *fakeCache) Ping(_ context.Context) error {
	if f.failing {
		return errCacheDown
	}
	return nil
}
