package services

import (
	"context"
	"testing"
	"time"

	"storefront/internal/common"
	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type fakeMedia struct {
	presigned map[string]string
}

func (f *fakeMedia) PresignedImageURL(objectKey string, _ time.Duration) (string, error) {
	return f.presigned[objectKey], nil
}

type ProductServiceTestSuite struct {
	suite.Suite
	groupRepo     *MockProductGroupRepository
	skuRepo       *MockSkuRepository
	attributeRepo *MockAttributeRepository
	media         *fakeMedia
	cache         *fakeCache
	service       ProductService
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.groupRepo = &MockProductGroupRepository{}
	suite.skuRepo = &MockSkuRepository{}
	suite.attributeRepo = &MockAttributeRepository{}
	suite.groupRepo.Test(suite.T())
	suite.skuRepo.Test(suite.T())
	suite.attributeRepo.Test(suite.T())

	suite.media = &fakeMedia{presigned: make(map[string]string)}
	suite.cache = newFakeCache()
	suite.service = NewProductService(suite.groupRepo, suite.skuRepo,
		suite.attributeRepo, suite.media, suite.cache)
}

func (suite *ProductServiceTestSuite) TearDownTest() {
	suite.groupRepo.AssertExpectations(suite.T())
	suite.skuRepo.AssertExpectations(suite.T())
	suite.attributeRepo.AssertExpectations(suite.T())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func (suite *ProductServiceTestSuite) TestBrowseByCategory_SliceAndCache() {
	ctx := context.Background()
	req := models.SliceRequest{Page: 0, PageSize: 2}
	rows := []models.ProductGroupSummary{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	suite.groupRepo.On("BrowseByCategory", mock.Anything, "fasteners.screws", 3, 0).
		Return(rows, nil).Once()

	slice, err := suite.service.BrowseByCategory(ctx, "fasteners.screws", req)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), slice.Items, 2)
	assert.True(suite.T(), slice.HasMore)

	// Cached on the second call.
	slice, err = suite.service.BrowseByCategory(ctx, "fasteners.screws", req)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), slice.HasMore)
}

func (suite *ProductServiceTestSuite) TestGetGroupBySlug_PresignsObjectKeys() {
	ctx := context.Background()
	overview := "groups/phillips/overview.jpg"
	external := "https://cdn.example.com/diagram.png"
	suite.media.presigned[overview] = "https://minio.local/signed/overview.jpg"

	detail := &models.ProductGroupDetail{
		ID:               uuid.New(),
		Slug:             "phillips-wood-screws",
		OverviewImageURL: &overview,
		DiagramImageURL:  &external,
	}
	suite.groupRepo.On("GetBySlug", mock.Anything, "phillips-wood-screws").Return(detail, nil).Once()

	got, err := suite.service.GetGroupBySlug(ctx, "phillips-wood-screws")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://minio.local/signed/overview.jpg", *got.OverviewImageURL)
	// Absolute URLs pass through untouched.
	assert.Equal(suite.T(), external, *got.DiagramImageURL)
}

func (suite *ProductServiceTestSuite) TestGetGroupBySlug_NotFound() {
	ctx := context.Background()

	suite.groupRepo.On("GetBySlug", mock.Anything, "missing").Return(nil, pgx.ErrNoRows).Once()

	got, err := suite.service.GetGroupBySlug(ctx, "missing")
	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestFacetCounts_KeyedByGroupAndFilters() {
	ctx := context.Background()
	groupID := uuid.New()
	filters := models.FilterSet{Enum: map[int][]int{12: {3}}}
	facets := []models.FacetGroup{{AttributeID: 12}}

	suite.attributeRepo.On("GroupFacetCounts", mock.Anything, groupID, filters).
		Return(facets, nil).Once()

	got, err := suite.service.FacetCounts(ctx, groupID, filters)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), facets, got)
	assert.Equal(suite.T(),
		[]string{"storefront:category-facets:group-facets:" + groupID.String() + ":e12:3"},
		suite.cache.SetKeys)
}

func (suite *ProductServiceTestSuite) TestSkuPriceInfo_PassThrough() {
	ctx := context.Background()
	skuID := uuid.New()
	info := &models.SkuPriceInfo{SkuID: skuID, PartNumber: "91251A540", UnitPrice: 7.80, SellUnit: "pack"}

	suite.skuRepo.On("PriceInfo", mock.Anything, skuID, 25).Return(info, nil).Once()

	got, err := suite.service.SkuPriceInfo(ctx, skuID, 25)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), info, got)
}

func (suite *ProductServiceTestSuite) TestSkuPriceInfo_NoTierCoversQuantity() {
	ctx := context.Background()
	skuID := uuid.New()

	suite.skuRepo.On("PriceInfo", mock.Anything, skuID, 0).Return(nil, pgx.ErrNoRows).Once()

	got, err := suite.service.SkuPriceInfo(ctx, skuID, 0)
	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestSkuExistsAndActive() {
	ctx := context.Background()
	skuID := uuid.New()

	suite.skuRepo.On("ExistsAndActive", mock.Anything, skuID).Return(true, nil).Once()

	active, err := suite.service.SkuExistsAndActive(ctx, skuID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), active)
}
