package services

import (
	"context"
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SearchServiceTestSuite struct {
	suite.Suite
	groupRepo *MockProductGroupRepository
	cache     *fakeCache
	service   SearchService
}

func (suite *SearchServiceTestSuite) SetupTest() {
	suite.groupRepo = &MockProductGroupRepository{}
	suite.groupRepo.Test(suite.T())
	suite.cache = newFakeCache()
	suite.service = NewSearchService(suite.groupRepo, suite.cache)
}

func (suite *SearchServiceTestSuite) TearDownTest() {
	suite.groupRepo.AssertExpectations(suite.T())
}

func TestSearchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SearchServiceTestSuite))
}

func (suite *SearchServiceTestSuite) TestSearch_EmptyQueryShortCircuits() {
	ctx := context.Background()

	page, err := suite.service.Search(ctx, "   ", models.PageRequest{Page: 0, PageSize: 20})
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), page.Items)
	assert.Equal(suite.T(), 0, page.Total)
}

func (suite *SearchServiceTestSuite) TestSearch_CountedPage() {
	ctx := context.Background()
	items := []models.ProductGroupSummary{{Name: "Phillips Wood Screws"}}

	suite.groupRepo.On("SearchCount", mock.Anything, "wood screw").Return(41, nil).Once()
	suite.groupRepo.On("Search", mock.Anything, "wood screw", 20, 0).Return(items, nil).Once()

	page, err := suite.service.Search(ctx, "wood screw", models.PageRequest{Page: 0, PageSize: 20})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 41, page.Total)
	assert.Equal(suite.T(), 3, page.TotalPages)
	assert.Len(suite.T(), page.Items, 1)

	// Identical query served from cache; mocks are Once().
	page, err = suite.service.Search(ctx, "wood screw", models.PageRequest{Page: 0, PageSize: 20})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 41, page.Total)
}

func (suite *SearchServiceTestSuite) TestDropdown_EmptyQuery() {
	ctx := context.Background()

	items, err := suite.service.Dropdown(ctx, "", 8)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), items)
}

func (suite *SearchServiceTestSuite) TestDropdown_PassesLimit() {
	ctx := context.Background()
	items := []models.ProductGroupSummary{{Name: "Phillips Wood Screws"}}

	suite.groupRepo.On("SearchDropdown", mock.Anything, "phil", 8).Return(items, nil).Once()

	got, err := suite.service.Dropdown(ctx, "phil", 8)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), items, got)
}
