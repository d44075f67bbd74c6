package repositories

import (
	"context"
	"testing"

	"storefront/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AttributeRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    AttributeRepository
	groupID uuid.UUID
	context context.Context
}

func (suite *AttributeRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewAttributeRepo(mock)
	suite.groupID = uuid.New()
	suite.context = context.Background()
}

func (suite *AttributeRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestAttributeRepoTestSuite(t *testing.T) {
	suite.Run(t, new(AttributeRepoTestSuite))
}

func (suite *AttributeRepoTestSuite) TestColumnConfig() {
	suite.mock.ExpectQuery(`FROM product_group_columns pgc`).
		WithArgs(suite.groupID).
		WillReturnRows(pgxmock.NewRows([]string{
			"sort_order", "role", "header", "width", "key", "unit_label",
			"data_type", "filter_widget", "filter_sort_order", "is_filterable",
		}).
			AddRow(1, "part_number", "Part Number", 120, "part_number", nil, "enum", "none", 0, false).
			AddRow(2, "attribute", "Thread Size", 90, "thread_size", nil, "enum", "checkbox", 1, true))

	columns, err := suite.repo.ColumnConfig(suite.context, suite.groupID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), columns, 2)
	assert.Equal(suite.T(), "Part Number", columns[0].Header)
	assert.Equal(suite.T(), 90, columns[1].WidthPx)
	assert.True(suite.T(), columns[1].IsFilterable)
}

func (suite *AttributeRepoTestSuite) TestGroupFacetCounts_WithFilters() {
	opt3 := 3
	filters := models.FilterSet{Enum: map[int][]int{12: {3}}}

	suite.mock.ExpectQuery(`WHERE sfi\.product_group_id = \$1 AND EXISTS`).
		WithArgs(suite.groupID, 12, []int{3}).
		WillReturnRows(facetColumns().
			AddRow(12, "material", "Material", "checkbox", nil, &opt3, strPtr("zinc"), strPtr("Zinc-Plated"), nil, 14))

	facets, err := suite.repo.GroupFacetCounts(suite.context, suite.groupID, filters)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), facets, 1)
	assert.Equal(suite.T(), 14, facets[0].Options[0].SkuCount)
}

func (suite *AttributeRepoTestSuite) TestFilterableAttributes() {
	suite.mock.ExpectQuery(`WHERE category_id = \$1 AND is_filterable`).
		WithArgs(9).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "category_id", "key", "label", "data_type", "unit_label",
			"is_filterable", "filter_widget", "filter_sort_order",
		}).
			AddRow(12, 9, "material", "Material", models.DataTypeEnum, nil, true, "checkbox", 1).
			AddRow(9, 9, "length", "Length", models.DataTypeNumeric, strPtr("mm"), true, "range", 2))

	attrs, err := suite.repo.FilterableAttributes(suite.context, 9)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), attrs, 2)
	assert.Equal(suite.T(), models.DataTypeNumeric, attrs[1].DataType)
	assert.Equal(suite.T(), "mm", *attrs[1].UnitLabel)
}

func strPtr(s string) *string { return &s }
