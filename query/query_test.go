package query

import (
	"net/url"
	"testing"

	"soko/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
)

var testLimits = config.Limits{PageSizeDefault: 10, PageSizeMax: 100}

func TestBuildDefaults(t *testing.T) {
	spec := Build(url.Values{}, testLimits)

	assert.Empty(t, spec.Filter)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, spec.Sort)
	assert.Nil(t, spec.Projection)
	assert.EqualValues(t, 0, spec.Skip)
	assert.EqualValues(t, 10, spec.Limit)
}

func TestBuildWhitelistsFilterFields(t *testing.T) {
	params := url.Values{
		"category": {"hotel"},
		"status":   {"approved"},
		"$where":   {"sleep(1000)"},
		"details":  {"x"},
		"password": {"secret"},
	}

	spec := Build(params, testLimits)
	assert.Equal(t, bson.M{"category": "hotel", "status": "approved"}, spec.Filter)
}

func TestBuildRangeOperators(t *testing.T) {
	params := url.Values{
		"price[gte]":  {"1000"},
		"price[lt]":   {"50000"},
		"price[drop]": {"1"},
	}

	spec := Build(params, testLimits)
	require.Contains(t, spec.Filter, "price")
	assert.Equal(t, bson.M{"$gte": float64(1000), "$lt": float64(50000)}, spec.Filter["price"])
}

func TestBuildSortMapsAndDescends(t *testing.T) {
	params := url.Values{"sort": {"-price,createdAt,bogus"}}

	spec := Build(params, testLimits)
	assert.Equal(t, bson.D{
		{Key: "price", Value: -1},
		{Key: "createdAt", Value: 1},
	}, spec.Sort)
}

func TestBuildPaginationClamped(t *testing.T) {
	params := url.Values{"page": {"3"}, "limit": {"500"}}

	spec := Build(params, testLimits)
	assert.EqualValues(t, 100, spec.Limit)
	assert.EqualValues(t, 200, spec.Skip)

	spec = Build(url.Values{"page": {"-2"}, "limit": {"0"}}, testLimits)
	assert.EqualValues(t, 0, spec.Skip)
	assert.EqualValues(t, 10, spec.Limit)
}

func TestBuildProjection(t *testing.T) {
	params := url.Values{"fields": {"title,price,details"}}

	spec := Build(params, testLimits)
	assert.Equal(t, bson.M{"title": 1, "price": 1}, spec.Projection)
}

func TestBuildVendorFieldRenamed(t *testing.T) {
	params := url.Values{"vendorId": {"v123"}, "area": {"lekki"}}

	spec := Build(params, testLimits)
	assert.Equal(t, bson.M{"vendorid": "v123", "location.area": "lekki"}, spec.Filter)
}
