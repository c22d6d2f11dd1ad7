package places_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/waypoint/internal/domain"
	"github.com/pkordes/waypoint/internal/places"
)

func TestTypesForCategory(t *testing.T) {
	for _, c := range []domain.Category{
		domain.CategoryAccommodation,
		domain.CategoryTransportation,
		domain.CategoryFood,
		domain.CategoryLeisure,
	} {
		t.Run(string(c), func(t *testing.T) {
			types := places.TypesForCategory(c)

			require.NotEmpty(t, types)
			assert.LessOrEqual(t, len(types), 5, "autocomplete accepts at most five types")
			for _, typ := range types {
				assert.True(t, places.IsKnownType(typ), typ)
			}
		})
	}

	assert.Nil(t, places.TypesForCategory(domain.CategoryOther))
}

func TestTypesForCategory_ReturnsCopy(t *testing.T) {
	first := places.TypesForCategory(domain.CategoryFood)
	first[0] = "changed"

	assert.Equal(t, "restaurant", places.TypesForCategory(domain.CategoryFood)[0])
}

func TestKnownTypes(t *testing.T) {
	types := places.KnownTypes()

	assert.True(t, slices.IsSorted(types))
	assert.Contains(t, types, "rv_park")
	assert.Contains(t, types, "hiking_area")
	assert.False(t, places.IsKnownType("spaceport"))
	assert.False(t, places.IsKnownType(""))
}
