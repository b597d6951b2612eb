package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func find(items []Item, name string) *Item {
	for i := range items {
		if items[i].Name == name {
			return &items[i]
		}
	}
	return nil
}

func TestAggregateConvertsVolume(t *testing.T) {
	items := Aggregate([]Source{
		{Name: "milk", Quantity: 1, Unit: "cup", From: "Pancakes"},
		{Name: "Milk", Quantity: 8, Unit: "tbsp", From: "Mac and Cheese"},
	})
	require.Len(t, items, 1)
	assert.Equal(t, "milk", items[0].Name)
	assert.Equal(t, 1.5, items[0].Quantity)
	assert.Equal(t, "cup", items[0].Unit)
	assert.Equal(t, "dairy", items[0].Category)
	assert.Equal(t, []string{"Pancakes", "Mac and Cheese"}, items[0].Sources)
}

func TestAggregateScalesAndSingularises(t *testing.T) {
	items := Aggregate([]Source{
		{Name: "tomatoes", Quantity: 2, Scale: 2, From: "Salad"},
		{Name: "tomato", Quantity: 1, From: "Salsa"},
	})
	require.Len(t, items, 1)
	assert.Equal(t, "tomato", items[0].Name)
	assert.Equal(t, 5.0, items[0].Quantity)
	assert.Equal(t, "", items[0].Unit)
	assert.Equal(t, "produce", items[0].Category)
}

func TestAggregateKeepsIncompatibleUnitsApart(t *testing.T) {
	items := Aggregate([]Source{
		{Name: "garlic", Quantity: 2, Unit: "clove"},
		{Name: "garlic", Quantity: 1, Unit: "tsp"},
	})
	assert.Len(t, items, 2)
}

func TestAggregateWeightPromotes(t *testing.T) {
	items := Aggregate([]Source{
		{Name: "chicken thighs", Quantity: 600, Unit: "g"},
		{Name: "chicken thigh", Quantity: 0.5, Unit: "kg"},
	})
	require.Len(t, items, 1)
	assert.Equal(t, "kg", items[0].Unit)
	assert.Equal(t, 1.1, items[0].Quantity)
	assert.Equal(t, "meat", items[0].Category)
}

func TestAggregateMixedSystemsRenderImperial(t *testing.T) {
	items := Aggregate([]Source{
		{Name: "stock", Quantity: 1, Unit: "cup"},
		{Name: "stock", Quantity: 240, Unit: "ml"},
	})
	require.Len(t, items, 1)
	assert.Equal(t, "cup", items[0].Unit)
	assert.InDelta(t, 2.0, items[0].Quantity, 0.02)
}

func TestAggregateFoldsUnquantified(t *testing.T) {
	items := Aggregate([]Source{
		{Name: "flour", Quantity: 2, Unit: "cup", From: "Bread"},
		{Name: "flour", From: "Pie"},
	})
	require.Len(t, items, 1)
	assert.Equal(t, []string{"Bread", "Pie"}, items[0].Sources)
}

func TestAggregateOrdersByAisle(t *testing.T) {
	items := Aggregate([]Source{
		{Name: "rice", Quantity: 1, Unit: "cup"},
		{Name: "onion", Quantity: 1},
		{Name: "cheddar", Quantity: 100, Unit: "g"},
		{Name: "apple", Quantity: 2},
	})
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"apple", "onion", "cheddar", "rice"}, names)
	assert.NotNil(t, find(items, "rice"))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "onion", NormalizeName("Onions, diced"))
	assert.Equal(t, "berry", NormalizeName("berries"))
	assert.Equal(t, "bunch", NormalizeName("bunches"))
	assert.Equal(t, "red pepper", NormalizeName("red peppers (optional)"))
	assert.Equal(t, "hummus", NormalizeName("Hummus"))
	assert.Equal(t, "molasses", NormalizeName("molasses"))
	assert.Equal(t, "glass", NormalizeName("glass"))
}

func TestInferCategory(t *testing.T) {
	assert.Equal(t, "produce", InferCategory("eggplant"))
	assert.Equal(t, "dairy", InferCategory("eggs"))
	assert.Equal(t, "seafood", InferCategory("salmon fillet"))
	assert.Equal(t, "frozen", InferCategory("frozen peas"))
	assert.Equal(t, "other", InferCategory("paper towels"))
}
