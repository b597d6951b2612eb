package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealwise/backend/internal/models"
)

func TestFactories(t *testing.T) {
	db := NewSQLiteDB(t)

	family := CreateFamily(t, db, func(f *models.Family) { f.Name = "Nakamura" })
	member := CreateMember(t, db, family.ID, func(m *models.FamilyMember) {
		m.Allergens = models.StringArray{"peanuts"}
	})
	recipe := CreateRecipe(t, db, nil)
	side := CreateSide(t, db, nil)

	var loaded models.Family
	require.NoError(t, db.Preload("Members").First(&loaded, "id = ?", family.ID).Error)
	assert.Equal(t, "Nakamura", loaded.Name)
	require.Len(t, loaded.Members, 1)
	assert.Equal(t, member.ID, loaded.Members[0].ID)
	assert.Equal(t, []string{"peanuts"}, []string(loaded.Members[0].Allergens))

	assert.NotEmpty(t, recipe.Name)
	assert.LessOrEqual(t, recipe.TotalMinutes(), 40)
	assert.Len(t, recipe.Embedding.Slice(), 64)
	assert.Equal(t, models.SideVegetable, side.Category)
}
