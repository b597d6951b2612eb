package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbedIsNormalised(t *testing.T) {
	vec := Embed("Chicken tikka masala with basmati rice")
	assert.Len(t, vec, Dimensions)

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}

func TestEmbedEmptyText(t *testing.T) {
	vec := Embed("  ")
	assert.Len(t, vec, Dimensions)
	assert.Equal(t, float32(1), vec[0])
}

func TestCosine(t *testing.T) {
	a := Embed("beef tacos with salsa")
	assert.InDelta(t, 1.0, Cosine(a, a), 1e-6)

	b := Embed("beef tacos with guacamole")
	c := Embed("lemon drizzle cake")
	assert.Greater(t, Cosine(a, b), Cosine(a, c))

	assert.Equal(t, 0.0, Cosine(a, nil))
	assert.Equal(t, 0.0, Cosine(a, []float32{1, 2}))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"mac", "cheese"}, Tokens("Mac & the Cheese!"))
}
