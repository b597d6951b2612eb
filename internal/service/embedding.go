package service

import (
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pageza/mealwise/backend/internal/embedding"
)

// GenerateEmbedding returns the recipe-space embedding of free text, for similarity queries.
func GenerateEmbedding(text string) pgvector.Vector {
	return pgvector.NewVector(embedding.Embed(text))
}
