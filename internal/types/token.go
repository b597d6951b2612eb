package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ShareClaims are the claims of a grocery-list share link
type ShareClaims struct {
	jwt.RegisteredClaims
	GroceryListID uuid.UUID `json:"grocery_list_id"`
	FamilyID      uuid.UUID `json:"family_id"`
}
