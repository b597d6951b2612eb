package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/mealwise/backend/internal/models"
)

// SideContext carries the family-level facts side scoring depends on.
type SideContext struct {
	Allergens     []string
	FavoriteSides map[uuid.UUID]struct{}
	Season        string
	Seed          uint64
}

// NewSideContext builds the side scoring context for a family's week.
func NewSideContext(familyID uuid.UUID, weekStart time.Time, members []models.FamilyMember, favoriteSideIDs []uuid.UUID) SideContext {
	return SideContext{
		Allergens:     memberAllergens(members),
		FavoriteSides: idSet(favoriteSideIDs),
		Season:        Season(weekStart),
		Seed:          Seed(familyID, weekStart),
	}
}

// ScoredSide is a side with its pairing score for one main.
type ScoredSide struct {
	Side  models.Side `json:"side"`
	Score float64     `json:"score"`
}

// RankSides scores every eligible side against main, best first. Sides that carry a family
// allergen or take longer than maxMinutes (when positive) are left out.
func RankSides(main models.Recipe, sides []models.Side, ctx SideContext, maxMinutes int) []ScoredSide {
	cuisine := norm(main.Cuisine)
	var out []ScoredSide
	for _, s := range sides {
		if sideHasAllergen(s, ctx.Allergens) {
			continue
		}
		if maxMinutes > 0 && s.PrepMinutes > maxMinutes {
			continue
		}
		score := jitter(ctx.Seed, "side:"+main.ID.String(), s.ID)
		if len(s.Cuisines) == 0 {
			score += weightSideCuisine
		} else {
			for _, c := range s.Cuisines {
				if norm(c) == cuisine && cuisine != "" {
					score += weightSideCuisine
					break
				}
			}
		}
		if _, ok := ctx.FavoriteSides[s.ID]; ok {
			score += weightSideFavorite
		}
		if seasonMatches(s.SeasonalTags, ctx.Season) {
			score += weightSideSeasonal
		}
		out = append(out, ScoredSide{Side: s, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Side.Name != out[j].Side.Name {
			return out[i].Side.Name < out[j].Side.Name
		}
		return out[i].Side.ID.String() < out[j].Side.ID.String()
	})
	return out
}

// pickSides returns up to count sides; after the first, a side of an unused category is
// preferred over a higher-scored one of a category already picked.
func pickSides(main models.Recipe, sides []models.Side, ctx SideContext, maxMinutes, count int) []ScoredSide {
	ranked := RankSides(main, sides, ctx, maxMinutes)
	if len(ranked) <= 1 || count <= 1 {
		if count < len(ranked) {
			ranked = ranked[:count]
		}
		return ranked
	}

	picked := []ScoredSide{ranked[0]}
	categories := map[string]struct{}{ranked[0].Side.Category: {}}
	taken := map[int]struct{}{0: {}}
	for len(picked) < count {
		idx := -1
		for i, s := range ranked {
			if _, ok := taken[i]; ok {
				continue
			}
			if _, ok := categories[s.Side.Category]; !ok {
				idx = i
				break
			}
		}
		if idx < 0 {
			for i := range ranked {
				if _, ok := taken[i]; !ok {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			break
		}
		taken[idx] = struct{}{}
		categories[ranked[idx].Side.Category] = struct{}{}
		picked = append(picked, ranked[idx])
	}
	return picked
}

func sideHasAllergen(s models.Side, allergens []string) bool {
	for _, a := range allergens {
		for _, sa := range s.Allergens {
			if norm(sa) == a {
				return true
			}
		}
		for _, ing := range s.Ingredients {
			if strings.Contains(norm(ing.Name), a) {
				return true
			}
		}
	}
	return false
}
