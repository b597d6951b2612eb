// Package planner builds a week of meals from a family's schedule, members, favorites and the
// recipe catalog. It does no I/O; identical inputs always yield the identical plan.
package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/mealwise/backend/internal/embedding"
	"github.com/pageza/mealwise/backend/internal/models"
)

const (
	// NoCooking is the custom meal used for days the family is not cooking.
	NoCooking = "No cooking"
	// NoMatch is the custom meal used when every recipe was filtered out.
	NoMatch = "No matching recipe"

	defaultServings = 4
)

// Score weights
const (
	weightFavoriteMeal = 3.0
	weightFavoriteChef = 2.0
	weightSeasonal     = 1.0
	weightCuisinePref  = 1.0
	weightRecent       = -4.0
	weightSameCuisine  = -1.5
	weightDislike      = -1.0
	weightSimilarity   = 1.5
	weightSideCuisine  = 2.0
	weightSideFavorite = 2.0
	weightSideSeasonal = 1.0
)

const (
	maxSidesPerMain = 2
	onePotTag       = "one-pot"
)

// Day is one day of the cooking schedule.
type Day struct {
	Day        int
	IsCooking  bool
	MaxMinutes int
	MealType   string
	Note       string
}

// Lunch audiences that name a group of members rather than one person.
const (
	LunchGroupKids   = "kids"
	LunchGroupAdults = "adults"
)

// LunchNeed asks for Count lunch servings on Day, for one member, a group or the whole family.
type LunchNeed struct {
	Day        int
	MemberID   *uuid.UUID
	MemberName string
	Count      int
	Notes      string
}

// Input is everything a plan is generated from.
type Input struct {
	FamilyID           uuid.UUID
	WeekStart          time.Time
	DefaultServings    int
	CuisinePreferences []string
	Days               []Day
	Members            []models.FamilyMember
	Recipes            []models.Recipe
	Sides              []models.Side
	FavoriteMealIDs    []uuid.UUID
	FavoriteChefs      []string
	FavoriteSideIDs    []uuid.UUID
	RecentRecipeIDs    []uuid.UUID
	LunchNeeds         []LunchNeed
}

// Result is a generated plan.
type Result struct {
	Items    []models.MealPlanItem
	Warnings []string
}

type generator struct {
	in          Input
	seed        uint64
	season      string
	favMeals    map[uuid.UUID]struct{}
	favChefs    map[string]struct{}
	recent      map[uuid.UUID]struct{}
	cuisinePref map[string]struct{}
	favVectors  [][]float32
	used        map[uuid.UUID]struct{}
	cuisines    map[string]int
	sides       SideContext
}

// Generate assigns a main (and sides) to every cooking day, a placeholder to every other day,
// and a lunch recipe to every lunch need.
func Generate(in Input) Result {
	g := newGenerator(in)
	var res Result

	servings := in.DefaultServings
	if servings <= 0 {
		servings = defaultServings
	}
	if len(in.Members) > servings {
		servings = len(in.Members)
	}

	for _, day := range normalizeDays(in.Days) {
		mealType := day.MealType
		if mealType == "" {
			mealType = models.MealDinner
		}
		item := models.MealPlanItem{Day: day.Day, MealType: mealType, Servings: servings}

		if !day.IsCooking {
			item.CustomMeal = day.Note
			if item.CustomMeal == "" {
				item.CustomMeal = NoCooking
			}
			res.Items = append(res.Items, item)
			continue
		}

		recipe, ok := g.pick(fmt.Sprintf("%d:%s", day.Day, mealType), mealType, day.MaxMinutes, in.Members)
		if !ok {
			item.CustomMeal = NoMatch
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s %s: no recipe fits the family's filters", DayNames[day.Day], mealType))
			res.Items = append(res.Items, item)
			continue
		}
		item.RecipeID = &recipe.ID
		item.RecipeName = recipe.Name
		item.Notes = day.Note

		count := maxSidesPerMain
		if hasTag(recipe.Tags, onePotTag) {
			count = 1
		}
		for _, s := range pickSides(recipe, in.Sides, g.sides, day.MaxMinutes, count) {
			item.SideIDs = append(item.SideIDs, s.Side.ID)
			item.SideNames = append(item.SideNames, s.Side.Name)
		}
		res.Items = append(res.Items, item)
	}

	needs := append([]LunchNeed(nil), in.LunchNeeds...)
	sort.SliceStable(needs, func(i, j int) bool {
		if needs[i].Day != needs[j].Day {
			return needs[i].Day < needs[j].Day
		}
		return needs[i].MemberName < needs[j].MemberName
	})
	for _, need := range needs {
		if need.Day < 0 || need.Day > 6 {
			continue
		}
		count := need.Count
		if count <= 0 {
			count = 1
		}
		item := models.MealPlanItem{
			Day:      need.Day,
			MealType: models.MealLunch,
			Servings: count,
			MemberID: need.MemberID,
			Notes:    need.Notes,
		}
		scope := g.scope(need)
		slot := fmt.Sprintf("%d:lunch:%s", need.Day, need.MemberName)
		recipe, ok := g.pick(slot, models.MealLunch, 0, scope)
		if !ok {
			item.CustomMeal = NoMatch
			who := need.MemberName
			if who == "" {
				who = "family"
			}
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s lunch (%s): no recipe fits the filters", DayNames[need.Day], who))
		} else {
			item.RecipeID = &recipe.ID
			item.RecipeName = recipe.Name
		}
		res.Items = append(res.Items, item)
	}

	sort.SliceStable(res.Items, func(i, j int) bool {
		if res.Items[i].Day != res.Items[j].Day {
			return res.Items[i].Day < res.Items[j].Day
		}
		return mealRank(res.Items[i].MealType) < mealRank(res.Items[j].MealType)
	})
	return res
}

func newGenerator(in Input) *generator {
	g := &generator{
		in:          in,
		seed:        Seed(in.FamilyID, in.WeekStart),
		season:      Season(in.WeekStart),
		favMeals:    idSet(in.FavoriteMealIDs),
		favChefs:    map[string]struct{}{},
		recent:      idSet(in.RecentRecipeIDs),
		cuisinePref: map[string]struct{}{},
		used:        map[uuid.UUID]struct{}{},
		cuisines:    map[string]int{},
	}
	for _, c := range in.FavoriteChefs {
		g.favChefs[norm(c)] = struct{}{}
	}
	for _, c := range in.CuisinePreferences {
		g.cuisinePref[norm(c)] = struct{}{}
	}
	for _, r := range in.Recipes {
		if _, ok := g.favMeals[r.ID]; ok {
			g.favVectors = append(g.favVectors, vectorOf(r))
		}
	}
	g.sides = NewSideContext(in.FamilyID, in.WeekStart, in.Members, in.FavoriteSideIDs)
	return g
}

// scope is the set of members a lunch need has to satisfy.
func (g *generator) scope(need LunchNeed) []models.FamilyMember {
	for _, m := range g.in.Members {
		if need.MemberID != nil && m.ID == *need.MemberID {
			return []models.FamilyMember{m}
		}
	}
	if need.MemberName != "" {
		for _, m := range g.in.Members {
			if strings.EqualFold(m.Name, need.MemberName) {
				return []models.FamilyMember{m}
			}
		}
		if group := g.group(need.MemberName); len(group) > 0 {
			return group
		}
	}
	return g.in.Members
}

// group resolves the "kids" and "adults" audiences by member role.
func (g *generator) group(name string) []models.FamilyMember {
	var child bool
	switch norm(name) {
	case LunchGroupKids, "children":
		child = true
	case LunchGroupAdults:
	default:
		return nil
	}
	var out []models.FamilyMember
	for _, m := range g.in.Members {
		if (m.Role == models.RoleChild) == child {
			out = append(out, m)
		}
	}
	return out
}

type candidate struct {
	recipe models.Recipe
	score  float64
}

func (g *generator) pick(slot, mealType string, maxMinutes int, members []models.FamilyMember) (models.Recipe, bool) {
	var cands []candidate
	for _, r := range g.in.Recipes {
		if !g.eligible(r, mealType, maxMinutes, members) {
			continue
		}
		cands = append(cands, candidate{recipe: r, score: g.score(r, members) + jitter(g.seed, slot, r.ID)})
	}
	if len(cands) == 0 {
		return models.Recipe{}, false
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		if cands[i].recipe.Name != cands[j].recipe.Name {
			return cands[i].recipe.Name < cands[j].recipe.Name
		}
		return cands[i].recipe.ID.String() < cands[j].recipe.ID.String()
	})
	best := cands[0].recipe
	g.used[best.ID] = struct{}{}
	if c := norm(best.Cuisine); c != "" {
		g.cuisines[c]++
	}
	return best, true
}

func (g *generator) eligible(r models.Recipe, mealType string, maxMinutes int, members []models.FamilyMember) bool {
	if _, ok := g.used[r.ID]; ok {
		return false
	}
	if !strings.EqualFold(r.MealType, mealType) {
		return false
	}
	if maxMinutes > 0 && r.TotalMinutes() > maxMinutes {
		return false
	}
	for _, m := range members {
		if ContainsAllergen(r, m.Allergens) {
			return false
		}
		if !SatisfiesDiet(r, m.DietaryRestrictions) {
			return false
		}
	}
	return true
}

func (g *generator) score(r models.Recipe, members []models.FamilyMember) float64 {
	var s float64
	if _, ok := g.favMeals[r.ID]; ok {
		s += weightFavoriteMeal
	}
	if _, ok := g.favChefs[norm(r.Chef)]; ok && r.Chef != "" {
		s += weightFavoriteChef
	}
	if seasonMatches(r.SeasonalTags, g.season) {
		s += weightSeasonal
	}
	cuisine := norm(r.Cuisine)
	if _, ok := g.cuisinePref[cuisine]; ok && cuisine != "" {
		s += weightCuisinePref
	}
	if _, ok := g.recent[r.ID]; ok {
		s += weightRecent
	}
	if cuisine != "" {
		s += weightSameCuisine * float64(g.cuisines[cuisine])
	}
	for _, m := range members {
		s += weightDislike * float64(dislikeHits(r, m.Dislikes))
	}
	if len(g.favVectors) > 0 {
		v := vectorOf(r)
		best := 0.0
		for _, fv := range g.favVectors {
			if c := embedding.Cosine(v, fv); c > best {
				best = c
			}
		}
		s += weightSimilarity * best
	}
	return s
}

// ContainsAllergen reports whether any of allergens is listed on the recipe or appears in one of
// its ingredient names.
func ContainsAllergen(r models.Recipe, allergens []string) bool {
	for _, a := range allergens {
		a = norm(a)
		if a == "" {
			continue
		}
		for _, ra := range r.Allergens {
			if norm(ra) == a {
				return true
			}
		}
		for _, ing := range r.Ingredients {
			if strings.Contains(norm(ing.Name), a) {
				return true
			}
		}
	}
	return false
}

// SatisfiesDiet reports whether the recipe meets every restriction. A restriction is met by a tag
// of the same name; "<x>-free" is also met when x is not among the recipe's allergens.
func SatisfiesDiet(r models.Recipe, restrictions []string) bool {
	for _, d := range restrictions {
		d = norm(d)
		if d == "" || hasTag(r.Tags, d) {
			continue
		}
		if x, ok := strings.CutSuffix(d, "-free"); ok && x != "" {
			if !ContainsAllergen(r, []string{x}) {
				continue
			}
		}
		return false
	}
	return true
}

func dislikeHits(r models.Recipe, dislikes []string) int {
	hits := 0
	name := norm(r.Name)
	for _, d := range dislikes {
		d = norm(d)
		if d == "" {
			continue
		}
		if strings.Contains(name, d) {
			hits++
			continue
		}
		for _, ing := range r.Ingredients {
			if strings.Contains(norm(ing.Name), d) {
				hits++
				break
			}
		}
	}
	return hits
}

func memberAllergens(members []models.FamilyMember) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, m := range members {
		for _, a := range m.Allergens {
			a = norm(a)
			if _, ok := seen[a]; ok || a == "" {
				continue
			}
			seen[a] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}

// normalizeDays returns exactly seven days, Monday first; days not supplied default to cooking.
func normalizeDays(days []Day) []Day {
	out := make([]Day, 7)
	for i := range out {
		out[i] = Day{Day: i, IsCooking: true, MealType: models.MealDinner}
	}
	for _, d := range days {
		if d.Day >= 0 && d.Day <= 6 {
			out[d.Day] = d
		}
	}
	return out
}

func vectorOf(r models.Recipe) []float32 {
	if v := r.Embedding.Slice(); len(v) == embedding.Dimensions {
		return v
	}
	return embedding.Embed(r.EmbeddingText())
}

func mealRank(mealType string) int {
	switch mealType {
	case models.MealBreakfast:
		return 0
	case models.MealLunch:
		return 1
	default:
		return 2
	}
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if norm(t) == tag {
			return true
		}
	}
	return false
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
