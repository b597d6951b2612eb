package grocery

import (
	"math"
	"sort"
	"strings"
)

// Source is one ingredient contributed by one dish, before aggregation.
type Source struct {
	Name     string
	Quantity float64
	Unit     string
	Category string
	// Scale multiplies Quantity, e.g. planned servings over recipe servings.
	Scale float64
	// From names the dish the ingredient belongs to.
	From string
}

// Item is one line of the aggregated list.
type Item struct {
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	Category string   `json:"category"`
	Sources  []string `json:"sources"`
}

// CategoryOrder is the aisle order items are sorted by.
var CategoryOrder = []string{"produce", "meat", "seafood", "dairy", "bakery", "frozen", "pantry", "spices", "other"}

type group struct {
	name     string
	family   unitFamily
	unit     string
	base     float64
	metric   bool
	category string
	sources  []string
	seen     map[string]struct{}
	order    int
}

func (g *group) addSource(from string) {
	if from == "" {
		return
	}
	if _, ok := g.seen[from]; ok {
		return
	}
	g.seen[from] = struct{}{}
	g.sources = append(g.sources, from)
}

// Aggregate merges ingredients that share a name and a convertible unit, summing their scaled
// quantities, and returns the list sorted by aisle and name.
func Aggregate(sources []Source) []Item {
	groups := map[string]*group{}
	var keys []string

	for _, src := range sources {
		name := NormalizeName(src.Name)
		if name == "" {
			continue
		}
		scale := src.Scale
		if scale <= 0 {
			scale = 1
		}
		unit, info := lookupUnit(src.Unit)
		key := name + "|" + familyKey(info.family, unit)

		g, ok := groups[key]
		if !ok {
			g = &group{
				name:   name,
				family: info.family,
				unit:   unit,
				metric: true,
				seen:   map[string]struct{}{},
				order:  len(keys),
			}
			groups[key] = g
			keys = append(keys, key)
		}
		if src.Quantity > 0 {
			g.base += src.Quantity * scale * info.factor
			g.metric = g.metric && info.metric
		}
		if g.category == "" {
			g.category = strings.ToLower(strings.TrimSpace(src.Category))
		}
		g.addSource(src.From)
	}

	// an unquantified mention ("salt", "flour to dust") folds into a measured line of the same name
	byName := map[string]*group{}
	for _, k := range keys {
		g := groups[k]
		if g.base > 0 {
			if _, ok := byName[g.name]; !ok {
				byName[g.name] = g
			}
		}
	}
	for _, k := range keys {
		g := groups[k]
		if g.base != 0 {
			continue
		}
		if target, ok := byName[g.name]; ok && target != g {
			for _, s := range g.sources {
				target.addSource(s)
			}
			if target.category == "" {
				target.category = g.category
			}
			delete(groups, k)
		}
	}

	items := make([]Item, 0, len(groups))
	for _, k := range keys {
		g, ok := groups[k]
		if !ok {
			continue
		}
		qty, unit := render(g.family, g.metric, g.base, g.unit)
		if g.base == 0 {
			qty, unit = 0, g.unit
		}
		category := g.category
		if category == "" {
			category = InferCategory(g.name)
		}
		items = append(items, Item{
			Name:     g.name,
			Quantity: round2(qty),
			Unit:     unit,
			Category: category,
			Sources:  append([]string{}, g.sources...),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := categoryRank(items[i].Category), categoryRank(items[j].Category)
		if ci != cj {
			return ci < cj
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Unit < items[j].Unit
	})
	return items
}

func familyKey(f unitFamily, unit string) string {
	switch f {
	case familyVolume:
		return "volume"
	case familyWeight:
		return "weight"
	case familyCount:
		return "count"
	default:
		return "unit:" + unit
	}
}

func categoryRank(c string) int {
	for i, name := range CategoryOrder {
		if name == c {
			return i
		}
	}
	return len(CategoryOrder)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var pluralExceptions = map[string]struct{}{
	"molasses": {}, "couscous": {}, "hummus": {}, "asparagus": {}, "swiss": {},
	"brussels": {}, "grits": {}, "oats": {}, "hass": {},
}

// NormalizeName lowercases an ingredient name, drops preparation notes after a comma or inside
// parentheses, and singularises the last word.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}
	for {
		open := strings.Index(name, "(")
		if open < 0 {
			break
		}
		end := strings.Index(name[open:], ")")
		if end < 0 {
			name = name[:open]
			break
		}
		name = name[:open] + name[open+end+1:]
	}
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	words[len(words)-1] = singular(words[len(words)-1])
	return strings.Join(words, " ")
}

func singular(w string) string {
	if _, ok := pluralExceptions[w]; ok {
		return w
	}
	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case len(w) > 4 && strings.HasSuffix(w, "oes"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ches"), strings.HasSuffix(w, "shes"), strings.HasSuffix(w, "xes"):
		return w[:len(w)-2]
	case len(w) > 3 && strings.HasSuffix(w, "s") &&
		!strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us") && !strings.HasSuffix(w, "is"):
		return w[:len(w)-1]
	}
	return w
}

// names the keyword scan would misfile
var categoryOverrides = [][2]string{
	{"frozen", "frozen"},
	{"eggplant", "produce"},
	{"peanut butter", "pantry"},
	{"coconut milk", "pantry"},
	{"butternut", "produce"},
	{"bell pepper", "produce"},
}

var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"seafood", []string{"salmon", "shrimp", "prawn", "cod", "tuna", "fish", "scallop", "crab", "tilapia", "halibut"}},
	{"meat", []string{"chicken", "beef", "pork", "lamb", "turkey", "bacon", "sausage", "ham", "steak", "mince", "chorizo"}},
	{"dairy", []string{"milk", "cheese", "butter", "cream", "yogurt", "yoghurt", "egg", "parmesan", "mozzarella", "cheddar", "feta"}},
	{"bakery", []string{"bread", "bun", "tortilla", "pita", "baguette", "roll", "naan", "bagel"}},
	{"frozen", []string{"frozen", "ice cream"}},
	{"spices", []string{"salt", "black pepper", "cumin", "paprika", "oregano", "cinnamon", "chili powder", "thyme", "turmeric", "curry powder", "nutmeg"}},
	{"produce", []string{"onion", "garlic", "tomato", "potato", "carrot", "lettuce", "spinach", "pepper", "broccoli", "lemon", "lime", "apple", "banana", "cucumber", "zucchini", "mushroom", "celery", "avocado", "herb", "basil", "cilantro", "parsley", "ginger", "kale", "cabbage", "pea", "bean sprout", "scallion", "squash", "corn", "berry"}},
	{"pantry", []string{"rice", "pasta", "flour", "sugar", "oil", "vinegar", "sauce", "stock", "broth", "bean", "lentil", "noodle", "honey", "oat", "quinoa", "can", "chickpea", "spaghetti", "couscous"}},
}

// InferCategory guesses an aisle from the ingredient name.
func InferCategory(name string) string {
	name = strings.ToLower(name)
	for _, o := range categoryOverrides {
		if strings.Contains(name, o[0]) {
			return o[1]
		}
	}
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(name, w) {
				return ck.category
			}
		}
	}
	return "other"
}
