package grocery

import "strings"

type unitFamily int

const (
	familyCount unitFamily = iota
	familyVolume
	familyWeight
	familyOther
)

type unitInfo struct {
	family unitFamily
	// factor converts one of this unit into the family's base unit (tsp, g)
	factor float64
	metric bool
}

var units = map[string]unitInfo{
	"":      {familyCount, 1, false},
	"tsp":   {familyVolume, 1, false},
	"tbsp":  {familyVolume, 3, false},
	"cup":   {familyVolume, 48, false},
	"ml":    {familyVolume, 0.202884, true},
	"l":     {familyVolume, 202.884, true},
	"g":     {familyWeight, 1, true},
	"kg":    {familyWeight, 1000, true},
	"oz":    {familyWeight, 28.3495, false},
	"lb":    {familyWeight, 453.592, false},
	"clove": {familyOther, 1, false},
	"can":   {familyOther, 1, false},
	"pinch": {familyOther, 1, false},
	"bunch": {familyOther, 1, false},
	"slice": {familyOther, 1, false},
	"piece": {familyOther, 1, false},
	"pkg":   {familyOther, 1, false},
}

var unitAliases = map[string]string{
	"teaspoon": "tsp", "teaspoons": "tsp", "tsp": "tsp", "tsps": "tsp",
	"tablespoon": "tbsp", "tablespoons": "tbsp", "tbsp": "tbsp", "tbsps": "tbsp", "tbs": "tbsp", "tbl": "tbsp",
	"cup": "cup", "cups": "cup",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"g": "g", "gram": "g", "grams": "g", "gr": "g",
	"kg": "kg", "kilogram": "kg", "kilograms": "kg", "kilo": "kg", "kilos": "kg",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"clove": "clove", "cloves": "clove",
	"can": "can", "cans": "can", "tin": "can", "tins": "can",
	"pinch": "pinch", "pinches": "pinch",
	"bunch": "bunch", "bunches": "bunch",
	"slice": "slice", "slices": "slice",
	"piece": "piece", "pieces": "piece",
	"package": "pkg", "packages": "pkg", "pkg": "pkg", "packet": "pkg", "packets": "pkg",
}

// CanonicalUnit maps a unit spelling to its canonical short form.
func CanonicalUnit(s string) (string, bool) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]
	return u, ok
}

func lookupUnit(u string) (string, unitInfo) {
	canon, ok := CanonicalUnit(u)
	if !ok {
		if strings.TrimSpace(u) == "" {
			return "", units[""]
		}
		// unknown units still aggregate, just never convert
		canon = strings.ToLower(strings.TrimSpace(u))
		return canon, unitInfo{family: familyOther, factor: 1}
	}
	return canon, units[canon]
}

// display order per family and measuring system, largest first
var displayUnits = map[unitFamily]map[bool][]string{
	familyVolume: {false: {"cup", "tbsp", "tsp"}, true: {"l", "ml"}},
	familyWeight: {false: {"lb", "oz"}, true: {"kg", "g"}},
}

// render picks the largest unit in which the amount is at least one.
func render(family unitFamily, metric bool, base float64, fallback string) (float64, string) {
	systems, ok := displayUnits[family]
	if !ok {
		return base, fallback
	}
	candidates := systems[metric]
	for _, u := range candidates {
		v := base / units[u].factor
		if v >= 1 {
			return v, u
		}
	}
	last := candidates[len(candidates)-1]
	return base / units[last].factor, last
}
