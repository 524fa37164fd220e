package cocktaildb

import (
	"fmt"
	"strconv"
	"strings"

	"philcali.me/barmanager/internal/provider"
)

const maxIngredients = 15

// Drink is one entry of the "drinks" array. The source pads the numbered
// ingredient and measure fields with nulls, so it is decoded as a bag.
type Drink map[string]*string

func (d Drink) get(key string) string {
	if value, ok := d[key]; ok && value != nil {
		return strings.TrimSpace(*value)
	}
	return ""
}

func (d Drink) Id() string   { return d.get("idDrink") }
func (d Drink) Name() string { return d.get("strDrink") }

func ToCocktail(d Drink) provider.ExternalCocktail {
	ingredients := make([]provider.ExternalIngredient, 0)
	for i := 1; i <= maxIngredients; i++ {
		name := d.get(fmt.Sprintf("strIngredient%d", i))
		if name == "" {
			continue
		}
		measure := d.get(fmt.Sprintf("strMeasure%d", i))
		amount, unit := ParseMeasure(measure)
		ingredients = append(ingredients, provider.ExternalIngredient{
			Name:    name,
			Measure: measure,
			Amount:  amount,
			Unit:    unit,
		})
	}
	var thumbnail *string
	if value := d.get("strDrinkThumb"); value != "" {
		thumbnail = &value
	}
	return provider.ExternalCocktail{
		Id:           d.Id(),
		Name:         d.Name(),
		Category:     d.get("strCategory"),
		Alcoholic:    d.get("strAlcoholic"),
		Glass:        d.get("strGlass"),
		Instructions: d.get("strInstructions"),
		Thumbnail:    thumbnail,
		Ingredients:  ingredients,
	}
}

// Units are converted into the editor's unit names; ounces become
// centiliters.
var measureUnits = map[string]struct {
	unit   string
	factor float64
}{
	"cl":        {"CL", 1},
	"ml":        {"ML", 1},
	"oz":        {"CL", 3},
	"shot":      {"CL", 3},
	"shots":     {"CL", 3},
	"jigger":    {"CL", 4.5},
	"dash":      {"DASH", 1},
	"dashes":    {"DASH", 1},
	"splash":    {"SPLASH", 1},
	"drop":      {"DROP", 1},
	"drops":     {"DROP", 1},
	"tsp":       {"BARSPOON", 1},
	"barspoon":  {"BARSPOON", 1},
	"barspoons": {"BARSPOON", 1},
}

var fractions = map[string]float64{
	"½": 0.5,
	"¼": 0.25,
	"¾": 0.75,
	"⅓": 1.0 / 3,
	"⅔": 2.0 / 3,
}

func parseNumber(token string) (float64, bool) {
	if value, ok := fractions[token]; ok {
		return value, true
	}
	if value, err := strconv.ParseFloat(token, 64); err == nil {
		return value, true
	}
	if numerator, denominator, found := strings.Cut(token, "/"); found {
		n, nerr := strconv.ParseFloat(numerator, 64)
		d, derr := strconv.ParseFloat(denominator, 64)
		if nerr == nil && derr == nil && d != 0 {
			return n / d, true
		}
	}
	return 0, false
}

// ParseMeasure reads "1 1/2 oz" style text. Leading numbers are summed,
// the next word picks the unit. Text without a known unit is counted in
// pieces; text without any number is one piece.
func ParseMeasure(measure string) (float64, string) {
	fields := strings.Fields(strings.ToLower(measure))
	amount := 0.0
	parsed := false
	rest := fields
	for len(rest) > 0 {
		value, ok := parseNumber(rest[0])
		if !ok {
			break
		}
		amount += value
		parsed = true
		rest = rest[1:]
	}
	if !parsed {
		amount = 1
	}
	if len(rest) > 0 {
		if unit, ok := measureUnits[rest[0]]; ok {
			return amount * unit.factor, unit.unit
		}
	}
	return amount, "PIECE"
}

type QueryResponse struct {
	Drinks []Drink `json:"drinks"`
}
