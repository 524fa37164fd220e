package editor

import (
	"github.com/shopspring/decimal"
)

type PriceLine struct {
	StepIndex      int
	LineIndex      int
	IngredientID   string
	IngredientName string
	Amount         decimal.Decimal
	UnitPrice      decimal.Decimal
	Cost           decimal.Decimal
}

type PriceBreakdown struct {
	Lines []PriceLine
	// Garnish is nil when no garnish is selected or it does not resolve.
	Garnish     *decimal.Decimal
	GarnishName string
	Total       decimal.Decimal
}

// Display renders the total with two decimals.
func (p PriceBreakdown) Display() string {
	return p.Total.StringFixed(2)
}

// UnitPrice is price per unit of volume. A volume that is not positive
// counts as 1.
func UnitPrice(price, volume float64) decimal.Decimal {
	divisor := decimal.NewFromFloat(volume)
	if !divisor.IsPositive() {
		divisor = decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(price).Div(divisor)
}

// ComputePrice sums the cost of every line whose ingredient resolves in the
// catalog, across all steps, plus the selected garnish. A missing amount
// counts as zero.
func ComputePrice(d *RecipeDraft, catalog *Catalog) PriceBreakdown {
	breakdown := PriceBreakdown{Lines: []PriceLine{}, Total: decimal.Zero}
	for i, step := range d.Steps {
		for j, line := range step.Ingredients {
			ingredient, ok := catalog.Ingredient(line.IngredientID)
			if !ok {
				continue
			}
			amount := decimal.Zero
			if line.Amount != nil {
				amount = decimal.NewFromFloat(*line.Amount)
			}
			name := ingredient.Name
			if ingredient.ShortName != nil && *ingredient.ShortName != "" {
				name = *ingredient.ShortName
			}
			unitPrice := UnitPrice(ingredient.Price, ingredient.Volume)
			cost := unitPrice.Mul(amount)
			breakdown.Lines = append(breakdown.Lines, PriceLine{
				StepIndex:      i,
				LineIndex:      j,
				IngredientID:   ingredient.Id,
				IngredientName: name,
				Amount:         amount,
				UnitPrice:      unitPrice,
				Cost:           cost,
			})
			breakdown.Total = breakdown.Total.Add(cost)
		}
	}
	if garnish, ok := catalog.Garnish(d.GarnishID); ok {
		price := decimal.NewFromFloat(garnish.Price)
		breakdown.Garnish = &price
		breakdown.GarnishName = garnish.Name
		breakdown.Total = breakdown.Total.Add(price)
	}
	return breakdown
}
