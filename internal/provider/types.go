package provider

import "context"

type FilterInput struct {
	Category   *string
	Glass      *string
	Ingredient *string
	Alcoholic  *string
}

type ExternalIngredient struct {
	Name string `json:"name"`
	// Measure is the free text the source gave, Amount and Unit are parsed
	// from it. Unit is empty when the measure could not be understood.
	Measure string  `json:"measure,omitempty"`
	Amount  float64 `json:"amount"`
	Unit    string  `json:"unit,omitempty"`
}

type ExternalCocktail struct {
	Id           string               `json:"id"`
	Name         string               `json:"name"`
	Category     string               `json:"category,omitempty"`
	Alcoholic    string               `json:"alcoholic,omitempty"`
	Glass        string               `json:"glass,omitempty"`
	Instructions string               `json:"instructions,omitempty"`
	Thumbnail    *string              `json:"thumbnail,omitempty"`
	Ingredients  []ExternalIngredient `json:"ingredients"`
}

// CocktailProvider is a third party cocktail database recipes can be
// imported from.
type CocktailProvider interface {
	Random(ctx context.Context) ([]ExternalCocktail, error)
	Lookup(ctx context.Context, id string) ([]ExternalCocktail, error)
	Search(ctx context.Context, text string) ([]ExternalCocktail, error)
	Filter(ctx context.Context, input FilterInput) ([]ExternalCocktail, error)
}
