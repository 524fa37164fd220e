package editor

import (
	"fmt"
	"strings"

	"philcali.me/barmanager/internal/provider"
)

// FromExternal seeds a draft from a cocktail found in an external database.
// Ingredient and glass names are resolved against the catalog; whatever
// does not resolve is left empty for validation to flag. Price is never
// known and stays unset.
func FromExternal(cocktail provider.ExternalCocktail, catalog *Catalog) (*RecipeDraft, error) {
	draft := NewDraft()
	draft.SetName(cocktail.Name)
	draft.SetDescription(strings.TrimSpace(cocktail.Instructions))
	if cocktail.Category != "" {
		// Categories too long for a tag are dropped.
		_ = draft.AddTag(cocktail.Category)
	}
	if glass, ok := catalog.GlassByName(cocktail.Glass); ok {
		draft.SetGlass(glass.Id)
	}
	if len(cocktail.Ingredients) == 0 {
		return draft, nil
	}

	step := draft.AddStep()
	for i, external := range cocktail.Ingredients {
		if err := seedLine(draft, step, i, external, catalog); err != nil {
			return nil, fmt.Errorf("importing %s ingredient %q: %w", cocktail.Name, external.Name, err)
		}
	}
	return draft, nil
}

func seedLine(draft *RecipeDraft, step, line int, external provider.ExternalIngredient, catalog *Catalog) error {
	if line > 0 {
		added, err := draft.AddIngredientLine(step)
		if err != nil {
			return err
		}
		line = added
	}
	if ingredient, ok := catalog.IngredientByName(external.Name); ok {
		if err := draft.SetLineIngredient(step, line, ingredient.Id); err != nil {
			return err
		}
	}
	if external.Amount > 0 {
		if err := draft.SetLineAmount(step, line, external.Amount); err != nil {
			return err
		}
	}
	if unit := Unit(external.Unit); unit.Valid() {
		return draft.SetLineUnit(step, line, unit)
	}
	return nil
}
