package editor

import (
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/ordering"
)

func blankToNil(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return aws.String(value)
}

func nilToBlank(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// BuildPayload normalizes a draft into the create / update body. Step and
// line numbers are taken from their positions, not from the stored values.
func BuildPayload(d *RecipeDraft) api.CocktailInput {
	steps := make([]api.CocktailStep, len(d.Steps))
	for i, step := range d.Steps {
		lines := make([]api.CocktailIngredient, len(step.Ingredients))
		for j, line := range step.Ingredients {
			lines[j] = api.CocktailIngredient{
				Id:               line.ID,
				IngredientId:     line.IngredientID,
				IngredientNumber: j,
				Amount:           aws.ToFloat64(line.Amount),
				Unit:             string(line.Unit),
			}
		}
		steps[i] = api.CocktailStep{
			Id:          step.ID,
			StepNumber:  i,
			Mixing:      step.IsMixing(),
			Tool:        string(step.Tool),
			Ingredients: lines,
		}
	}
	tags := append([]string{}, d.Tags...)
	var price *float64
	if d.Price != nil {
		price = aws.Float64(*d.Price)
	}
	return api.CocktailInput{
		Id:           blankToNil(d.ID),
		Name:         aws.String(strings.TrimSpace(d.Name)),
		Description:  blankToNil(d.Description),
		Price:        price,
		GlassId:      aws.String(d.GlassID),
		GarnishId:    blankToNil(d.GarnishID),
		Image:        blankToNil(d.Image),
		Tags:         &tags,
		GlassWithIce: aws.String(string(d.GlassWithIce)),
		Steps:        &steps,
	}
}

// FromCocktail seeds a draft from a stored cocktail. Steps and lines are
// sorted by their stored numbers and then renumbered.
func FromCocktail(cocktail api.Cocktail) *RecipeDraft {
	price := cocktail.Price
	draft := &RecipeDraft{
		ID:           cocktail.Id,
		Name:         cocktail.Name,
		Description:  nilToBlank(cocktail.Description),
		Price:        &price,
		Tags:         append([]string{}, cocktail.Tags...),
		GlassID:      cocktail.GlassId,
		GlassWithIce: IceType(cocktail.GlassWithIce),
		GarnishID:    nilToBlank(cocktail.GarnishId),
		Image:        nilToBlank(cocktail.Image),
	}
	draft.Steps = stepsFromWire(cocktail.Steps)
	return draft
}

// DraftFromInput reads a create / update body back into a draft so the API
// can apply the same validation as the editor.
func DraftFromInput(input api.CocktailInput) *RecipeDraft {
	draft := &RecipeDraft{
		ID:           nilToBlank(input.Id),
		Name:         nilToBlank(input.Name),
		Description:  nilToBlank(input.Description),
		GlassID:      nilToBlank(input.GlassId),
		GlassWithIce: IceType(nilToBlank(input.GlassWithIce)),
		GarnishID:    nilToBlank(input.GarnishId),
		Image:        nilToBlank(input.Image),
		Tags:         []string{},
	}
	if input.Price != nil {
		price := *input.Price
		draft.Price = &price
	}
	if input.Tags != nil {
		draft.Tags = append(draft.Tags, *input.Tags...)
	}
	if input.Steps != nil {
		draft.Steps = stepsFromWire(*input.Steps)
	} else {
		draft.Steps = []StepDraft{}
	}
	return draft
}

func stepsFromWire(wire []api.CocktailStep) []StepDraft {
	sorted := append([]api.CocktailStep{}, wire...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StepNumber < sorted[j].StepNumber
	})
	steps := make([]StepDraft, len(sorted))
	for i, step := range sorted {
		lines := append([]api.CocktailIngredient{}, step.Ingredients...)
		sort.SliceStable(lines, func(a, b int) bool {
			return lines[a].IngredientNumber < lines[b].IngredientNumber
		})
		drafts := make([]IngredientLineDraft, len(lines))
		for j, line := range lines {
			amount := line.Amount
			drafts[j] = IngredientLineDraft{
				ID:               line.Id,
				IngredientID:     line.IngredientId,
				IngredientNumber: line.IngredientNumber,
				Amount:           &amount,
				Unit:             Unit(line.Unit),
			}
		}
		mixing := step.Mixing
		steps[i] = StepDraft{
			ID:          step.Id,
			StepNumber:  step.StepNumber,
			Mixing:      &mixing,
			Tool:        Tool(step.Tool),
			Ingredients: ordering.Renumber(drafts, renumberLine),
		}
	}
	return ordering.Renumber(steps, renumberStep)
}
