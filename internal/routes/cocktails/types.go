package cocktails

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/editor"
	"philcali.me/barmanager/internal/exceptions"
	"philcali.me/barmanager/internal/routes/util"
)

func idOrNew(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func ConvertIngredientToData(in api.CocktailIngredient) data.CocktailIngredientDTO {
	return data.CocktailIngredientDTO{
		Id:               idOrNew(in.Id),
		IngredientId:     in.IngredientId,
		IngredientNumber: in.IngredientNumber,
		Amount:           in.Amount,
		Unit:             in.Unit,
	}
}

func ConvertStepToData(in api.CocktailStep) data.CocktailStepDTO {
	return data.CocktailStepDTO{
		Id:          idOrNew(in.Id),
		StepNumber:  in.StepNumber,
		Mixing:      in.Mixing,
		Tool:        in.Tool,
		Ingredients: *util.MapOnList(&in.Ingredients, ConvertIngredientToData),
	}
}

func ConvertIngredientDataToTransfer(in data.CocktailIngredientDTO) api.CocktailIngredient {
	return api.CocktailIngredient{
		Id:               in.Id,
		IngredientId:     in.IngredientId,
		IngredientNumber: in.IngredientNumber,
		Amount:           in.Amount,
		Unit:             in.Unit,
	}
}

func ConvertStepDataToTransfer(in data.CocktailStepDTO) api.CocktailStep {
	return api.CocktailStep{
		Id:          in.Id,
		StepNumber:  in.StepNumber,
		Mixing:      in.Mixing,
		Tool:        in.Tool,
		Ingredients: *util.MapOnList(&in.Ingredients, ConvertIngredientDataToTransfer),
	}
}

// Normalize validates a create / update body with the editor's rules and
// returns it with step and line numbers derived from their positions.
func Normalize(input api.CocktailInput) (api.CocktailInput, error) {
	draft := editor.DraftFromInput(input)
	report := editor.Validate(draft)
	fields := report.Fields()
	if input.Tags != nil {
		if err := draft.SetTags(*input.Tags); err != nil {
			fields["tags"] = err.Error()
		}
	}
	if draft.Image != "" {
		if _, _, err := editor.DecodeImage(draft.Image); err != nil {
			fields["image"] = err.Error()
		}
	}
	if len(fields) > 0 {
		return input, exceptions.Invalid("cocktail", fields)
	}
	return editor.BuildPayload(draft), nil
}

// ToData converts a normalized body. A replacement clears the optional
// fields the body leaves out.
func ToData(input api.CocktailInput, replace bool) data.CocktailInputDTO {
	orClear := func(value *string) *string {
		if value == nil && replace {
			return aws.String("")
		}
		return value
	}
	return data.CocktailInputDTO{
		Name:         input.Name,
		Description:  orClear(input.Description),
		Price:        input.Price,
		Tags:         input.Tags,
		GlassId:      input.GlassId,
		GlassWithIce: input.GlassWithIce,
		GarnishId:    orClear(input.GarnishId),
		Image:        orClear(input.Image),
		Steps:        util.MapOnList(input.Steps, ConvertStepToData),
	}
}

func StripFields(strip bool) func(data.CocktailDTO) api.Cocktail {
	return func(cd data.CocktailDTO) api.Cocktail {
		return NewCocktail(cd, strip)
	}
}

func NewCocktail(cocktail data.CocktailDTO, stripImage bool) api.Cocktail {
	var image *string
	if !stripImage {
		image = cocktail.Image
	}
	tags := cocktail.Tags
	if tags == nil {
		tags = []string{}
	}
	steps := []data.CocktailStepDTO{}
	if cocktail.Steps != nil {
		steps = cocktail.Steps
	}
	return api.Cocktail{
		Id:           cocktail.SK,
		Name:         cocktail.Name,
		Description:  cocktail.Description,
		Price:        cocktail.Price,
		Tags:         tags,
		GlassId:      cocktail.GlassId,
		GlassWithIce: cocktail.GlassWithIce,
		GarnishId:    cocktail.GarnishId,
		Image:        image,
		Steps:        *util.MapOnList(&steps, ConvertStepDataToTransfer),
		CreateTime:   cocktail.CreateTime,
		UpdateTime:   cocktail.UpdateTime,
	}
}
