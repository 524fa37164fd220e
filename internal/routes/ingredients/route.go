package ingredients

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/exceptions"
	"philcali.me/barmanager/internal/routes"
	"philcali.me/barmanager/internal/routes/util"
)

type IngredientService struct {
	data data.IngredientRepository
}

func NewRoute(data data.IngredientRepository) routes.Service {
	return &IngredientService{
		data: data,
	}
}

func NewIngredient(in data.IngredientDTO) api.Ingredient {
	return api.Ingredient{
		Id:         in.SK,
		Name:       in.Name,
		ShortName:  in.ShortName,
		Price:      in.Price,
		Volume:     in.Volume,
		Unit:       in.Unit,
		Link:       in.Link,
		Image:      in.Image,
		CreateTime: in.CreateTime,
		UpdateTime: in.UpdateTime,
	}
}

// Validate checks a body. Volume must be positive so a unit price can
// always be derived; creating requires every priced field.
func Validate(input api.IngredientInput, create bool) error {
	fields := make(map[string]string)
	if (input.Name == nil && create) || (input.Name != nil && strings.TrimSpace(*input.Name) == "") {
		fields["name"] = "Required"
	}
	switch {
	case input.Price == nil && create:
		fields["price"] = "Required"
	case input.Price != nil && *input.Price < 0:
		fields["price"] = "Must not be negative"
	}
	switch {
	case input.Volume == nil && create:
		fields["volume"] = "Required"
	case input.Volume != nil && *input.Volume <= 0:
		fields["volume"] = "Must be greater than zero"
	}
	if len(fields) > 0 {
		return exceptions.Invalid("ingredient", fields)
	}
	return nil
}

func ToData(in api.IngredientInput) data.IngredientInputDTO {
	return data.IngredientInputDTO{
		Name:      in.Name,
		ShortName: in.ShortName,
		Price:     in.Price,
		Volume:    in.Volume,
		Unit:      in.Unit,
		Link:      in.Link,
		Image:     in.Image,
	}
}

func (is *IngredientService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/workspaces/:workspaceId/ingredients":                  util.AuthorizedRoute(is.ListIngredients),
		"GET:/workspaces/:workspaceId/ingredients/:ingredientId":    util.AuthorizedRoute(is.GetIngredient),
		"POST:/workspaces/:workspaceId/ingredients":                 util.AuthorizedRoute(is.CreateIngredient),
		"PUT:/workspaces/:workspaceId/ingredients/:ingredientId":    util.AuthorizedRoute(is.UpdateIngredient),
		"DELETE:/workspaces/:workspaceId/ingredients/:ingredientId": util.AuthorizedRoute(is.DeleteIngredient),
	}
}

func (is *IngredientService) ListIngredients(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeList(is.data, NewIngredient, event, ctx)
}

func (is *IngredientService) GetIngredient(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := is.data.Get(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "ingredientId"))
	return util.SerializeResponseOK(NewIngredient, item, err)
}

func (is *IngredientService) CreateIngredient(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[api.IngredientInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if err := Validate(input, true); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := is.data.Create(ctx, util.WorkspaceId(ctx), ToData(input))
	return util.SerializeResponseOK(NewIngredient, created, err)
}

func (is *IngredientService) UpdateIngredient(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[api.IngredientInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if err := Validate(input, false); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := is.data.Update(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "ingredientId"), ToData(input))
	return util.SerializeResponseOK(NewIngredient, item, err)
}

func (is *IngredientService) DeleteIngredient(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := is.data.Delete(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "ingredientId"))
	return util.SerializeResponseNoContent(err)
}
