package cocktails

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/editor"
	"philcali.me/barmanager/internal/exceptions"
	"philcali.me/barmanager/internal/overview"
	"philcali.me/barmanager/internal/routes"
	"philcali.me/barmanager/internal/routes/util"
)

type CocktailService struct {
	data data.CocktailRepository
}

func NewRoute(data data.CocktailRepository) routes.Service {
	return &CocktailService{
		data: data,
	}
}

func (cs *CocktailService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/workspaces/:workspaceId/cocktails":                  util.AuthorizedRoute(cs.ListCocktails),
		"GET:/workspaces/:workspaceId/cocktails/:cocktailId":      util.AuthorizedRoute(cs.GetCocktail),
		"GET:/workspaces/:workspaceId/cocktails/:cocktailId/image": util.AuthorizedRoute(cs.GetImage),
		"POST:/workspaces/:workspaceId/cocktails":                 util.AuthorizedRoute(cs.CreateCocktail),
		"PUT:/workspaces/:workspaceId/cocktails":                  util.AuthorizedRoute(cs.ReplaceCocktail),
		"PUT:/workspaces/:workspaceId/cocktails/:cocktailId":      util.AuthorizedRoute(cs.UpdateCocktail),
		"DELETE:/workspaces/:workspaceId/cocktails/:cocktailId":   util.AuthorizedRoute(cs.DeleteCocktail),
	}
}

func stripImage(event events.APIGatewayV2HTTPRequest) bool {
	if stripFields, ok := event.QueryStringParameters["stripFields"]; ok {
		for _, field := range strings.Split(stripFields, ",") {
			if strings.EqualFold(field, "image") {
				return true
			}
		}
	}
	return false
}

// ListCocktails pages through the workspace. A "search" parameter reads
// every page, keeps cocktails whose name or tags match and sorts them by
// name; that answer carries no next token.
func (cs *CocktailService) ListCocktails(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.ParseQueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	convert := util.ConvertQueryResultsPartial(StripFields(stripImage(event)))
	if search, ok := event.QueryStringParameters["search"]; ok {
		params.NextToken = nil
		items, err := util.ListAll(ctx, cs.data, util.WorkspaceId(ctx), params)
		return util.SerializeResponseOK(func(results data.QueryResults[data.CocktailDTO]) data.QueryResults[api.Cocktail] {
			page := convert(results)
			page.Items = overview.Filter(page.Items, search)
			return page
		}, items, err)
	}
	items, err := cs.data.List(ctx, util.WorkspaceId(ctx), params)
	return util.SerializeResponseOK(convert, items, err)
}

func (cs *CocktailService) GetCocktail(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := cs.data.Get(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "cocktailId"))
	return util.SerializeResponseOK(StripFields(stripImage(event)), item, err)
}

func (cs *CocktailService) GetImage(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	cocktailId := util.RequestParam(ctx, "cocktailId")
	item, err := cs.data.Get(ctx, util.WorkspaceId(ctx), cocktailId)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if item.Image == nil || *item.Image == "" {
		return events.APIGatewayV2HTTPResponse{}, exceptions.NotFound("image", cocktailId)
	}
	contentType, content, err := editor.DecodeImage(*item.Image)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer("Stored image is not readable")
	}
	return util.SerializeBinary(contentType, content, nil)
}

func (cs *CocktailService) CreateCocktail(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[api.CocktailInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if input.Id != nil && *input.Id != "" {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("A new cocktail must not carry an id, use PUT to update.")
	}
	normalized, err := Normalize(input)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := cs.data.Create(ctx, util.WorkspaceId(ctx), ToData(normalized, false))
	return util.SerializeResponseOK(StripFields(false), created, err)
}

func (cs *CocktailService) update(ctx context.Context, cocktailId string, input api.CocktailInput) (events.APIGatewayV2HTTPResponse, error) {
	normalized, err := Normalize(input)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := cs.data.Update(ctx, util.WorkspaceId(ctx), cocktailId, ToData(normalized, true))
	return util.SerializeResponseOK(StripFields(false), item, err)
}

// ReplaceCocktail updates the cocktail named by the id in the body.
func (cs *CocktailService) ReplaceCocktail(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[api.CocktailInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if input.Id == nil || *input.Id == "" {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("An update needs the cocktail id in the body.")
	}
	return cs.update(ctx, *input.Id, input)
}

func (cs *CocktailService) UpdateCocktail(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[api.CocktailInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	cocktailId := util.RequestParam(ctx, "cocktailId")
	if input.Id != nil && *input.Id != "" && *input.Id != cocktailId {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInputf("Body id %s does not match path id %s", *input.Id, cocktailId)
	}
	return cs.update(ctx, cocktailId, input)
}

func (cs *CocktailService) DeleteCocktail(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := cs.data.Delete(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "cocktailId"))
	return util.SerializeResponseNoContent(err)
}
