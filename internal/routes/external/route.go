package external

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/cocktaildb"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/editor"
	"philcali.me/barmanager/internal/exceptions"
	"philcali.me/barmanager/internal/provider"
	"philcali.me/barmanager/internal/routes"
	"philcali.me/barmanager/internal/routes/glasses"
	"philcali.me/barmanager/internal/routes/ingredients"
	"philcali.me/barmanager/internal/routes/util"
)

type ExternalService struct {
	Service     provider.CocktailProvider
	Ingredients data.IngredientRepository
	Glasses     data.GlassRepository
}

func NewExternalService(ingredients data.IngredientRepository, glasses data.GlassRepository) routes.Service {
	return &ExternalService{
		Service:     cocktaildb.NewDefaultCocktailClient(),
		Ingredients: ingredients,
		Glasses:     glasses,
	}
}

func (es *ExternalService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/workspaces/:workspaceId/providers/cocktaildb":                 util.AuthorizedRoute(es.Search),
		"GET:/workspaces/:workspaceId/providers/cocktaildb/random":          util.AuthorizedRoute(es.Random),
		"GET:/workspaces/:workspaceId/providers/cocktaildb/:drinkId":        util.AuthorizedRoute(es.Lookup),
		"GET:/workspaces/:workspaceId/providers/cocktaildb/:drinkId/import": util.AuthorizedRoute(es.Import),
	}
}

func (es *ExternalService) Lookup(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	query, err := es.Service.Lookup(ctx, util.RequestParam(ctx, "drinkId"))
	return util.SerializeResponseOK(util.IdentityThunk, query, err)
}

func (es *ExternalService) Search(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	text, ok := event.QueryStringParameters["search"]
	if !ok {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("Need a search parameter set")
	}
	query, err := es.Service.Search(ctx, text)
	return util.SerializeResponseOK(util.IdentityThunk, query, err)
}

func (es *ExternalService) Random(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	query, err := es.Service.Random(ctx)
	return util.SerializeResponseOK(util.IdentityThunk, query, err)
}

func listAll[T interface{}, I interface{}, R interface{}](ctx context.Context, repository data.Repository[T, I], workspaceId string, thunk func(T) R) ([]R, error) {
	page, err := util.ListAll(ctx, repository, workspaceId, data.QueryParams{})
	if err != nil {
		return nil, err
	}
	return util.ConvertQueryResults(page, thunk).Items, nil
}

// Import turns an external cocktail into a create body whose ingredients
// and glass are resolved against the workspace catalog. Nothing is saved.
func (es *ExternalService) Import(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	drinkId := util.RequestParam(ctx, "drinkId")
	found, err := es.Service.Lookup(ctx, drinkId)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if len(found) == 0 {
		return events.APIGatewayV2HTTPResponse{}, exceptions.NotFound("drink", drinkId)
	}
	workspaceId := util.WorkspaceId(ctx)
	ingredientList, err := listAll(ctx, es.Ingredients, workspaceId, ingredients.NewIngredient)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	glassList, err := listAll(ctx, es.Glasses, workspaceId, glasses.NewGlass)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	catalog := editor.NewCatalog(ingredientList, glassList, []api.Garnish{})
	draft, err := editor.FromExternal(found[0], catalog)
	return util.SerializeResponseOK(editor.BuildPayload, draft, err)
}
