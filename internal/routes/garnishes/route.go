package garnishes

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/editor"
	"philcali.me/barmanager/internal/exceptions"
	"philcali.me/barmanager/internal/routes"
	"philcali.me/barmanager/internal/routes/util"
)

type GarnishService struct {
	data data.GarnishRepository
}

func NewRoute(data data.GarnishRepository) routes.Service {
	return &GarnishService{
		data: data,
	}
}

func NewGarnish(in data.GarnishDTO) api.Garnish {
	return api.Garnish{
		Id:          in.SK,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		CreateTime:  in.CreateTime,
		UpdateTime:  in.UpdateTime,
	}
}

// Normalize applies the garnish form's rules: a name, a price that is not
// negative (zero is fine), blank optional text sent as null.
func Normalize(input api.GarnishInput) (api.GarnishInput, error) {
	draft := &editor.GarnishDraft{
		Name:  aws.ToString(input.Name),
		Price: input.Price,
	}
	if input.Id != nil {
		draft.ID = *input.Id
	}
	if input.Description != nil {
		draft.Description = *input.Description
	}
	if input.Image != nil {
		draft.Image = *input.Image
	}
	report := editor.ValidateGarnish(draft)
	fields := report.Fields()
	if draft.Image != "" {
		if _, _, err := editor.DecodeImage(draft.Image); err != nil {
			fields["image"] = err.Error()
		}
	}
	if len(fields) > 0 {
		return input, exceptions.Invalid("garnish", fields)
	}
	return editor.BuildGarnishPayload(draft), nil
}

func ToData(in api.GarnishInput, replace bool) data.GarnishInputDTO {
	orClear := func(value *string) *string {
		if value == nil && replace {
			return aws.String("")
		}
		return value
	}
	return data.GarnishInputDTO{
		Name:        in.Name,
		Description: orClear(in.Description),
		Price:       in.Price,
		Image:       orClear(in.Image),
	}
}

func (gs *GarnishService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/workspaces/:workspaceId/garnishes":               util.AuthorizedRoute(gs.ListGarnishes),
		"GET:/workspaces/:workspaceId/garnishes/:garnishId":    util.AuthorizedRoute(gs.GetGarnish),
		"POST:/workspaces/:workspaceId/garnishes":              util.AuthorizedRoute(gs.CreateGarnish),
		"PUT:/workspaces/:workspaceId/garnishes":               util.AuthorizedRoute(gs.ReplaceGarnish),
		"PUT:/workspaces/:workspaceId/garnishes/:garnishId":    util.AuthorizedRoute(gs.UpdateGarnish),
		"DELETE:/workspaces/:workspaceId/garnishes/:garnishId": util.AuthorizedRoute(gs.DeleteGarnish),
	}
}

func (gs *GarnishService) ListGarnishes(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeList(gs.data, NewGarnish, event, ctx)
}

func (gs *GarnishService) GetGarnish(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := gs.data.Get(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "garnishId"))
	return util.SerializeResponseOK(NewGarnish, item, err)
}

func (gs *GarnishService) CreateGarnish(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[api.GarnishInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if input.Id != nil && *input.Id != "" {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("A new garnish must not carry an id, use PUT to update.")
	}
	normalized, err := Normalize(input)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := gs.data.Create(ctx, util.WorkspaceId(ctx), ToData(normalized, false))
	return util.SerializeResponseOK(NewGarnish, created, err)
}

func (gs *GarnishService) update(ctx context.Context, garnishId string, input api.GarnishInput) (events.APIGatewayV2HTTPResponse, error) {
	normalized, err := Normalize(input)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := gs.data.Update(ctx, util.WorkspaceId(ctx), garnishId, ToData(normalized, true))
	return util.SerializeResponseOK(NewGarnish, item, err)
}

func (gs *GarnishService) ReplaceGarnish(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[api.GarnishInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if input.Id == nil || *input.Id == "" {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("An update needs the garnish id in the body.")
	}
	return gs.update(ctx, *input.Id, input)
}

func (gs *GarnishService) UpdateGarnish(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[api.GarnishInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return gs.update(ctx, util.RequestParam(ctx, "garnishId"), input)
}

func (gs *GarnishService) DeleteGarnish(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := gs.data.Delete(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "garnishId"))
	return util.SerializeResponseNoContent(err)
}
