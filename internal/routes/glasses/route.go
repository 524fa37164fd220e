package glasses

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

type GlassService struct {
	data data.GlassRepository
}

func NewRoute(data data.GlassRepository) routes.Service {
	return &GlassService{
		data: data,
	}
}

func NewGlass(in data.GlassDTO) api.Glass {
	return api.Glass{
		Id:         in.SK,
		Name:       in.Name,
		Deposit:    in.Deposit,
		Image:      in.Image,
		CreateTime: in.CreateTime,
		UpdateTime: in.UpdateTime,
	}
}

func Validate(input api.GlassInput, create bool) error {
	fields := make(map[string]string)
	if (input.Name == nil && create) || (input.Name != nil && strings.TrimSpace(*input.Name) == "") {
		fields["name"] = "Required"
	}
	if input.Deposit != nil && *input.Deposit < 0 {
		fields["deposit"] = "Must not be negative"
	}
	if len(fields) > 0 {
		return exceptions.Invalid("glass", fields)
	}
	return nil
}

func ToData(in api.GlassInput) data.GlassInputDTO {
	return data.GlassInputDTO{
		Name:    in.Name,
		Deposit: in.Deposit,
		Image:   in.Image,
	}
}

func (gs *GlassService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/workspaces/:workspaceId/glasses":             util.AuthorizedRoute(gs.ListGlasses),
		"GET:/workspaces/:workspaceId/glasses/:glassId":    util.AuthorizedRoute(gs.GetGlass),
		"POST:/workspaces/:workspaceId/glasses":            util.AuthorizedRoute(gs.CreateGlass),
		"PUT:/workspaces/:workspaceId/glasses/:glassId":    util.AuthorizedRoute(gs.UpdateGlass),
		"DELETE:/workspaces/:workspaceId/glasses/:glassId": util.AuthorizedRoute(gs.DeleteGlass),
	}
}

func (gs *GlassService) ListGlasses(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeList(gs.data, NewGlass, event, ctx)
}

func (gs *GlassService) GetGlass(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := gs.data.Get(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "glassId"))
	return util.SerializeResponseOK(NewGlass, item, err)
}

func (gs *GlassService) CreateGlass(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[api.GlassInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if err := Validate(input, true); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := gs.data.Create(ctx, util.WorkspaceId(ctx), ToData(input))
	return util.SerializeResponseOK(NewGlass, created, err)
}

func (gs *GlassService) UpdateGlass(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[api.GlassInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if err := Validate(input, false); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := gs.data.Update(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "glassId"), ToData(input))
	return util.SerializeResponseOK(NewGlass, item, err)
}

func (gs *GlassService) DeleteGlass(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := gs.data.Delete(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "glassId"))
	return util.SerializeResponseNoContent(err)
}
