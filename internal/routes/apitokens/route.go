package apitokens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/exceptions"
	"philcali.me/barmanager/internal/routes"
	"philcali.me/barmanager/internal/routes/util"
)

type ApiTokenService struct {
	data data.ApiTokenRepository
}

func NewRoute(data data.ApiTokenRepository) routes.Service {
	return &ApiTokenService{
		data: data,
	}
}

// TokenValue is what a client sends as its bearer token.
func TokenValue(workspaceId string, secret string) string {
	return fmt.Sprintf("%s.%s", workspaceId, secret)
}

// ParseTokenValue splits a bearer token into its workspace and secret.
func ParseTokenValue(value string) (string, string, bool) {
	index := strings.LastIndex(value, ".")
	if index <= 0 || index == len(value)-1 {
		return "", "", false
	}
	return value[:index], value[index+1:], true
}

func _convertToken(tokenDTO data.ApiTokenDTO) ApiToken {
	var expiresIn *time.Time
	if tokenDTO.ExpiresIn != nil {
		expiresIn = aws.Time(time.UnixMilli(int64(*tokenDTO.ExpiresIn)))
	}
	workspaceId, _, _ := strings.Cut(tokenDTO.PK, ":")
	return ApiToken{
		Name:       tokenDTO.Name,
		Value:      TokenValue(workspaceId, tokenDTO.SK),
		Scopes:     tokenDTO.Scopes,
		ExpiresIn:  expiresIn,
		CreateTime: tokenDTO.CreateTime,
		UpdateTime: tokenDTO.UpdateTime,
	}
}

func _expiresIn(input ApiTokenInput) *int {
	if input.ExpiresIn == nil {
		return nil
	}
	return aws.Int(int(input.ExpiresIn.UnixMilli()))
}

func (as *ApiTokenService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/workspaces/:workspaceId/tokens":             util.AuthorizedRoute(as.ListTokens),
		"GET:/workspaces/:workspaceId/tokens/:tokenId":    util.AuthorizedRoute(as.GetToken),
		"POST:/workspaces/:workspaceId/tokens":            util.AuthorizedRoute(as.CreateToken),
		"PUT:/workspaces/:workspaceId/tokens/:tokenId":    util.AuthorizedRoute(as.UpdateToken),
		"DELETE:/workspaces/:workspaceId/tokens/:tokenId": util.AuthorizedRoute(as.DeleteToken),
	}
}

func (as *ApiTokenService) ListTokens(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeList(as.data, _convertToken, event, ctx)
}

func (as *ApiTokenService) GetToken(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := as.data.Get(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "tokenId"))
	return util.SerializeResponseOK(_convertToken, item, err)
}

func (as *ApiTokenService) CreateToken(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[ApiTokenInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	fields := make(map[string]string)
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		fields["name"] = "Required"
	}
	if len(input.Scopes) == 0 {
		fields["scopes"] = "Required"
	}
	for index, scope := range input.Scopes {
		if !scope.Valid() {
			fields[fmt.Sprintf("scopes.%d", index)] = "Invalid"
		}
	}
	if len(fields) > 0 {
		return events.APIGatewayV2HTTPResponse{}, exceptions.Invalid("token", fields)
	}
	created, err := as.data.Create(ctx, util.WorkspaceId(ctx), data.ApiTokenInputDTO{
		Name:      input.Name,
		Scopes:    &input.Scopes,
		AccountId: aws.String(util.Username(ctx)),
		ExpiresIn: _expiresIn(input),
	})
	return util.SerializeResponseOK(_convertToken, created, err)
}

func (as *ApiTokenService) UpdateToken(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[ApiTokenInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := as.data.Update(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "tokenId"), data.ApiTokenInputDTO{
		Name:      input.Name,
		ExpiresIn: _expiresIn(input),
	})
	return util.SerializeResponseOK(_convertToken, item, err)
}

func (as *ApiTokenService) DeleteToken(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := as.data.Delete(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "tokenId"))
	return util.SerializeResponseNoContent(err)
}
