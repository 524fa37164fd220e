package util

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/exceptions"
	"philcali.me/barmanager/internal/routes"
)

// AuthorizedRoute resolves the caller from the JWT claims or the lambda
// authorizer context and rejects anonymous requests.
func AuthorizedRoute(route routes.Route) routes.Route {
	return func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
		if authorizer := event.RequestContext.Authorizer; authorizer != nil {
			if authorizer.JWT != nil {
				if username, ok := authorizer.JWT.Claims["username"]; ok {
					return route(event, routes.WithUsername(ctx, username))
				}
			}
			if username, ok := authorizer.Lambda["username"].(string); ok {
				return route(event, routes.WithUsername(ctx, username))
			}
		}
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer("Unexpected internal error")
	}
}

func RequestParam(ctx context.Context, name string) string {
	return routes.Params(ctx)[name]
}

func WorkspaceId(ctx context.Context) string {
	return RequestParam(ctx, "workspaceId")
}

func Username(ctx context.Context) string {
	return routes.Username(ctx)
}

func IdentityThunk[T interface{}](thing T) T {
	return thing
}

func ParseBody[T interface{}](event events.APIGatewayV2HTTPRequest) (T, error) {
	var input T
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return input, exceptions.InvalidInput(err.Error())
		}
		body = decoded
	}
	if err := json.Unmarshal(body, &input); err != nil {
		return input, exceptions.InvalidInput(err.Error())
	}
	return input, nil
}

func ParseQueryParams(event events.APIGatewayV2HTTPRequest) (data.QueryParams, error) {
	var params data.QueryParams
	if sLimit, ok := event.QueryStringParameters["limit"]; ok {
		limit, err := strconv.Atoi(sLimit)
		if err != nil {
			return params, exceptions.InvalidInput("Limit parameter was not a number type.")
		}
		params.Limit = limit
	}
	if token, ok := event.QueryStringParameters["nextToken"]; ok {
		params.NextToken = []byte(token)
	}
	return params, nil
}

func SerializeResponse[T interface{}, R interface{}](delayed func(T) R, thing T, err error, statusCode int) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	body, err := json.Marshal(delayed(thing))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

func SerializeResponseOK[T interface{}, R interface{}](delayed func(T) R, thing T, err error) (events.APIGatewayV2HTTPResponse, error) {
	return SerializeResponse(delayed, thing, err, 200)
}

func SerializeResponseNoContent(err error) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: 204,
	}, nil
}

// SerializeBinary answers with raw content, base64 encoded for the gateway.
func SerializeBinary(contentType string, content []byte, err error) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: 200,
		Headers: map[string]string{
			"Content-Type":  contentType,
			"Cache-Control": "max-age=3600",
		},
		Body:            base64.StdEncoding.EncodeToString(content),
		IsBase64Encoded: true,
	}, nil
}

// SerializeList lists a workspace scoped repository using the paging
// parameters of the request.
func SerializeList[T interface{}, I interface{}, R interface{}](
	repository data.Repository[T, I],
	thunk func(T) R,
	event events.APIGatewayV2HTTPRequest,
	ctx context.Context,
) (events.APIGatewayV2HTTPResponse, error) {
	params, err := ParseQueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	items, err := repository.List(ctx, WorkspaceId(ctx), params)
	return SerializeResponseOK(ConvertQueryResultsPartial(thunk), items, err)
}

func ConvertQueryResults[D interface{}, R interface{}](items data.QueryResults[D], thunk func(D) R) data.QueryResults[R] {
	if items.Items != nil {
		newItems := make([]R, len(items.Items))
		for i, rd := range items.Items {
			newItems[i] = thunk(rd)
		}
		return data.QueryResults[R]{
			Items:     newItems,
			NextToken: items.NextToken,
		}
	}
	return data.QueryResults[R]{
		Items: make([]R, 0),
	}
}

// ListAll follows next tokens from params until the partition is exhausted.
func ListAll[T interface{}, I interface{}](ctx context.Context, repository data.Repository[T, I], workspaceId string, params data.QueryParams) (data.QueryResults[T], error) {
	all := data.QueryResults[T]{Items: make([]T, 0)}
	for {
		page, err := repository.List(ctx, workspaceId, params)
		if err != nil {
			return data.QueryResults[T]{}, err
		}
		all.Items = append(all.Items, page.Items...)
		if len(page.NextToken) == 0 {
			return all, nil
		}
		params.NextToken = page.NextToken
	}
}

func ConvertQueryResultsPartial[D interface{}, R interface{}](thunk func(D) R) func(data.QueryResults[D]) data.QueryResults[R] {
	return func(d data.QueryResults[D]) data.QueryResults[R] {
		return ConvertQueryResults(d, thunk)
	}
}

// MapOnList converts an optional list, keeping nil as nil.
func MapOnList[D interface{}, R interface{}](items *[]D, thunk func(D) R) *[]R {
	if items == nil {
		return nil
	}
	converted := make([]R, len(*items))
	for i, item := range *items {
		converted[i] = thunk(item)
	}
	return &converted
}
