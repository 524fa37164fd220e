package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"philcali.me/barmanager/internal/exceptions"
	"philcali.me/barmanager/internal/routes/filters"
)

type Route func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error)

type Service interface {
	GetRoutes() map[string]Route
}

type contextKey string

const (
	paramsKey   contextKey = "Params"
	usernameKey contextKey = "Username"
)

// WithParams stores the path parameters of the matched route.
func WithParams(ctx context.Context, params map[string]string) context.Context {
	return context.WithValue(ctx, paramsKey, params)
}

func Params(ctx context.Context) map[string]string {
	if params, ok := ctx.Value(paramsKey).(map[string]string); ok {
		return params
	}
	return map[string]string{}
}

func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

func Username(ctx context.Context) string {
	if username, ok := ctx.Value(usernameKey).(string); ok {
		return username
	}
	return ""
}

type CachedMatcher struct {
	Matcher    *regexp.Regexp
	ParamNames []string
	Mutex      *sync.Mutex
}

type CachedRoute struct {
	Method  string
	Path    string
	Route   Route
	Matcher *CachedMatcher
}

func (cr *CachedMatcher) Refresh(path string) *regexp.Regexp {
	cr.Mutex.Lock()
	defer cr.Mutex.Unlock()
	if cr.Matcher == nil {
		namex := regexp.MustCompile(":[^/]+")
		regexPath := namex.ReplaceAllStringFunc(path, func(found string) string {
			cr.ParamNames = append(cr.ParamNames, found[1:])
			return "([^/]+)"
		})
		cr.Matcher = regexp.MustCompile("^" + regexPath + "$")
	}
	return cr.Matcher
}

func (cr *CachedRoute) MatchEvent(event events.APIGatewayV2HTTPRequest) (map[string]string, bool) {
	if event.RequestContext.HTTP.Method != cr.Method {
		return nil, false
	}
	if event.RawPath == cr.Path {
		return map[string]string{}, true
	}
	matcher := cr.Matcher.Refresh(cr.Path)
	values := matcher.FindStringSubmatch(event.RawPath)
	if values == nil {
		return nil, false
	}
	params := make(map[string]string, len(cr.Matcher.ParamNames))
	for i, p := range cr.Matcher.ParamNames {
		params[p] = values[i+1]
	}
	return params, true
}

type Router struct {
	Filters []filters.RequestFilter
	Routes  []CachedRoute
	Logger  *zap.Logger
}

// literalSegments ranks routes so "/cocktails/:id/image" is tried before a
// catch-all parameter at the same depth.
func literalSegments(path string) int {
	count := 0
	for _, segment := range strings.Split(path, "/") {
		if segment != "" && !strings.HasPrefix(segment, ":") {
			count++
		}
	}
	return count
}

func NewRouter(services ...Service) *Router {
	var routes []CachedRoute
	var fltrs []filters.RequestFilter
	for _, service := range services {
		serviceRoutes := service.GetRoutes()
		composites := maps.Keys(serviceRoutes)
		slices.Sort(composites)
		for _, composite := range composites {
			parts := strings.SplitN(composite, ":", 2)
			cachedRoute := CachedRoute{
				Method: parts[0],
				Path:   parts[1],
				Route:  serviceRoutes[composite],
				Matcher: &CachedMatcher{
					Mutex: &sync.Mutex{},
				},
			}
			routes = append(routes, cachedRoute)
		}
	}
	slices.SortStableFunc(routes, func(a, b CachedRoute) int {
		return literalSegments(b.Path) - literalSegments(a.Path)
	})
	fltrs = append(fltrs, filters.DefaultCorsFilter())
	fltrs = append(fltrs, filters.DefaultAuthorizationFilter())
	return &Router{
		Routes:  routes,
		Filters: fltrs,
		Logger:  zap.NewNop(),
	}
}

type errorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func translateError(err error) events.APIGatewayV2HTTPResponse {
	statusCode := http.StatusInternalServerError
	var re exceptions.RequestError
	if errors.As(err, &re) {
		statusCode = re.ToServiceError().StatusCode
	}
	var se *exceptions.ServiceError
	if errors.As(err, &se) {
		statusCode = se.StatusCode
	}
	response := errorBody{Message: err.Error()}
	var ue *exceptions.UnprocessableError
	if errors.As(err, &ue) {
		response.Fields = ue.Fields
	}
	body, marshalErr := json.Marshal(response)
	if marshalErr != nil {
		body = []byte(`{"message": "Unexpected internal error"}`)
	}
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    headers,
	}
}

func (r *Router) Invoke(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse {
	filterContext := filters.DefaultFilterContext(event, ctx)
	for _, filter := range r.Filters {
		updatedContext, broken := filter.Filter(filterContext)
		if broken {
			return *updatedContext.Response
		}
		filterContext = updatedContext
	}
	for _, route := range r.Routes {
		if params, ok := route.MatchEvent(*filterContext.Request); ok {
			resp, err := route.Route(event, WithParams(*filterContext.Context, params))
			if err != nil {
				translated := translateError(err)
				logFailure(r.Logger, route, translated.StatusCode, err)
				return translated
			}
			r.Logger.Debug("Handled request",
				zap.String("method", route.Method),
				zap.String("route", route.Path),
				zap.Int("status", resp.StatusCode))
			return resp
		}
	}
	r.Logger.Info("No route matched",
		zap.String("method", event.RequestContext.HTTP.Method),
		zap.String("path", event.RawPath))
	return translateError(exceptions.NotFound("route", event.RawPath))
}

func logFailure(logger *zap.Logger, route CachedRoute, statusCode int, err error) {
	fields := []zap.Field{
		zap.String("method", route.Method),
		zap.String("route", route.Path),
		zap.Int("status", statusCode),
		zap.Error(err),
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", fields...)
		return
	}
	logger.Info("Request rejected", fields...)
}
