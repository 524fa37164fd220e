// Package auth is the lambda authorizer in front of the bar manager API. A
// request passes with either a user pool access token or an API token
// issued by a workspace.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/exceptions"
	"philcali.me/barmanager/internal/routes/apitokens"
)

var ErrNotApplicable = errors.New("authorization scheme does not apply")

// AuthThunk resolves a raw authorization header. It returns
// ErrNotApplicable when the header is not its kind of token.
type AuthThunk func(ctx context.Context, authorization string) (*events.APIGatewayV2CustomAuthorizerSimpleResponse, error)

func _scopeStrings(scopes []data.Scope) []string {
	rtn := make([]string, len(scopes))
	for i, scope := range scopes {
		rtn[i] = string(scope)
	}
	return rtn
}

// UserInfoAuth asks the user pool who owns the access token. Pool users
// are workspace owners and get every scope.
type UserInfoAuth struct {
	PoolURL string
	Client  *http.Client
}

func (ua *UserInfoAuth) Authorize(ctx context.Context, authorization string) (*events.APIGatewayV2CustomAuthorizerSimpleResponse, error) {
	if ua.PoolURL == "" {
		return nil, ErrNotApplicable
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/oauth2/userInfo", strings.TrimRight(ua.PoolURL, "/")), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Authorization", authorization)
	client := ua.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info returned %d: %w", resp.StatusCode, ErrNotApplicable)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var claims map[string]interface{}
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return nil, fmt.Errorf("user info has no username")
	}
	return &events.APIGatewayV2CustomAuthorizerSimpleResponse{
		IsAuthorized: true,
		Context: map[string]interface{}{
			"username": username,
			"scopes":   _scopeStrings(data.AllScopes()),
		},
	}, nil
}

// ApiTokenAuth looks up "Bearer <workspaceId>.<secret>" tokens. The grant
// is limited to the token's scopes and to its workspace.
type ApiTokenAuth struct {
	Tokens data.ApiTokenRepository
	Now    func() time.Time
}

func (aa *ApiTokenAuth) Authorize(ctx context.Context, authorization string) (*events.APIGatewayV2CustomAuthorizerSimpleResponse, error) {
	scheme, value, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return nil, ErrNotApplicable
	}
	workspaceId, secret, ok := apitokens.ParseTokenValue(value)
	if !ok || len(secret) != 64 {
		return nil, ErrNotApplicable
	}
	tokenDTO, err := aa.Tokens.Get(ctx, workspaceId, secret)
	if err != nil {
		var notFound *exceptions.NotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("unknown token for workspace %s: %w", workspaceId, ErrNotApplicable)
		}
		return nil, err
	}
	now := time.Now
	if aa.Now != nil {
		now = aa.Now
	}
	if tokenDTO.Expired(now()) {
		return nil, fmt.Errorf("token %s expired", tokenDTO.Name)
	}
	return &events.APIGatewayV2CustomAuthorizerSimpleResponse{
		IsAuthorized: true,
		Context: map[string]interface{}{
			"username":    tokenDTO.AccountId,
			"scopes":      _scopeStrings(tokenDTO.Scopes),
			"workspaceId": workspaceId,
		},
	}, nil
}

type Authorizer struct {
	Thunks []AuthThunk
	Logger *zap.Logger
}

func NewAuthorizer(logger *zap.Logger, thunks ...AuthThunk) *Authorizer {
	return &Authorizer{
		Thunks: thunks,
		Logger: logger,
	}
}

// HandleRequest tries each scheme in order. The first grant wins; failures
// are logged and lead to a denial.
func (a *Authorizer) HandleRequest(ctx context.Context, event events.APIGatewayV2CustomAuthorizerV2Request) (events.APIGatewayV2CustomAuthorizerSimpleResponse, error) {
	response := events.APIGatewayV2CustomAuthorizerSimpleResponse{
		IsAuthorized: false,
	}
	authorization, ok := event.Headers["authorization"]
	if !ok || authorization == "" {
		return response, nil
	}
	for _, authThunk := range a.Thunks {
		granted, err := authThunk(ctx, authorization)
		if granted != nil {
			return *granted, nil
		}
		if err != nil && !errors.Is(err, ErrNotApplicable) {
			a.Logger.Info("Skipping auth", zap.String("route", event.RouteKey), zap.Error(err))
			return response, nil
		}
	}
	return response, nil
}
