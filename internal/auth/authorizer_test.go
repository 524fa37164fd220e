package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/dynamodb/apitokens"
	"philcali.me/barmanager/internal/dynamodb/services"
	routeTokens "philcali.me/barmanager/internal/routes/apitokens"
	"philcali.me/barmanager/internal/test"
)

func newTokens() *test.MemoryRepository[data.ApiTokenDTO, data.ApiTokenInputDTO] {
	service := apitokens.NewApiTokenService("", nil, nil).(*services.RepositoryDynamoDBService[data.ApiTokenDTO, data.ApiTokenInputDTO])
	repository := test.NewMemoryRepository("ApiToken", service.OnCreate, nil)
	repository.NewId = apitokens.GenerateTokenHash
	return repository
}

func request(authorization string) events.APIGatewayV2CustomAuthorizerV2Request {
	return events.APIGatewayV2CustomAuthorizerV2Request{
		RouteKey: "ANY /{proxy+}",
		Headers: map[string]string{
			"authorization": authorization,
		},
	}
}

func TestApiTokenAuth(t *testing.T) {
	tokens := newTokens()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	created, err := tokens.Create(context.TODO(), "bar", data.ApiTokenInputDTO{
		Name:      aws.String("cli"),
		Scopes:    &[]data.Scope{data.COCKTAILS_WRITE, data.INGREDIENTS_READ},
		AccountId: aws.String("owner"),
	})
	require.NoError(t, err)
	expired, err := tokens.Create(context.TODO(), "bar", data.ApiTokenInputDTO{
		Name:      aws.String("old"),
		Scopes:    &[]data.Scope{data.COCKTAILS_WRITE},
		AccountId: aws.String("owner"),
		ExpiresIn: aws.Int(int(now.Add(-time.Hour).UnixMilli())),
	})
	require.NoError(t, err)

	authorizer := NewAuthorizer(zap.NewNop(), (&ApiTokenAuth{
		Tokens: tokens,
		Now:    func() time.Time { return now },
	}).Authorize)

	t.Run("Granted", func(t *testing.T) {
		response, err := authorizer.HandleRequest(context.TODO(), request("Bearer "+routeTokens.TokenValue("bar", created.SK)))
		require.NoError(t, err)
		assert.True(t, response.IsAuthorized)
		assert.Equal(t, "owner", response.Context["username"])
		assert.Equal(t, "bar", response.Context["workspaceId"])
		assert.Equal(t, []string{"cocktails", "ingredients.read"}, response.Context["scopes"])
	})

	t.Run("Expired", func(t *testing.T) {
		response, err := authorizer.HandleRequest(context.TODO(), request("Bearer "+routeTokens.TokenValue("bar", expired.SK)))
		require.NoError(t, err)
		assert.False(t, response.IsAuthorized)
	})

	t.Run("OtherWorkspace", func(t *testing.T) {
		response, err := authorizer.HandleRequest(context.TODO(), request("Bearer "+routeTokens.TokenValue("pub", created.SK)))
		require.NoError(t, err)
		assert.False(t, response.IsAuthorized)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		response, err := authorizer.HandleRequest(context.TODO(), events.APIGatewayV2CustomAuthorizerV2Request{})
		require.NoError(t, err)
		assert.False(t, response.IsAuthorized)
	})
}

func TestUserInfoAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth2/userInfo" || r.Header.Get("Authorization") != "Bearer header.payload.signature" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"username": "owner", "email": "owner@example.com"}`))
	}))
	defer server.Close()

	tokens := newTokens()
	authorizer := NewAuthorizer(zap.NewNop(),
		(&UserInfoAuth{PoolURL: server.URL, Client: server.Client()}).Authorize,
		(&ApiTokenAuth{Tokens: tokens}).Authorize,
	)

	t.Run("PoolUser", func(t *testing.T) {
		response, err := authorizer.HandleRequest(context.TODO(), request("Bearer header.payload.signature"))
		require.NoError(t, err)
		assert.True(t, response.IsAuthorized)
		assert.Equal(t, "owner", response.Context["username"])
		assert.NotContains(t, response.Context, "workspaceId")
		assert.Len(t, response.Context["scopes"], len(data.AllScopes()))
	})

	t.Run("FallsThroughToTokens", func(t *testing.T) {
		created, err := tokens.Create(context.TODO(), "bar", data.ApiTokenInputDTO{
			Name:      aws.String("cli"),
			Scopes:    &[]data.Scope{data.CARDS_READ},
			AccountId: aws.String("owner"),
		})
		require.NoError(t, err)
		response, err := authorizer.HandleRequest(context.TODO(), request("Bearer "+routeTokens.TokenValue("bar", created.SK)))
		require.NoError(t, err)
		assert.True(t, response.IsAuthorized)
		assert.Equal(t, []string{"cards.read"}, response.Context["scopes"])
	})

	t.Run("Unknown", func(t *testing.T) {
		response, err := authorizer.HandleRequest(context.TODO(), request("Bearer nope"))
		require.NoError(t, err)
		assert.False(t, response.IsAuthorized)
	})
}
