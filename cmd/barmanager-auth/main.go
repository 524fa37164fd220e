package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/barmanager/internal/auth"
	"philcali.me/barmanager/internal/config"
	"philcali.me/barmanager/internal/dynamodb/apitokens"
	"philcali.me/barmanager/internal/dynamodb/token"
	"philcali.me/barmanager/internal/logging"
)

func NewAuthorizer(ctx context.Context) (*auth.Authorizer, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateServer(); err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, err
	}
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := dynamodb.NewFromConfig(awsCfg)
	tokens := apitokens.NewApiTokenService(cfg.TableName, client, token.NewGCM([]byte(cfg.TokenSecret)))
	userInfo := &auth.UserInfoAuth{
		PoolURL: cfg.AuthPoolURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
	return auth.NewAuthorizer(logger,
		userInfo.Authorize,
		(&auth.ApiTokenAuth{Tokens: tokens}).Authorize,
	), nil
}

func main() {
	authorizer, err := NewAuthorizer(context.Background())
	if err != nil {
		panic(fmt.Sprintf("Failed to start: %s", err))
	}
	lambda.Start(authorizer.HandleRequest)
}
