package apitokens

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/dynamodb/services"
	"philcali.me/barmanager/internal/dynamodb/token"
)

// GenerateTokenHash returns 32 random bytes, hex encoded. The sort key of a
// token is its secret.
func GenerateTokenHash() string {
	randomBytes := make([]byte, 32)
	rand.Read(randomBytes)
	return hex.EncodeToString(randomBytes)
}

func NewApiTokenService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.ApiTokenRepository {
	return &services.RepositoryDynamoDBService[data.ApiTokenDTO, data.ApiTokenInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "ApiToken",
		NewId:          GenerateTokenHash,
		Shim: func(pk, sk string) data.ApiTokenDTO {
			return data.ApiTokenDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.ApiTokenInputDTO, now time.Time, pk, sk string) data.ApiTokenDTO {
			created := data.ApiTokenDTO{
				PK:         pk,
				SK:         sk,
				ExpiresIn:  input.ExpiresIn,
				Scopes:     []data.Scope{},
				CreateTime: now,
				UpdateTime: now,
			}
			if input.Name != nil {
				created.Name = *input.Name
			}
			if input.Scopes != nil {
				created.Scopes = *input.Scopes
			}
			if input.AccountId != nil {
				created.AccountId = *input.AccountId
			}
			return created
		},
		OnUpdate: func(input data.ApiTokenInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
			if input.Name != nil {
				update = update.Set(expression.Name("name"), expression.Value(input.Name))
			}
			if input.ExpiresIn != nil {
				update = update.Set(expression.Name("expiresIn"), expression.Value(input.ExpiresIn))
			}
			return update
		},
	}
}
