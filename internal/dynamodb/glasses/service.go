package glasses

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/dynamodb/services"
	"philcali.me/barmanager/internal/dynamodb/token"
)

func NewGlassService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.GlassRepository {
	return &services.RepositoryDynamoDBService[data.GlassDTO, data.GlassInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "Glass",
		Shim: func(pk, sk string) data.GlassDTO {
			return data.GlassDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.GlassInputDTO, now time.Time, pk, sk string) data.GlassDTO {
			created := data.GlassDTO{
				PK:         pk,
				SK:         sk,
				Image:      input.Image,
				CreateTime: now,
				UpdateTime: now,
			}
			if input.Name != nil {
				created.Name = *input.Name
			}
			if input.Deposit != nil {
				created.Deposit = *input.Deposit
			}
			return created
		},
		OnUpdate: func(input data.GlassInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
			if input.Name != nil {
				update = update.Set(expression.Name("name"), expression.Value(input.Name))
			}
			if input.Deposit != nil {
				update = update.Set(expression.Name("deposit"), expression.Value(input.Deposit))
			}
			return services.SetOrRemove(update, "image", input.Image)
		},
	}
}
