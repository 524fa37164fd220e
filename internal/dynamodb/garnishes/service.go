package garnishes

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/dynamodb/services"
	"philcali.me/barmanager/internal/dynamodb/token"
)

func NewGarnishService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.GarnishRepository {
	return &services.RepositoryDynamoDBService[data.GarnishDTO, data.GarnishInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "Garnish",
		Shim: func(pk, sk string) data.GarnishDTO {
			return data.GarnishDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.GarnishInputDTO, now time.Time, pk, sk string) data.GarnishDTO {
			created := data.GarnishDTO{
				PK:          pk,
				SK:          sk,
				Description: input.Description,
				Image:       input.Image,
				CreateTime:  now,
				UpdateTime:  now,
			}
			if input.Name != nil {
				created.Name = *input.Name
			}
			if input.Price != nil {
				created.Price = *input.Price
			}
			return created
		},
		OnUpdate: func(input data.GarnishInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
			if input.Name != nil {
				update = update.Set(expression.Name("name"), expression.Value(input.Name))
			}
			if input.Price != nil {
				update = update.Set(expression.Name("price"), expression.Value(input.Price))
			}
			update = services.SetOrRemove(update, "description", input.Description)
			return services.SetOrRemove(update, "image", input.Image)
		},
	}
}
