package cards

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/dynamodb/services"
	"philcali.me/barmanager/internal/dynamodb/token"
)

func NewCardService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.CardRepository {
	return &services.RepositoryDynamoDBService[data.CardDTO, data.CardInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "Card",
		Shim: func(pk, sk string) data.CardDTO {
			return data.CardDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.CardInputDTO, now time.Time, pk, sk string) data.CardDTO {
			created := data.CardDTO{
				PK:         pk,
				SK:         sk,
				Date:       input.Date,
				Groups:     []data.CardGroupDTO{},
				CreateTime: now,
				UpdateTime: now,
			}
			if input.Name != nil {
				created.Name = *input.Name
			}
			if input.Groups != nil {
				created.Groups = *input.Groups
			}
			return created
		},
		OnUpdate: func(input data.CardInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
			if input.Name != nil {
				update = update.Set(expression.Name("name"), expression.Value(input.Name))
			}
			if input.Date != nil {
				update = update.Set(expression.Name("date"), expression.Value(input.Date))
			}
			if input.Groups != nil {
				update = update.Set(expression.Name("groups"), expression.Value(input.Groups))
			}
			return update
		},
	}
}
