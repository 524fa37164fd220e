package ingredients

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/dynamodb/services"
	"philcali.me/barmanager/internal/dynamodb/token"
)

func NewIngredientService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.IngredientRepository {
	return &services.RepositoryDynamoDBService[data.IngredientDTO, data.IngredientInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "Ingredient",
		Shim: func(pk, sk string) data.IngredientDTO {
			return data.IngredientDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.IngredientInputDTO, now time.Time, pk, sk string) data.IngredientDTO {
			created := data.IngredientDTO{
				PK:         pk,
				SK:         sk,
				ShortName:  input.ShortName,
				Unit:       input.Unit,
				Link:       input.Link,
				Image:      input.Image,
				CreateTime: now,
				UpdateTime: now,
			}
			if input.Name != nil {
				created.Name = *input.Name
			}
			if input.Price != nil {
				created.Price = *input.Price
			}
			if input.Volume != nil {
				created.Volume = *input.Volume
			}
			return created
		},
		OnUpdate: func(input data.IngredientInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
			if input.Name != nil {
				update = update.Set(expression.Name("name"), expression.Value(input.Name))
			}
			if input.Price != nil {
				update = update.Set(expression.Name("price"), expression.Value(input.Price))
			}
			if input.Volume != nil {
				update = update.Set(expression.Name("volume"), expression.Value(input.Volume))
			}
			update = services.SetOrRemove(update, "shortName", input.ShortName)
			update = services.SetOrRemove(update, "unit", input.Unit)
			update = services.SetOrRemove(update, "link", input.Link)
			return services.SetOrRemove(update, "image", input.Image)
		},
	}
}
