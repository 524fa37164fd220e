package cocktails

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/dynamodb/services"
	"philcali.me/barmanager/internal/dynamodb/token"
)

func NewCocktailService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.CocktailRepository {
	return &services.RepositoryDynamoDBService[data.CocktailDTO, data.CocktailInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "Cocktail",
		Shim: func(pk, sk string) data.CocktailDTO {
			return data.CocktailDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.CocktailInputDTO, now time.Time, pk, sk string) data.CocktailDTO {
			created := data.CocktailDTO{
				PK:          pk,
				SK:          sk,
				Description: input.Description,
				GarnishId:   input.GarnishId,
				Image:       input.Image,
				Tags:        []string{},
				Steps:       []data.CocktailStepDTO{},
				CreateTime:  now,
				UpdateTime:  now,
			}
			if input.Name != nil {
				created.Name = *input.Name
			}
			if input.Price != nil {
				created.Price = *input.Price
			}
			if input.GlassId != nil {
				created.GlassId = *input.GlassId
			}
			if input.GlassWithIce != nil {
				created.GlassWithIce = *input.GlassWithIce
			}
			if input.Tags != nil {
				created.Tags = *input.Tags
			}
			if input.Steps != nil {
				created.Steps = *input.Steps
			}
			return created
		},
		OnUpdate: func(input data.CocktailInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
			if input.Name != nil {
				update = update.Set(expression.Name("name"), expression.Value(input.Name))
			}
			update = services.SetOrRemove(update, "description", input.Description)
			if input.Price != nil {
				update = update.Set(expression.Name("price"), expression.Value(input.Price))
			}
			if input.Tags != nil {
				update = update.Set(expression.Name("tags"), expression.Value(input.Tags))
			}
			if input.GlassId != nil {
				update = update.Set(expression.Name("glassId"), expression.Value(input.GlassId))
			}
			if input.GlassWithIce != nil {
				update = update.Set(expression.Name("glassWithIce"), expression.Value(input.GlassWithIce))
			}
			update = services.SetOrRemove(update, "garnishId", input.GarnishId)
			update = services.SetOrRemove(update, "image", input.Image)
			if input.Steps != nil {
				update = update.Set(expression.Name("steps"), expression.Value(input.Steps))
			}
			return update
		},
	}
}
