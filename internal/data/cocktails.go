package data

import (
	"time"
)

type CocktailIngredientDTO struct {
	Id               string  `dynamodbav:"id"`
	IngredientId     string  `dynamodbav:"ingredientId"`
	IngredientNumber int     `dynamodbav:"ingredientNumber"`
	Amount           float64 `dynamodbav:"amount"`
	Unit             string  `dynamodbav:"unit"`
}

type CocktailStepDTO struct {
	Id          string                  `dynamodbav:"id"`
	StepNumber  int                     `dynamodbav:"stepNumber"`
	Mixing      bool                    `dynamodbav:"mixing"`
	Tool        string                  `dynamodbav:"tool"`
	Ingredients []CocktailIngredientDTO `dynamodbav:"ingredients"`
}

type CocktailDTO struct {
	PK           string            `dynamodbav:"PK"`
	SK           string            `dynamodbav:"SK"`
	Name         string            `dynamodbav:"name"`
	Description  *string           `dynamodbav:"description"`
	Price        float64           `dynamodbav:"price"`
	Tags         []string          `dynamodbav:"tags"`
	GlassId      string            `dynamodbav:"glassId"`
	GlassWithIce string            `dynamodbav:"glassWithIce"`
	GarnishId    *string           `dynamodbav:"garnishId"`
	Image        *string           `dynamodbav:"image"`
	Steps        []CocktailStepDTO `dynamodbav:"steps"`
	CreateTime   time.Time         `dynamodbav:"createTime"`
	UpdateTime   time.Time         `dynamodbav:"updateTime"`
}

type CocktailInputDTO struct {
	Name         *string            `dynamodbav:"name"`
	Description  *string            `dynamodbav:"description"`
	Price        *float64           `dynamodbav:"price"`
	Tags         *[]string          `dynamodbav:"tags"`
	GlassId      *string            `dynamodbav:"glassId"`
	GlassWithIce *string            `dynamodbav:"glassWithIce"`
	GarnishId    *string            `dynamodbav:"garnishId"`
	Image        *string            `dynamodbav:"image"`
	Steps        *[]CocktailStepDTO `dynamodbav:"steps"`
}

type CocktailRepository interface {
	Repository[CocktailDTO, CocktailInputDTO]
}
