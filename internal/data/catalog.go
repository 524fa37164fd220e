package data

import "time"

type IngredientDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	Name       string    `dynamodbav:"name"`
	ShortName  *string   `dynamodbav:"shortName"`
	Price      float64   `dynamodbav:"price"`
	Volume     float64   `dynamodbav:"volume"`
	Unit       *string   `dynamodbav:"unit"`
	Link       *string   `dynamodbav:"link"`
	Image      *string   `dynamodbav:"image"`
	CreateTime time.Time `dynamodbav:"createTime"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

type IngredientInputDTO struct {
	Name      *string  `dynamodbav:"name"`
	ShortName *string  `dynamodbav:"shortName"`
	Price     *float64 `dynamodbav:"price"`
	Volume    *float64 `dynamodbav:"volume"`
	Unit      *string  `dynamodbav:"unit"`
	Link      *string  `dynamodbav:"link"`
	Image     *string  `dynamodbav:"image"`
}

type IngredientRepository interface {
	Repository[IngredientDTO, IngredientInputDTO]
}

type GlassDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	Name       string    `dynamodbav:"name"`
	Deposit    float64   `dynamodbav:"deposit"`
	Image      *string   `dynamodbav:"image"`
	CreateTime time.Time `dynamodbav:"createTime"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

type GlassInputDTO struct {
	Name    *string  `dynamodbav:"name"`
	Deposit *float64 `dynamodbav:"deposit"`
	Image   *string  `dynamodbav:"image"`
}

type GlassRepository interface {
	Repository[GlassDTO, GlassInputDTO]
}

type GarnishDTO struct {
	PK          string    `dynamodbav:"PK"`
	SK          string    `dynamodbav:"SK"`
	Name        string    `dynamodbav:"name"`
	Description *string   `dynamodbav:"description"`
	Price       float64   `dynamodbav:"price"`
	Image       *string   `dynamodbav:"image"`
	CreateTime  time.Time `dynamodbav:"createTime"`
	UpdateTime  time.Time `dynamodbav:"updateTime"`
}

type GarnishInputDTO struct {
	Name        *string  `dynamodbav:"name"`
	Description *string  `dynamodbav:"description"`
	Price       *float64 `dynamodbav:"price"`
	Image       *string  `dynamodbav:"image"`
}

type GarnishRepository interface {
	Repository[GarnishDTO, GarnishInputDTO]
}
