package data

import "time"

type CardItemDTO struct {
	CocktailId   string   `dynamodbav:"cocktailId"`
	ItemNumber   int      `dynamodbav:"itemNumber"`
	SpecialPrice *float64 `dynamodbav:"specialPrice"`
}

type CardGroupDTO struct {
	Name        string        `dynamodbav:"name"`
	GroupNumber int           `dynamodbav:"groupNumber"`
	ItemPrice   *float64      `dynamodbav:"itemPrice"`
	Items       []CardItemDTO `dynamodbav:"items"`
}

type CardDTO struct {
	PK         string         `dynamodbav:"PK"`
	SK         string         `dynamodbav:"SK"`
	Name       string         `dynamodbav:"name"`
	Date       *time.Time     `dynamodbav:"date"`
	Groups     []CardGroupDTO `dynamodbav:"groups"`
	CreateTime time.Time      `dynamodbav:"createTime"`
	UpdateTime time.Time      `dynamodbav:"updateTime"`
}

type CardInputDTO struct {
	Name   *string         `dynamodbav:"name"`
	Date   *time.Time      `dynamodbav:"date"`
	Groups *[]CardGroupDTO `dynamodbav:"groups"`
}

type CardRepository interface {
	Repository[CardDTO, CardInputDTO]
}
