// Package api holds the JSON shapes exchanged between the bar manager API
// and its clients.
package api

import "time"

type CocktailIngredient struct {
	Id               string  `json:"id,omitempty"`
	IngredientId     string  `json:"ingredientId"`
	IngredientNumber int     `json:"ingredientNumber"`
	Amount           float64 `json:"amount"`
	Unit             string  `json:"unit"`
}

type CocktailStep struct {
	Id          string               `json:"id,omitempty"`
	StepNumber  int                  `json:"stepNumber"`
	Mixing      bool                 `json:"mixing"`
	Tool        string               `json:"tool"`
	Ingredients []CocktailIngredient `json:"ingredients"`
}

// CocktailInput is the create / update body. Nullable fields are sent as
// JSON null rather than omitted.
type CocktailInput struct {
	Id           *string         `json:"id,omitempty"`
	Name         *string         `json:"name"`
	Description  *string         `json:"description"`
	Price        *float64        `json:"price"`
	GlassId      *string         `json:"glassId"`
	GarnishId    *string         `json:"garnishId"`
	Image        *string         `json:"image"`
	Tags         *[]string       `json:"tags"`
	GlassWithIce *string         `json:"glassWithIce"`
	Steps        *[]CocktailStep `json:"steps"`
}

type Cocktail struct {
	Id           string         `json:"id"`
	Name         string         `json:"name"`
	Description  *string        `json:"description"`
	Price        float64        `json:"price"`
	Tags         []string       `json:"tags"`
	GlassId      string         `json:"glassId"`
	GlassWithIce string         `json:"glassWithIce"`
	GarnishId    *string        `json:"garnishId"`
	Image        *string        `json:"image,omitempty"`
	Steps        []CocktailStep `json:"steps"`
	CreateTime   time.Time      `json:"createTime"`
	UpdateTime   time.Time      `json:"updateTime"`
}

type Ingredient struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	ShortName  *string   `json:"shortName,omitempty"`
	Price      float64   `json:"price"`
	Volume     float64   `json:"volume"`
	Unit       *string   `json:"unit,omitempty"`
	Link       *string   `json:"link,omitempty"`
	Image      *string   `json:"image,omitempty"`
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
}

type IngredientInput struct {
	Name      *string  `json:"name"`
	ShortName *string  `json:"shortName"`
	Price     *float64 `json:"price"`
	Volume    *float64 `json:"volume"`
	Unit      *string  `json:"unit"`
	Link      *string  `json:"link"`
	Image     *string  `json:"image"`
}

type Glass struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	Deposit    float64   `json:"deposit"`
	Image      *string   `json:"image,omitempty"`
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
}

type GlassInput struct {
	Name    *string  `json:"name"`
	Deposit *float64 `json:"deposit"`
	Image   *string  `json:"image"`
}

type Garnish struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Image       *string   `json:"image,omitempty"`
	CreateTime  time.Time `json:"createTime"`
	UpdateTime  time.Time `json:"updateTime"`
}

type GarnishInput struct {
	Id          *string  `json:"id,omitempty"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
}

type CardItem struct {
	CocktailId   string   `json:"cocktailId"`
	ItemNumber   int      `json:"itemNumber"`
	SpecialPrice *float64 `json:"specialPrice,omitempty"`
}

type CardGroup struct {
	Name        string     `json:"name"`
	GroupNumber int        `json:"groupNumber"`
	ItemPrice   *float64   `json:"itemPrice,omitempty"`
	Items       []CardItem `json:"items"`
}

type Card struct {
	Id         string      `json:"id"`
	Name       string      `json:"name"`
	Date       *time.Time  `json:"date,omitempty"`
	Groups     []CardGroup `json:"groups"`
	CreateTime time.Time   `json:"createTime"`
	UpdateTime time.Time   `json:"updateTime"`
}

type CardInput struct {
	Name   *string      `json:"name"`
	Date   *time.Time   `json:"date"`
	Groups *[]CardGroup `json:"groups"`
}

type Audit struct {
	Id           string    `json:"id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resourceType"`
	ResourceId   string    `json:"resourceId"`
	Message      string    `json:"message"`
	CreateTime   time.Time `json:"createTime"`
}

// Page is the list envelope; NextToken is opaque.
type Page[T any] struct {
	Items     []T    `json:"items"`
	NextToken []byte `json:"nextToken"`
}
