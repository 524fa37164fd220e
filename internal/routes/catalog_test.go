package routes_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/provider"
)

type LocalProvider struct{}

var mojitoExternal = provider.ExternalCocktail{
	Id:           "11000",
	Name:         "Mojito",
	Category:     "Cocktail",
	Glass:        "Highball glass",
	Instructions: "Muddle mint leaves with sugar and lime juice.",
	Ingredients: []provider.ExternalIngredient{
		{Name: "rum", Measure: "5 cl", Amount: 5, Unit: "CL"},
		{Name: "Lime juice", Measure: "2 cl", Amount: 2, Unit: "CL"},
		{Name: "Mint", Measure: "2-4"},
	},
}

func (lp *LocalProvider) Random(context.Context) ([]provider.ExternalCocktail, error) {
	return []provider.ExternalCocktail{mojitoExternal}, nil
}

func (lp *LocalProvider) Lookup(_ context.Context, id string) ([]provider.ExternalCocktail, error) {
	if id == mojitoExternal.Id {
		return []provider.ExternalCocktail{mojitoExternal}, nil
	}
	return []provider.ExternalCocktail{}, nil
}

func (lp *LocalProvider) Search(_ context.Context, text string) ([]provider.ExternalCocktail, error) {
	if strings.Contains(strings.ToLower(mojitoExternal.Name), strings.ToLower(text)) {
		return []provider.ExternalCocktail{mojitoExternal}, nil
	}
	return []provider.ExternalCocktail{}, nil
}

func (lp *LocalProvider) Filter(context.Context, provider.FilterInput) ([]provider.ExternalCocktail, error) {
	return []provider.ExternalCocktail{mojitoExternal}, nil
}

func CatalogWorkflow(t *testing.T, server *LocalServer) {
	invalid := server.Post(t, nil, "/workspaces/w1/ingredients", api.IngredientInput{
		Name:   aws.String("White Rum"),
		Price:  aws.Float64(20),
		Volume: aws.Float64(0),
	})
	expectStatus(t, invalid, 422)
	if errorFields(t, invalid)["volume"] == "" {
		t.Fatalf("Expected the volume to be rejected: %s", invalid.Body)
	}

	var rum, lime api.Ingredient
	expectStatus(t, server.Post(t, &rum, "/workspaces/w1/ingredients", api.IngredientInput{
		Name:      aws.String("White Rum"),
		ShortName: aws.String("Rum"),
		Price:     aws.Float64(20),
		Volume:    aws.Float64(70),
	}), 200)
	expectStatus(t, server.Post(t, &lime, "/workspaces/w1/ingredients", api.IngredientInput{
		Name:   aws.String("Lime Juice"),
		Price:  aws.Float64(4),
		Volume: aws.Float64(20),
	}), 200)

	var glass api.Glass
	expectStatus(t, server.Post(t, &glass, "/workspaces/w1/glasses", api.GlassInput{
		Name:    aws.String("Highball glass"),
		Deposit: aws.Float64(1),
	}), 200)

	var garnish api.Garnish
	expectStatus(t, server.Post(t, &garnish, "/workspaces/w1/garnishes", api.GarnishInput{
		Name:  aws.String("Mint"),
		Price: aws.Float64(0),
	}), 200)
	if garnish.Id == "" || garnish.Price != 0 {
		t.Fatalf("Expected a free garnish, got %v", garnish)
	}

	var ingredientPage data.QueryResults[api.Ingredient]
	expectStatus(t, server.Get(t, &ingredientPage, "/workspaces/w1/ingredients"), 200)
	if len(ingredientPage.Items) != 2 {
		t.Fatalf("Expected two ingredients, got %v", ingredientPage.Items)
	}

	expectStatus(t, server.Get(t, nil, "/workspaces/w1/providers/cocktaildb"), 400)
	var found []provider.ExternalCocktail
	expectStatus(t, server.GetQuery(t, &found, "/workspaces/w1/providers/cocktaildb", map[string]string{"search": "moj"}), 200)
	if len(found) != 1 || found[0].Id != "11000" {
		t.Fatalf("Expected the Mojito, got %v", found)
	}

	var imported api.CocktailInput
	expectStatus(t, server.Get(t, &imported, "/workspaces/w1/providers/cocktaildb/11000/import"), 200)
	if aws.ToString(imported.Name) != "Mojito" || aws.ToString(imported.GlassId) != glass.Id || imported.Price != nil {
		t.Fatalf("Unexpected import %v", imported)
	}
	lines := (*imported.Steps)[0].Ingredients
	if len(lines) != 3 || lines[0].IngredientId != rum.Id || lines[1].IngredientId != lime.Id || lines[2].IngredientId != "" {
		t.Fatalf("Expected ingredients resolved by name, got %v", lines)
	}
	expectStatus(t, server.Get(t, nil, "/workspaces/w1/providers/cocktaildb/404/import"), 404)
}
