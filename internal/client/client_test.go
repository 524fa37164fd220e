package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"philcali.me/barmanager/internal/api"
)

func TestListing(t *testing.T) {
	var authorization []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = append(authorization, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/glasses":
			fmt.Fprint(w, `[{"id":"g1","name":"Highball"}]`)
		case "/ingredients":
			if r.URL.Query().Get("nextToken") == "" {
				fmt.Fprint(w, `{"items":[{"id":"i1","name":"White Rum","price":10,"volume":100}],"nextToken":"cGFnZTI="}`)
				return
			}
			fmt.Fprint(w, `{"items":[{"id":"i2","name":"Lime Juice","price":4,"volume":20}]}`)
		case "/garnishes":
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message":"missing scope garnishes.read"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()
	c := New(server.URL+"/", "w1.secret", time.Second, nil)

	t.Run("Array", func(t *testing.T) {
		glasses, err := c.ListGlasses(context.TODO())
		require.NoError(t, err)
		require.Len(t, glasses, 1)
		assert.Equal(t, "Highball", glasses[0].Name)
	})

	t.Run("EnvelopeFollowsNextToken", func(t *testing.T) {
		ingredients, err := c.ListIngredients(context.TODO())
		require.NoError(t, err)
		require.Len(t, ingredients, 2)
		assert.Equal(t, "i1", ingredients[0].Id)
		assert.Equal(t, 20.0, ingredients[1].Volume)
	})

	t.Run("StatusError", func(t *testing.T) {
		_, err := c.ListGarnishes(context.TODO())
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
		assert.Equal(t, "Forbidden", statusErr.StatusText())
		assert.Equal(t, "403 Forbidden: missing scope garnishes.read", err.Error())
	})

	for _, header := range authorization {
		assert.Equal(t, "Bearer w1.secret", header)
	}
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Bad Gateway", (&StatusError{StatusCode: 502}).StatusText())
	assert.Equal(t, "500 Internal Server Error", (&StatusError{StatusCode: 500, Status: "500 Internal Server Error"}).Error())
}

func TestSaveWithoutJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, "Created")
		case http.MethodPut:
			w.WriteHeader(http.StatusNoContent)
		default:
			fmt.Fprint(w, "ok")
		}
	}))
	defer server.Close()
	c := New(server.URL, "", time.Second, nil)

	t.Run("CreatedWithPlainText", func(t *testing.T) {
		cocktail, err := c.SaveCocktail(context.TODO(), api.CocktailInput{Name: aws.String("Mojito")})
		require.NoError(t, err)
		assert.Equal(t, "Mojito", cocktail.Name)
		assert.Empty(t, cocktail.Id)
	})

	t.Run("NoContent", func(t *testing.T) {
		garnish, err := c.SaveGarnish(context.TODO(), api.GarnishInput{Id: aws.String("m1"), Name: aws.String("Mint")})
		require.NoError(t, err)
		assert.Equal(t, "m1", garnish.Id)
	})

	t.Run("ReadsStillFail", func(t *testing.T) {
		_, err := c.GetCocktail(context.TODO(), "c1")
		require.Error(t, err)
	})
}
