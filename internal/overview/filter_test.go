package overview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"philcali.me/barmanager/internal/api"
)

func names(cocktails []api.Cocktail) []string {
	out := make([]string, len(cocktails))
	for i, cocktail := range cocktails {
		out[i] = cocktail.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	cocktails := []api.Cocktail{
		{Id: "1", Name: "Mojito", Tags: []string{"Rum", "Summer"}},
		{Id: "2", Name: "daiquiri", Tags: []string{"rum"}},
		{Id: "3", Name: "Negroni", Tags: []string{"Bitter"}},
		{Id: "4", Name: "Americano"},
	}

	t.Run("BlankMatchesAllSortedByName", func(t *testing.T) {
		assert.Equal(t, []string{"Americano", "daiquiri", "Mojito", "Negroni"}, names(Filter(cocktails, "  ")))
	})

	t.Run("MatchesNameCaseInsensitive", func(t *testing.T) {
		assert.Equal(t, []string{"Negroni"}, names(Filter(cocktails, "GRON")))
	})

	t.Run("MatchesTags", func(t *testing.T) {
		assert.Equal(t, []string{"daiquiri", "Mojito"}, names(Filter(cocktails, "rum")))
	})

	t.Run("NoMatch", func(t *testing.T) {
		assert.Empty(t, Filter(cocktails, "tiki"))
	})

	t.Run("InputUntouched", func(t *testing.T) {
		Filter(cocktails, "")
		assert.Equal(t, "Mojito", cocktails[0].Name)
	})
}
