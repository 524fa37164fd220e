package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/client"
)

const mojito = `
name: Mojito
price: 8
glass: Highball
ice: Without
tags: [classic]
steps:
  - mixing: true
    tool: shake
    ingredients:
      - ingredient: White Rum
        amount: 5
        unit: cl
`

const priced = `
name: Priced
price: 3
glass: g1
steps:
  - mixing: true
    ingredients:
      - ingredient: i1
        amount: 5
        unit: CL
      - ingredient: i2
        amount: 10
        unit: CL
  - mixing: false
    tool: DOUBLE_STRAIN
`

type fakeAPI struct {
	received []api.CocktailInput
	methods  []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/ingredients":
		json.NewEncoder(w).Encode([]api.Ingredient{
			{Id: "i1", Name: "White Rum", Price: 10, Volume: 100},
			{Id: "i2", Name: "Lime Juice", Price: 4, Volume: 20},
		})
	case "/glasses":
		json.NewEncoder(w).Encode(api.Page[api.Glass]{Items: []api.Glass{{Id: "g1", Name: "Highball"}}})
	case "/garnishes":
		w.Write([]byte(`[]`))
	case "/cocktails":
		var input api.CocktailInput
		json.NewDecoder(r.Body).Decode(&input)
		f.received = append(f.received, input)
		f.methods = append(f.methods, r.Method)
		json.NewEncoder(w).Encode(api.Cocktail{Id: "c1", Name: *input.Name})
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}
}

func setup(t *testing.T) (*fakeAPI, *cobra.Command, *bytes.Buffer) {
	fake := &fakeAPI{}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	logger = zap.NewNop()
	apiClient = client.New(server.URL, "bar.token", time.Second, logger)
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetContext(context.Background())
	return fake, cmd, out
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSubmitMojito(t *testing.T) {
	fake, cmd, out := setup(t)
	require.NoError(t, runSubmit(cmd, []string{writeFile(t, "mojito.yaml", mojito)}))

	require.Len(t, fake.received, 1)
	assert.Equal(t, http.MethodPost, fake.methods[0])
	input := fake.received[0]
	assert.Nil(t, input.Id)
	assert.Equal(t, "g1", *input.GlassId)
	assert.Equal(t, "Without", *input.GlassWithIce)
	require.Len(t, *input.Steps, 1)
	step := (*input.Steps)[0]
	assert.Equal(t, "SHAKE", step.Tool)
	assert.Equal(t, "i1", step.Ingredients[0].IngredientId)
	assert.Equal(t, "CL", step.Ingredients[0].Unit)
	assert.Contains(t, out.String(), "Saved, continue at /manage/cocktails")
}

func TestValidateReportsEveryField(t *testing.T) {
	_, cmd, out := setup(t)
	err := runValidate(cmd, []string{writeFile(t, "empty.yaml", "steps: []\n")})
	assert.ErrorIs(t, err, errInvalidDraft)
	assert.Contains(t, out.String(), "name: Required")
	assert.Contains(t, out.String(), "price: Required")
	assert.Contains(t, out.String(), "glassId: Required")
}

func TestPrice(t *testing.T) {
	_, cmd, out := setup(t)
	require.NoError(t, runPrice(cmd, []string{writeFile(t, "priced.yaml", priced)}))
	assert.Contains(t, out.String(), "Total: 2.50")
}

func TestCatalog(t *testing.T) {
	_, cmd, out := setup(t)
	require.NoError(t, runCatalog(cmd, nil))
	text := out.String()
	assert.True(t, strings.Index(text, "Lime Juice") < strings.Index(text, "White Rum"), "ingredients are sorted by label")
	assert.Contains(t, text, "Highball")
}

func TestDraftFileRoundTrip(t *testing.T) {
	file := DraftFile{}
	require.NoError(t, yamlDecode(priced, &file))
	draft, err := file.ToDraft(nil, ".")
	require.NoError(t, err)
	require.Len(t, draft.Steps, 2)
	assert.Empty(t, draft.Steps[1].Ingredients)
	assert.Equal(t, 1, draft.Steps[1].StepNumber)
	assert.Equal(t, 1, draft.Steps[0].Ingredients[1].IngredientNumber)

	back := DraftFileFrom(draft, nil)
	assert.Equal(t, "i2", back.Steps[0].Ingredients[1].Ingredient)
	assert.Equal(t, "DOUBLE_STRAIN", back.Steps[1].Tool)
}
