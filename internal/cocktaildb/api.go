package cocktaildb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"philcali.me/barmanager/internal/provider"
)

const DefaultBaseURL = "https://www.thecocktaildb.com"

type CocktailAPI struct {
	BaseURL string
	Version string
	Token   string
	Client  *http.Client
}

func (c *CocktailAPI) request(ctx context.Context, resource string, params url.Values) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/api/json/%s/%s/%s.php", c.BaseURL, c.Version, c.Token, resource)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cocktaildb %s: %s", resource, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (c *CocktailAPI) query(ctx context.Context, resource string, params url.Values) ([]provider.ExternalCocktail, error) {
	body, err := c.request(ctx, resource, params)
	if err != nil {
		return nil, err
	}
	var raw struct {
		Drinks json.RawMessage `json:"drinks"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("cocktaildb %s: %w", resource, err)
	}
	// No results come back as null or as a plain string.
	if !bytes.HasPrefix(bytes.TrimSpace(raw.Drinks), []byte("[")) {
		return []provider.ExternalCocktail{}, nil
	}
	var drinks []Drink
	if err := json.Unmarshal(raw.Drinks, &drinks); err != nil {
		return nil, fmt.Errorf("cocktaildb %s: %w", resource, err)
	}
	cocktails := make([]provider.ExternalCocktail, len(drinks))
	for i, drink := range drinks {
		cocktails[i] = ToCocktail(drink)
	}
	return cocktails, nil
}

func (c *CocktailAPI) Random(ctx context.Context) ([]provider.ExternalCocktail, error) {
	return c.query(ctx, "random", nil)
}

func (c *CocktailAPI) Lookup(ctx context.Context, id string) ([]provider.ExternalCocktail, error) {
	return c.query(ctx, "lookup", url.Values{"i": {id}})
}

func (c *CocktailAPI) Search(ctx context.Context, text string) ([]provider.ExternalCocktail, error) {
	return c.query(ctx, "search", url.Values{"s": {text}})
}

// Filter only returns ids, names and thumbnails.
func (c *CocktailAPI) Filter(ctx context.Context, input provider.FilterInput) ([]provider.ExternalCocktail, error) {
	params := url.Values{}
	if input.Category != nil {
		params.Set("c", *input.Category)
	}
	if input.Glass != nil {
		params.Set("g", *input.Glass)
	}
	if input.Ingredient != nil {
		params.Set("i", *input.Ingredient)
	}
	if input.Alcoholic != nil {
		params.Set("a", *input.Alcoholic)
	}
	return c.query(ctx, "filter", params)
}

func NewDefaultCocktailClient() provider.CocktailProvider {
	return &CocktailAPI{
		BaseURL: DefaultBaseURL,
		Version: "v1",
		Token:   "1",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}
