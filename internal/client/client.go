// Package client talks to the bar manager API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"go.uber.org/zap"
	"philcali.me/barmanager/internal/api"
)

// errUnreadableBody marks a 2xx response whose body is not the expected JSON.
var errUnreadableBody = errors.New("response body is not JSON")

// StatusError is a response outside of the 2xx range.
type StatusError struct {
	StatusCode int
	Status     string
	Message    string
}

// StatusText is the reason phrase without the leading code.
func (e *StatusError) StatusText() string {
	text := strings.TrimSpace(strings.TrimPrefix(e.Status, fmt.Sprint(e.StatusCode)))
	if text == "" {
		text = http.StatusText(e.StatusCode)
	}
	return text
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.StatusText(), e.Message)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.StatusText())
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Logger  *zap.Logger
}

func New(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s %s: %w", method, path, err)
	}
	c.Logger.Debug("API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
		var message struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(payload, &message) == nil {
			statusErr.Message = message.Message
		}
		return statusErr
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decoding %s %s: %w: %w", method, path, errUnreadableBody, err)
	}
	return nil
}

// saved treats an unreadable body on a successful write as success; the
// record is stored whatever the body says.
func (c *Client) saved(err error) error {
	if errors.Is(err, errUnreadableBody) {
		c.Logger.Debug("Saved without a readable response", zap.Error(err))
		return nil
	}
	return err
}

// decodePage accepts a bare JSON array or the paged envelope.
func decodePage[T any](payload json.RawMessage) (api.Page[T], error) {
	var page api.Page[T]
	trimmed := bytes.TrimSpace(payload)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		err := json.Unmarshal(trimmed, &page.Items)
		return page, err
	}
	err := json.Unmarshal(trimmed, &page)
	return page, err
}

// listAll follows next tokens until the list is exhausted.
func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	items := make([]T, 0)
	query := url.Values{}
	for {
		var payload json.RawMessage
		if err := c.do(ctx, http.MethodGet, path, query, nil, &payload); err != nil {
			return nil, err
		}
		page, err := decodePage[T](payload)
		if err != nil {
			return nil, fmt.Errorf("decoding GET %s: %w", path, err)
		}
		items = append(items, page.Items...)
		if len(page.NextToken) == 0 {
			return items, nil
		}
		query.Set("nextToken", string(page.NextToken))
	}
}

func (c *Client) ListIngredients(ctx context.Context) ([]api.Ingredient, error) {
	return listAll[api.Ingredient](ctx, c, "/ingredients")
}

func (c *Client) ListGlasses(ctx context.Context) ([]api.Glass, error) {
	return listAll[api.Glass](ctx, c, "/glasses")
}

func (c *Client) ListGarnishes(ctx context.Context) ([]api.Garnish, error) {
	return listAll[api.Garnish](ctx, c, "/garnishes")
}

func (c *Client) ListCocktails(ctx context.Context) ([]api.Cocktail, error) {
	return listAll[api.Cocktail](ctx, c, "/cocktails")
}

func (c *Client) GetCocktail(ctx context.Context, id string) (*api.Cocktail, error) {
	var cocktail api.Cocktail
	if err := c.do(ctx, http.MethodGet, "/cocktails/"+url.PathEscape(id), nil, nil, &cocktail); err != nil {
		return nil, err
	}
	return &cocktail, nil
}

// SaveCocktail creates with POST when the input has no id and replaces with
// PUT otherwise; the id travels in the body.
func (c *Client) SaveCocktail(ctx context.Context, input api.CocktailInput) (*api.Cocktail, error) {
	method := http.MethodPost
	if input.Id != nil {
		method = http.MethodPut
	}
	var cocktail api.Cocktail
	if err := c.saved(c.do(ctx, method, "/cocktails", nil, input, &cocktail)); err != nil {
		return nil, err
	}
	if cocktail.Id == "" {
		cocktail = api.Cocktail{Id: aws.ToString(input.Id), Name: aws.ToString(input.Name)}
	}
	return &cocktail, nil
}

func (c *Client) SaveGarnish(ctx context.Context, input api.GarnishInput) (*api.Garnish, error) {
	method := http.MethodPost
	if input.Id != nil {
		method = http.MethodPut
	}
	var garnish api.Garnish
	if err := c.saved(c.do(ctx, method, "/garnishes", nil, input, &garnish)); err != nil {
		return nil, err
	}
	if garnish.Id == "" {
		garnish = api.Garnish{Id: aws.ToString(input.Id), Name: aws.ToString(input.Name)}
	}
	return &garnish, nil
}
