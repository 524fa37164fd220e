package routes_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/data"
	tokenData "philcali.me/barmanager/internal/dynamodb/apitokens"
	auditData "philcali.me/barmanager/internal/dynamodb/audits"
	cardData "philcali.me/barmanager/internal/dynamodb/cards"
	cocktailData "philcali.me/barmanager/internal/dynamodb/cocktails"
	garnishData "philcali.me/barmanager/internal/dynamodb/garnishes"
	glassData "philcali.me/barmanager/internal/dynamodb/glasses"
	ingredientData "philcali.me/barmanager/internal/dynamodb/ingredients"
	"philcali.me/barmanager/internal/dynamodb/services"
	subscriberData "philcali.me/barmanager/internal/dynamodb/subscriptions"
	"philcali.me/barmanager/internal/dynamodb/token"
	"philcali.me/barmanager/internal/notifications"
	"philcali.me/barmanager/internal/routes"
	"philcali.me/barmanager/internal/routes/apitokens"
	"philcali.me/barmanager/internal/routes/audits"
	"philcali.me/barmanager/internal/routes/cards"
	"philcali.me/barmanager/internal/routes/cocktails"
	"philcali.me/barmanager/internal/routes/external"
	"philcali.me/barmanager/internal/routes/garnishes"
	"philcali.me/barmanager/internal/routes/glasses"
	"philcali.me/barmanager/internal/routes/ingredients"
	"philcali.me/barmanager/internal/routes/subscriptions"
	"philcali.me/barmanager/internal/test"
)

const pagingSecret = "0123456789abcdef0123456789abcdef"

type Repositories struct {
	Cocktails     data.CocktailRepository
	Cards         data.CardRepository
	Tokens        data.ApiTokenRepository
	Subscriptions data.SubscriptionRepository
	Audits        data.AuditRepository
	Ingredients   data.IngredientRepository
	Glasses       data.GlassRepository
	Garnishes     data.GarnishRepository
}

func LocalRepositories(t *testing.T) Repositories {
	localServer := test.StartLocalServer(test.LOCAL_DDB_PORT+1, t)
	client, err := localServer.CreateLocalClient()
	if err != nil {
		t.Fatalf("Failed to create DDB client: %s", err)
	}
	tableName, err := test.CreateTable(client)
	if err != nil {
		t.Fatalf("Failed to create DDB table: %s", err)
	}
	t.Logf("Successfully created local resources running on %d", localServer.Port)
	marshaler := token.NewGCM([]byte(pagingSecret))
	return Repositories{
		Cocktails:     cocktailData.NewCocktailService(tableName, client, marshaler),
		Cards:         cardData.NewCardService(tableName, client, marshaler),
		Tokens:        tokenData.NewApiTokenService(tableName, client, marshaler),
		Subscriptions: subscriberData.NewSubscriptionService(tableName, client, marshaler),
		Audits:        auditData.NewAuditService(tableName, client, marshaler),
		Ingredients:   ingredientData.NewIngredientService(tableName, client, marshaler),
		Glasses:       glassData.NewGlassService(tableName, client, marshaler),
		Garnishes:     garnishData.NewGarnishService(tableName, client, marshaler),
	}
}

func onCreate[T interface{}, I interface{}](repository any) func(I, time.Time, string, string) T {
	return repository.(*services.RepositoryDynamoDBService[T, I]).OnCreate
}

func MemoryRepositories(t *testing.T) Repositories {
	createCocktail := onCreate[data.CocktailDTO, data.CocktailInputDTO](cocktailData.NewCocktailService("", nil, nil))
	createCard := onCreate[data.CardDTO, data.CardInputDTO](cardData.NewCardService("", nil, nil))
	clearBlank := func(value *string) *string {
		if value != nil && *value == "" {
			return nil
		}
		return value
	}
	tokenService := tokenData.NewApiTokenService("", nil, nil).(*services.RepositoryDynamoDBService[data.ApiTokenDTO, data.ApiTokenInputDTO])
	tokens := test.NewMemoryRepository("ApiToken", tokenService.OnCreate, func(existing data.ApiTokenDTO, input data.ApiTokenInputDTO, now time.Time) data.ApiTokenDTO {
		if input.Name != nil {
			existing.Name = *input.Name
		}
		if input.ExpiresIn != nil {
			existing.ExpiresIn = input.ExpiresIn
		}
		existing.UpdateTime = now
		return existing
	})
	tokens.NewId = tokenService.NewId
	return Repositories{
		Cocktails: test.NewMemoryRepository("Cocktail", createCocktail, func(existing data.CocktailDTO, input data.CocktailInputDTO, now time.Time) data.CocktailDTO {
			replaced := createCocktail(input, now, existing.PK, existing.SK)
			replaced.Description = clearBlank(replaced.Description)
			replaced.GarnishId = clearBlank(replaced.GarnishId)
			replaced.Image = clearBlank(replaced.Image)
			replaced.CreateTime = existing.CreateTime
			return replaced
		}),
		Cards: test.NewMemoryRepository("Card", createCard, func(existing data.CardDTO, input data.CardInputDTO, now time.Time) data.CardDTO {
			if input.Name != nil {
				existing.Name = *input.Name
			}
			if input.Date != nil {
				existing.Date = input.Date
			}
			if input.Groups != nil {
				existing.Groups = *input.Groups
			}
			existing.UpdateTime = now
			return existing
		}),
		Tokens: tokens,
		Subscriptions: test.NewMemoryRepository(
			"Subscription",
			onCreate[data.SubscriptionDTO, data.SubscriptionInputDTO](subscriberData.NewSubscriptionService("", nil, nil)),
			func(existing data.SubscriptionDTO, _ data.SubscriptionInputDTO, _ time.Time) data.SubscriptionDTO {
				return existing
			}),
		Audits: test.NewMemoryRepository(
			"Audit",
			onCreate[data.AuditDTO, data.AuditInputDTO](auditData.NewAuditService("", nil, nil)),
			func(existing data.AuditDTO, _ data.AuditInputDTO, _ time.Time) data.AuditDTO {
				return existing
			}),
		Ingredients: test.NewMemoryRepository(
			"Ingredient",
			onCreate[data.IngredientDTO, data.IngredientInputDTO](ingredientData.NewIngredientService("", nil, nil)),
			func(existing data.IngredientDTO, input data.IngredientInputDTO, now time.Time) data.IngredientDTO {
				if input.Price != nil {
					existing.Price = *input.Price
				}
				existing.UpdateTime = now
				return existing
			}),
		Glasses: test.NewMemoryRepository(
			"Glass",
			onCreate[data.GlassDTO, data.GlassInputDTO](glassData.NewGlassService("", nil, nil)),
			func(existing data.GlassDTO, _ data.GlassInputDTO, _ time.Time) data.GlassDTO {
				return existing
			}),
		Garnishes: test.NewMemoryRepository(
			"Garnish",
			onCreate[data.GarnishDTO, data.GarnishInputDTO](garnishData.NewGarnishService("", nil, nil)),
			func(existing data.GarnishDTO, _ data.GarnishInputDTO, _ time.Time) data.GarnishDTO {
				return existing
			}),
	}
}

type LocalNotifications struct {
	mutex sync.Mutex
	Cache map[string]notifications.SubscribeInput
}

func (ln *LocalNotifications) Subscribe(_ context.Context, input notifications.SubscribeInput) (*notifications.SubscribeOutput, error) {
	ln.mutex.Lock()
	defer ln.mutex.Unlock()
	id := uuid.NewString()
	ln.Cache[id] = input
	return &notifications.SubscribeOutput{
		SubscriberId: id,
	}, nil
}

func (ln *LocalNotifications) Unsubscribe(_ context.Context, subscriberId string) error {
	ln.mutex.Lock()
	defer ln.mutex.Unlock()
	delete(ln.Cache, subscriberId)
	return nil
}

type LocalServer struct {
	Router        *routes.Router
	Repositories  Repositories
	Notifications *LocalNotifications
	Username      string
	// Grant replaces the JWT claims with a lambda authorizer context when set.
	Grant map[string]interface{}
}

func NewLocalServer(repositories Repositories) *LocalServer {
	localNotifications := &LocalNotifications{
		Cache: make(map[string]notifications.SubscribeInput),
	}
	return &LocalServer{
		Router: routes.NewRouter(
			cocktails.NewRoute(repositories.Cocktails),
			cards.NewRoute(repositories.Cards),
			apitokens.NewRoute(repositories.Tokens),
			subscriptions.NewRoute(repositories.Subscriptions, localNotifications),
			audits.NewRoute(repositories.Audits),
			ingredients.NewRoute(repositories.Ingredients),
			glasses.NewRoute(repositories.Glasses),
			garnishes.NewRoute(repositories.Garnishes),
			&external.ExternalService{
				Service:     &LocalProvider{},
				Ingredients: repositories.Ingredients,
				Glasses:     repositories.Glasses,
			},
		),
		Repositories:  repositories,
		Notifications: localNotifications,
		Username:      "nobody",
	}
}

func (ls *LocalServer) Request(t *testing.T, method string, path string, body []byte, out any, params map[string]string) events.APIGatewayV2HTTPResponse {
	request := events.APIGatewayV2HTTPRequest{
		RawPath:               path,
		QueryStringParameters: params,
		Body:                  string(body),
	}
	request.RequestContext.HTTP.Method = method
	request.RequestContext.HTTP.Path = path
	if ls.Grant != nil {
		request.RequestContext.Authorizer = &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
			Lambda: ls.Grant,
		}
	} else if ls.Username != "" {
		request.RequestContext.Authorizer = &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
			JWT: &events.APIGatewayV2HTTPRequestContextAuthorizerJWTDescription{
				Claims: map[string]string{
					"username": ls.Username,
				},
			},
		}
	}
	response := ls.Router.Invoke(request, context.TODO())
	if out != nil && response.StatusCode < 300 {
		if err := json.Unmarshal([]byte(response.Body), out); err != nil {
			t.Fatalf("Failed to deserialize payload for %s %s: %s", method, path, response.Body)
		}
	}
	return response
}

func (ls *LocalServer) Get(t *testing.T, out any, path string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "GET", path, nil, out, nil)
}

func (ls *LocalServer) GetQuery(t *testing.T, out any, path string, params map[string]string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "GET", path, nil, out, params)
}

func (ls *LocalServer) send(t *testing.T, method string, out any, path string, body any) events.APIGatewayV2HTTPResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to serialize input: %s", err)
	}
	return ls.Request(t, method, path, payload, out, nil)
}

func (ls *LocalServer) Post(t *testing.T, out any, path string, body any) events.APIGatewayV2HTTPResponse {
	return ls.send(t, "POST", out, path, body)
}

func (ls *LocalServer) Put(t *testing.T, out any, path string, body any) events.APIGatewayV2HTTPResponse {
	return ls.send(t, "PUT", out, path, body)
}

func (ls *LocalServer) Delete(t *testing.T, path string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "DELETE", path, nil, nil, nil)
}

func errorFields(t *testing.T, response events.APIGatewayV2HTTPResponse) map[string]string {
	var body struct {
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	if err := json.Unmarshal([]byte(response.Body), &body); err != nil {
		t.Fatalf("Failed to read error body %s: %s", response.Body, err)
	}
	return body.Fields
}

func expectStatus(t *testing.T, response events.APIGatewayV2HTTPResponse, statusCode int) {
	t.Helper()
	if response.StatusCode != statusCode {
		t.Fatalf("Expected status %d, got %d: %s", statusCode, response.StatusCode, response.Body)
	}
}

var pixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
}

func mojito() api.CocktailInput {
	return api.CocktailInput{
		Name:         aws.String("Mojito"),
		Price:        aws.Float64(8.5),
		GlassId:      aws.String("g1"),
		GlassWithIce: aws.String("Crushed"),
		Tags:         &[]string{"classic"},
		Image:        aws.String("data:image/png;base64," + base64.StdEncoding.EncodeToString(pixel)),
		Description:  aws.String("Muddle the mint gently."),
		Steps: &[]api.CocktailStep{
			{
				StepNumber: 7,
				Mixing:     false,
				Tool:       "SINGLE_STRAIN",
			},
			{
				StepNumber: 2,
				Mixing:     true,
				Tool:       "MUDDLE",
				Ingredients: []api.CocktailIngredient{
					{IngredientId: "i2", IngredientNumber: 4, Amount: 2, Unit: "CL"},
					{IngredientId: "i1", IngredientNumber: 1, Amount: 5, Unit: "CL"},
				},
			},
		},
	}
}

func CocktailWorkflow(t *testing.T, server *LocalServer) {
	base := "/workspaces/w1/cocktails"

	invalid := server.Post(t, nil, base, api.CocktailInput{Steps: &[]api.CocktailStep{
		{Mixing: true, Tool: "SHAKE", Ingredients: []api.CocktailIngredient{{}}},
		{Mixing: false, Tool: "FLOAT", Ingredients: []api.CocktailIngredient{{}}},
	}})
	expectStatus(t, invalid, 422)
	fields := errorFields(t, invalid)
	expected := []string{
		"glassId",
		"glassWithIce",
		"name",
		"price",
		"steps.0.ingredients.0.amount",
		"steps.0.ingredients.0.ingredientId",
		"steps.0.ingredients.0.unit",
	}
	keys := maps.Keys(fields)
	slices.Sort(keys)
	if !slices.Equal(keys, expected) {
		t.Fatalf("Expected %v, got %v", expected, fields)
	}

	noLines := mojito()
	(*noLines.Steps)[1].Ingredients = nil
	empty := server.Post(t, nil, base, noLines)
	expectStatus(t, empty, 422)
	if errorFields(t, empty)["steps.0.ingredients"] != "Required" {
		t.Fatalf("Expected a mixing step without lines to be rejected: %s", empty.Body)
	}

	withId := mojito()
	withId.Id = aws.String("mine")
	expectStatus(t, server.Post(t, nil, base, withId), 400)

	var created api.Cocktail
	expectStatus(t, server.Post(t, &created, base, mojito()), 200)
	if created.Id == "" {
		t.Fatalf("Expected an id on %v", created)
	}
	if created.Steps[0].StepNumber != 0 || created.Steps[0].Tool != "MUDDLE" || created.Steps[1].StepNumber != 1 {
		t.Fatalf("Expected steps renumbered by their order, got %v", created.Steps)
	}
	lines := created.Steps[0].Ingredients
	if lines[0].IngredientId != "i1" || lines[0].IngredientNumber != 0 || lines[1].IngredientNumber != 1 || lines[0].Id == "" {
		t.Fatalf("Expected lines renumbered by their order, got %v", lines)
	}

	path := fmt.Sprintf("%s/%s", base, created.Id)
	var stripped api.Cocktail
	expectStatus(t, server.GetQuery(t, &stripped, path, map[string]string{"stripFields": "image"}), 200)
	if stripped.Image != nil || stripped.Name != "Mojito" {
		t.Fatalf("Expected the image stripped, got %v", stripped)
	}

	image := server.Get(t, nil, path+"/image")
	expectStatus(t, image, 200)
	if image.Headers["Content-Type"] != "image/png" || !image.IsBase64Encoded {
		t.Fatalf("Unexpected image response headers %v", image.Headers)
	}
	if content, _ := base64.StdEncoding.DecodeString(image.Body); string(content) != string(pixel) {
		t.Fatalf("Image content does not round trip")
	}

	replacement := mojito()
	replacement.Id = aws.String(created.Id)
	replacement.Name = aws.String("Virgin Mojito")
	replacement.Description = nil
	replacement.Image = nil
	expectStatus(t, server.Put(t, nil, base, mojito()), 400)
	var updated api.Cocktail
	expectStatus(t, server.Put(t, &updated, base, replacement), 200)
	if updated.Id != created.Id || updated.Name != "Virgin Mojito" || updated.Description != nil {
		t.Fatalf("Expected a full replacement, got %v", updated)
	}
	expectStatus(t, server.Get(t, nil, path+"/image"), 404)

	mismatched := replacement
	mismatched.Id = aws.String("other")
	expectStatus(t, server.Put(t, nil, path, mismatched), 400)

	daiquiri := mojito()
	daiquiri.Name = aws.String("Daiquiri")
	daiquiri.Tags = &[]string{"Sour"}
	expectStatus(t, server.Post(t, nil, base, daiquiri), 200)

	var search data.QueryResults[api.Cocktail]
	expectStatus(t, server.GetQuery(t, &search, base, map[string]string{"search": "sour"}), 200)
	if len(search.Items) != 1 || search.Items[0].Name != "Daiquiri" {
		t.Fatalf("Expected only the Daiquiri, got %v", search.Items)
	}
	var everything data.QueryResults[api.Cocktail]
	expectStatus(t, server.GetQuery(t, &everything, base, map[string]string{"search": "", "stripFields": "image"}), 200)
	names := make([]string, 0, len(everything.Items))
	for _, item := range everything.Items {
		names = append(names, item.Name)
	}
	if !slices.Equal(names, []string{"Daiquiri", "Virgin Mojito"}) {
		t.Fatalf("Expected every cocktail sorted by name, got %v", names)
	}
	var acrossPages data.QueryResults[api.Cocktail]
	expectStatus(t, server.GetQuery(t, &acrossPages, base, map[string]string{"search": "", "limit": "1"}), 200)
	if len(acrossPages.Items) != 2 || acrossPages.Items[0].Name != "Daiquiri" || len(acrossPages.NextToken) != 0 {
		t.Fatalf("Expected a search to read every page, got %v", acrossPages)
	}

	var other data.QueryResults[api.Cocktail]
	expectStatus(t, server.Get(t, &other, "/workspaces/w2/cocktails"), 200)
	if len(other.Items) != 0 {
		t.Fatalf("Expected workspaces to be isolated, got %v", other.Items)
	}

	expectStatus(t, server.Delete(t, path), 204)
	expectStatus(t, server.Get(t, nil, path), 404)
}

func CardWorkflow(t *testing.T, server *LocalServer) {
	base := "/workspaces/w1/cards"
	invalid := server.Post(t, nil, base, api.CardInput{
		Name:   aws.String("Summer"),
		Groups: &[]api.CardGroup{{Items: []api.CardItem{{CocktailId: "c1", SpecialPrice: aws.Float64(-1)}}}},
	})
	expectStatus(t, invalid, 422)
	fields := errorFields(t, invalid)
	expected := []string{"groups.0.items.0.specialPrice", "groups.0.name"}
	keys := maps.Keys(fields)
	slices.Sort(keys)
	if !slices.Equal(keys, expected) {
		t.Fatalf("Expected %v, got %v", expected, fields)
	}

	var created api.Card
	expectStatus(t, server.Post(t, &created, base, api.CardInput{
		Name: aws.String("Summer"),
		Groups: &[]api.CardGroup{
			{Name: "Long drinks", GroupNumber: 5, Items: []api.CardItem{
				{CocktailId: "c2", ItemNumber: 9},
				{CocktailId: "c1", ItemNumber: 3},
			}},
			{Name: "Shots", GroupNumber: 1, ItemPrice: aws.Float64(3)},
		},
	}), 200)
	if created.Groups[0].Name != "Shots" || created.Groups[1].GroupNumber != 1 {
		t.Fatalf("Expected groups in order, got %v", created.Groups)
	}
	items := created.Groups[1].Items
	if items[0].CocktailId != "c1" || items[0].ItemNumber != 0 || items[1].ItemNumber != 1 {
		t.Fatalf("Expected items in order, got %v", items)
	}

	path := fmt.Sprintf("%s/%s", base, created.Id)
	var renamed api.Card
	expectStatus(t, server.Put(t, &renamed, path, api.CardInput{Name: aws.String("Late summer")}), 200)
	if renamed.Name != "Late summer" || len(renamed.Groups) != 2 {
		t.Fatalf("Expected a rename keeping the groups, got %v", renamed)
	}
	expectStatus(t, server.Delete(t, path), 204)
	expectStatus(t, server.Get(t, nil, path), 404)
}

func TokenWorkflow(t *testing.T, server *LocalServer) {
	base := "/workspaces/w1/tokens"
	invalid := server.Post(t, nil, base, apitokens.ApiTokenInput{Scopes: []data.Scope{"bogus"}})
	expectStatus(t, invalid, 422)
	fields := errorFields(t, invalid)
	if fields["name"] != "Required" || fields["scopes.0"] != "Invalid" {
		t.Fatalf("Unexpected fields %v", fields)
	}

	var created apitokens.ApiToken
	expectStatus(t, server.Post(t, &created, base, apitokens.ApiTokenInput{
		Name:   aws.String("barkeeper"),
		Scopes: []data.Scope{data.COCKTAILS_READ, data.CARDS_WRITE},
	}), 200)
	workspaceId, secret, ok := apitokens.ParseTokenValue(created.Value)
	if !ok || workspaceId != "w1" || len(secret) != 64 {
		t.Fatalf("Unexpected token value %s", created.Value)
	}
	stored, err := server.Repositories.Tokens.Get(context.TODO(), "w1", secret)
	if err != nil {
		t.Fatalf("Expected the token to be stored under its secret: %s", err)
	}
	if stored.AccountId != "nobody" {
		t.Fatalf("Expected the creating account, got %s", stored.AccountId)
	}

	var renamed apitokens.ApiToken
	expectStatus(t, server.Put(t, &renamed, base+"/"+secret, apitokens.ApiTokenInput{Name: aws.String("cli")}), 200)
	if renamed.Name != "cli" || len(renamed.Scopes) != 2 {
		t.Fatalf("Expected a rename keeping the scopes, got %v", renamed)
	}
	expectStatus(t, server.Delete(t, base+"/"+secret), 204)
	expectStatus(t, server.Get(t, nil, base+"/"+secret), 404)
}

func SubscriptionWorkflow(t *testing.T, server *LocalServer) {
	base := "/workspaces/w1/subscriptions"
	invalid := server.Post(t, nil, base, subscriptions.SubscriptionInput{
		Endpoint: aws.String("bar@example.com"),
		Protocol: aws.String("pigeon"),
	})
	expectStatus(t, invalid, 422)
	if errorFields(t, invalid)["protocol"] != "Invalid" {
		t.Fatalf("Expected the protocol to be rejected: %s", invalid.Body)
	}

	var created subscriptions.Subscription
	expectStatus(t, server.Post(t, &created, base, subscriptions.SubscriptionInput{
		Endpoint: aws.String("bar@example.com"),
		Protocol: aws.String("email"),
	}), 200)
	if len(server.Notifications.Cache) != 1 {
		t.Fatalf("Expected one subscriber, got %v", server.Notifications.Cache)
	}
	for _, input := range server.Notifications.Cache {
		if input.WorkspaceId != "w1" {
			t.Fatalf("Expected the subscription scoped to w1, got %v", input)
		}
	}
	expectStatus(t, server.Delete(t, base+"/"+created.Id), 204)
	if len(server.Notifications.Cache) != 0 {
		t.Fatalf("Expected the subscriber to be removed, got %v", server.Notifications.Cache)
	}
	expectStatus(t, server.Delete(t, base+"/"+created.Id), 204)
}

func AuditWorkflow(t *testing.T, server *LocalServer) {
	for i := 0; i < 3; i++ {
		_, err := server.Repositories.Audits.Create(context.TODO(), "w1", data.AuditInputDTO{
			Action:       aws.String("CREATED"),
			ResourceType: aws.String("Cocktail"),
			ResourceId:   aws.String(fmt.Sprintf("c%d", i)),
			Message:      aws.String(fmt.Sprintf("Cocktail c%d (Mojito) was created", i)),
		})
		if err != nil {
			t.Fatalf("Failed to create audit: %s", err)
		}
	}
	var page data.QueryResults[api.Audit]
	expectStatus(t, server.GetQuery(t, &page, "/workspaces/w1/audits", map[string]string{"limit": "2"}), 200)
	if len(page.Items) != 2 || len(page.NextToken) == 0 {
		t.Fatalf("Expected a first page of two, got %v", page)
	}
	var rest data.QueryResults[api.Audit]
	expectStatus(t, server.GetQuery(t, &rest, "/workspaces/w1/audits", map[string]string{
		"limit":     "2",
		"nextToken": string(page.NextToken),
	}), 200)
	if len(rest.Items) != 1 {
		t.Fatalf("Expected the last audit, got %v", rest)
	}
	expectStatus(t, server.Delete(t, "/workspaces/w1/audits/"+rest.Items[0].Id), 204)
}

func AuthorizationWorkflow(t *testing.T, server *LocalServer) {
	options := server.Request(t, "OPTIONS", "/workspaces/w1/cocktails", nil, nil, nil)
	expectStatus(t, options, 200)
	if options.Headers["access-control-allow-origin"] != "*" {
		t.Fatalf("Expected CORS headers, got %v", options.Headers)
	}

	expectStatus(t, server.Get(t, nil, "/workspaces/w1/nothing-here"), 404)

	server.Username = ""
	expectStatus(t, server.Get(t, nil, "/workspaces/w1/cocktails"), 401)
	server.Username = "nobody"

	server.Grant = map[string]interface{}{
		"username":    "barkeeper",
		"workspaceId": "w1",
		"scopes":      []interface{}{string(data.COCKTAILS_READ), string(data.CARDS_WRITE)},
	}
	defer func() { server.Grant = nil }()

	expectStatus(t, server.Get(t, nil, "/workspaces/w1/cocktails"), 200)
	expectStatus(t, server.Post(t, nil, "/workspaces/w1/cocktails", mojito()), 401)
	expectStatus(t, server.Get(t, nil, "/workspaces/w2/cocktails"), 401)
	expectStatus(t, server.Get(t, nil, "/workspaces/w1/cocktailsandmore"), 401)
	expectStatus(t, server.Get(t, nil, "/workspaces/w1/tokens"), 401)

	var card api.Card
	expectStatus(t, server.Post(t, &card, "/workspaces/w1/cards", api.CardInput{Name: aws.String("Bar")}), 200)
	if card.Name != "Bar" {
		t.Fatalf("Unexpected card %v", card)
	}
}

func TestRouter(t *testing.T) {
	backends := map[string]func(*testing.T) Repositories{
		"Memory":        MemoryRepositories,
		"DynamoDBLocal": LocalRepositories,
	}
	workflows := map[string]func(*testing.T, *LocalServer){
		"CocktailWorkflow":      CocktailWorkflow,
		"CardWorkflow":          CardWorkflow,
		"TokenWorkflow":         TokenWorkflow,
		"SubscriptionWorkflow":  SubscriptionWorkflow,
		"AuditWorkflow":         AuditWorkflow,
		"AuthorizationWorkflow": AuthorizationWorkflow,
		"CatalogWorkflow":       CatalogWorkflow,
	}
	names := maps.Keys(workflows)
	slices.Sort(names)
	for backend, repositories := range backends {
		t.Run(backend, func(t *testing.T) {
			server := NewLocalServer(repositories(t))
			for _, name := range names {
				t.Run(name, func(t *testing.T) {
					workflows[name](t, server)
				})
			}
		})
	}
}
