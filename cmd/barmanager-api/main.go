package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
	"philcali.me/barmanager/internal/config"
	apiTokenData "philcali.me/barmanager/internal/dynamodb/apitokens"
	auditData "philcali.me/barmanager/internal/dynamodb/audits"
	cardData "philcali.me/barmanager/internal/dynamodb/cards"
	cocktailData "philcali.me/barmanager/internal/dynamodb/cocktails"
	garnishData "philcali.me/barmanager/internal/dynamodb/garnishes"
	glassData "philcali.me/barmanager/internal/dynamodb/glasses"
	ingredientData "philcali.me/barmanager/internal/dynamodb/ingredients"
	subscriberData "philcali.me/barmanager/internal/dynamodb/subscriptions"
	"philcali.me/barmanager/internal/dynamodb/token"
	"philcali.me/barmanager/internal/logging"
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
	"philcali.me/barmanager/internal/sns/services"
)

type App struct {
	Router *routes.Router
}

func NewApp(ctx context.Context) (*App, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateServer(); err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, err
	}
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := dynamodb.NewFromConfig(awsCfg)
	snsClient := sns.NewFromConfig(awsCfg)
	marshaler := token.NewGCM([]byte(cfg.TokenSecret))
	tableName := cfg.TableName

	ingredientRepository := ingredientData.NewIngredientService(tableName, client, marshaler)
	glassRepository := glassData.NewGlassService(tableName, client, marshaler)
	router := routes.NewRouter(
		cocktails.NewRoute(cocktailData.NewCocktailService(tableName, client, marshaler)),
		ingredients.NewRoute(ingredientRepository),
		glasses.NewRoute(glassRepository),
		garnishes.NewRoute(garnishData.NewGarnishService(tableName, client, marshaler)),
		cards.NewRoute(cardData.NewCardService(tableName, client, marshaler)),
		audits.NewRoute(auditData.NewAuditService(tableName, client, marshaler)),
		apitokens.NewRoute(apiTokenData.NewApiTokenService(tableName, client, marshaler)),
		subscriptions.NewRoute(
			subscriberData.NewSubscriptionService(tableName, client, marshaler),
			&services.NotificationSNSService{
				Sns:      snsClient,
				TopicArn: cfg.TopicArn,
				Logger:   logger,
			},
		),
		external.NewExternalService(ingredientRepository, glassRepository),
	)
	router.Logger = logger
	logger.Info("Cached routes", zap.Int("routes", len(router.Routes)))
	return &App{
		Router: router,
	}, nil
}

func (app *App) HandleRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return app.Router.Invoke(request, ctx), nil
}

func main() {
	app, err := NewApp(context.Background())
	if err != nil {
		panic(fmt.Sprintf("Failed to start: %s", err))
	}
	lambda.Start(app.HandleRequest)
}
