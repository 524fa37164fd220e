package main

import (
	"context"
	"fmt"

	lambdaEvents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
	"philcali.me/barmanager/internal/config"
	"philcali.me/barmanager/internal/dynamodb/audits"
	"philcali.me/barmanager/internal/dynamodb/token"
	"philcali.me/barmanager/internal/events"
	"philcali.me/barmanager/internal/logging"
	"philcali.me/barmanager/internal/notifications"
	"philcali.me/barmanager/internal/sns/services"
)

type App struct {
	Handlers []events.EventFilter
	Logger   *zap.Logger
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
	marshaler := token.NewGCM([]byte(cfg.TokenSecret))
	auditData := audits.NewAuditService(cfg.TableName, client, marshaler)

	notifier := notifications.Fanout{notifications.Log{Logger: logger}}
	if cfg.TopicArn != "" {
		notifier = append(notifier, &services.NotificationSNSService{
			Sns:      sns.NewFromConfig(awsCfg),
			TopicArn: cfg.TopicArn,
			Logger:   logger,
		})
	}
	return &App{
		Handlers: []events.EventFilter{
			events.DefaultAuditHandler(auditData),
			events.DefaultPriceChangeHandler(notifier),
		},
		Logger: logger,
	}, nil
}

// HandleRequest never fails the batch; failed records are only logged.
func (app *App) HandleRequest(ctx context.Context, event lambdaEvents.DynamoDBEvent) error {
	failed := events.Dispatch(ctx, app.Logger, app.Handlers, event.Records)
	if failed > 0 {
		app.Logger.Warn("Some records failed",
			zap.Int("failed", failed),
			zap.Int("records", len(event.Records)))
	}
	return nil
}

func main() {
	app, err := NewApp(context.Background())
	if err != nil {
		panic(fmt.Sprintf("Failed to start: %s", err))
	}
	lambda.Start(app.HandleRequest)
}
