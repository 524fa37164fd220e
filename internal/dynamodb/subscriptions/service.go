package subscriptions

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/dynamodb/services"
	"philcali.me/barmanager/internal/dynamodb/token"
)

func NewSubscriptionService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.SubscriptionRepository {
	return &services.RepositoryDynamoDBService[data.SubscriptionDTO, data.SubscriptionInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "Subscription",
		Shim: func(pk, sk string) data.SubscriptionDTO {
			return data.SubscriptionDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.SubscriptionInputDTO, now time.Time, pk, sk string) data.SubscriptionDTO {
			created := data.SubscriptionDTO{
				PK:         pk,
				SK:         sk,
				CreateTime: now,
				UpdateTime: now,
			}
			if input.Endpoint != nil {
				created.Endpoint = *input.Endpoint
			}
			if input.Protocol != nil {
				created.Protocol = *input.Protocol
			}
			if input.SubscriberArn != nil {
				created.SubscriberArn = *input.SubscriberArn
			}
			return created
		},
	}
}
