package audits

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/dynamodb/services"
	"philcali.me/barmanager/internal/dynamodb/token"
)

func NewAuditService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.AuditRepository {
	return &services.RepositoryDynamoDBService[data.AuditDTO, data.AuditInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "Audit",
		Shim: func(pk, sk string) data.AuditDTO {
			return data.AuditDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.AuditInputDTO, now time.Time, pk, sk string) data.AuditDTO {
			created := data.AuditDTO{
				PK:         pk,
				SK:         sk,
				ExpiresIn:  input.ExpiresIn,
				CreateTime: now,
				UpdateTime: now,
			}
			if input.ResourceId != nil {
				created.ResourceId = *input.ResourceId
			}
			if input.ResourceType != nil {
				created.ResourceType = *input.ResourceType
			}
			if input.Action != nil {
				created.Action = *input.Action
			}
			if input.Message != nil {
				created.Message = *input.Message
			}
			return created
		},
	}
}
