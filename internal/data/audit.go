package data

import "time"

type AuditDTO struct {
	PK           string    `dynamodbav:"PK"`
	SK           string    `dynamodbav:"SK"`
	ResourceId   string    `dynamodbav:"resourceId"`
	ResourceType string    `dynamodbav:"resourceType"`
	Action       string    `dynamodbav:"action"`
	Message      string    `dynamodbav:"message"`
	ExpiresIn    *int      `dynamodbav:"expiresIn"`
	CreateTime   time.Time `dynamodbav:"createTime"`
	UpdateTime   time.Time `dynamodbav:"updateTime"`
}

type AuditInputDTO struct {
	ResourceId   *string `dynamodbav:"resourceId"`
	ResourceType *string `dynamodbav:"resourceType"`
	Action       *string `dynamodbav:"action"`
	Message      *string `dynamodbav:"message"`
	ExpiresIn    *int    `dynamodbav:"expiresIn"`
}

type AuditRepository interface {
	Repository[AuditDTO, AuditInputDTO]
}
