package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"philcali.me/barmanager/internal/data"
)

// Audit entries expire after five years.
const EXPIRY_LOG = 5 * 365 * 24 * time.Hour

type AuditMessageFormat func(record events.DynamoDBEventRecord) *string

func _getRecordImage(record events.DynamoDBEventRecord) map[string]events.DynamoDBAttributeValue {
	if record.Change.NewImage != nil {
		return record.Change.NewImage
	} else {
		return record.Change.OldImage
	}
}

func _stringAttribute(image map[string]events.DynamoDBAttributeValue, name string) string {
	value, ok := image[name]
	if !ok || value.DataType() != events.DataTypeString {
		return ""
	}
	return value.String()
}

func _action(record events.DynamoDBEventRecord) string {
	switch record.EventName {
	case "INSERT":
		return "CREATED"
	case "MODIFY":
		return "UPDATED"
	case "REMOVE":
		return "DELETED"
	}
	return strings.ToUpper(record.EventName)
}

// _formatNamed renders "<Label> <id> (<name>) was <action>".
func _formatNamed(label string) AuditMessageFormat {
	return func(record events.DynamoDBEventRecord) *string {
		image := _getRecordImage(record)
		name := _stringAttribute(image, "name")
		id := _stringAttribute(image, "SK")
		action := strings.ToLower(_action(record))
		return aws.String(fmt.Sprintf("%s %s (%s) was %s", label, id, name, action))
	}
}

func _formatIngredient(record events.DynamoDBEventRecord) *string {
	message := _formatNamed("Ingredient")(record)
	if record.EventName != "MODIFY" {
		return message
	}
	before := _numberAttribute(record.Change.OldImage, "price")
	after := _numberAttribute(record.Change.NewImage, "price")
	if before != after {
		return aws.String(fmt.Sprintf("%s, price %s -> %s", *message, before, after))
	}
	return message
}

type CreateAuditEntryHandler struct {
	Audit   data.AuditRepository
	Formats map[string]AuditMessageFormat
}

func _splitKey(record events.DynamoDBEventRecord) (string, string, bool) {
	pk := _stringAttribute(_getRecordImage(record), "PK")
	workspaceId, resource, found := strings.Cut(pk, ":")
	return workspaceId, resource, found
}

func (ch *CreateAuditEntryHandler) Filter(record events.DynamoDBEventRecord) bool {
	_, resource, found := _splitKey(record)
	if !found {
		return false
	}
	_, ok := ch.Formats[resource]
	return ok
}

func (ch *CreateAuditEntryHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	workspaceId, resource, _ := _splitKey(record)
	format := ch.Formats[resource]
	message := format(record)
	if message == nil {
		return nil
	}
	_, err := ch.Audit.Create(ctx, workspaceId, data.AuditInputDTO{
		ResourceId:   aws.String(_stringAttribute(_getRecordImage(record), "SK")),
		ResourceType: aws.String(resource),
		Action:       aws.String(_action(record)),
		Message:      message,
		ExpiresIn:    aws.Int(int(time.Now().Add(EXPIRY_LOG).UnixMilli())),
	})
	return err
}

func DefaultAuditHandler(db data.AuditRepository) *CreateAuditEntryHandler {
	return &CreateAuditEntryHandler{
		Audit: db,
		Formats: map[string]AuditMessageFormat{
			"Cocktail":   _formatNamed("Cocktail"),
			"Ingredient": _formatIngredient,
			"Glass":      _formatNamed("Glass"),
			"Garnish":    _formatNamed("Garnish"),
			"Card":       _formatNamed("Card"),
		},
	}
}
