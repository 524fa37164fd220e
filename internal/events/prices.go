package events

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/shopspring/decimal"
	"philcali.me/barmanager/internal/notifications"
)

func _numberAttribute(image map[string]events.DynamoDBAttributeValue, name string) string {
	value, ok := image[name]
	if !ok || value.DataType() != events.DataTypeNumber {
		return ""
	}
	return value.Number()
}

func _formatPrice(number string) string {
	price, err := decimal.NewFromString(number)
	if err != nil {
		return number
	}
	return price.StringFixed(2)
}

// PriceChangeHandler tells subscribers when an ingredient or garnish price
// moves.
type PriceChangeHandler struct {
	Notifier  notifications.Notifier
	Resources map[string]bool
}

func (ph *PriceChangeHandler) Filter(record events.DynamoDBEventRecord) bool {
	if record.EventName != "MODIFY" {
		return false
	}
	_, resource, found := _splitKey(record)
	if !found || !ph.Resources[resource] {
		return false
	}
	return _numberAttribute(record.Change.OldImage, "price") != _numberAttribute(record.Change.NewImage, "price")
}

func (ph *PriceChangeHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	workspaceId, resource, _ := _splitKey(record)
	message := fmt.Sprintf("%s %s in workspace %s changed price from %s to %s",
		resource,
		_stringAttribute(record.Change.NewImage, "name"),
		workspaceId,
		_formatPrice(_numberAttribute(record.Change.OldImage, "price")),
		_formatPrice(_numberAttribute(record.Change.NewImage, "price")))
	ph.Notifier.Notify(ctx, notifications.Info(message).For(workspaceId))
	return nil
}

func DefaultPriceChangeHandler(notifier notifications.Notifier) *PriceChangeHandler {
	return &PriceChangeHandler{
		Notifier: notifier,
		Resources: map[string]bool{
			"Ingredient": true,
			"Garnish":    true,
		},
	}
}
