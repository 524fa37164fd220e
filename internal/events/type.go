package events

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

type EventFilter interface {
	Filter(record events.DynamoDBEventRecord) bool
	Apply(ctx context.Context, record events.DynamoDBEventRecord) error
}

// Dispatch hands every record to each handler that accepts it. A failing
// handler is logged and stops the remaining handlers for that record only.
// The number of failed records is returned.
func Dispatch(ctx context.Context, logger *zap.Logger, handlers []EventFilter, records []events.DynamoDBEventRecord) int {
	failed := 0
	for _, record := range records {
		for _, handler := range handlers {
			if !handler.Filter(record) {
				continue
			}
			if err := handler.Apply(ctx, record); err != nil {
				logger.Error("Failed to handle record",
					zap.String("eventId", record.EventID),
					zap.String("eventName", record.EventName),
					zap.Error(err))
				failed++
				break
			}
		}
	}
	return failed
}
