package subscriptions

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/exceptions"
	"philcali.me/barmanager/internal/notifications"
	"philcali.me/barmanager/internal/routes"
	"philcali.me/barmanager/internal/routes/util"
)

var protocols = map[string]bool{
	"email":      true,
	"email-json": true,
	"sms":        true,
	"http":       true,
	"https":      true,
	"sqs":        true,
	"lambda":     true,
}

type SubscriptionService struct {
	data          data.SubscriptionRepository
	notifications notifications.NotificationService
}

func NewRoute(data data.SubscriptionRepository, notifications notifications.NotificationService) routes.Service {
	return &SubscriptionService{
		data:          data,
		notifications: notifications,
	}
}

func (s *SubscriptionService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/workspaces/:workspaceId/subscriptions":                  util.AuthorizedRoute(s.ListSubscriptions),
		"GET:/workspaces/:workspaceId/subscriptions/:subscriberId":    util.AuthorizedRoute(s.GetSubscription),
		"POST:/workspaces/:workspaceId/subscriptions":                 util.AuthorizedRoute(s.CreateSubscription),
		"DELETE:/workspaces/:workspaceId/subscriptions/:subscriberId": util.AuthorizedRoute(s.DeleteSubscription),
	}
}

func (s *SubscriptionService) ListSubscriptions(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeList(s.data, NewSubscription, event, ctx)
}

func (s *SubscriptionService) GetSubscription(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := s.data.Get(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "subscriberId"))
	return util.SerializeResponseOK(NewSubscription, item, err)
}

// CreateSubscription subscribes the endpoint to the price alerts of this
// workspace only.
func (s *SubscriptionService) CreateSubscription(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[SubscriptionInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	fields := make(map[string]string)
	if input.Endpoint == nil || *input.Endpoint == "" {
		fields["endpoint"] = "Required"
	}
	if input.Protocol == nil || *input.Protocol == "" {
		fields["protocol"] = "Required"
	} else if !protocols[*input.Protocol] {
		fields["protocol"] = "Invalid"
	}
	if len(fields) > 0 {
		return events.APIGatewayV2HTTPResponse{}, exceptions.Invalid("subscription", fields)
	}
	workspaceId := util.WorkspaceId(ctx)
	subscription, err := s.notifications.Subscribe(ctx, notifications.SubscribeInput{
		Endpoint:    input.Endpoint,
		Protocol:    input.Protocol,
		WorkspaceId: workspaceId,
	})
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer(err.Error())
	}
	created, err := s.data.Create(ctx, workspaceId, data.SubscriptionInputDTO{
		Endpoint:      input.Endpoint,
		Protocol:      input.Protocol,
		SubscriberArn: &subscription.SubscriberId,
	})
	return util.SerializeResponseOK(NewSubscription, created, err)
}

func (s *SubscriptionService) DeleteSubscription(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	workspaceId := util.WorkspaceId(ctx)
	subscriber, err := s.data.Get(ctx, workspaceId, util.RequestParam(ctx, "subscriberId"))
	if err != nil {
		var notFound *exceptions.NotFoundError
		if errors.As(err, &notFound) {
			return util.SerializeResponseNoContent(nil)
		}
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer(err.Error())
	}
	if err := s.notifications.Unsubscribe(ctx, subscriber.SubscriberArn); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer(err.Error())
	}
	return util.SerializeResponseNoContent(s.data.Delete(ctx, workspaceId, subscriber.SK))
}
