package services

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"
	"philcali.me/barmanager/internal/notifications"
)

// SNSClient is the subset of *sns.Client the service uses.
type SNSClient interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	Subscribe(ctx context.Context, params *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error)
	Unsubscribe(ctx context.Context, params *sns.UnsubscribeInput, optFns ...func(*sns.Options)) (*sns.UnsubscribeOutput, error)
}

type NotificationSNSService struct {
	Sns      SNSClient
	TopicArn string
	Logger   *zap.Logger
}

func _stringAttribute(value string) types.MessageAttributeValue {
	return types.MessageAttributeValue{
		DataType:    aws.String("String"),
		StringValue: aws.String(value),
	}
}

// Notify publishes the notification as JSON with its level and workspace as
// message attributes, so subscriptions can filter on them.
func (n *NotificationSNSService) Notify(ctx context.Context, notification notifications.Notification) {
	body, err := json.Marshal(notification)
	if err == nil {
		attributes := map[string]types.MessageAttributeValue{
			"level": _stringAttribute(string(notification.Level)),
		}
		if notification.WorkspaceId != "" {
			attributes["workspaceId"] = _stringAttribute(notification.WorkspaceId)
		}
		_, err = n.Sns.Publish(ctx, &sns.PublishInput{
			TopicArn:          aws.String(n.TopicArn),
			Message:           aws.String(string(body)),
			MessageAttributes: attributes,
		})
	}
	if err != nil && n.Logger != nil {
		n.Logger.Warn("Failed to publish notification", zap.String("topic", n.TopicArn), zap.Error(err))
	}
}

// Subscribe registers an endpoint on the topic. A workspace scoped
// subscription only receives that workspace's notifications.
func (n *NotificationSNSService) Subscribe(ctx context.Context, input notifications.SubscribeInput) (*notifications.SubscribeOutput, error) {
	params := &sns.SubscribeInput{
		Endpoint:              input.Endpoint,
		Protocol:              input.Protocol,
		TopicArn:              aws.String(n.TopicArn),
		ReturnSubscriptionArn: true,
	}
	if input.WorkspaceId != "" {
		policy, err := json.Marshal(map[string][]string{
			"workspaceId": {input.WorkspaceId},
		})
		if err != nil {
			return nil, err
		}
		params.Attributes = map[string]string{
			"FilterPolicy": string(policy),
		}
	}
	output, err := n.Sns.Subscribe(ctx, params)

	if err != nil {
		return nil, err
	}

	return &notifications.SubscribeOutput{
		SubscriberId: *output.SubscriptionArn,
	}, nil
}

func (n *NotificationSNSService) Unsubscribe(ctx context.Context, subscriberId string) error {
	_, err := n.Sns.Unsubscribe(ctx, &sns.UnsubscribeInput{
		SubscriptionArn: aws.String(subscriberId),
	})

	return err
}
