package services

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront-service/order"

	awspkg "storefront-service/pkg/aws"
)

// SNSOrderPublisher announces placed orders on an SNS topic.
type SNSOrderPublisher struct {
	sns      awspkg.SNSPublisher
	topicArn string
}

func NewSNSOrderPublisher(sns awspkg.SNSPublisher, topicArn string) *SNSOrderPublisher {
	return &SNSOrderPublisher{sns: sns, topicArn: topicArn}
}

func (p *SNSOrderPublisher) PublishOrderPlaced(ctx context.Context, event order.PlacedEvent) error {
	return publishJSON(ctx, p.sns, p.topicArn, event)
}

func publishJSON(ctx context.Context, sns awspkg.SNSPublisher, topicArn string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return sns.Publish(ctx, topicArn, data)
}
