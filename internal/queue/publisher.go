// Package queue publishes inventory messages to the stock service over SQS.
// Publishing is fire-and-forget: a failed send is logged, never retried, and
// never fails the payment that triggered it.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
	"github.com/sjlee/order-api/pkg/logger"
)

// StockItem is one product/quantity pair to decrement
type StockItem struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// StockMessage is the wire format consumed by the stock service
type StockMessage struct {
	MessageID string      `json:"messageId"`
	Items     []StockItem `json:"itemsInput"`
}

// Publisher sends stock-decrease messages for paid orders
type Publisher interface {
	PublishStockDecrease(ctx context.Context, items []StockItem) error
}

type sqsPublisher struct {
	client   *sqs.Client
	queueURL string
}

// NewSQSPublisher builds an SQS-backed publisher. Static credentials are used
// when provided, otherwise the default AWS credential chain applies.
func NewSQSPublisher(ctx context.Context, region, queueURL, accessKeyID, secretAccessKey string) (Publisher, error) {
	var cfg aws.Config
	var err error

	if accessKeyID != "" && secretAccessKey != "" {
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
			),
		)
	} else {
		cfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &sqsPublisher{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
	}, nil
}

func (p *sqsPublisher) PublishStockDecrease(ctx context.Context, items []StockItem) error {
	msg := StockMessage{
		MessageID: uuid.New().String(),
		Items:     items,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal stock message: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send stock message: %w", err)
	}

	logger.Debug("Stock decrease message published", map[string]interface{}{
		"message_id": msg.MessageID,
		"item_count": len(items),
	})
	return nil
}
