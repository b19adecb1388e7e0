package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"photoshare-backend/internal/shared/metrics"
	"photoshare-backend/internal/shared/telemetry"
)

// SQSDispatcher delivers dispatch messages to an SQS queue for deployments
// where the pipeline consumes a queue instead of a webhook. Same
// fire-and-forget semantics as the HTTP dispatcher.
type SQSDispatcher struct {
	client   *sqs.Client
	queueURL string
}

// NewSQSDispatcher constructs an SQS-backed dispatcher.
func NewSQSDispatcher(ctx context.Context, region, queueURL string) (*SQSDispatcher, error) {
	if queueURL == "" {
		return nil, fmt.Errorf("pipeline queue url is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SQSDispatcher{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
	}, nil
}

// Dispatch hands the notification to a background goroutine and returns
// immediately.
func (d *SQSDispatcher) Dispatch(imageID string) {
	metrics.IncDispatchStarted()
	go d.send(imageID)
}

func (d *SQSDispatcher) send(imageID string) {
	start := time.Now()

	payload, err := EncodeMessage(Message{
		ImageID:      imageID,
		DispatchedAt: start.UTC().Format(time.RFC3339),
	})
	if err != nil {
		metrics.IncDispatchFailed()
		telemetry.Error("pipeline.dispatch.failed", map[string]any{
			"image_id": imageID,
			"stage":    "encode",
			"err":      err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultSendTimeout)
	defer cancel()

	_, err = d.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(d.queueURL),
		MessageBody: aws.String(string(payload)),
	})
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.ObserveDispatchDurationMs(elapsed)

	if err != nil {
		metrics.IncDispatchFailed()
		telemetry.Error("pipeline.dispatch.failed", map[string]any{
			"image_id":    imageID,
			"stage":       "send",
			"err":         err.Error(),
			"duration_ms": elapsed,
		})
		return
	}

	metrics.IncDispatchSucceeded()
	telemetry.Info("pipeline.dispatch.ok", map[string]any{
		"image_id":    imageID,
		"duration_ms": elapsed,
	})
}

var _ Dispatcher = (*SQSDispatcher)(nil)
