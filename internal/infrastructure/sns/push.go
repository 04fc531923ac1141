package sns

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/JuanDluna/biosafe/internal/config"
)

// androidChannelID is the notification channel the mobile app registers on
// first launch. Messages published to any other channel are dropped by the OS.
const androidChannelID = "biosafe_channel"

// Payload is the platform-independent push content handed to the gateway.
type Payload struct {
	Title string
	Body  string
	Data  map[string]string
}

// PushSender publishes mobile push notifications. The token is the SNS
// platform endpoint ARN registered for the user's device.
type PushSender interface {
	Send(ctx context.Context, token string, p Payload) (string, error)
}

type sender struct {
	client *sns.Client
}

func NewSender(cfg *config.Config) (PushSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &sender{client: sns.NewFromConfig(awsCfg)}, nil
}

// Send publishes the payload to the device endpoint with per-platform delivery
// hints: high-priority delivery and the app channel on Android, default sound
// and a badge increment on iOS. Returns the SNS message id.
func (s *sender) Send(ctx context.Context, token string, p Payload) (string, error) {
	msg, err := buildMessage(p)
	if err != nil {
		return "", err
	}
	out, err := s.client.Publish(ctx, &sns.PublishInput{
		TargetArn:        aws.String(token),
		Message:          aws.String(msg),
		MessageStructure: aws.String("json"),
	})
	if err != nil {
		return "", err
	}
	if out.MessageId == nil {
		return "", nil
	}
	return *out.MessageId, nil
}

// buildMessage assembles the SNS multi-platform envelope: one JSON document
// whose GCM and APNS keys each hold a stringified platform payload.
func buildMessage(p Payload) (string, error) {
	gcm, err := json.Marshal(map[string]interface{}{
		"notification": map[string]string{
			"title":              p.Title,
			"body":               p.Body,
			"android_channel_id": androidChannelID,
			"sound":              "default",
		},
		"data":     p.Data,
		"priority": "high",
	})
	if err != nil {
		return "", fmt.Errorf("marshal gcm payload: %w", err)
	}

	apns, err := json.Marshal(map[string]interface{}{
		"aps": map[string]interface{}{
			"alert": map[string]string{
				"title": p.Title,
				"body":  p.Body,
			},
			"sound": "default",
			"badge": 1,
		},
		"data": p.Data,
	})
	if err != nil {
		return "", fmt.Errorf("marshal apns payload: %w", err)
	}

	envelope, err := json.Marshal(map[string]string{
		"default": p.Body,
		"GCM":     string(gcm),
		"APNS":    string(apns),
	})
	if err != nil {
		return "", fmt.Errorf("marshal sns envelope: %w", err)
	}
	return string(envelope), nil
}
