package fcm

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// Client wraps Firebase Cloud Messaging for signal push alerts. A client
// built without credentials is disabled; send calls fail fast.
type Client struct {
	client *messaging.Client
	log    zerolog.Logger
}

// NewClient initializes FCM from FIREBASE_CREDENTIALS_PATH or, failing
// that, from the inline FIREBASE_CREDENTIALS_JSON. Missing credentials
// produce a disabled client, not an error.
func NewClient(logger zerolog.Logger) (*Client, error) {
	ctx := context.Background()

	credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credPath == "" {
		credJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
		if credJSON == "" {
			logger.Warn().Msg("no firebase credentials found, push notifications disabled")
			return &Client{log: logger}, nil
		}

		tmpFile, err := os.CreateTemp("", "firebase-credentials-*.json")
		if err != nil {
			return nil, fmt.Errorf("create credentials temp file: %w", err)
		}
		defer tmpFile.Close()

		if _, err := tmpFile.Write([]byte(credJSON)); err != nil {
			return nil, fmt.Errorf("write credentials: %w", err)
		}
		credPath = tmpFile.Name()
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credPath))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("get messaging client: %w", err)
	}

	logger.Info().Msg("firebase cloud messaging initialized")
	return &Client{client: client, log: logger}, nil
}

// IsEnabled reports whether the client can send.
func (c *Client) IsEnabled() bool {
	return c.client != nil
}

// SendMulticast pushes a notification to every registered device token.
func (c *Client) SendMulticast(tokens []string, title, body string, data map[string]string) error {
	if c.client == nil {
		return fmt.Errorf("fcm client not initialized")
	}
	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "signal_alerts",
				Priority:  messaging.PriorityHigh,
			},
		},
	}

	response, err := c.client.SendEachForMulticast(context.Background(), message)
	if err != nil {
		return fmt.Errorf("send multicast: %w", err)
	}

	c.log.Debug().
		Int("success", response.SuccessCount).
		Int("failure", response.FailureCount).
		Msg("push notifications sent")
	return nil
}
