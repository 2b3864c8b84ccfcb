package slack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/theopenlane/httpsling"
)

// defaultRequestTimeout is the default timeout for webhook requests
const defaultRequestTimeout = 10 * time.Second

// Client posts analysis summaries to a Slack incoming webhook
type Client struct {
	webhookURL string
	username   string
	httpClient *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUsername overrides the display name of posted messages
func WithUsername(username string) Option {
	return func(c *Client) {
		if username != "" {
			c.username = username
		}
	}
}

// New creates a webhook client
func New(webhookURL string, opts ...Option) (*Client, error) {
	if webhookURL == "" {
		return nil, ErrMissingWebhookURL
	}

	c := &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Send posts a message to the webhook
func (c *Client) Send(ctx context.Context, msg Message) error {
	if msg.Username == "" {
		msg.Username = c.username
	}

	requester := httpsling.MustNew(
		httpsling.URL(c.webhookURL),
		httpsling.Post(),
		httpsling.JSONBody(msg),
		httpsling.WithHTTPClient(c.httpClient),
	)

	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}
