// Package telegram sends video summaries to one fixed chat through the
// Telegram Bot API, with built-in send pacing and error handling.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"linksend/youtube"
)

// DefaultBaseURL is the production Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// Client sends messages to a single configured chat. Every send is
// gated by a token bucket so consecutive sends keep a minimum spacing;
// a failed send is reported, never retried.
type Client struct {
	base    *http.Client
	config  *Config
	limiter *rate.Limiter
}

// Config holds Telegram client configuration.
type Config struct {
	// Token is the bot token used to authorize API calls.
	Token string

	// ChatID is the destination chat for every send.
	ChatID string

	// BaseURL is the Bot API endpoint. Defaults to DefaultBaseURL;
	// overridable for tests.
	BaseURL string

	// Timeout for individual HTTP requests.
	Timeout time.Duration

	// SendInterval is the minimum spacing between sends. Zero disables
	// pacing.
	SendInterval time.Duration
}

// DefaultConfig returns sensible defaults for the Telegram client.
// Token and ChatID must still be filled in.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		Timeout:      30 * time.Second,
		SendInterval: 500 * time.Millisecond,
	}
}

// New creates a Telegram client with the given configuration.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	return &Client{
		base:   &http.Client{Timeout: cfg.Timeout},
		config: cfg,
		// One token per interval, burst 1: the first send goes out
		// immediately, every later send waits out the spacing.
		limiter: rate.NewLimiter(rate.Every(cfg.SendInterval), 1),
	}
}

// Notify sends the summary for one video to the configured chat: a
// photo with caption when the record carries a thumbnail URL, a plain
// text message otherwise. Exactly one attempt is made; callers may log
// a failure and move on but must not re-invoke for the same record.
func (c *Client) Notify(ctx context.Context, v *youtube.Video) error {
	caption := Caption(v)
	if v.Thumbnail != "" {
		return c.SendPhoto(ctx, v.Thumbnail, caption)
	}
	return c.SendMessage(ctx, caption)
}

// SendMessage sends a text message to the configured chat.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	params := url.Values{}
	params.Set("chat_id", c.config.ChatID)
	params.Set("text", text)
	return c.send(ctx, "sendMessage", params)
}

// SendPhoto sends a photo by URL with a caption to the configured chat.
func (c *Client) SendPhoto(ctx context.Context, photoURL, caption string) error {
	params := url.Values{}
	params.Set("chat_id", c.config.ChatID)
	params.Set("photo", photoURL)
	params.Set("caption", caption)
	return c.send(ctx, "sendPhoto", params)
}

// apiResponse is the Bot API response envelope. The result payload is
// ignored; only delivery matters here.
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// send posts one form-encoded Bot API call and decodes the envelope.
// The request URL embeds the token, so transport errors are unwrapped
// before reporting to keep the token out of error strings.
func (c *Client) send(ctx context.Context, method string, params url.Values) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.config.BaseURL + "/bot" + c.config.Token + "/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("telegram: build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.base.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("telegram: %s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram: read %s response: %w", method, err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &APIError{Code: resp.StatusCode}
		}
		return fmt.Errorf("telegram: parse %s response: %w", method, err)
	}

	if !envelope.OK {
		code := envelope.ErrorCode
		if code == 0 {
			code = resp.StatusCode
		}
		return &APIError{Code: code, Description: envelope.Description}
	}

	return nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.base.CloseIdleConnections()
	return nil
}
