package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrTransport marks network failures and non-2xx provider answers.
	// A single poll tick does not retry these; the next tick will.
	ErrTransport = errors.New("provider transport failure")
	// ErrProtocol marks a malformed envelope or a missing result block.
	// Fatal immediately, never silently defaulted.
	ErrProtocol = errors.New("malformed provider response")
)

// Client posts envelopes to one provider endpoint. It is stateless between
// calls and safe for concurrent use.
type Client struct {
	httpClient *http.Client
	endpoint   string
	creds      Credentials
}

func NewClient(endpoint, username, password string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		creds:      Credentials{Username: username, Password: password},
	}
}

// Call sends one operation body and returns the parsed response body.
// Errors wrap ErrTransport or ErrProtocol so callers can tell a retryable
// network hiccup from a broken conversation.
func (c *Client) Call(ctx context.Context, body Body) (*ResponseBody, error) {
	payload, err := xml.Marshal(NewEnvelope(c.creds, body))
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrProtocol, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		bytes.NewReader(append([]byte(xml.Header), payload...)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: provider returned %s", ErrTransport, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	var parsed ResponseEnvelope
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return &parsed.Body, nil
}
