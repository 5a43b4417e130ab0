package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/nordbook/eid-gateway/internal/models"
	"github.com/nordbook/eid-gateway/internal/service"
	"github.com/nordbook/eid-gateway/internal/soap"
)

var _ service.IdentityProvider = (*APIClient)(nil)

// APIClient drives the flow through the internal JSON endpoint instead of
// talking to the provider directly. This is the implementation an
// out-of-process booking frontend plugs into the orchestrator. Any non-2xx
// answer or success:false body counts as a transport error.
type APIClient struct {
	httpClient *http.Client
	endpoint   string
}

func NewAPIClient(endpoint string) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   endpoint,
	}
}

func (c *APIClient) Initiate(ctx context.Context, personalNumber, clientIP string) (*models.AuthSession, error) {
	resp, err := c.post(ctx, models.EIDRequest{
		Action:         models.ActionAuth,
		PersonalNumber: personalNumber,
		EndUserIP:      clientIP,
	})
	if err != nil {
		return nil, err
	}
	return &models.AuthSession{
		OrderRef:       resp.OrderRef,
		AutoStartToken: resp.AutoStartToken,
		QrStartToken:   resp.QrStartToken,
		QrStartSecret:  resp.QrStartSecret,
		Status:         models.StatusPending,
	}, nil
}

func (c *APIClient) Collect(ctx context.Context, orderRef string) (*models.AuthSession, error) {
	resp, err := c.post(ctx, models.EIDRequest{
		Action:   models.ActionStatus,
		OrderRef: orderRef,
	})
	if err != nil {
		return nil, err
	}
	return &models.AuthSession{
		OrderRef:   orderRef,
		Status:     resp.Status,
		HintCode:   resp.HintCode,
		Completion: resp.Completion,
	}, nil
}

func (c *APIClient) Cancel(ctx context.Context, orderRef string) error {
	_, err := c.post(ctx, models.EIDRequest{
		Action:   models.ActionCancel,
		OrderRef: orderRef,
	})
	return err
}

func (c *APIClient) post(ctx context.Context, request models.EIDRequest) (*models.EIDResponse, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", soap.ErrProtocol, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", soap.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", soap.ErrTransport, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: endpoint returned %s", soap.ErrTransport, httpResp.Status)
	}

	var resp models.EIDResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: %v", soap.ErrProtocol, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: endpoint reported failure: %s", soap.ErrTransport, resp.Message)
	}
	return &resp, nil
}
