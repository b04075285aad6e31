// Package salesmanago provides a client for the SALESmanago marketing automation REST API.
//
// Every call is signed with an authentication envelope (client ID, API key,
// request time and a SHA-1 of the shared secret) merged into the JSON body.
// The remote service reports the outcome in a boolean "success" field, which
// the client checks before handing the decoded response back to the caller.
package salesmanago

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/natserract/salesmanago/pkg/config"
	httpclient "github.com/natserract/salesmanago/pkg/http"
	"go.uber.org/zap"
)

// Data is the JSON object sent to the API.
type Data map[string]interface{}

// Response is the decoded JSON object returned by the API.
type Response map[string]interface{}

// Client is the main client for interacting with the SALESmanago API
type Client struct {
	config     Config
	httpClient httpclient.Doer
	logger     *zap.Logger
	now        func() time.Time
}

// Config holds the immutable connection settings of a Client.
type Config struct {
	ClientID  string
	Endpoint  string
	APISecret string
	APIKey    string
}

// New creates a new Client with default production logger.
// A nil doer selects the net/http transport.
func New(doer httpclient.Doer, clientID, endpoint, apiSecret, apiKey string) (*Client, error) {
	logger, _ := zap.NewProduction()
	return NewWithLogger(doer, clientID, endpoint, apiSecret, apiKey, logger)
}

// NewWithLogger creates a new Client with a custom logger
func NewWithLogger(doer httpclient.Doer, clientID, endpoint, apiSecret, apiKey string, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := Config{
		ClientID:  clientID,
		Endpoint:  strings.TrimRight(endpoint, "/") + "/",
		APISecret: apiSecret,
		APIKey:    apiKey,
	}

	// The endpoint is checked before normalization so "" and "/" are rejected.
	required := []struct {
		field string
		value string
		check string
	}{
		{"client_id", clientID, clientID},
		{"endpoint", endpoint, strings.TrimRight(endpoint, "/")},
		{"api_secret", apiSecret, apiSecret},
		{"api_key", apiKey, apiKey},
	}
	for _, r := range required {
		if strings.TrimSpace(r.check) == "" {
			logger.Error("Invalid client configuration", zap.String("field", r.field))
			return nil, &InvalidArgumentError{Field: r.field, Value: r.value}
		}
	}

	if doer == nil {
		doer = httpclient.NewClientWithLogger(logger)
	}

	return &Client{
		config:     cfg,
		httpClient: doer,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// NewFromConfig creates a Client from environment-loaded settings. When doer
// is nil the transport named by cfg.Transport is built with cfg.Timeout.
func NewFromConfig(doer httpclient.Doer, cfg *config.Config, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if doer == nil {
		switch cfg.Transport {
		case config.TransportResty:
			doer = httpclient.NewRestyClient(cfg.Timeout, logger)
		default:
			doer = httpclient.NewClientWithTimeout(cfg.Timeout, logger)
		}
	}
	return NewWithLogger(doer, cfg.ClientID, cfg.Endpoint, cfg.APISecret, cfg.APIKey, logger)
}

// Endpoint returns the normalized endpoint, always ending in a single slash.
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// DoPost sends a signed POST request to endpoint + apiMethod.
func (c *Client) DoPost(ctx context.Context, apiMethod string, data Data, opts ...RequestOption) (Response, error) {
	return c.doRequest(ctx, http.MethodPost, apiMethod, data, opts)
}

// DoGet sends a signed GET request to endpoint + apiMethod.
// The envelope travels in the JSON body, as it does for POST.
func (c *Client) DoGet(ctx context.Context, apiMethod string, data Data, opts ...RequestOption) (Response, error) {
	return c.doRequest(ctx, http.MethodGet, apiMethod, data, opts)
}

func (c *Client) doRequest(ctx context.Context, method, apiMethod string, data Data, opts []RequestOption) (Response, error) {
	url := c.config.Endpoint + apiMethod
	payload := mergeData(c.createAuthData().toData(), data)

	reqOpts := httpclient.RequestOptions{
		Method:     method,
		URL:        url,
		Body:       payload,
		HTTPErrors: false,
		Context:    ctx,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&reqOpts)
		}
	}

	c.logger.Debug("Calling SALESmanago API",
		zap.String("method", method),
		zap.String("api_method", apiMethod),
		zap.String("url", url))

	resp, err := c.httpClient.Do(reqOpts)
	if err != nil {
		c.logger.Error("SALESmanago request failed",
			zap.Error(err),
			zap.String("method", method),
			zap.String("url", url))
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}

	result, kind, parseErr := classifyResponse(resp.Body)
	switch kind {
	case responseSuccess:
		c.logger.Debug("SALESmanago request succeeded",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", resp.StatusCode))
		return result, nil
	case responseParseFailure:
		c.logger.Error("Failed to parse SALESmanago response",
			zap.Error(parseErr),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(resp.Body)))
		return nil, newParseFailureError(method, url, payload, resp, parseErr)
	default:
		c.logger.Error("SALESmanago reported failure",
			zap.String("reason", kind.String()),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(resp.Body)))
		return nil, newUnsuccessfulResponseError(method, url, payload, resp, kind)
	}
}
