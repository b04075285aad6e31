package http

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RestyClient adapts resty.Client to the Doer interface.
type RestyClient struct {
	client *resty.Client
	logger *zap.Logger
}

// NewRestyClient creates a new RestyClient with the specified timeout.
func NewRestyClient(timeout time.Duration, logger *zap.Logger) *RestyClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := resty.New()
	c.SetTimeout(timeout)
	// The API accepts signed JSON bodies on GET as well.
	c.SetAllowGetMethodPayload(true)
	c.SetHeader("Accept", "application/json")
	return &RestyClient{client: c, logger: logger}
}

// Do performs a single request through resty.
func (r *RestyClient) Do(opts RequestOptions) (*Response, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	requestID := uuid.NewString()
	req := r.client.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID)

	if opts.Body != nil {
		body, err := encodeBody(opts.Body)
		if err != nil {
			return nil, err
		}
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if len(opts.Query) > 0 {
		req.SetQueryParams(opts.Query)
	}
	if len(opts.Headers) > 0 {
		req.SetHeaders(opts.Headers)
	}

	r.logger.Debug("Making HTTP request",
		zap.String("request_id", requestID),
		zap.String("method", opts.Method),
		zap.String("url", opts.URL))

	resp, err := req.Execute(opts.Method, opts.URL)
	if err != nil {
		r.logger.Error("HTTP request failed",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("method", opts.Method),
			zap.String("url", opts.URL))
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	out := &Response{
		StatusCode: resp.StatusCode(),
		Headers:    resp.Header(),
		Body:       resp.Body(),
	}

	if opts.HTTPErrors && (out.StatusCode < 200 || out.StatusCode >= 300) {
		r.logger.Error("HTTP request returned error status",
			zap.String("request_id", requestID),
			zap.Int("status_code", out.StatusCode),
			zap.String("method", opts.Method),
			zap.String("url", opts.URL),
			zap.String("response", string(out.Body)))
		return nil, &StatusError{Method: opts.Method, URL: opts.URL, StatusCode: out.StatusCode, Body: out.Body}
	}

	r.logger.Debug("HTTP request completed",
		zap.String("request_id", requestID),
		zap.Int("status_code", out.StatusCode),
		zap.String("method", opts.Method),
		zap.String("url", opts.URL))

	return out, nil
}
