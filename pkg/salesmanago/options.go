package salesmanago

import (
	httpclient "github.com/natserract/salesmanago/pkg/http"
)

// RequestOption adjusts the transport options of a single call. Options run
// after the defaults (JSON body, no error on non-2xx) and override them.
type RequestOption func(*httpclient.RequestOptions)

// WithHeader sets one request header.
func WithHeader(key, value string) RequestOption {
	return func(o *httpclient.RequestOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[key] = value
	}
}

// WithHeaders sets several request headers.
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *httpclient.RequestOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.Headers[k] = v
		}
	}
}

// WithQuery adds query string parameters to the request URL.
func WithQuery(params map[string]string) RequestOption {
	return func(o *httpclient.RequestOptions) {
		if o.Query == nil {
			o.Query = make(map[string]string, len(params))
		}
		for k, v := range params {
			o.Query[k] = v
		}
	}
}

// WithBody replaces the signed JSON payload.
func WithBody(body interface{}) RequestOption {
	return func(o *httpclient.RequestOptions) {
		o.Body = body
	}
}

// WithHTTPErrors makes the transport fail on non-2xx statuses.
func WithHTTPErrors(enabled bool) RequestOption {
	return func(o *httpclient.RequestOptions) {
		o.HTTPErrors = enabled
	}
}
