package salesmanago

import "context"

// APIClient defines the interface for SALESmanago API operations
type APIClient interface {
	// DoPost sends a signed POST request
	DoPost(ctx context.Context, apiMethod string, data Data, opts ...RequestOption) (Response, error)

	// DoGet sends a signed GET request
	DoGet(ctx context.Context, apiMethod string, data Data, opts ...RequestOption) (Response, error)
}

var _ APIClient = (*Client)(nil)
