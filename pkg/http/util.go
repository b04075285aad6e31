package http

import (
	"fmt"
	"net/url"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-Id"

// BuildURL merges queryParams into the query string of rawURL.
// rawURL is returned unchanged when there are no parameters.
func BuildURL(rawURL string, queryParams map[string]string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("error parsing URL: %w", err)
	}
	if len(queryParams) == 0 {
		return rawURL, nil
	}

	q := parsedURL.Query()
	for key, value := range queryParams {
		q.Set(key, value)
	}
	parsedURL.RawQuery = q.Encode()

	return parsedURL.String(), nil
}
