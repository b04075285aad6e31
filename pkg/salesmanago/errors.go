package salesmanago

import (
	"errors"
	"fmt"

	httpclient "github.com/natserract/salesmanago/pkg/http"
)

var (
	ErrInvalidArgument = errors.New("salesmanago: invalid argument")
	ErrInvalidRequest  = errors.New("salesmanago: invalid request")
)

// InvalidArgumentError reports a required client setting that was empty.
type InvalidArgumentError struct {
	Field string
	Value string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s parameter is required", e.Field)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// InvalidRequestError is returned when the API response is not valid JSON or
// does not report success. Cause is set only for JSON decoding failures.
type InvalidRequestError struct {
	Method      string
	URL         string
	Data        Data
	StatusCode  int
	RawResponse []byte
	Reason      string
	Cause       error
}

func newParseFailureError(method, url string, data Data, resp *httpclient.Response, cause error) *InvalidRequestError {
	return &InvalidRequestError{
		Method:      method,
		URL:         url,
		Data:        data,
		StatusCode:  resp.StatusCode,
		RawResponse: resp.Body,
		Reason:      responseParseFailure.String(),
		Cause:       cause,
	}
}

func newUnsuccessfulResponseError(method, url string, data Data, resp *httpclient.Response, kind responseKind) *InvalidRequestError {
	return &InvalidRequestError{
		Method:      method,
		URL:         url,
		Data:        data,
		StatusCode:  resp.StatusCode,
		RawResponse: resp.Body,
		Reason:      kind.String(),
	}
}

func (e *InvalidRequestError) Error() string {
	msg := fmt.Sprintf("invalid request %s %s: %s (status %d): %s", e.Method, e.URL, e.Reason, e.StatusCode, string(e.RawResponse))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *InvalidRequestError) Unwrap() error {
	return e.Cause
}

func (e *InvalidRequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// IsInvalidRequest reports whether err is an *InvalidRequestError and returns it.
func IsInvalidRequest(err error) (*InvalidRequestError, bool) {
	var reqErr *InvalidRequestError
	ok := errors.As(err, &reqErr)
	return reqErr, ok
}
