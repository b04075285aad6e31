package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recorded struct {
	method      string
	path        string
	query       string
	contentType string
	requestID   string
	custom      string
	body        []byte
}

func newRecordingServer(t *testing.T, status int, respBody string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.contentType = r.Header.Get("Content-Type")
		rec.requestID = r.Header.Get(RequestIDHeader)
		rec.custom = r.Header.Get("X-Custom")
		rec.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func transports() map[string]Doer {
	return map[string]Doer{
		"net/http": NewClientWithTimeout(5*time.Second, zap.NewNop()),
		"resty":    NewRestyClient(5*time.Second, zap.NewNop()),
	}
}

func TestDo_SendsJSONBody(t *testing.T) {
	for name, doer := range transports() {
		t.Run(name, func(t *testing.T) {
			srv, rec := newRecordingServer(t, http.StatusOK, `{"success":true}`)

			resp, err := doer.Do(RequestOptions{
				Method:  http.MethodPost,
				URL:     srv.URL + "/contact/upsert",
				Headers: map[string]string{"X-Custom": "1"},
				Body:    map[string]interface{}{"email": "a@b.c"},
				Context: context.Background(),
			})

			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `{"success":true}`, string(resp.Body))

			assert.Equal(t, http.MethodPost, rec.method)
			assert.Equal(t, "/contact/upsert", rec.path)
			assert.Equal(t, "application/json", rec.contentType)
			assert.Equal(t, "1", rec.custom)
			assert.NotEmpty(t, rec.requestID)

			var sent map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.body, &sent))
			assert.Equal(t, "a@b.c", sent["email"])
		})
	}
}

func TestDo_GetWithBodyAndQuery(t *testing.T) {
	for name, doer := range transports() {
		t.Run(name, func(t *testing.T) {
			srv, rec := newRecordingServer(t, http.StatusOK, `{}`)

			_, err := doer.Do(RequestOptions{
				Method: http.MethodGet,
				URL:    srv.URL + "/contact/list",
				Query:  map[string]string{"page": "2"},
				Body:   []byte(`{"raw":true}`),
			})

			require.NoError(t, err)
			assert.Equal(t, http.MethodGet, rec.method)
			assert.Equal(t, "page=2", rec.query)
			assert.JSONEq(t, `{"raw":true}`, string(rec.body))
		})
	}
}

func TestDo_NonSuccessStatus(t *testing.T) {
	for name, doer := range transports() {
		t.Run(name, func(t *testing.T) {
			srv, _ := newRecordingServer(t, http.StatusBadRequest, `{"success":false}`)

			resp, err := doer.Do(RequestOptions{Method: http.MethodPost, URL: srv.URL})
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, `{"success":false}`, string(resp.Body))

			_, err = doer.Do(RequestOptions{Method: http.MethodPost, URL: srv.URL, HTTPErrors: true})
			require.Error(t, err)
			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
		})
	}
}

func TestDo_LogsErrorStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	doers := map[string]Doer{
		"net/http": NewClientWithTimeout(5*time.Second, log),
		"resty":    NewRestyClient(5*time.Second, log),
	}

	for name, doer := range doers {
		t.Run(name, func(t *testing.T) {
			srv, _ := newRecordingServer(t, http.StatusBadGateway, `upstream down`)
			before := logs.Len()

			_, err := doer.Do(RequestOptions{Method: http.MethodPost, URL: srv.URL, HTTPErrors: true})
			require.Error(t, err)

			entries := logs.All()[before:]
			var found bool
			for _, e := range entries {
				if e.Level == zapcore.ErrorLevel && e.Message == "HTTP request returned error status" {
					found = true
					fields := e.ContextMap()
					assert.Equal(t, int64(http.StatusBadGateway), fields["status_code"])
					assert.Equal(t, "upstream down", fields["response"])
					assert.NotEmpty(t, fields["request_id"])
				}
			}
			assert.True(t, found, "expected an error log entry for the non-2xx status")
		})
	}
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	for name, doer := range transports() {
		t.Run(name, func(t *testing.T) {
			_, err := doer.Do(RequestOptions{Method: http.MethodPost, URL: url})
			require.Error(t, err)
		})
	}
}

func TestDo_UnencodableBody(t *testing.T) {
	c := NewClientWithTimeout(time.Second, zap.NewNop())
	_, err := c.Do(RequestOptions{Method: http.MethodPost, URL: "http://127.0.0.1", Body: make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal request body")
}

func TestBuildURL(t *testing.T) {
	got, err := BuildURL("https://api.test/contact/list", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.test/contact/list", got)

	got, err = BuildURL("https://api.test/contact/list?a=1", map[string]string{"b": "2"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.test/contact/list?a=1&b=2", got)

	_, err = BuildURL("://bad", map[string]string{"b": "2"})
	require.Error(t, err)
}
