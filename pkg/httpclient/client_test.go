package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureHeaders(t *testing.T, client *http.Client, mutate func(*http.Request)) http.Header {
	t.Helper()

	var captured http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)
	if mutate != nil {
		mutate(req)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	return captured
}

func TestDefaultHeaders(t *testing.T) {
	t.Parallel()

	headers := captureHeaders(t, NewHTTPClient(), nil)

	assert.Equal(t, UserAgent, headers.Get("User-Agent"))
	_, err := uuid.Parse(headers.Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		opts        []Option
		mutate      func(*http.Request)
		wantAgent   string
		wantRequest string
		wantNoID    bool
	}{
		{
			name:      "custom user agent",
			opts:      []Option{WithUserAgent("tester/1.0")},
			wantAgent: "tester/1.0",
		},
		{
			name:      "request id disabled",
			opts:      []Option{WithoutRequestID()},
			wantAgent: UserAgent,
			wantNoID:  true,
		},
		{
			name:        "caller supplied request id is kept",
			mutate:      func(r *http.Request) { r.Header.Set(RequestIDHeader, "abc") },
			wantAgent:   UserAgent,
			wantRequest: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			headers := captureHeaders(t, NewHTTPClient(tt.opts...), tt.mutate)

			assert.Equal(t, tt.wantAgent, headers.Get("User-Agent"))
			switch {
			case tt.wantNoID:
				assert.Empty(t, headers.Get(RequestIDHeader))
			case tt.wantRequest != "":
				assert.Equal(t, tt.wantRequest, headers.Get(RequestIDHeader))
			}
		})
	}
}
