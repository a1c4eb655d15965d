package httpclient

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/google/uuid"

	"github.com/docker/gemini-console/pkg/version"
)

// UserAgent is sent on every backend request.
var UserAgent = fmt.Sprintf("gemini-console/%s (%s; %s)", version.Version, runtime.GOOS, runtime.GOARCH)

const RequestIDHeader = "X-Request-Id"

type headerTransport struct {
	agent     string
	requestID func() string
	rt        http.RoundTripper
}

func (h *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r2 := req.Clone(req.Context())
	r2.Header.Set("User-Agent", h.agent)
	if h.requestID != nil && r2.Header.Get(RequestIDHeader) == "" {
		r2.Header.Set(RequestIDHeader, h.requestID())
	}
	return h.rt.RoundTrip(r2)
}

type Option func(*headerTransport)

// WithUserAgent overrides the default User-Agent.
func WithUserAgent(agent string) Option {
	return func(h *headerTransport) {
		h.agent = agent
	}
}

// WithTransport sets the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(h *headerTransport) {
		h.rt = rt
	}
}

// WithoutRequestID disables the X-Request-Id header.
func WithoutRequestID() Option {
	return func(h *headerTransport) {
		h.requestID = nil
	}
}

// NewHTTPClient returns a client without a timeout. A backend call that hangs
// keeps the caller waiting until its context is cancelled.
func NewHTTPClient(opts ...Option) *http.Client {
	t := &headerTransport{
		agent:     UserAgent,
		requestID: uuid.NewString,
		rt:        http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(t)
	}
	return &http.Client{Transport: t}
}
