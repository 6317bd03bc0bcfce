package places

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// Transport names accepted by NewTransport.
const (
	TransportNetHTTP  = "net/http"
	TransportFastHTTP = "fasthttp"
)

// RawResponse is what came back over the wire, before any decoding.
type RawResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Transport performs one GET and releases the connection before returning.
type Transport interface {
	Get(ctx context.Context, url string, header map[string]string) (*RawResponse, error)
	Close()
}

// NewTransport returns the transport registered under name; an empty name
// selects net/http.
func NewTransport(name string, config ConnectionConfig) (Transport, error) {
	canonical, err := TransportName(name)
	if err != nil {
		return nil, err
	}
	if canonical == TransportFastHTTP {
		return newFastHTTPTransport(config), nil
	}
	return newHTTPTransport(NewConnectionManager(config)), nil
}

// TransportName canonicalizes a transport name.
func TransportName(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TransportNetHTTP, "nethttp", "http":
		return TransportNetHTTP, nil
	case TransportFastHTTP:
		return TransportFastHTTP, nil
	default:
		return "", fmt.Errorf("unknown transport %q", name)
	}
}

type httpTransport struct {
	connManager *ConnectionManager
}

func newHTTPTransport(cm *ConnectionManager) *httpTransport {
	return &httpTransport{connManager: cm}
}

func (t *httpTransport) Get(ctx context.Context, url string, header map[string]string) (*RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Close = true
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := t.connManager.GetClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	return &RawResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (t *httpTransport) Close() {
	t.connManager.Close()
}

// fastHTTPTransport sends through fasthttp.
type fastHTTPTransport struct {
	client  *fasthttp.Client
	timeout time.Duration
}

func newFastHTTPTransport(config ConnectionConfig) *fastHTTPTransport {
	config = config.withDefaults()
	return &fastHTTPTransport{
		client: &fasthttp.Client{
			Name:                      "nearby-places",
			ReadTimeout:               config.RequestTimeout,
			WriteTimeout:              config.RequestTimeout,
			MaxIdemponentCallAttempts: 1,
		},
		timeout: config.RequestTimeout,
	}
}

type fastHTTPResult struct {
	raw *RawResponse
	err error
}

// Get races the fasthttp call against ctx. fasthttp has no context support,
// so an abandoned call finishes in its goroutine within the deadline.
func (t *fastHTTPTransport) Get(ctx context.Context, url string, header map[string]string) (*RawResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(t.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	done := make(chan fastHTTPResult, 1)
	go func() {
		raw, err := t.do(url, header, deadline)
		done <- fastHTTPResult{raw: raw, err: err}
	}()

	select {
	case res := <-done:
		return res.raw, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *fastHTTPTransport) do(url string, header map[string]string, deadline time.Time) (*RawResponse, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetConnectionClose()
	for k, v := range header {
		if strings.EqualFold(k, fasthttp.HeaderContentType) {
			req.Header.SetContentType(v)
			continue
		}
		req.Header.Set(k, v)
	}

	if err := t.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())

	return &RawResponse{
		StatusCode:  resp.StatusCode(),
		ContentType: string(resp.Header.ContentType()),
		Body:        body,
	}, nil
}

func (t *fastHTTPTransport) Close() {
	t.client.CloseIdleConnections()
}
