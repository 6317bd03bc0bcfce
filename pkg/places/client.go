package places

import (
	"context"
	"time"

	"nearby-places/pkg/logger"
)

// ClientConfig configures a Client. Zero values fall back to the vendor
// endpoint and the net/http transport.
type ClientConfig struct {
	BaseURL    string
	Transport  string
	Connection ConnectionConfig
}

// Client fetches raw Nearby Search responses.
type Client struct {
	baseURL   string
	transport Transport
	log       *logger.Logger
}

func NewClient(config ClientConfig) (*Client, error) {
	transport, err := NewTransport(config.Transport, config.Connection)
	if err != nil {
		return nil, err
	}
	return NewClientWithTransport(config.BaseURL, transport), nil
}

func NewClientWithTransport(baseURL string, transport Transport) *Client {
	if baseURL == "" {
		baseURL = NearbySearchURL
	}
	return &Client{
		baseURL:   baseURL,
		transport: transport,
		log:       logger.GetLogger().WithField("component", "places_client"),
	}
}

// FetchPlaces performs one GET for query and returns the response body as
// UTF-8 text. Any I/O failure is logged and returned as *TransportError; an
// HTTP error status is not a transport failure and its body is returned.
func (c *Client) FetchPlaces(ctx context.Context, query SearchQuery) (string, error) {
	fullURL := query.URL(c.baseURL)
	log := c.log.WithURL("url", fullURL)
	if query.APIKey == "" {
		log.Warn("Places API key not set, request will be denied")
	}

	start := time.Now()
	log.Debug("Starting nearby search")

	raw, err := c.transport.Get(ctx, fullURL, map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		err = &TransportError{URL: logger.MaskURL(fullURL), Cause: maskedError{err}}
		log.WithError(err).Error("Nearby search transport failure")
		return "", err
	}

	if raw.StatusCode < 200 || raw.StatusCode > 299 {
		log.WithField("status_code", raw.StatusCode).Warn("Nearby search returned non-2xx status")
	}

	text, err := decodeBody(raw.Body, raw.ContentType)
	if err != nil {
		err = &TransportError{URL: logger.MaskURL(fullURL), Cause: err}
		log.WithError(err).Error("Nearby search body could not be decoded")
		return "", err
	}

	log.WithFields(map[string]interface{}{
		"status_code": raw.StatusCode,
		"bytes":       len(raw.Body),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Nearby search completed")

	return text, nil
}

func (c *Client) Close() {
	c.transport.Close()
}

// maskedError keeps the API key out of transport error messages, which
// embed the request URL.
type maskedError struct {
	err error
}

func (e maskedError) Error() string {
	return logger.MaskMessage(e.err.Error())
}

func (e maskedError) Unwrap() error {
	return e.err
}
