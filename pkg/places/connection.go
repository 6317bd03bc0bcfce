package places

import (
	"net"
	"net/http"
	"time"

	"nearby-places/pkg/logger"
)

// ConnectionConfig holds the net/http transport settings.
type ConnectionConfig struct {
	DialTimeout           time.Duration `mapstructure:"dial_timeout"`
	TLSHandshakeTimeout   time.Duration `mapstructure:"tls_handshake_timeout"`
	ResponseHeaderTimeout time.Duration `mapstructure:"response_header_timeout"`
	RequestTimeout        time.Duration `mapstructure:"request_timeout"`
}

// DefaultConnectionConfig suits a single search against the vendor API.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		DialTimeout:           10 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		RequestTimeout:        30 * time.Second,
	}
}

func (c ConnectionConfig) withDefaults() ConnectionConfig {
	d := DefaultConnectionConfig()
	if c.DialTimeout <= 0 {
		c.DialTimeout = d.DialTimeout
	}
	if c.TLSHandshakeTimeout <= 0 {
		c.TLSHandshakeTimeout = d.TLSHandshakeTimeout
	}
	if c.ResponseHeaderTimeout <= 0 {
		c.ResponseHeaderTimeout = d.ResponseHeaderTimeout
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	return c
}

// ConnectionManager owns the net/http client. Keep-alives are disabled:
// every request opens its own connection and releases it when done.
type ConnectionManager struct {
	config ConnectionConfig
	client *http.Client
	log    *logger.Logger
}

func NewConnectionManager(config ConnectionConfig) *ConnectionManager {
	config = config.withDefaults()

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: config.DialTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ResponseHeaderTimeout: config.ResponseHeaderTimeout,
		DisableKeepAlives:     true,
	}

	return &ConnectionManager{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.RequestTimeout,
		},
		log: logger.GetLogger().WithField("component", "connection_manager"),
	}
}

// GetClient returns the managed HTTP client
func (cm *ConnectionManager) GetClient() *http.Client {
	return cm.client
}

func (cm *ConnectionManager) Config() ConnectionConfig {
	return cm.config
}

// Close closes all idle connections
func (cm *ConnectionManager) Close() {
	cm.log.Debug("Closing connection manager")
	if transport, ok := cm.client.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
