package svm

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// NewProvider constructs a Provider for the given endpoint with its own
// transport, so closing it never disturbs another check's connections.
// Only http(s) endpoints are accepted.
func NewProvider(endpoint string, timeout time.Duration) (Provider, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("empty endpoint")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        4,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return NewRPCProvider(endpoint, &http.Client{Timeout: timeout, Transport: transport})
}
