package httpx

import (
	"net/http"
	"time"
)

const DefaultTimeout = 15 * time.Second

// NewClient returns the client used for calls to third-party APIs. A
// non-positive timeout falls back to DefaultTimeout so no call is unbounded.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
