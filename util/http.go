package util

import (
	"net/http"
	"net/url"
)

// NewHTTPClient is a helper function to create a HTTP client for talking to the paste server. If proxy is
// not nil, all requests are routed through it. Otherwise, the proxy settings are taken from the environment
// (HTTP_PROXY, HTTPS_PROXY, NO_PROXY). Timeouts are the transport defaults.
func NewHTTPClient(proxy *url.URL) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != nil {
		transport.Proxy = http.ProxyURL(proxy)
	}
	return &http.Client{
		Transport: transport,
	}
}
