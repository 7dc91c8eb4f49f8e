package client

import (
	"errors"
	"net/url"
)

// Endpoint is the validated base URL of a paste server, plus the optional proxy that requests are routed
// through. It is immutable once created.
type Endpoint struct {
	base  *url.URL
	proxy *url.URL
}

// NewEndpoint parses and validates the base URL and the (optional) proxy URL. Both must be absolute URLs.
func NewEndpoint(baseURL string, proxyURL string) (*Endpoint, error) {
	if baseURL == "" {
		return nil, &ConfigError{Field: "base URL"}
	}
	base, err := parseAbsoluteURL(baseURL, baseSchemes)
	if err != nil {
		return nil, &ConfigError{Field: "base URL", Value: baseURL, Err: err}
	}
	var proxy *url.URL
	if proxyURL != "" {
		proxy, err = parseAbsoluteURL(proxyURL, proxySchemes)
		if err != nil {
			return nil, &ConfigError{Field: "proxy URL", Value: proxyURL, Err: err}
		}
	}
	return &Endpoint{
		base:  base,
		proxy: proxy,
	}, nil
}

// Base returns a copy of the base URL
func (e *Endpoint) Base() *url.URL {
	u := *e.base
	return &u
}

// Proxy returns a copy of the proxy URL, or nil if no proxy is configured
func (e *Endpoint) Proxy() *url.URL {
	if e.proxy == nil {
		return nil
	}
	u := *e.proxy
	return &u
}

var (
	baseSchemes  = []string{"http", "https"}
	proxySchemes = []string{"http", "https", "socks5"}
)

func parseAbsoluteURL(s string, schemes []string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	} else if !u.IsAbs() || u.Host == "" {
		return nil, errNotAbsolute
	}
	for _, scheme := range schemes {
		if u.Scheme == scheme {
			return u, nil
		}
	}
	return nil, errUnsupportedScheme
}

var errNotAbsolute = errors.New("not an absolute URL")
var errUnsupportedScheme = errors.New("unsupported scheme")
