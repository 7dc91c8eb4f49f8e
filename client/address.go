package client

import (
	"net/url"
	"strings"
)

// Family selects one of the two addressing schemes of the paste server
type Family int

const (
	// Flat is the legacy namespace: text pastes, addressed by token directly below the base URL
	Flat Family = iota

	// Versioned is the v2 namespace: files, addressed by filename below {base}/v2/
	Versioned
)

const versionedPrefix = "v2/"

func (f Family) String() string {
	switch f {
	case Flat:
		return "flat"
	case Versioned:
		return "versioned"
	default:
		return "unknown"
	}
}

// Resolve joins key (a token or a filename) onto the endpoint's base URL, in the namespace given by family.
// Leading slashes in key and a missing trailing slash in the base URL are normalized, so the resulting path is
// always {base}/{key} or {base}/v2/{key}. The key is taken as literal path text and escaped as needed. Keys that
// are URLs themselves, or that escape the base path using dot segments, are rejected with an AddressError.
func Resolve(endpoint *Endpoint, family Family, key string) (*url.URL, error) {
	relative := strings.TrimLeft(key, "/")
	if relative == "" {
		return nil, &AddressError{Key: key, Reason: "key must not be empty"}
	}
	if strings.Contains(relative, "://") {
		return nil, &AddressError{Key: key, Reason: "key must be a relative path, not a URL"}
	}
	ref := &url.URL{Path: relative} // Literal path: "#", "?", "%" and ":" are part of the name
	dir := collection(endpoint, family)
	resolved := dir.ResolveReference(ref)
	if resolved.Scheme != dir.Scheme || resolved.Host != dir.Host {
		return nil, &AddressError{Key: key, Reason: "resolved URL leaves the server " + dir.Host}
	} else if !strings.HasPrefix(resolved.EscapedPath(), dir.EscapedPath()) {
		return nil, &AddressError{Key: key, Reason: "resolved URL leaves the base path " + dir.EscapedPath()}
	} else if resolved.EscapedPath() == dir.EscapedPath() {
		return nil, &AddressError{Key: key, Reason: "key does not name a resource"}
	}
	return resolved, nil
}

// Root returns the URL that new pastes are submitted to: the base URL itself for the flat namespace
// (POST {base}), and {base}/v2/ for the versioned namespace.
func Root(endpoint *Endpoint, family Family) *url.URL {
	if family == Flat {
		return endpoint.Base()
	}
	return collection(endpoint, family)
}

// collection returns the directory URL that keys of the given family are resolved against. It always
// ends with a slash, so that joining never replaces the last path segment.
func collection(endpoint *Endpoint, family Family) *url.URL {
	dir := endpoint.Base()
	dir.RawQuery = ""
	dir.Fragment = ""
	if !strings.HasSuffix(dir.Path, "/") {
		dir.Path += "/"
		if dir.RawPath != "" {
			dir.RawPath += "/"
		}
	}
	if family == Versioned {
		return dir.ResolveReference(&url.URL{Path: versionedPrefix})
	}
	return dir
}
