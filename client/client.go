// Package client provides the paste client that talks to a remote paste server: it submits, retrieves and
// deletes text pastes in the flat namespace, and streams files to and from the versioned namespace.
package client

import (
	"github.com/google/uuid"
	"github.com/pasteclient/mypaste/config"
	"github.com/pasteclient/mypaste/util"
	log "github.com/sirupsen/logrus"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
)

const (
	// HeaderRequestID is sent with every request, carrying a random ID that also appears in the debug log
	HeaderRequestID = "X-Request-ID"

	// FormFieldFile is the name of the multipart part that carries the file in a streamed upload
	FormFieldFile = "file"

	maxErrorBodySize = 64 * 1024
)

// Client represents a paste client. It owns the endpoint and the HTTP client for the duration of one run.
// None of its operations retry.
type Client struct {
	config     *config.Config
	endpoint   *Endpoint
	httpClient *http.Client // Allow injecting HTTP client for testing
}

// NewClient creates a new paste client. It fails with a ConfigError if the base URL is missing or invalid,
// or if the proxy URL is invalid.
func NewClient(conf *config.Config) (*Client, error) {
	endpoint, err := NewEndpoint(conf.BaseURL, conf.Proxy)
	if err != nil {
		return nil, err
	}
	return &Client{
		config:     conf,
		endpoint:   endpoint,
		httpClient: util.NewHTTPClient(endpoint.Proxy()),
	}, nil
}

// Endpoint returns the endpoint this client talks to
func (c *Client) Endpoint() *Endpoint {
	return c.endpoint
}

// SubmitText sends body to addr via a HTTP POST request and returns the token from the response body.
// A non-2xx response is returned as a RemoteError.
func (c *Client) SubmitText(addr *url.URL, body string) (string, error) {
	resp, err := c.do(http.MethodPost, addr, strings.NewReader(body), nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return readTokenResponse(addr, resp)
}

// FetchText retrieves addr via a HTTP GET request and returns the response body verbatim. The status code is
// deliberately not checked: whatever the server returns is the output.
func (c *Client) FetchText(addr *url.URL) (string, error) {
	resp, err := c.do(http.MethodGet, addr, nil, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return readBody(addr, resp)
}

// Delete sends a HTTP DELETE request to addr and returns the response body verbatim, regardless of the status
// code. If body is not empty, it is sent along as confirmation, which some servers require for flat pastes.
func (c *Client) Delete(addr *url.URL, body string) (string, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	resp, err := c.do(http.MethodDelete, addr, reader, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return readBody(addr, resp)
}

// SubmitStream uploads the contents of file to addr as a multipart/form-data body with a single part named
// "file", using filename and contentType as part metadata. The body is streamed from the file in chunks,
// so memory usage does not depend on the file size. If a progress function is configured, upload progress is
// reported through it. A non-2xx response is returned as a RemoteError.
func (c *Client) SubmitStream(addr *url.URL, file io.Reader, filename string, contentType string) (string, error) {
	recorder := &readErrRecorder{reader: file}
	var source io.Reader = recorder
	var progress *util.ProgressReader
	if c.config.ProgressFunc != nil {
		progress = util.NewProgressReader(io.NopCloser(recorder), sizeOf(file), c.config.ProgressFunc)
		source = progress
	}
	body, bodyContentType := util.NewMultipartReader(source, FormFieldFile, filename, contentType)
	header := make(http.Header)
	header.Set("Content-Type", bodyContentType)

	resp, err := c.do(http.MethodPost, addr, body, header)
	if progress != nil {
		progress.Close()
	}
	if readErr := recorder.Err(); readErr != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return "", &IOError{Op: "read", Path: filename, Err: readErr}
	} else if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return readTokenResponse(addr, resp)
}

// Probe sends a HTTP HEAD request to addr and returns the declared Content-Length, or -1 if the server
// did not declare one.
func (c *Client) Probe(addr *url.URL) (int64, error) {
	resp, err := c.do(http.MethodHead, addr, nil, nil)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.ContentLength, nil
}

// FetchStream sends a HTTP GET request to addr and returns the response as a Stream. The caller must close
// the stream. The status code is not checked; see Stream.OK.
func (c *Client) FetchStream(addr *url.URL) (*Stream, error) {
	resp, err := c.do(http.MethodGet, addr, nil, nil)
	if err != nil {
		return nil, err
	}
	return newStream(resp), nil
}

func (c *Client) do(method string, addr *url.URL, body io.Reader, header http.Header) (*http.Response, error) {
	req, err := http.NewRequest(method, addr.String(), body)
	if err != nil {
		return nil, &TransportError{Op: method, URL: addr.String(), Err: err}
	}
	for key, values := range header {
		req.Header[key] = values
	}
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)

	logger := log.WithFields(log.Fields{
		"method":     method,
		"url":        addr.String(),
		"request_id": requestID,
	})
	logger.Debug("Sending request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WithError(err).Debug("Request failed")
		return nil, &TransportError{Op: method, URL: addr.String(), Err: err}
	}
	logger.WithField("status", resp.StatusCode).Debug("Received response")
	return resp, nil
}

func readBody(addr *url.URL, resp *http.Response) (string, error) {
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Op: resp.Request.Method, URL: addr.String(), Err: err}
	}
	return string(b), nil
}

func readTokenResponse(addr *url.URL, resp *http.Response) (string, error) {
	body, err := readBody(addr, resp)
	if err != nil {
		return "", err
	} else if !isSuccess(resp.StatusCode) {
		return "", &RemoteError{Code: resp.StatusCode, Status: resp.Status, Body: body}
	}
	return body, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// sizeOf returns the size of r if it is a file, or -1 otherwise
func sizeOf(r io.Reader) int64 {
	if f, ok := r.(interface{ Stat() (os.FileInfo, error) }); ok {
		if stat, err := f.Stat(); err == nil && stat.Mode().IsRegular() {
			return stat.Size()
		}
	}
	return -1
}

// readErrRecorder remembers the first read error of the underlying reader, so that a failed upload can be
// attributed to the local file rather than to the transport.
type readErrRecorder struct {
	reader io.Reader
	err    error
	mu     sync.Mutex
}

func (r *readErrRecorder) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if err != nil && err != io.EOF {
		r.mu.Lock()
		if r.err == nil {
			r.err = err
		}
		r.mu.Unlock()
	}
	return n, err
}

func (r *readErrRecorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
