package client

import (
	"io"
	"net/http"
)

// StreamChunkSize is the maximum size of the chunks returned by Stream.Next
const StreamChunkSize = 32 * 1024

// Stream is the response to a streamed download. The body is consumed lazily, one chunk at a time, and
// can only be read once; reading it again requires a new request.
type Stream struct {
	Header     http.Header
	StatusCode int
	Status     string
	Length     int64 // -1 if unknown
	body       io.ReadCloser
	buf        []byte
	err        error
}

func newStream(resp *http.Response) *Stream {
	return &Stream{
		Header:     resp.Header,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Length:     resp.ContentLength,
		body:       resp.Body,
		buf:        make([]byte, StreamChunkSize),
	}
}

// OK returns true if the server answered with a 2xx status code
func (s *Stream) OK() bool {
	return isSuccess(s.StatusCode)
}

// Next returns the next chunk of the body, or io.EOF once the body is exhausted. The returned slice is
// only valid until the next call to Next or Read.
func (s *Stream) Next() ([]byte, error) {
	for s.err == nil {
		var n int
		n, s.err = s.body.Read(s.buf)
		if n > 0 {
			return s.buf[:n], nil
		}
	}
	return nil, s.err
}

// Read implements io.Reader, so that the stream can also be consumed in one go using io.Copy
func (s *Stream) Read(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.body.Read(p)
	s.err = err
	return n, err
}

// Close closes the response body
func (s *Stream) Close() error {
	return s.body.Close()
}
