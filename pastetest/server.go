// Package pastetest provides an in-memory paste server for tests. It speaks both the flat text protocol and
// the v2 file protocol, and records the requests it receives.
package pastetest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"sync"
	"testing"
)

// File is a file stored in the v2 namespace
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Request is a request as seen by the server
type Request struct {
	Method      string
	Host        string
	Path        string
	RequestID   string
	ContentType string
	Body        string // Only recorded for the flat namespace
}

// Server is a paste server backed by memory. The base path is "/api"; when it is used as a forward proxy,
// the host part of the requested URL is ignored.
type Server struct {
	*httptest.Server

	// OmitLength makes the server leave out the Content-Length header for v2 HEAD and GET requests
	OmitLength bool

	// TokenFunc generates the token for a new text paste. Defaults to "token1", "token2", ...
	TokenFunc func() string

	texts    map[string]string
	files    map[string]*File
	requests []*Request
	counter  int
	routes   []route
	mu       sync.Mutex
}

// handleFunc extends the normal http.HandlerFunc to be able to easily return errors
type handleFunc func(http.ResponseWriter, *http.Request) error

// route represents a HTTP route (e.g. GET /api/v2/file.txt), a regex that matches it and its handler
type route struct {
	method  string
	regex   *regexp.Regexp
	handler handleFunc
}

func newRoute(method, pattern string, handler handleFunc) route {
	return route{method, regexp.MustCompile("^" + pattern + "$"), handler}
}

// routeCtx is a marker struct used to find fields in route matches
type routeCtx struct{}

// errHTTP is returned by handlers to answer with a specific status code and body
type errHTTP struct {
	Code int
	Body string
}

func (e *errHTTP) Error() string {
	return fmt.Sprintf("http: %d %s", e.Code, e.Body)
}

// NewServer starts a new paste server and registers its shutdown with t
func NewServer(t *testing.T) *Server {
	s := &Server{
		texts: make(map[string]string),
		files: make(map[string]*File),
	}
	s.routes = []route{
		newRoute(http.MethodPost, "/api/v2/?", s.handleFileUpload),
		newRoute(http.MethodHead, "/api/v2/(.+)", s.handleFileHead),
		newRoute(http.MethodGet, "/api/v2/(.+)", s.handleFileGet),
		newRoute(http.MethodDelete, "/api/v2/(.+)", s.handleFileDelete),
		newRoute(http.MethodPost, "/api/?", s.handleTextSubmit),
		newRoute(http.MethodGet, "/api/([^/]+)", s.handleTextGet),
		newRoute(http.MethodDelete, "/api/([^/]+)", s.handleTextDelete),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the base URL clients should be configured with
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// PutText stores a text paste under the given token
func (s *Server) PutText(token string, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[token] = text
}

// Text returns the text paste stored under token
func (s *Server) Text(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.texts[token]
	return text, ok
}

// PutFile stores a file in the v2 namespace
func (s *Server) PutFile(name string, contentType string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = &File{Name: name, ContentType: contentType, Data: data}
}

// File returns the file stored under name in the v2 namespace
func (s *Server) File(name string) (*File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[name]
	return f, ok
}

// Requests returns all requests received so far
func (s *Server) Requests() []*Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Request(nil), s.requests...)
}

// LastRequest returns the most recent request, or nil if there was none
func (s *Server) LastRequest() *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	for _, route := range s.routes {
		matches := route.regex.FindStringSubmatch(r.URL.Path)
		if len(matches) > 0 && r.Method == route.method {
			ctx := context.WithValue(r.Context(), routeCtx{}, matches[1:])
			if err := route.handler(w, r.WithContext(ctx)); err != nil {
				var httpErr *errHTTP
				if errors.As(err, &httpErr) {
					w.WriteHeader(httpErr.Code)
					io.WriteString(w, httpErr.Body)
				} else {
					w.WriteHeader(http.StatusInternalServerError)
					io.WriteString(w, err.Error())
				}
			}
			return
		}
	}
	s.record(r, "")
	w.WriteHeader(http.StatusBadRequest)
}

func (s *Server) handleTextSubmit(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	s.record(r, string(body))
	if len(body) == 0 {
		return &errHTTP{http.StatusBadRequest, "empty paste"}
	}
	s.mu.Lock()
	token := s.nextToken()
	s.texts[token] = string(body)
	s.mu.Unlock()
	_, err = io.WriteString(w, token)
	return err
}

func (s *Server) handleTextGet(w http.ResponseWriter, r *http.Request) error {
	s.record(r, "")
	text, ok := s.Text(routeField(r, 0))
	if !ok {
		return &errHTTP{http.StatusNotFound, ""}
	}
	_, err := io.WriteString(w, text)
	return err
}

func (s *Server) handleTextDelete(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	s.record(r, string(body))
	token := routeField(r, 0)
	s.mu.Lock()
	_, ok := s.texts[token]
	delete(s.texts, token)
	s.mu.Unlock()
	if !ok {
		return &errHTTP{http.StatusNotFound, "no such paste"}
	}
	_, err = fmt.Fprintf(w, "deleted %s", token)
	return err
}

func (s *Server) handleFileUpload(w http.ResponseWriter, r *http.Request) error {
	s.record(r, "")
	reader, err := r.MultipartReader()
	if err != nil {
		return &errHTTP{http.StatusBadRequest, err.Error()}
	}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return &errHTTP{http.StatusBadRequest, "no file part"}
		} else if err != nil {
			return &errHTTP{http.StatusBadRequest, err.Error()}
		}
		if part.FormName() != "file" {
			continue
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return &errHTTP{http.StatusBadRequest, err.Error()}
		}
		s.PutFile(part.FileName(), part.Header.Get("Content-Type"), data)
		_, err = fmt.Fprintf(w, "uploaded %s", part.FileName())
		return err
	}
}

func (s *Server) handleFileHead(w http.ResponseWriter, r *http.Request) error {
	s.record(r, "")
	f, ok := s.File(routeField(r, 0))
	if !ok {
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusNotFound)
		return nil
	}
	if !s.OmitLength {
		w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	}
	w.Header().Set("Content-Type", f.ContentType)
	return nil
}

func (s *Server) handleFileGet(w http.ResponseWriter, r *http.Request) error {
	s.record(r, "")
	f, ok := s.File(routeField(r, 0))
	if !ok {
		return &errHTTP{http.StatusNotFound, "no such file"}
	}
	w.Header().Set("Content-Type", f.ContentType)
	if !s.OmitLength {
		w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	}
	if _, err := w.Write(f.Data); err != nil {
		return err
	}
	if s.OmitLength {
		w.(http.Flusher).Flush() // Forces chunked encoding, even for small bodies
	}
	return nil
}

func (s *Server) handleFileDelete(w http.ResponseWriter, r *http.Request) error {
	s.record(r, "")
	name := routeField(r, 0)
	s.mu.Lock()
	_, ok := s.files[name]
	delete(s.files, name)
	s.mu.Unlock()
	if !ok {
		return &errHTTP{http.StatusNotFound, "no such file"}
	}
	_, err := fmt.Fprintf(w, "deleted %s", name)
	return err
}

func (s *Server) record(r *http.Request, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, &Request{
		Method:      r.Method,
		Host:        r.Host,
		Path:        r.URL.Path,
		RequestID:   r.Header.Get("X-Request-ID"),
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})
}

// nextToken must be called with the lock held
func (s *Server) nextToken() string {
	if s.TokenFunc != nil {
		return s.TokenFunc()
	}
	s.counter++
	return fmt.Sprintf("token%d", s.counter)
}

func routeField(r *http.Request, i int) string {
	return r.Context().Value(routeCtx{}).([]string)[i]
}
