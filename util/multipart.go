package util

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// MultipartChunkSize is the size of the chunks read from the source when producing a multipart body
const MultipartChunkSize = 32 * 1024

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// NewMultipartReader creates a io.ReadCloser that produces a multipart/form-data body with exactly one file
// part, read from r in chunks of MultipartChunkSize. Nothing is buffered beyond one chunk: the body is written
// into a pipe by a goroutine as the consumer reads it. The returned string is the Content-Type header value,
// including the boundary. The reader can only be consumed once.
func NewMultipartReader(r io.Reader, field string, filename string, contentType string) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(field), quoteEscaper.Replace(filename)))
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := copyChunked(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close()) // Writes closing boundary; nil error closes the pipe normally
	}()
	return pr, mw.FormDataContentType()
}

func copyChunked(w io.Writer, r io.Reader) error {
	buf := make([]byte, MultipartChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}
