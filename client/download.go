package client

import (
	"github.com/pasteclient/mypaste/util"
	log "github.com/sirupsen/logrus"
	"io"
	"net/url"
	"os"
)

// Download retrieves addr and writes it to filename, and returns the number of bytes written. It first asks
// for the size of the resource with a HEAD request:
//
//   - a declared size of zero means the resource does not exist: a NotFoundError is returned and filename is
//     not created
//   - a positive size enables per-chunk progress reporting via the configured progress function
//   - without a declared size, the body is copied in one go and progress is only reported as started/done
//
// A partially written file is left in place if the transfer fails.
func (c *Client) Download(addr *url.URL, filename string) (int64, error) {
	total, err := c.Probe(addr)
	if err != nil {
		return 0, err
	} else if total == 0 {
		return 0, &NotFoundError{URL: addr.String()}
	}
	stream, err := c.FetchStream(addr)
	if err != nil {
		return 0, err
	}
	defer stream.Close()
	if !stream.OK() {
		body, _ := io.ReadAll(io.LimitReader(stream, maxErrorBodySize))
		return 0, &RemoteError{Code: stream.StatusCode, Status: stream.Status, Body: string(body)}
	}

	f, err := os.Create(filename)
	if err != nil {
		return 0, &IOError{Op: "create", Path: filename, Err: err}
	}
	log.WithFields(log.Fields{"url": addr.String(), "file": filename, "size": total}).Debug("Downloading")
	var written int64
	if total > 0 {
		written, err = c.downloadChunks(stream, f, filename, total)
	} else {
		written, err = c.downloadAll(stream, f, filename)
	}
	if err != nil {
		f.Close()
		return written, err
	}
	if err := f.Close(); err != nil {
		return written, &IOError{Op: "close", Path: filename, Err: err}
	}
	return written, nil
}

func (c *Client) downloadChunks(stream *Stream, w io.Writer, filename string, total int64) (int64, error) {
	tracker := util.NewProgressTracker(total, c.config.ProgressFunc)
	tracker.Start()
	for {
		chunk, err := stream.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return tracker.Processed(), &IOError{Op: "read stream for", Path: filename, Err: err}
		}
		if _, err := w.Write(chunk); err != nil {
			return tracker.Processed(), &IOError{Op: "write", Path: filename, Err: err}
		}
		tracker.Add(int64(len(chunk)))
	}
	tracker.Finish()
	return tracker.Processed(), nil
}

func (c *Client) downloadAll(stream *Stream, w io.Writer, filename string) (int64, error) {
	tracker := util.NewProgressTracker(-1, c.config.ProgressFunc)
	tracker.Start()
	written, err := io.Copy(w, stream)
	if err != nil {
		return written, &IOError{Op: "download to", Path: filename, Err: err}
	}
	tracker.Add(written)
	tracker.Finish()
	return written, nil
}
