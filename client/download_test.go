package client

import (
	"errors"
	"github.com/pasteclient/mypaste/config"
	"github.com/pasteclient/mypaste/pastetest"
	"github.com/pasteclient/mypaste/test"
	"github.com/pasteclient/mypaste/util"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestClient_DownloadKnownLength(t *testing.T) {
	serv := pastetest.NewServer(t)
	content := test.RandomBytes(t, 5*StreamChunkSize+123)
	serv.PutFile("report.pdf", "application/pdf", content)

	var updates []util.Progress
	conf := config.New()
	conf.BaseURL = serv.BaseURL()
	conf.ProgressFunc = func(p util.Progress) {
		updates = append(updates, p) // Download reports synchronously, no lock needed
	}
	client, err := NewClient(conf)
	if err != nil {
		t.Fatal(err)
	}

	filename := tempFilename(t, "report.pdf")
	written, err := client.Download(resolve(t, client, Versioned, "report.pdf"), filename)
	if err != nil {
		t.Fatal(err)
	}
	test.Int64Equals(t, int64(len(content)), written)
	test.FileContent(t, filename, content)

	if len(updates) < 3 {
		t.Fatalf("expected at least 3 progress updates, got %d", len(updates))
	}
	test.Int64Equals(t, 0, updates[0].Processed)
	for i := 1; i < len(updates); i++ {
		if updates[i].Processed < updates[i-1].Processed {
			t.Fatalf("expected monotonic progress, but update %d went from %d to %d", i, updates[i-1].Processed, updates[i].Processed)
		}
		test.Int64Equals(t, int64(len(content)), updates[i].Total)
	}
	last := updates[len(updates)-1]
	test.BoolEquals(t, true, last.Done)
	test.Int64Equals(t, last.Total, last.Processed)

	methods := make([]string, 0)
	for _, r := range serv.Requests() {
		methods = append(methods, r.Method)
	}
	if len(methods) != 2 || methods[0] != http.MethodHead || methods[1] != http.MethodGet {
		t.Fatalf("expected HEAD followed by GET, got %v", methods)
	}
}

func TestClient_DownloadZeroLengthIsNotFound(t *testing.T) {
	serv := pastetest.NewServer(t)
	client := newTestClient(t, serv.BaseURL())

	filename := tempFilename(t, "missing.txt")
	_, err := client.Download(resolve(t, client, Versioned, "missing.txt"), filename)
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	test.FileNotExist(t, filename)
	if len(serv.Requests()) != 1 {
		t.Fatalf("expected only the HEAD request, got %d requests", len(serv.Requests()))
	}
}

func TestClient_DownloadUnknownLength(t *testing.T) {
	serv := pastetest.NewServer(t)
	serv.OmitLength = true
	content := test.RandomBytes(t, 2*StreamChunkSize+1)
	serv.PutFile("blob.bin", "application/octet-stream", content)

	var updates []util.Progress
	conf := config.New()
	conf.BaseURL = serv.BaseURL()
	conf.ProgressFunc = func(p util.Progress) {
		updates = append(updates, p)
	}
	client, err := NewClient(conf)
	if err != nil {
		t.Fatal(err)
	}

	filename := tempFilename(t, "blob.bin")
	written, err := client.Download(resolve(t, client, Versioned, "blob.bin"), filename)
	if err != nil {
		t.Fatal(err)
	}
	test.Int64Equals(t, int64(len(content)), written)
	test.FileContent(t, filename, content)

	if len(updates) < 2 {
		t.Fatalf("expected at least 2 progress updates, got %d", len(updates))
	}
	test.BoolEquals(t, false, updates[0].Known())
	test.BoolEquals(t, true, updates[len(updates)-1].Done)
}

func TestClient_DownloadEmptyUnknownLength(t *testing.T) {
	serv := pastetest.NewServer(t)
	serv.OmitLength = true
	serv.PutFile("empty.txt", "text/plain", []byte{})
	client := newTestClient(t, serv.BaseURL())

	filename := tempFilename(t, "empty.txt")
	written, err := client.Download(resolve(t, client, Versioned, "empty.txt"), filename)
	if err != nil {
		t.Fatal(err)
	}
	test.Int64Equals(t, 0, written)
	test.FileContent(t, filename, []byte{})
}

func TestClient_DownloadCreateFailure(t *testing.T) {
	serv := pastetest.NewServer(t)
	serv.PutFile("a.txt", "text/plain", []byte("some content"))
	client := newTestClient(t, serv.BaseURL())

	filename := filepath.Join(t.TempDir(), "does", "not", "exist", "a.txt")
	_, err := client.Download(resolve(t, client, Versioned, "a.txt"), filename)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	test.StrEquals(t, "create", ioErr.Op)
	test.StrEquals(t, filename, ioErr.Path)
}

func TestClient_DownloadRemoteErrorLeavesNoFile(t *testing.T) {
	client, _ := newTestClientAndServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			return // No Content-Length, so the size is unknown
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("storage unavailable"))
	}))

	filename := tempFilename(t, "a.txt")
	_, err := client.Download(resolve(t, client, Versioned, "a.txt"), filename)
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	test.Int64Equals(t, http.StatusInternalServerError, int64(remoteErr.Code))
	test.StrEquals(t, "storage unavailable", remoteErr.Body)
	test.FileNotExist(t, filename)
}

func TestClient_DownloadFilenameWithSpecialCharacters(t *testing.T) {
	serv := pastetest.NewServer(t)
	serv.PutFile("report", "text/plain", []byte("wrong file"))
	serv.PutFile("report#1.txt", "text/plain", []byte("right file"))
	serv.PutFile("100%.txt", "text/plain", []byte("percent"))
	serv.PutFile("notes:v1.txt", "text/plain", []byte("colon"))
	client := newTestClient(t, serv.BaseURL())

	for name, expected := range map[string]string{"report#1.txt": "right file", "100%.txt": "percent", "notes:v1.txt": "colon"} {
		filename := tempFilename(t, "download.txt")
		if _, err := client.Download(resolve(t, client, Versioned, name), filename); err != nil {
			t.Fatal(err)
		}
		test.FileContent(t, filename, []byte(expected))
		test.StrEquals(t, "/api/v2/"+name, serv.LastRequest().Path)
	}
}

func TestClient_DownloadInterruptedLeavesPartialFile(t *testing.T) {
	content := test.RandomBytes(t, 50000)
	client, _ := newTestClientAndServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100000")
		if r.Method == http.MethodHead {
			return
		}
		w.Write(content)
		w.(http.Flusher).Flush()
		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			panic(err) // 'go vet' complains about 't.Fatal(err)'
		}
		conn.Close() // Connection drops halfway through the body
	}))

	filename := tempFilename(t, "partial.bin")
	written, err := client.Download(resolve(t, client, Versioned, "partial.bin"), filename)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	test.StrEquals(t, filename, ioErr.Path)
	test.Int64Equals(t, 50000, written)

	stat, err := os.Stat(filename)
	if err != nil {
		t.Fatal(err)
	}
	test.Int64Equals(t, 50000, stat.Size())
	test.FileContent(t, filename, content)
}
