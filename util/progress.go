package util

import (
	"io"
	"sync"
	"time"
)

const (
	defaultProgressDelay    = time.Second
	defaultProgressInterval = 150 * time.Millisecond
)

// Progress is a snapshot of a running transfer. Total is -1 if the size of the transfer is not known.
type Progress struct {
	Processed int64
	Total     int64
	Elapsed   time.Duration
	Done      bool
}

// ProgressFunc is callback that is called during uploads and downloads to indicate progress to the user.
type ProgressFunc func(p Progress)

// Known returns true if the total size of the transfer is known
func (p Progress) Known() bool {
	return p.Total >= 0
}

// Fraction returns the completed share of the transfer (0.0 - 1.0), or 0 if the total is unknown
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Processed) / float64(p.Total)
}

// Remaining estimates the time left based on the throughput so far. It returns 0 if there is not enough
// information to make an estimate.
func (p Progress) Remaining() time.Duration {
	if p.Total <= 0 || p.Processed <= 0 || p.Processed >= p.Total {
		return 0
	}
	perByte := float64(p.Elapsed) / float64(p.Processed)
	return time.Duration(perByte * float64(p.Total-p.Processed))
}

// ProgressTracker counts bytes for a single transfer and reports every update to a ProgressFunc.
// It is not safe for concurrent use.
type ProgressTracker struct {
	processed int64
	total     int64
	started   time.Time
	fn        ProgressFunc
}

// NewProgressTracker creates a tracker for a transfer of the given total size (-1 if unknown). fn may be nil.
func NewProgressTracker(total int64, fn ProgressFunc) *ProgressTracker {
	return &ProgressTracker{
		total:   total,
		started: time.Now(),
		fn:      fn,
	}
}

// Add advances the counter by n bytes and emits a progress update
func (t *ProgressTracker) Add(n int64) {
	t.processed += n
	t.emit(false)
}

// Start emits an initial update without advancing the counter
func (t *ProgressTracker) Start() {
	t.emit(false)
}

// Finish emits the final update, with the done flag set
func (t *ProgressTracker) Finish() {
	t.emit(true)
}

// Processed returns the number of bytes counted so far
func (t *ProgressTracker) Processed() int64 {
	return t.processed
}

func (t *ProgressTracker) emit(done bool) {
	if t.fn == nil {
		return
	}
	t.fn(Progress{
		Processed: t.processed,
		Total:     t.total,
		Elapsed:   time.Since(t.started),
		Done:      done,
	})
}

// ProgressReader counts the bytes read through it.
// Originally from https://github.com/machinebox/progress (Apache License 2.0)
type ProgressReader struct {
	reader    io.ReadCloser
	processed int64
	total     int64
	started   time.Time
	fn        ProgressFunc
	ticker    *time.Ticker
	closed    bool
	done      chan struct{}
	sync.RWMutex
}

// NewProgressReader creates a new ProgressReader using fn as the callback function for progress updates,
// and total as the optional max value that is passed through to fn. This constructor uses the default
// progress delay and interval.
func NewProgressReader(r io.ReadCloser, total int64, fn ProgressFunc) *ProgressReader {
	return NewProgressReaderWithDelay(r, total, fn, defaultProgressDelay, defaultProgressInterval)
}

// NewProgressReaderWithDelay creates a new ProgressReader using fn as the callback function for progress updates,
// and total as the optional max value that is passed through to fn. The progress function is triggered in the given
// interval, and only after certain delay.
func NewProgressReaderWithDelay(r io.ReadCloser, total int64, fn ProgressFunc, delay time.Duration, interval time.Duration) *ProgressReader {
	reader := &ProgressReader{
		reader:  r,
		total:   total,
		started: time.Now(),
		fn:      fn,
		done:    make(chan struct{}),
	}
	time.AfterFunc(delay, func() { reader.tick(interval) })
	return reader
}

// Read passes reads through to the underlying reader, but also updates the internal state of how many bytes
// have been processed.
func (r *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = r.reader.Read(p)
	r.Lock()
	r.processed += int64(n)
	r.Unlock()
	return
}

// Close closes the underlying reader and stops the progress update ticker. It also calls the callback function
// one last time, with the "done" flag set. Calling Close more than once has no effect.
func (r *ProgressReader) Close() (err error) {
	r.Lock()
	defer r.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	err = r.reader.Close()
	if r.ticker != nil {
		r.ticker.Stop()
	}
	close(r.done)
	r.fn(r.snapshot(true))
	return
}

func (r *ProgressReader) tick(interval time.Duration) {
	r.Lock()
	if r.closed {
		r.Unlock()
		return
	}
	r.ticker = time.NewTicker(interval)
	r.Unlock()
	for {
		select {
		case <-r.done:
			return
		case <-r.ticker.C:
			r.RLock()
			p := r.snapshot(false)
			r.RUnlock()
			r.fn(p)
		}
	}
}

func (r *ProgressReader) snapshot(done bool) Progress {
	return Progress{
		Processed: r.processed,
		Total:     r.total,
		Elapsed:   time.Since(r.started),
		Done:      done,
	}
}
