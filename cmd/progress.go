package cmd

import (
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/pasteclient/mypaste/util"
	"golang.org/x/time/rate"
	"io"
	"strings"
	"sync"
	"time"
)

const progressInterval = 200 * time.Millisecond

// progressPrinter renders transfer progress as a single, continuously overwritten line. Updates that
// arrive faster than progressInterval are dropped; the final update is always printed, and only claims
// 100% if the whole transfer went through.
type progressPrinter struct {
	writer  io.Writer
	label   string
	limiter *rate.Limiter
	prevLen int
	mu      sync.Mutex
}

func newProgressPrinter(writer io.Writer, label string) *progressPrinter {
	return &progressPrinter{
		writer:  writer,
		label:   label,
		limiter: rate.NewLimiter(rate.Every(progressInterval), 1),
	}
}

func (p *progressPrinter) Print(progress util.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if progress.Done {
		if p.prevLen == 0 {
			return
		}
		var line string
		if progress.Known() && progress.Processed < progress.Total {
			line = fmt.Sprintf("%s / %s (%.f%%), incomplete", humanize.Bytes(uint64(progress.Processed)),
				humanize.Bytes(uint64(progress.Total)), progress.Fraction()*100)
		} else {
			line = fmt.Sprintf("%s in %s (100%%)", humanize.Bytes(uint64(progress.Processed)), util.DurationToHuman(progress.Elapsed))
		}
		fmt.Fprintf(p.writer, "\r%s\r\n", p.pad(line))
		p.prevLen = 0
		return
	}
	if !p.limiter.Allow() {
		return
	}
	var line string
	if progress.Known() {
		line = fmt.Sprintf("%s / %s (%.f%%), %s left", humanize.Bytes(uint64(progress.Processed)),
			humanize.Bytes(uint64(progress.Total)), progress.Fraction()*100, util.DurationToHuman(progress.Remaining()))
	} else {
		line = fmt.Sprintf("%s... %s", p.label, humanize.Bytes(uint64(progress.Processed)))
	}
	fmt.Fprintf(p.writer, "\r%s", p.pad(line))
	p.prevLen = len(line)
}

// pad appends spaces to line to fully overwrite the previous line
func (p *progressPrinter) pad(line string) string {
	if len(line) < p.prevLen {
		return line + strings.Repeat(" ", p.prevLen-len(line))
	}
	return line
}
