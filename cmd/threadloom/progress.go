package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/pipeline"
	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/writer"
)

// progressTicker redraws a one-line status on an interval so long runs
// don't look frozen.
//
// # Thread Safety
//
// Start/Stop may be called from different goroutines; Stop is idempotent.
// The counters and sink it reads are atomic by contract.
type progressTicker struct {
	counters *pipeline.Counters
	sink     *writer.Sink
	out      io.Writer
	interval time.Duration

	mu      sync.Mutex
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

func newProgressTicker(counters *pipeline.Counters, sink *writer.Sink, out io.Writer, interval time.Duration) *progressTicker {
	return &progressTicker{
		counters: counters,
		sink:     sink,
		out:      out,
		interval: interval,
	}
}

// Start begins redrawing. Calling Start on a running ticker is a no-op.
func (p *progressTicker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})

	go func() {
		defer close(p.doneCh)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stopCh:
				return
			case <-ticker.C:
				fmt.Fprintf(p.out, "\r\033[K%s", p.line())
			}
		}
	}()
}

// Stop halts redrawing, draws the final state, and moves to a fresh line.
func (p *progressTicker) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	close(p.stopCh)
	<-p.doneCh
	fmt.Fprintf(p.out, "\r\033[K%s\n", p.line())
}

// line formats the current status from the shared counters.
func (p *progressTicker) line() string {
	return fmt.Sprintf("%d/%d folders | %d threads | queue %d | %s written",
		p.counters.FoldersProcessed(),
		p.counters.FoldersTotal.Load(),
		p.counters.ThreadsEmitted.Load(),
		p.sink.QueueDepth(),
		humanize.Bytes(uint64(p.sink.BytesWritten())),
	)
}
