package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/pipeline"
	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/writer"
)

// TestProgressTicker_Line formats the status from live counters.
func TestProgressTicker_Line(t *testing.T) {
	var counters pipeline.Counters
	counters.FoldersTotal.Store(4)
	counters.FoldersDone.Store(2)
	counters.FoldersFailed.Store(1)
	counters.ThreadsEmitted.Store(123)

	sink := writer.NewSink(t.TempDir(), 0, false, 4)
	defer sink.Close()

	p := newProgressTicker(&counters, sink, &bytes.Buffer{}, time.Second)
	line := p.line()

	if !strings.HasPrefix(line, "3/4 folders") {
		t.Errorf("line = %q, want prefix %q", line, "3/4 folders")
	}
	if !strings.Contains(line, "123 threads") {
		t.Errorf("line = %q, missing thread count", line)
	}
}

// TestProgressTicker_StartStop is idempotent and writes a final line.
func TestProgressTicker_StartStop(t *testing.T) {
	var counters pipeline.Counters
	sink := writer.NewSink(t.TempDir(), 0, false, 4)
	defer sink.Close()

	var buf bytes.Buffer
	p := newProgressTicker(&counters, sink, &buf, 10*time.Millisecond)

	p.Start()
	p.Start() // no-op
	time.Sleep(35 * time.Millisecond)
	p.Stop()
	p.Stop() // no-op

	if !strings.Contains(buf.String(), "folders") {
		t.Errorf("no progress output: %q", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("final redraw missing trailing newline")
	}
}
