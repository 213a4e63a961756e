package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
	"time"
)

const (
	writerQueueLines   = 4096
	writerFlushEvery   = 250 * time.Millisecond
	writerDrainTimeout = 2 * time.Second
)

// asyncWriter fans log lines out to every output from a single goroutine.
// The queue is bounded; when it is full the caller blocks so lines are
// never dropped or reordered.
type asyncWriter struct {
	mu      sync.Mutex
	queue   chan []byte
	done    chan struct{}
	flushed chan chan struct{}
	outputs []*bufio.Writer
	closed  bool
}

func newAsyncWriter(outputs []io.Writer, bufSize int) *asyncWriter {
	if bufSize <= 0 {
		bufSize = 4 * 1024
	}
	w := &asyncWriter{
		queue:   make(chan []byte, writerQueueLines),
		done:    make(chan struct{}),
		flushed: make(chan chan struct{}),
		outputs: make([]*bufio.Writer, 0, len(outputs)),
	}
	for _, out := range outputs {
		w.outputs = append(w.outputs, bufio.NewWriterSize(out, bufSize))
	}
	go w.loop()
	return w
}

func (w *asyncWriter) Write(line []byte) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return errors.New("logger: writer closed")
	}
	w.mu.Unlock()

	buf := make([]byte, len(line))
	copy(buf, line)
	select {
	case w.queue <- buf:
		return nil
	case <-w.done:
		return errors.New("logger: writer closed")
	}
}

// Flush blocks until every queued line has reached the outputs.
func (w *asyncWriter) Flush() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	ack := make(chan struct{})
	select {
	case w.flushed <- ack:
	case <-w.done:
		return nil
	}
	select {
	case <-ack:
		return nil
	case <-time.After(writerDrainTimeout):
		return errors.New("logger: flush timed out")
	}
}

func (w *asyncWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.queue)
	select {
	case <-w.done:
	case <-time.After(writerDrainTimeout):
		return errors.New("logger: close timed out")
	}
	return nil
}

func (w *asyncWriter) loop() {
	defer close(w.done)
	ticker := time.NewTicker(writerFlushEvery)
	defer ticker.Stop()

	for {
		select {
		case line, ok := <-w.queue:
			if !ok {
				w.flushAll()
				return
			}
			w.writeAll(line)
		case ack := <-w.flushed:
			w.drainPending()
			w.flushAll()
			close(ack)
		case <-ticker.C:
			w.flushAll()
		}
	}
}

func (w *asyncWriter) drainPending() {
	for {
		select {
		case line, ok := <-w.queue:
			if !ok {
				return
			}
			w.writeAll(line)
		default:
			return
		}
	}
}

func (w *asyncWriter) writeAll(line []byte) {
	for _, out := range w.outputs {
		// A broken sink must not take the rest of the outputs with it.
		_, _ = out.Write(line)
	}
}

func (w *asyncWriter) flushAll() {
	for _, out := range w.outputs {
		_ = out.Flush()
	}
}
