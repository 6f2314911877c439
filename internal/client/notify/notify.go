// Package notify carries user-visible notices (the terminal equivalent of the
// web app's toasts). Controllers report outcomes here instead of printing, so
// tests can assert on what the user would have seen.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier receives user-facing outcome messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Writer prints notices to an io.Writer, one per line.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "✓ %s\n", msg)
}

func (n *Writer) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "✗ %s\n", msg)
}

// Recorder collects notices for tests.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}
