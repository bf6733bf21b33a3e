// Package worklog records free-text audit events for executed commands.
// Recording is fire-and-forget: callers never consume a return value.
package worklog

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is a single recorded work event.
type Entry struct {
	ID        string
	Timestamp time.Time
	Event     string
}

// Log accumulates work events in memory and optionally mirrors them to a
// writer (one line per event).
type Log struct {
	mu      sync.Mutex
	entries []Entry
	sink    io.Writer
}

// New creates an in-memory work log. sink may be nil.
func New(sink io.Writer) *Log {
	return &Log{sink: sink}
}

// Record appends an event. Sink write failures are ignored; the work log must
// never fail the command that produced the event.
func (l *Log) Record(event string) {
	e := Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Event:     event,
	}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	if l.sink != nil {
		_, _ = fmt.Fprintf(l.sink, "%s %s\n", e.Timestamp.Format(time.RFC3339), e.Event)
	}
}

// Entries returns a copy of all recorded events in order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
