package runner

import (
	"sync"

	"shellward/internal/output"
)

// elisionMarker separates the head and tail segments of an overflowed buffer.
const elisionMarker = "\n[... output elided ...]\n"

// HeadTailBuffer is a bounded capture buffer. Under the cap it keeps
// everything; over the cap it keeps the first half and the most recent half,
// so both the start of a command's output and its final lines survive a flood.
type HeadTailBuffer struct {
	mu           sync.Mutex
	headMax      int
	tailMax      int
	head         []byte
	tail         []byte // ring content, already ordered oldest-first
	totalWritten int64
	overflowed   bool
}

// NewHeadTailBuffer creates a buffer retaining at most maxBytes, split evenly
// between head and tail. maxBytes <= 0 uses output.MaxCaptureBytes.
func NewHeadTailBuffer(maxBytes int) *HeadTailBuffer {
	if maxBytes <= 0 {
		maxBytes = output.MaxCaptureBytes
	}
	half := maxBytes / 2
	return &HeadTailBuffer{headMax: maxBytes - half, tailMax: half}
}

// Push appends data. Safe for concurrent use by multiple reader goroutines.
func (b *HeadTailBuffer) Push(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.totalWritten += int64(len(data))

	if room := b.headMax - len(b.head); room > 0 {
		take := len(data)
		if take > room {
			take = room
		}
		b.head = append(b.head, data[:take]...)
		data = data[take:]
	}
	if len(data) == 0 {
		return
	}

	b.overflowed = true
	b.tail = append(b.tail, data...)
	if excess := len(b.tail) - b.tailMax; excess > 0 {
		b.tail = append(b.tail[:0], b.tail[excess:]...)
	}
}

// Snapshot returns the retained output. When the buffer overflowed, the head
// and tail are joined with an elision marker.
func (b *HeadTailBuffer) Snapshot() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.overflowed {
		out := make([]byte, len(b.head))
		copy(out, b.head)
		return out
	}

	out := make([]byte, 0, len(b.head)+len(elisionMarker)+len(b.tail))
	out = append(out, b.head...)
	out = append(out, elisionMarker...)
	out = append(out, b.tail...)
	return out
}

// TotalWritten returns the number of bytes pushed, including discarded ones.
func (b *HeadTailBuffer) TotalWritten() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalWritten
}

// Overflowed reports whether any bytes were discarded.
func (b *HeadTailBuffer) Overflowed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.overflowed
}
