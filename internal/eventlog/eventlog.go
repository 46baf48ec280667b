// Package eventlog keeps a bounded in-memory history of decoded protocol
// messages, feeding the listen command and the events view of the TUI.
package eventlog

import (
	"sync"
	"time"

	"github.com/clemctl/clemctl/internal/remotemsg"
)

const defaultCapacity = 200

// Entry is one decoded message with the time it arrived.
type Entry struct {
	Time    time.Time
	Type    remotemsg.MsgType
	Summary string
}

// Log is a fixed-capacity ring of entries; appending beyond capacity
// discards the oldest. Safe for concurrent use.
type Log struct {
	mu    sync.Mutex
	ring  []Entry
	idx   int
	count int
}

// New returns a log retaining the most recent capacity entries. A
// non-positive capacity falls back to a default of 200.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Log{ring: make([]Entry, capacity)}
}

// Record appends an entry for msg stamped with now.
func (l *Log) Record(now time.Time, msg *remotemsg.Message) {
	l.Append(Entry{Time: now, Type: msg.Type, Summary: Describe(msg)})
}

// Append adds one entry, dropping the oldest once the ring is full.
func (l *Log) Append(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.ring[l.idx] = e
	l.idx = (l.idx + 1) % len(l.ring)
	if l.count < len(l.ring) {
		l.count++
	}
}

// Entries returns the retained entries, oldest first. The slice is a copy.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]Entry, l.count)
	if l.count == len(l.ring) {
		for i := 0; i < l.count; i++ {
			entries[i] = l.ring[(l.idx+i)%len(l.ring)]
		}
	} else {
		copy(entries, l.ring[:l.count])
	}
	return entries
}

// Len reports how many entries are currently retained.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
