package bridge

import (
	"sync"
	"time"
)

// historySize bounds the invocation audit ring.
const historySize = 16

// InvocationRecord is the audit entry kept for one completed invocation.
type InvocationRecord struct {
	ID        string      `json:"id"`
	Action    Action      `json:"action"`
	Runtime   RuntimeKind `json:"runtime"`
	Outcome   string      `json:"outcome"` // "success" or a failure kind
	Message   string      `json:"message,omitempty"`
	ExitCode  int         `json:"exit_code"`
	// Duration is kept in native form; DurationMS is the serialized view.
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
	StartedAt  time.Time     `json:"started_at"`
}

// Diagnostics keeps a bounded ring of recent invocation records. The debug
// operation surfaces them so a failing environment can be inspected without
// log access.
type Diagnostics struct {
	mu      sync.RWMutex
	records []InvocationRecord
	next    int
	total   uint64
}

// NewDiagnostics creates an empty recorder.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		records: make([]InvocationRecord, 0, historySize),
	}
}

// Record appends one invocation record, evicting the oldest past capacity.
func (d *Diagnostics) Record(rec InvocationRecord) {
	rec.DurationMS = rec.Duration.Milliseconds()

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.records) < historySize {
		d.records = append(d.records, rec)
	} else {
		d.records[d.next] = rec
	}
	d.next = (d.next + 1) % historySize
	d.total++
}

// Last returns the most recent record, if any.
func (d *Diagnostics) Last() (InvocationRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if len(d.records) == 0 {
		return InvocationRecord{}, false
	}
	idx := (d.next - 1 + len(d.records)) % len(d.records)
	return d.records[idx], true
}

// History returns records oldest-first.
func (d *Diagnostics) History() []InvocationRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]InvocationRecord, 0, len(d.records))
	if len(d.records) < historySize {
		out = append(out, d.records...)
		return out
	}
	for i := 0; i < historySize; i++ {
		out = append(out, d.records[(d.next+i)%historySize])
	}
	return out
}

// Total returns how many invocations have been recorded since startup.
func (d *Diagnostics) Total() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.total
}
