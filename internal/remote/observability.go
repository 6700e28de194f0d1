package remote

import (
	"fmt"
	"io"
	"time"
)

// SyncEvent records metadata about a single remote store call.
type SyncEvent struct {
	Op        string // "save", "load", "delete"
	PlanID    string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about remote store calls for logging and the
// sync indicator.
type Observer interface {
	OnSyncComplete(event SyncEvent)
}

// LogObserver writes sync events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnSyncComplete(event SyncEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] sync_call op=%s plan=%s latency_ms=%d status=%s\n",
		ts, event.Op, event.PlanID, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnSyncComplete(SyncEvent) {}
