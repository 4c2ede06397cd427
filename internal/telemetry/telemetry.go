// Package telemetry holds the per-collection counters a sync cycle
// records. The engine only writes them; aggregation and reporting belong
// to the caller.
package telemetry

import (
	"fmt"
	"time"
)

// EngineIncoming counts what happened to downloaded records.
type EngineIncoming struct {
	Applied    int `json:"applied,omitempty"`
	Failed     int `json:"failed,omitempty"`
	NewFailed  int `json:"newFailed,omitempty"`
	Reconciled int `json:"reconciled,omitempty"`
}

// IsEmpty reports whether no counter was incremented.
func (i EngineIncoming) IsEmpty() bool {
	return i == EngineIncoming{}
}

// EngineOutgoing counts one upload.
type EngineOutgoing struct {
	Sent   int `json:"sent,omitempty"`
	Failed int `json:"failed,omitempty"`
}

// Failure describes why a collection sync failed.
type Failure struct {
	Name    string `json:"name"`
	Message string `json:"error,omitempty"`
}

// Engine collects the counters for one collection over one sync cycle.
type Engine struct {
	Name     string           `json:"name"`
	Incoming *EngineIncoming  `json:"incoming,omitempty"`
	Outgoing []EngineOutgoing `json:"outgoing,omitempty"`
	Failure  *Failure         `json:"failureReason,omitempty"`
	Took     time.Duration    `json:"took,omitempty"`

	started time.Time
}

// NewEngine returns an empty engine record for collection.
func NewEngine(name string) *Engine {
	return &Engine{Name: name, started: time.Now()}
}

// AddIncoming adds the counts in inc to the engine totals.
func (e *Engine) AddIncoming(inc EngineIncoming) {
	if inc.IsEmpty() {
		return
	}
	if e.Incoming == nil {
		e.Incoming = &EngineIncoming{}
	}
	e.Incoming.Applied += inc.Applied
	e.Incoming.Failed += inc.Failed
	e.Incoming.NewFailed += inc.NewFailed
	e.Incoming.Reconciled += inc.Reconciled
}

// AddOutgoing records one upload.
func (e *Engine) AddOutgoing(out EngineOutgoing) {
	e.Outgoing = append(e.Outgoing, out)
}

// SetFailure records err as the reason the cycle failed. Only the first
// failure is kept.
func (e *Engine) SetFailure(name string, err error) {
	if e.Failure != nil || err == nil {
		return
	}
	e.Failure = &Failure{Name: name, Message: err.Error()}
}

// Finish stamps the elapsed time since NewEngine.
func (e *Engine) Finish() {
	if !e.started.IsZero() {
		e.Took = time.Since(e.started)
	}
}

// TotalSent sums Sent over all uploads.
func (e *Engine) TotalSent() int {
	n := 0
	for _, o := range e.Outgoing {
		n += o.Sent
	}
	return n
}

// TotalFailed sums Failed over all uploads.
func (e *Engine) TotalFailed() int {
	n := 0
	for _, o := range e.Outgoing {
		n += o.Failed
	}
	return n
}

func (e *Engine) String() string {
	inc := EngineIncoming{}
	if e.Incoming != nil {
		inc = *e.Incoming
	}
	return fmt.Sprintf("%s: applied=%d failed=%d reconciled=%d sent=%d upload_failed=%d",
		e.Name, inc.Applied, inc.Failed, inc.Reconciled, e.TotalSent(), e.TotalFailed())
}
