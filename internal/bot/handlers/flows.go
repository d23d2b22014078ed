package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Flow is an open sign selection menu. Only Owner may answer it.
type Flow struct {
	ID        string
	Owner     string
	ChannelID string
	Expires   time.Time
}

// FlowState is the outcome of looking a flow up.
type FlowState int

const (
	FlowOpen FlowState = iota
	FlowExpired
	FlowUnknown
)

func (s FlowState) String() string {
	switch s {
	case FlowOpen:
		return "open"
	case FlowExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Flows tracks open selection menus. A flow ends when it is answered or when
// its timeout passes; expiry never writes anything.
type Flows struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	timeout time.Duration
	open    map[string]Flow
}

// NewFlows returns an empty registry whose flows live for timeout.
func NewFlows(clock clockwork.Clock, timeout time.Duration) *Flows {
	return &Flows{clock: clock, timeout: timeout, open: make(map[string]Flow)}
}

// Open starts a flow for owner in channelID.
func (f *Flows) Open(owner, channelID string) Flow {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.clock.Now()
	f.prune(now)

	fl := Flow{
		ID:        uuid.NewString(),
		Owner:     owner,
		ChannelID: channelID,
		Expires:   now.Add(f.timeout),
	}
	f.open[fl.ID] = fl
	return fl
}

// Lookup returns the flow with id and whether it can still be answered.
func (f *Flows) Lookup(id string) (Flow, FlowState) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fl, ok := f.open[id]
	if !ok {
		return Flow{}, FlowUnknown
	}
	if !f.clock.Now().Before(fl.Expires) {
		delete(f.open, id)
		return fl, FlowExpired
	}
	return fl, FlowOpen
}

// Complete ends the flow with id. It reports false when another answer
// already completed it.
func (f *Flows) Complete(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.open[id]; !ok {
		return false
	}
	delete(f.open, id)
	return true
}

// tracked returns the number of flows held, expired ones included.
func (f *Flows) tracked() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.open)
}

func (f *Flows) prune(now time.Time) {
	for id, fl := range f.open {
		if !now.Before(fl.Expires) {
			delete(f.open, id)
		}
	}
}
