package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestFlowsLifecycle(t *testing.T) {
	t.Parallel()
	clock := clockwork.NewFakeClock()
	flows := NewFlows(clock, time.Minute)

	fl := flows.Open("u1", "c1")
	_, err := uuid.Parse(fl.ID)
	assert.NoError(t, err)
	assert.Equal(t, "u1", fl.Owner)

	got, state := flows.Lookup(fl.ID)
	assert.Equal(t, FlowOpen, state)
	assert.Equal(t, fl, got)

	assert.True(t, flows.Complete(fl.ID))
	assert.False(t, flows.Complete(fl.ID))

	_, state = flows.Lookup(fl.ID)
	assert.Equal(t, FlowUnknown, state)
}

func TestFlowsExpiry(t *testing.T) {
	t.Parallel()
	clock := clockwork.NewFakeClock()
	flows := NewFlows(clock, time.Minute)

	first := flows.Open("u1", "c1")
	clock.Advance(59 * time.Second)
	_, state := flows.Lookup(first.ID)
	assert.Equal(t, FlowOpen, state)

	clock.Advance(time.Second)
	_, state = flows.Lookup(first.ID)
	assert.Equal(t, FlowExpired, state)
	_, state = flows.Lookup(first.ID)
	assert.Equal(t, FlowUnknown, state, "expired flows are dropped")

	flows.Open("u1", "c1")
	clock.Advance(time.Minute)
	flows.Open("u2", "c1")
	assert.Equal(t, 1, flows.tracked(), "opening prunes expired flows")
}
