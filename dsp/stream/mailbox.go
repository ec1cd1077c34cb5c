package stream

import (
	"fmt"
	"sync/atomic"
)

// State is the content of the scheduler mailbox.
type State uint32

const (
	StateIdle State = iota
	StateHalfReady
	StateFullReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHalfReady:
		return "half-ready"
	case StateFullReady:
		return "full-ready"
	}
	return fmt.Sprintf("state(%d)", uint32(s))
}

// Half returns the buffer region a ready state refers to.
func (s State) Half() (Half, bool) {
	switch s {
	case StateHalfReady:
		return HalfFirst, true
	case StateFullReady:
		return HalfSecond, true
	}
	return 0, false
}

// Event is a transfer engine notification.
type Event uint8

const (
	// EventHalfComplete reports that the first half may be processed.
	EventHalfComplete Event = iota
	// EventFullComplete reports that the second half may be processed.
	EventFullComplete
)

func (e Event) String() string {
	if e == EventHalfComplete {
		return "half-complete"
	}
	return "full-complete"
}

// State returns the mailbox state the event requests.
func (e Event) State() State {
	if e == EventHalfComplete {
		return StateHalfReady
	}
	return StateFullReady
}

// EventFor returns the event announcing half h.
func EventFor(h Half) Event {
	if h == HalfFirst {
		return EventHalfComplete
	}
	return EventFullComplete
}

// Policy decides what a notification does to an occupied mailbox.
type Policy uint8

const (
	// PolicyReject keeps the pending state and refuses the new one.
	PolicyReject Policy = iota
	// PolicyOverwrite replaces the pending state with the new one.
	PolicyOverwrite
	// PolicyFatal refuses the new state and stops the scheduler.
	PolicyFatal
)

func (p Policy) String() string {
	switch p {
	case PolicyReject:
		return "reject"
	case PolicyOverwrite:
		return "overwrite"
	case PolicyFatal:
		return "fatal"
	}
	return fmt.Sprintf("policy(%d)", uint8(p))
}

// ParsePolicy maps a policy name to its value.
func ParsePolicy(name string) (Policy, error) {
	for _, p := range []Policy{PolicyReject, PolicyOverwrite, PolicyFatal} {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown overrun policy %q", name)
}

// Mailbox is a single-slot, lock-free hand-off of one ready state from the
// notifier to the processing goroutine.
type Mailbox struct {
	state    atomic.Uint32
	policy   Policy
	overruns atomic.Uint64
}

// NewMailbox returns an idle mailbox using policy p.
func NewMailbox(p Policy) *Mailbox {
	return &Mailbox{policy: p}
}

// Post offers s to the mailbox. It fails with ErrOverrun when the slot is
// occupied, unless the policy is PolicyOverwrite, in which case the slot is
// replaced and the overrun is only counted.
func (m *Mailbox) Post(s State) error {
	if m.state.CompareAndSwap(uint32(StateIdle), uint32(s)) {
		return nil
	}

	m.overruns.Add(1)
	if m.policy == PolicyOverwrite {
		prev := State(m.state.Swap(uint32(s)))
		if prev == StateIdle {
			// Drained in between; nothing was lost.
			m.overruns.Add(^uint64(0))
		}
		return nil
	}
	return fmt.Errorf("%w: %s pending, %s refused", ErrOverrun, m.Peek(), s)
}

// Peek returns the current state without consuming it.
func (m *Mailbox) Peek() State { return State(m.state.Load()) }

// Release returns the mailbox to idle if it still holds s. A state posted
// over s in the meantime survives. It reports whether s was released.
func (m *Mailbox) Release(s State) bool {
	return m.state.CompareAndSwap(uint32(s), uint32(StateIdle))
}

// Overruns returns the number of notifications that found the slot
// occupied.
func (m *Mailbox) Overruns() uint64 { return m.overruns.Load() }

// Policy returns the overrun policy.
func (m *Mailbox) Policy() Policy { return m.policy }
