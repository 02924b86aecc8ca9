package contract

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/statekit"
)

// ErrTransitionNotAllowed is returned when an event does not apply to the
// contract's effective status.
var ErrTransitionNotAllowed = errors.New("transition not allowed")

// Event is an operator action on a contract.
type Event string

const (
	eventSuspend = "suspend"
	eventResume  = "resume"
	eventCancel  = "cancel"
	eventClose   = "close"
	eventReopen  = "reopen"
)

const (
	EventSuspend Event = eventSuspend
	EventResume  Event = eventResume
	EventCancel  Event = eventCancel
	EventClose   Event = eventClose
	EventReopen  Event = eventReopen
)

// Events lists every operator action.
func Events() []Event {
	return []Event{EventSuspend, EventResume, EventCancel, EventClose, EventReopen}
}

// Patch is the set of stored fields the backend must write after a transition.
type Patch struct {
	Status         Status
	ClosedManually bool
	ClosedDate     *time.Time
}

type lifecycleContext struct {
	Contract Contract
	Now      time.Time
}

// reopenable reports whether clearing the closure of c moves it out of its
// current effective status. An overdue contract stays closedWithDelay.
func reopenable(ctx lifecycleContext, _ statekit.Event) bool {
	reopened := Patch{Status: StatusInProgress}.Apply(ctx.Contract)

	return Resolve(reopened, ctx.Now) != Resolve(ctx.Contract, ctx.Now)
}

func newLifecycle(initial Status, c Contract, now time.Time) (*statekit.Interpreter[lifecycleContext], error) {
	builder := statekit.NewMachine[lifecycleContext]("contract-lifecycle").
		WithInitial(statekit.StateID(initial)).
		WithContext(lifecycleContext{Contract: c, Now: now}).
		WithGuard("reopenable", reopenable)

	builder.State(stateDraft).
		On(eventCancel).Target(stateCancelled).
		On(eventClose).Target(stateClosed).
		Done()

	builder.State(stateInProgress).
		On(eventSuspend).Target(stateSuspended).
		On(eventCancel).Target(stateCancelled).
		On(eventClose).Target(stateClosed).
		Done()

	builder.State(stateSuspended).
		On(eventResume).Target(stateInProgress).
		On(eventCancel).Target(stateCancelled).
		On(eventClose).Target(stateClosed).
		Done()

	builder.State(stateClosedWithDelay).
		On(eventClose).Target(stateClosed).
		On(eventReopen).Target(stateInProgress).Guard("reopenable").
		Done()

	builder.State(stateClosed).
		On(eventReopen).Target(stateInProgress).Guard("reopenable").
		Done()

	builder.State(stateCancelled).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building lifecycle machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return interpreter, nil
}

// Transition applies event to the effective status of c on the day of now
// and returns the fields to store.
func Transition(c Contract, event Event, now time.Time) (Patch, error) {
	from := Resolve(c, now)

	sm, err := newLifecycle(from, c, now)
	if err != nil {
		return Patch{}, err
	}

	sm.Send(statekit.Event{Type: statekit.EventType(event)})

	to := Status(sm.State().Value)
	if to == from {
		return Patch{}, fmt.Errorf("%w: %s while %s", ErrTransitionNotAllowed, event, from)
	}

	switch to {
	case StatusClosed:
		today := dayOf(now)

		return Patch{Status: StatusClosed, ClosedManually: true, ClosedDate: &today}, nil
	default:
		// Reopening clears the manual closure together with its date.
		return Patch{Status: to}, nil
	}
}

// Allowed returns the events that apply to c on the day of now.
func Allowed(c Contract, now time.Time) []Event {
	var allowed []Event

	for _, e := range Events() {
		if _, err := Transition(c, e, now); err == nil {
			allowed = append(allowed, e)
		}
	}

	return allowed
}

// Apply returns c with the stored fields of p written to it.
func (p Patch) Apply(c Contract) Contract {
	c.Status = string(p.Status)
	c.ClosedManually = p.ClosedManually
	c.ClosedDate = p.ClosedDate

	return c
}
