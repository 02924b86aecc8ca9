package contract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Status is a canonical contract lifecycle key.
type Status string

// Untyped state names, shared with the lifecycle machine.
const (
	stateDraft           = "draft"
	stateCancelled       = "cancelled"
	stateInProgress      = "inProgress"
	stateSuspended       = "suspended"
	stateClosed          = "closed"
	stateClosedWithDelay = "closedWithDelay"
)

const (
	StatusDraft           Status = stateDraft
	StatusCancelled       Status = stateCancelled
	StatusInProgress      Status = stateInProgress
	StatusSuspended       Status = stateSuspended
	StatusClosed          Status = stateClosed
	StatusClosedWithDelay Status = stateClosedWithDelay
)

// Statuses returns the canonical enumeration in display order.
func Statuses() []Status {
	return []Status{
		StatusDraft,
		StatusInProgress,
		StatusSuspended,
		StatusCancelled,
		StatusClosed,
		StatusClosedWithDelay,
	}
}

// labels maps each canonical key to the localized label shown to operators.
var labels = map[Status]string{
	StatusDraft:           "Draft",
	StatusCancelled:       "Anuluar",
	StatusInProgress:      "Ne progres",
	StatusSuspended:       "Pezulluar",
	StatusClosed:          "Mbyllur",
	StatusClosedWithDelay: "Mbyllur me vonese",
}

// aliases maps folded legacy and canonical spellings to canonical keys.
// Keys are lower-case, accent-free and single-spaced (see foldStatus).
var aliases = map[string]Status{
	"draft":             StatusDraft,
	"ne pritje":         StatusDraft,
	"planifikuar":       StatusDraft,
	"cancelled":         StatusCancelled,
	"canceled":          StatusCancelled,
	"anuluar":           StatusCancelled,
	"anulluar":          StatusCancelled,
	"inprogress":        StatusInProgress,
	"in progress":       StatusInProgress,
	"in_progress":       StatusInProgress,
	"ne progres":        StatusInProgress,
	"ne proces":         StatusInProgress,
	"aktive":            StatusInProgress,
	"aktiv":             StatusInProgress,
	"suspended":         StatusSuspended,
	"pezulluar":         StatusSuspended,
	"ne pezullim":       StatusSuspended,
	"closed":            StatusClosed,
	"mbyllur":           StatusClosed,
	"perfunduar":        StatusClosed,
	"closedwithdelay":   StatusClosedWithDelay,
	"closed with delay": StatusClosedWithDelay,
	"closed_with_delay": StatusClosedWithDelay,
	"mbyllur me vonese": StatusClosedWithDelay,
	"me vonese":         StatusClosedWithDelay,
}

// Normalize maps any stored status string to its canonical key.
// Unknown input, including the empty string, maps to StatusDraft.
func Normalize(raw string) Status {
	if s, ok := Lookup(raw); ok {
		return s
	}

	return StatusDraft
}

// Lookup is Normalize without the draft default.
func Lookup(raw string) (Status, bool) {
	s, ok := aliases[foldStatus(raw)]
	return s, ok
}

// Label returns the localized display label of a canonical key.
func (s Status) Label() string {
	if l, ok := labels[Normalize(string(s))]; ok {
		return l
	}

	return labels[StatusDraft]
}

// Valid reports whether s is exactly one of the canonical keys.
func (s Status) Valid() bool {
	_, ok := labels[s]
	return ok
}

// Terminal reports whether no date change can move a contract out of s.
func (s Status) Terminal() bool {
	return s == StatusClosed || s == StatusClosedWithDelay || s == StatusCancelled
}

func foldStatus(raw string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, raw)
	if err != nil {
		folded = raw
	}

	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
