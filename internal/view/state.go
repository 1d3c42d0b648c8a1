// Package view implements the record manager view: the state behind the
// hospital form, the id lookup and the roster table, plus the controller
// that moves that state in response to user actions and remote replies.
//
// State is a plain value. Every transition on it returns a new State and
// leaves the receiver untouched; the Manager is the only place that swaps
// one State for the next.
package view

import (
	"github.com/aanand-mishra/hospital-admin/internal/types"
)

// StatusKind classifies the banner message.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusFailure
)

func (k StatusKind) String() string {
	switch k {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "error"
	default:
		return "none"
	}
}

// MarshalText lets the kind appear by name in JSON snapshots.
func (k StatusKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Status is the banner message shown above the form.
type Status struct {
	Kind StatusKind `json:"kind"`
	Text string     `json:"text"`
}

// Success and Failure build a Status of the matching kind.
func Success(text string) Status { return Status{Kind: StatusSuccess, Text: text} }
func Failure(text string) Status { return Status{Kind: StatusFailure, Text: text} }

// IsZero reports whether there is no message to show. An empty text is
// never shown, whatever its kind.
func (s Status) IsZero() bool { return s.Text == "" }

// State is everything the view renders.
type State struct {
	Roster    []types.Hospital `json:"roster"`
	Draft     types.Draft      `json:"draft"`
	LookupKey string           `json:"lookup_key"`
	Lookup    *types.Hospital  `json:"lookup"`
	Status    Status           `json:"status"`
	Editing   bool             `json:"editing"`
}

// Initial is the state of a freshly mounted view.
func Initial() State {
	return State{
		Roster: make([]types.Hospital, 0),
		Draft:  types.EmptyDraft(),
	}
}

// Clone returns a deep copy, so callers can hold a snapshot while the
// Manager keeps moving.
func (s State) Clone() State {
	roster := make([]types.Hospital, len(s.Roster))
	copy(roster, s.Roster)
	s.Roster = roster

	if s.Lookup != nil {
		h := *s.Lookup
		s.Lookup = &h
	}
	return s
}

// WithRoster replaces the roster.
func (s State) WithRoster(roster []types.Hospital) State {
	s.Roster = roster
	return s.Clone()
}

// WithStatus replaces the banner message.
func (s State) WithStatus(status Status) State {
	s.Status = status
	return s
}

// WithDraftField sets one draft attribute. No validation happens here.
func (s State) WithDraftField(field, value string) (State, error) {
	d, err := s.Draft.Set(field, value)
	if err != nil {
		return s, err
	}
	s.Draft = d
	return s, nil
}

// WithLookupKey records the id typed into the lookup box.
func (s State) WithLookupKey(key string) State {
	s.LookupKey = key
	return s
}

// WithLookup stores a lookup result; nil clears it.
func (s State) WithLookup(h *types.Hospital) State {
	if h != nil {
		c := *h
		h = &c
	}
	s.Lookup = h
	return s
}

// BeginEdit loads a record into the draft and switches to editing mode.
func (s State) BeginEdit(h types.Hospital) State {
	s.Draft = types.DraftFrom(h)
	s.Editing = true
	s.Status = Success(editingMessage(h.ID))
	return s
}

// CancelEdit resets the draft and returns to composing mode. The status
// message is left as it was.
func (s State) CancelEdit() State {
	s.Draft = types.EmptyDraft()
	s.Editing = false
	return s
}

// ValidateDraft checks the draft and, on failure, returns a state carrying
// the message for the first offending field.
func (s State) ValidateDraft() (State, bool) {
	if msg, ok := validateDraft(s.Draft); !ok {
		s.Status = Failure(msg)
		return s, false
	}
	return s, true
}
