package view

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/hospital-admin/internal/storage"
	"github.com/aanand-mishra/hospital-admin/internal/types"
)

// Manager owns one view's State and dispatches the view's actions to the
// hospital collection.
//
// The mutex guards memory only and is never held across a remote call.
// Overlapping actions are not sequenced: whichever reply lands last
// decides the roster and the banner.
type Manager struct {
	storage storage.Storage
	log     *slog.Logger

	mu    sync.Mutex
	state State

	mountOnce sync.Once
}

// New returns a Manager in the Initial state. A nil logger falls back to
// slog.Default().
func New(s storage.Storage, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		storage: s,
		log:     log,
		state:   Initial(),
	}
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// update applies a transition under the lock and returns the new state.
func (m *Manager) update(fn func(State) State) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = fn(m.state)
	return m.state
}

// Mount performs the initial roster fetch. Only the first call does
// anything.
func (m *Manager) Mount(ctx context.Context) {
	m.mountOnce.Do(func() {
		m.RefreshRoster(ctx)
	})
}

// RefreshRoster replaces the roster with the collection's current
// contents. On failure the roster is kept and a failure banner is shown.
func (m *Manager) RefreshRoster(ctx context.Context) {
	roster, err := m.storage.GetHospitals(ctx)
	if err != nil {
		m.log.Warn("fetch hospitals failed", slog.String("error", err.Error()))
		m.update(func(s State) State { return s.WithStatus(Failure(msgFetchFailed)) })
		return
	}

	m.update(func(s State) State { return s.WithRoster(roster) })
}

// UpdateDraftField sets one draft attribute by name.
func (m *Manager) UpdateDraftField(field, value string) error {
	var err error
	m.update(func(s State) State {
		var next State
		next, err = s.WithDraftField(field, value)
		return next
	})
	return err
}

// SetLookupKey records the id typed into the lookup box.
func (m *Manager) SetLookupKey(key string) {
	m.update(func(s State) State { return s.WithLookupKey(key) })
}

// ValidateDraft reports whether every draft attribute is filled in. On
// failure the banner names the first blank field.
func (m *Manager) ValidateDraft() bool {
	var ok bool
	m.update(func(s State) State {
		var next State
		next, ok = s.ValidateDraft()
		return next
	})
	return ok
}

// CreateRecord submits the draft as a new record. Nothing is sent unless
// the draft validates.
func (m *Manager) CreateRecord(ctx context.Context) {
	hospital, ok := m.submittable()
	if !ok {
		return
	}

	if err := m.storage.AddHospital(ctx, hospital); err != nil {
		m.log.Warn("add hospital failed",
			slog.Int("id", hospital.ID),
			slog.String("error", err.Error()))
		m.update(func(s State) State { return s.WithStatus(Failure(msgAddFailed)) })
		return
	}

	m.log.Info("hospital added", slog.Int("id", hospital.ID))
	m.update(func(s State) State { return s.WithStatus(Success(msgAdded)) })
	m.RefreshRoster(ctx)
	m.update(State.CancelEdit)
}

// ReplaceRecord submits the draft as a full replacement of the record with
// the same id. Nothing is sent unless the draft validates.
func (m *Manager) ReplaceRecord(ctx context.Context) {
	hospital, ok := m.submittable()
	if !ok {
		return
	}

	if err := m.storage.UpdateHospital(ctx, hospital); err != nil {
		m.log.Warn("update hospital failed",
			slog.Int("id", hospital.ID),
			slog.String("error", err.Error()))
		m.update(func(s State) State { return s.WithStatus(Failure(msgUpdateFailed)) })
		return
	}

	m.log.Info("hospital updated", slog.Int("id", hospital.ID))
	m.update(func(s State) State { return s.WithStatus(Success(msgUpdated)) })
	m.RefreshRoster(ctx)
	m.update(State.CancelEdit)
}

// DeleteRecord removes a record by id. The collection's reply is shown as
// the banner unchanged.
func (m *Manager) DeleteRecord(ctx context.Context, id string) {
	msg, err := m.storage.DeleteHospitalByID(ctx, id)
	if err != nil {
		m.log.Warn("delete hospital failed",
			slog.String("id", id),
			slog.String("error", err.Error()))
		m.update(func(s State) State { return s.WithStatus(Failure(msgDeleteFailed)) })
		return
	}

	m.log.Info("hospital deleted", slog.String("id", id))
	m.update(func(s State) State { return s.WithStatus(Success(msg)) })
	m.RefreshRoster(ctx)
}

// FetchByID looks up a single record. On failure the previous result is
// cleared.
func (m *Manager) FetchByID(ctx context.Context, id string) {
	hospital, err := m.storage.GetHospitalByID(ctx, id)
	if err != nil {
		m.log.Debug("hospital lookup failed",
			slog.String("id", id),
			slog.String("error", err.Error()))
		m.update(func(s State) State {
			return s.WithLookup(nil).WithStatus(Failure(msgNotFound))
		})
		return
	}

	m.update(func(s State) State {
		return s.WithLookup(&hospital).WithStatus(Status{})
	})
}

// BeginEdit loads a record into the draft and switches to editing mode.
func (m *Manager) BeginEdit(hospital types.Hospital) {
	m.update(func(s State) State { return s.BeginEdit(hospital) })
}

// CancelEdit discards the draft and returns to composing mode.
func (m *Manager) CancelEdit() {
	m.update(State.CancelEdit)
}

// submittable validates the draft and converts it into a wire record.
func (m *Manager) submittable() (types.Hospital, bool) {
	var (
		hospital types.Hospital
		ok       bool
	)
	m.update(func(s State) State {
		s, ok = s.ValidateDraft()
		if !ok {
			return s
		}
		h, err := s.Draft.Hospital()
		if err != nil {
			ok = false
			return s.WithStatus(Failure(msgNumericID))
		}
		hospital = h
		return s
	})
	return hospital, ok
}
