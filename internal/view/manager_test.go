package view

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/aanand-mishra/hospital-admin/internal/config"
	"github.com/aanand-mishra/hospital-admin/internal/storage"
	"github.com/aanand-mishra/hospital-admin/internal/storage/hospitalapi"
	"github.com/aanand-mishra/hospital-admin/internal/types"
)

// fakeStorage is an in-memory collection that records every call.
type fakeStorage struct {
	mu      sync.Mutex
	calls   []string
	records []types.Hospital
	fail    map[string]bool
	deleted string
}

func newFakeStorage(records ...types.Hospital) *fakeStorage {
	return &fakeStorage{records: records, fail: map[string]bool{}, deleted: "Deleted successfully"}
}

func (f *fakeStorage) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if f.fail[call] {
		return fmt.Errorf("%s: %w", call, storage.ErrRemoteCall)
	}
	return nil
}

func (f *fakeStorage) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeStorage) GetHospitals(ctx context.Context) ([]types.Hospital, error) {
	if err := f.record("all"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append(make([]types.Hospital, 0, len(f.records)), f.records...), nil
}

func (f *fakeStorage) AddHospital(ctx context.Context, h types.Hospital) error {
	if err := f.record("add"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, h)
	return nil
}

func (f *fakeStorage) UpdateHospital(ctx context.Context, h types.Hospital) error {
	if err := f.record("update"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == h.ID {
			f.records[i] = h
			return nil
		}
	}
	return fmt.Errorf("no hospital %d: %w", h.ID, storage.ErrRemoteCall)
}

func (f *fakeStorage) DeleteHospitalByID(ctx context.Context, id string) (string, error) {
	if err := f.record("delete"); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.records[:0]
	for _, r := range f.records {
		if strconv.Itoa(r.ID) != id {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return f.deleted, nil
}

func (f *fakeStorage) GetHospitalByID(ctx context.Context, id string) (types.Hospital, error) {
	if err := f.record("get"); err != nil {
		return types.Hospital{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if strconv.Itoa(r.ID) == id {
			return r, nil
		}
	}
	return types.Hospital{}, fmt.Errorf("no hospital %s: %w", id, storage.ErrRemoteCall)
}

func equalCalls(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func fillDraft(t *testing.T, m *Manager, d types.Draft) {
	t.Helper()
	fields := map[string]string{
		"id": d.ID, "name": d.Name, "branch": d.Branch, "experience": d.Experience,
		"email": d.Email, "password": d.Password, "contact": d.Contact,
	}
	for k, v := range fields {
		if err := m.UpdateDraftField(k, v); err != nil {
			t.Fatal(err)
		}
	}
}

func TestMountFetchesOnce(t *testing.T) {
	fs := newFakeStorage(types.Hospital{ID: 1})
	m := New(fs, nil)

	m.Mount(context.Background())
	m.Mount(context.Background())

	if got := fs.Calls(); !equalCalls(got, []string{"all"}) {
		t.Errorf("calls = %v, want [all]", got)
	}
	if len(m.Snapshot().Roster) != 1 {
		t.Errorf("roster = %+v", m.Snapshot().Roster)
	}
}

func TestRefreshRosterFailureKeepsRoster(t *testing.T) {
	fs := newFakeStorage(types.Hospital{ID: 1})
	m := New(fs, nil)
	m.RefreshRoster(context.Background())

	fs.fail["all"] = true
	m.RefreshRoster(context.Background())

	s := m.Snapshot()
	if len(s.Roster) != 1 || s.Roster[0].ID != 1 {
		t.Errorf("roster = %+v, want previous roster", s.Roster)
	}
	if s.Status != Failure("Failed to fetch hospitals.") {
		t.Errorf("status = %+v", s.Status)
	}
}

func TestCreateRecordBlankFieldSendsNothing(t *testing.T) {
	for _, field := range []string{"id", "name", "branch", "experience", "email", "password", "contact"} {
		t.Run(field, func(t *testing.T) {
			fs := newFakeStorage()
			m := New(fs, nil)
			fillDraft(t, m, fullDraft())
			if err := m.UpdateDraftField(field, "  "); err != nil {
				t.Fatal(err)
			}

			m.CreateRecord(context.Background())
			m.ReplaceRecord(context.Background())

			if calls := fs.Calls(); len(calls) != 0 {
				t.Errorf("calls = %v, want none", calls)
			}
			want := Failure("Please fill out the " + field + " field.")
			if s := m.Snapshot(); s.Status != want {
				t.Errorf("status = %+v, want %+v", s.Status, want)
			}
		})
	}
}

func TestCreateRecord(t *testing.T) {
	fs := newFakeStorage()
	m := New(fs, nil)
	fillDraft(t, m, fullDraft())

	m.CreateRecord(context.Background())

	if got := fs.Calls(); !equalCalls(got, []string{"add", "all"}) {
		t.Errorf("calls = %v, want [add all]", got)
	}
	s := m.Snapshot()
	if s.Draft != types.EmptyDraft() || s.Editing {
		t.Errorf("draft = %+v editing = %v, want reset", s.Draft, s.Editing)
	}
	if s.Status != Success("Hospital added successfully.") {
		t.Errorf("status = %+v", s.Status)
	}
	if len(s.Roster) != 1 || s.Roster[0].Name != "City Hospital" {
		t.Errorf("roster = %+v", s.Roster)
	}
}

func TestCreateRecordFailureKeepsDraft(t *testing.T) {
	fs := newFakeStorage()
	fs.fail["add"] = true
	m := New(fs, nil)
	fillDraft(t, m, fullDraft())

	m.CreateRecord(context.Background())

	if got := fs.Calls(); !equalCalls(got, []string{"add"}) {
		t.Errorf("calls = %v, want [add]", got)
	}
	s := m.Snapshot()
	if s.Draft != fullDraft() {
		t.Errorf("draft = %+v, want kept", s.Draft)
	}
	if s.Status != Failure("Error adding hospital.") {
		t.Errorf("status = %+v", s.Status)
	}
}

func TestReplaceRecord(t *testing.T) {
	fs := newFakeStorage(types.Hospital{ID: 1, Name: "Old", Branch: "VJY", Experience: "1",
		Email: "o@b.com", Password: "p", Contact: "000"})
	m := New(fs, nil)
	m.Mount(context.Background())

	m.BeginEdit(m.Snapshot().Roster[0])
	if err := m.UpdateDraftField("name", "New"); err != nil {
		t.Fatal(err)
	}
	m.ReplaceRecord(context.Background())

	if got := fs.Calls(); !equalCalls(got, []string{"all", "update", "all"}) {
		t.Errorf("calls = %v", got)
	}
	s := m.Snapshot()
	if s.Editing || s.Draft != types.EmptyDraft() {
		t.Errorf("editing = %v draft = %+v, want composing", s.Editing, s.Draft)
	}
	if s.Status != Success("Hospital updated successfully.") {
		t.Errorf("status = %+v", s.Status)
	}
	if s.Roster[0].Name != "New" {
		t.Errorf("roster = %+v", s.Roster)
	}
}

func TestReplaceRecordFailureStaysEditing(t *testing.T) {
	fs := newFakeStorage()
	fs.fail["update"] = true
	m := New(fs, nil)
	m.BeginEdit(types.Hospital{ID: 1, Name: "City Hospital", Branch: "HYD", Experience: "2",
		Email: "a@b.com", Password: "x", Contact: "123"})

	m.ReplaceRecord(context.Background())

	s := m.Snapshot()
	if !s.Editing {
		t.Error("left editing mode after failed update")
	}
	if s.Status != Failure("Error updating hospital.") {
		t.Errorf("status = %+v", s.Status)
	}
}

func TestDeleteRecord(t *testing.T) {
	fs := newFakeStorage(types.Hospital{ID: 1}, types.Hospital{ID: 2})
	m := New(fs, nil)
	m.Mount(context.Background())

	m.DeleteRecord(context.Background(), "1")

	s := m.Snapshot()
	if s.Status != Success("Deleted successfully") {
		t.Errorf("status = %+v", s.Status)
	}
	for _, r := range s.Roster {
		if r.ID == 1 {
			t.Errorf("deleted id still in roster: %+v", s.Roster)
		}
	}
	if got := fs.Calls(); !equalCalls(got, []string{"all", "delete", "all"}) {
		t.Errorf("calls = %v", got)
	}
}

func TestDeleteRecordEmptyReplyShowsNoBanner(t *testing.T) {
	fs := newFakeStorage(types.Hospital{ID: 1})
	fs.deleted = ""
	m := New(fs, nil)
	m.Mount(context.Background())

	m.DeleteRecord(context.Background(), "1")

	s := m.Snapshot()
	if !s.Status.IsZero() {
		t.Errorf("status = %+v, want nothing to show", s.Status)
	}
	if len(s.Roster) != 0 {
		t.Errorf("roster = %+v, want empty", s.Roster)
	}
}

func TestDeleteRecordFailure(t *testing.T) {
	fs := newFakeStorage(types.Hospital{ID: 1})
	m := New(fs, nil)
	m.Mount(context.Background())
	fs.fail["delete"] = true

	m.DeleteRecord(context.Background(), "1")

	s := m.Snapshot()
	if s.Status != Failure("Error deleting hospital.") {
		t.Errorf("status = %+v", s.Status)
	}
	if len(s.Roster) != 1 {
		t.Errorf("roster = %+v, want unchanged", s.Roster)
	}
	if got := fs.Calls(); !equalCalls(got, []string{"all", "delete"}) {
		t.Errorf("calls = %v", got)
	}
}

func TestFetchByID(t *testing.T) {
	fs := newFakeStorage(types.Hospital{ID: 1, Name: "City Hospital"})
	m := New(fs, nil)

	m.FetchByID(context.Background(), "1")
	s := m.Snapshot()
	if s.Lookup == nil || s.Lookup.Name != "City Hospital" {
		t.Fatalf("lookup = %+v", s.Lookup)
	}
	if !s.Status.IsZero() {
		t.Errorf("status = %+v, want cleared", s.Status)
	}

	m.FetchByID(context.Background(), "99")
	s = m.Snapshot()
	if s.Lookup != nil {
		t.Errorf("lookup = %+v, want nil", s.Lookup)
	}
	if s.Status != Failure("Hospital not found.") {
		t.Errorf("status = %+v", s.Status)
	}
}

func TestUpdateDraftFieldUnknown(t *testing.T) {
	m := New(newFakeStorage(), nil)
	if err := m.UpdateDraftField("address", "x"); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestConcurrentActions(t *testing.T) {
	fs := newFakeStorage(types.Hospital{ID: 1}, types.Hospital{ID: 2})
	m := New(fs, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); m.RefreshRoster(context.Background()) }()
		go func() { defer wg.Done(); m.FetchByID(context.Background(), "2") }()
	}
	wg.Wait()

	if got := len(fs.Calls()); got != 16 {
		t.Errorf("calls = %d, want 16", got)
	}
}

// The scenarios below go through the real HTTP backend against a fake
// collection server.

type wireLog struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
}

func (l *wireLog) add(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, r.Method+" "+r.URL.Path)
	l.bodies = append(l.bodies, string(body))
}

func newWireManager(t *testing.T, handler func(*wireLog) http.Handler) (*Manager, *wireLog) {
	t.Helper()
	log := &wireLog{}
	srv := httptest.NewServer(handler(log))
	t.Cleanup(srv.Close)

	api, err := hospitalapi.New(&config.Config{Remote: config.Remote{BaseURL: srv.URL}})
	if err != nil {
		t.Fatal(err)
	}
	return New(api, nil), log
}

func TestScenarioCreateOverHTTP(t *testing.T) {
	m, log := newWireManager(t, func(l *wireLog) http.Handler {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /hospitalapi/add", func(w http.ResponseWriter, r *http.Request) {
			l.add(r)
			io.WriteString(w, "Hospital Added Successfully")
		})
		mux.HandleFunc("GET /hospitalapi/all", func(w http.ResponseWriter, r *http.Request) {
			l.add(r)
			io.WriteString(w, "[]")
		})
		return mux
	})
	fillDraft(t, m, fullDraft())

	m.CreateRecord(context.Background())

	want := []string{"POST /hospitalapi/add", "GET /hospitalapi/all"}
	if !equalCalls(log.requests, want) {
		t.Fatalf("requests = %v, want %v", log.requests, want)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(log.bodies[0]), &body); err != nil {
		t.Fatal(err)
	}
	wantBody := map[string]any{
		"id": float64(1), "name": "City Hospital", "branch": "HYD", "experience": "2",
		"email": "a@b.com", "password": "x", "contact": "123",
	}
	if len(body) != len(wantBody) {
		t.Errorf("body = %v", body)
	}
	for k, v := range wantBody {
		if body[k] != v {
			t.Errorf("body[%q] = %v, want %v", k, body[k], v)
		}
	}

	if s := m.Snapshot(); s.Draft != types.EmptyDraft() {
		t.Errorf("draft = %+v, want empty", s.Draft)
	}
}

func TestScenarioFetchMissingOverHTTP(t *testing.T) {
	m, _ := newWireManager(t, func(l *wireLog) http.Handler {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /hospitalapi/get/{id}", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "", http.StatusNotFound)
		})
		return mux
	})

	m.FetchByID(context.Background(), "99")

	s := m.Snapshot()
	if s.Lookup != nil {
		t.Errorf("lookup = %+v, want absent", s.Lookup)
	}
	if s.Status.Text != "Hospital not found." {
		t.Errorf("status = %+v", s.Status)
	}
}

func TestScenarioDeleteOverHTTP(t *testing.T) {
	m, _ := newWireManager(t, func(l *wireLog) http.Handler {
		mux := http.NewServeMux()
		mux.HandleFunc("DELETE /hospitalapi/delete/{id}", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "Deleted successfully")
		})
		mux.HandleFunc("GET /hospitalapi/all", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "[]")
		})
		return mux
	})

	m.DeleteRecord(context.Background(), "1")

	if s := m.Snapshot(); s.Status.Text != "Deleted successfully" {
		t.Errorf("status = %+v", s.Status)
	}
}
