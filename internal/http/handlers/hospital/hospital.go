// Package hospital contains the HTTP handlers behind the hospital console.
//
// Handlers are factories: each receives the session registry once at
// startup and returns the func the router calls on every request.
//
//	r.Post("/hospitals/add", hospital.Add(registry))
//
// Every mutating route finishes with a 303 redirect to "/" so a browser
// refresh never re-submits a form (Post/Redirect/Get).
package hospital

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aanand-mishra/hospital-admin/internal/session"
	"github.com/aanand-mishra/hospital-admin/internal/types"
	"github.com/aanand-mishra/hospital-admin/internal/utils/response"
	"github.com/aanand-mishra/hospital-admin/internal/view"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

type pageData struct {
	State       view.State
	Columns     []types.Column
	Branches    []string
	Experiences []string
	LookupJSON  string
}

// Page handles GET /
// Renders the form, the lookup box and the roster table for the caller's
// session. Every render counts as a mount: a new view fetches the roster
// while being created, an existing one refetches it here.
func Page(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, created := reg.Resolve(r.Context(), w, r)
		if !created {
			m.RefreshRoster(r.Context())
		}
		s := m.Snapshot()

		data := pageData{
			State:       s,
			Columns:     types.Columns,
			Branches:    types.Branches,
			Experiences: types.Experiences,
		}
		if s.Lookup != nil {
			b, err := json.MarshalIndent(s.Lookup, "", "  ")
			if err == nil {
				data.LookupJSON = string(b)
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			slog.Error("render page", slog.String("error", err.Error()))
		}
	}
}

// Add handles POST /hospitals/add
// Copies the submitted form fields into the draft and creates the record.
func Add(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, _ := reg.Resolve(r.Context(), w, r)
		if !readDraftForm(w, r, m) {
			return
		}

		slog.Info("adding a hospital")
		m.CreateRecord(r.Context())
		redirectHome(w, r)
	}
}

// Update handles POST /hospitals/update
// Copies the submitted form fields into the draft and replaces the record
// with the same id.
func Update(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, _ := reg.Resolve(r.Context(), w, r)
		if !readDraftForm(w, r, m) {
			return
		}

		slog.Info("updating a hospital")
		m.ReplaceRecord(r.Context())
		redirectHome(w, r)
	}
}

// Cancel handles POST /hospitals/cancel
func Cancel(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, _ := reg.Resolve(r.Context(), w, r)
		m.CancelEdit()
		redirectHome(w, r)
	}
}

// Edit handles POST /hospitals/{id}/edit
// Loads the roster row with that id into the draft. Ids not present in the
// roster are ignored.
func Edit(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, _ := reg.Resolve(r.Context(), w, r)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid id: must be an integer", http.StatusBadRequest)
			return
		}

		for _, h := range m.Snapshot().Roster {
			if h.ID == id {
				m.BeginEdit(h)
				break
			}
		}
		redirectHome(w, r)
	}
}

// Delete handles POST /hospitals/{id}/delete
// No confirmation step: the record is removed straight away. Draft fields
// submitted alongside are kept so typed input survives the round trip.
func Delete(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		slog.Info("deleting a hospital", slog.String("id", id))

		m, _ := reg.Resolve(r.Context(), w, r)
		if !readDraftForm(w, r, m) {
			return
		}
		m.DeleteRecord(r.Context(), id)
		redirectHome(w, r)
	}
}

// Lookup handles GET /lookup?id=
func Lookup(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, _ := reg.Resolve(r.Context(), w, r)
		lookup(w, r, m, r.URL.Query().Get("id"))
	}
}

// LookupForm handles POST /lookup
// Submitted from the page together with the draft fields, so typed draft
// input is kept. The id comes from the lookup_id field.
func LookupForm(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, _ := reg.Resolve(r.Context(), w, r)
		if !readDraftForm(w, r, m) {
			return
		}
		lookup(w, r, m, r.PostForm.Get("lookup_id"))
	}
}

func lookup(w http.ResponseWriter, r *http.Request, m *view.Manager, id string) {
	slog.Info("looking up a hospital", slog.String("id", id))

	m.SetLookupKey(id)
	m.FetchByID(r.Context(), id)
	redirectHome(w, r)
}

// State handles GET /api/state
// Returns the caller's view state as JSON.
func State(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, _ := reg.Resolve(r.Context(), w, r)
		response.WriteJSON(w, http.StatusOK, m.Snapshot())
	}
}

type draftFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// DraftField handles POST /api/draft
// Sets one draft attribute:
//
//	{ "field": "name", "value": "City Hospital" }
func DraftField(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req draftFieldRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		m, _ := reg.Resolve(r.Context(), w, r)
		if err := m.UpdateDraftField(req.Field, req.Value); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, m.Snapshot().Draft)
	}
}

// Health handles GET /health
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.OK())
	}
}

// readDraftForm copies every submitted draft attribute into the view.
// Attributes missing from the form keep their current value.
func readDraftForm(w http.ResponseWriter, r *http.Request, m *view.Manager) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return false
	}

	for _, c := range types.Columns {
		if _, ok := r.PostForm[c.Name]; !ok {
			continue
		}
		if err := m.UpdateDraftField(c.Name, r.PostForm.Get(c.Name)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return false
		}
	}
	return true
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
