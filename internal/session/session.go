// Package session keeps one record manager view per browser. A browser is
// identified by a random id stored in a cookie; the view behind it lives in
// memory until it has been idle longer than the configured TTL.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/hospital-admin/internal/storage"
	"github.com/aanand-mishra/hospital-admin/internal/view"
)

// CookieName is the cookie carrying the session id.
const CookieName = "hospital_session"

type entry struct {
	manager  *view.Manager
	lastSeen time.Time
}

// Registry maps session ids to views.
type Registry struct {
	storage storage.Storage
	log     *slog.Logger
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewRegistry returns an empty registry. A zero ttl keeps sessions forever.
func NewRegistry(s storage.Storage, ttl time.Duration, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		storage:  s,
		log:      log,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Get returns the view for id, or false if there is none (or it expired).
func (r *Registry) Get(id string) (*view.Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if r.expired(e) {
		delete(r.sessions, id)
		return nil, false
	}
	e.lastSeen = r.now()
	return e.manager, true
}

// Create starts a new view and returns it with its fresh id. Expired
// sessions are swept on the way.
func (r *Registry) Create() (string, *view.Manager) {
	id := uuid.New().String()
	m := view.New(r.storage, r.log.With(slog.String("session", id)))

	r.mu.Lock()
	defer r.mu.Unlock()

	for sid, e := range r.sessions {
		if r.expired(e) {
			delete(r.sessions, sid)
		}
	}
	r.sessions[id] = &entry{manager: m, lastSeen: r.now()}

	r.log.Debug("session created", slog.String("session", id), slog.Int("active", len(r.sessions)))
	return id, m
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Resolve returns the view for the browser behind req, creating one and
// setting the cookie on w if needed. A newly created view is mounted, which
// fetches the roster for the first time; created reports that case.
func (r *Registry) Resolve(ctx context.Context, w http.ResponseWriter, req *http.Request) (m *view.Manager, created bool) {
	if c, err := req.Cookie(CookieName); err == nil {
		if existing, ok := r.Get(c.Value); ok {
			return existing, false
		}
	}

	id, m := r.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	m.Mount(ctx)
	return m, true
}

func (r *Registry) expired(e *entry) bool {
	return r.ttl > 0 && r.now().Sub(e.lastSeen) > r.ttl
}
