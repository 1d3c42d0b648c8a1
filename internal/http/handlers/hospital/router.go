package hospital

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aanand-mishra/hospital-admin/internal/session"
)

// NewRouter registers every console route.
//
// Route table:
//
//	GET  /                       → console page
//	POST /hospitals/add          → create from the submitted form
//	POST /hospitals/update       → replace from the submitted form
//	POST /hospitals/cancel       → leave editing mode
//	POST /hospitals/{id}/edit    → load a roster row into the form
//	POST /hospitals/{id}/delete  → delete a record
//	GET  /lookup?id=             → fetch one record by id
//	POST /lookup                 → same, keeping submitted draft fields
//	GET  /api/state              → view state as JSON
//	POST /api/draft              → set one draft attribute
//	GET  /health                 → liveness
func NewRouter(reg *session.Registry, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/health", Health())

	r.Get("/", Page(reg))
	r.Get("/lookup", Lookup(reg))
	r.Post("/lookup", LookupForm(reg))
	r.Route("/hospitals", func(r chi.Router) {
		r.Post("/add", Add(reg))
		r.Post("/update", Update(reg))
		r.Post("/cancel", Cancel(reg))
		r.Post("/{id}/edit", Edit(reg))
		r.Post("/{id}/delete", Delete(reg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Get("/state", State(reg))
		r.Post("/draft", DraftField(reg))
	})

	return r
}

// requestLogger writes one structured line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		slog.Info("request",
			slog.String("request_id", chimw.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)))
	})
}
