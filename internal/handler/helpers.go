package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/tacocloud/web/internal/middleware"
)

// PageRenderer renders server-side pages. Satisfied by *web.Renderer.
type PageRenderer interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
}

func render(w http.ResponseWriter, renderer PageRenderer, status int, name string, data any) {
	if err := renderer.Render(w, status, name, data); err != nil {
		log.Printf("ERROR: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// sessionID returns the session of a state-changing request, or writes a 500
// when the session middleware is not mounted.
func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		log.Printf("ERROR: no session on %s %s", r.Method, r.URL.Path)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
	return id, ok
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}
