package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tacocloud/web/internal/auth"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "taco_session"

type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionStore creates and refreshes browser sessions.
// Satisfied by *session.Store.
type SessionStore interface {
	Create() uuid.UUID
	Touch(id uuid.UUID) bool
	TTL() time.Duration
}

// Session attaches the browser's session ID to the request. A missing,
// tampered or expired cookie starts a fresh session on POST; safe methods
// pass through without one. The cookie of a live session is re-signed on
// every response so it outlives the store's sliding expiry.
func Session(store SessionStore, secret string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := sessionFromCookie(r, store, secret)
			if !ok {
				if isSafeMethod(r.Method) {
					next.ServeHTTP(w, r)
					return
				}
				sessionID = store.Create()
			}

			token, err := auth.GenerateSessionToken(secret, sessionID, store.TTL())
			if err != nil {
				log.Printf("ERROR: sign session token: %v", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(store.TTL().Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// SessionIDFromContext returns the session ID set by Session.
func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(sessionIDKey).(uuid.UUID)
	return id, ok
}

func sessionFromCookie(r *http.Request, store SessionStore, secret string) (uuid.UUID, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := auth.ValidateSessionToken(secret, cookie.Value)
	if err != nil {
		return uuid.Nil, false
	}
	if !store.Touch(id) {
		return uuid.Nil, false
	}
	return id, true
}
