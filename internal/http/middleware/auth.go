package middleware

import (
	"context"
	"net/http"

	"et21/internal/auth"
)

type ctxKey string

const CtxEmail ctxKey = "email"

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "session"

func WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SessionCookie)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		if email, err := auth.ParseToken(c.Value); err == nil && email != "" {
			ctx := context.WithValue(r.Context(), CtxEmail, email)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSession sends visitors without a valid session to the login page.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Email(r) != "" {
			next.ServeHTTP(w, r)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
}

func Email(r *http.Request) string {
	if v, ok := r.Context().Value(CtxEmail).(string); ok {
		return v
	}
	return ""
}
