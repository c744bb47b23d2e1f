package middleware

import (
	"net/http"

	"github.com/avmoreira/despensa-web/internal/auth"
	"github.com/avmoreira/despensa-web/internal/store"
)

// SessionCookieName is the browser cookie carrying the local session token.
const SessionCookieName = "despensa_session"

// RequireAuth resolves the session cookie against the local session store
// and populates AuthContext with the stored API credential and profile
// snapshot. Anonymous or expired sessions are sent to /login.
// HTMX-aware: returns an HX-Redirect header instead of a 303 for HTMX
// requests.
func RequireAuth(sessions *store.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				RedirectToLogin(w, r)
				return
			}

			sess, err := sessions.GetByToken(cookie.Value)
			if err != nil || sess == nil {
				RedirectToLogin(w, r)
				return
			}

			ac := auth.AuthContext{
				UserID:    sess.UserID,
				Username:  sess.Username,
				FullName:  sess.FullName,
				APIToken:  sess.APIToken,
				SessionID: sess.ID,
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RedirectToLogin sends the browser to the login page, via HX-Redirect for
// HTMX requests. Also used by handlers on a forced logout after the remote
// API rejects the stored credential.
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
