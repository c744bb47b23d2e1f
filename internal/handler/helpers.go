package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avmoreira/despensa-web/internal/api"
	"github.com/avmoreira/despensa-web/internal/auth"
	"github.com/avmoreira/despensa-web/internal/middleware"
	"github.com/avmoreira/despensa-web/internal/store"
)

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// pageData seeds the keys every page template expects from the layout.
func pageData(r *http.Request, title string) map[string]any {
	return map[string]any{
		"Title":    title + " — Despensa",
		"UserName": auth.DisplayName(r.Context()),
	}
}

// forceLogout tears down the local session after the remote API rejected its
// credential, then sends the browser to the login page.
func forceLogout(w http.ResponseWriter, r *http.Request, sessions *store.SessionStore) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		_ = sessions.Delete(cookie.Value)
	}
	clearSessionCookie(w)
	middleware.RedirectToLogin(w, r)
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// errMessage prefers the server's detail message over the generic fallback.
func errMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func unauthorized(err error) bool {
	return errors.Is(err, api.ErrUnauthorized)
}
