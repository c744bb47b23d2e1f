package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/avmoreira/despensa-web/internal/api"
	"github.com/avmoreira/despensa-web/internal/auth"
	"github.com/avmoreira/despensa-web/internal/forms"
	"github.com/avmoreira/despensa-web/internal/middleware"
	"github.com/avmoreira/despensa-web/internal/store"
)

const sessionCookieTTL = 30 * 24 * time.Hour

type AuthHandler struct {
	api      *api.Client
	sessions *store.SessionStore
	render   *Renderer
	logger   *slog.Logger
}

func NewAuthHandler(client *api.Client, sessions *store.SessionStore, render *Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{api: client, sessions: sessions, render: render, logger: logger}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, "login.html", map[string]any{})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	form, err := forms.ParseLogin(r.PostForm)
	if err != nil {
		h.render.Page(w, "login.html", map[string]any{"Error": err.Error()})
		return
	}

	token, err := h.api.Login(r.Context(), api.LoginInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		h.logger.Info("login rejected", "username", form.Username, "error", err)
		h.render.Page(w, "login.html", map[string]any{
			"Error": errMessage(err, "Usuário ou senha incorretos."),
		})
		return
	}

	// The profile fetch needs the fresh credential before any session
	// exists, so it is injected straight into the request context.
	ctx := auth.WithAuth(r.Context(), auth.AuthContext{APIToken: token.AccessToken})
	user, err := h.api.CurrentUser(ctx)
	if err != nil {
		h.logger.Error("fetch profile after login", "error", err)
		h.render.Page(w, "login.html", map[string]any{
			"Error": "Não foi possível carregar seu perfil. Tente novamente.",
		})
		return
	}

	sess, err := h.sessions.Create(token.AccessToken, *user)
	if err != nil {
		h.logger.Error("create session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.Info("login", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, "register.html", map[string]any{})
}

// Register creates the account remotely and then runs the normal login flow
// so the user lands on the dashboard already signed in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	form, err := forms.ParseRegister(r.PostForm)
	if err != nil {
		h.render.Page(w, "register.html", map[string]any{"Error": err.Error()})
		return
	}

	_, err = h.api.Register(r.Context(), api.RegisterInput{
		Email:    form.Email,
		Username: form.Username,
		Password: form.Password,
		FullName: form.FullName,
	})
	if err != nil {
		h.logger.Info("register rejected", "username", form.Username, "error", err)
		h.render.Page(w, "register.html", map[string]any{
			"Error": errMessage(err, "Não foi possível criar a conta."),
		})
		return
	}

	h.Login(w, r)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(cookie.Value); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
