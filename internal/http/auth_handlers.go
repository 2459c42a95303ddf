package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"et21/internal/auth"
	"et21/internal/http/middleware"
	"et21/internal/logging"
	"et21/internal/site"
	"et21/internal/web"
)

const (
	msgLoginOK          = "Login successful"
	msgInvalidLogin     = "Invalid email or password"
	msgInternalError    = "Internal server error"
	msgInvalidLoginBody = "Invalid request body"
)

type AuthHandler struct {
	Auth          *auth.Authenticator
	TPL           *web.Renderer
	SecureCookies bool
	LoginLimit    func(http.Handler) http.Handler
}

func (h *AuthHandler) Routes(mux *http.ServeMux) {
	limit := h.LoginLimit
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}
	mux.Handle("POST /api/login", limit(http.HandlerFunc(h.Login)))
	mux.HandleFunc("POST /api/logout", h.Logout)

	mux.HandleFunc("GET /login", h.LoginPage)
	mux.Handle("POST /login", limit(http.HandlerFunc(h.LoginForm)))
	mux.HandleFunc("GET /logout", h.LogoutRedirect)
	mux.HandleFunc("POST /logout", h.LogoutRedirect)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginContent struct {
	Error        string
	Email        string
	SupportEmail string
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	// An empty body reads as no credentials and gets the generic 401.
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, msgInvalidLoginBody)
		return
	}

	switch err := h.verify(r, req); {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidCredentials):
		jsonError(w, http.StatusUnauthorized, msgInvalidLogin)
		return
	default:
		jsonError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	if err := h.startSession(w, req.Email); err != nil {
		logging.From(r.Context()).Error("login.token", "err", err)
		jsonError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msgLoginOK})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.endSession(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) LogoutRedirect(w http.ResponseWriter, r *http.Request) {
	h.endSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.Email(r) != "" {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, loginContent{})
}

// LoginForm is the no-script path of the login page.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, loginContent{Error: msgInvalidLoginBody})
		return
	}
	req := loginReq{Email: r.PostFormValue("email"), Password: r.PostFormValue("password")}

	switch err := h.verify(r, req); {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.renderLogin(w, r, http.StatusUnauthorized, loginContent{Error: msgInvalidLogin, Email: req.Email})
		return
	default:
		h.renderLogin(w, r, http.StatusInternalServerError, loginContent{Error: msgInternalError, Email: req.Email})
		return
	}

	if err := h.startSession(w, req.Email); err != nil {
		logging.From(r.Context()).Error("login.token", "err", err)
		h.renderLogin(w, r, http.StatusInternalServerError, loginContent{Error: msgInternalError, Email: req.Email})
		return
	}
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// verify maps empty fields to invalid credentials and logs store failures.
func (h *AuthHandler) verify(r *http.Request, req loginReq) error {
	if req.Email == "" || req.Password == "" {
		return auth.ErrInvalidCredentials
	}
	err := h.Auth.Verify(r.Context(), req.Email, req.Password)
	if err != nil && !errors.Is(err, auth.ErrInvalidCredentials) {
		logging.From(r.Context()).Error("login.lookup", "err", err)
	}
	return err
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, c loginContent) {
	c.SupportEmail = site.SupportEmail
	page := web.Page[loginContent]{
		Header:  loadHeader(r),
		Title:   "Iniciar sesión",
		Bare:    true,
		Content: c,
	}
	render(w, r, h.TPL, "login", status, page)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, email string) error {
	token, err := auth.IssueToken(email)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(auth.SessionTTL()),
	})
	return nil
}

func (h *AuthHandler) endSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
