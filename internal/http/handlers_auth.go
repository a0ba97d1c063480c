package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/carcarepro/carcare-ui/internal/domain/auth"
	"github.com/carcarepro/carcare-ui/internal/http/ui/viewmodel"
	"github.com/carcarepro/carcare-ui/internal/service"
)

// AuthServiceInterface defines the auth operations the handlers need.
type AuthServiceInterface interface {
	GoogleEnabled() bool
	PasswordLogin(ctx context.Context, email, password string) (*domainauth.Session, error)
	BeginGoogleLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteGoogleLogin(ctx context.Context, input service.CompleteLoginInput) (*domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers provides HTTP handlers for login, logout, and Google
// sign-in.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	T            *TemplateRenderer
	CookieDomain string
	CookieName   string
	// BaseURL is the externally visible origin, used to build the
	// Google callback URL.
	BaseURL string
	Logger  *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *AuthHandlers) cookieName() string {
	if h.CookieName != "" {
		return h.CookieName
	}
	return DefaultSessionCookieName
}

// loginPage is the login page view model.
type loginPage struct {
	viewmodel.Layout
	Email         string
	Error         string
	GoogleEnabled bool
	RedirectURI   string
}

func (h *AuthHandlers) newLoginPage(r *http.Request) *loginPage {
	return &loginPage{
		Layout: viewmodel.Layout{
			Title:       "CarCare Pro - Sign In",
			PageTitle:   "Sign In",
			CurrentPage: PageLogin,
		},
		GoogleEnabled: h.Svc.GoogleEnabled(),
		RedirectURI:   safeRedirectPath(r.FormValue("redirect_uri")),
	}
}

// LoginPage renders the login form.
// GET /login?redirect_uri=<optional>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	// An existing session skips the form entirely.
	if cookie, err := r.Cookie(h.cookieName()); err == nil && cookie.Value != "" {
		if _, err := h.Svc.GetSession(r.Context(), cookie.Value); err == nil {
			http.Redirect(w, r, safeRedirectPath(r.URL.Query().Get("redirect_uri")), http.StatusSeeOther)
			return
		}
	}
	h.renderLogin(w, r, h.newLoginPage(r))
}

// LoginSubmit exchanges credentials at the backend and creates the
// server session.
// POST /login (form: email, password, redirect_uri).
func (h *AuthHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	page := h.newLoginPage(r)
	page.Email = strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if page.Email == "" || password == "" {
		page.Error = "Email and password are required."
		h.renderLogin(w, r, page)
		return
	}

	session, err := h.Svc.PasswordLogin(r.Context(), page.Email, password)
	if err != nil {
		h.logger().WarnContext(r.Context(), "password login failed", "error", err)
		page.Error = loginErrorMessage(err)
		h.renderLogin(w, r, page)
		return
	}

	h.setSessionCookie(w, r, *session)
	target := page.RedirectURI
	if IsHTMX(r) {
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// loginErrorMessage keeps backend detail for auth rejections and hides
// transport internals.
func loginErrorMessage(err error) string {
	perr := presentFormError(err)
	if perr.Message == "" || perr.Message == "An error occurred. Please try again." {
		return "Sign in failed. Check your email and password."
	}
	return perr.Message
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, r *http.Request, page *loginPage) {
	if h.T == nil {
		http.Error(w, "login page unavailable", http.StatusInternalServerError)
		return
	}
	if WantsPartial(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.T.t.ExecuteTemplate(w, "login-content", page); err != nil {
			h.logger().Error("failed to render login fragment", "error", err)
		}
		return
	}
	if err := h.T.RenderFull(w, r, page); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// GoogleLogin starts the Google sign-in flow.
// GET /auth/google?redirect_uri=<optional>.
func (h *AuthHandlers) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.Svc.GoogleEnabled() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	callbackURL := strings.TrimRight(h.BaseURL, "/") + "/auth/google/callback"

	result, err := h.Svc.BeginGoogleLogin(r.Context(), callbackURL)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "google login begin failed", "error", err)
		setFlash(w, "Google sign-in is unavailable right now.", "error")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.setOAuthCookies(w, r, oauthCookieParams{
		State:       result.State,
		Nonce:       result.Nonce,
		RedirectURI: redirectURI,
	})
	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// GoogleCallback completes the Google sign-in flow.
// GET /auth/google/callback?code=<code>&state=<state>.
func (h *AuthHandlers) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		h.failLogin(w, r, "Google sign-in was interrupted. Please try again.")
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != state {
		h.failLogin(w, r, "Sign-in session expired. Please try again.")
		return
	}
	nonceCookie, err := r.Cookie("oauth_nonce")
	if err != nil {
		h.failLogin(w, r, "Sign-in session expired. Please try again.")
		return
	}

	session, err := h.Svc.CompleteGoogleLogin(r.Context(), service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	if err != nil {
		h.logger().ErrorContext(r.Context(), "google login completion failed", "error", err)
		h.failLogin(w, r, "Google sign-in failed. Please try again.")
		return
	}

	h.setSessionCookie(w, r, *session)
	h.clearCookie(w, r, "oauth_state")
	h.clearCookie(w, r, "oauth_nonce")

	http.Redirect(w, r, h.popPostLoginRedirect(w, r), http.StatusFound)
}

func (h *AuthHandlers) failLogin(w http.ResponseWriter, r *http.Request, message string) {
	h.clearCookie(w, r, "oauth_state")
	h.clearCookie(w, r, "oauth_nonce")
	setFlash(w, message, "error")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout destroys the server session, clears the cookie, and redirects
// to the login page.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName()); err == nil && cookie.Value != "" {
		if logoutErr := h.Svc.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}
	h.clearCookie(w, r, h.cookieName())

	if IsHTMX(r) {
		SetHXRedirect(w, "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Status returns the current authentication status as JSON.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookieName())
	if err != nil || cookie.Value == "" {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), cookie.Value)
	if err != nil {
		h.clearCookie(w, r, h.cookieName())
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"name":  session.Name,
			"email": session.Email,
			"role":  session.Role,
		},
		"expires_at": session.ExpiresAt,
	})
}

// clearCookie expires a cookie, mirroring the attributes used when it
// was set so browsers reliably delete it.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// oauthCookieParams groups values stored across the OAuth round trip.
type oauthCookieParams struct {
	State       string
	Nonce       string
	RedirectURI string
}

const oauthCookieAge = 600 // 10 minutes

func (h *AuthHandlers) setOAuthCookies(w http.ResponseWriter, r *http.Request, p oauthCookieParams) {
	for name, value := range map[string]string{
		"oauth_state":         p.State,
		"oauth_nonce":         p.Nonce,
		"post_login_redirect": p.RedirectURI,
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			Domain:   h.CookieDomain,
			HttpOnly: true,
			Secure:   requestIsSecure(r),
			SameSite: http.SameSiteLaxMode,
			MaxAge:   oauthCookieAge,
		})
	}
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName(),
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// popPostLoginRedirect returns the stored post-login destination and
// clears its cookie.
func (h *AuthHandlers) popPostLoginRedirect(w http.ResponseWriter, r *http.Request) string {
	redirectURI := "/"
	if cookie, err := r.Cookie("post_login_redirect"); err == nil {
		if u, parseErr := url.Parse(cookie.Value); parseErr == nil &&
			!u.IsAbs() && u.Host == "" && strings.HasPrefix(u.Path, "/") {
			redirectURI = cookie.Value
		}
		h.clearCookie(w, r, "post_login_redirect")
	}
	return redirectURI
}
