package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/carcarepro/carcare-ui/internal/domain/auth"
	"github.com/carcarepro/carcare-ui/internal/domain/model"
	"github.com/carcarepro/carcare-ui/internal/http/ui/viewmodel"
	"github.com/carcarepro/carcare-ui/internal/service"
)

const errMsgFixBelow = "Please fix the errors below."

// AdminDirectoryService is the admin page's view of the service layer.
type AdminDirectoryService interface {
	ListUsers(ctx context.Context, token string) ([]model.User, error)
	CreateUser(ctx context.Context, token string, req model.CreateUserRequest) (*model.User, error)
	TestEmailConfig(ctx context.Context, token string) (*model.EmailConfigResult, error)
}

// MaintenanceDashboardService is the maintenance page's view of the
// service layer.
type MaintenanceDashboardService interface {
	Dashboard(ctx context.Context, sess domainauth.Session) *service.Dashboard
}

// Compile-time assertions that the concrete services satisfy the UI interfaces.
var (
	_ AdminDirectoryService       = (*service.AdminService)(nil)
	_ MaintenanceDashboardService = (*service.MaintenanceService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T      *TemplateRenderer
	Admin  AdminDirectoryService
	Maint  MaintenanceDashboardService
	IsDev  bool // enables detailed template error output
	Logger *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// flashCookieName holds a one-shot banner across a redirect.
const flashCookieName = "flash"

// setFlash stores a transient banner shown on the next full page render.
func setFlash(w http.ResponseWriter, message, flashType string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    flashType + "|" + message,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// popFlash reads and clears the flash cookie.
func popFlash(w http.ResponseWriter, r *http.Request) *viewmodel.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})

	flashType, message := "info", cookie.Value
	for i := 0; i < len(cookie.Value); i++ {
		if cookie.Value[i] == '|' {
			flashType, message = cookie.Value[:i], cookie.Value[i+1:]
			break
		}
	}
	if message == "" {
		return nil
	}
	return &viewmodel.Flash{Message: message, Type: flashType}
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
	}

	if csrfToken := GetCSRFToken(r); csrfToken != "" {
		layout.CSRFToken = csrfToken
	}

	if session := GetSessionFromContext(r.Context()); session != nil {
		layout.IsAuthenticated = true
		layout.IsAdmin = session.IsAdmin()
		layout.User = &viewmodel.User{
			Name:  session.Name,
			Email: session.Email,
			Role:  string(session.Role),
		}
	}

	return layout
}

// renderPage renders a full page, or just the content area plus
// out-of-band header updates for HTMX fragment navigations.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data viewmodel.LayoutProvider) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	layout := data.LayoutData()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	// Include a <title> element so htmx updates document.title on partial swaps.
	safeDocTitle := html.EscapeString(layout.Title)
	if _, err := w.Write([]byte(`<title>` + safeDocTitle + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}

	// Out-of-band update for the header title.
	safeTitle := html.EscapeString(layout.PageTitle)
	if _, err := w.Write([]byte(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` + safeTitle + `</h1>`)); err != nil {
		h.logger().Error("failed to write partial header title", "error", err)
		return
	}

	if err := h.T.t.ExecuteTemplate(w, ContentTemplateFor(layout.CurrentPage), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// renderFragment renders a named template fragment with no-cache headers.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	w.Header().Set("Vary", "HX-Request")
	if err := h.T.t.ExecuteTemplate(w, templateName, data); err != nil {
		h.logger().ErrorContext(r.Context(), "failed to render fragment",
			"template", templateName,
			"error", err)
	}
}

// triggerToast sends the standardized showToast HX-Trigger payload.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if message == "" {
		return
	}
	HTMX(w).Trigger("showToast", map[string]any{
		"message": message,
		"type":    toastType,
	})
}

// notify raises a toast on fragment responses and a flash banner on
// full-page flows, so both controllers share one notification path.
func notify(w http.ResponseWriter, r *http.Request, message, kind string) {
	if IsHTMX(r) {
		triggerToast(w, message, kind)
		return
	}
	setFlash(w, message, kind)
}

// logAndRenderTemplateError logs template errors and renders details in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		errHTML := html.EscapeString(err.Error())
		pathHTML := html.EscapeString(r.URL.Path)
		contextHTML := html.EscapeString(context)
		if _, writeErr := w.Write([]byte(`
			<div class="template-error">
				<h2>Template Rendering Error</h2>
				<p><strong>Context:</strong> ` + contextHTML + `</p>
				<p><strong>Path:</strong> ` + pathHTML + `</p>
				<pre>` + errHTML + `</pre>
			</div>
		`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
