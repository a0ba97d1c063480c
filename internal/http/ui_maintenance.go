package httpx

import (
	"net/http"

	maintvm "github.com/carcarepro/carcare-ui/internal/http/ui/maintenance"
)

// Maintenance serves the vehicle dashboard at "/". The page is rebuilt
// whole from the latest fetch on every render; a failed snapshot fetch
// is replaced by the built-in placeholder vehicle inside the service, so
// no section is ever blank.
func (h *UIHandlers) Maintenance(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	dash := h.Maint.Dashboard(r.Context(), *session)

	page := maintvm.NewPage(dash.Profile, dash.Snapshot, dash.Fallback)
	page.Layout = buildLayout(r, PageMeta{
		Title:       "CarCare Pro - My Vehicle",
		PageTitle:   "My Vehicle",
		CurrentPage: PageMaintenance,
	})
	page.Flash = popFlash(w, r)

	h.renderPage(w, r, page)
}

// MaintenanceStatusFragment re-renders the vehicle status panel for an
// explicit HTMX refresh.
func (h *UIHandlers) MaintenanceStatusFragment(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	dash := h.Maint.Dashboard(r.Context(), *session)

	page := maintvm.NewPage(dash.Profile, dash.Snapshot, dash.Fallback)
	page.Layout = buildLayout(r, PageMeta{CurrentPage: PageMaintenance})

	h.renderFragment(w, r, "maintenance-status-fragment", page)
}

// Dashboard redirects the legacy path to the home page.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusMovedPermanently)
}
