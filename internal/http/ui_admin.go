package httpx

import (
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/carcarepro/carcare-ui/internal/domain/auth"
	"github.com/carcarepro/carcare-ui/internal/domain/model"
	adminvm "github.com/carcarepro/carcare-ui/internal/http/ui/admin"
	"github.com/carcarepro/carcare-ui/internal/http/ui/viewmodel"
)

const errMsgUnableLoadUsers = "Unable to load users"

// adminUsersURL is the canonical history entry for a user search.
func adminUsersURL(query string) string {
	u := "/admin?tab=users"
	if query != "" {
		u += "&q=" + url.QueryEscape(query)
	}
	return u
}

// adminPageMeta returns the layout metadata for the admin dashboard.
func adminPageMeta() PageMeta {
	return PageMeta{
		Title:       "CarCare Pro - Admin",
		PageTitle:   "Admin Dashboard",
		CurrentPage: PageAdmin,
	}
}

// AdminPage serves the admin dashboard. ?tab= selects the active tab;
// unknown values fall back to the users tab. ?q= restores a user search
// pushed into the browser history by the fragment handler.
func (h *UIHandlers) AdminPage(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	tab := adminvm.ActiveTab(r.URL.Query().Get("tab"))
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	page := &adminvm.Page{
		Layout:    buildLayout(r, adminPageMeta()),
		Tabs:      adminvm.Tabs(tab),
		ActiveTab: tab,
		Users:     []adminvm.UserRow{},
		Query:     query,
		LogsEmpty: "No logs available",
	}
	page.Flash = popFlash(w, r)

	users, err := h.Admin.ListUsers(r.Context(), session.Token)
	if err != nil {
		// The empty-state table still renders completely; only the
		// notification reports the failure.
		h.logger().ErrorContext(r.Context(), "admin user list fetch failed", "error", err)
		page.UsersError = errMsgUnableLoadUsers
		if page.Flash == nil {
			page.Flash = &viewmodel.Flash{Message: errMsgUnableLoadUsers, Type: "error"}
		}
	} else {
		page.Users = adminvm.FilterUserRows(adminvm.NewUserRows(users), query)
	}

	h.renderPage(w, r, page)
}

// AdminUsersFragment serves the user table for HTMX refreshes and the
// search box. ?q= filters rows against their full rendered text,
// case-insensitively; an empty query restores all rows.
func (h *UIHandlers) AdminUsersFragment(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	page := &adminvm.Page{
		Layout: buildLayout(r, adminPageMeta()),
		Users:  []adminvm.UserRow{},
		Query:  query,
	}

	users, err := h.Admin.ListUsers(r.Context(), session.Token)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "admin user list fetch failed", "error", err)
		page.UsersError = errMsgUnableLoadUsers
		triggerToast(w, errMsgUnableLoadUsers, "error")
	} else {
		page.Users = adminvm.FilterUserRows(adminvm.NewUserRows(users), query)
		if IsHTMX(r) {
			// Keep the search in the browser history so a reload or a
			// shared link restores the filtered table.
			HTMX(w).PushURL(adminUsersURL(query))
		}
	}

	h.renderFragment(w, r, "admin-users-fragment", page)
}

// AdminUserCreate handles the add-user form. A backend rejection keeps
// the form open with the backend's detail message verbatim and does not
// re-fetch the list; success re-renders the user table and raises a
// success notification.
func (h *UIHandlers) AdminUserCreate(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	req := model.CreateUserRequest{
		Name:          r.PostFormValue("name"),
		Email:         r.PostFormValue("email"),
		Password:      r.PostFormValue("password"),
		Role:          domainauth.Role(r.PostFormValue("role")),
		EmailVerified: r.PostFormValue("email_verified") == "on",
	}

	user, err := h.Admin.CreateUser(r.Context(), session.Token, req)
	if err != nil {
		h.renderUserFormError(w, r, req, err)
		return
	}

	if IsHTMX(r) {
		triggerToast(w, "User "+user.Email+" created", "success")
		h.AdminUsersFragment(w, r)
		return
	}
	setFlash(w, "User "+user.Email+" created", "success")
	http.Redirect(w, r, "/admin?tab=users", http.StatusSeeOther)
}

// renderUserFormError re-renders the add-user form with the submitted
// values and the failure message.
func (h *UIHandlers) renderUserFormError(
	w http.ResponseWriter,
	r *http.Request,
	req model.CreateUserRequest,
	err error,
) {
	perr := presentFormError(err)
	form := adminvm.UserForm{
		Name:          req.Name,
		Email:         req.Email,
		Role:          string(req.Role),
		EmailVerified: req.EmailVerified,
		Errors:        perr.Fields,
		Error:         perr.Message,
	}

	if IsHTMX(r) {
		triggerToast(w, perr.Message, "error")
		page := &adminvm.Page{
			Layout: buildLayout(r, adminPageMeta()),
			Form:   form,
		}
		h.renderFragment(w, r, "admin-user-form-fragment", page)
		return
	}

	setFlash(w, perr.Message, "error")
	http.Redirect(w, r, "/admin?tab=users", http.StatusSeeOther)
}

// AdminEmailConfigTest runs the backend email configuration check and
// renders one of the four presentation states. A transport failure maps
// to the error presentation carrying the raised error's message.
func (h *UIHandlers) AdminEmailConfigTest(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	var view adminvm.EmailConfigView
	result, err := h.Admin.TestEmailConfig(r.Context(), session.Token)
	if err != nil {
		h.logger().WarnContext(r.Context(), "email config test failed", "error", err)
		view = adminvm.ErrorEmailConfigView(presentFormError(err).Message)
	} else {
		view = adminvm.NewEmailConfigView(*result)
	}

	page := &adminvm.Page{
		Layout: buildLayout(r, adminPageMeta()),
		Email:  &view,
	}

	if IsHTMX(r) {
		h.renderFragment(w, r, "admin-email-result-fragment", page)
		return
	}
	page.ActiveTab = TabEmail
	page.Tabs = adminvm.Tabs(TabEmail)
	h.renderPage(w, r, page)
}

// AdminSendTestEmail is an explicit placeholder: the backend exposes no
// send-test endpoint, so this only raises a notification.
func (h *UIHandlers) AdminSendTestEmail(w http.ResponseWriter, r *http.Request) {
	notify(w, r, "Sending test emails is not available yet", "info")
	h.placeholderResponse(w, r, TabEmail)
}

// AdminUserEdit is an explicit placeholder; the backend exposes no
// update endpoint.
func (h *UIHandlers) AdminUserEdit(w http.ResponseWriter, r *http.Request) {
	notify(w, r, "Editing users is not available yet", "info")
	h.placeholderResponse(w, r, TabUsers)
}

// AdminUserDelete is an explicit placeholder; the backend exposes no
// delete endpoint.
func (h *UIHandlers) AdminUserDelete(w http.ResponseWriter, r *http.Request) {
	notify(w, r, "Deleting users is not available yet", "info")
	h.placeholderResponse(w, r, TabUsers)
}

// AdminSettingsSave matches the original behavior: settings are not
// persisted anywhere, the page only confirms the action.
func (h *UIHandlers) AdminSettingsSave(w http.ResponseWriter, r *http.Request) {
	notify(w, r, "Settings saved", "success")
	h.placeholderResponse(w, r, TabSettings)
}

// AdminLogsFragment reports the fixed empty state; the backend exposes
// no log source.
func (h *UIHandlers) AdminLogsFragment(w http.ResponseWriter, r *http.Request) {
	page := &adminvm.Page{
		Layout:    buildLayout(r, adminPageMeta()),
		LogsEmpty: "No logs available",
	}
	h.renderFragment(w, r, "admin-logs-fragment", page)
}

// placeholderResponse finishes a placeholder POST: a 204 for HTMX (the
// toast already carries the message), a redirect back to the tab for
// plain form posts.
func (h *UIHandlers) placeholderResponse(w http.ResponseWriter, r *http.Request, tab string) {
	if IsHTMX(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/admin?tab="+tab, http.StatusSeeOther)
}
