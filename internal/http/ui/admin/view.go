// Package admin holds view models for the admin dashboard page.
package admin

import (
	"strings"

	"github.com/carcarepro/carcare-ui/internal/domain/model"
	"github.com/carcarepro/carcare-ui/internal/http/ui/viewmodel"
	"github.com/carcarepro/carcare-ui/internal/http/uiutil"
)

// Tab is one entry of the admin tab bar.
type Tab struct {
	ID     string
	Label  string
	Active bool
}

// Tabs builds the tab bar with exactly one active tab. Unknown ids fall
// back to the users tab.
func Tabs(active string) []Tab {
	tabs := []Tab{
		{ID: "users", Label: "User Management"},
		{ID: "email", Label: "Email Settings"},
		{ID: "settings", Label: "System Settings"},
		{ID: "logs", Label: "Activity Logs"},
	}

	known := false
	for _, t := range tabs {
		if t.ID == active {
			known = true
			break
		}
	}
	if !known {
		active = "users"
	}
	for i := range tabs {
		tabs[i].Active = tabs[i].ID == active
	}
	return tabs
}

// ActiveTab returns the normalized active tab id for a raw ?tab= value.
func ActiveTab(raw string) string {
	for _, t := range Tabs(raw) {
		if t.Active {
			return t.ID
		}
	}
	return "users"
}

// UserRow is one rendered row of the user table.
type UserRow struct {
	Name   string
	Email  string
	Role   string
	Status string
	Joined string
}

// NewUserRow derives the rendered row for a directory record. Status is
// "Pending" until the account's email is verified.
func NewUserRow(u model.User) UserRow {
	status := "Active"
	if !u.EmailVerified {
		status = "Pending"
	}
	return UserRow{
		Name:   u.Name,
		Email:  u.Email,
		Role:   string(u.Role),
		Status: status,
		Joined: uiutil.FormatFriendlyDate(u.CreatedAt),
	}
}

// NewUserRows maps directory records to table rows.
func NewUserRows(users []model.User) []UserRow {
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, NewUserRow(u))
	}
	return rows
}

// renderedText is the searchable text of the row, matching what the
// table cell renders.
func (r UserRow) renderedText() string {
	return strings.ToLower(strings.Join([]string{r.Name, r.Email, r.Role, r.Status, r.Joined}, " "))
}

// FilterUserRows hides exactly the rows whose rendered text lacks the
// query, case-insensitively. An empty query returns the input unchanged.
func FilterUserRows(rows []UserRow, query string) []UserRow {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	out := make([]UserRow, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(r.renderedText(), q) {
			out = append(out, r)
		}
	}
	return out
}

// UserForm carries submitted add-user values back into the form on error.
type UserForm struct {
	Name          string
	Email         string
	Role          string
	EmailVerified bool
	Errors        map[string]string
	Error         string
}

// EmailConfigView is the presentation of one email configuration test.
type EmailConfigView struct {
	State       string // success | not_configured | error | unknown
	Icon        string
	Title       string
	Message     string
	CanSendTest bool
	Details     []model.DisplayDetail
	ErrorDetail string
	Help        string
}

// NewEmailConfigView maps a backend test result onto one of the four
// presentation states. Statuses the backend may add later land on the
// unknown presentation rather than an error.
func NewEmailConfigView(res model.EmailConfigResult) EmailConfigView {
	view := EmailConfigView{
		State:       string(res.Status),
		Message:     res.Message,
		CanSendTest: res.CanSendTest(),
		Details:     res.DisplayDetails(),
		ErrorDetail: res.ErrorDetail(),
		Help:        res.Help,
	}

	switch res.Status {
	case model.EmailConfigSuccess:
		view.Icon = "✅"
		view.Title = "Email configuration looks good"
	case model.EmailConfigNotConfigured:
		view.Icon = "⚠️"
		view.Title = "Email is not configured"
	case model.EmailConfigError:
		view.Icon = "❌"
		view.Title = "Email configuration test failed"
	default:
		view.State = "unknown"
		view.Icon = "❓"
		view.Title = "Unexpected test result"
	}
	return view
}

// ErrorEmailConfigView is the presentation used when the test request
// itself failed. The message comes from the raised error, no details.
func ErrorEmailConfigView(message string) EmailConfigView {
	return NewEmailConfigView(model.EmailConfigResult{
		Status:  model.EmailConfigError,
		Message: message,
	})
}

// Page is the complete admin page view model, built whole per render.
type Page struct {
	viewmodel.Layout
	Tabs       []Tab
	ActiveTab  string
	Users      []UserRow
	UsersError string
	Query      string
	Form       UserForm
	Email      *EmailConfigView
	LogsEmpty  string
}
