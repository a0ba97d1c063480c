package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/carcarepro/carcare-ui/internal/api"
	"github.com/carcarepro/carcare-ui/internal/domain/auth"
	"github.com/carcarepro/carcare-ui/internal/domain/model"
)

// stubAdminService implements AdminDirectoryService for handler tests.
type stubAdminService struct {
	users       []model.User
	listErr     error
	listCalls   int
	created     *model.User
	createErr   error
	emailResult *model.EmailConfigResult
	emailErr    error
}

func (s *stubAdminService) ListUsers(_ context.Context, _ string) ([]model.User, error) {
	s.listCalls++
	return s.users, s.listErr
}

func (s *stubAdminService) CreateUser(_ context.Context, _ string, req model.CreateUserRequest) (*model.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	return &model.User{Name: req.Name, Email: req.Email, Role: req.Role}, nil
}

func (s *stubAdminService) TestEmailConfig(_ context.Context, _ string) (*model.EmailConfigResult, error) {
	return s.emailResult, s.emailErr
}

func sampleUsers() []model.User {
	return []model.User{
		{Name: "Ada Admin", Email: "ada@example.com", Role: auth.RoleAdmin, EmailVerified: true,
			CreatedAt: time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)},
		{Name: "Bob Builder", Email: "bob@example.com", Role: auth.RoleUser, EmailVerified: false,
			CreatedAt: time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)},
	}
}

func adminRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	sess := adminSession()
	return req.WithContext(SetSessionInContext(req.Context(), sess))
}

func TestAdminUsersFragmentFiltersRenderedRows(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	svc := &stubAdminService{users: sampleUsers()}
	h := &UIHandlers{T: tr, Admin: svc}

	req := adminRequest(http.MethodGet, "/admin/users?q=pending", "")
	req.Header.Set(headerHXRequest, "true")
	rec := httptest.NewRecorder()
	h.AdminUsersFragment(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "bob@example.com", "unverified user matches the Pending status text")
	assert.NotContains(t, body, "ada@example.com")
	assert.Equal(t, "/admin?tab=users&q=pending", rec.Header().Get(headerHXPushURL),
		"the search must land in the browser history")
}

func TestAdminPageRestoresSearchFromQuery(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	svc := &stubAdminService{users: sampleUsers()}
	h := &UIHandlers{T: tr, Admin: svc}

	rec := httptest.NewRecorder()
	h.AdminPage(rec, adminRequest(http.MethodGet, "/admin?tab=users&q=pending", ""))

	body := rec.Body.String()
	assert.Contains(t, body, "bob@example.com")
	assert.NotContains(t, body, "ada@example.com")
}

func TestAdminUsersFragmentEmptyQueryShowsAll(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	svc := &stubAdminService{users: sampleUsers()}
	h := &UIHandlers{T: tr, Admin: svc}

	rec := httptest.NewRecorder()
	h.AdminUsersFragment(rec, adminRequest(http.MethodGet, "/admin/users", ""))

	ContainsAll(t, rec.Body.String(), "ada@example.com", "bob@example.com")
}

func TestAdminUsersFragmentListFailureShowsErrorAndToast(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	svc := &stubAdminService{listErr: assert.AnError}
	h := &UIHandlers{T: tr, Admin: svc}

	req := adminRequest(http.MethodGet, "/admin/users", "")
	req.Header.Set(headerHXRequest, "true")
	rec := httptest.NewRecorder()
	h.AdminUsersFragment(rec, req)

	assert.Contains(t, rec.Body.String(), errMsgUnableLoadUsers)
	assert.Contains(t, rec.Header().Get(headerHXTrigger), errMsgUnableLoadUsers)
}

func TestAdminUserCreateBackendRejectionKeepsFormOpen(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	svc := &stubAdminService{
		createErr: &api.Error{StatusCode: http.StatusBadRequest, Detail: "Email already registered"},
	}
	h := &UIHandlers{T: tr, Admin: svc}

	form := url.Values{
		"name":     {"New Person"},
		"email":    {"taken@example.com"},
		"password": {"hunter22"},
		"role":     {"user"},
	}
	req := adminRequest(http.MethodPost, "/admin/users", form.Encode())
	req.Header.Set(headerHXRequest, "true")
	rec := httptest.NewRecorder()
	h.AdminUserCreate(rec, req)

	body := rec.Body.String()
	ContainsAll(t, body, "Email already registered", "New Person", "taken@example.com")
	assert.Contains(t, rec.Header().Get(headerHXTrigger), "Email already registered")
	assert.Equal(t, 0, svc.listCalls, "a rejected submit must not re-fetch the user list")
}

func TestAdminUserCreateSuccessRefreshesListWithToast(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	svc := &stubAdminService{users: sampleUsers()}
	h := &UIHandlers{T: tr, Admin: svc}

	form := url.Values{
		"name":     {"New Person"},
		"email":    {"new@example.com"},
		"password": {"hunter22"},
		"role":     {"user"},
	}
	req := adminRequest(http.MethodPost, "/admin/users", form.Encode())
	req.Header.Set(headerHXRequest, "true")
	rec := httptest.NewRecorder()
	h.AdminUserCreate(rec, req)

	assert.Equal(t, 1, svc.listCalls)
	assert.Contains(t, rec.Header().Get(headerHXTrigger), "User new@example.com created")
	ContainsAll(t, rec.Body.String(), "ada@example.com", "bob@example.com")
}

func TestAdminUserCreateSuccessFullPageRedirects(t *testing.T) {
	svc := &stubAdminService{}
	h := &UIHandlers{Admin: svc}

	form := url.Values{
		"name":     {"New Person"},
		"email":    {"new@example.com"},
		"password": {"hunter22"},
	}
	rec := httptest.NewRecorder()
	h.AdminUserCreate(rec, adminRequest(http.MethodPost, "/admin/users", form.Encode()))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin?tab=users", rec.Header().Get("Location"))
}

func TestAdminEmailConfigTestSuccess(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	svc := &stubAdminService{emailResult: &model.EmailConfigResult{
		Status:  model.EmailConfigSuccess,
		Message: "SMTP connection verified",
		Details: map[string]any{
			"smtp_host": "smtp.example.com",
			"smtp_port": float64(587),
			"password":  "s3cret",
		},
		Help: "You can now send notification emails.",
	}}
	h := &UIHandlers{T: tr, Admin: svc}

	req := adminRequest(http.MethodPost, "/admin/email-config/test", "")
	req.Header.Set(headerHXRequest, "true")
	rec := httptest.NewRecorder()
	h.AdminEmailConfigTest(rec, req)

	body := rec.Body.String()
	ContainsAll(t, body, "smtp.example.com", "587", "You can now send notification emails.")
	assert.NotContains(t, body, "s3cret", "password detail must never render")
}

func TestAdminEmailConfigTestTransportFailure(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	svc := &stubAdminService{emailErr: &api.Error{StatusCode: http.StatusBadGateway, Detail: "backend unreachable"}}
	h := &UIHandlers{T: tr, Admin: svc}

	req := adminRequest(http.MethodPost, "/admin/email-config/test", "")
	req.Header.Set(headerHXRequest, "true")
	rec := httptest.NewRecorder()
	h.AdminEmailConfigTest(rec, req)

	assert.Contains(t, rec.Body.String(), "backend unreachable")
}

func TestAdminPageListFailureStillRendersCompleteTab(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	svc := &stubAdminService{listErr: assert.AnError}
	h := &UIHandlers{T: tr, Admin: svc}

	rec := httptest.NewRecorder()
	h.AdminPage(rec, adminRequest(http.MethodGet, "/admin?tab=users", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	ContainsAll(t, rec.Body.String(), "User Management", errMsgUnableLoadUsers)
}

func TestAdminPlaceholderActions(t *testing.T) {
	h := &UIHandlers{}

	tests := []struct {
		name    string
		handler http.HandlerFunc
		message string
	}{
		{"send test email", h.AdminSendTestEmail, "Sending test emails is not available yet"},
		{"edit user", h.AdminUserEdit, "Editing users is not available yet"},
		{"delete user", h.AdminUserDelete, "Deleting users is not available yet"},
		{"save settings", h.AdminSettingsSave, "Settings saved"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := adminRequest(http.MethodPost, "/admin/placeholder", "")
			req.Header.Set(headerHXRequest, "true")
			rec := httptest.NewRecorder()
			tt.handler(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Contains(t, rec.Header().Get(headerHXTrigger), tt.message)
		})
	}
}
