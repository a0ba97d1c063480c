package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carcarepro/carcare-ui/internal/domain/auth"
	"github.com/carcarepro/carcare-ui/internal/domain/model"
)

func TestTabsExactlyOneActive(t *testing.T) {
	for _, active := range []string{"users", "email", "settings", "logs", "bogus", ""} {
		t.Run("tab "+active, func(t *testing.T) {
			tabs := Tabs(active)
			require.Len(t, tabs, 4)

			count := 0
			for _, tab := range tabs {
				if tab.Active {
					count++
				}
			}
			assert.Equal(t, 1, count)
		})
	}
}

func TestActiveTabFallsBackToUsers(t *testing.T) {
	assert.Equal(t, "users", ActiveTab(""))
	assert.Equal(t, "users", ActiveTab("bogus"))
	assert.Equal(t, "email", ActiveTab("email"))
}

func TestNewUserRowStatus(t *testing.T) {
	verified := model.User{Name: "Ada", Email: "ada@example.com", Role: auth.RoleAdmin, EmailVerified: true,
		CreatedAt: time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)}
	pending := verified
	pending.EmailVerified = false

	assert.Equal(t, "Active", NewUserRow(verified).Status)
	assert.Equal(t, "Pending", NewUserRow(pending).Status)
	assert.Equal(t, "Jan 5, 2024", NewUserRow(verified).Joined)
}

func TestFilterUserRows(t *testing.T) {
	rows := NewUserRows([]model.User{
		{Name: "Ada Admin", Email: "ada@example.com", Role: auth.RoleAdmin, EmailVerified: true,
			CreatedAt: time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)},
		{Name: "Bob Builder", Email: "bob@example.com", Role: auth.RoleUser, EmailVerified: false,
			CreatedAt: time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)},
	})

	t.Run("empty query returns all", func(t *testing.T) {
		assert.Equal(t, rows, FilterUserRows(rows, ""))
		assert.Equal(t, rows, FilterUserRows(rows, "   "))
	})

	t.Run("matches any rendered column", func(t *testing.T) {
		assert.Len(t, FilterUserRows(rows, "ADA"), 1)
		assert.Len(t, FilterUserRows(rows, "pending"), 1)
		assert.Len(t, FilterUserRows(rows, "admin"), 1)
		assert.Len(t, FilterUserRows(rows, "mar 9"), 1)
		assert.Len(t, FilterUserRows(rows, "example.com"), 2)
	})

	t.Run("no match hides everything", func(t *testing.T) {
		assert.Empty(t, FilterUserRows(rows, "zzz"))
	})
}

func TestNewEmailConfigViewStates(t *testing.T) {
	tests := []struct {
		name        string
		result      model.EmailConfigResult
		wantState   string
		wantSend    bool
		wantTitlePt string
	}{
		{"success", model.EmailConfigResult{Status: model.EmailConfigSuccess}, "success", true, "looks good"},
		{"not configured", model.EmailConfigResult{Status: model.EmailConfigNotConfigured}, "not_configured", false, "not configured"},
		{"error", model.EmailConfigResult{Status: model.EmailConfigError}, "error", false, "test failed"},
		{"unknown status", model.EmailConfigResult{Status: "surprise"}, "unknown", false, "Unexpected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewEmailConfigView(tt.result)
			assert.Equal(t, tt.wantState, view.State)
			assert.Equal(t, tt.wantSend, view.CanSendTest)
			assert.Contains(t, view.Title, tt.wantTitlePt)
			assert.NotEmpty(t, view.Icon)
		})
	}
}

func TestNewEmailConfigViewWithholdsSensitiveDetails(t *testing.T) {
	view := NewEmailConfigView(model.EmailConfigResult{
		Status: model.EmailConfigSuccess,
		Details: map[string]any{
			"smtp_host": "smtp.example.com",
			"password":  "s3cret",
			"error":     "boom",
		},
	})

	require.Len(t, view.Details, 1)
	assert.Equal(t, "smtp_host", view.Details[0].Key)
	assert.Equal(t, "boom", view.ErrorDetail)
}

func TestErrorEmailConfigView(t *testing.T) {
	view := ErrorEmailConfigView("backend unreachable")
	assert.Equal(t, "error", view.State)
	assert.Equal(t, "backend unreachable", view.Message)
	assert.False(t, view.CanSendTest)
	assert.Empty(t, view.Details)
}
