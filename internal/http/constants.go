package httpx

// CurrentPage constants identify pages in templates and navigation.
const (
	PageMaintenance = "maintenance"
	PageAdmin       = "admin"
	PageLogin       = "login"
)

// Admin dashboard tab identifiers. Unknown ?tab= values fall back to
// TabUsers.
const (
	TabUsers    = "users"
	TabEmail    = "email"
	TabSettings = "settings"
	TabLogs     = "logs"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// DefaultSessionCookieName is the cookie carrying the server session ID
// when no name is configured.
const DefaultSessionCookieName = "session_id"

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageMaintenance: "maintenance-content",
	PageAdmin:       "admin-content",
	PageLogin:       "login-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to maintenance-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "maintenance-content"
}
