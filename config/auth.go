package config

import (
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// GoogleOAuthConfig contains Google OIDC sign-in configuration.
// Sign-in with Google is optional; it is enabled only when a client ID
// and secret are configured.
type GoogleOAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/google/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL" envDefault:"https://accounts.google.com"`

	// NameExpr and EmailExpr are JMESPath expressions evaluated against the
	// verified ID token claims to extract the display name and email.
	// Defaults match Google's standard claim names.
	NameExpr  string `env:"NAME_EXPR"  envDefault:"name"`
	EmailExpr string `env:"EMAIL_EXPR" envDefault:"email"`
}

// Enabled returns true when Google sign-in is configured.
func (g *GoogleOAuthConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// AuthConfig groups session and sign-in configuration.
type AuthConfig struct {
	// SessionTTL caps how long a dashboard session lives. It should not
	// exceed the backend's bearer token lifetime (30 minutes by default).
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// CookieName is the session cookie name.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`

	// Google sign-in configuration.
	Google GoogleOAuthConfig `envPrefix:"GOOGLE_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 30 * time.Minute
	}
	a.CookieName = strings.TrimSpace(a.CookieName)
	if a.CookieName == "" {
		a.CookieName = "session_id"
	}
	a.Google.sanitizeClaimExprs()
}

// sanitizeClaimExprs resets claim expressions that do not compile so a bad
// override degrades to the standard claim names instead of failing login.
func (g *GoogleOAuthConfig) sanitizeClaimExprs() {
	if _, err := jmespath.Compile(g.NameExpr); err != nil {
		g.NameExpr = "name"
	}
	if _, err := jmespath.Compile(g.EmailExpr); err != nil {
		g.EmailExpr = "email"
	}
}
