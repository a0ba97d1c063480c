package httpx

import (
	"os"
	"strings"
	"testing"
)

// RequireTemplateRenderer builds a renderer from the on-disk templates,
// skipping the test when the template directory is not present.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	SkipIfNoTemplates(t)

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Resolver:   &AssetResolver{},
	})
	if err != nil {
		t.Fatalf("failed to create template renderer: %v", err)
	}
	return tr
}

// SkipIfNoTemplates skips the test when frontend templates are not available.
func SkipIfNoTemplates(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skipf("skipping: templates not found at %s", TemplatePathFromTest)
	}
}

// ContainsAll fails the test if body is missing any of the wanted substrings.
func ContainsAll(t *testing.T, body string, wanted ...string) {
	t.Helper()
	for _, w := range wanted {
		if !strings.Contains(body, w) {
			t.Errorf("response body missing %q", w)
		}
	}
}
