package ports_test

import (
	"testing"

	mocks "github.com/carcarepro/carcare-ui/internal/mocks/auth"
	"github.com/carcarepro/carcare-ui/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.IdentityProvider = (*mocks.MockIdentityProvider)(nil)
	var _ ports.SessionStore = (*mocks.MemorySessionStore)(nil)
}
