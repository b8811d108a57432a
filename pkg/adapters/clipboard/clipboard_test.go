package clipboard

import (
	"testing"

	"github.com/aretw0/ringlens/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.Clipboard = (*System)(nil)
	_ ports.Clipboard = (*Memory)(nil)
)

func TestSystem_RoundTrip(t *testing.T) {
	cb := New()
	if !cb.Available() {
		assert.ErrorIs(t, cb.WriteText("x"), ErrUnsupported)
		t.Skip("no clipboard utility on this host")
	}

	if err := cb.WriteText("- Verify KYC\n- Review payouts"); err != nil {
		// Utilities may be installed without a display to talk to.
		t.Skipf("clipboard not usable: %v", err)
	}
	text, err := cb.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "- Verify KYC\n- Review payouts", text)
}

func TestMemory(t *testing.T) {
	var m Memory
	require.NoError(t, m.WriteText("hello"))
	assert.Equal(t, "hello", m.Text())
}
