package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSC52_WritesEscapeSequence(t *testing.T) {
	var buf bytes.Buffer
	c := &OSC52{out: &buf, terminal: true}

	require.NoError(t, c.WriteText(context.Background(), "app-123"))

	assert.Equal(t, "\x1b]52;c;YXBwLTEyMw==\a", buf.String())
}

func TestOSC52_NotTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	c := NewOSC52(f)
	err = c.WriteText(context.Background(), "x")

	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestOSC52_CanceledContext(t *testing.T) {
	var buf bytes.Buffer
	c := &OSC52{out: &buf, terminal: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.WriteText(ctx, "x"), context.Canceled)
	assert.Empty(t, buf.String())
}
