package badge

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestTerminal(t *testing.T) {
	out, err := Terminal("JEAN2025")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "\n")

	_, err = Terminal("  ")
	assert.Error(t, err)
}

func TestPNG(t *testing.T) {
	png, err := PNG("SOPHIE2025", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qr", "PIERRE2025.png")
	require.NoError(t, WritePNG("PIERRE2025", path, 128))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}
