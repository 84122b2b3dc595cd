package qr

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURL(t *testing.T) {
	dataURL, err := DataURL("https://greetings.example.com/v/abc123")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/png;base64,"))
	require.NoError(t, err)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, raw[:4])
}

func TestDataURL_RejectsBadTargets(t *testing.T) {
	for _, target := range []string{"", "not a url", "/relative/path", "example.com/no-scheme"} {
		_, err := DataURL(target)
		assert.Error(t, err, "target %q", target)
	}
}
