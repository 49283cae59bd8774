package probe

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProbe installs a shell script that mimics ffprobe's JSON output.
func fakeProbe(t *testing.T, payload string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "ffprobe")
	script := "#!/bin/sh\ncat <<'EOF'\n" + payload + "\nEOF\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestFFProbe_Height(t *testing.T) {
	p := &FFProbe{Binary: fakeProbe(t, `{
		"streams": [
			{"codec_type": "audio", "channels": 6},
			{"codec_type": "video", "width": 1920, "height": 1080}
		]
	}`)}

	height, err := p.Height(context.Background(), "/any/file.mkv")
	require.NoError(t, err)
	assert.Equal(t, 1080, height)
}

func TestFFProbe_Height_NoVideoStream(t *testing.T) {
	p := &FFProbe{Binary: fakeProbe(t, `{"streams": [{"codec_type": "audio"}]}`)}

	_, err := p.Height(context.Background(), "/any/file.mkv")
	assert.ErrorIs(t, err, ErrNoVideoStream)
}

func TestFFProbe_Height_BadBinary(t *testing.T) {
	p := &FFProbe{Binary: filepath.Join(t.TempDir(), "missing-ffprobe")}

	_, err := p.Height(context.Background(), "/any/file.mkv")
	assert.Error(t, err)
}
