package nativelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterAppendsToDailyFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)
	w.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }

	_, err = w.Write([]byte("one\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("two\n"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "zenith_2024-03-09.log"))
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(content))
}

func TestResolveDir(t *testing.T) {
	t.Setenv(EnvLogDir, "")
	assert.Equal(t, "/var/log/zenith", ResolveDir(" /var/log/zenith "))
	assert.Equal(t, filepath.Join(".", "logs"), ResolveDir(""))

	t.Setenv(EnvLogDir, "/tmp/override")
	assert.Equal(t, "/tmp/override", ResolveDir("/var/log/zenith"))
}
