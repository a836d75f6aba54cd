package safefile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOpenRegular_Success(t *testing.T) {
	path := writeFile(t, "chat.txt", "test content")

	f, info, err := OpenRegular(path)
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, info.Mode().IsRegular())
	buf := make([]byte, 12)
	n, err := f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "test content", string(buf[:n]))
}

func TestOpenRegular_FileNotExist(t *testing.T) {
	_, _, err := OpenRegular(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, os.IsNotExist(err), "got %v", err)
}

func TestOpenRegular_RejectsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test requires Unix")
	}

	target := writeFile(t, "target.txt", "test")
	link := filepath.Join(filepath.Dir(target), "link.txt")
	require.NoError(t, os.Symlink(target, link))

	_, _, err := OpenRegular(link)
	assert.ErrorIs(t, err, ErrNotRegularFile)
}

func TestOpenRegular_RejectsDirectory(t *testing.T) {
	_, _, err := OpenRegular(t.TempDir())
	assert.ErrorIs(t, err, ErrNotRegularFile)
}

func TestOpenRegular_EmptyFile(t *testing.T) {
	f, info, err := OpenRegular(writeFile(t, "empty.txt", ""))
	require.NoError(t, err)
	defer f.Close()
	assert.Zero(t, info.Size())
}

func TestOpenLimited(t *testing.T) {
	path := writeFile(t, "chat.txt", "0123456789")

	f, _, err := OpenLimited(path, 10)
	require.NoError(t, err)
	f.Close()

	f, _, err = OpenLimited(path, 0)
	require.NoError(t, err)
	f.Close()

	_, _, err = OpenLimited(path, 9)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestReadLimited(t *testing.T) {
	path := writeFile(t, "patterns.yaml", "version: 1\n")

	data, err := ReadLimited(path, 1024)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))

	_, err = ReadLimited(path, 4)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
