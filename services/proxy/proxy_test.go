package proxy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proxies.txt")

	content := `# liste de proxies
10.0.0.1:8080

10.0.0.2:3128
not-a-proxy
# 10.0.0.3:8080
10.0.0.4:1080
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rotation, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, rotation.Len())
	assert.Equal(t, []string{"10.0.0.1:8080", "10.0.0.2:3128", "10.0.0.4:1080"}, rotation.Addrs())
}

func TestLoadFromFileMissing(t *testing.T) {
	rotation, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.NoError(t, err)
	assert.Equal(t, 0, rotation.Len())
}
