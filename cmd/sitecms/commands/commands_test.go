package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordFromArg(t *testing.T) {
	cmd := NewHashPasswordCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"hunter2"})

	assert.NoError(t, cmd.Execute())
	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")))
}

func TestHashPasswordFromStdin(t *testing.T) {
	cmd := NewHashPasswordCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("s3cret\n"))
	cmd.SetArgs([]string{})

	assert.NoError(t, cmd.Execute())
	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

func TestReadPasswordRejectsEmpty(t *testing.T) {
	_, err := readPassword(nil, strings.NewReader(""))
	assert.Error(t, err)
}

func TestSeedWritesCollections(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	t.Setenv("LOG_LEVEL", "error")

	cmd := NewSeedCommand(new(string))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	assert.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "file storage")

	for _, name := range []string{"services.json", "blogs.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err)
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	assert.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "sitecms "+Version)
}
