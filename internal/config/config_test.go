package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, "//sensors:", c.DirectiveMarker())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	contents := `
[sdk]
import_path = "example.com/analytics/sa"
shared_instance = "Client"

[directives]
prefix = "sa"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(contents), 0644))

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "example.com/analytics/sa", c.SDK.ImportPath)
	assert.Equal(t, "Client", c.SDK.SharedInstance)
	assert.Equal(t, DefaultMethodOf, c.SDK.MethodOf)
	assert.Equal(t, DefaultStartWithTag, c.SDK.StartWithTag)
	assert.Equal(t, DefaultDiffFileName, c.Output.Diff)
	assert.Equal(t, "//sa:", c.DirectiveMarker())
	assert.Equal(t, filepath.Join(dir, FileName), c.Path)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name:     "syntax error",
			contents: "[sdk\nimport_path = 1",
		},
		{
			name:     "invalid prefix",
			contents: "[directives]\nprefix = \"sa:x\"",
		},
		{
			name:     "invalid import path",
			contents: "[sdk]\nimport_path = \"example.com/a b\"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(tt.contents), 0644))
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoadFileRequired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	_, err := LoadFile(path, false)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
	assert.Contains(t, err.Error(), "cannot read "+path)
	// wrapped errors carry the stack for --debug output
	assert.Contains(t, fmt.Sprintf("%+v", err), "config.LoadFile")
}
