package config_test

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlc/config"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "gql.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeTempConfig(t, `
serverDir: ./schema
clientDir: ./ops
outputServerFile: ./out/server.json
outputClientFile: ./out/client.json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./schema", cfg.ServerDir)
	assert.Equal(t, "./ops", cfg.ClientDir)
	assert.Equal(t, "./out/server.json", cfg.OutputServerFile)
	assert.Equal(t, "./out/client.json", cfg.OutputClientFile)
}

func TestLoadMissingRequiredField(t *testing.T) {
	path := writeTempConfig(t, `
serverDir: ./schema
clientDir: ./ops
`)

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeTempConfig(t, "serverDir: [unterminated")
	_, err := config.Load(path)
	require.Error(t, err)
}
