package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "github.com/reoring/profmarker", cfg.RuntimeImport)
	assert.Equal(t, "zz_generated_markers.go", cfg.Output)
	assert.Equal(t, "Name: {marker.name}", cfg.ChartLabel)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "en", cfg.Lang)
	assert.Empty(t, cfg.Types)
	assert.Equal(t, Default().RuntimeImport, cfg.RuntimeImport)
}

func TestLoad_WithConfigFileInDir(t *testing.T) {
	dir := t.TempDir()
	yml := "output: markers_gen.go\nlogLevel: debug\ntypes:\n  - IPCMessage\n  - FileIO\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "markergen.yaml"), []byte(yml), 0644))

	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "markers_gen.go", cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"IPCMessage", "FileIO"}, cfg.Types)
	assert.Equal(t, "Name: {marker.name}", cfg.ChartLabel)
}

func TestLoad_ExplicitJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"runtimeImport": "example.com/rt", "chartLabel": "{marker.data.name}"}`), 0644))

	cfg, err := Load(t.TempDir(), path)
	require.NoError(t, err)

	assert.Equal(t, "example.com/rt", cfg.RuntimeImport)
	assert.Equal(t, "{marker.data.name}", cfg.ChartLabel)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(t.TempDir(), "/nonexistent/markergen.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "markergen.yaml"), []byte("output: from_file.go\n"), 0644))
	t.Setenv("MARKERGEN_OUTPUT", "from_env.go")
	t.Setenv("MARKERGEN_TYPES", "A,B")

	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "from_env.go", cfg.Output)
	assert.Equal(t, []string{"A", "B"}, cfg.Types)
}

func TestLoad_RejectsEmptyRuntimeImport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "markergen.yaml"), []byte("runtimeImport: \"\"\n"), 0644))

	_, err := Load(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runtimeImport")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	c := Default()
	c.Output = " "
	assert.Error(t, c.Validate())
}
