package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/reoring/profmarker"
	"github.com/reoring/profmarker/i18n"
)

const markersSrc = `package ipc

//marker:display MarkerChart, MarkerTable
type IPCMessage struct {
	//marker:format UniqueString
	//marker:searchable
	MessageType string ` + "`json:\"messageType\"`" + `
	//marker:format Bytes
	Size uint64 ` + "`json:\"size\"`" + `
}

//marker:display TimelineFileIO
//marker:static "Source" "Interposer"
type FileIO struct {
	Filename string
}
`

const brokenSrc = `package ipc

//marker:display Nowhere
type Broken struct {
	Name string
}
`

func writePkg(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "markers.go"), []byte(src), 0o644))
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := BuildCLI()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBuildCLI(t *testing.T) {
	cmd := BuildCLI()

	assert.Equal(t, "markergen", cmd.Use)
	assert.Equal(t, Version, cmd.Version)

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["generate"])
	assert.True(t, names["check"])
	assert.True(t, names["schema"])
	assert.True(t, names["version"])

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("lang"))
}

func TestGenerate_WritesFile(t *testing.T) {
	dir := writePkg(t, markersSrc)

	_, stderr, err := run(t, "generate", dir)
	require.NoError(t, err, stderr)

	out, err := os.ReadFile(filepath.Join(dir, "zz_generated_markers.go"))
	require.NoError(t, err)
	code := string(out)
	assert.Contains(t, code, "// Code generated by markergen. DO NOT EDIT.")
	assert.Contains(t, code, `import profmarker "github.com/reoring/profmarker"`)
	assert.Contains(t, code, `func (IPCMessage) MarkerTypeName() string`)
	assert.Contains(t, code, `w.UniqueStringProperty("messageType", m.MessageType)`)
	assert.Contains(t, code, `schema.AddStaticLabelValue("Source", "Interposer")`)
}

func TestGenerate_FlagsOverrideConfig(t *testing.T) {
	dir := writePkg(t, markersSrc)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "markergen.yaml"), []byte("output: from_config.go\nruntimeImport: example.com/markers\n"), 0o644))

	_, stderr, err := run(t, "generate", dir, "--output", "from_flag.go", "--type", "FileIO")
	require.NoError(t, err, stderr)

	assert.NoFileExists(t, filepath.Join(dir, "from_config.go"))
	out, err := os.ReadFile(filepath.Join(dir, "from_flag.go"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `import markers "example.com/markers"`)
	assert.Contains(t, string(out), "func (FileIO) MarkerTypeName() string")
	assert.NotContains(t, string(out), "IPCMessage")
}

func TestGenerate_Stdout(t *testing.T) {
	dir := writePkg(t, markersSrc)

	stdout, stderr, err := run(t, "generate", dir, "-o", "-", "--chart-label", "{marker.data.messageType}")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, `schema.SetChartLabel("{marker.data.messageType}")`)
	assert.NoFileExists(t, filepath.Join(dir, "zz_generated_markers.go"))
}

func TestGenerate_DiagnosticsWriteNothing(t *testing.T) {
	dir := writePkg(t, brokenSrc)

	_, stderr, err := run(t, "generate", dir)
	require.ErrorIs(t, err, ErrDiagnostics)
	assert.Contains(t, stderr, "markers.go:3:18: Unsupported marker display location (Nowhere)")
	assert.NoFileExists(t, filepath.Join(dir, "zz_generated_markers.go"))
}

func TestCheck(t *testing.T) {
	stdout, stderr, err := run(t, "check", writePkg(t, markersSrc))
	require.NoError(t, err, stderr)
	assert.Equal(t, "ok: 2 marker types in package ipc\n", stdout)

	_, _, err = run(t, "check", writePkg(t, brokenSrc))
	assert.ErrorIs(t, err, ErrDiagnostics)
}

func TestCheck_Japanese(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })

	_, stderr, err := run(t, "check", writePkg(t, brokenSrc), "--lang", "ja")
	require.ErrorIs(t, err, ErrDiagnostics)
	assert.Contains(t, stderr, "markers.go:3:18: ")
	assert.NotContains(t, stderr, "Unsupported marker display location")
}

func TestSchema_JSON(t *testing.T) {
	stdout, stderr, err := run(t, "schema", writePkg(t, markersSrc))
	require.NoError(t, err, stderr)

	var docs []profmarker.Document
	require.NoError(t, json.Unmarshal([]byte(stdout), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "IPCMessage", docs[0].Name)
	assert.Equal(t, []string{"marker-chart"}, docs[0].Display)
	assert.Equal(t, []profmarker.DocumentRow{
		{Key: "messageType", Label: "messageType", Format: "unique-string", Searchable: true},
		{Key: "size", Label: "size", Format: "bytes"},
	}, docs[0].Data)
	assert.Equal(t, "FileIO", docs[1].Name)
	assert.Equal(t, profmarker.DocumentRow{Label: "Source", Value: "Interposer"}, docs[1].Data[1])
}

func TestSchema_YAML(t *testing.T) {
	stdout, stderr, err := run(t, "schema", writePkg(t, markersSrc), "--format", "yaml")
	require.NoError(t, err, stderr)

	var docs []profmarker.Document
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "Filename", docs[1].Data[0].Key)
	assert.Equal(t, "string", docs[1].Data[0].Format)
}

func TestSchema_RejectsUnknownFormat(t *testing.T) {
	_, _, err := run(t, "schema", t.TempDir(), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "markergen "+Version+"\n", stdout)
}
