package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/example/docsmith/internal/config"
	"github.com/example/docsmith/internal/diagram"
	"github.com/example/docsmith/internal/introspect"
)

func testApp() *app {
	return &app{logger: zap.NewNop(), cfg: &config.Config{}}
}

func TestRunApidoc(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "m.go"), []byte(`
package m

// Greet says hello.
func Greet(name string) string { return "hello " + name }
`), 0o644))
	out := t.TempDir()

	require.NoError(t, runApidoc(testApp(), apidocOptions{Source: src, Output: out}))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "apidoc-"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".json"))

	data, err := os.ReadFile(filepath.Join(out, entries[0].Name()))
	require.NoError(t, err)
	var report introspect.Report
	require.NoError(t, json.Unmarshal(data, &report))
	require.Len(t, report.Packages, 1)
	assert.Equal(t, "Greet", report.Packages[0].Functions[0].Name)
}

func TestRunApidocMissingSource(t *testing.T) {
	err := runApidoc(testApp(), apidocOptions{Source: filepath.Join(t.TempDir(), "nope"), Output: t.TempDir()})
	require.Error(t, err)
}

func TestRunOpenAPIWritesSpec(t *testing.T) {
	out := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, runOpenAPI(testApp(), openapiOptions{Output: out, Format: "yaml"}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var spec map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &spec))
	assert.Equal(t, "3.1.0", spec["openapi"])
}

func TestRunOpenAPIConfigFallback(t *testing.T) {
	a := testApp()
	a.cfg.Title = "Configured API"
	out := filepath.Join(t.TempDir(), "openapi.json")

	require.NoError(t, runOpenAPI(a, openapiOptions{Output: out}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Configured API"`)
}

func TestRunOpenAPIMissingOutputDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "openapi.json")
	err := runOpenAPI(testApp(), openapiOptions{Output: out})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

type recordingRunner struct {
	calls int
}

func (r *recordingRunner) Run(_, _, _ string) error {
	r.calls++
	return nil
}

func TestRunDiagramDefaultPipeline(t *testing.T) {
	base := filepath.Join(t.TempDir(), "workflow")
	runner := &recordingRunner{}

	require.NoError(t, runDiagram(testApp(), diagramOptions{Output: base, Format: "svg"}, runner))

	data, err := os.ReadFile(base + ".gv")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ingest" -> "parse"`)
	assert.Equal(t, 1, runner.calls)
}

func TestRunDiagramCustomFile(t *testing.T) {
	dir := t.TempDir()
	graphFile := filepath.Join(dir, "g.yml")
	require.NoError(t, os.WriteFile(graphFile, []byte(`
name: g
nodes:
  - id: a
  - id: b
edges:
  - from: a
    to: b
`), 0o644))

	base := filepath.Join(dir, "out")
	require.NoError(t, runDiagram(testApp(), diagramOptions{File: graphFile, Output: base}, &recordingRunner{}))

	data, err := os.ReadFile(base + ".gv")
	require.NoError(t, err)
	assert.Contains(t, string(data), `digraph "g"`)
}

func TestRunDiagramInvalidFile(t *testing.T) {
	dir := t.TempDir()
	graphFile := filepath.Join(dir, "g.yml")
	require.NoError(t, os.WriteFile(graphFile, []byte("nodes:\n  - id: a\nedges:\n  - from: a\n    to: ghost\n"), 0o644))

	err := runDiagram(testApp(), diagramOptions{File: graphFile, Output: filepath.Join(dir, "out")}, &recordingRunner{})
	require.Error(t, err)
}

func TestRunFAQDefaultEntries(t *testing.T) {
	out := filepath.Join(t.TempDir(), "faq.md")
	require.NoError(t, runFAQ(testApp(), faqOptions{Output: out}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "### "))
}

func TestRunTestgen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "m.go"), []byte("package m\n\nfunc Do() {}\n"), 0o644))

	require.NoError(t, runTestgen(testApp(), testgenOptions{Dir: dir}))

	data, err := os.ReadFile(filepath.Join(dir, "m_stub_test.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "func TestDo(t *testing.T)")
}

var _ diagram.Runner = (*recordingRunner)(nil)
