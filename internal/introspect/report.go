package introspect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion identifies the report layout. Bump on incompatible changes.
const SchemaVersion = "1"

// Report is the serialized result of introspecting a source tree.
type Report struct {
	SchemaVersion string       `json:"schema_version"`
	RunID         string       `json:"run_id"`
	GeneratedAt   time.Time    `json:"generated_at"`
	Source        string       `json:"source"`
	Packages      []PackageDoc `json:"packages"`
}

// PackageDoc holds the documented declarations of a single package. Path is
// the package directory relative to the report source, so two packages with
// the same name stay distinguishable.
type PackageDoc struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Types     []TypeDoc `json:"types,omitempty"`
	Functions []FuncDoc `json:"functions,omitempty"`
}

// TypeDoc describes an exported type declaration.
type TypeDoc struct {
	Name   string     `json:"name"`
	Kind   string     `json:"kind"` // struct, interface or alias
	Doc    string     `json:"doc,omitempty"`
	Fields []FieldDoc `json:"fields,omitempty"`
}

// FieldDoc describes an exported struct field.
type FieldDoc struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	JSONTag string `json:"json_tag,omitempty"`
	Doc     string `json:"doc,omitempty"`
}

// FuncDoc describes an exported function or method.
type FuncDoc struct {
	Name      string `json:"name"`
	Receiver  string `json:"receiver,omitempty"`
	Signature string `json:"signature"`
	Doc       string `json:"doc,omitempty"`
}

// NewReport stamps an empty report for the given source directory.
func NewReport(source string) *Report {
	return &Report{
		SchemaVersion: SchemaVersion,
		RunID:         uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		Source:        source,
	}
}

// Filename returns the output file name for the report. The generation
// timestamp is embedded so consecutive runs never clobber each other.
func (r *Report) Filename() string {
	return fmt.Sprintf("apidoc-%s.json", r.GeneratedAt.UTC().Format("20060102T150405Z"))
}

// Write serializes the report into dir and returns the written path.
func (r *Report) Write(dir string) (string, error) {
	if fi, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("output directory %s: %w", dir, err)
	} else if !fi.IsDir() {
		return "", fmt.Errorf("output path %s is not a directory", dir)
	}

	path := filepath.Join(dir, r.Filename())
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return path, nil
}
