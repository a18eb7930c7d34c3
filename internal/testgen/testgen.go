// Package testgen generates unit-test skeletons for the exported functions
// and methods of a package that do not have tests yet.
package testgen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"go.uber.org/zap"
)

// Target is a single test stub to be generated.
type Target struct {
	Package    string
	SourceFile string
	FuncName   string
	Receiver   string
	TestName   string
}

// Generator scans a package directory and writes stub test files.
type Generator struct {
	logger *zap.Logger
}

// New creates a generator. A nil logger disables logging.
func New(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// Scan parses the package in dir and returns one target per exported
// function or method that has no matching TestXxx in the package's test
// files. Targets are sorted by source file, then test name.
func (g *Generator) Scan(dir string) ([]Target, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse package %s: %w", dir, err)
	}

	existing := make(map[string]bool)
	var targets []Target

	for _, pkg := range pkgs {
		for path, file := range pkg.Files {
			if strings.HasSuffix(path, "_test.go") {
				collectTestNames(file, existing)
				continue
			}
			targets = append(targets, scanFile(path, file)...)
		}
	}

	var missing []Target
	for _, t := range targets {
		if existing[t.TestName] {
			g.logger.Debug("test already exists", zap.String("name", t.TestName))
			continue
		}
		missing = append(missing, t)
	}

	sort.Slice(missing, func(i, j int) bool {
		if missing[i].SourceFile != missing[j].SourceFile {
			return missing[i].SourceFile < missing[j].SourceFile
		}
		return missing[i].TestName < missing[j].TestName
	})
	return missing, nil
}

func collectTestNames(file *ast.File, names map[string]bool) {
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && strings.HasPrefix(fn.Name.Name, "Test") {
			names[fn.Name.Name] = true
		}
	}
}

func scanFile(path string, file *ast.File) []Target {
	var targets []Target
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !ast.IsExported(fn.Name.Name) {
			continue
		}
		if fn.Name.Name == "main" || fn.Name.Name == "init" {
			continue
		}

		t := Target{
			Package:    file.Name.Name,
			SourceFile: path,
			FuncName:   fn.Name.Name,
			TestName:   "Test" + fn.Name.Name,
		}
		if fn.Recv != nil && len(fn.Recv.List) > 0 {
			recv := receiverName(fn.Recv.List[0].Type)
			if recv != "" && !ast.IsExported(recv) {
				continue
			}
			t.Receiver = recv
			t.TestName = "Test" + recv + "_" + fn.Name.Name
		}
		targets = append(targets, t)
	}
	return targets
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	default:
		return ""
	}
}

const stubTemplate = `package {{.Package}}

import "testing"

{{range .Targets}}
func {{.TestName}}(t *testing.T) {
	t.Skip("TODO: implement")
}
{{end}}`

// Generate writes one <file>_stub_test.go per source file containing stubs
// for the given targets. Existing stub files are only overwritten when force
// is set. Returns the paths of the written files.
func (g *Generator) Generate(targets []Target, force bool) ([]string, error) {
	if len(targets) == 0 {
		return nil, nil
	}

	byFile := make(map[string][]Target)
	var order []string
	for _, t := range targets {
		if _, seen := byFile[t.SourceFile]; !seen {
			order = append(order, t.SourceFile)
		}
		byFile[t.SourceFile] = append(byFile[t.SourceFile], t)
	}

	tmpl := template.Must(template.New("stubs").Parse(stubTemplate))

	var written []string
	for _, src := range order {
		group := byFile[src]
		outPath := strings.TrimSuffix(src, ".go") + "_stub_test.go"

		if !force {
			if _, err := os.Stat(outPath); err == nil {
				return written, fmt.Errorf("refusing to overwrite %s (use --force)", outPath)
			}
		}

		var buf bytes.Buffer
		data := struct {
			Package string
			Targets []Target
		}{Package: group[0].Package, Targets: group}
		if err := tmpl.Execute(&buf, data); err != nil {
			return written, fmt.Errorf("render stubs for %s: %w", src, err)
		}

		formatted, err := format.Source(buf.Bytes())
		if err != nil {
			return written, fmt.Errorf("format stubs for %s: %w", src, err)
		}

		if err := os.WriteFile(outPath, formatted, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", outPath, err)
		}
		g.logger.Info("generated test stubs",
			zap.String("file", filepath.Base(outPath)),
			zap.Int("stubs", len(group)))
		written = append(written, outPath)
	}
	return written, nil
}
