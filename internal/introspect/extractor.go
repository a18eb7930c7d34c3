// Package introspect walks a Go source tree and collects doc comments,
// type shapes and function signatures into a JSON-serializable report.
package introspect

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Extractor parses Go files and indexes their documented declarations.
type Extractor struct {
	fileSet *token.FileSet
	files   map[string]*ast.File // filepath -> AST
	logger  *zap.Logger
}

// NewExtractor creates an extractor. A nil logger disables logging.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		fileSet: token.NewFileSet(),
		files:   make(map[string]*ast.File),
		logger:  logger,
	}
}

// ParseDirectory walks dir recursively and parses every Go file it finds.
// Vendor and testdata directories, hidden directories and _test.go files are
// skipped. Files that fail to parse are logged and skipped rather than
// aborting the whole run.
func (e *Extractor) ParseDirectory(dir string) error {
	if fi, err := os.Stat(dir); err != nil {
		return fmt.Errorf("source directory %s: %w", dir, err)
	} else if !fi.IsDir() {
		return fmt.Errorf("source path %s is not a directory", dir)
	}

	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name == "vendor" || name == "testdata" {
				return filepath.SkipDir
			}
			if path != dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		file, perr := parser.ParseFile(e.fileSet, path, nil, parser.ParseComments)
		if perr != nil {
			e.logger.Warn("skipping unparsable file", zap.String("file", path), zap.Error(perr))
			return nil
		}
		e.files[path] = file
		return nil
	})
}

// Extract produces a report for all parsed files, one package entry per
// directory. Keying by directory rather than package name keeps same-named
// packages from different subtrees apart. Declarations within a package are
// sorted by name for deterministic output.
func (e *Extractor) Extract(source string) *Report {
	report := NewReport(source)

	byDir := make(map[string]*PackageDoc)
	for path, file := range e.files {
		dir := filepath.Dir(path)
		pkg, ok := byDir[dir]
		if !ok {
			rel, err := filepath.Rel(source, dir)
			if err != nil {
				rel = dir
			}
			pkg = &PackageDoc{Name: file.Name.Name, Path: filepath.ToSlash(rel)}
			byDir[dir] = pkg
		}
		e.collectFile(file, pkg)
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		pkg := byDir[dir]
		sort.Slice(pkg.Types, func(i, j int) bool { return pkg.Types[i].Name < pkg.Types[j].Name })
		sort.Slice(pkg.Functions, func(i, j int) bool {
			if pkg.Functions[i].Receiver != pkg.Functions[j].Receiver {
				return pkg.Functions[i].Receiver < pkg.Functions[j].Receiver
			}
			return pkg.Functions[i].Name < pkg.Functions[j].Name
		})
		report.Packages = append(report.Packages, *pkg)
	}
	return report
}

func (e *Extractor) collectFile(file *ast.File, pkg *PackageDoc) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || !ast.IsExported(ts.Name.Name) {
					continue
				}
				pkg.Types = append(pkg.Types, e.extractType(ts, d))
			}
		case *ast.FuncDecl:
			if !ast.IsExported(d.Name.Name) {
				continue
			}
			pkg.Functions = append(pkg.Functions, e.extractFunc(d))
		}
	}
}

func (e *Extractor) extractType(ts *ast.TypeSpec, decl *ast.GenDecl) TypeDoc {
	td := TypeDoc{
		Name: ts.Name.Name,
		Doc:  declDoc(decl.Doc, ts.Doc, ts.Comment),
	}

	switch t := ts.Type.(type) {
	case *ast.StructType:
		td.Kind = "struct"
		for _, field := range t.Fields.List {
			td.Fields = append(td.Fields, e.extractFields(field)...)
		}
	case *ast.InterfaceType:
		td.Kind = "interface"
	default:
		td.Kind = "alias"
	}
	return td
}

func (e *Extractor) extractFields(field *ast.Field) []FieldDoc {
	var docs []FieldDoc
	typ := e.typeString(field.Type)
	doc := fieldDoc(field)

	// Embedded field: record under the embedded type's name.
	if len(field.Names) == 0 {
		return []FieldDoc{{Name: typ, Type: typ, Doc: doc}}
	}

	for _, name := range field.Names {
		if !ast.IsExported(name.Name) {
			continue
		}
		fd := FieldDoc{Name: name.Name, Type: typ, Doc: doc}
		if field.Tag != nil {
			tag := reflect.StructTag(strings.Trim(field.Tag.Value, "`"))
			if jsonTag, ok := tag.Lookup("json"); ok {
				fd.JSONTag = strings.Split(jsonTag, ",")[0]
			}
		}
		docs = append(docs, fd)
	}
	return docs
}

func (e *Extractor) extractFunc(decl *ast.FuncDecl) FuncDoc {
	fd := FuncDoc{
		Name:      decl.Name.Name,
		Signature: e.signature(decl),
	}
	if decl.Doc != nil {
		fd.Doc = strings.TrimSpace(decl.Doc.Text())
	}
	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		fd.Receiver = e.typeString(decl.Recv.List[0].Type)
	}
	return fd
}

// signature renders a readable "func Name(a int) (string, error)" string.
func (e *Extractor) signature(decl *ast.FuncDecl) string {
	var sb strings.Builder
	sb.WriteString("func ")
	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		sb.WriteString("(")
		sb.WriteString(e.fieldListString(decl.Recv))
		sb.WriteString(") ")
	}
	sb.WriteString(decl.Name.Name)
	sb.WriteString("(")
	sb.WriteString(e.fieldListString(decl.Type.Params))
	sb.WriteString(")")

	results := decl.Type.Results
	if results == nil || len(results.List) == 0 {
		return sb.String()
	}
	sb.WriteString(" ")
	if len(results.List) == 1 && len(results.List[0].Names) == 0 {
		sb.WriteString(e.typeString(results.List[0].Type))
	} else {
		sb.WriteString("(")
		sb.WriteString(e.fieldListString(results))
		sb.WriteString(")")
	}
	return sb.String()
}

func (e *Extractor) fieldListString(fields *ast.FieldList) string {
	if fields == nil {
		return ""
	}
	var parts []string
	for _, field := range fields.List {
		typ := e.typeString(field.Type)
		if len(field.Names) == 0 {
			parts = append(parts, typ)
			continue
		}
		names := make([]string, len(field.Names))
		for i, n := range field.Names {
			names[i] = n.Name
		}
		parts = append(parts, strings.Join(names, ", ")+" "+typ)
	}
	return strings.Join(parts, ", ")
}

func (e *Extractor) typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + e.typeString(t.X)
	case *ast.ArrayType:
		return "[]" + e.typeString(t.Elt)
	case *ast.SelectorExpr:
		return e.typeString(t.X) + "." + t.Sel.Name
	case *ast.MapType:
		return "map[" + e.typeString(t.Key) + "]" + e.typeString(t.Value)
	case *ast.InterfaceType:
		return "interface{}"
	case *ast.Ellipsis:
		return "..." + e.typeString(t.Elt)
	case *ast.FuncType:
		return "func(" + e.fieldListString(t.Params) + ")"
	case *ast.ChanType:
		return "chan " + e.typeString(t.Value)
	case *ast.IndexExpr:
		return e.typeString(t.X) + "[" + e.typeString(t.Index) + "]"
	case *ast.IndexListExpr:
		var params []string
		for _, idx := range t.Indices {
			params = append(params, e.typeString(idx))
		}
		return e.typeString(t.X) + "[" + strings.Join(params, ", ") + "]"
	default:
		return "unknown"
	}
}

func declDoc(groups ...*ast.CommentGroup) string {
	for _, g := range groups {
		if g != nil {
			return strings.TrimSpace(g.Text())
		}
	}
	return ""
}

func fieldDoc(field *ast.Field) string {
	if field.Doc != nil {
		return strings.TrimSpace(field.Doc.Text())
	}
	if field.Comment != nil {
		return strings.TrimSpace(field.Comment.Text())
	}
	return ""
}
