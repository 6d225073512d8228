package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/reoring/partial"
)

// PartialImportPath is the import path whose Partial type marks a struct as
// tracked.
const PartialImportPath = "github.com/reoring/partial"

// Package is the result of scanning one directory.
type Package struct {
	Name    string       `json:"name"`
	Dir     string       `json:"dir"`
	Types   []TypeDef    `json:"types"`
	Imports []ImportSpec `json:"imports,omitempty"` // packages referenced by field types
}

// ImportSpec is an import needed by generated code.
type ImportSpec struct {
	Name string `json:"name,omitempty"` // explicit local name, if any
	Path string `json:"path"`
}

// TypeDef is a struct type that directly embeds partial.Partial of itself.
type TypeDef struct {
	Name   string     `json:"name"`
	Fields []FieldDef `json:"fields"`
}

// FieldDef is one exported field of a tracked type, in declared order.
type FieldDef struct {
	Name string `json:"name"`
	Type string `json:"type"`           // source expression of the field type
	Wire string `json:"wire,omitempty"` // wire name override from struct tags
}

// Scan parses the non-test Go files of dir and collects the tracked struct
// types. When names is non-empty only those types are returned, in the given
// order, and each of them must exist and be tracked.
func Scan(dir string, names []string) (*Package, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	fset := token.NewFileSet()
	pkg := &Package{Dir: dir}
	found := map[string]TypeDef{}
	imports := map[string][]ImportSpec{}
	var order []string
	for _, path := range files {
		if strings.HasSuffix(path, "_test.go") {
			continue
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		f, err := parser.ParseFile(fset, path, src, parser.SkipObjectResolution)
		if err != nil {
			return nil, err
		}
		if pkg.Name == "" {
			pkg.Name = f.Name.Name
		} else if pkg.Name != f.Name.Name {
			return nil, fmt.Errorf("%s: package %s, expected %s", path, f.Name.Name, pkg.Name)
		}
		alias, ok := partialAlias(f)
		if !ok {
			continue
		}
		for _, td := range trackedTypes(f, alias) {
			found[td.Name] = td
			imports[td.Name] = fieldImports(f, td, alias)
			order = append(order, td.Name)
		}
	}
	if pkg.Name == "" {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}

	if len(names) == 0 {
		names = order
	}
	seen := map[ImportSpec]bool{}
	for _, n := range names {
		td, ok := found[n]
		if !ok {
			return nil, fmt.Errorf("type %s not found in %s or does not embed partial.Partial[%s]", n, dir, n)
		}
		pkg.Types = append(pkg.Types, td)
		for _, spec := range imports[n] {
			if !seen[spec] {
				seen[spec] = true
				pkg.Imports = append(pkg.Imports, spec)
			}
		}
	}
	sort.Slice(pkg.Imports, func(i, j int) bool { return pkg.Imports[i].Path < pkg.Imports[j].Path })
	return pkg, nil
}

// fieldImports returns the imports of f that the field types of td refer to.
// References to the partial package itself are left to the renderer.
func fieldImports(f *ast.File, td TypeDef, alias string) []ImportSpec {
	byName := map[string]ImportSpec{}
	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		spec := ImportSpec{Path: p}
		local := path.Base(p)
		if imp.Name != nil {
			spec.Name = imp.Name.Name
			local = imp.Name.Name
		}
		byName[local] = spec
	}
	var out []ImportSpec
	for _, fd := range td.Fields {
		expr, err := parser.ParseExpr(fd.Type)
		if err != nil {
			continue
		}
		ast.Inspect(expr, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if id, ok := sel.X.(*ast.Ident); ok && id.Name != alias {
				if spec, ok := byName[id.Name]; ok {
					out = append(out, spec)
				}
			}
			return false
		})
	}
	return out
}

// partialAlias returns the local name under which f imports the partial
// package.
func partialAlias(f *ast.File) (string, bool) {
	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != PartialImportPath {
			continue
		}
		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				return "", false
			}
			return imp.Name.Name, true
		}
		return "partial", true
	}
	return "", false
}

func trackedTypes(f *ast.File, alias string) []TypeDef {
	var out []TypeDef
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.TypeParams != nil {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok || st.Fields == nil || !embedsSelf(st, alias, ts.Name.Name) {
				continue
			}
			out = append(out, TypeDef{Name: ts.Name.Name, Fields: structFields(st, alias)})
		}
	}
	return out
}

// embedsSelf reports whether st has an embedded alias.Partial[name] field.
func embedsSelf(st *ast.StructType, alias, name string) bool {
	return slices.ContainsFunc(st.Fields.List, func(field *ast.Field) bool {
		arg, ok := trackerArg(field, alias)
		return ok && arg == name
	})
}

// trackerArg reports whether field is an embedded alias.Partial[X] and
// returns X.
func trackerArg(field *ast.Field, alias string) (string, bool) {
	if len(field.Names) != 0 {
		return "", false
	}
	ix, ok := field.Type.(*ast.IndexExpr)
	if !ok {
		return "", false
	}
	sel, ok := ix.X.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Partial" {
		return "", false
	}
	if pkg, ok := sel.X.(*ast.Ident); !ok || pkg.Name != alias {
		return "", false
	}
	return types.ExprString(ix.Index), true
}

func structFields(st *ast.StructType, alias string) []FieldDef {
	var out []FieldDef
	for _, field := range st.Fields.List {
		if _, ok := trackerArg(field, alias); ok {
			continue
		}
		var tag reflect.StructTag
		if field.Tag != nil {
			if lit, err := strconv.Unquote(field.Tag.Value); err == nil {
				tag = reflect.StructTag(lit)
			}
		}
		wire, skip := partial.ResolveStructKey(reflect.StructField{Tag: tag})
		if skip {
			continue
		}
		typ := types.ExprString(field.Type)
		names := field.Names
		if len(names) == 0 {
			names = []*ast.Ident{embeddedName(field.Type)}
		}
		for _, n := range names {
			if n == nil || !n.IsExported() {
				continue
			}
			out = append(out, FieldDef{Name: n.Name, Type: typ, Wire: wire})
		}
	}
	return out
}

// embeddedName returns the implicit field name of an embedded type.
func embeddedName(expr ast.Expr) *ast.Ident {
	switch t := expr.(type) {
	case *ast.Ident:
		return t
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	}
	return nil
}
