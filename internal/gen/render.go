package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"sort"
	"strconv"
	"text/template"

	"github.com/reoring/partial"
)

// Options controls what Render emits besides the descriptor tables.
type Options struct {
	// Methods adds UnmarshalJSON/MarshalJSON methods delegating to jsoncodec.
	Methods bool
}

var fileTmpl = template.Must(template.New("file").Funcs(template.FuncMap{
	"schemaVar": SchemaVar,
	"quote":     strconv.Quote,
}).Parse(`// Code generated by partialgen. DO NOT EDIT.

package {{.Pkg.Name}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)
{{range $t := .Pkg.Types}}
// {{schemaVar $t.Name}} is the descriptor table of {{$t.Name}}.
{{- if $t.Fields}}
var {{schemaVar $t.Name}} = partial.MustNewSchema[{{$t.Name}}](
{{- range $t.Fields}}
	partial.Describe({{quote .Name}}, func(m *{{$t.Name}}) *{{.Type}} { return &m.{{.Name}} }{{if .Wire}}, partial.WireName({{quote .Wire}}){{end}}),
{{- end}}
)
{{- else}}
var {{schemaVar $t.Name}} = partial.MustNewSchema[{{$t.Name}}]()
{{- end}}
{{if $.Opts.Methods}}
// UnmarshalJSON decodes data and records which fields it defined.
func (m *{{$t.Name}}) UnmarshalJSON(data []byte) error {
	return jsoncodec.UnmarshalInto({{schemaVar $t.Name}}, m, data)
}

// MarshalJSON encodes the defined fields of m.
func (m *{{$t.Name}}) MarshalJSON() ([]byte, error) {
	return jsoncodec.Marshal({{schemaVar $t.Name}}, m)
}
{{end}}
{{- end}}`))

// SchemaVar names the package-level variable holding the table of typeName.
func SchemaVar(typeName string) string { return partial.CamelCase(typeName) + "Schema" }

// Render produces the gofmt-ed source declaring one descriptor table per type
// of pkg.
func Render(pkg *Package, opts Options) ([]byte, error) {
	if pkg == nil || pkg.Name == "" {
		return nil, fmt.Errorf("render: package name required")
	}
	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, struct {
		Pkg     *Package
		Opts    Options
		Imports []string
	}{pkg, opts, importLines(pkg, opts)}); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("render: format: %w\n%s", err, buf.Bytes())
	}
	return out, nil
}

func importLines(pkg *Package, opts Options) []string {
	specs := []ImportSpec{{Path: PartialImportPath}}
	if opts.Methods {
		specs = append(specs, ImportSpec{Path: PartialImportPath + "/codec/jsoncodec"})
	}
	for _, spec := range pkg.Imports {
		if spec.Path != PartialImportPath && !slices.Contains(specs, spec) {
			specs = append(specs, spec)
		}
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Path < specs[j].Path })
	lines := make([]string, len(specs))
	for i, spec := range specs {
		lines[i] = strconv.Quote(spec.Path)
		if spec.Name != "" {
			lines[i] = spec.Name + " " + lines[i]
		}
	}
	return lines
}
