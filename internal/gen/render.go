// Package gen renders the marker methods of extracted records.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"path"
	"strconv"
	"text/template"

	"github.com/reoring/profmarker/internal/ir"
)

// DefaultRuntimeImport is the import path of the package generated code
// targets.
const DefaultRuntimeImport = "github.com/reoring/profmarker"

// File describes one generated Go file.
type File struct {
	Package       string
	RuntimeImport string // defaults to DefaultRuntimeImport
	Generator     string // named in the "Code generated" header
	Records       []ir.Record
}

type fileData struct {
	Generator     string
	Package       string
	Alias         string
	RuntimeImport string
	Plans         []Plan
}

var fileTmpl = template.Must(template.New("file").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(`// Code generated by {{.Generator}}. DO NOT EDIT.

package {{.Package}}
{{if .Plans}}
import {{.Alias}} {{quote .RuntimeImport}}
{{end}}{{range .Plans}}
// MarkerTypeName returns the marker type name of {{.Name}}.
func ({{.Name}}) MarkerTypeName() string {
	return {{quote .Name}}
}

// MarkerTypeDisplay returns the display schema of {{.Name}} markers.
func ({{.Name}}) MarkerTypeDisplay() *{{$.Alias}}.MarkerSchema {
	schema := {{$.Alias}}.NewMarkerSchema({{$.Alias}}.LocationMarkerChart)
{{- range .Display}}
	{{.}}
{{- end}}
	return schema
}

// StreamJSONMarkerData streams the fields of m in schema row order.
func (m {{.Name}}) StreamJSONMarkerData(w *{{$.Alias}}.JSONWriter) {
{{- range .Writes}}
	{{.}}
{{- end}}
}
{{end}}`))

// Render generates the marker methods of every record in f as gofmt-ed Go
// source. The output is a pure function of f.
func Render(f File) ([]byte, error) {
	if f.Package == "" {
		return nil, fmt.Errorf("gen: package name is required")
	}
	rt := f.RuntimeImport
	if rt == "" {
		rt = DefaultRuntimeImport
	}
	generator := f.Generator
	if generator == "" {
		generator = "markergen"
	}
	data := fileData{
		Generator:     generator,
		Package:       f.Package,
		Alias:         importAlias(rt),
		RuntimeImport: rt,
		Plans:         make([]Plan, 0, len(f.Records)),
	}
	for _, rec := range f.Records {
		data.Plans = append(data.Plans, NewPlan(rec, data.Alias))
	}
	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("gen: execute template: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gen: format generated source: %w\n%s", err, buf.Bytes())
	}
	return out, nil
}

// RenderPackage is Render for an extracted package.
func RenderPackage(p ir.Package, runtimeImport, generator string) ([]byte, error) {
	return Render(File{Package: p.Name, RuntimeImport: runtimeImport, Generator: generator, Records: p.Records})
}

// importAlias picks the identifier the runtime package is imported as.
func importAlias(importPath string) string {
	base := path.Base(importPath)
	if token.IsIdentifier(base) && !token.IsKeyword(base) {
		return base
	}
	return "profmarker"
}
