// Package extract reads //marker: directives from Go source into ir records.
package extract

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"reflect"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/reoring/profmarker"
	"github.com/reoring/profmarker/i18n"
	"github.com/reoring/profmarker/internal/ir"
)

// DefaultChartLabel is the chart label of every derived marker schema unless
// the type overrides it.
const DefaultChartLabel = "Name: {marker.name}"

// Options configures extraction.
type Options struct {
	// Types restricts extraction to the named types, in this order. When empty,
	// every struct carrying a //marker:display directive is extracted in
	// declaration order.
	Types      []string
	ChartLabel string
	Logger     zerolog.Logger
}

func (o Options) chartLabel() string {
	if o.ChartLabel == "" {
		return DefaultChartLabel
	}
	return o.ChartLabel
}

// Dir parses the non-test Go files in dir and extracts their marker records.
// Derivation failures are returned as profmarker.Diagnostics.
func Dir(dir string, opts Options) (ir.Package, error) {
	fset := token.NewFileSet()
	notTest := func(fi fs.FileInfo) bool { return !strings.HasSuffix(fi.Name(), "_test.go") }
	pkgs, err := parser.ParseDir(fset, dir, notTest, parser.ParseComments)
	if err != nil {
		return ir.Package{}, fmt.Errorf("parse %s: %w", dir, err)
	}
	if len(pkgs) == 0 {
		return ir.Package{}, fmt.Errorf("no Go package in %s", dir)
	}
	if len(pkgs) > 1 {
		return ir.Package{}, fmt.Errorf("multiple Go packages in %s", dir)
	}
	var files []*ast.File
	for _, pkg := range pkgs {
		names := make([]string, 0, len(pkg.Files))
		for name := range pkg.Files {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			files = append(files, pkg.Files[name])
		}
	}
	p, diags := Files(fset, files, opts)
	if len(diags) > 0 {
		return p, diags
	}
	return p, nil
}

// Files extracts marker records from the parsed files of one package. A type
// with any diagnostic yields no record; diagnostics of all types are returned
// together, sorted by position.
func Files(fset *token.FileSet, files []*ast.File, opts Options) (ir.Package, profmarker.Diagnostics) {
	var out ir.Package
	if len(files) > 0 {
		out.Name = files[0].Name.Name
	}
	decls, docs, order := collectTypes(files)

	names := dedupe(opts.Types)
	if len(names) == 0 {
		for _, name := range order {
			if hasDirective(docs[name], "display") {
				names = append(names, name)
			}
		}
	}

	var diags profmarker.Diagnostics
	for _, name := range names {
		ts, ok := decls[name]
		if !ok {
			diags = append(diags, profmarker.Diagnostic{
				Code:    profmarker.CodeUnknownType,
				Message: i18n.T(profmarker.CodeUnknownType, nil),
				Hint:    name,
			})
			continue
		}
		st, ok := ts.Type.(*ast.StructType)
		if !ok || ts.TypeParams != nil {
			diags = append(diags, profmarker.Diagnostic{
				Pos:     fset.Position(ts.Pos()),
				Code:    profmarker.CodeUnknownType,
				Message: i18n.T(profmarker.CodeUnknownType, nil),
				Hint:    name + " is not a non-generic struct type",
			})
			continue
		}
		x := &extractor{fset: fset, decls: decls, opts: opts, keys: map[string]string{}}
		rec := x.record(ts, st, docs[name])
		if len(x.diags) > 0 {
			diags = append(diags, x.diags...)
			continue
		}
		out.Records = append(out.Records, rec)
	}
	diags.Sort()
	return out, diags
}

// dedupe drops repeated names, keeping the first occurrence.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// collectTypes indexes the package's type declarations by name together with
// their doc comments, and returns the names in declaration order.
func collectTypes(files []*ast.File) (map[string]*ast.TypeSpec, map[string]*ast.CommentGroup, []string) {
	decls := map[string]*ast.TypeSpec{}
	docs := map[string]*ast.CommentGroup{}
	var order []string
	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Name == nil {
					continue
				}
				doc := ts.Doc
				if doc == nil && !gd.Lparen.IsValid() {
					doc = gd.Doc
				}
				decls[ts.Name.Name] = ts
				docs[ts.Name.Name] = doc
				order = append(order, ts.Name.Name)
			}
		}
	}
	return decls, docs, order
}

func hasDirective(cg *ast.CommentGroup, name string) bool {
	for _, d := range directives(cg) {
		if d.name == name {
			return true
		}
	}
	return false
}

type extractor struct {
	fset  *token.FileSet
	decls map[string]*ast.TypeSpec
	opts  Options
	diags profmarker.Diagnostics
	keys  map[string]string // row key -> Go field name
}

func (x *extractor) errorf(pos token.Pos, code string, data map[string]string, hint string) {
	x.diags = append(x.diags, profmarker.Diagnostic{
		Pos:     x.fset.Position(pos),
		Code:    code,
		Message: i18n.T(code, data),
		Hint:    hint,
	})
}

func (x *extractor) record(ts *ast.TypeSpec, st *ast.StructType, doc *ast.CommentGroup) ir.Record {
	rec := ir.Record{
		Name:       ts.Name.Name,
		Pos:        x.fset.Position(ts.Pos()),
		ChartLabel: x.opts.chartLabel(),
	}
	for _, d := range directives(doc) {
		switch d.name {
		case "display":
			for i, a := range d.args {
				if !d.isIdent(i) {
					x.errorf(a.pos, profmarker.CodeExpectedLocation, nil, a.text)
					continue
				}
				loc, ok := profmarker.ParseLocation(a.text)
				if !ok {
					x.errorf(a.pos, profmarker.CodeUnsupportedLocation, nil, a.text)
					continue
				}
				rec.Locations = append(rec.Locations, loc)
			}
		case "chartLabel":
			rec.ChartLabel = d.text()
		case "tooltipLabel":
			rec.TooltipLabel = d.text()
		case "tableLabel":
			rec.TableLabel = d.text()
		case "allLabels":
			rec.ChartLabel = d.text()
			rec.TooltipLabel = rec.ChartLabel
			rec.TableLabel = rec.ChartLabel
		case "static":
			label, value, ok := d.quotedPair()
			if !ok {
				x.errorf(d.restPos, profmarker.CodeExpectedStatic, nil, d.rest)
				continue
			}
			rec.Statics = append(rec.Statics, ir.Static{Label: label, Value: value})
		}
	}
	x.opts.Logger.Debug().
		Str("type", rec.Name).
		Stringer("locations", locationList(rec.Locations)).
		Msg("found marker locations")

	if st.Fields == nil {
		return rec
	}
	for _, field := range st.Fields.List {
		rec.Fields = append(rec.Fields, x.fields(field)...)
	}
	return rec
}

type locationList []profmarker.Location

func (l locationList) String() string {
	names := make([]string, len(l))
	for i, loc := range l {
		names[i] = loc.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// fields derives the rows of one struct field line. A line declaring several
// names shares its directives and type.
func (x *extractor) fields(field *ast.Field) []ir.Field {
	if len(field.Names) == 0 {
		x.errorf(field.Pos(), profmarker.CodeEmbeddedField, nil, types.ExprString(field.Type))
		return nil
	}
	ds := directives(field.Doc, field.Comment)
	tagKey, omit := jsonKey(field)
	skip := false

	proto := ir.Field{
		Format:   profmarker.FormatString,
		TypeExpr: types.ExprString(field.Type),
	}
	hasFormat := false
	var formatPos token.Pos
	label := ""
	for _, d := range ds {
		switch d.name {
		case "searchable":
			if len(d.args) > 0 {
				x.errorf(d.args[0].pos, profmarker.CodeUnexpectedArgument, map[string]string{"directive": "searchable"}, d.args[0].text)
				continue
			}
			proto.Searchable = profmarker.Searchable
		case "format":
			if hasFormat {
				x.errorf(d.pos, profmarker.CodeTooManyFormats, nil, "")
				continue
			}
			hasFormat = true
			if len(d.args) == 0 {
				x.errorf(d.pos, profmarker.CodeExpectedFormat, nil, "")
				continue
			}
			if len(d.args) > 1 {
				x.errorf(d.args[1].pos, profmarker.CodeTooManyFormats, nil, d.args[1].text)
				continue
			}
			if !d.isIdent(0) {
				x.errorf(d.args[0].pos, profmarker.CodeExpectedFormat, nil, d.args[0].text)
				continue
			}
			f, ok := profmarker.ParseFormat(d.args[0].text)
			if !ok {
				x.errorf(d.args[0].pos, profmarker.CodeUnsupportedFormat, nil, d.args[0].text)
				continue
			}
			proto.Format = f
			formatPos = d.args[0].pos
		case "label":
			label = d.text()
		case "skip":
			skip = true
		default:
			x.opts.Logger.Debug().Str("directive", d.name).Msg("ignoring unknown field directive")
		}
	}

	// Excluded fields still have their directives checked above.
	if skip || omit {
		return nil
	}

	kind, pointer, ok := resolveKind(field.Type, x.decls)
	if !ok {
		x.errorf(field.Type.Pos(), profmarker.CodeUnsupportedType, nil, proto.TypeExpr)
		return nil
	}
	if proto.Format == profmarker.FormatUniqueString {
		if kind != ir.KindString {
			x.errorf(formatPos, profmarker.CodeUnsupportedType, nil, "format UniqueString requires a string field")
			return nil
		}
		kind = ir.KindUniqueString
	}
	proto.Kind = kind
	proto.Pointer = pointer

	out := make([]ir.Field, 0, len(field.Names))
	for _, n := range field.Names {
		if n.Name == "_" {
			continue
		}
		f := proto
		f.GoName = n.Name
		f.Key = n.Name
		if tagKey != "" {
			f.Key = tagKey
		}
		if prev, dup := x.keys[f.Key]; dup {
			x.errorf(n.Pos(), profmarker.CodeDuplicateKey, map[string]string{"key": f.Key}, "first declared by "+prev)
			continue
		}
		x.keys[f.Key] = n.Name
		f.Label = f.Key
		if label != "" {
			f.Label = label
		}
		f.Pos = x.fset.Position(n.Pos())
		out = append(out, f)
	}
	return out
}

// jsonKey returns the json tag name of a field, and whether the field is
// excluded with `json:"-"`.
func jsonKey(field *ast.Field) (string, bool) {
	if field.Tag == nil {
		return "", false
	}
	tag := reflect.StructTag(strings.Trim(field.Tag.Value, "`"))
	j := tag.Get("json")
	if j == "" {
		return "", false
	}
	name, _, _ := strings.Cut(j, ",")
	if name == "-" {
		return "", true
	}
	return name, false
}
