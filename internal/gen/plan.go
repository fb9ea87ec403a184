package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/profmarker"
	"github.com/reoring/profmarker/internal/ir"
)

// schemaSink receives the builder calls of one record's display schema.
type schemaSink interface {
	SetChartLabel(label string)
	SetTooltipLabel(label string)
	SetTableLabel(label string)
	AddKeyLabelFormat(key, label string, format profmarker.Format)
	AddKeyLabelFormatSearchable(key, label string, format profmarker.Format, searchable profmarker.Searchability)
	AddStaticLabelValue(label, value string)
}

// derive is the single walk over a record. Every field yields exactly one
// schema row and one data write, both in declaration order, so the schema and
// the streamed payload cannot drift apart.
func derive(rec ir.Record, sink schemaSink, write func(ir.Field)) {
	sink.SetChartLabel(rec.ChartLabel)
	if rec.TooltipLabel != "" {
		sink.SetTooltipLabel(rec.TooltipLabel)
	}
	if rec.TableLabel != "" {
		sink.SetTableLabel(rec.TableLabel)
	}
	for _, f := range rec.Fields {
		if f.Searchable == profmarker.Searchable {
			sink.AddKeyLabelFormatSearchable(f.Key, f.Label, f.Format, profmarker.Searchable)
		} else {
			sink.AddKeyLabelFormat(f.Key, f.Label, f.Format)
		}
		if write != nil {
			write(f)
		}
	}
	for _, s := range rec.Statics {
		sink.AddStaticLabelValue(s.Label, s.Value)
	}
}

// Schema builds the runtime schema a generated MarkerTypeDisplay of rec
// returns.
func Schema(rec ir.Record) *profmarker.MarkerSchema {
	s := profmarker.NewMarkerSchema(profmarker.LocationMarkerChart)
	derive(rec, runtimeSink{s}, nil)
	return s
}

type runtimeSink struct{ s *profmarker.MarkerSchema }

func (r runtimeSink) SetChartLabel(label string)   { r.s.SetChartLabel(label) }
func (r runtimeSink) SetTooltipLabel(label string) { r.s.SetTooltipLabel(label) }
func (r runtimeSink) SetTableLabel(label string)   { r.s.SetTableLabel(label) }
func (r runtimeSink) AddKeyLabelFormat(key, label string, format profmarker.Format) {
	r.s.AddKeyLabelFormat(key, label, format)
}
func (r runtimeSink) AddKeyLabelFormatSearchable(key, label string, format profmarker.Format, searchable profmarker.Searchability) {
	r.s.AddKeyLabelFormatSearchable(key, label, format, searchable)
}
func (r runtimeSink) AddStaticLabelValue(label, value string) { r.s.AddStaticLabelValue(label, value) }

// Plan holds the generated statements of one record.
type Plan struct {
	Name    string
	Display []string // MarkerTypeDisplay body between construction and return
	Writes  []string // StreamJSONMarkerData body
}

// NewPlan derives the method bodies of rec. alias is the identifier the
// generated file imports the runtime package under.
func NewPlan(rec ir.Record, alias string) Plan {
	e := &codeSink{alias: alias}
	p := Plan{Name: rec.Name}
	derive(rec, e, func(f ir.Field) {
		p.Writes = append(p.Writes, writeStmt(f))
	})
	p.Display = e.stmts
	return p
}

type codeSink struct {
	alias string
	stmts []string
}

func (c *codeSink) call(method string, args ...string) {
	c.stmts = append(c.stmts, "schema."+method+"("+strings.Join(args, ", ")+")")
}

func (c *codeSink) format(f profmarker.Format) string {
	return c.alias + ".Format" + f.String()
}

func (c *codeSink) SetChartLabel(label string)   { c.call("SetChartLabel", strconv.Quote(label)) }
func (c *codeSink) SetTooltipLabel(label string) { c.call("SetTooltipLabel", strconv.Quote(label)) }
func (c *codeSink) SetTableLabel(label string)   { c.call("SetTableLabel", strconv.Quote(label)) }
func (c *codeSink) AddKeyLabelFormat(key, label string, format profmarker.Format) {
	c.call("AddKeyLabelFormat", strconv.Quote(key), strconv.Quote(label), c.format(format))
}
func (c *codeSink) AddKeyLabelFormatSearchable(key, label string, format profmarker.Format, searchable profmarker.Searchability) {
	c.call("AddKeyLabelFormatSearchable", strconv.Quote(key), strconv.Quote(label), c.format(format), c.alias+"."+searchable.String())
}
func (c *codeSink) AddStaticLabelValue(label, value string) {
	c.call("AddStaticLabelValue", strconv.Quote(label), strconv.Quote(value))
}

// writeStmt returns the JSONWriter call streaming f from receiver m.
func writeStmt(f ir.Field) string {
	key := strconv.Quote(f.Key)
	sel := "m." + f.GoName
	val, elem := sel, f.TypeExpr
	if f.Pointer {
		val = "*" + sel
		elem = strings.TrimPrefix(elem, "*")
	}
	var call string
	switch f.Kind {
	case ir.KindUniqueString:
		call = fmt.Sprintf("w.UniqueStringProperty(%s, %s)", key, convert(val, elem, "string"))
	case ir.KindBool:
		call = fmt.Sprintf("w.BoolProperty(%s, %s)", key, convert(val, elem, "bool"))
	case ir.KindInt:
		call = fmt.Sprintf("w.IntProperty(%s, %s)", key, convert(val, elem, "int64"))
	case ir.KindUint:
		call = fmt.Sprintf("w.UintProperty(%s, %s)", key, convert(val, elem, "uint64"))
	case ir.KindFloat:
		call = fmt.Sprintf("w.FloatProperty(%s, %s)", key, convert(val, elem, "float64"))
	default:
		call = fmt.Sprintf("w.StringProperty(%s, %s)", key, convert(val, elem, "string"))
	}
	if !f.Pointer {
		return call
	}
	return fmt.Sprintf("if %s != nil {\n%s\n} else {\nw.NullProperty(%s)\n}", sel, call, key)
}

func convert(val, declared, target string) string {
	if declared == target {
		return val
	}
	return target + "(" + val + ")"
}
