// Package ir defines the record representation shared by the directive
// extractor and the code generator. This package is internal and not part of
// the public API.
package ir

import (
	"go/token"

	"github.com/reoring/profmarker"
)

// ValueKind identifies which JSONWriter operation streams a field.
type ValueKind int

const (
	KindString ValueKind = iota
	KindUniqueString
	KindBool
	KindInt
	KindUint // unsigned types that may exceed int64
	KindFloat
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindUniqueString:
		return "unique-string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	}
	return "unknown"
}

// Package is the set of marker records found in one Go package.
type Package struct {
	Name    string // Go package name
	Records []Record
}

// Record is a validated marker type definition.
type Record struct {
	Name string
	Pos  token.Position
	// Locations holds the validated //marker:display arguments in source
	// order. The generated schema is anchored to MarkerChart regardless.
	Locations    []profmarker.Location
	ChartLabel   string
	TooltipLabel string // optional
	TableLabel   string // optional
	Fields       []Field
	Statics      []Static
}

// Field is one data element of a record, in declaration order.
type Field struct {
	GoName     string // selector used in generated code
	Key        string // JSON key (json tag name or GoName)
	Label      string
	Format     profmarker.Format
	Searchable profmarker.Searchability
	Kind       ValueKind
	Pointer    bool   // *T fields stream null when nil
	TypeExpr   string // declared type as written in source
	Pos        token.Position
}

// Static is a fixed label/value row.
type Static struct {
	Label string
	Value string
}
