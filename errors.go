package profmarker

import (
	"errors"
	"fmt"
	"go/token"
	"sort"
	"strings"
)

// Diagnostic codes (exported consts for tools and tests; the message is what
// users read).
const (
	CodeUnsupportedLocation = "unsupported_location"
	CodeExpectedLocation    = "expected_location"
	CodeUnsupportedFormat   = "unsupported_format"
	CodeExpectedFormat      = "expected_format"
	CodeTooManyFormats      = "too_many_formats"
	CodeUnexpectedArgument  = "unexpected_argument"
	CodeExpectedStatic      = "expected_static"
	CodeUnsupportedType     = "unsupported_type"
	CodeEmbeddedField       = "embedded_field"
	CodeUnknownType         = "unknown_type"
	CodeDuplicateKey        = "duplicate_key"
)

// Diagnostic is a single build-time error pinned to a source position.
type Diagnostic struct {
	Pos     token.Position
	Code    string
	Message string
	Hint    string // Optional: offending token, expected values, etc.
}

func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	if d.Hint != "" {
		fmt.Fprintf(&b, " (%s)", d.Hint)
	}
	return b.String()
}

// Diagnostics is a collection of derivation errors that implements error.
type Diagnostics []Diagnostic

// Error summarizes the first few diagnostics.
func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(ds)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ds[i].String())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Sort orders diagnostics by file, line and column.
func (ds Diagnostics) Sort() {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i].Pos, ds[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// AppendDiagnostics appends diagnostics to the destination, initializing the
// slice when needed.
func AppendDiagnostics(dst Diagnostics, more ...Diagnostic) Diagnostics {
	if dst == nil {
		dst = Diagnostics{}
	}
	return append(dst, more...)
}

// AsDiagnostics extracts Diagnostics from an error using errors.As internally.
func AsDiagnostics(err error) (Diagnostics, bool) {
	if err == nil {
		return nil, false
	}
	var ds Diagnostics
	if errors.As(err, &ds) {
		return ds, true
	}
	return nil, false
}
