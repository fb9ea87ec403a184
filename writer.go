package profmarker

import (
	"io"
	"math"
	"sync"

	json "github.com/goccy/go-json"
)

// JSONWriter streams marker data as JSON object properties. Properties are
// emitted in call order; the caller owns the surrounding object unless it uses
// StartObject/EndObject.
//
// A JSONWriter is not safe for concurrent use. Give each goroutine its own.
type JSONWriter struct {
	w       io.Writer
	strings *UniqueStrings
	// one entry per open object; true once the object has a member
	hasMember []bool
	buf       []byte
	err       error
}

// NewJSONWriter returns a writer appending to w. Unique strings are interned
// into strings; a nil table gets a private one.
func NewJSONWriter(w io.Writer, strings *UniqueStrings) *JSONWriter {
	if strings == nil {
		strings = NewUniqueStrings()
	}
	return &JSONWriter{w: w, strings: strings, hasMember: []bool{false}}
}

// UniqueStrings returns the table unique string properties are interned in.
func (w *JSONWriter) UniqueStrings() *UniqueStrings { return w.strings }

// Err returns the first error reported by the underlying sink.
func (w *JSONWriter) Err() error { return w.err }

// StartObject opens a JSON object at the current position.
func (w *JSONWriter) StartObject() {
	w.buf = w.separator(w.buf[:0])
	w.buf = append(w.buf, '{')
	w.hasMember[len(w.hasMember)-1] = true
	w.hasMember = append(w.hasMember, false)
	w.flush()
}

// EndObject closes the innermost object opened by StartObject.
func (w *JSONWriter) EndObject() {
	if len(w.hasMember) <= 1 {
		return
	}
	w.hasMember = w.hasMember[:len(w.hasMember)-1]
	w.buf = append(w.buf[:0], '}')
	w.flush()
}

// IntProperty writes "name":value.
func (w *JSONWriter) IntProperty(name string, value int64) {
	w.property(name, value)
}

// UintProperty writes "name":value for unsigned values beyond the int64 range.
func (w *JSONWriter) UintProperty(name string, value uint64) {
	w.property(name, value)
}

// FloatProperty writes "name":value. NaN and infinities become null.
func (w *JSONWriter) FloatProperty(name string, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		w.NullProperty(name)
		return
	}
	w.property(name, value)
}

// BoolProperty writes "name":true or "name":false.
func (w *JSONWriter) BoolProperty(name string, value bool) {
	w.property(name, value)
}

// StringProperty writes "name":"value".
func (w *JSONWriter) StringProperty(name, value string) {
	w.property(name, value)
}

// UniqueStringProperty interns value and writes "name":index.
func (w *JSONWriter) UniqueStringProperty(name, value string) {
	w.property(name, w.strings.Index(value))
}

// NullProperty writes "name":null.
func (w *JSONWriter) NullProperty(name string) {
	w.property(name, nil)
}

func (w *JSONWriter) property(name string, value any) {
	if w.err != nil {
		return
	}
	w.buf = w.separator(w.buf[:0])
	if w.buf, w.err = appendJSON(w.buf, name); w.err != nil {
		return
	}
	w.buf = append(w.buf, ':')
	if w.buf, w.err = appendJSON(w.buf, value); w.err != nil {
		return
	}
	w.hasMember[len(w.hasMember)-1] = true
	w.flush()
}

func (w *JSONWriter) separator(b []byte) []byte {
	if w.hasMember[len(w.hasMember)-1] {
		b = append(b, ',')
	}
	return b
}

func (w *JSONWriter) flush() {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(w.buf)
}

func appendJSON(dst []byte, v any) ([]byte, error) {
	b, err := json.MarshalNoEscape(v)
	if err != nil {
		return dst, err
	}
	return append(dst, b...), nil
}

// UniqueStrings is a string table shared by writers of one profile. Each
// distinct string gets a stable index in insertion order. It is safe for
// concurrent use.
type UniqueStrings struct {
	mu    sync.Mutex
	index map[string]int
	list  []string
}

func NewUniqueStrings() *UniqueStrings {
	return &UniqueStrings{index: map[string]int{}}
}

// Index returns the index of s, adding it on first use.
func (u *UniqueStrings) Index(s string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	if i, ok := u.index[s]; ok {
		return i
	}
	i := len(u.list)
	u.index[s] = i
	u.list = append(u.list, s)
	return i
}

// Strings returns a snapshot of the table.
func (u *UniqueStrings) Strings() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, len(u.list))
	copy(out, u.list)
	return out
}
