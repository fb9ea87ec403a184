package profmarker_test

import (
	"bytes"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/profmarker"
)

func TestJSONWriter_Properties(t *testing.T) {
	var buf bytes.Buffer
	w := profmarker.NewJSONWriter(&buf, nil)
	w.StartObject()
	w.IntProperty("i", -42)
	w.FloatProperty("f", 1.5)
	w.BoolProperty("b", true)
	w.StringProperty("s", `a "quoted" <tag>`)
	w.UniqueStringProperty("u1", "first")
	w.UniqueStringProperty("u2", "second")
	w.UniqueStringProperty("u3", "first")
	w.NullProperty("n")
	w.EndObject()
	require.NoError(t, w.Err())

	assert.Equal(t, `{"i":-42,"f":1.5,"b":true,"s":"a \"quoted\" <tag>","u1":0,"u2":1,"u3":0,"n":null}`, buf.String())
	assert.Equal(t, []string{"first", "second"}, w.UniqueStrings().Strings())
}

func TestJSONWriter_UintPropertyKeepsFullRange(t *testing.T) {
	var buf bytes.Buffer
	w := profmarker.NewJSONWriter(&buf, nil)
	w.UintProperty("max", math.MaxUint64)
	w.UintProperty("zero", 0)
	require.NoError(t, w.Err())
	assert.Equal(t, `"max":18446744073709551615,"zero":0`, buf.String())
}

func TestJSONWriter_SplicesIntoCallerObject(t *testing.T) {
	var buf bytes.Buffer
	w := profmarker.NewJSONWriter(&buf, nil)
	w.IntProperty("a", 1)
	w.IntProperty("b", 2)
	assert.Equal(t, `"a":1,"b":2`, buf.String())
}

func TestJSONWriter_NestedObjects(t *testing.T) {
	var buf bytes.Buffer
	w := profmarker.NewJSONWriter(&buf, nil)
	w.StartObject()
	w.IntProperty("a", 1)
	w.EndObject()
	w.StartObject()
	w.EndObject()
	w.EndObject() // unbalanced close is ignored
	assert.Equal(t, `{"a":1},{}`, buf.String())
}

func TestJSONWriter_NonFiniteFloatsAreNull(t *testing.T) {
	var buf bytes.Buffer
	w := profmarker.NewJSONWriter(&buf, nil)
	w.FloatProperty("nan", math.NaN())
	w.FloatProperty("inf", math.Inf(-1))
	assert.Equal(t, `"nan":null,"inf":null`, buf.String())
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("sink closed")
}

func TestJSONWriter_ErrorIsSticky(t *testing.T) {
	sink := &failingWriter{}
	w := profmarker.NewJSONWriter(sink, nil)
	w.IntProperty("a", 1)
	w.IntProperty("b", 2)
	require.EqualError(t, w.Err(), "sink closed")
	assert.Equal(t, 1, sink.calls)
}

func TestUniqueStrings_Concurrent(t *testing.T) {
	table := profmarker.NewUniqueStrings()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			w := profmarker.NewJSONWriter(&buf, table)
			for _, s := range []string{"a", "b", "c", "a"} {
				w.UniqueStringProperty("k", s)
			}
		}()
	}
	wg.Wait()
	strs := table.Strings()
	assert.Len(t, strs, 3)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, strs)
	assert.Equal(t, table.Index(strs[2]), 2)
}
