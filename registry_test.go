package profmarker_test

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/profmarker"
)

type countingMarker struct {
	name    string
	special bool
	builds  *atomic.Int32
}

func (c countingMarker) MarkerTypeName() string { return c.name }

func (c countingMarker) MarkerTypeDisplay() *profmarker.MarkerSchema {
	c.builds.Add(1)
	if c.special {
		return profmarker.NewMarkerSchemaWithSpecialFrontendLocation()
	}
	return profmarker.NewMarkerSchema(profmarker.LocationMarkerChart).
		SetChartLabel("Name: {marker.name}").
		AddKeyLabelFormat("value", "value", profmarker.FormatInteger)
}

func (c countingMarker) StreamJSONMarkerData(w *profmarker.JSONWriter) {
	w.IntProperty("value", 7)
}

func TestRegistry_BuildsSchemaOncePerType(t *testing.T) {
	var builds atomic.Int32
	m := countingMarker{name: "Counting", builds: &builds}
	r := profmarker.NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Schema(m)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	assert.Same(t, r.Schema(m), r.Schema(m))
}

func TestRegistry_WriteSchemas(t *testing.T) {
	var builds atomic.Int32
	r := profmarker.NewRegistry()
	r.Register(countingMarker{name: "B", builds: &builds})
	r.Register(countingMarker{name: "Special", special: true, builds: &builds})
	r.Register(countingMarker{name: "A", builds: &builds})

	docs := r.Documents()
	require.Len(t, docs, 2)
	assert.Equal(t, "B", docs[0].Name)
	assert.Equal(t, "A", docs[1].Name)

	var buf bytes.Buffer
	require.NoError(t, r.WriteSchemas(&buf))
	assert.JSONEq(t, `[
		{"name":"B","display":["marker-chart"],"chartLabel":"Name: {marker.name}","data":[{"key":"value","label":"value","format":"integer"}]},
		{"name":"A","display":["marker-chart"],"chartLabel":"Name: {marker.name}","data":[{"key":"value","label":"value","format":"integer"}]}
	]`, buf.String())
}

func TestStreamMarker(t *testing.T) {
	var builds atomic.Int32
	var buf bytes.Buffer
	w := profmarker.NewJSONWriter(&buf, nil)
	require.NoError(t, profmarker.StreamMarker(w, countingMarker{name: "Counting", builds: &builds}))
	assert.Equal(t, `{"type":"Counting","value":7}`, buf.String())
	assert.Equal(t, int32(0), builds.Load())
}
