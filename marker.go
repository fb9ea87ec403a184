package profmarker

// Marker is implemented by marker record types. markergen generates all three
// methods from a struct annotated with //marker: directives.
type Marker interface {
	// MarkerTypeName returns the name of the marker type.
	MarkerTypeName() string
	// MarkerTypeDisplay returns the display schema of the marker type. It does
	// not depend on the receiver's value.
	MarkerTypeDisplay() *MarkerSchema
	// StreamJSONMarkerData writes the payload as JSON object properties, one per
	// schema row key, in schema row order.
	StreamJSONMarkerData(w *JSONWriter)
}

// StreamMarker writes m as a complete object: {"type":<name>, <data>...}.
func StreamMarker(w *JSONWriter, m Marker) error {
	w.StartObject()
	w.StringProperty("type", m.MarkerTypeName())
	m.StreamJSONMarkerData(w)
	w.EndObject()
	return w.Err()
}
