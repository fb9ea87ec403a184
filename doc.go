// Package profmarker is the runtime half of a build-time marker schema
// generator for the Firefox profiler.
//
// A marker type is a Go struct annotated with //marker: directives:
//
//	//marker:display MarkerChart, MarkerTable, TimelineIPC
//	//marker:tooltipLabel IPC {marker.data.messageType}
//	type IPCMessage struct {
//		//marker:format UniqueString
//		//marker:searchable
//		MessageType string `json:"messageType"`
//		//marker:format Bytes
//		Size uint64 `json:"size"`
//	}
//
// cmd/markergen reads those directives and generates three methods per type:
// MarkerTypeName, MarkerTypeDisplay (a *MarkerSchema) and StreamJSONMarkerData
// (writes the payload to a *JSONWriter). Together they implement Marker.
//
// Type directives: display, chartLabel, tooltipLabel, tableLabel, allLabels,
// static. Field directives: format, searchable, label, skip. Unknown
// directives are ignored. Annotation errors are reported as Diagnostics pinned
// to the offending argument.
//
// Typical usage at runtime:
//
//	reg := profmarker.NewRegistry()
//	reg.Register(IPCMessage{})
//	_ = reg.WriteSchemas(schemaOut)
//
//	w := profmarker.NewJSONWriter(dataOut, strings)
//	_ = profmarker.StreamMarker(w, IPCMessage{MessageType: "PContent::Msg"})
package profmarker
