package profmarker

// MarkerSchema collects everything the front-end needs to display one type of
// marker. It is populated once per marker type, usually by a generated
// MarkerTypeDisplay method, and is treated as immutable once handed out.
//
// Label templates may reference streamed data keys in braces, e.g.
// "Reading {marker.data.path}".
type MarkerSchema struct {
	locations       []Location
	specialFrontend bool
	chartLabel      string
	tooltipLabel    string
	tableLabel      string
	rows            []Row
}

// Row is one line of a marker's description. Static rows carry a fixed
// Label/Value pair; the other rows describe a data key streamed by
// StreamJSONMarkerData.
type Row struct {
	Key        string
	Label      string // Empty means the front-end falls back to Key.
	Format     Format
	Searchable Searchability
	Static     bool
	Value      string // Static rows only.
}

// NewMarkerSchema initializes a schema displayed in the given locations.
func NewMarkerSchema(locations ...Location) *MarkerSchema {
	locs := make([]Location, len(locations))
	copy(locs, locations)
	return &MarkerSchema{locations: locs}
}

// NewMarkerSchemaWithSpecialFrontendLocation is for marker types the
// front-end handles on its own. Nothing else should be set on it.
func NewMarkerSchemaWithSpecialFrontendLocation() *MarkerSchema {
	return &MarkerSchema{specialFrontend: true}
}

// SetChartLabel sets the label shown in the marker chart.
func (s *MarkerSchema) SetChartLabel(label string) *MarkerSchema {
	s.chartLabel = label
	return s
}

// SetTooltipLabel sets the label shown in the marker chart tooltip.
func (s *MarkerSchema) SetTooltipLabel(label string) *MarkerSchema {
	s.tooltipLabel = label
	return s
}

// SetTableLabel sets the label shown in the marker table.
func (s *MarkerSchema) SetTableLabel(label string) *MarkerSchema {
	s.tableLabel = label
	return s
}

// SetAllLabels sets the chart, tooltip and table labels to the same text.
func (s *MarkerSchema) SetAllLabels(label string) *MarkerSchema {
	s.chartLabel = label
	s.tooltipLabel = label
	s.tableLabel = label
	return s
}

// AddKeyFormat adds a row for data element key.
func (s *MarkerSchema) AddKeyFormat(key string, format Format) *MarkerSchema {
	return s.addRow(Row{Key: key, Format: format})
}

// AddKeyLabelFormat adds a row for data element key with a display label.
func (s *MarkerSchema) AddKeyLabelFormat(key, label string, format Format) *MarkerSchema {
	return s.addRow(Row{Key: key, Label: label, Format: format})
}

// AddKeyFormatSearchable adds a row for data element key with explicit
// searchability.
func (s *MarkerSchema) AddKeyFormatSearchable(key string, format Format, searchable Searchability) *MarkerSchema {
	return s.addRow(Row{Key: key, Format: format, Searchable: searchable})
}

// AddKeyLabelFormatSearchable adds a fully specified row for data element key.
func (s *MarkerSchema) AddKeyLabelFormatSearchable(key, label string, format Format, searchable Searchability) *MarkerSchema {
	return s.addRow(Row{Key: key, Label: label, Format: format, Searchable: searchable})
}

// AddStaticLabelValue adds a row that always displays value next to label.
func (s *MarkerSchema) AddStaticLabelValue(label, value string) *MarkerSchema {
	return s.addRow(Row{Label: label, Static: true, Value: value})
}

func (s *MarkerSchema) addRow(r Row) *MarkerSchema {
	s.rows = append(s.rows, r)
	return s
}

// Locations returns a copy of the display locations.
func (s *MarkerSchema) Locations() []Location {
	out := make([]Location, len(s.locations))
	copy(out, s.locations)
	return out
}

// Rows returns a copy of the rows in insertion order.
func (s *MarkerSchema) Rows() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

func (s *MarkerSchema) ChartLabel() string              { return s.chartLabel }
func (s *MarkerSchema) TooltipLabel() string            { return s.tooltipLabel }
func (s *MarkerSchema) TableLabel() string              { return s.tableLabel }
func (s *MarkerSchema) IsSpecialFrontendLocation() bool { return s.specialFrontend }

// Document is the JSON shape of a marker schema as consumed by the front-end.
type Document struct {
	Name         string        `json:"name" yaml:"name"`
	Display      []string      `json:"display" yaml:"display"`
	ChartLabel   string        `json:"chartLabel,omitempty" yaml:"chartLabel,omitempty"`
	TooltipLabel string        `json:"tooltipLabel,omitempty" yaml:"tooltipLabel,omitempty"`
	TableLabel   string        `json:"tableLabel,omitempty" yaml:"tableLabel,omitempty"`
	Data         []DocumentRow `json:"data" yaml:"data"`
}

// DocumentRow is either a dynamic key row or a static label/value row.
type DocumentRow struct {
	Key        string `json:"key,omitempty" yaml:"key,omitempty"`
	Label      string `json:"label,omitempty" yaml:"label,omitempty"`
	Format     string `json:"format,omitempty" yaml:"format,omitempty"`
	Searchable bool   `json:"searchable,omitempty" yaml:"searchable,omitempty"`
	Value      string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Document projects the schema into its front-end representation under the
// given marker type name.
func (s *MarkerSchema) Document(name string) Document {
	doc := Document{
		Name:         name,
		Display:      make([]string, 0, len(s.locations)),
		ChartLabel:   s.chartLabel,
		TooltipLabel: s.tooltipLabel,
		TableLabel:   s.tableLabel,
		Data:         make([]DocumentRow, 0, len(s.rows)),
	}
	for _, l := range s.locations {
		doc.Display = append(doc.Display, l.FrontendName())
	}
	for _, r := range s.rows {
		if r.Static {
			doc.Data = append(doc.Data, DocumentRow{Label: r.Label, Value: r.Value})
			continue
		}
		doc.Data = append(doc.Data, DocumentRow{
			Key:        r.Key,
			Label:      r.Label,
			Format:     r.Format.FrontendName(),
			Searchable: r.Searchable == Searchable,
		})
	}
	return doc
}
