package profmarker

// Location is a display surface of the profiler front-end a marker type can
// appear in.
type Location int

const (
	LocationMarkerChart Location = iota
	LocationMarkerTable
	LocationTimelineOverview
	LocationTimelineMemory
	LocationTimelineIPC
	LocationTimelineFileIO
	LocationStackChart
)

// Format is the rendering rule the front-end applies to a marker data value.
type Format int

const (
	FormatUrl Format = iota
	FormatFilePath
	FormatSanitizedString
	FormatString
	FormatUniqueString
	FormatDuration
	FormatTime
	FormatSeconds
	FormatMilliseconds
	FormatMicroseconds
	FormatNanoseconds
	FormatBytes
	FormatPercentage
	FormatInteger
	FormatDecimal
)

// Searchability tells whether a data value participates in front-end search.
type Searchability int

const (
	NotSearchable Searchability = iota // Default.
	Searchable
)

// vocabEntry pairs the annotation identifier with the front-end wire name.
type vocabEntry struct {
	ident string
	wire  string
}

// Order matters: index == enum value.
var locationNames = [...]vocabEntry{
	{"MarkerChart", "marker-chart"},
	{"MarkerTable", "marker-table"},
	{"TimelineOverview", "timeline-overview"},
	{"TimelineMemory", "timeline-memory"},
	{"TimelineIPC", "timeline-ipc"},
	{"TimelineFileIO", "timeline-fileio"},
	{"StackChart", "stack-chart"},
}

var formatNames = [...]vocabEntry{
	{"Url", "url"},
	{"FilePath", "file-path"},
	{"SanitizedString", "sanitized-string"},
	{"String", "string"},
	{"UniqueString", "unique-string"},
	{"Duration", "duration"},
	{"Time", "time"},
	{"Seconds", "seconds"},
	{"Milliseconds", "milliseconds"},
	{"Microseconds", "microseconds"},
	{"Nanoseconds", "nanoseconds"},
	{"Bytes", "bytes"},
	{"Percentage", "percentage"},
	{"Integer", "integer"},
	{"Decimal", "decimal"},
}

// IsValidLocation reports whether name is one of the accepted location
// identifiers. The match is exact and case-sensitive.
func IsValidLocation(name string) bool {
	_, ok := ParseLocation(name)
	return ok
}

// IsValidFormat reports whether name is one of the accepted format
// identifiers. The match is exact and case-sensitive.
func IsValidFormat(name string) bool {
	_, ok := ParseFormat(name)
	return ok
}

// ParseLocation returns the Location named by the annotation identifier.
func ParseLocation(name string) (Location, bool) {
	for i, e := range locationNames {
		if e.ident == name {
			return Location(i), true
		}
	}
	return 0, false
}

// ParseFormat returns the Format named by the annotation identifier.
func ParseFormat(name string) (Format, bool) {
	for i, e := range formatNames {
		if e.ident == name {
			return Format(i), true
		}
	}
	return 0, false
}

// Locations returns every Location in declaration order.
func Locations() []Location {
	out := make([]Location, len(locationNames))
	for i := range out {
		out[i] = Location(i)
	}
	return out
}

// Formats returns every Format in declaration order.
func Formats() []Format {
	out := make([]Format, len(formatNames))
	for i := range out {
		out[i] = Format(i)
	}
	return out
}

func (l Location) valid() bool { return l >= 0 && int(l) < len(locationNames) }
func (f Format) valid() bool   { return f >= 0 && int(f) < len(formatNames) }

// String returns the annotation identifier, e.g. "TimelineIPC".
func (l Location) String() string {
	if !l.valid() {
		return "Location(invalid)"
	}
	return locationNames[l].ident
}

// FrontendName returns the name the front-end expects in a schema document.
func (l Location) FrontendName() string {
	if !l.valid() {
		return ""
	}
	return locationNames[l].wire
}

func (l Location) MarshalText() ([]byte, error) { return []byte(l.FrontendName()), nil }

// String returns the annotation identifier, e.g. "Milliseconds".
func (f Format) String() string {
	if !f.valid() {
		return "Format(invalid)"
	}
	return formatNames[f].ident
}

// FrontendName returns the name the front-end expects in a schema document.
func (f Format) FrontendName() string {
	if !f.valid() {
		return ""
	}
	return formatNames[f].wire
}

func (f Format) MarshalText() ([]byte, error) { return []byte(f.FrontendName()), nil }

func (s Searchability) String() string {
	if s == Searchable {
		return "Searchable"
	}
	return "NotSearchable"
}
