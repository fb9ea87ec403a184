package profmarker

import (
	"fmt"
	"io"
	"sync"

	json "github.com/goccy/go-json"
)

// Registry hands out marker schemas. Each type's MarkerTypeDisplay is called
// at most once; the resulting schema is shared by every later lookup.
type Registry struct {
	mu      sync.Mutex
	order   []string
	schemas map[string]*MarkerSchema
}

func NewRegistry() *Registry {
	return &Registry{schemas: map[string]*MarkerSchema{}}
}

// Register records m's type, building its schema on first sight.
func (r *Registry) Register(m Marker) {
	r.Schema(m)
}

// Schema returns the schema of m's type.
func (r *Registry) Schema(m Marker) *MarkerSchema {
	name := m.MarkerTypeName()
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.schemas[name]; ok {
		return s
	}
	s := m.MarkerTypeDisplay()
	r.schemas[name] = s
	r.order = append(r.order, name)
	return s
}

// Documents returns the front-end documents of all registered types in
// registration order. Types with special front-end handling are left out.
func (r *Registry) Documents() []Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := make([]Document, 0, len(r.order))
	for _, name := range r.order {
		s := r.schemas[name]
		if s.IsSpecialFrontendLocation() {
			continue
		}
		docs = append(docs, s.Document(name))
	}
	return docs
}

// WriteSchemas streams the JSON array of Documents to w.
func (r *Registry) WriteSchemas(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(r.Documents()); err != nil {
		return fmt.Errorf("encode marker schemas: %w", err)
	}
	return nil
}
