package font

import (
	"strings"

	"github.com/dirtybirdnj/gellyscape/internal/filters"
)

// Filter is one decoding stage of a stream, such as FlateDecode.
type Filter = filters.Filter

// Stream is an undecoded PDF stream together with its filter pipeline.
type Stream struct {
	Data    []byte
	Filters []Filter
}

// Decode runs the stream data through its filters.
func (s *Stream) Decode() ([]byte, error) {
	return filters.Decode(s.Data, s.Filters)
}

// Resource is what the text decoder needs to know about one font resource.
type Resource struct {
	Subtype   string // Type0, Type1, TrueType, Type3, ...
	BaseFont  string
	ToUnicode *Stream // nil when the font has no ToUnicode entry
}

// Lookup resolves font resource names for one resource dictionary.
//
// Names are given without the leading slash. Scope identifies the resource
// dictionary so that equal names from unrelated dictionaries do not share a
// cache entry.
type Lookup interface {
	Font(name string) (Resource, bool)
	Scope() string
}

// MapLookup is an in-memory Lookup.
type MapLookup struct {
	ID    string
	Fonts map[string]Resource
}

// Font returns the resource registered under name.
func (m MapLookup) Font(name string) (Resource, bool) {
	r, ok := m.Fonts[strings.TrimPrefix(name, "/")]
	return r, ok
}

// Scope returns m.ID.
func (m MapLookup) Scope() string {
	return m.ID
}
