package interpreter

import (
	"strings"

	"github.com/dirtybirdnj/gellyscape/font"
	"github.com/dirtybirdnj/gellyscape/model"
)

// Form is a Form XObject: a reusable content stream with its own
// resources.
type Form struct {
	Content []byte
	Matrix  model.Matrix

	// Fonts and XObjects are the form's own resources. When nil, the
	// resources of the invoking stream are used.
	Fonts    font.Lookup
	XObjects XObjectLookup
}

// XObjectLookup resolves XObject resource names. Form reports false for
// names that are missing or are not forms.
type XObjectLookup interface {
	Form(name string) (Form, bool)
}

// MapXObjects is an in-memory XObjectLookup keyed by resource name without
// the leading slash.
type MapXObjects map[string]Form

// Form implements XObjectLookup.
func (m MapXObjects) Form(name string) (Form, bool) {
	f, ok := m[strings.TrimPrefix(name, "/")]
	return f, ok
}
