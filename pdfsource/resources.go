package pdfsource

import (
	"strings"

	"github.com/dirtybirdnj/gellyscape/font"
	"github.com/dirtybirdnj/gellyscape/interpreter"
	"github.com/dirtybirdnj/gellyscape/internal/filters"
	"github.com/dirtybirdnj/gellyscape/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// resources is one resource dictionary and its identity.
type resources struct {
	doc   *Document
	dict  types.Dict
	scope string
	page  int
}

func (r *resources) subdict(key string) types.Dict {
	if r == nil || r.dict == nil {
		return nil
	}
	obj, ok := r.dict.Find(key)
	if !ok {
		return nil
	}
	d, err := r.doc.ctx.DereferenceDict(obj)
	if err != nil {
		r.doc.warn(r.page, "resources %s: %s: %v", r.scope, key, err)
		return nil
	}
	return d
}

func (r *resources) fonts() font.Lookup {
	return fontLookup{res: r, dict: r.subdict("Font")}
}

func (r *resources) xobjects() interpreter.XObjectLookup {
	return xobjectLookup{res: r, dict: r.subdict("XObject")}
}

// fontLookup implements font.Lookup over a /Font resource dictionary.
type fontLookup struct {
	res  *resources
	dict types.Dict
}

func (f fontLookup) Scope() string {
	return f.res.scope
}

func (f fontLookup) Font(name string) (font.Resource, bool) {
	name = strings.TrimPrefix(name, "/")
	obj, ok := f.dict.Find(name)
	if !ok {
		return font.Resource{}, false
	}
	ctx := f.res.doc.ctx
	fd, err := ctx.DereferenceDict(obj)
	if err != nil || fd == nil {
		f.res.doc.warn(f.res.page, "font %s: not a dictionary", name)
		return font.Resource{}, false
	}

	res := font.Resource{}
	if s := fd.NameEntry("Subtype"); s != nil {
		res.Subtype = *s
	}
	if s := fd.NameEntry("BaseFont"); s != nil {
		res.BaseFont = *s
	}
	if tu, ok := fd.Find("ToUnicode"); ok {
		if _, isName := tu.(types.Name); !isName {
			res.ToUnicode = f.stream(name, tu)
		}
	}
	return res, true
}

// stream returns a ToUnicode stream undecoded so the CMap loader runs its
// own filters. Streams whose raw bytes are unavailable are handed over
// decoded.
func (f fontLookup) stream(name string, obj types.Object) *font.Stream {
	sd, _, err := f.res.doc.ctx.DereferenceStreamDict(obj)
	if err != nil || sd == nil {
		f.res.doc.warn(f.res.page, "font %s: ToUnicode is not a stream", name)
		return nil
	}
	if len(sd.Raw) > 0 {
		return &font.Stream{Data: sd.Raw, Filters: pipeline(sd.FilterPipeline)}
	}
	if len(sd.Content) == 0 {
		if err := sd.Decode(); err != nil {
			f.res.doc.warn(f.res.page, "font %s: ToUnicode: %v", name, err)
			return nil
		}
	}
	return &font.Stream{Data: sd.Content}
}

func pipeline(fs []types.PDFFilter) []font.Filter {
	if len(fs) == 0 {
		return nil
	}
	out := make([]font.Filter, len(fs))
	for i, f := range fs {
		out[i] = font.Filter{Name: f.Name, Params: params(f.DecodeParms)}
	}
	return out
}

func params(d types.Dict) filters.Params {
	if len(d) == 0 {
		return nil
	}
	p := make(filters.Params, len(d))
	for k, v := range d {
		switch v := v.(type) {
		case types.Integer:
			p[k] = v.Value()
		case types.Float:
			p[k] = v.Value()
		case types.Boolean:
			p[k] = v.Value()
		case types.Name:
			p[k] = v.Value()
		}
	}
	return p
}

// xobjectLookup implements interpreter.XObjectLookup over an /XObject
// resource dictionary.
type xobjectLookup struct {
	res  *resources
	dict types.Dict
}

func (x xobjectLookup) Form(name string) (interpreter.Form, bool) {
	name = strings.TrimPrefix(name, "/")
	obj, ok := x.dict.Find(name)
	if !ok {
		return interpreter.Form{}, false
	}
	doc := x.res.doc
	sd, _, err := doc.ctx.DereferenceStreamDict(obj)
	if err != nil || sd == nil {
		doc.warn(x.res.page, "xobject %s: not a stream", name)
		return interpreter.Form{}, false
	}
	if s := sd.Dict.NameEntry("Subtype"); s == nil || *s != "Form" {
		return interpreter.Form{}, false
	}
	if err := sd.Decode(); err != nil {
		doc.warn(x.res.page, "xobject %s: %v", name, err)
		return interpreter.Form{}, false
	}

	form := interpreter.Form{Content: sd.Content, Matrix: model.Identity()}
	if m, ok := x.matrix(sd.Dict); ok {
		form.Matrix = m
	}
	if resObj, ok := sd.Dict.Find("Resources"); ok {
		rd, err := doc.ctx.DereferenceDict(resObj)
		if err == nil && rd != nil {
			scope := x.res.scope + " " + name
			if ref, ok := obj.(types.IndirectRef); ok {
				scope = refScope(ref)
			}
			child := &resources{doc: doc, dict: rd, scope: scope, page: x.res.page}
			form.Fonts = child.fonts()
			form.XObjects = child.xobjects()
		}
	}
	return form, true
}

func (x xobjectLookup) matrix(d types.Dict) (model.Matrix, bool) {
	obj, ok := d.Find("Matrix")
	if !ok {
		return model.Matrix{}, false
	}
	arr, err := x.res.doc.ctx.DereferenceArray(obj)
	if err != nil || len(arr) != 6 {
		return model.Matrix{}, false
	}
	var m model.Matrix
	for i, o := range arr {
		v, ok := number(o)
		if !ok {
			return model.Matrix{}, false
		}
		m[i] = v
	}
	return m, true
}

func number(o types.Object) (float64, bool) {
	switch v := o.(type) {
	case types.Integer:
		return float64(v.Value()), true
	case types.Float:
		return v.Value(), true
	}
	return 0, false
}
