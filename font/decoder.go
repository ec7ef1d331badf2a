package font

import (
	"strings"

	"github.com/dirtybirdnj/gellyscape/diag"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Decoder turns string operands of text-showing operators into text.
type Decoder struct {
	fonts Lookup
	cache *Cache
	sink  diag.Sink
}

// NewDecoder creates a decoder. fonts may be nil, in which case all text is
// decoded from raw bytes. A nil cache gets a private one.
func NewDecoder(fonts Lookup, cache *Cache, sink diag.Sink) *Decoder {
	if cache == nil {
		cache = NewCache()
	}
	return &Decoder{fonts: fonts, cache: cache, sink: diag.OrDiscard(sink)}
}

// Decode decodes a string operand shown with the named font. The font
// name may carry its leading slash.
func (d *Decoder) Decode(fontName, operand string) string {
	return d.DecodeBytes(fontName, DecodeOperand(operand))
}

// DecodeBytes decodes raw character codes shown with the named font using
// its ToUnicode CMap when one is available, and Latin-1 otherwise. The
// result is in Unicode normalization form C.
func (d *Decoder) DecodeBytes(fontName string, raw []byte) string {
	var text string
	if cm := d.cmapFor(fontName); cm != nil {
		text = cm.Decode(raw)
	} else {
		text = latin1(raw)
	}
	return norm.NFC.String(text)
}

func (d *Decoder) cmapFor(fontName string) *CMap {
	if d.fonts == nil || fontName == "" {
		return nil
	}
	name := strings.TrimPrefix(fontName, "/")
	res, ok := d.fonts.Font(name)
	if !ok {
		return nil
	}
	return d.cache.Load(d.fonts.Scope(), name, res, d.sink)
}

func latin1(raw []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
