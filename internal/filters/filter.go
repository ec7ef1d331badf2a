package filters

import (
	"errors"
	"fmt"
	"strings"
)

// Standard filter names.
const (
	Flate     = "FlateDecode"
	LZW       = "LZWDecode"
	ASCIIHex  = "ASCIIHexDecode"
	ASCII85   = "ASCII85Decode"
	RunLength = "RunLengthDecode"
)

// abbreviations are the short names allowed in inline image dictionaries.
var abbreviations = map[string]string{
	"Fl":  Flate,
	"AHx": ASCIIHex,
	"A85": ASCII85,
	"RL":  RunLength,
}

// ErrUnsupported is returned for filters this package cannot decode.
var ErrUnsupported = errors.New("unsupported filter")

// Params represents decode parameters from PDF stream dictionaries.
// Common parameters include Predictor, Columns, Colors, and BitsPerComponent.
type Params map[string]any

// Int returns the integer parameter key, or def if it is missing or not
// numeric.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case float64:
		return int(v)
	case bool:
		if v {
			return 1
		}
		return 0
	}
	return def
}

// Filter is one stage of a stream's filter pipeline.
type Filter struct {
	Name   string
	Params Params
}

// Decode runs data through each filter in order.
func Decode(data []byte, pipeline []Filter) ([]byte, error) {
	for i, f := range pipeline {
		out, err := decodeOne(data, f)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s): %w", i, f.Name, err)
		}
		data = out
	}
	return data, nil
}

func canonicalName(name string) string {
	name = strings.TrimPrefix(name, "/")
	if full, ok := abbreviations[name]; ok {
		return full
	}
	return name
}

func decodeOne(data []byte, f Filter) ([]byte, error) {
	switch canonicalName(f.Name) {
	case Flate:
		return FlateDecode(data, f.Params)
	case LZW:
		return LZWDecode(data, f.Params)
	case ASCIIHex:
		return ASCIIHexDecode(data)
	case ASCII85:
		return ASCII85Decode(data)
	case RunLength:
		return RunLengthDecode(data)
	}
	return nil, ErrUnsupported
}
