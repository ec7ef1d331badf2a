// Package filters decodes PDF stream filters.
//
// It is used for ToUnicode CMap streams, which the CMap decoder inflates
// itself rather than relying on the container reader:
//
//	data, err := filters.Decode(raw, []filters.Filter{
//	    {Name: filters.Flate, Params: filters.Params{"Predictor": 12, "Columns": 4}},
//	})
//
// Supported: FlateDecode and LZWDecode (with TIFF and PNG predictors),
// ASCIIHexDecode, ASCII85Decode and RunLengthDecode. Other filter names
// return [ErrUnsupported].
package filters
