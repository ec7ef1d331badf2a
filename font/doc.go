// Package font decodes the string operands of text-showing operators.
//
// String operands arrive in their lexical form. [DecodeOperand] turns
// (literal) and <hex> strings into raw character codes, and a [Decoder]
// maps those codes to Unicode through the font's ToUnicode CMap:
//
//	fonts := font.MapLookup{ID: "page1", Fonts: map[string]font.Resource{
//	    "F1": {Subtype: "Type0", ToUnicode: &font.Stream{Data: raw, Filters: []font.Filter{{Name: "FlateDecode"}}}},
//	}}
//	dec := font.NewDecoder(fonts, font.NewCache(), sink)
//	text := dec.Decode("/F1", "<00410042>")
//
// # CMaps
//
// [ParseCMap] reads beginbfchar and beginbfrange sections using the content
// stream tokenizer. Destinations are UTF-16BE. Decoding tries a two-byte
// code at each position, then a one-byte code, and keeps bytes that map to
// nothing as Latin-1 characters.
//
// A [Cache] is shared by every interpreter working on one document. It is
// keyed by resource scope and font name, builds each CMap once, and
// remembers streams that could not be decoded so they are not retried.
// Fonts without a ToUnicode stream fall back to Latin-1 text.
package font
