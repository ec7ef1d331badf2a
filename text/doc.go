// Package text tracks text objects in a content stream and records every
// shown string as a positioned [Run].
//
//	tr := text.NewTracker(decoder)
//	tr.Begin()                        // BT
//	tr.SetFont("/F1", 12)             // Tf
//	tr.Move(100, 700)                 // Td
//	tr.Show("(Hi)", gs)               // Tj
//	tr.End()                          // ET
//	runs := tr.Runs()                 // "Hi" at (100, 700)
//
// Run positions come from the translation of the text matrix when the
// string is shown; glyph advances are not computed. Text-showing methods do
// nothing outside BT/ET.
//
// Each run also carries the dominant bidi [Direction] of its text.
package text
