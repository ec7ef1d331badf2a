package pdfsource

import (
	"bytes"
	"fmt"
)

// buildPDF writes a minimal PDF with one object per entry, numbered from
// 1, and object 1 as the catalog.
func buildPDF(objects []string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func stream(dict, data string) string {
	return fmt.Sprintf("<< %s /Length %d >>\nstream\n%s\nendstream", dict, len(data), data)
}

// samplePDF has two pages. Page 1 uses a font with a ToUnicode CMap and a
// form XObject with its own font resources. Page 2 is rotated and cropped.
func samplePDF() []byte {
	cmap := "/CIDInit /ProcSet findresource begin 12 dict begin begincmap\n" +
		"1 beginbfrange <0041> <0043> <0061> endbfrange\nendcmap end end"
	return buildPDF([]string{
		/* 1 */ "<< /Type /Catalog /Pages 2 0 R >>",
		/* 2 */ "<< /Type /Pages /Kids [3 0 R 9 0 R] /Count 2 /MediaBox [0 0 612 792] >>",
		/* 3 */ "<< /Type /Page /Parent 2 0 R /Resources 4 0 R /Contents 5 0 R >>",
		/* 4 */ "<< /Font << /F1 6 0 R >> /XObject << /Fm1 8 0 R >> >>",
		/* 5 */ stream("", "1 0 0 RG 10 10 m 50 10 l S BT /F1 12 Tf 100 700 Td <00410042> Tj ET /Fm1 Do"),
		/* 6 */ "<< /Type /Font /Subtype /Type0 /BaseFont /MapSans /ToUnicode 7 0 R >>",
		/* 7 */ stream("", cmap),
		/* 8 */ stream("/Type /XObject /Subtype /Form /BBox [0 0 10 10] /Matrix [2 0 0 2 5 5] /Resources << /Font << /F1 11 0 R >> >>",
			"0 0 1 1 re f BT /F1 8 Tf (x) Tj ET"),
		/* 9 */ "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 100] /CropBox [10 10 110 60] /Rotate 90 /Contents 10 0 R >>",
		/* 10 */ stream("", "0 0 5 5 re f"),
		/* 11 */ "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	})
}

// formFontPDF has one page whose Form XObject defines its own F1 with a
// different ToUnicode CMap than the page's F1.
func formFontPDF() []byte {
	cmap := func(dst string) string {
		return "begincmap\n1 beginbfchar <41> <" + dst + "> endbfchar\nendcmap"
	}
	return buildPDF([]string{
		/* 1 */ "<< /Type /Catalog /Pages 2 0 R >>",
		/* 2 */ "<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 200 200] >>",
		/* 3 */ "<< /Type /Page /Parent 2 0 R /Resources 4 0 R /Contents 5 0 R >>",
		/* 4 */ "<< /Font << /F1 6 0 R >> /XObject << /Fm1 8 0 R >> >>",
		/* 5 */ stream("", "BT /F1 10 Tf (A) Tj ET /Fm1 Do BT (A) Tj ET"),
		/* 6 */ "<< /Type /Font /Subtype /Type0 /BaseFont /PageSans /ToUnicode 7 0 R >>",
		/* 7 */ stream("", cmap("0061")),
		/* 8 */ stream("/Type /XObject /Subtype /Form /BBox [0 0 10 10] /Matrix [1 0 0 1 50 0] /Resources << /Font << /F1 9 0 R >> >>",
			"BT /F1 10 Tf (A) Tj ET 0 0 1 1 re f"),
		/* 9 */ "<< /Type /Font /Subtype /Type0 /BaseFont /FormSans /ToUnicode 10 0 R >>",
		/* 10 */ stream("", cmap("0071")),
	})
}
