package filters

import "fmt"

// unpredict reverses the TIFF (2) or PNG (10-15) predictor named by the
// Predictor parameter. Predictor 1 or absent returns data unchanged.
func unpredict(data []byte, params Params) ([]byte, error) {
	predictor := params.Int("Predictor", 1)
	switch {
	case predictor <= 1:
		return data, nil
	case predictor == 2:
		return unpredictTIFF(data, params)
	case predictor >= 10 && predictor <= 15:
		return unpredictPNG(data, params)
	}
	return nil, fmt.Errorf("unsupported predictor: %d", predictor)
}

type rowLayout struct {
	rowLen int // bytes per row, excluding any tag byte
	bpp    int // bytes per pixel, at least 1
}

func layoutFor(params Params) (rowLayout, error) {
	columns := params.Int("Columns", 1)
	colors := params.Int("Colors", 1)
	bpc := params.Int("BitsPerComponent", 8)

	switch bpc {
	case 1, 2, 4, 8, 16:
	default:
		return rowLayout{}, fmt.Errorf("invalid BitsPerComponent %d", bpc)
	}
	if columns < 1 || colors < 1 {
		return rowLayout{}, fmt.Errorf("invalid Columns %d or Colors %d", columns, colors)
	}

	bpp := colors * bpc / 8
	if bpp < 1 {
		bpp = 1
	}
	return rowLayout{rowLen: (columns*colors*bpc + 7) / 8, bpp: bpp}, nil
}

// unpredictTIFF undoes TIFF Predictor 2 for 8-bit samples: each byte is a
// delta from the same component of the pixel to its left.
func unpredictTIFF(data []byte, params Params) ([]byte, error) {
	if bpc := params.Int("BitsPerComponent", 8); bpc != 8 {
		return nil, fmt.Errorf("TIFF predictor supports 8 bits per component, got %d", bpc)
	}
	l, err := layoutFor(params)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(data))
	copy(out, data)
	for start := 0; start+l.rowLen <= len(out); start += l.rowLen {
		row := out[start : start+l.rowLen]
		for i := l.bpp; i < len(row); i++ {
			row[i] += row[i-l.bpp]
		}
	}
	return out, nil
}

// unpredictPNG undoes PNG row filters. Each row carries its own filter tag
// byte, so the Predictor value only selects PNG mode. A trailing partial
// row is dropped.
func unpredictPNG(data []byte, params Params) ([]byte, error) {
	l, err := layoutFor(params)
	if err != nil {
		return nil, err
	}
	stride := l.rowLen + 1
	rows := len(data) / stride

	out := make([]byte, 0, rows*l.rowLen)
	prev := make([]byte, l.rowLen)
	for r := 0; r < rows; r++ {
		tag := data[r*stride]
		row := make([]byte, l.rowLen)
		copy(row, data[r*stride+1:(r+1)*stride])

		if err := unfilterRow(tag, row, prev, l.bpp); err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		out = append(out, row...)
		prev = row
	}
	return out, nil
}

func unfilterRow(tag byte, row, prev []byte, bpp int) error {
	switch tag {
	case 0: // None
	case 1: // Sub
		for i := bpp; i < len(row); i++ {
			row[i] += row[i-bpp]
		}
	case 2: // Up
		for i := range row {
			row[i] += prev[i]
		}
	case 3: // Average
		for i := range row {
			var left int
			if i >= bpp {
				left = int(row[i-bpp])
			}
			row[i] += byte((left + int(prev[i])) / 2)
		}
	case 4: // Paeth
		for i := range row {
			var left, upLeft byte
			if i >= bpp {
				left = row[i-bpp]
				upLeft = prev[i-bpp]
			}
			row[i] += paeth(left, prev[i], upLeft)
		}
	default:
		return fmt.Errorf("unknown PNG filter type %d", tag)
	}
	return nil
}

// paeth returns whichever of left, up and upper-left is closest to
// left + up - upLeft, preferring them in that order on ties.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := absInt(p-int(a)), absInt(p-int(b)), absInt(p-int(c))
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	}
	return c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
