package filters

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hhrutter/lzw"
)

// LZWDecode decompresses LZW data. EarlyChange defaults to 1 as in the
// stream dictionary defaults.
func LZWDecode(data []byte, params Params) ([]byte, error) {
	early := params.Int("EarlyChange", 1) == 1

	rc := lzw.NewReader(bytes.NewReader(data), early)
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("lzw: %w", err)
	}
	out, err := unpredict(raw, params)
	if err != nil {
		return nil, fmt.Errorf("predictor: %w", err)
	}
	return out, nil
}
