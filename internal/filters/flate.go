package filters

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// FlateDecode decompresses zlib data and then reverses any predictor named
// in params. A stream cut short after some output was produced returns
// that output; producers routinely truncate ToUnicode streams.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	raw, err := inflate(data)
	if err != nil {
		return nil, err
	}
	out, err := unpredict(raw, params)
	if err != nil {
		return nil, fmt.Errorf("predictor: %w", err)
	}
	return out, nil
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib header: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) && len(out) > 0 {
			return out, nil
		}
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return out, nil
}
