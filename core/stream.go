package core

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// Decode returns the stream data with its filters applied. Streams without
// a /Filter entry are returned as-is. FlateDecode (with optional PNG
// predictors) is the only filter the schedule producer emits; anything else
// is an error.
func (s *Stream) Decode() ([]byte, error) {
	filter := s.Dict.Get("Filter")
	if filter == nil {
		return s.Data, nil
	}

	params, _ := s.Dict.GetDict("DecodeParms")

	switch f := filter.(type) {
	case Name:
		return decodeFilter(s.Data, string(f), params)
	case Array:
		data := s.Data
		paramsArr, _ := s.Dict.GetArray("DecodeParms")
		for i, elem := range f {
			name, ok := elem.(Name)
			if !ok {
				return nil, fmt.Errorf("core: filter %d is not a name: %T", i, elem)
			}
			var p Dict
			if paramsArr != nil {
				p, _ = paramsArr.Get(i).(Dict)
			} else {
				p = params
			}
			var err error
			data, err = decodeFilter(data, string(name), p)
			if err != nil {
				return nil, fmt.Errorf("core: filter %d (%s): %w", i, name, err)
			}
		}
		return data, nil
	}
	return nil, fmt.Errorf("core: invalid /Filter type %T", filter)
}

func decodeFilter(data []byte, name string, params Dict) ([]byte, error) {
	switch name {
	case "FlateDecode", "Fl":
		return flateDecode(data, params)
	default:
		return nil, fmt.Errorf("core: unsupported filter %q", name)
	}
}

// flateDecode inflates zlib data and reverses the PNG row predictor when
// the decode parameters request one.
func flateDecode(data []byte, params Dict) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}

	predictor := 1
	if p, ok := params.GetInt("Predictor"); ok {
		predictor = int(p)
	}
	if predictor <= 1 {
		return out, nil
	}
	if predictor < 10 {
		return nil, fmt.Errorf("unsupported predictor %d", predictor)
	}

	columns := 1
	if c, ok := params.GetInt("Columns"); ok {
		columns = int(c)
	}
	colors := 1
	if c, ok := params.GetInt("Colors"); ok {
		colors = int(c)
	}
	bits := 8
	if b, ok := params.GetInt("BitsPerComponent"); ok {
		bits = int(b)
	}

	return unpredictPNG(out, columns*colors*bits/8)
}

// unpredictPNG reverses PNG filtering: every row starts with a filter type
// byte followed by rowLen data bytes.
func unpredictPNG(data []byte, rowLen int) ([]byte, error) {
	if rowLen <= 0 {
		return nil, fmt.Errorf("invalid predictor row length %d", rowLen)
	}
	if len(data)%(rowLen+1) != 0 {
		return nil, fmt.Errorf("predictor data length %d not a multiple of row length %d", len(data), rowLen+1)
	}

	rows := len(data) / (rowLen + 1)
	out := make([]byte, 0, rows*rowLen)
	prev := make([]byte, rowLen)

	for r := 0; r < rows; r++ {
		ft := data[r*(rowLen+1)]
		row := make([]byte, rowLen)
		copy(row, data[r*(rowLen+1)+1:(r+1)*(rowLen+1)])

		switch ft {
		case 0: // None
		case 1: // Sub
			for i := 1; i < rowLen; i++ {
				row[i] += row[i-1]
			}
		case 2: // Up
			for i := 0; i < rowLen; i++ {
				row[i] += prev[i]
			}
		case 3: // Average
			for i := 0; i < rowLen; i++ {
				var left byte
				if i > 0 {
					left = row[i-1]
				}
				row[i] += byte((int(left) + int(prev[i])) / 2)
			}
		case 4: // Paeth
			for i := 0; i < rowLen; i++ {
				var left, upLeft byte
				if i > 0 {
					left = row[i-1]
					upLeft = prev[i-1]
				}
				row[i] += paeth(left, prev[i], upLeft)
			}
		default:
			return nil, fmt.Errorf("unknown PNG filter type %d", ft)
		}

		out = append(out, row...)
		prev = row
	}
	return out, nil
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
