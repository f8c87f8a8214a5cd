package reader

import (
	"fmt"

	"github.com/tsawler/subplan/core"
)

// Page is one leaf of the page tree.
type Page struct {
	reader *Reader
	dict   core.Dict
}

// Contents returns the page's decoded content streams in document order.
// A page without /Contents yields no streams.
func (p *Page) Contents() ([][]byte, error) {
	if !p.dict.Has("Contents") {
		return nil, nil
	}
	obj, err := p.reader.Resolve(p.dict.Get("Contents"))
	if err != nil {
		return nil, err
	}

	var streams []*core.Stream
	switch o := obj.(type) {
	case *core.Stream:
		streams = append(streams, o)
	case core.Array:
		for i := 0; i < len(o); i++ {
			elem, err := p.reader.Resolve(o.Get(i))
			if err != nil {
				return nil, err
			}
			s, ok := elem.(*core.Stream)
			if !ok {
				return nil, fmt.Errorf("%w: /Contents element %d is %T", ErrRead, i, elem)
			}
			streams = append(streams, s)
		}
	default:
		return nil, fmt.Errorf("%w: /Contents is %T", ErrRead, obj)
	}

	decoded := make([][]byte, 0, len(streams))
	for _, s := range streams {
		data, err := s.Decode()
		if err != nil {
			return nil, fmt.Errorf("%w: content stream: %v", ErrRead, err)
		}
		decoded = append(decoded, data)
	}
	return decoded, nil
}
