package core

import (
	"fmt"
)

// ObjectStream gives access to the compressed objects stored inside a
// /Type /ObjStm stream (PDF 1.5+).
type ObjectStream struct {
	data    []byte
	first   int
	offsets []objectStreamOffset
}

type objectStreamOffset struct {
	number int
	offset int
}

// NewObjectStream decodes the stream and parses its object-number/offset
// header.
func NewObjectStream(stream *Stream) (*ObjectStream, error) {
	if typ, _ := stream.Dict.GetName("Type"); typ != "ObjStm" {
		return nil, fmt.Errorf("core: not an object stream (/Type %q)", typ)
	}
	n, ok := stream.Dict.GetInt("N")
	if !ok {
		return nil, fmt.Errorf("core: object stream missing /N")
	}
	first, ok := stream.Dict.GetInt("First")
	if !ok {
		return nil, fmt.Errorf("core: object stream missing /First")
	}

	data, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("core: object stream decode: %w", err)
	}

	os := &ObjectStream{
		data:    data,
		first:   int(first),
		offsets: make([]objectStreamOffset, 0, int(n)),
	}

	p := NewParser(data)
	for i := 0; i < int(n); i++ {
		num, err := p.readInt()
		if err != nil {
			return nil, fmt.Errorf("core: object stream header entry %d: %w", i, err)
		}
		off, err := p.readInt()
		if err != nil {
			return nil, fmt.Errorf("core: object stream header entry %d: %w", i, err)
		}
		os.offsets = append(os.offsets, objectStreamOffset{number: num, offset: off})
	}
	return os, nil
}

// GetObjectByIndex parses the object at the given header index.
func (os *ObjectStream) GetObjectByIndex(index int) (Object, int, error) {
	if index < 0 || index >= len(os.offsets) {
		return nil, 0, fmt.Errorf("core: object stream index %d out of range [0,%d)", index, len(os.offsets))
	}
	entry := os.offsets[index]
	pos := os.first + entry.offset
	if pos < 0 || pos > len(os.data) {
		return nil, 0, fmt.Errorf("core: object stream offset %d out of range", pos)
	}
	p := NewParser(os.data)
	p.Seek(int64(pos))
	obj, err := p.ParseObject()
	if err != nil {
		return nil, 0, fmt.Errorf("core: object stream object %d: %w", entry.number, err)
	}
	return obj, entry.number, nil
}

// GetObjectByNumber parses the object with the given object number.
func (os *ObjectStream) GetObjectByNumber(objNum int) (Object, error) {
	for i, entry := range os.offsets {
		if entry.number == objNum {
			obj, _, err := os.GetObjectByIndex(i)
			return obj, err
		}
	}
	return nil, fmt.Errorf("core: object %d not in object stream", objNum)
}
