package core

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// XRefEntry locates a single object: either directly by byte offset, or
// inside an object stream.
type XRefEntry struct {
	Offset     int64
	Generation int
	InUse      bool

	// Object-stream location (type 2 entries in an xref stream).
	InObjectStream bool
	StreamNumber   int
	StreamIndex    int
}

// XRefTable maps object numbers to their locations and carries the trailer
// dictionary of the section it was parsed from.
type XRefTable struct {
	entries map[int]XRefEntry
	Trailer Dict
}

// NewXRefTable creates an empty table.
func NewXRefTable() *XRefTable {
	return &XRefTable{entries: make(map[int]XRefEntry)}
}

// Get returns the entry for an object number.
func (t *XRefTable) Get(objNum int) (XRefEntry, bool) {
	e, ok := t.entries[objNum]
	return e, ok
}

// Set stores the entry for an object number.
func (t *XRefTable) Set(objNum int, entry XRefEntry) {
	t.entries[objNum] = entry
}

// Size returns the number of entries.
func (t *XRefTable) Size() int {
	return len(t.entries)
}

// MergeXRefTables merges tables ordered from oldest to newest; newer entries
// win, and the newest trailer is kept.
func MergeXRefTables(tables ...*XRefTable) *XRefTable {
	merged := NewXRefTable()
	for _, t := range tables {
		for num, e := range t.entries {
			merged.entries[num] = e
		}
		merged.Trailer = t.Trailer
	}
	return merged
}

// startxrefWindow is how far back from EOF the startxref keyword is sought.
const startxrefWindow = 1024

// FindStartXRef locates the offset recorded after the startxref keyword
// near the end of the file.
func FindStartXRef(data []byte) (int64, error) {
	start := len(data) - startxrefWindow
	if start < 0 {
		start = 0
	}
	idx := bytes.LastIndex(data[start:], []byte("startxref"))
	if idx < 0 {
		return 0, fmt.Errorf("core: startxref not found")
	}
	rest := data[start+idx+len("startxref"):]
	fields := strings.Fields(string(rest))
	if len(fields) == 0 {
		return 0, fmt.Errorf("core: startxref has no offset")
	}
	offset, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("core: invalid startxref offset %q: %w", fields[0], err)
	}
	return offset, nil
}

// ParseXRefChain parses the xref section at offset and follows /Prev links,
// returning the merged table with the newest trailer.
func ParseXRefChain(data []byte, offset int64, resolver ReferenceResolver) (*XRefTable, error) {
	var chain []*XRefTable
	seen := make(map[int64]bool)

	for {
		if seen[offset] {
			return nil, fmt.Errorf("core: xref offset cycle at %d", offset)
		}
		seen[offset] = true

		table, err := parseXRefSection(data, offset, resolver)
		if err != nil {
			return nil, err
		}
		chain = append(chain, table)

		prev, ok := table.Trailer.GetInt("Prev")
		if !ok {
			break
		}
		offset = int64(prev)
	}

	// Oldest first so newer sections override.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return MergeXRefTables(chain...), nil
}

// parseXRefSection parses either a classic "xref" table or an xref stream.
func parseXRefSection(data []byte, offset int64, resolver ReferenceResolver) (*XRefTable, error) {
	if offset < 0 || offset >= int64(len(data)) {
		return nil, fmt.Errorf("core: xref offset %d out of range", offset)
	}

	p := NewParser(data)
	p.SetReferenceResolver(resolver)
	p.Seek(offset)
	p.skipSpaceAndComments()

	if p.hasKeyword("xref") && !p.keywordContinues(len("xref")) {
		return parseClassicXRef(p)
	}
	return parseXRefStream(p)
}

// parseClassicXRef parses the "xref" keyword, its subsections, and the
// trailing trailer dictionary.
func parseClassicXRef(p *Parser) (*XRefTable, error) {
	if kw := p.readToken(); kw != "xref" {
		return nil, fmt.Errorf("core: expected 'xref', got %q", kw)
	}

	table := NewXRefTable()
	for {
		p.skipSpaceAndComments()
		if p.hasKeyword("trailer") {
			break
		}
		first, err := p.readInt()
		if err != nil {
			return nil, fmt.Errorf("core: xref subsection start: %w", err)
		}
		count, err := p.readInt()
		if err != nil {
			return nil, fmt.Errorf("core: xref subsection count: %w", err)
		}
		for i := 0; i < count; i++ {
			off, err := p.readInt()
			if err != nil {
				return nil, fmt.Errorf("core: xref entry offset: %w", err)
			}
			gen, err := p.readInt()
			if err != nil {
				return nil, fmt.Errorf("core: xref entry generation: %w", err)
			}
			kind := p.readToken()
			if kind != "n" && kind != "f" {
				return nil, fmt.Errorf("core: xref entry type %q", kind)
			}
			table.Set(first+i, XRefEntry{
				Offset:     int64(off),
				Generation: gen,
				InUse:      kind == "n",
			})
		}
	}

	if kw := p.readToken(); kw != "trailer" {
		return nil, fmt.Errorf("core: expected 'trailer', got %q", kw)
	}
	obj, err := p.ParseObject()
	if err != nil {
		return nil, fmt.Errorf("core: trailer: %w", err)
	}
	trailer, ok := obj.(Dict)
	if !ok {
		return nil, fmt.Errorf("core: trailer is not a dictionary: %T", obj)
	}
	table.Trailer = trailer
	return table, nil
}

// parseXRefStream parses a cross-reference stream (PDF 1.5+): an indirect
// stream object whose /W widths describe packed entry fields.
func parseXRefStream(p *Parser) (*XRefTable, error) {
	indObj, err := p.ParseIndirectObject()
	if err != nil {
		return nil, fmt.Errorf("core: xref stream: %w", err)
	}
	stream, ok := indObj.Object.(*Stream)
	if !ok {
		return nil, fmt.Errorf("core: xref section is neither table nor stream (%T)", indObj.Object)
	}
	if typ, _ := stream.Dict.GetName("Type"); typ != "XRef" {
		return nil, fmt.Errorf("core: xref stream has /Type %q", typ)
	}

	widths, ok := stream.Dict.GetArray("W")
	if !ok || len(widths) < 3 {
		return nil, fmt.Errorf("core: xref stream missing /W")
	}
	var w [3]int
	for i := 0; i < 3; i++ {
		n, ok := widths.Get(i).(Int)
		if !ok {
			return nil, fmt.Errorf("core: xref stream /W[%d] is not an integer", i)
		}
		w[i] = int(n)
	}

	size, ok := stream.Dict.GetInt("Size")
	if !ok {
		return nil, fmt.Errorf("core: xref stream missing /Size")
	}

	// Default index covers all objects from zero.
	index := []int{0, int(size)}
	if idxArr, ok := stream.Dict.GetArray("Index"); ok {
		index = index[:0]
		for i := 0; i < len(idxArr); i++ {
			n, ok := idxArr.Get(i).(Int)
			if !ok {
				return nil, fmt.Errorf("core: xref stream /Index[%d] is not an integer", i)
			}
			index = append(index, int(n))
		}
		if len(index)%2 != 0 {
			return nil, fmt.Errorf("core: xref stream /Index has odd length")
		}
	}

	data, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("core: xref stream decode: %w", err)
	}

	entryLen := w[0] + w[1] + w[2]
	if entryLen == 0 {
		return nil, fmt.Errorf("core: xref stream has zero-width entries")
	}

	table := NewXRefTable()
	pos := 0
	for s := 0; s < len(index); s += 2 {
		first, count := index[s], index[s+1]
		for i := 0; i < count; i++ {
			if pos+entryLen > len(data) {
				return nil, fmt.Errorf("core: xref stream data truncated")
			}
			f0 := readField(data[pos:pos+w[0]], 1) // type defaults to 1
			f1 := readField(data[pos+w[0]:pos+w[0]+w[1]], 0)
			f2 := readField(data[pos+w[0]+w[1]:pos+entryLen], 0)
			pos += entryLen

			var entry XRefEntry
			switch f0 {
			case 0:
				entry = XRefEntry{InUse: false, Offset: f1, Generation: int(f2)}
			case 1:
				entry = XRefEntry{InUse: true, Offset: f1, Generation: int(f2)}
			case 2:
				entry = XRefEntry{
					InUse:          true,
					InObjectStream: true,
					StreamNumber:   int(f1),
					StreamIndex:    int(f2),
				}
			default:
				// Reserved entry types read as free.
				entry = XRefEntry{InUse: false}
			}
			table.Set(first+i, entry)
		}
	}

	table.Trailer = stream.Dict
	return table, nil
}

// readField reads a big-endian packed field; zero-width fields take the
// given default.
func readField(b []byte, def int64) int64 {
	if len(b) == 0 {
		return def
	}
	var v int64
	for _, c := range b {
		v = v<<8 | int64(c)
	}
	return v
}
