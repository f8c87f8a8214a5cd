package core

import (
	"bytes"
	"fmt"
	"strconv"
)

// ReferenceResolver resolves indirect references encountered while parsing,
// such as an indirect /Length in a stream dictionary.
type ReferenceResolver interface {
	ResolveReference(ref IndirectRef) (Object, error)
}

// Parser parses PDF objects from an in-memory buffer. The whole document is
// buffered before parsing starts, so the parser works on absolute offsets.
type Parser struct {
	data     []byte
	pos      int
	resolver ReferenceResolver
}

// NewParser creates a parser over the given buffer.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// SetReferenceResolver installs the resolver used for indirect stream
// lengths. Parsing works without one as long as every /Length is direct.
func (p *Parser) SetReferenceResolver(resolver ReferenceResolver) {
	p.resolver = resolver
}

// Seek positions the parser at an absolute byte offset.
func (p *Parser) Seek(offset int64) {
	p.pos = int(offset)
}

// ParseObject parses the next object at the current position.
func (p *Parser) ParseObject() (Object, error) {
	p.skipSpaceAndComments()
	if p.pos >= len(p.data) {
		return nil, fmt.Errorf("core: unexpected end of data at offset %d", p.pos)
	}

	c := p.data[p.pos]
	switch {
	case c == '/':
		return p.parseName()
	case c == '(':
		return p.parseLiteralString()
	case c == '[':
		return p.parseArray()
	case c == '<':
		if p.pos+1 < len(p.data) && p.data[p.pos+1] == '<' {
			return p.parseDict()
		}
		return p.parseHexString()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return p.parseNumberOrRef()
	case isRegular(c):
		return p.parseKeyword()
	}
	return nil, fmt.Errorf("core: unexpected character %q at offset %d", c, p.pos)
}

// ParseIndirectObject parses "n g obj ... endobj" at the current position,
// including a trailing stream body when present.
func (p *Parser) ParseIndirectObject() (*IndirectObject, error) {
	p.skipSpaceAndComments()

	num, err := p.readInt()
	if err != nil {
		return nil, fmt.Errorf("core: object number: %w", err)
	}
	gen, err := p.readInt()
	if err != nil {
		return nil, fmt.Errorf("core: generation number: %w", err)
	}
	if kw := p.readToken(); kw != "obj" {
		return nil, fmt.Errorf("core: expected 'obj', got %q at offset %d", kw, p.pos)
	}

	obj, err := p.ParseObject()
	if err != nil {
		return nil, err
	}

	p.skipSpaceAndComments()
	if p.hasKeyword("stream") {
		dict, ok := obj.(Dict)
		if !ok {
			return nil, fmt.Errorf("core: stream without dictionary at offset %d", p.pos)
		}
		stream, err := p.parseStreamBody(dict)
		if err != nil {
			return nil, err
		}
		obj = stream
		p.skipSpaceAndComments()
	}

	if kw := p.readToken(); kw != "endobj" {
		return nil, fmt.Errorf("core: expected 'endobj', got %q at offset %d", kw, p.pos)
	}

	return &IndirectObject{
		Ref:    IndirectRef{Number: num, Generation: gen},
		Object: obj,
	}, nil
}

// parseStreamBody consumes the stream keyword, the data bytes, and the
// endstream keyword. The length comes from /Length, resolved through the
// resolver when indirect; without either, the body extends to the next
// "endstream" marker.
func (p *Parser) parseStreamBody(dict Dict) (*Stream, error) {
	p.pos += len("stream")
	// The keyword is followed by CRLF or LF.
	if p.pos < len(p.data) && p.data[p.pos] == '\r' {
		p.pos++
	}
	if p.pos < len(p.data) && p.data[p.pos] == '\n' {
		p.pos++
	}

	length := -1
	switch v := dict.Get("Length").(type) {
	case Int:
		length = int(v)
	case IndirectRef:
		if p.resolver != nil {
			saved := p.pos
			obj, err := p.resolver.ResolveReference(v)
			p.pos = saved
			if err != nil {
				return nil, fmt.Errorf("core: resolving stream length: %w", err)
			}
			if n, ok := obj.(Int); ok {
				length = int(n)
			}
		}
	}

	if length < 0 {
		end := bytes.Index(p.data[p.pos:], []byte("endstream"))
		if end < 0 {
			return nil, fmt.Errorf("core: unterminated stream at offset %d", p.pos)
		}
		length = end
		// Strip the EOL that precedes endstream.
		for length > 0 && (p.data[p.pos+length-1] == '\n' || p.data[p.pos+length-1] == '\r') {
			length--
		}
	}

	if p.pos+length > len(p.data) {
		return nil, fmt.Errorf("core: stream length %d exceeds data at offset %d", length, p.pos)
	}

	data := p.data[p.pos : p.pos+length]
	p.pos += length
	p.skipSpaceAndComments()
	if kw := p.readToken(); kw != "endstream" {
		return nil, fmt.Errorf("core: expected 'endstream', got %q at offset %d", kw, p.pos)
	}

	return &Stream{Dict: dict, Data: data}, nil
}

// parseNumberOrRef parses a number, upgrading "n g R" to an IndirectRef.
func (p *Parser) parseNumberOrRef() (Object, error) {
	start := p.pos
	first, real, err := p.readNumber()
	if err != nil {
		return nil, err
	}
	if real {
		return Real(first), nil
	}

	// Lookahead for "g R".
	saved := p.pos
	p.skipSpaceAndComments()
	if p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		gen, real2, err2 := p.readNumber()
		if err2 == nil && !real2 {
			p.skipSpaceAndComments()
			if p.hasKeyword("R") && !p.keywordContinues(1) {
				p.pos++
				return IndirectRef{Number: int(first), Generation: int(gen)}, nil
			}
		}
	}
	p.pos = saved

	n, err := strconv.ParseInt(trimNumber(string(p.data[start:p.pos])), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("core: invalid integer at offset %d: %w", start, err)
	}
	return Int(n), nil
}

// readNumber reads an integer or real, reporting which it was.
func (p *Parser) readNumber() (float64, bool, error) {
	start := p.pos
	if p.pos < len(p.data) && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
		p.pos++
	}
	real := false
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isDigit(c) {
			p.pos++
		} else if c == '.' && !real {
			real = true
			p.pos++
		} else {
			break
		}
	}
	if p.pos == start {
		return 0, false, fmt.Errorf("core: expected number at offset %d", start)
	}
	val, err := strconv.ParseFloat(trimNumber(string(p.data[start:p.pos])), 64)
	if err != nil {
		return 0, false, fmt.Errorf("core: invalid number at offset %d: %w", start, err)
	}
	return val, real, nil
}

// trimNumber normalizes tokens like "." or "-." that ParseFloat rejects.
func trimNumber(s string) string {
	if s == "" || s == "." || s == "-" || s == "+" || s == "-." || s == "+." {
		return "0"
	}
	return s
}

func (p *Parser) parseKeyword() (Object, error) {
	kw := p.readToken()
	switch kw {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	case "null":
		return Null{}, nil
	}
	return nil, fmt.Errorf("core: unexpected keyword %q at offset %d", kw, p.pos)
}

func (p *Parser) parseName() (Object, error) {
	p.pos++ // '/'
	var buf bytes.Buffer
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if !isRegular(c) {
			break
		}
		if c == '#' && p.pos+2 < len(p.data) && isHexDigit(p.data[p.pos+1]) && isHexDigit(p.data[p.pos+2]) {
			buf.WriteByte(hexValue(p.data[p.pos+1])<<4 | hexValue(p.data[p.pos+2]))
			p.pos += 3
			continue
		}
		buf.WriteByte(c)
		p.pos++
	}
	return Name(buf.String()), nil
}

func (p *Parser) parseLiteralString() (Object, error) {
	p.pos++ // '('
	var buf bytes.Buffer
	depth := 1
	for p.pos < len(p.data) && depth > 0 {
		c := p.data[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.data):
			p.pos++
			esc := p.data[p.pos]
			switch esc {
			case 'n':
				buf.WriteByte('\n')
				p.pos++
			case 'r':
				buf.WriteByte('\r')
				p.pos++
			case 't':
				buf.WriteByte('\t')
				p.pos++
			case 'b':
				buf.WriteByte('\b')
				p.pos++
			case 'f':
				buf.WriteByte('\f')
				p.pos++
			case '(', ')', '\\':
				buf.WriteByte(esc)
				p.pos++
			case '\r':
				p.pos++
				if p.pos < len(p.data) && p.data[p.pos] == '\n' {
					p.pos++
				}
			case '\n':
				p.pos++
			case '0', '1', '2', '3', '4', '5', '6', '7':
				val := int(esc - '0')
				p.pos++
				for i := 0; i < 2 && p.pos < len(p.data); i++ {
					d := p.data[p.pos]
					if d < '0' || d > '7' {
						break
					}
					val = val*8 + int(d-'0')
					p.pos++
				}
				buf.WriteByte(byte(val & 0xFF))
			default:
				// The backslash is dropped, the character kept.
				buf.WriteByte(esc)
				p.pos++
			}
		case c == '(':
			depth++
			buf.WriteByte(c)
			p.pos++
		case c == ')':
			depth--
			if depth > 0 {
				buf.WriteByte(c)
			}
			p.pos++
		default:
			buf.WriteByte(c)
			p.pos++
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("core: unterminated string at offset %d", p.pos)
	}
	return String(buf.String()), nil
}

func (p *Parser) parseHexString() (Object, error) {
	p.pos++ // '<'
	var buf bytes.Buffer
	var pending byte
	havePending := false
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '>' {
			p.pos++
			if havePending {
				// Odd digit count: the final digit is padded with zero.
				buf.WriteByte(pending << 4)
			}
			return String(buf.String()), nil
		}
		p.pos++
		if isSpace(c) {
			continue
		}
		if !isHexDigit(c) {
			return nil, fmt.Errorf("core: invalid hex digit %q at offset %d", c, p.pos-1)
		}
		if havePending {
			buf.WriteByte(pending<<4 | hexValue(c))
			havePending = false
		} else {
			pending = hexValue(c)
			havePending = true
		}
	}
	return nil, fmt.Errorf("core: unterminated hex string at offset %d", p.pos)
}

func (p *Parser) parseArray() (Object, error) {
	p.pos++ // '['
	var arr Array
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("core: unterminated array at offset %d", p.pos)
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (p *Parser) parseDict() (Object, error) {
	p.pos += 2 // '<<'
	dict := make(Dict)
	for {
		p.skipSpaceAndComments()
		if p.pos+1 < len(p.data) && p.data[p.pos] == '>' && p.data[p.pos+1] == '>' {
			p.pos += 2
			return dict, nil
		}
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("core: unterminated dictionary at offset %d", p.pos)
		}
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("core: dictionary key must be a name at offset %d", p.pos)
		}
		key, err := p.parseName()
		if err != nil {
			return nil, err
		}
		val, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		dict[string(key.(Name))] = val
	}
}

// readInt reads a bare non-negative integer token.
func (p *Parser) readInt() (int, error) {
	p.skipSpaceAndComments()
	start := p.pos
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("expected integer at offset %d", start)
	}
	n, err := strconv.Atoi(string(p.data[start:p.pos]))
	if err != nil {
		return 0, err
	}
	return n, nil
}

// readToken reads a run of regular characters.
func (p *Parser) readToken() string {
	p.skipSpaceAndComments()
	start := p.pos
	for p.pos < len(p.data) && isRegular(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos])
}

// hasKeyword reports whether the data at the current position starts with kw.
func (p *Parser) hasKeyword(kw string) bool {
	return bytes.HasPrefix(p.data[p.pos:], []byte(kw))
}

// keywordContinues reports whether the byte n positions ahead still belongs
// to a keyword token.
func (p *Parser) keywordContinues(n int) bool {
	return p.pos+n < len(p.data) && isRegular(p.data[p.pos+n])
}

func (p *Parser) skipSpaceAndComments() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isSpace(c) {
			p.pos++
			continue
		}
		if c == '%' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		break
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isRegular(c byte) bool {
	return !isSpace(c) && !isDelimiter(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
