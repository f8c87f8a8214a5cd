package contentstream

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/tsawler/subplan/core"
)

// Operation is a single content stream operation: an operator (such as
// "Td", "Tj", "m" or "l") and the operands that preceded it, in order.
type Operation struct {
	Operator string
	Operands []core.Object
}

// Number returns operand i converted to float64.
func (op Operation) Number(i int) (float64, bool) {
	if i < 0 || i >= len(op.Operands) {
		return 0, false
	}
	return core.Number(op.Operands[i])
}

// Text returns operand i as the raw string bytes of a PDF string operand.
func (op Operation) Text(i int) ([]byte, bool) {
	if i < 0 || i >= len(op.Operands) {
		return nil, false
	}
	s, ok := op.Operands[i].(core.String)
	if !ok {
		return nil, false
	}
	return []byte(s), true
}

// Parser parses one decoded content stream. A Parser is single-use; create
// a new one per stream.
type Parser struct {
	data     []byte
	pos      int
	operands []core.Object
	ops      []Operation
}

// NewParser creates a parser over the decoded stream bytes.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Parse returns every operation in stream order.
func (p *Parser) Parse() ([]Operation, error) {
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			break
		}
		if err := p.parseNext(); err != nil {
			return nil, err
		}
	}
	return p.ops, nil
}

// parseNext consumes one token: an operand is pushed onto the pending
// stack, an operator closes the pending operands into an Operation.
func (p *Parser) parseNext() error {
	c := p.data[p.pos]

	if isOperatorStart(c) {
		// Distinguish the keyword operands true/false/null from operators.
		if obj, ok := p.tryKeywordOperand(); ok {
			p.operands = append(p.operands, obj)
			return nil
		}
		return p.parseOperator()
	}

	operand, err := p.parseOperand()
	if err != nil {
		return fmt.Errorf("contentstream: at offset %d: %w", p.pos, err)
	}
	p.operands = append(p.operands, operand)
	return nil
}

// tryKeywordOperand consumes true, false, or null when present.
func (p *Parser) tryKeywordOperand() (core.Object, bool) {
	end := p.pos
	for end < len(p.data) && isOperatorChar(p.data[end]) {
		end++
	}
	switch string(p.data[p.pos:end]) {
	case "true":
		p.pos = end
		return core.Bool(true), true
	case "false":
		p.pos = end
		return core.Bool(false), true
	case "null":
		p.pos = end
		return core.Null{}, true
	}
	return nil, false
}

func (p *Parser) parseOperator() error {
	start := p.pos
	for p.pos < len(p.data) && isOperatorChar(p.data[p.pos]) {
		p.pos++
	}
	name := string(p.data[start:p.pos])
	if name == "" {
		return fmt.Errorf("contentstream: empty operator at offset %d", start)
	}

	op := Operation{Operator: name}
	if len(p.operands) > 0 {
		op.Operands = make([]core.Object, len(p.operands))
		copy(op.Operands, p.operands)
		p.operands = p.operands[:0]
	}
	p.ops = append(p.ops, op)
	return nil
}

func (p *Parser) parseOperand() (core.Object, error) {
	c := p.data[p.pos]
	switch {
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case c == '(':
		return p.parseString()
	case c == '/':
		return p.parseName()
	case c == '[':
		return p.parseArray()
	case c == '<':
		if p.pos+1 < len(p.data) && p.data[p.pos+1] == '<' {
			return p.parseDict()
		}
		return p.parseHexString()
	}
	return nil, fmt.Errorf("unexpected character %q", c)
}

func (p *Parser) parseNumber() (core.Object, error) {
	start := p.pos
	if p.data[p.pos] == '+' || p.data[p.pos] == '-' {
		p.pos++
	}
	real := false
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
		} else if c == '.' && !real {
			real = true
			p.pos++
		} else {
			break
		}
	}
	text := string(p.data[start:p.pos])
	if real {
		val, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid real %q: %w", text, err)
		}
		return core.Real(val), nil
	}
	val, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q: %w", text, err)
	}
	return core.Int(val), nil
}

func (p *Parser) parseString() (core.Object, error) {
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
		return nil, fmt.Errorf("unterminated string")
	}
	return core.String(buf.String()), nil
}

func (p *Parser) parseHexString() (core.Object, error) {
	p.pos++ // '<'
	var buf bytes.Buffer
	var pending byte
	havePending := false
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '>' {
			p.pos++
			if havePending {
				buf.WriteByte(pending << 4)
			}
			return core.String(buf.String()), nil
		}
		p.pos++
		if isWhitespace(c) {
			continue
		}
		if !isHexDigit(c) {
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
		if havePending {
			buf.WriteByte(pending<<4 | hexValue(c))
			havePending = false
		} else {
			pending = hexValue(c)
			havePending = true
		}
	}
	return nil, fmt.Errorf("unterminated hex string")
}

func (p *Parser) parseName() (core.Object, error) {
	p.pos++ // '/'
	var buf bytes.Buffer
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) || isDelimiter(c) {
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
	return core.Name(buf.String()), nil
}

func (p *Parser) parseArray() (core.Object, error) {
	p.pos++ // '['
	var arr core.Array
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unterminated array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (p *Parser) parseDict() (core.Object, error) {
	p.pos += 2 // '<<'
	dict := make(core.Dict)
	for {
		p.skipWhitespace()
		if p.pos+1 < len(p.data) && p.data[p.pos] == '>' && p.data[p.pos+1] == '>' {
			p.pos += 2
			return dict, nil
		}
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unterminated dictionary")
		}
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("dictionary key must be a name")
		}
		key, err := p.parseName()
		if err != nil {
			return nil, err
		}
		val, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		dict[string(key.(core.Name))] = val
	}
}

func (p *Parser) skipWhitespace() {
	for p.pos < len(p.data) && isWhitespace(p.data[p.pos]) {
		p.pos++
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// isOperatorStart reports whether c can begin an operator name. Quote
// operators ' and " show text; B*, T*, W* and friends use letters and '*'.
func isOperatorStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '\'' || c == '"'
}

func isOperatorChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '\'' || c == '"' || c == '*'
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
