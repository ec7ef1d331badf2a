package font

import (
	"errors"
	"strings"

	"github.com/dirtybirdnj/gellyscape/contentstream"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// maxRangeSpan bounds how many codes a single bfrange may expand to.
const maxRangeSpan = 0xFFFF

// ErrNoMappings is returned by ParseCMap for data without any bfchar or
// bfrange entries.
var ErrNoMappings = errors.New("cmap has no bfchar or bfrange mappings")

// CMap maps character codes to Unicode text. It is immutable once parsed
// and safe for concurrent use.
type CMap struct {
	mappings map[uint32]string
}

// ParseCMap parses the bfchar and bfrange sections of a ToUnicode CMap.
// Malformed entries are skipped; later entries override earlier ones.
func ParseCMap(data []byte) (*CMap, error) {
	cm := &CMap{mappings: make(map[uint32]string)}
	p := cmapParser{tokens: contentstream.Tokenize(data), cm: cm}

	for p.pos < len(p.tokens) {
		tok := p.next()
		if tok.Kind != contentstream.TokenOperator {
			continue
		}
		switch tok.Value {
		case "beginbfchar":
			p.parseBfChar()
		case "beginbfrange":
			p.parseBfRange()
		}
	}

	if len(cm.mappings) == 0 {
		return nil, ErrNoMappings
	}
	return cm, nil
}

// Len returns the number of mapped codes.
func (cm *CMap) Len() int {
	return len(cm.mappings)
}

// Lookup returns the text for code.
func (cm *CMap) Lookup(code uint32) (string, bool) {
	s, ok := cm.mappings[code]
	return s, ok
}

// Decode maps a byte string to text. At each position the two-byte
// big-endian code is tried first, then the single byte; a byte that maps
// to nothing is kept as its Latin-1 character.
func (cm *CMap) Decode(b []byte) string {
	var sb strings.Builder
	for i := 0; i < len(b); {
		if i+1 < len(b) {
			if s, ok := cm.Lookup(uint32(b[i])<<8 | uint32(b[i+1])); ok {
				sb.WriteString(s)
				i += 2
				continue
			}
		}
		if s, ok := cm.Lookup(uint32(b[i])); ok {
			sb.WriteString(s)
		} else {
			sb.WriteRune(charmap.ISO8859_1.DecodeByte(b[i]))
		}
		i++
	}
	return sb.String()
}

type cmapParser struct {
	tokens []contentstream.Token
	pos    int
	cm     *CMap
}

func (p *cmapParser) next() contentstream.Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// atEnd reports whether the current section is over: at end of input or
// at any operator. The section's own end keyword is consumed; other
// operators are left for the caller.
func (p *cmapParser) atEnd(keyword string) bool {
	if p.pos >= len(p.tokens) {
		return true
	}
	tok := p.tokens[p.pos]
	if tok.Kind != contentstream.TokenOperator {
		return false
	}
	if tok.Value == keyword {
		p.pos++
	}
	return true
}

func (p *cmapParser) hasOperand() bool {
	return p.pos < len(p.tokens) && p.tokens[p.pos].Kind != contentstream.TokenOperator
}

// parseBfChar reads "<src> <dst>" pairs up to endbfchar.
func (p *cmapParser) parseBfChar() {
	for !p.atEnd("endbfchar") {
		src := p.next()
		if !p.hasOperand() {
			continue
		}
		dst := p.next()

		code, ok := sourceCode(src)
		if !ok || dst.Kind != contentstream.TokenHexString {
			continue
		}
		if s, ok := utf16Text(DecodeOperand(dst.Value)); ok {
			p.cm.mappings[code] = s
		}
	}
}

// parseBfRange reads "<lo> <hi> <dst>" and "<lo> <hi> [<dst>...]" entries
// up to endbfrange.
func (p *cmapParser) parseBfRange() {
	for !p.atEnd("endbfrange") {
		loTok := p.next()
		if !p.hasOperand() {
			continue
		}
		hiTok := p.next()
		if !p.hasOperand() {
			continue
		}
		dst := p.next()
		var elems []contentstream.Token
		if dst.Kind == contentstream.TokenArrayStart {
			elems = p.arrayElements()
		}

		lo, ok1 := sourceCode(loTok)
		hi, ok2 := sourceCode(hiTok)
		if !ok1 || !ok2 || hi < lo || hi-lo > maxRangeSpan {
			continue
		}
		switch dst.Kind {
		case contentstream.TokenHexString:
			p.addIncrementing(lo, hi, DecodeOperand(dst.Value))
		case contentstream.TokenArrayStart:
			p.addArray(lo, hi, elems)
		}
	}
}

// arrayElements consumes tokens up to the closing bracket.
func (p *cmapParser) arrayElements() []contentstream.Token {
	var elems []contentstream.Token
	for p.hasOperand() {
		tok := p.next()
		if tok.Kind == contentstream.TokenArrayEnd {
			break
		}
		elems = append(elems, tok)
	}
	return elems
}

// addIncrementing maps lo..hi to dst with its last UTF-16 unit advanced by
// the offset from lo.
func (p *cmapParser) addIncrementing(lo, hi uint32, dst []byte) {
	if len(dst) == 0 {
		return
	}
	buf := make([]byte, len(dst))
	for code := lo; code <= hi; code++ {
		copy(buf, dst)
		offset := code - lo
		if len(buf) >= 2 {
			last := uint32(buf[len(buf)-2])<<8 | uint32(buf[len(buf)-1])
			last += offset
			buf[len(buf)-2] = byte(last >> 8)
			buf[len(buf)-1] = byte(last)
		} else {
			buf[0] += byte(offset)
		}
		if s, ok := utf16Text(buf); ok {
			p.cm.mappings[code] = s
		}
		if code == hi {
			// hi may be the largest uint32
			break
		}
	}
}

// addArray maps lo, lo+1, ... to successive hex elements.
func (p *cmapParser) addArray(lo, hi uint32, elems []contentstream.Token) {
	code := lo
	for _, tok := range elems {
		if code > hi {
			return
		}
		if tok.Kind == contentstream.TokenHexString {
			if s, ok := utf16Text(DecodeOperand(tok.Value)); ok {
				p.cm.mappings[code] = s
			}
		}
		code++
	}
}

// sourceCode converts a hex source code of up to four bytes to an integer.
func sourceCode(tok contentstream.Token) (uint32, bool) {
	if tok.Kind != contentstream.TokenHexString {
		return 0, false
	}
	b := DecodeOperand(tok.Value)
	if len(b) == 0 || len(b) > 4 {
		return 0, false
	}
	var code uint32
	for _, c := range b {
		code = code<<8 | uint32(c)
	}
	return code, true
}

// utf16Text decodes a UTF-16BE destination string. A leading byte order
// mark is dropped and a lone byte is taken as a Latin-1 character.
func utf16Text(b []byte) (string, bool) {
	switch {
	case len(b) == 0:
		return "", false
	case len(b) == 1:
		return string(charmap.ISO8859_1.DecodeByte(b[0])), true
	case len(b)%2 != 0:
		b = b[:len(b)-1]
	}
	dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", false
	}
	return string(out), true
}
