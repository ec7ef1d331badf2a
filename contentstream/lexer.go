package contentstream

import (
	"bytes"
	"strconv"
)

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenName
	TokenLiteralString
	TokenHexString
	TokenArrayStart
	TokenArrayEnd
	TokenOperator
)

var tokenKindNames = [...]string{
	TokenNumber:        "number",
	TokenName:          "name",
	TokenLiteralString: "literal-string",
	TokenHexString:     "hex-string",
	TokenArrayStart:    "array-start",
	TokenArrayEnd:      "array-end",
	TokenOperator:      "operator",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token is a single lexical element of a content stream.
//
// Value holds the lexical form: names keep their leading '/', literal
// strings keep their parentheses and escapes, and hex strings keep their
// angle brackets with interior whitespace removed.
type Token struct {
	Kind   TokenKind
	Value  string
	Offset int // byte offset of the token's first character
}

// Number parses a number token.
func (t Token) Number() (float64, bool) {
	if t.Kind != TokenNumber {
		return 0, false
	}
	v, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Name returns a name token's value without the leading slash.
func (t Token) Name() (string, bool) {
	if t.Kind != TokenName {
		return "", false
	}
	return t.Value[1:], true
}

// IsString reports whether the token is a literal or hex string.
func (t Token) IsString() bool {
	return t.Kind == TokenLiteralString || t.Kind == TokenHexString
}

// Lexer splits content stream bytes into tokens. It never fails: bytes that
// do not start a recognizable token are skipped one at a time.
type Lexer struct {
	data []byte
	pos  int
}

// NewLexer creates a lexer over data.
func NewLexer(data []byte) *Lexer {
	return &Lexer{data: data}
}

// Tokenize returns every token in data in stream order.
func Tokenize(data []byte) []Token {
	lex := NewLexer(data)
	var tokens []Token
	for {
		tok, ok := lex.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Offset returns the current read position.
func (l *Lexer) Offset() int {
	return l.pos
}

// Next returns the next token, or false at end of input.
func (l *Lexer) Next() (Token, bool) {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.data) {
			return Token{}, false
		}

		start := l.pos
		c := l.data[l.pos]

		switch {
		case c == '%':
			l.skipComment()
			continue
		case c == '/':
			return l.lexName(), true
		case c == '[':
			l.pos++
			return Token{Kind: TokenArrayStart, Value: "[", Offset: start}, true
		case c == ']':
			l.pos++
			return Token{Kind: TokenArrayEnd, Value: "]", Offset: start}, true
		case c == '(':
			if tok, ok := l.lexLiteral(); ok {
				return tok, true
			}
		case c == '<':
			if l.peek(1) == '<' {
				l.pos += 2
				continue
			}
			if tok, ok := l.lexHex(); ok {
				return tok, true
			}
		case c == '>' && l.peek(1) == '>':
			l.pos += 2
			continue
		case c == '+' || c == '-' || c == '.' || isDigit(c):
			if tok, ok := l.lexNumber(); ok {
				return tok, true
			}
		case isOperatorStart(c):
			tok := l.lexOperator()
			if tok.Value == "ID" {
				l.skipInlineImage()
			}
			return tok, true
		}

		// unrecognized, or a token opener that did not complete
		l.pos = start + 1
	}
}

func (l *Lexer) peek(n int) byte {
	if l.pos+n < len(l.data) {
		return l.data[l.pos+n]
	}
	return 0
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.data) && isWhitespace(l.data[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) skipComment() {
	for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
		l.pos++
	}
}

// lexName reads /Name up to whitespace or a delimiter. # escapes are left
// in place; they are not meaningful for resource lookup keys here.
func (l *Lexer) lexName() Token {
	start := l.pos
	l.pos++ // skip '/'
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if isWhitespace(c) || isDelimiter(c) {
			break
		}
		l.pos++
	}
	return Token{Kind: TokenName, Value: string(l.data[start:l.pos]), Offset: start}
}

// lexLiteral reads a balanced (...) string, honoring backslash escapes.
func (l *Lexer) lexLiteral() (Token, bool) {
	start := l.pos
	i := l.pos + 1
	depth := 1
	for i < len(l.data) {
		switch l.data[i] {
		case '\\':
			i += 2
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				l.pos = i + 1
				return Token{Kind: TokenLiteralString, Value: string(l.data[start:l.pos]), Offset: start}, true
			}
		}
		i++
	}
	return Token{}, false
}

// lexHex reads <...> containing only hex digits and whitespace.
func (l *Lexer) lexHex() (Token, bool) {
	start := l.pos
	var buf bytes.Buffer
	buf.WriteByte('<')
	for i := l.pos + 1; i < len(l.data); i++ {
		c := l.data[i]
		switch {
		case c == '>':
			buf.WriteByte('>')
			l.pos = i + 1
			return Token{Kind: TokenHexString, Value: buf.String(), Offset: start}, true
		case isWhitespace(c):
		case isHexDigit(c):
			buf.WriteByte(c)
		default:
			return Token{}, false
		}
	}
	return Token{}, false
}

// lexNumber reads [+-]digits[.digits]. At least one digit is required.
func (l *Lexer) lexNumber() (Token, bool) {
	start := l.pos
	i := l.pos
	if c := l.data[i]; c == '+' || c == '-' {
		i++
	}
	digits := 0
	for i < len(l.data) && isDigit(l.data[i]) {
		i++
		digits++
	}
	if i < len(l.data) && l.data[i] == '.' {
		i++
		for i < len(l.data) && isDigit(l.data[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return Token{}, false
	}
	l.pos = i
	return Token{Kind: TokenNumber, Value: string(l.data[start:i]), Offset: start}, true
}

func (l *Lexer) lexOperator() Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.data) && isOperatorByte(l.data[l.pos]) {
		l.pos++
	}
	return Token{Kind: TokenOperator, Value: string(l.data[start:l.pos]), Offset: start}
}

// skipInlineImage moves past binary image data following ID so that the
// next token read is the EI keyword.
func (l *Lexer) skipInlineImage() {
	if l.pos < len(l.data) && isWhitespace(l.data[l.pos]) {
		l.pos++
	}
	for i := l.pos; i+1 < len(l.data); i++ {
		if l.data[i] != 'E' || l.data[i+1] != 'I' {
			continue
		}
		before := i == 0 || isWhitespace(l.data[i-1])
		after := i+2 >= len(l.data) || isWhitespace(l.data[i+2]) || isDelimiter(l.data[i+2])
		if before && after {
			l.pos = i
			return
		}
	}
	l.pos = len(l.data)
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

// isDelimiter reports whether c is a PDF delimiter character.
func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '<' || c == '>' ||
		c == '[' || c == ']' || c == '{' || c == '}' ||
		c == '/' || c == '%'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isOperatorStart(c byte) bool {
	return isLetter(c) || c == '\'' || c == '"'
}

func isOperatorByte(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '*' || c == '\'' || c == '"'
}

// isHexDigit reports whether c is a hexadecimal digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
