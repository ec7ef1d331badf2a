package contentstream

// Operation is an operator together with the operands that preceded it.
type Operation struct {
	Op       Op
	Name     string  // operator keyword as it appeared in the stream
	Operands []Token // oldest first
	Offset   int     // byte offset of the operator keyword
}

// Parser groups tokens into operations using an operand stack. Every
// non-operator token is pushed verbatim; every operator, known or not,
// takes the whole stack and leaves it empty.
type Parser struct {
	lex      *Lexer
	operands []Token
}

// NewParser creates a new content stream parser for the given data.
func NewParser(data []byte) *Parser {
	return &Parser{lex: NewLexer(data)}
}

// Next returns the next operation, or false once the stream is exhausted.
// Operands left over at the end of the stream are dropped.
func (p *Parser) Next() (Operation, bool) {
	for {
		tok, ok := p.lex.Next()
		if !ok {
			p.operands = nil
			return Operation{}, false
		}
		if tok.Kind != TokenOperator {
			p.operands = append(p.operands, tok)
			continue
		}

		op := Operation{
			Op:     LookupOp(tok.Value),
			Name:   tok.Value,
			Offset: tok.Offset,
		}
		if len(p.operands) > 0 {
			op.Operands = make([]Token, len(p.operands))
			copy(op.Operands, p.operands)
		}
		p.operands = p.operands[:0]
		return op, true
	}
}

// Parse returns all remaining operations in order.
func (p *Parser) Parse() []Operation {
	var ops []Operation
	for {
		op, ok := p.Next()
		if !ok {
			return ops
		}
		ops = append(ops, op)
	}
}

// Parse is shorthand for NewParser(data).Parse().
func Parse(data []byte) []Operation {
	return NewParser(data).Parse()
}

// Last returns the final n operands, or false if fewer than n are present.
func (o Operation) Last(n int) ([]Token, bool) {
	if n < 0 || len(o.Operands) < n {
		return nil, false
	}
	return o.Operands[len(o.Operands)-n:], true
}

// Numbers parses the final n operands as numbers.
func (o Operation) Numbers(n int) ([]float64, bool) {
	toks, ok := o.Last(n)
	if !ok {
		return nil, false
	}
	vals := make([]float64, n)
	for i, tok := range toks {
		v, ok := tok.Number()
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}
