package calc

// Limits that keep parsing and evaluation off the end of the goroutine
// stack. maxDepth bounds nesting of parentheses, calls, signs and exponents;
// maxLength bounds left-associative chains such as 1+1+1+...
const (
	maxDepth  = 1000
	maxLength = 64 * 1024
)

type parser struct {
	l     lexer
	cur   token
	depth int
}

func (p *parser) next() { p.cur = p.l.next() }

// parse builds the syntax tree for a whole expression. Trailing input after a
// complete expression is an error, which is how an unmatched ')' is reported.
func parse(s string) (node, error) {
	if len(s) > maxLength {
		return nil, newError(ErrSyntax, maxLength, "expression longer than %d bytes", maxLength)
	}
	p := &parser{l: lexer{s: s}}
	p.next()
	if p.cur.kind == tokEOF {
		return nil, newError(ErrSyntax, 0, "empty expression")
	}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	switch p.cur.kind {
	case tokEOF:
		return n, nil
	case tokRParen:
		return nil, newError(ErrSyntax, p.cur.pos, "unmatched ')' at position %d", p.cur.pos+1)
	default:
		return nil, p.unexpected()
	}
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op.kind, pos: op.pos, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokStar || p.cur.kind == tokSlash {
		op := p.cur
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op.kind, pos: op.pos, left: left, right: right}
	}
	return left, nil
}

// parseUnary binds looser than the exponent so that -2^2 is -(2^2).
func (p *parser) parseUnary() (node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return nil, newError(ErrSyntax, p.cur.pos, "expression nested too deeply")
	}

	if p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return nodeUnary{op: op.kind, x: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind == tokPow {
		op := p.cur
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return nodeBinary{op: tokPow, pos: op.pos, left: base, right: exp}, nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.cur.kind {
	case tokNumber:
		n := nodeNumber{v: p.cur.num, pos: p.cur.pos}
		p.next()
		return n, nil
	case tokIdent:
		return p.parseIdent()
	case tokLParen:
		open := p.cur.pos
		p.next()
		ex, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, p.unclosed(open)
		}
		p.next()
		return ex, nil
	default:
		return nil, p.unexpected()
	}
}

func (p *parser) parseIdent() (node, error) {
	name := p.cur
	p.next()

	if v, ok := constants[name.text]; ok {
		return nodeNumber{v: v, pos: name.pos}, nil
	}
	fn, ok := functions[name.text]
	if !ok {
		return nil, newError(ErrUnknownToken, name.pos, "name '%s' is not defined", name.text)
	}
	if p.cur.kind != tokLParen {
		return nil, newError(ErrSyntax, name.pos, "function '%s' must be followed by '('", name.text)
	}
	open := p.cur.pos
	p.next()
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokRParen {
		return nil, p.unclosed(open)
	}
	p.next()
	return nodeCall{name: name.text, pos: name.pos, fn: fn, arg: arg}, nil
}

func (p *parser) unclosed(open int) error {
	if p.cur.kind == tokEOF {
		return newError(ErrSyntax, open, "'(' at position %d was never closed", open+1)
	}
	return p.unexpected()
}

func (p *parser) unexpected() error {
	switch p.cur.kind {
	case tokIllegal:
		return newError(ErrUnknownToken, p.cur.pos, "invalid character '%s' at position %d", p.cur.text, p.cur.pos+1)
	case tokEOF:
		return newError(ErrSyntax, p.cur.pos, "unexpected end of expression")
	case tokNumber, tokIdent:
		return newError(ErrSyntax, p.cur.pos, "unexpected %s '%s' at position %d", p.cur.kind, p.cur.text, p.cur.pos+1)
	default:
		return newError(ErrSyntax, p.cur.pos, "unexpected '%s' at position %d", p.cur.text, p.cur.pos+1)
	}
}
