package adapter

import (
	"fmt"

	m "gooze.dev/pkg/morph/internal/model"
)

// scriptParser is a recursive-descent parser over a token slice. It stops at
// the first syntax error.
type scriptParser struct {
	tokens []scriptToken
	pos    int
	tok    scriptToken
	spans  map[*m.Literal]m.Span
	err    *m.ParseError
}

func parseScript(src []byte) (*m.Literal, map[*m.Literal]m.Span, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, nil, err
	}

	p := &scriptParser{tokens: tokens, spans: make(map[*m.Literal]m.Span)}
	p.tok = tokens[0]

	program := p.program()
	if p.err != nil {
		return nil, nil, p.err
	}

	return program, p.spans, nil
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *scriptParser) next() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}

	p.tok = p.tokens[p.pos]
}

func (p *scriptParser) prev() scriptToken {
	if p.pos == 0 {
		return p.tokens[0]
	}

	return p.tokens[p.pos-1]
}

// is reports whether the current token is the punctuation or keyword text.
func (p *scriptParser) is(text string) bool {
	return (p.tok.kind == tokPunct || p.tok.kind == tokKeyword) && p.tok.text == text
}

// got consumes the current token if it is text.
func (p *scriptParser) got(text string) bool {
	if p.is(text) {
		p.next()
		return true
	}

	return false
}

// want consumes text or reports a syntax error.
func (p *scriptParser) want(text string) {
	if !p.got(text) {
		p.syntaxError("expected " + text)
	}
}

func (p *scriptParser) failed() bool {
	return p.err != nil
}

func (p *scriptParser) syntaxError(msg string) {
	if p.err != nil {
		return
	}

	found := p.tok.text
	if p.tok.kind == tokEOF {
		found = "end of input"
	}

	p.err = &m.ParseError{
		Line:    p.tok.line,
		Column:  p.tok.column,
		Offset:  p.tok.start,
		Message: fmt.Sprintf("%s, found %q", msg, found),
	}

	// Park on EOF so every production unwinds.
	p.pos = len(p.tokens) - 1
	p.tok = p.tokens[p.pos]
}

// node builds a literal and records its span.
func (p *scriptParser) node(kind string, start, end int, children ...m.Term) *m.Literal {
	lit := m.NewLiteral(kind, children...)
	p.spans[lit] = m.Span{Start: start, End: end}

	return lit
}

// leaf wraps the current token text as kind(text) and consumes the token.
func (p *scriptParser) leaf(kind string) *m.Literal {
	tok := p.tok
	text := p.node(tok.text, tok.start, tok.end)
	p.next()

	return p.node(kind, tok.start, tok.end, text)
}

func (p *scriptParser) spanOf(term m.Term) m.Span {
	if lit, ok := term.(*m.Literal); ok {
		return p.spans[lit]
	}

	return m.Span{}
}

// ----------------------------------------------------------------------------
// Statements

func (p *scriptParser) program() *m.Literal {
	var statements []m.Term

	for p.tok.kind != tokEOF && !p.failed() {
		statements = append(statements, p.statement())
	}

	end := p.tok.start
	if len(statements) > 0 {
		end = p.spanOf(statements[len(statements)-1]).End
	}

	start := 0
	if len(statements) > 0 {
		start = p.spanOf(statements[0]).Start
	}

	return p.node(KindProgram, start, end, statements...)
}

func (p *scriptParser) statement() m.Term {
	start := p.tok.start

	switch {
	case p.is("{"):
		return p.block()
	case p.is("var"), p.is("let"), p.is("const"):
		decl := p.declaration()
		p.semicolon()

		return p.node(decl.Name(), start, p.prev().end, decl.Children()...)
	case p.is("function"):
		return p.function(true)
	case p.is("if"):
		return p.ifStatement()
	case p.is("while"):
		p.next()
		p.want("(")
		cond := p.expr()
		p.want(")")
		body := p.statement()

		return p.node(KindWhile, start, p.spanOf(body).End, cond, body)
	case p.is("for"):
		return p.forStatement()
	case p.is("return"):
		p.next()

		if p.is(";") || p.is("}") || p.tok.kind == tokEOF {
			p.semicolon()
			return p.node(KindReturn, start, p.prev().end)
		}

		value := p.expr()
		p.semicolon()

		return p.node(KindReturn, start, p.prev().end, value)
	case p.is("break"), p.is("continue"):
		kind := KindBreak
		if p.is("continue") {
			kind = KindContinue
		}

		p.next()
		p.semicolon()

		return p.node(kind, start, p.prev().end)
	case p.is(";"):
		p.next()
		return p.node(KindEmpty, start, p.prev().end)
	}

	value := p.expr()
	p.semicolon()

	return p.node(KindExprStmt, start, p.prev().end, value)
}

// semicolon accepts an explicit terminator, or none before "}" and end of input.
func (p *scriptParser) semicolon() {
	if p.got(";") || p.is("}") || p.tok.kind == tokEOF {
		return
	}

	p.syntaxError("expected ;")
}

func (p *scriptParser) block() *m.Literal {
	start := p.tok.start
	p.want("{")

	var statements []m.Term
	for !p.is("}") && p.tok.kind != tokEOF && !p.failed() {
		statements = append(statements, p.statement())
	}

	p.want("}")

	return p.node(KindBlock, start, p.prev().end, statements...)
}

// declaration parses "var x [= e]" without the terminator.
func (p *scriptParser) declaration() *m.Literal {
	start := p.tok.start
	kind := declarationKinds[p.tok.text]
	p.next()

	if p.tok.kind != tokIdent {
		p.syntaxError("expected identifier")
		return p.node(kind, start, start)
	}

	target := p.leaf(KindTarget)

	if !p.got("=") {
		return p.node(kind, start, p.prev().end, target)
	}

	value := p.assignment()

	return p.node(kind, start, p.prev().end, target, value)
}

func (p *scriptParser) ifStatement() *m.Literal {
	start := p.tok.start
	p.next()
	p.want("(")
	cond := p.expr()
	p.want(")")
	then := p.statement()

	if !p.got("else") {
		return p.node(KindIf, start, p.spanOf(then).End, cond, then)
	}

	otherwise := p.statement()

	return p.node(KindIf, start, p.spanOf(otherwise).End, cond, then, otherwise)
}

func (p *scriptParser) forStatement() *m.Literal {
	start := p.tok.start
	p.next()
	p.want("(")

	var init m.Term

	switch {
	case p.is(";"):
		init = p.node(KindEmpty, p.tok.start, p.tok.start)
	case p.is("var"), p.is("let"), p.is("const"):
		init = p.declaration()
	default:
		init = p.expr()
	}

	p.want(";")
	cond := p.optionalExpr(";")
	p.want(";")
	update := p.optionalExpr(")")
	p.want(")")
	body := p.statement()

	return p.node(KindFor, start, p.spanOf(body).End, init, cond, update, body)
}

func (p *scriptParser) optionalExpr(terminator string) m.Term {
	if p.is(terminator) {
		return p.node(KindEmpty, p.tok.start, p.tok.start)
	}

	return p.expr()
}

// function parses a declaration (named, statement position) or an expression.
func (p *scriptParser) function(declaration bool) *m.Literal {
	start := p.tok.start
	p.want("function")

	var children []m.Term

	if p.tok.kind == tokIdent {
		children = append(children, p.leaf(KindTarget))
	} else if declaration {
		p.syntaxError("expected function name")
	}

	paramsStart := p.tok.start
	p.want("(")

	var params []m.Term

	for !p.is(")") && !p.failed() {
		if p.tok.kind != tokIdent {
			p.syntaxError("expected parameter name")
			break
		}

		params = append(params, p.leaf(KindParameter))

		if !p.got(",") {
			break
		}
	}

	p.want(")")

	children = append(children, p.node(KindParams, paramsStart, p.prev().end, params...), p.block())

	return p.node(KindFunction, start, p.prev().end, children...)
}

// ----------------------------------------------------------------------------
// Expressions

func (p *scriptParser) expr() m.Term {
	return p.assignment()
}

func (p *scriptParser) assignment() m.Term {
	left := p.conditional()

	op, ok := assignByText[p.tok.text]
	if !ok || p.tok.kind != tokPunct {
		return left
	}

	target := p.assignTarget(left)
	p.next()
	value := p.assignment()

	return p.node(op.kind, p.spanOf(left).Start, p.spanOf(value).End, target, value)
}

// assignTarget turns a parsed left-hand side into an assignable node.
func (p *scriptParser) assignTarget(left m.Term) m.Term {
	lit, ok := left.(*m.Literal)
	if !ok {
		p.syntaxError("invalid assignment target")
		return left
	}

	switch lit.Name() {
	case KindName:
		return p.node(KindTarget, p.spans[lit].Start, p.spans[lit].End, lit.Child(0))
	case KindDot, KindIndex:
		return lit
	}

	p.syntaxError("invalid assignment target")

	return left
}

func (p *scriptParser) conditional() m.Term {
	cond := p.binary(precConditional)
	if !p.got("?") {
		return cond
	}

	then := p.assignment()
	p.want(":")
	otherwise := p.assignment()

	return p.node(KindCond, p.spanOf(cond).Start, p.spanOf(otherwise).End, cond, then, otherwise)
}

// binary parses a left-associative binary expression whose operators bind
// tighter than prec (precedence climbing).
func (p *scriptParser) binary(prec int) m.Term {
	left := p.unary()

	for !p.failed() {
		op, ok := binaryByText[p.tok.text]
		if !ok || p.tok.kind != tokPunct || op.prec <= prec {
			return left
		}

		p.next()
		right := p.binary(op.prec)
		left = p.node(op.kind, p.spanOf(left).Start, p.spanOf(right).End, left, right)
	}

	return left
}

func (p *scriptParser) unary() m.Term {
	if op, ok := unaryByText[p.tok.text]; ok && p.tok.kind == tokPunct {
		start := p.tok.start
		p.next()
		operand := p.unary()

		return p.node(op.kind, start, p.spanOf(operand).End, operand)
	}

	return p.postfix()
}

func (p *scriptParser) postfix() m.Term {
	x := p.member()

	if op, ok := postfixByText[p.tok.text]; ok && p.tok.kind == tokPunct {
		p.next()
		return p.node(op.kind, p.spanOf(x).Start, p.prev().end, x)
	}

	return x
}

func (p *scriptParser) member() m.Term {
	x := p.primary()

	for !p.failed() {
		start := p.spanOf(x).Start

		switch {
		case p.is("("):
			args := p.arguments()
			x = p.node(KindCall, start, p.prev().end, x, args)
		case p.is("."):
			p.next()

			if p.tok.kind != tokIdent && p.tok.kind != tokKeyword {
				p.syntaxError("expected property name")
				return x
			}

			property := p.leaf(KindProperty)
			x = p.node(KindDot, start, p.prev().end, x, property)
		case p.is("["):
			p.next()
			index := p.expr()
			p.want("]")
			x = p.node(KindIndex, start, p.prev().end, x, index)
		default:
			return x
		}
	}

	return x
}

func (p *scriptParser) arguments() *m.Literal {
	start := p.tok.start
	p.want("(")

	var args []m.Term

	for !p.is(")") && !p.failed() {
		args = append(args, p.assignment())

		if !p.got(",") {
			break
		}
	}

	p.want(")")

	return p.node(KindArguments, start, p.prev().end, args...)
}

func (p *scriptParser) primary() m.Term {
	start := p.tok.start

	switch p.tok.kind {
	case tokNumber:
		return p.leaf(KindNumber)
	case tokString:
		return p.leaf(KindString)
	case tokIdent:
		return p.leaf(KindName)
	case tokKeyword:
		if kind, ok := keywordKinds[p.tok.text]; ok {
			return p.leaf(kind)
		}

		if p.is("function") {
			return p.function(false)
		}
	case tokPunct:
		switch p.tok.text {
		case "(":
			p.next()
			inner := p.expr()
			p.want(")")

			return p.node(KindParen, start, p.prev().end, inner)
		case "[":
			return p.array()
		case "{":
			return p.object()
		}
	}

	p.syntaxError("unexpected token")

	return p.node(KindEmpty, start, start)
}

func (p *scriptParser) array() m.Term {
	start := p.tok.start
	p.want("[")

	var elements []m.Term

	for !p.is("]") && !p.failed() {
		elements = append(elements, p.assignment())

		if !p.got(",") {
			break
		}
	}

	p.want("]")

	return p.node(KindArray, start, p.prev().end, elements...)
}

func (p *scriptParser) object() m.Term {
	start := p.tok.start
	p.want("{")

	var pairs []m.Term

	for !p.is("}") && !p.failed() {
		pairStart := p.tok.start

		if p.tok.kind != tokIdent && p.tok.kind != tokString && p.tok.kind != tokNumber && p.tok.kind != tokKeyword {
			p.syntaxError("expected property key")
			break
		}

		keyTok := p.tok
		key := p.leaf(KindKey)

		var value m.Term
		if p.got(":") {
			value = p.assignment()
		} else if keyTok.kind == tokIdent {
			// Shorthand property: {name} stands for {name: name}.
			text := p.node(keyTok.text, keyTok.start, keyTok.end)
			value = p.node(KindName, keyTok.start, keyTok.end, text)
		} else {
			p.syntaxError("expected :")
			break
		}

		pairs = append(pairs, p.node(KindPair, pairStart, p.prev().end, key, value))

		if !p.got(",") {
			break
		}
	}

	p.want("}")

	return p.node(KindObject, start, p.prev().end, pairs...)
}
