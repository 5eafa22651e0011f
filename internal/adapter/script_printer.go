package adapter

import (
	"fmt"
	"strings"

	m "gooze.dev/pkg/morph/internal/model"
)

const indentUnit = "  "

// scriptPrinter renders term trees in canonical script syntax. Parentheses are
// added wherever a child binds more loosely than its position requires.
type scriptPrinter struct {
	b     strings.Builder
	depth int
	err   error
}

func printScript(term m.Term) (string, error) {
	p := &scriptPrinter{}

	lit, ok := term.(*m.Literal)
	if !ok {
		return "", fmt.Errorf("cannot print %s: not a concrete node", term)
	}

	if isStatementKind(lit.Name()) {
		p.statement(lit)
	} else {
		p.expr(lit, precLowest)
	}

	if p.err != nil {
		return "", p.err
	}

	return p.b.String(), nil
}

func isStatementKind(kind string) bool {
	switch kind {
	case KindProgram, KindVar, KindLet, KindConst, KindIf, KindWhile, KindFor, KindBlock,
		KindReturn, KindBreak, KindContinue, KindEmpty, KindExprStmt:
		return true
	}

	return false
}

func (p *scriptPrinter) write(parts ...string) {
	for _, part := range parts {
		p.b.WriteString(part)
	}
}

func (p *scriptPrinter) fail(format string, args ...any) {
	if p.err == nil {
		p.err = fmt.Errorf(format, args...)
	}
}

func (p *scriptPrinter) literal(term m.Term) *m.Literal {
	lit, ok := term.(*m.Literal)
	if !ok {
		p.fail("cannot print %s: not a concrete node", term)
		return m.NewLiteral(KindEmpty)
	}

	return lit
}

func (p *scriptPrinter) newline() {
	p.write("\n", strings.Repeat(indentUnit, p.depth))
}

// ----------------------------------------------------------------------------
// Statements

//nolint:cyclop // One case per statement kind.
func (p *scriptPrinter) statement(term m.Term) {
	lit := p.literal(term)

	switch kind := lit.Name(); {
	case kind == KindProgram:
		for i, child := range lit.Children() {
			if i > 0 {
				p.write("\n")
			}

			p.statement(child)
		}
	case isDeclaration(kind):
		p.declaration(lit)
		p.write(";")
	case kind == KindFunction:
		p.function(lit)
	case kind == KindIf:
		p.write("if(")
		p.expr(p.child(lit, 0), precLowest)
		p.write(") ")
		p.statement(p.child(lit, 1))

		if lit.Len() > 2 {
			p.write(" else ")
			p.statement(lit.Child(2))
		}
	case kind == KindWhile:
		p.write("while(")
		p.expr(p.child(lit, 0), precLowest)
		p.write(") ")
		p.statement(p.child(lit, 1))
	case kind == KindFor:
		p.forStatement(lit)
	case kind == KindBlock:
		p.block(lit)
	case kind == KindReturn:
		p.write("return")

		if lit.Len() > 0 {
			p.write(" ")
			p.expr(lit.Child(0), precLowest)
		}

		p.write(";")
	case kind == KindBreak:
		p.write("break;")
	case kind == KindContinue:
		p.write("continue;")
	case kind == KindEmpty:
		p.write(";")
	case kind == KindExprStmt:
		p.expressionStatement(p.child(lit, 0))
	default:
		p.expressionStatement(lit)
	}
}

// expressionStatement guards against an expression being read back as a
// block or a function declaration.
func (p *scriptPrinter) expressionStatement(term m.Term) {
	if lit, ok := term.(*m.Literal); ok && (lit.Name() == KindObject || lit.Name() == KindFunction) {
		p.write("(")
		p.expr(lit, precLowest)
		p.write(");")

		return
	}

	p.expr(term, precLowest)
	p.write(";")
}

func (p *scriptPrinter) child(lit *m.Literal, i int) m.Term {
	if i >= lit.Len() {
		p.fail("%s has no child %d", lit.Name(), i)
		return m.NewLiteral(KindEmpty)
	}

	return lit.Child(i)
}

func (p *scriptPrinter) declaration(lit *m.Literal) {
	p.write(declarationKeyword(lit.Name()), " ")
	p.expr(p.child(lit, 0), precLowest)

	if lit.Len() > 1 {
		p.write(" = ")
		p.expr(lit.Child(1), precAssign)
	}
}

func (p *scriptPrinter) block(lit *m.Literal) {
	if lit.Len() == 0 {
		p.write("{}")
		return
	}

	p.write("{")
	p.depth++

	for _, child := range lit.Children() {
		p.newline()
		p.statement(child)
	}

	p.depth--
	p.newline()
	p.write("}")
}

func (p *scriptPrinter) forStatement(lit *m.Literal) {
	if lit.Len() != 4 {
		p.fail("%s needs 4 children, has %d", lit.Name(), lit.Len())
		return
	}

	p.write("for(")

	for i := range 3 {
		if i > 0 {
			p.write("; ")
		}

		part := p.literal(lit.Child(i))

		switch {
		case part.Name() == KindEmpty:
		case isDeclaration(part.Name()):
			p.declaration(part)
		default:
			p.expr(part, precLowest)
		}
	}

	p.write(") ")
	p.statement(lit.Child(3))
}

func (p *scriptPrinter) function(lit *m.Literal) {
	p.write("function")

	children := lit.Children()
	if len(children) == 3 {
		p.write(" ")
		p.expr(children[0], precLowest)
		children = children[1:]
	}

	if len(children) != 2 {
		p.fail("malformed %s", lit.Name())
		return
	}

	p.write("(")
	p.list(p.literal(children[0]).Children(), precAssign)
	p.write(") ")
	p.block(p.literal(children[1]))
}

// ----------------------------------------------------------------------------
// Expressions

func (p *scriptPrinter) list(terms []m.Term, prec int) {
	for i, term := range terms {
		if i > 0 {
			p.write(", ")
		}

		p.expr(term, prec)
	}
}

// expr prints term, parenthesized when it binds looser than prec.
func (p *scriptPrinter) expr(term m.Term, prec int) {
	lit := p.literal(term)

	if precedenceOf(lit) < prec {
		p.write("(")
		p.bareExpr(lit)
		p.write(")")

		return
	}

	p.bareExpr(lit)
}

// lexeme writes the token under a leaf kind verbatim, whatever its text. A
// derived replacement may nest a whole node there instead.
func (p *scriptPrinter) lexeme(term m.Term) {
	token := p.literal(term)
	if !token.IsLeaf() {
		p.expr(token, precLowest)
		return
	}

	p.write(token.Name())
}

func isCollectionKind(kind string) bool {
	switch kind {
	case KindArray, KindObject, KindArguments:
		return true
	}

	return false
}

func precedenceOf(lit *m.Literal) int {
	if op, ok := operatorKinds[lit.Name()]; ok && lit.Len() > 0 {
		return op.prec
	}

	switch lit.Name() {
	case KindCond:
		return precConditional
	case KindCall, KindDot, KindIndex:
		return precMember
	}

	return precPrimary
}

//nolint:cyclop // One case per expression kind.
func (p *scriptPrinter) bareExpr(lit *m.Literal) {
	kind := lit.Name()

	// A childless node is a lexeme, unless it is a collection that may be empty.
	if lit.IsLeaf() && !isCollectionKind(kind) {
		p.write(kind)
		return
	}

	if op, ok := operatorKinds[kind]; ok {
		p.operator(lit, op)
		return
	}

	switch kind {
	case KindNumber, KindString, KindName, KindTrue, KindFalse, KindNull, KindThis,
		KindTarget, KindParameter, KindProperty, KindKey:
		p.lexeme(p.child(lit, 0))
	case KindCond:
		p.expr(p.child(lit, 0), precLogicalOr)
		p.write(" ? ")
		p.expr(p.child(lit, 1), precAssign)
		p.write(" : ")
		p.expr(p.child(lit, 2), precAssign)
	case KindCall:
		p.expr(p.child(lit, 0), precMember)
		p.write("(")
		p.list(p.literal(p.child(lit, 1)).Children(), precAssign)
		p.write(")")
	case KindArguments:
		p.write("(")
		p.list(lit.Children(), precAssign)
		p.write(")")
	case KindDot:
		p.expr(p.child(lit, 0), precMember)
		p.write(".")
		p.expr(p.child(lit, 1), precLowest)
	case KindIndex:
		p.expr(p.child(lit, 0), precMember)
		p.write("[")
		p.expr(p.child(lit, 1), precLowest)
		p.write("]")
	case KindParen:
		p.write("(")
		p.expr(p.child(lit, 0), precLowest)
		p.write(")")
	case KindArray:
		p.write("[")
		p.list(lit.Children(), precAssign)
		p.write("]")
	case KindObject:
		p.object(lit)
	case KindPair:
		p.expr(p.child(lit, 0), precLowest)
		p.write(": ")
		p.expr(p.child(lit, 1), precAssign)
	case KindFunction:
		p.function(lit)
	default:
		if isStatementKind(kind) {
			p.statement(lit)
			return
		}

		p.fail("cannot print node kind %q", kind)
	}
}

func (p *scriptPrinter) object(lit *m.Literal) {
	if lit.Len() == 0 {
		p.write("{}")
		return
	}

	p.write("{ ")

	for i, pair := range lit.Children() {
		if i > 0 {
			p.write(", ")
		}

		p.expr(pair, precLowest)
	}

	p.write(" }")
}

func (p *scriptPrinter) operator(lit *m.Literal, op operator) {
	switch {
	case op.prec == precAssign:
		p.expr(p.child(lit, 0), precMember)
		p.write(" ", op.text, " ")
		p.expr(p.child(lit, 1), precAssign)
	case op.prec == precPostfix:
		p.expr(p.child(lit, 0), precMember)
		p.write(op.text)
	case lit.Len() == 1:
		operand := &scriptPrinter{depth: p.depth}
		operand.expr(lit.Child(0), precUnary)

		if operand.err != nil {
			p.fail("%w", operand.err)
			return
		}

		rendered := operand.b.String()
		p.write(op.text)

		// "- -x" must not collapse into "--x".
		if (op.text == "-" || op.text == "+") && strings.HasPrefix(rendered, op.text) {
			p.write(" ")
		}

		p.write(rendered)
	default:
		p.expr(p.child(lit, 0), op.prec)
		p.write(" ", op.text, " ")
		p.expr(p.child(lit, 1), op.prec+1)
	}
}
