package parser

import (
	"strconv"

	"lark/internal/diag"
	"lark/internal/source"
	"lark/internal/token"
)

// exprParser parses a function body's token stream into an ExprNode
// tree. It never returns an error from its public entry point: a
// malformed body collapses to ErrorExpr with a diagnostic recorded in
// bag, so one bad function never blocks checking the rest of the file
// (§7, total diagnostics).
type exprParser struct {
	s   *stream
	bag *diag.Bag
}

func parseBody(toks []token.Token, bag *diag.Bag) ExprNode {
	p := &exprParser{s: newStream(toks), bag: bag}
	return p.block()
}

func (p *exprParser) errorf(sp source.Span, code diag.Code, label string) ExprNode {
	d := diag.NewError(code, sp, label)
	p.bag.Add(&d)
	return ErrorExpr{base{sp}}
}

// block parses a brace-delimited statement list, including the braces.
func (p *exprParser) block() ExprNode {
	start := p.s.span()
	if !p.s.at("{") {
		return p.errorf(start, diag.SynUnexpectedToken, "expected '{'")
	}
	p.s.bump()
	body := p.stmts()
	if !p.s.at("}") {
		return p.errorf(p.s.span(), diag.SynUnclosedDelim, "expected '}'")
	}
	p.s.bump()
	return body
}

// stmts parses the body of a block, without its braces.
func (p *exprParser) stmts() ExprNode {
	start := p.s.span()
	if p.s.at("}") || p.s.atEOF() {
		return UnitExpr{base{start}}
	}
	if p.s.at("let") {
		p.s.bump()
		nameTok := p.s.peek()
		if nameTok.Kind != token.Identifier {
			return p.errorf(nameTok.Span, diag.SynExpectedIdent, "expected a name after 'let'")
		}
		p.s.bump()
		var typeName string
		if p.s.at(":") {
			p.s.bump()
			tyTok := p.s.peek()
			if tyTok.Kind != token.Identifier {
				return p.errorf(tyTok.Span, diag.SynExpectedIdent, "expected a type name after ':'")
			}
			p.s.bump()
			typeName = tyTok.Text
		}
		if !p.s.at("=") {
			return p.errorf(p.s.span(), diag.SynUnexpectedToken, "expected '=' in let binding")
		}
		p.s.bump()
		init := p.assignOrExpr()
		if p.s.at(";") {
			p.s.bump()
		}
		body := p.stmts()
		return LetExpr{base{start.To(body.Span())}, nameTok.Text, typeName, init, body}
	}

	e := p.assignOrExpr()
	if p.s.at(";") {
		p.s.bump()
		rest := p.stmts()
		return SeqExpr{base{e.Span().To(rest.Span())}, e, rest}
	}
	if p.s.newlineBefore() && !p.s.at("}") && !p.s.atEOF() {
		rest := p.stmts()
		return SeqExpr{base{e.Span().To(rest.Span())}, e, rest}
	}
	return e
}

func (p *exprParser) assignOrExpr() ExprNode {
	lhs := p.binary(0)
	if p.s.at("=") {
		p.s.bump()
		rhs := p.assignOrExpr()
		return AssignExpr{base{lhs.Span().To(rhs.Span())}, lhs, rhs}
	}
	return lhs
}

var precedence = map[string]int{
	"==": 1,
	"+":  2,
	"-":  2,
	"*":  3,
	"/":  3,
}

func (p *exprParser) binary(minPrec int) ExprNode {
	lhs := p.unaryPostfix()
	for {
		tok := p.s.peek()
		if tok.Kind != token.Sigil {
			return lhs
		}
		prec, ok := precedence[tok.Text]
		if !ok || prec < minPrec {
			return lhs
		}
		op := tok.Text
		p.s.bump()
		rhs := p.binary(prec + 1)
		lhs = BinaryExpr{base{lhs.Span().To(rhs.Span())}, op, lhs, rhs}
	}
}

func (p *exprParser) unaryPostfix() ExprNode {
	e := p.primary()
	for {
		switch {
		case p.s.at("."):
			p.s.bump()
			nameTok := p.s.peek()
			if nameTok.Kind != token.Identifier {
				return p.errorf(nameTok.Span, diag.SynExpectedIdent, "expected a field or method name after '.'")
			}
			p.s.bump()
			if p.s.at("(") {
				args, end := p.argList()
				e = MethodCallExpr{base{e.Span().To(end)}, e, nameTok.Text, args}
			} else {
				e = FieldExpr{base{e.Span().To(nameTok.Span)}, e, nameTok.Text}
			}
		case p.s.at("("):
			args, end := p.argList()
			e = CallExpr{base{e.Span().To(end)}, e, args}
		default:
			return e
		}
	}
}

// argList parses a parenthesized, comma-separated argument list,
// including the parens, and returns the closing paren's span.
func (p *exprParser) argList() ([]ExprNode, source.Span) {
	p.s.bump() // '('
	var args []ExprNode
	if !p.s.at(")") {
		for {
			args = append(args, p.assignOrExpr())
			if p.s.at(",") {
				p.s.bump()
				continue
			}
			break
		}
	}
	end := p.s.span()
	if p.s.at(")") {
		p.s.bump()
	}
	return args, end
}

func (p *exprParser) primary() ExprNode {
	tok := p.s.peek()
	switch {
	case tok.Kind == token.Number:
		p.s.bump()
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return p.errorf(tok.Span, diag.SynUnexpectedToken, "malformed integer literal")
		}
		return LiteralExpr{base{tok.Span}, LiteralInt, n, false}
	case tok.Kind == token.Identifier && tok.Text == "true":
		p.s.bump()
		return LiteralExpr{base{tok.Span}, LiteralBool, 0, true}
	case tok.Kind == token.Identifier && tok.Text == "false":
		p.s.bump()
		return LiteralExpr{base{tok.Span}, LiteralBool, 0, false}
	case tok.Kind == token.Identifier && tok.Text == "if":
		return p.ifExpr()
	case tok.Kind == token.Identifier:
		p.s.bump()
		return IdentExpr{base{tok.Span}, tok.Text}
	case p.s.at("("):
		p.s.bump()
		if p.s.at(")") {
			sp := p.s.span()
			p.s.bump()
			return UnitExpr{base{tok.Span.To(sp)}}
		}
		e := p.assignOrExpr()
		if p.s.at(")") {
			p.s.bump()
		}
		return e
	default:
		p.s.bump()
		return p.errorf(tok.Span, diag.SynUnexpectedToken, "expected an expression")
	}
}

func (p *exprParser) ifExpr() ExprNode {
	start := p.s.span()
	p.s.bump() // 'if'
	cond := p.assignOrExpr()
	then := p.block()
	if !p.s.at("else") {
		return p.errorf(p.s.span(), diag.SynUnexpectedToken, "expected 'else': if is an expression and both arms are required")
	}
	p.s.bump()
	elseBranch := p.block()
	return IfExpr{base{start.To(elseBranch.Span())}, cond, then, elseBranch}
}
