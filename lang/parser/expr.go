package parser

import (
	"strconv"

	"github.com/nakala-lang/nakala/lang/ast"
	"github.com/nakala-lang/nakala/lang/token"
	"github.com/nakala-lang/nakala/lang/types"
)

func (p *parser) parseExpr() ast.Expr { return p.parseAssignment() }

// parseAssignment implements `assignment := or ('=' assignment)?`. The
// left-hand side is parsed as an ordinary expression and then, if followed
// by '=', rewritten into the matching lvalue node (variable, property or
// index assignment) depending on its shape.
func (p *parser) parseAssignment() ast.Expr {
	left := p.parseOr()
	if !p.at(token.EQ) {
		return left
	}
	eqPos := p.val.Pos
	p.advance()
	value := p.parseAssignment()

	switch target := left.(type) {
	case *ast.VariableExpr:
		sym, ok := p.syms.Lookup(target.Name.Name)
		if !ok {
			p.error(target.Span().Start, "undeclared variable: "+target.Name.Name)
			return &ast.BadExpr{ExprBase: ast.ExprBase{Base: span(left.Span().Start, value.Span().End), Ty: types.TAny}}
		}
		if !types.Compat(sym.Type, value.Type()) {
			p.error(eqPos, "incompatible types: "+sym.Type.String()+" and "+value.Type().String())
		}
		sym.Type = value.Type()
		return &ast.AssignExpr{
			ExprBase: ast.ExprBase{Base: span(left.Span().Start, value.Span().End), Ty: types.TNull},
			Name:     target.Name,
			Value:    value,
		}

	case *ast.GetExpr:
		return &ast.SetExpr{
			ExprBase: ast.ExprBase{Base: span(left.Span().Start, value.Span().End), Ty: types.TNull},
			Receiver: target.Receiver,
			Name:     target.Name,
			Value:    value,
		}

	case *ast.IndexGetExpr:
		return &ast.IndexSetExpr{
			ExprBase: ast.ExprBase{Base: span(left.Span().Start, value.Span().End), Ty: types.TNull},
			List:     target.List,
			Index:    target.Index,
			Value:    value,
		}

	default:
		p.error(left.Span().Start, "invalid assignment target")
		return &ast.BadExpr{ExprBase: ast.ExprBase{Base: span(left.Span().Start, value.Span().End), Ty: types.TAny}}
	}
}

func (p *parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.at(token.OR) {
		opPos := p.val.Pos
		p.advance()
		right := p.parseAnd()
		ty, ok := types.Result(left.Type(), token.OR, right.Type())
		if !ok {
			p.error(opPos, "unsupported operation: "+left.Type().String()+" or "+right.Type().String())
			ty = types.TAny
		}
		left = &ast.LogicalExpr{
			ExprBase: ast.ExprBase{Base: span(left.Span().Start, right.Span().End), Ty: ty},
			Left:     left, Op: token.OR, OpPos: opPos, Right: right,
		}
	}
	return left
}

func (p *parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.at(token.AND) {
		opPos := p.val.Pos
		p.advance()
		right := p.parseEquality()
		ty, ok := types.Result(left.Type(), token.AND, right.Type())
		if !ok {
			p.error(opPos, "unsupported operation: "+left.Type().String()+" and "+right.Type().String())
			ty = types.TAny
		}
		left = &ast.LogicalExpr{
			ExprBase: ast.ExprBase{Base: span(left.Span().Start, right.Span().End), Ty: ty},
			Left:     left, Op: token.AND, OpPos: opPos, Right: right,
		}
	}
	return left
}

func (p *parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	for p.at(token.EQEQ) || p.at(token.BANGEQ) {
		op := p.tok
		opPos := p.val.Pos
		p.advance()
		right := p.parseComparison()
		left = &ast.BinaryExpr{
			ExprBase: ast.ExprBase{Base: span(left.Span().Start, right.Span().End), Ty: types.TBool},
			Left:     left, Op: op, OpPos: opPos, Right: right,
		}
	}
	return left
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseTerm()
	for p.at(token.LT) || p.at(token.LE) || p.at(token.GT) || p.at(token.GE) {
		op := p.tok
		opPos := p.val.Pos
		p.advance()
		right := p.parseTerm()
		left = p.mkBinary(left, op, opPos, right)
	}
	return left
}

func (p *parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.tok
		opPos := p.val.Pos
		p.advance()
		right := p.parseFactor()
		left = p.mkBinary(left, op, opPos, right)
	}
	return left
}

func (p *parser) parseFactor() ast.Expr {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) {
		op := p.tok
		opPos := p.val.Pos
		p.advance()
		right := p.parseUnary()
		left = p.mkBinary(left, op, opPos, right)
	}
	return left
}

func (p *parser) mkBinary(left ast.Expr, op token.Token, opPos token.Pos, right ast.Expr) ast.Expr {
	ty, ok := types.Result(left.Type(), op, right.Type())
	if !ok {
		p.error(opPos, "unsupported operation: "+left.Type().String()+" "+op.String()+" "+right.Type().String())
		ty = types.TAny
	}
	return &ast.BinaryExpr{
		ExprBase: ast.ExprBase{Base: span(left.Span().Start, right.Span().End), Ty: ty},
		Left:     left, Op: op, OpPos: opPos, Right: right,
	}
}

func (p *parser) parseUnary() ast.Expr {
	if p.tok.IsUnop() {
		op := p.tok
		opPos := p.val.Pos
		p.advance()
		operand := p.parseUnary()
		ty, ok := types.UnaryResult(op, operand.Type())
		if !ok {
			p.error(opPos, "unsupported unary operation: "+op.String()+" "+operand.Type().String())
			ty = types.TAny
		}
		return &ast.UnaryExpr{
			ExprBase: ast.ExprBase{Base: span(opPos, operand.Span().End), Ty: ty},
			Op:       op, OpPos: opPos, Operand: operand,
		}
	}
	return p.parseCall()
}

// parseCall implements `call := primary ( '(' args? ')' | '.' IDENT | '[' expr ']' )*`.
func (p *parser) parseCall() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.at(token.LPAREN):
			expr = p.finishCall(expr)
		case p.at(token.DOT):
			p.advance()
			name := p.parseIdent()
			if expr.Type().Kind != types.Any && expr.Type().Kind != types.Instance {
				p.error(expr.Span().Start, "only instances have properties, got "+expr.Type().String())
			}
			expr = &ast.GetExpr{
				ExprBase: ast.ExprBase{Base: span(expr.Span().Start, name.Pos.End), Ty: types.TAny},
				Receiver: expr, Name: name,
			}
		case p.at(token.LBRACK):
			p.advance()
			index := p.parseExpr()
			rbrack := p.expect(token.RBRACK)
			if expr.Type().Kind != types.List && expr.Type().Kind != types.Any {
				p.error(expr.Span().Start, "indexing requires a list, got "+expr.Type().String())
			}
			elemTy := types.TAny
			if expr.Type().Kind == types.List {
				elemTy = *expr.Type().Elem
			}
			expr = &ast.IndexGetExpr{
				ExprBase: ast.ExprBase{Base: span(expr.Span().Start, rbrack), Ty: elemTy},
				List:     expr, Index: index, RBrack: rbrack,
			}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	if !p.at(token.RPAREN) {
		args = append(args, p.parseExpr())
		for p.at(token.COMMA) {
			p.advance()
			args = append(args, p.parseExpr())
		}
	}
	rparen := p.expect(token.RPAREN)

	ty := p.checkCallType(callee, args)
	return &ast.CallExpr{
		ExprBase: ast.ExprBase{Base: span(callee.Span().Start, rparen), Ty: ty},
		Callee:   callee, Args: args, RParen: rparen,
	}
}

// checkCallType resolves the static type of a call per §4.3: a Function
// callee's type is the return type recorded in its function type (the
// declared type, refined to the trailing `ret`'s type once the function's
// body has been parsed), after arity/param checks; a
// Class callee yields Instance(name); Any defers entirely to runtime;
// anything else is uncallable. GetExpr callees are always typed Any (dynamic
// property reads), so calls through them defer to runtime too.
func (p *parser) checkCallType(callee ast.Expr, args []ast.Expr) types.Type {
	ct := callee.Type()
	switch ct.Kind {
	case types.Any:
		return types.TAny
	case types.Function:
		if len(ct.Params) != len(args) {
			p.error(callee.Span().Start, "arity mismatch: expected "+strconv.Itoa(len(ct.Params))+" arguments, got "+strconv.Itoa(len(args)))
			return *ct.Returns
		}
		for i, a := range args {
			if !types.Compat(ct.Params[i], a.Type()) {
				p.error(a.Span().Start, "incompatible argument type: expected "+ct.Params[i].String()+", got "+a.Type().String())
			}
		}
		return *ct.Returns
	case types.Class:
		return types.NewInstance(ct.Name)
	default:
		p.error(callee.Span().Start, "uncallable expression of type "+ct.String())
		return types.TAny
	}
}

func (p *parser) parsePrimary() ast.Expr {
	pos := p.val.Pos
	switch p.tok {
	case token.TRUE:
		p.advance()
		return &ast.LiteralExpr{ExprBase: ast.ExprBase{Base: span(pos, pos+4), Ty: types.TBool}, Kind: token.TRUE, Bool: true}
	case token.FALSE:
		p.advance()
		return &ast.LiteralExpr{ExprBase: ast.ExprBase{Base: span(pos, pos+5), Ty: types.TBool}, Kind: token.FALSE, Bool: false}
	case token.NULLKW:
		p.advance()
		return &ast.LiteralExpr{ExprBase: ast.ExprBase{Base: span(pos, pos+4), Ty: types.TNull}, Kind: token.NULLKW}
	case token.INT:
		v := p.val
		p.advance()
		return &ast.LiteralExpr{ExprBase: ast.ExprBase{Base: span(pos, pos+token.Pos(len(v.Raw))), Ty: types.TInt}, Kind: token.INT, Int: v.Int}
	case token.FLOAT:
		v := p.val
		p.advance()
		return &ast.LiteralExpr{ExprBase: ast.ExprBase{Base: span(pos, pos+token.Pos(len(v.Raw))), Ty: types.TFloat}, Kind: token.FLOAT, Float: v.Float}
	case token.STRING:
		v := p.val
		p.advance()
		return &ast.LiteralExpr{ExprBase: ast.ExprBase{Base: span(pos, pos+token.Pos(len(v.Raw))), Ty: types.TString}, Kind: token.STRING, Str: v.String}
	case token.THIS:
		p.advance()
		ty := types.TAny
		if sym, ok := p.syms.Lookup("this"); ok {
			ty = sym.Type
		} else {
			p.error(pos, "this used outside of a method")
		}
		return &ast.ThisExpr{ExprBase: ast.ExprBase{Base: span(pos, pos+4), Ty: ty}}
	case token.IDENT:
		name := p.parseIdent()
		sym, ok := p.syms.Lookup(name.Name)
		if !ok {
			p.error(name.Pos.Start, "undeclared variable: "+name.Name)
			return &ast.VariableExpr{ExprBase: ast.ExprBase{Base: span(name.Pos.Start, name.Pos.End), Ty: types.TAny}, Name: name}
		}
		return &ast.VariableExpr{ExprBase: ast.ExprBase{Base: span(name.Pos.Start, name.Pos.End), Ty: sym.Type}, Name: name}
	case token.LPAREN:
		p.advance()
		inner := p.parseExpr()
		rparen := p.expect(token.RPAREN)
		return &ast.GroupingExpr{ExprBase: ast.ExprBase{Base: span(pos, rparen), Ty: inner.Type()}, Inner: inner}
	case token.LBRACK:
		return p.parseListExpr()
	default:
		p.errorExpected(pos, "an expression")
		panic(errPanicMode)
	}
}

func (p *parser) parseListExpr() *ast.ListExpr {
	start := p.expect(token.LBRACK)
	var elems []ast.Expr
	var elemTy types.Type
	if !p.at(token.RBRACK) {
		elems = append(elems, p.parseExpr())
		elemTy = elems[0].Type()
		for p.at(token.COMMA) {
			p.advance()
			e := p.parseExpr()
			if !types.Compat(elemTy, e.Type()) {
				p.error(e.Span().Start, "incompatible list element type: "+elemTy.String()+" and "+e.Type().String())
			}
			elems = append(elems, e)
		}
	} else {
		elemTy = types.TAny
	}
	end := p.expect(token.RBRACK)
	return &ast.ListExpr{
		ExprBase: ast.ExprBase{Base: span(start, end), Ty: types.NewList(elemTy)},
		Elems:    elems,
	}
}
