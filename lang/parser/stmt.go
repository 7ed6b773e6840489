package parser

import (
	"github.com/nakala-lang/nakala/lang/ast"
	"github.com/nakala-lang/nakala/lang/token"
	"github.com/nakala-lang/nakala/lang/types"
)

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.PRINT:
		return p.parsePrintStmt()
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIfStmt()
	case token.UNTIL:
		return p.parseUntilStmt()
	case token.RET:
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parsePrintStmt() *ast.PrintStmt {
	start := p.expect(token.PRINT)
	x := p.parseExpr()
	end := p.expect(token.SEMI)
	return &ast.PrintStmt{Base: span(start, end), X: x}
}

func (p *parser) parseExprStmt() *ast.ExprStmt {
	x := p.parseExpr()
	end := p.expect(token.SEMI)
	return &ast.ExprStmt{Base: span(x.Span().Start, end), X: x}
}

// parseBlock parses `{ decl* }`, pushing and popping its own symtab scope
// to mirror the evaluator's begin_scope-per-block semantics.
func (p *parser) parseBlock() *ast.BlockStmt {
	start := p.expect(token.LBRACE)
	p.syms.LevelUp()
	var stmts []ast.Stmt
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		stmts = append(stmts, p.parseDecl())
	}
	p.syms.LevelDown()
	end := p.expect(token.RBRACE)
	return &ast.BlockStmt{Base: span(start, end), Stmts: stmts}
}

func (p *parser) parseIfStmt() *ast.IfStmt {
	start := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	if cond.Type().Kind != types.Bool && cond.Type().Kind != types.Any {
		p.error(cond.Span().Start, "condition must be bool, got "+cond.Type().String())
	}
	then := p.parseBlock()

	var elseBranch ast.Stmt
	end := then.Span().End
	if p.at(token.ELSE) {
		p.advance()
		if p.at(token.IF) {
			elseBranch = p.parseIfStmt()
		} else {
			elseBranch = p.parseBlock()
		}
		end = elseBranch.Span().End
	}

	return &ast.IfStmt{Base: span(start, end), Cond: cond, Then: then, Else: elseBranch}
}

func (p *parser) parseUntilStmt() *ast.UntilStmt {
	start := p.expect(token.UNTIL)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	if cond.Type().Kind != types.Bool && cond.Type().Kind != types.Any {
		p.error(cond.Span().Start, "condition must be bool, got "+cond.Type().String())
	}
	body := p.parseBlock()
	return &ast.UntilStmt{Base: span(start, body.Span().End), Cond: cond, Body: body}
}

func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.expect(token.RET)

	var value ast.Expr
	if !p.at(token.SEMI) {
		value = p.parseExpr()
	}
	end := p.expect(token.SEMI)

	if !p.inFunc {
		p.error(start, "ret outside of a function")
	} else {
		actual := types.TNull
		if value != nil {
			actual = value.Type()
		}
		if !types.Compat(p.funcReturnType, actual) {
			p.error(start, "incompatible return type: declared "+p.funcReturnType.String()+", got "+actual.String())
		}
	}

	return &ast.ReturnStmt{Base: span(start, end), Value: value}
}
