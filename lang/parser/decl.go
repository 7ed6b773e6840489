package parser

import (
	"github.com/nakala-lang/nakala/lang/ast"
	"github.com/nakala-lang/nakala/lang/symtab"
	"github.com/nakala-lang/nakala/lang/token"
	"github.com/nakala-lang/nakala/lang/types"
)

func span(start, end token.Pos) ast.Base { return ast.Base{Span_: token.Span{Start: start, End: end}} }

func (p *parser) parseIdent() ast.Ident {
	pos := p.val.Pos
	name := p.val.Raw
	p.expect(token.IDENT)
	return ast.Ident{Name: name, Pos: token.Span{Start: pos, End: pos + token.Pos(len(name))}}
}

// parseType parses one of the primitive type keywords. null is accepted
// here too (the grammar allows it in a type position even though NULLKW is
// otherwise a value literal).
func (p *parser) parseType() types.Type {
	pos := p.val.Pos
	switch p.tok {
	case token.KWINT:
		p.advance()
		return types.TInt
	case token.KWFLOAT:
		p.advance()
		return types.TFloat
	case token.KWBOOL:
		p.advance()
		return types.TBool
	case token.KWSTRING:
		p.advance()
		return types.TString
	case token.KWANY:
		p.advance()
		return types.TAny
	case token.NULLKW:
		p.advance()
		return types.TNull
	default:
		p.errorExpected(pos, "a type")
		panic(errPanicMode)
	}
}

func (p *parser) parseBinding() ast.Binding {
	name := p.parseIdent()
	ty := types.TAny
	if p.at(token.COLON) {
		p.advance()
		ty = p.parseType()
	}
	return ast.Binding{Name: name, Type: ty}
}

// parseVarDecl parses `let binding ('=' expr)? ';'`.
func (p *parser) parseVarDecl() ast.Stmt {
	start := p.expect(token.LET)
	binding := p.parseBinding()

	var init ast.Expr
	if p.at(token.EQ) {
		p.advance()
		init = p.parseExpr()
	}

	end := p.expect(token.SEMI)

	declTy := binding.Type
	if init != nil {
		if !types.Compat(declTy, init.Type()) {
			p.error(binding.Name.Pos.Start, "incompatible types: declared "+declTy.String()+", got "+init.Type().String())
		}
		// refinement: the binding's effective type narrows to the
		// initializer's actual type (e.g. declared `any` becomes concrete).
		declTy = init.Type()
	}

	if err := p.syms.Insert(&symtab.Symbol{Name: binding.Name.Name, Kind: symtab.Variable, Type: declTy}); err != nil {
		p.error(binding.Name.Pos.Start, err.Error())
	}

	return &ast.VarStmt{
		Base: span(start, end),
		Name: ast.Binding{Name: binding.Name, Type: declTy},
		Init: init,
	}
}

// parseFuncDecl parses `func IDENT '(' bindings? ')' ('->' type)? block` as
// a top-level or nested function declaration: the symbol is inserted into
// the current scope before the body is parsed, to support recursion.
func (p *parser) parseFuncDecl() *ast.FuncStmt {
	fn, _ := p.parseFuncDeclCommon(false)
	return fn
}

// parseMethodDecl parses a func_decl inside a class body. The method's
// symbol is never inserted into the surrounding scope: the parser does not
// push a scope for methods at class-parse time, and methods are only
// reachable through the owning class's method map, not as bare names.
func (p *parser) parseMethodDecl() (*ast.FuncStmt, *symtab.Symbol) {
	return p.parseFuncDeclCommon(true)
}

func (p *parser) parseFuncDeclCommon(asMethod bool) (*ast.FuncStmt, *symtab.Symbol) {
	start := p.expect(token.FUNC)
	name := p.parseIdent()

	p.expect(token.LPAREN)
	var params []ast.Binding
	if !p.at(token.RPAREN) {
		params = append(params, p.parseBinding())
		for p.at(token.COMMA) {
			p.advance()
			params = append(params, p.parseBinding())
		}
	}
	p.expect(token.RPAREN)

	declRetTy := types.TAny
	if p.at(token.ARROW) {
		p.advance()
		declRetTy = p.parseType()
	}

	paramTypes := make([]types.Type, len(params))
	for i, pr := range params {
		paramTypes[i] = pr.Type
	}
	sym := &symtab.Symbol{
		Name:  name.Name,
		Kind:  symtab.Function,
		Type:  types.NewFunction(paramTypes, declRetTy),
		Arity: len(params),
	}
	if !asMethod {
		// inserted before the body is parsed, so the function can call
		// itself recursively.
		if err := p.syms.Insert(sym); err != nil {
			p.error(name.Pos.Start, err.Error())
		}
	}

	p.syms.LevelUp()
	if asMethod {
		_ = p.syms.Insert(&symtab.Symbol{Name: "this", Kind: symtab.Variable, Type: types.TAny})
	}
	for _, pr := range params {
		if err := p.syms.Insert(&symtab.Symbol{Name: pr.Name.Name, Kind: symtab.Variable, Type: pr.Type}); err != nil {
			p.error(pr.Name.Pos.Start, err.Error())
		}
	}

	outerFunc, outerRet := p.inFunc, p.funcReturnType
	p.inFunc, p.funcReturnType = true, declRetTy
	body := p.parseBlock()
	p.inFunc, p.funcReturnType = outerFunc, outerRet
	p.syms.LevelDown()

	finalRetTy := declRetTy
	hasTrailingRet := false
	if n := len(body.Stmts); n > 0 {
		if ret, ok := body.Stmts[n-1].(*ast.ReturnStmt); ok {
			hasTrailingRet = true
			actual := types.TNull
			if ret.Value != nil {
				actual = ret.Value.Type()
			}
			if !types.Compat(declRetTy, actual) {
				p.error(name.Pos.Start, "incompatible return type: declared "+declRetTy.String()+", got "+actual.String())
			}
			finalRetTy = actual
		}
	}
	if !hasTrailingRet && declRetTy.Kind != types.Any {
		p.error(name.Pos.Start, "function without a ret statement must declare return type any")
	}
	sym.Type = types.NewFunction(paramTypes, finalRetTy)

	return &ast.FuncStmt{
		Base:       span(start, body.Span().End),
		Name:       name,
		Params:     params,
		ReturnType: finalRetTy,
		Body:       body,
	}, sym
}

// parseClassDecl parses `class IDENT '{' func_decl* '}'`.
func (p *parser) parseClassDecl() *ast.ClassStmt {
	start := p.expect(token.CLASS)
	name := p.parseIdent()
	p.expect(token.LBRACE)

	sym := &symtab.Symbol{Name: name.Name, Kind: symtab.Class, Type: types.NewClass(name.Name), Methods: map[string]*symtab.Symbol{}}
	if err := p.syms.Insert(sym); err != nil {
		p.error(name.Pos.Start, err.Error())
	}

	outerMethod := p.inMethod
	p.inMethod = true
	var methods []*ast.FuncStmt
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		m, msym := p.parseMethodDecl()
		methods = append(methods, m)
		sym.Methods[m.Name.Name] = msym
	}
	p.inMethod = outerMethod

	end := p.expect(token.RBRACE)
	return &ast.ClassStmt{Base: span(start, end), Name: name, Methods: methods}
}
