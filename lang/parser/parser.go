// Package parser implements the combined recursive-descent parser and
// static type checker: it turns a token stream into a typed AST, resolving
// names and enforcing the type-compatibility rules in the same pass.
package parser

import (
	"errors"
	"strings"

	"github.com/nakala-lang/nakala/lang/ast"
	"github.com/nakala-lang/nakala/lang/scanner"
	"github.com/nakala-lang/nakala/lang/symtab"
	"github.com/nakala-lang/nakala/lang/token"
	"github.com/nakala-lang/nakala/lang/types"
)

// Parse parses and type-checks a single program (a file or one REPL input)
// against syms, which is mutated in place to register the program's
// top-level function and class declarations. It returns the typed program
// and any accumulated errors as a *scanner.ErrorList (nil if none).
func Parse(fs *token.FileSet, name string, src []byte, syms *symtab.Table) (*ast.Program, error) {
	var p parser
	p.syms = syms
	p.file = fs.AddFile(name, -1, len(src))
	p.scanner.Init(p.file, src, p.errors.Add)
	p.advance()

	prog := p.parseProgram()
	p.errors.Sort()
	return prog, p.errors.Err()
}

type parser struct {
	scanner scanner.Scanner
	errors  scanner.ErrorList
	file    *token.File
	syms    *symtab.Table

	tok token.Token
	val token.Value

	// funcReturnType is the declared return type of the function currently
	// being parsed, used to type-check `ret` statements.
	inFunc         bool
	funcReturnType types.Type

	// inMethod is true while parsing a class body's methods. `this` itself
	// resolves through the symbol parseFuncDeclCommon inserts into each
	// method's scope.
	inMethod bool
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan(&p.val)
}

var errPanicMode = errors.New("panic mode")

// expect consumes the current token if it matches one of toks, otherwise it
// records an error and panics with errPanicMode, recovered at the statement
// level to continue parsing after a BadStmt.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.val.Pos
	for _, tok := range toks {
		if p.tok == tok {
			p.advance()
			return pos
		}
	}

	var buf strings.Builder
	for i, tok := range toks {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(tok.GoString())
	}
	lbl := buf.String()
	if len(toks) > 1 {
		lbl = "one of " + lbl
	}
	p.errorExpected(pos, lbl)
	panic(errPanicMode)
}

// at reports whether the current token is tok without consuming it.
func (p *parser) at(tok token.Token) bool { return p.tok == tok }

func (p *parser) error(pos token.Pos, msg string) {
	p.errors.Add(p.file.Position(pos), msg)
}

func (p *parser) errorExpected(pos token.Pos, msg string) {
	msg = "expected " + msg
	if pos == p.val.Pos {
		msg += ", found " + p.tok.GoString()
	}
	p.error(pos, msg)
}

// sync resynchronizes the token stream to the next statement boundary after
// a parse error, so that parsing can continue and report further errors.
func (p *parser) sync() {
	for p.tok != token.EOF {
		if p.tok == token.SEMI {
			p.advance()
			return
		}
		switch p.tok {
		case token.CLASS, token.FUNC, token.LET, token.IF, token.UNTIL, token.RET, token.PRINT, token.LBRACE, token.RBRACE:
			return
		}
		p.advance()
	}
}

func (p *parser) parseProgram() *ast.Program {
	start := p.val.Pos
	var decls []ast.Stmt
	for p.tok != token.EOF {
		decls = append(decls, p.parseDecl())
	}
	return &ast.Program{Decls: decls, Span_: token.Span{Start: start, End: p.val.Pos}}
}

func (p *parser) parseDecl() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			start := p.val.Pos
			p.sync()
			stmt = &ast.BadStmt{Base: ast.Base{Span_: token.Span{Start: start, End: p.val.Pos}}}
		}
	}()

	switch p.tok {
	case token.CLASS:
		return p.parseClassDecl()
	case token.FUNC:
		return p.parseFuncDecl()
	case token.LET:
		return p.parseVarDecl()
	default:
		return p.parseStmt()
	}
}
