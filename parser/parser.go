package parser

import (
	"os"
	"path/filepath"

	"go.jacobcolvin.com/tlbx/errs"
	"go.jacobcolvin.com/tlbx/lexer"
	"go.jacobcolvin.com/tlbx/value"
)

// Parser is a recursive-descent, single-token-lookahead parser over a
// [lexer.Lexer]. Construct one indirectly via [ParseString] or [ParseFile].
type Parser struct {
	lex *lexer.Lexer
	cur lexer.Token

	// baseDir is the directory @include paths resolve against. Empty when
	// parsing from a string with no file-system context.
	baseDir string

	// includeStack holds the absolute paths of files currently being
	// parsed, innermost last, for @include cycle detection.
	includeStack []string

	doc *value.Document
}

// ParseString parses src into a new [value.Document]. There is no
// file-system context: any `@include` directive encountered fails with
// [errs.Io].
func ParseString(src string) (*value.Document, error) {
	p := &Parser{doc: value.NewDocument()}

	return p.run(src)
}

// ParseFile reads and parses the file at path, enabling `@include`
// resolution relative to path's directory.
func ParseFile(path string) (*value.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errs.New(errs.Io, errs.Position{}, err.Error())
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, errs.New(errs.Io, errs.Position{}, err.Error())
	}

	p := &Parser{
		doc:          value.NewDocument(),
		baseDir:      filepath.Dir(abs),
		includeStack: []string{abs},
	}

	return p.run(string(src))
}

// run drives the shared top-level loop over src and returns p's Document.
func (p *Parser) run(src string) (*value.Document, error) {
	p.lex = lexer.New(src)

	if err := p.advance(); err != nil {
		return nil, err
	}

	if err := p.parseTopLevelItems(); err != nil {
		return nil, err
	}

	return p.doc, nil
}

// advance pulls the next token from the lexer into p.cur.
func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}

	p.cur = tok

	return nil
}

// expect consumes the current token if it has kind k, else fails with
// [errs.UnexpectedToken].
func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	if p.cur.Kind != k {
		return lexer.Token{}, p.unexpectedToken(k.String())
	}

	tok := p.cur

	return tok, p.advance()
}

// unexpectedToken reports that the current token does not match what the
// grammar expected at this position.
func (p *Parser) unexpectedToken(expected string) error {
	if p.cur.Kind == lexer.EOF {
		return errs.Newf(errs.UnexpectedEof, p.cur.Pos, errs.MsgUnexpectedEof, expected)
	}

	return errs.Newf(errs.UnexpectedToken, p.cur.Pos, errs.MsgUnexpectedToken, p.cur.Kind, expected)
}

// parseName accepts an identifier or a quoted string as a name (used for
// object/pair keys, which the grammar allows to be either).
func (p *Parser) parseName() (string, error) {
	switch p.cur.Kind {
	case lexer.Ident:
		tok := p.cur

		return tok.Text, p.advance()
	case lexer.String:
		tok := p.cur

		return tok.Text, p.advance()
	default:
		return "", p.unexpectedToken("a name")
	}
}

// skipComma consumes a single [lexer.Comma] if present, supporting the
// grammar's "trailing commas allowed everywhere" rule: callers loop while
// the closing delimiter has not yet been seen, consuming an optional comma
// between elements and tolerating one before the close.
func (p *Parser) skipComma() error {
	if p.cur.Kind == lexer.Comma {
		return p.advance()
	}

	return nil
}

// resolveInclude turns a path written in an `@include "path"` directive
// into an absolute path relative to p.baseDir, and fails with [errs.Io] if
// there is no file-system context to resolve against.
func (p *Parser) resolveInclude(path string) (string, error) {
	if p.baseDir == "" {
		return "", errs.New(errs.Io, p.cur.Pos, "@include is not supported when parsing from a string")
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	return filepath.Join(p.baseDir, path), nil
}

func (p *Parser) onIncludeStack(abs string) bool {
	for _, s := range p.includeStack {
		if s == abs {
			return true
		}
	}

	return false
}
