package parser

import (
	"os"
	"path/filepath"

	"go.jacobcolvin.com/tlbx/errs"
	"go.jacobcolvin.com/tlbx/lexer"
	"go.jacobcolvin.com/tlbx/value"
)

// parseDirective consumes a top-level `@...` item: the current token is
// [lexer.At].
func (p *Parser) parseDirective() error {
	if err := p.advance(); err != nil { // consume '@'
		return err
	}

	nameTok, err := p.expect(lexer.Ident)
	if err != nil {
		return err
	}

	switch nameTok.Text {
	case "struct":
		return p.parseStructDirective()
	case "union":
		return p.parseUnionDirective()
	case "include":
		return p.parseIncludeDirective()
	case "root-array":
		p.doc.SetRootArray(true)

		return p.skipUnknownDirectiveArg(nameTok.Pos.Line)
	default:
		return p.skipUnknownDirectiveArg(nameTok.Pos.Line)
	}
}

// skipUnknownDirectiveArg implements the top-level fallback for a directive
// keyword this parser does not otherwise recognize: if the next token
// starts on the same source line as the directive keyword, it is parsed as
// one value expression and discarded; otherwise (including when that
// token is the comma separating top-level items) the directive has no
// argument and subsequent input is left untouched.
func (p *Parser) skipUnknownDirectiveArg(directiveLine int) error {
	if p.cur.Kind == lexer.EOF || p.cur.Kind == lexer.Comma || p.cur.Pos.Line != directiveLine {
		return nil
	}

	_, err := p.parseValue()

	return err
}

// parseFieldList parses a parenthesized, comma-separated, possibly-empty
// field list shared by `@struct` and `@union` variants.
func (p *Parser) parseFieldList() ([]value.Field, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}

	var fields []value.Field

	for p.cur.Kind != lexer.RParen {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}

		fields = append(fields, f)

		if err := p.skipComma(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}

	return fields, nil
}

// parseField parses one `name` or `name: type` field spec.
func (p *Parser) parseField() (value.Field, error) {
	name, err := p.parseName()
	if err != nil {
		return value.Field{}, err
	}

	f := value.Field{Name: name, Type: "string"}

	if p.cur.Kind == lexer.Colon {
		if err := p.advance(); err != nil {
			return value.Field{}, err
		}

		isArray, typeName, nullable, err := p.parseTypeSpec()
		if err != nil {
			return value.Field{}, err
		}

		f.Type = typeName
		f.IsArray = isArray
		f.Nullable = nullable

		if typeName != "object" && !value.IsPrimitiveType(typeName) {
			f.ExtraRef = typeName
		}

		return f, nil
	}

	return f, nil
}

// parseTypeSpec parses a field type: an optional `[]` array marker, a base
// type name, and an optional trailing `?` nullable marker.
func (p *Parser) parseTypeSpec() (isArray bool, typeName string, nullable bool, err error) {
	if p.cur.Kind == lexer.LBracket {
		if err = p.advance(); err != nil {
			return false, "", false, err
		}

		if _, err = p.expect(lexer.RBracket); err != nil {
			return false, "", false, err
		}

		isArray = true
	}

	nameTok, err := p.expect(lexer.Ident)
	if err != nil {
		return false, "", false, err
	}

	typeName = nameTok.Text

	if p.cur.Kind == lexer.Question {
		if err = p.advance(); err != nil {
			return false, "", false, err
		}

		nullable = true
	}

	return isArray, typeName, nullable, nil
}

// parseStructDirective parses `@struct Name (field, field, …)`.
func (p *Parser) parseStructDirective() error {
	nameTok, err := p.expect(lexer.Ident)
	if err != nil {
		return err
	}

	fields, err := p.parseFieldList()
	if err != nil {
		return err
	}

	p.doc.AddSchema(&value.Schema{Name: nameTok.Text, Fields: fields})

	return nil
}

// parseUnionDirective parses `@union Name { variant(fields), … }`.
func (p *Parser) parseUnionDirective() error {
	nameTok, err := p.expect(lexer.Ident)
	if err != nil {
		return err
	}

	if _, err := p.expect(lexer.LBrace); err != nil {
		return err
	}

	var variants []value.Variant

	for p.cur.Kind != lexer.RBrace {
		variantName, err := p.parseName()
		if err != nil {
			return err
		}

		fields, err := p.parseFieldList()
		if err != nil {
			return err
		}

		variants = append(variants, value.Variant{Name: variantName, Fields: fields})

		if err := p.skipComma(); err != nil {
			return err
		}
	}

	if _, err := p.expect(lexer.RBrace); err != nil {
		return err
	}

	p.doc.AddUnion(&value.Union{Name: nameTok.Text, Variants: variants})

	return nil
}

// parseIncludeDirective parses `@include "path"`, reading and parsing the
// target file into the same Document, with cycle detection across the
// include stack.
func (p *Parser) parseIncludeDirective() error {
	pathTok, err := p.expect(lexer.String)
	if err != nil {
		return err
	}

	abs, err := p.resolveInclude(pathTok.Text)
	if err != nil {
		return err
	}

	if p.onIncludeStack(abs) {
		return errs.Newf(errs.ParseError, pathTok.Pos, errs.MsgIncludeCycle, abs)
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return errs.Newf(errs.Io, pathTok.Pos, errs.MsgIncludeNotFound, abs, err)
	}

	child := &Parser{
		doc:          p.doc,
		baseDir:      filepath.Dir(abs),
		includeStack: append(append([]string{}, p.includeStack...), abs),
	}

	_, err = child.run(string(src))

	return err
}
