package parser

import (
	"fmt"
	"log/slog"
	"math"

	"go.jacobcolvin.com/tlbx/errs"
	"go.jacobcolvin.com/tlbx/lexer"
	"go.jacobcolvin.com/tlbx/value"
)

// parseTopLevelItems consumes directives, pairs, and reference definitions
// until EOF, in whatever order they appear.
func (p *Parser) parseTopLevelItems() error {
	for p.cur.Kind != lexer.EOF {
		switch p.cur.Kind {
		case lexer.At:
			if err := p.parseDirective(); err != nil {
				return err
			}
		case lexer.Bang:
			if err := p.parseRefDef(); err != nil {
				return err
			}
		case lexer.Ident, lexer.String:
			if err := p.parseTopLevelPair(); err != nil {
				return err
			}
		default:
			return p.unexpectedToken("a directive, key, or reference definition")
		}

		if err := p.skipComma(); err != nil {
			return err
		}
	}

	return nil
}

// parseTopLevelPair parses `key : value` at document top level, recording
// it as a section. A repeated key overwrites the previous value with a
// logged warning, per the last-wins duplicate-key policy.
func (p *Parser) parseTopLevelPair() error {
	name, err := p.parseName()
	if err != nil {
		return err
	}

	if _, err := p.expect(lexer.Colon); err != nil {
		return err
	}

	v, err := p.parseValue()
	if err != nil {
		return err
	}

	if _, exists := p.doc.Section(name); exists {
		slog.Default().Warn(fmt.Sprintf(errs.MsgDuplicateTopLevel, name))
	}

	p.doc.SetSection(name, v)

	return nil
}

// parseRefDef parses `!name : value`, recording it in the document's
// reference table. Valid at top level and inside an Object.
func (p *Parser) parseRefDef() error {
	if err := p.advance(); err != nil { // consume '!'
		return err
	}

	name, err := p.parseName()
	if err != nil {
		return err
	}

	if _, err := p.expect(lexer.Colon); err != nil {
		return err
	}

	v, err := p.parseValue()
	if err != nil {
		return err
	}

	p.doc.SetRef(name, v)

	return nil
}

// parseValue parses one value expression: a primitive literal, an array, an
// object, a parenthesized tuple (an ordinary Array outside table/struct
// binding), a tagged value, a reference, or an `@table`/`@map`/unknown
// directive in value position.
func (p *Parser) parseValue() (value.Value, error) {
	tok := p.cur

	switch tok.Kind {
	case lexer.KeywordTrue:
		return value.NewBool(true), p.advance()
	case lexer.KeywordFalse:
		return value.NewBool(false), p.advance()
	case lexer.KeywordNull:
		return value.Null, p.advance()
	case lexer.KeywordNaN:
		return value.NewFloat(math.NaN()), p.advance()
	case lexer.KeywordInf:
		return value.NewFloat(math.Inf(1)), p.advance()
	case lexer.KeywordNegInf:
		return value.NewFloat(math.Inf(-1)), p.advance()
	case lexer.Int, lexer.UInt, lexer.Hex, lexer.Binary:
		if err := p.advance(); err != nil {
			return value.Null, err
		}

		if tok.Unsigned {
			return value.NewUInt(tok.UIntVal), nil
		}

		return value.NewInt(tok.IntVal), nil
	case lexer.Float:
		return value.NewFloat(tok.FloatVal), p.advance()
	case lexer.String:
		return value.NewString(tok.Text), p.advance()
	case lexer.MultilineString:
		if err := p.advance(); err != nil {
			return value.Null, err
		}

		return value.NewString(dedentMultiline(tok.Text)), nil
	case lexer.Bytes:
		return value.NewBytes(tok.BytesVal), p.advance()
	case lexer.Timestamp:
		return value.NewTimestamp(tok.TimestampMillis, tok.TimestampOffset), p.advance()
	case lexer.LBracket:
		return p.parseArrayLiteral()
	case lexer.LBrace:
		return p.parseObjectLiteral()
	case lexer.LParen:
		return p.parseBareTuple()
	case lexer.Colon:
		return p.parseTaggedValue()
	case lexer.Bang:
		return p.parseRefValue()
	case lexer.At:
		return p.parseAtValue()
	default:
		return value.Null, p.unexpectedToken("a value")
	}
}

// parseArrayLiteral parses `[v, v, …]`.
func (p *Parser) parseArrayLiteral() (value.Value, error) {
	if _, err := p.expect(lexer.LBracket); err != nil {
		return value.Null, err
	}

	var items []value.Value

	for p.cur.Kind != lexer.RBracket {
		v, err := p.parseValue()
		if err != nil {
			return value.Null, err
		}

		items = append(items, v)

		if err := p.skipComma(); err != nil {
			return value.Null, err
		}
	}

	if _, err := p.expect(lexer.RBracket); err != nil {
		return value.Null, err
	}

	return value.NewArray(items), nil
}

// parseObjectLiteral parses `{ pair, …, !refdef, … }`. Reference
// definitions found inside are recorded in the document's reference table,
// not as entries of the resulting Object.
func (p *Parser) parseObjectLiteral() (value.Value, error) {
	if _, err := p.expect(lexer.LBrace); err != nil {
		return value.Null, err
	}

	o := value.NewObject()

	for p.cur.Kind != lexer.RBrace {
		switch p.cur.Kind {
		case lexer.Bang:
			if err := p.parseRefDef(); err != nil {
				return value.Null, err
			}
		case lexer.Ident, lexer.String:
			name, err := p.parseName()
			if err != nil {
				return value.Null, err
			}

			if _, err := p.expect(lexer.Colon); err != nil {
				return value.Null, err
			}

			v, err := p.parseValue()
			if err != nil {
				return value.Null, err
			}

			if o.Has(name) {
				slog.Default().Warn(fmt.Sprintf(errs.MsgDuplicateObjectKey, name))
			}

			o.Set(name, v)
		default:
			return value.Null, p.unexpectedToken("a key or reference definition")
		}

		if err := p.skipComma(); err != nil {
			return value.Null, err
		}
	}

	if _, err := p.expect(lexer.RBrace); err != nil {
		return value.Null, err
	}

	return value.NewObject(o), nil
}

// parseBareTuple parses `(v, v, …)` in ordinary value position: an
// unbound tuple is just an Array. Schema-bound tuples are parsed by
// [Parser.parseBoundTuple] instead, from contexts that know the schema.
func (p *Parser) parseBareTuple() (value.Value, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return value.Null, err
	}

	var items []value.Value

	for p.cur.Kind != lexer.RParen {
		v, err := p.parseValue()
		if err != nil {
			return value.Null, err
		}

		items = append(items, v)

		if err := p.skipComma(); err != nil {
			return value.Null, err
		}
	}

	if _, err := p.expect(lexer.RParen); err != nil {
		return value.Null, err
	}

	return value.NewArray(items), nil
}

// parseTaggedValue parses `:TagName value`. The current token is the tag
// sigil ':'.
func (p *Parser) parseTaggedValue() (value.Value, error) {
	if err := p.advance(); err != nil { // consume ':'
		return value.Null, err
	}

	tag, err := p.parseName()
	if err != nil {
		return value.Null, err
	}

	inner, err := p.parseValue()
	if err != nil {
		return value.Null, err
	}

	return value.NewTagged(tag, inner), nil
}

// parseRefValue parses `!name` in value position, producing a symbolic
// [value.KindRef]. References are never resolved here.
func (p *Parser) parseRefValue() (value.Value, error) {
	if err := p.advance(); err != nil { // consume '!'
		return value.Null, err
	}

	name, err := p.parseName()
	if err != nil {
		return value.Null, err
	}

	return value.NewRef(name), nil
}

// parseAtValue parses an `@`-form in value position: `@table`, `@map`, or an
// unrecognized directive, which contributes Null after its argument
// expression is parsed and discarded.
func (p *Parser) parseAtValue() (value.Value, error) {
	if err := p.advance(); err != nil { // consume '@'
		return value.Null, err
	}

	nameTok, err := p.expect(lexer.Ident)
	if err != nil {
		return value.Null, err
	}

	switch nameTok.Text {
	case "table":
		return p.parseTableValue()
	case "map":
		return p.parseMapValue()
	default:
		if _, err := p.parseValue(); err != nil {
			return value.Null, err
		}

		return value.Null, nil
	}
}

// parseTableValue parses `@table Schema [ tuple, tuple, … ]`.
func (p *Parser) parseTableValue() (value.Value, error) {
	schemaTok, err := p.expect(lexer.Ident)
	if err != nil {
		return value.Null, err
	}

	if _, ok := p.doc.Schema(schemaTok.Text); !ok {
		return value.Null, errs.Newf(errs.UnknownStruct, schemaTok.Pos, errs.MsgUnknownStruct, schemaTok.Text)
	}

	return p.parseBoundTupleArray(schemaTok.Text)
}

// parseMapValue parses `@map { key:value, … }` with keys restricted to
// String, bare name, Int, or UInt.
func (p *Parser) parseMapValue() (value.Value, error) {
	if _, err := p.expect(lexer.LBrace); err != nil {
		return value.Null, err
	}

	var entries []value.MapEntry

	for p.cur.Kind != lexer.RBrace {
		key, err := p.parseMapKey()
		if err != nil {
			return value.Null, err
		}

		if _, err := p.expect(lexer.Colon); err != nil {
			return value.Null, err
		}

		v, err := p.parseValue()
		if err != nil {
			return value.Null, err
		}

		entries = append(entries, value.MapEntry{Key: key, Value: v})

		if err := p.skipComma(); err != nil {
			return value.Null, err
		}
	}

	if _, err := p.expect(lexer.RBrace); err != nil {
		return value.Null, err
	}

	return value.NewMap(entries), nil
}

// parseMapKey parses one `@map` key: a bare name or quoted string (both
// become a String key), or an Int/UInt literal.
func (p *Parser) parseMapKey() (value.Value, error) {
	tok := p.cur

	switch tok.Kind {
	case lexer.Ident, lexer.String:
		if err := p.advance(); err != nil {
			return value.Null, err
		}

		return value.NewString(tok.Text), nil
	case lexer.Int, lexer.UInt:
		if err := p.advance(); err != nil {
			return value.Null, err
		}

		if tok.Unsigned {
			return value.NewUInt(tok.UIntVal), nil
		}

		return value.NewInt(tok.IntVal), nil
	default:
		return value.Null, errs.Newf(errs.UnexpectedToken, tok.Pos, errs.MsgInvalidMapKey, tok.Kind)
	}
}
