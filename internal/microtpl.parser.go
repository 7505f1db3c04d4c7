package internal

import (
	"fmt"

	"go.uber.org/zap"
)

// ParseErrorKind categorizes structural parse failures.
type ParseErrorKind int

const (
	// ErrKindExpectedOpenBrace means a declaration did not start with "{{".
	ErrKindExpectedOpenBrace ParseErrorKind = iota
	// ErrKindExpectedCloseBrace means a directive was not closed with "}}".
	ErrKindExpectedCloseBrace
	// ErrKindExpectedIdent means a directive lacked a field path.
	ErrKindExpectedIdent
	// ErrKindExpectedRangeKeyword means a range header lacked the range keyword.
	ErrKindExpectedRangeKeyword
	// ErrKindExpectedIfKeyword means an if header lacked the if keyword.
	ErrKindExpectedIfKeyword
	// ErrKindExpectedEndKeyword means a block was not terminated by "{{ end }}".
	ErrKindExpectedEndKeyword
	// ErrKindMaxDepthExceeded means blocks were nested beyond the configured limit.
	ErrKindMaxDepthExceeded
)

// String returns a human-readable name for the error kind.
func (k ParseErrorKind) String() string {
	switch k {
	case ErrKindExpectedOpenBrace:
		return "EXPECTED_OPEN_BRACE"
	case ErrKindExpectedCloseBrace:
		return "EXPECTED_CLOSE_BRACE"
	case ErrKindExpectedIdent:
		return "EXPECTED_IDENT"
	case ErrKindExpectedRangeKeyword:
		return "EXPECTED_RANGE_KEYWORD"
	case ErrKindExpectedIfKeyword:
		return "EXPECTED_IF_KEYWORD"
	case ErrKindExpectedEndKeyword:
		return "EXPECTED_END_KEYWORD"
	case ErrKindMaxDepthExceeded:
		return "MAX_DEPTH_EXCEEDED"
	default:
		return "UNKNOWN"
	}
}

// Parser error message constants.
const (
	ErrMsgExpectedOpenBrace  = "expected opening braces"
	ErrMsgExpectedCloseBrace = "expected closing braces"
	ErrMsgExpectedIdent      = "expected field path"
	ErrMsgExpectedRangeKw    = "expected range keyword"
	ErrMsgExpectedIfKw       = "expected if keyword"
	ErrMsgExpectedEndKw      = "unterminated block, expected {{ end }}"
	ErrMsgMaxDepthExceeded   = "maximum block nesting depth exceeded"
)

// ParserError is a structural parse failure with source diagnostics.
// Position and SourceLine are derived from the offending token's byte
// offset; they aid debugging and do not affect behavior.
type ParserError struct {
	Kind       ParseErrorKind
	Message    string
	Position   Position
	SourceLine string
}

// Error implements the error interface.
func (e *ParserError) Error() string {
	if e.SourceLine != StringValueEmpty {
		return fmt.Sprintf("%s at %s: %q", e.Message, e.Position.String(), e.SourceLine)
	}
	return fmt.Sprintf("%s at %s", e.Message, e.Position.String())
}

// Parser consumes the token stream and builds the declaration tree.
// Parsing stops at the first structural error.
type Parser struct {
	tokens   []Token
	source   string
	pos      int
	maxDepth int
	logger   *zap.Logger
}

// NewParser creates a parser for the given tokens and source.
// The source is retained for span bookkeeping and error diagnostics only;
// the parser never copies literal text out of it.
func NewParser(tokens []Token, source string, maxDepth int, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldTokens, len(tokens)))
	return &Parser{
		tokens:   tokens,
		source:   source,
		pos:      0,
		maxDepth: maxDepth,
		logger:   logger,
	}
}

// Parse builds the top-level declaration sequence from the token stream.
func (p *Parser) Parse() ([]Decl, error) {
	p.logger.Debug(LogMsgParserStart)

	var decls []Decl
	for !p.isAtEnd() {
		decl, err := p.parseOne(0)
		if err != nil {
			return nil, err
		}
		if decl != nil {
			decls = append(decls, decl)
		}
	}

	p.logger.Debug(LogMsgParserEnd, zap.Int(LogFieldDecls, len(decls)))
	return decls, nil
}

// parseOne parses a single declaration starting at the next unconsumed
// token. It returns a nil declaration for the permissive empty "{{}}".
func (p *Parser) parseOne(depth int) (Decl, error) {
	if depth > p.maxDepth {
		return nil, p.newError(ErrKindMaxDepthExceeded, ErrMsgMaxDepthExceeded, p.current())
	}

	open := p.current()
	if open.Type != TokenTypeOpenBrace {
		return nil, p.newError(ErrKindExpectedOpenBrace, ErrMsgExpectedOpenBrace, open)
	}
	p.advance()

	tok := p.current()
	switch tok.Type {
	case TokenTypeCloseBrace:
		// Empty {{}} is a permissive no-op.
		p.advance()
		return nil, nil

	case TokenTypeIdent:
		return p.parseIdent(open)

	case TokenTypeKeywordRange:
		return p.parseBlock(open, TokenTypeKeywordRange, depth)

	case TokenTypeKeywordIf:
		return p.parseBlock(open, TokenTypeKeywordIf, depth)

	case TokenTypeKeywordEnd:
		return p.parseEnd(open)

	default:
		return nil, p.newError(ErrKindExpectedIdent, ErrMsgExpectedIdent, tok)
	}
}

// parseIdent parses the tail of a field-substitution directive:
// the Ident and CloseBrace after an already-consumed OpenBrace.
func (p *Parser) parseIdent(open Token) (Decl, error) {
	ident := p.current()
	if ident.Type != TokenTypeIdent {
		return nil, p.newError(ErrKindExpectedIdent, ErrMsgExpectedIdent, ident)
	}
	p.advance()

	closeTok := p.current()
	if closeTok.Type != TokenTypeCloseBrace {
		return nil, p.newError(ErrKindExpectedCloseBrace, ErrMsgExpectedCloseBrace, closeTok)
	}
	p.advance()

	span := Span{Start: open.Start, End: closeTok.End}
	return NewIdentDecl(span, ident.Text(p.source)), nil
}

// parseBlock parses a range or if block: the header after an
// already-consumed OpenBrace, then children until the matching EndDecl.
// Each recursive child owns matching its own end marker, so an inner
// block's end never closes the outer block.
func (p *Parser) parseBlock(open Token, keyword TokenType, depth int) (Decl, error) {
	kw := p.current()
	if kw.Type != keyword {
		if keyword == TokenTypeKeywordRange {
			return nil, p.newError(ErrKindExpectedRangeKeyword, ErrMsgExpectedRangeKw, kw)
		}
		return nil, p.newError(ErrKindExpectedIfKeyword, ErrMsgExpectedIfKw, kw)
	}
	p.advance()

	ident := p.current()
	if ident.Type != TokenTypeIdent {
		return nil, p.newError(ErrKindExpectedIdent, ErrMsgExpectedIdent, ident)
	}
	p.advance()

	closeTok := p.current()
	if closeTok.Type != TokenTypeCloseBrace {
		return nil, p.newError(ErrKindExpectedCloseBrace, ErrMsgExpectedCloseBrace, closeTok)
	}
	p.advance()

	path := ident.Text(p.source)
	headerEnd := closeTok.End

	var body []Decl
	for {
		if p.isAtEnd() {
			return nil, p.newError(ErrKindExpectedEndKeyword, ErrMsgExpectedEndKw, Token{Start: len(p.source), End: len(p.source)})
		}

		child, err := p.parseOne(depth + 1)
		if err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		body = append(body, child)

		if end, ok := child.(*EndDecl); ok {
			span := Span{Start: open.Start, End: end.DeclSpan().End}
			if keyword == TokenTypeKeywordRange {
				return NewRangeDecl(span, path, body, headerEnd), nil
			}
			return NewCondDecl(span, path, body, headerEnd), nil
		}
	}
}

// parseEnd parses the tail of a "{{ end }}" marker.
func (p *Parser) parseEnd(open Token) (Decl, error) {
	p.advance() // consume KEYWORD_END

	closeTok := p.current()
	if closeTok.Type != TokenTypeCloseBrace {
		return nil, p.newError(ErrKindExpectedCloseBrace, ErrMsgExpectedCloseBrace, closeTok)
	}
	p.advance()

	return NewEndDecl(Span{Start: open.Start, End: closeTok.End}), nil
}

// Helper methods

// current returns the current token, or an EOF sentinel past the end.
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenTypeEOF, Start: len(p.source), End: len(p.source)}
	}
	return p.tokens[p.pos]
}

// advance consumes the current token.
func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// isAtEnd returns true if all tokens are consumed.
func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.tokens)
}

// newError builds a ParserError with line/column diagnostics for the
// offending token.
func (p *Parser) newError(kind ParseErrorKind, message string, tok Token) error {
	return &ParserError{
		Kind:       kind,
		Message:    message,
		Position:   PositionAt(p.source, tok.Start),
		SourceLine: LineAt(p.source, tok.Start),
	}
}
