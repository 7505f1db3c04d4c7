package internal

import (
	"go.uber.org/zap"
)

// Lexer scans template source into a flat token stream. Scanning is
// permissive: bytes that do not form part of a directive produce no token
// and remain literal text, recovered later by offset slicing. Malformed
// directives therefore surface as parser errors, never lexer errors.
type Lexer struct {
	source string
	pos    int
	logger *zap.Logger
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source string, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgLexerCreated, zap.Int(LogFieldSource, len(source)))
	return &Lexer{
		source: source,
		pos:    0,
		logger: logger,
	}
}

// Tokenize scans the source left to right and returns the token stream.
// Token offsets are strictly increasing.
func (l *Lexer) Tokenize() []Token {
	l.logger.Debug(LogMsgTokenizerStart)
	var tokens []Token

	for !l.isAtEnd() {
		ch := l.peek()

		switch {
		case ch == CharOpenBrace && l.peekAt(1) == CharOpenBrace:
			tokens = append(tokens, NewOpenBraceToken(l.pos))
			l.pos += LenOpenBrace

		case ch == CharCloseBrace && l.peekAt(1) == CharCloseBrace:
			tokens = append(tokens, NewCloseBraceToken(l.pos))
			l.pos += LenCloseBrace

		case ch == CharDot && pathMayFollow(tokens):
			l.pos++ // consume the dot
			l.skipSpaces()
			start := l.pos
			for !l.isAtEnd() && l.peek() != CharCloseBrace && l.peek() != CharSpace {
				l.pos++
			}
			// A zero-length path yields no token; the parser reports it.
			if l.pos > start {
				tokens = append(tokens, NewIdentToken(start, l.pos))
			}

		case isWordByte(ch) && lastTokenIs(tokens, TokenTypeOpenBrace):
			start := l.pos
			for !l.isAtEnd() && isWordByte(l.peek()) {
				l.pos++
			}
			if tok, ok := keywordToken(l.source[start:l.pos], start, l.pos); ok {
				tokens = append(tokens, tok)
			}
			// Non-keyword words are literal text and produce no token.

		default:
			l.pos++
		}
	}

	l.logger.Debug(LogMsgTokenizerEnd, zap.Int(LogFieldTokens, len(tokens)))
	return tokens
}

// keywordToken maps a word to its keyword token, if it is one.
func keywordToken(word string, start, end int) (Token, bool) {
	switch word {
	case KeywordRange:
		return NewKeywordToken(TokenTypeKeywordRange, start, end), true
	case KeywordIf:
		return NewKeywordToken(TokenTypeKeywordIf, start, end), true
	case KeywordEnd:
		return NewKeywordToken(TokenTypeKeywordEnd, start, end), true
	default:
		return Token{}, false
	}
}

// pathMayFollow reports whether a dot at the current position begins a
// field path: only after an opening brace or a block keyword.
func pathMayFollow(tokens []Token) bool {
	if len(tokens) == 0 {
		return false
	}
	switch tokens[len(tokens)-1].Type {
	case TokenTypeOpenBrace, TokenTypeKeywordRange, TokenTypeKeywordIf:
		return true
	default:
		return false
	}
}

// lastTokenIs reports whether the most recently emitted token has the given type.
func lastTokenIs(tokens []Token, tokenType TokenType) bool {
	return len(tokens) > 0 && tokens[len(tokens)-1].Type == tokenType
}

// Helper methods

// isAtEnd returns true if the scan has consumed the whole source.
func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

// peek returns the current byte without advancing.
func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

// peekAt returns the byte n positions ahead without advancing.
func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.source) {
		return 0
	}
	return l.source[l.pos+n]
}

// skipSpaces skips a run of space bytes.
func (l *Lexer) skipSpaces() {
	for !l.isAtEnd() && l.peek() == CharSpace {
		l.pos++
	}
}

// isWordByte reports whether ch can be part of a bare word inside a directive.
func isWordByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') || ch == '_'
}
