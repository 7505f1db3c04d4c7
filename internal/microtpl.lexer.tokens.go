package internal

import "fmt"

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	// TokenTypeOpenBrace is a "{{" opener.
	TokenTypeOpenBrace TokenType = iota
	// TokenTypeCloseBrace is a "}}" closer.
	TokenTypeCloseBrace
	// TokenTypeIdent is a dotted field path (without the leading dot).
	TokenTypeIdent
	// TokenTypeKeywordRange is the "range" keyword.
	TokenTypeKeywordRange
	// TokenTypeKeywordIf is the "if" keyword.
	TokenTypeKeywordIf
	// TokenTypeKeywordEnd is the "end" keyword.
	TokenTypeKeywordEnd
	// TokenTypeEOF marks exhaustion of the token stream. The lexer never
	// emits it; the parser uses it as a past-the-end sentinel.
	TokenTypeEOF
)

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	switch t {
	case TokenTypeOpenBrace:
		return "OPEN_BRACE"
	case TokenTypeCloseBrace:
		return "CLOSE_BRACE"
	case TokenTypeIdent:
		return "IDENT"
	case TokenTypeKeywordRange:
		return "KEYWORD_RANGE"
	case TokenTypeKeywordIf:
		return "KEYWORD_IF"
	case TokenTypeKeywordEnd:
		return "KEYWORD_END"
	case TokenTypeEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// Token is a positioned lexical token. Tokens never own text: Start and End
// are byte offsets into the immutable template source, so the path text of
// an IDENT token is source[Start:End]. For OPEN_BRACE and the keywords,
// Start is the offset of the construct and End the offset just past it;
// for CLOSE_BRACE, End is the offset just past both closing braces.
type Token struct {
	Type  TokenType
	Start int
	End   int
}

// Text returns the token's raw text slice of the given source.
func (t Token) Text(source string) string {
	if t.Start < 0 || t.End > len(source) || t.Start > t.End {
		return ""
	}
	return source[t.Start:t.End]
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("Token{%s @ %d..%d}", t.Type, t.Start, t.End)
}

// NewOpenBraceToken creates an OPEN_BRACE token at the given offset.
func NewOpenBraceToken(start int) Token {
	return Token{Type: TokenTypeOpenBrace, Start: start, End: start + LenOpenBrace}
}

// NewCloseBraceToken creates a CLOSE_BRACE token starting at the given offset.
func NewCloseBraceToken(start int) Token {
	return Token{Type: TokenTypeCloseBrace, Start: start, End: start + LenCloseBrace}
}

// NewIdentToken creates an IDENT token covering source[start:end].
func NewIdentToken(start, end int) Token {
	return Token{Type: TokenTypeIdent, Start: start, End: end}
}

// NewKeywordToken creates a keyword token of the given type at the given offset.
func NewKeywordToken(tokenType TokenType, start, end int) Token {
	return Token{Type: tokenType, Start: start, End: end}
}

// Position is a human-oriented location in the template source,
// derived from a byte offset for diagnostics.
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// PositionAt computes the 1-based line and column of a byte offset by
// scanning the source for line breaks up to that offset.
func PositionAt(source string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}

	line := 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if source[i] == CharNewline {
			line++
			lineStart = i + 1
		}
	}

	return Position{
		Offset: offset,
		Line:   line,
		Column: offset - lineStart + 1,
	}
}

// LineAt returns the full text of the source line containing the given
// byte offset, without its trailing newline. Used for error diagnostics.
func LineAt(source string, offset int) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}

	start := offset
	for start > 0 && source[start-1] != CharNewline {
		start--
	}
	end := offset
	for end < len(source) && source[end] != CharNewline {
		end++
	}

	return source[start:end]
}
