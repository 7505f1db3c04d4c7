package internal

// Delimiter and keyword constants.
const (
	StrOpenBrace  = "{{"
	StrCloseBrace = "}}"

	KeywordRange = "range"
	KeywordIf    = "if"
	KeywordEnd   = "end"
)

// Delimiter lengths.
const (
	LenOpenBrace  = len(StrOpenBrace)
	LenCloseBrace = len(StrCloseBrace)
)

// Character constants.
const (
	CharOpenBrace  = byte('{')
	CharCloseBrace = byte('}')
	CharDot        = byte('.')
	CharSpace      = byte(' ')
	CharTab        = byte('\t')
	CharNewline    = byte('\n')
	CharCarriage   = byte('\r')
)

// Path separator for dotted field paths.
const PathSeparator = "."

// Default configuration values.
const (
	DefaultMaxDepth = 100
)

// Log message constants.
const (
	LogMsgLexerCreated    = "lexer created"
	LogMsgTokenizerStart  = "tokenizing template source"
	LogMsgTokenizerEnd    = "tokenizing complete"
	LogMsgParserCreated   = "parser created"
	LogMsgParserStart     = "parsing token stream"
	LogMsgParserEnd       = "parsing complete"
	LogMsgRendererCreated = "renderer created"
	LogMsgRendererStart   = "rendering declaration tree"
	LogMsgRendererEnd     = "rendering complete"
	LogMsgBlockSkipped    = "conditional block skipped"
	LogMsgRangeIteration  = "range iteration"
)

// Log field name constants.
const (
	LogFieldSource = "source_len"
	LogFieldTokens = "tokens"
	LogFieldDecls  = "decls"
	LogFieldPath   = "path"
	LogFieldCount  = "count"
)

// Shared string values.
const (
	StringValueEmpty = ""
)
