package microtpl

// Version of the microtpl library.
const Version = "1.0.0"

// Error code constants for categorization.
const (
	ErrCodeCompile = "MICROTPL_COMPILE"
	ErrCodeRender  = "MICROTPL_RENDER"
	ErrCodeStorage = "MICROTPL_STORAGE"
)

// Metadata key constants for error context.
const (
	MetaKeyLine       = "line"
	MetaKeyColumn     = "column"
	MetaKeyOffset     = "offset"
	MetaKeySourceLine = "source_line"
	MetaKeyKind       = "kind"
	MetaKeyPath       = "path"
	MetaKeyTemplate   = "template"
	MetaKeyDriver     = "driver"
)

// Log message constants.
const (
	LogMsgEngineCreated          = "engine created"
	LogMsgTemplateCompiled       = "template compiled"
	LogMsgTemplateStored         = "template registered"
	LogMsgRenderStart            = "render started"
	LogMsgRenderComplete         = "render complete"
	LogMsgStoredTemplateCompiled = "stored template compiled"
)

// Log field name constants.
const (
	LogFieldSourceLen  = "source_len"
	LogFieldDecls      = "decls"
	LogFieldName       = "name"
	LogFieldTemplateID = "template_id"
)
