package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate = "template"
	FlagData     = "data"
	FlagDataFile = "data-file"
	FlagOutput   = "output"
	FlagFormat   = "format"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagOutputShort   = "o"
	FlagFormatShort   = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Data file extensions
const (
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgMissingTemplate   = "template source required"
	ErrMsgInvalidData       = "invalid template data"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgCompileFailed     = "template compilation failed"
	ErrMsgRenderFailed      = "template rendering failed"
	ErrMsgInvalidFormat     = "invalid output format"
)

// Help text templates
const (
	HelpMainUsage = `go-microtpl - Minimal text templating CLI

Usage:
    microtpl <command> [options]

Commands:
    render      Render a template with data
    validate    Check a template for structural errors
    version     Show version information
    help        Show help for a command

Use "microtpl help <command>" for more information about a command.`

	HelpRenderUsage = `Render a template with data

Usage:
    microtpl render [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -d, --data <json>       JSON data string
    -f, --data-file <file>  Data file (JSON, or YAML by .yaml/.yml extension)
    -o, --output <file>     Output file (default: stdout)

Examples:
    microtpl render -t letter.tmpl -d '{"name": "Alice"}'
    microtpl render -t letter.tmpl -f data.yaml
    cat letter.tmpl | microtpl render -t - -d '{"name": "Bob"}'
    microtpl render -t letter.tmpl -f data.json -o letter.txt`

	HelpValidateUsage = `Check a template for structural errors

Usage:
    microtpl validate [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -F, --format <format>   Output format: text, json (default: text)

Examples:
    microtpl validate -t letter.tmpl
    cat letter.tmpl | microtpl validate -t -`

	HelpVersionUsage = `Show version information

Usage:
    microtpl version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    microtpl help [command]

Commands:
    render      Show help for render command
    validate    Show help for validate command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-microtpl version %s\nGo: %s"
)

// Validation output format templates
const (
	ValidationTextSuccess     = "Template is valid"
	ValidationTextErrorFormat = "Invalid template: %s"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
)
