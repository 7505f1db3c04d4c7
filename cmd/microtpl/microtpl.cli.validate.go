package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-microtpl"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	templatePath string
	format       string
}

// validationOutput represents JSON output for validation
type validationOutput struct {
	Valid      bool   `json:"valid"`
	Kind       string `json:"kind,omitempty"`
	Message    string `json:"message,omitempty"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	SourceLine string `json:"source_line,omitempty"`
}

func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	// Read template
	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	// Compile only; validation is structural
	engine := microtpl.MustNew()
	_, compileErr := engine.Compile(string(templateSource))

	if cfg.format == OutputFormatJSON {
		return outputValidationJSON(compileErr, stdout)
	}
	return outputValidationText(compileErr, stdout)
}

func parseValidateFlags(args []string) (*validateConfig, error) {
	fs := flag.NewFlagSet(CmdNameValidate, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &validateConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

func outputValidationText(compileErr error, stdout io.Writer) int {
	if compileErr == nil {
		fmt.Fprintln(stdout, ValidationTextSuccess)
		return ExitCodeSuccess
	}

	fmt.Fprintf(stdout, ValidationTextErrorFormat+"\n", compileErr)
	return ExitCodeValidationError
}

func outputValidationJSON(compileErr error, stdout io.Writer) int {
	output := validationOutput{Valid: compileErr == nil}

	if compileErr != nil {
		output.Message = compileErr.Error()

		var customErr *cuserr.CustomError
		if errors.As(compileErr, &customErr) {
			if kind, ok := customErr.GetMetadata(microtpl.MetaKeyKind); ok {
				output.Kind = kind
			}
			if line, ok := customErr.GetMetadata(microtpl.MetaKeyLine); ok {
				output.Line, _ = strconv.Atoi(line)
			}
			if column, ok := customErr.GetMetadata(microtpl.MetaKeyColumn); ok {
				output.Column, _ = strconv.Atoi(column)
			}
			if sourceLine, ok := customErr.GetMetadata(microtpl.MetaKeySourceLine); ok {
				output.SourceLine = sourceLine
			}
		}
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ")
	fmt.Fprintln(stdout, string(jsonBytes))

	if !output.Valid {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}
