package errors

import "fmt"

// Error message constants for the ordered-imports application
const (
	// Configuration errors
	ErrMsgInvalidGroupPattern = "invalid group pattern"
	ErrMsgInvalidSpacing      = "invalid blank lines policy"
	ErrMsgInvalidFormat       = "invalid output format"
	ErrMsgInvalidExclude      = "invalid exclude pattern"
	ErrMsgFailedToReadConfig  = "failed to read config file"

	// File processing errors
	ErrMsgFailedToReadFile       = "failed to read file"
	ErrMsgFailedToParseFile      = "failed to parse file"
	ErrMsgFailedToExtractImports = "failed to extract imports"
	ErrMsgUnsupportedFile        = "unsupported file type"
	ErrMsgFailedToRenderReport   = "failed to render report"

	// Directory processing errors
	ErrMsgFailedToCheckPath    = "failed to check path"
	ErrMsgFailedToFindFiles    = "failed to find source files in directory"
	ErrMsgFilesFailedToProcess = "%d files failed to process"
	ErrMsgViolationsFound      = "%d import order violations found"

	// Info/warning messages
	InfoMsgNoSourceFilesFound = "No source files found in: %s"
	InfoMsgCheckedFiles       = "Checked %d files"
	InfoMsgViolationCount     = ", %d violations"
	InfoMsgErrorCount         = ", %d files had errors"
)

// ConfigurationError reports a group order token or option value that cannot be used.
type ConfigurationError struct {
	Msg   string // one of the ErrMsg constants
	Value string
	Index int // position of the token in the group order, -1 when not applicable
	Err   error
}

func (e *ConfigurationError) Error() string {
	var s string
	if e.Index >= 0 {
		s = fmt.Sprintf("%s #%d %q", e.Msg, e.Index, e.Value)
	} else {
		s = fmt.Sprintf("%s %q", e.Msg, e.Value)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
