package errors

import "strings"

// Input formats accepted by the loaders.
const (
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidateFormat normalizes and validates an input format name.
// The aliases "gv" and "graphviz" map to FormatDOT.
func ValidateFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case FormatDOT, "gv", "graphviz":
		return FormatDOT, nil
	case FormatJSON:
		return FormatJSON, nil
	case "":
		return "", New(ErrCodeInvalidFormat, "input format cannot be empty")
	default:
		return "", New(ErrCodeInvalidFormat, "unsupported input format %q (use dot or json)", format)
	}
}

// ValidateInputSize rejects inputs larger than limit bytes. A non-positive
// limit disables the check.
func ValidateInputSize(size, limit int64) error {
	if limit > 0 && size > limit {
		return New(ErrCodeInputTooLarge, "input is %d bytes, limit is %d", size, limit)
	}
	return nil
}
