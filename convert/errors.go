package convert

import (
	"fmt"
	"strings"
)

// UnsupportedVersionError reports a requested or declared version that
// is not in the converter's known-versions set.
type UnsupportedVersionError struct {
	Version string
	Known   []string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported version %q (known versions: %s)",
		e.Version, strings.Join(e.Known, ", "))
}

// ConversionError reports a malformed document or a failed conversion,
// wrapping the underlying cause when there is one.
type ConversionError struct {
	Message string
	Err     error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("conversion failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("conversion failed: %s", e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
