package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrDataRequired    = errors.New("for POST requests, data is required")
	ErrEmptyRecordList = errors.New("cannot export an empty record list to CSV")
	ErrMissingMethod   = errors.New("missing required method argument")
	ErrMissingEndpoint = errors.New("missing required endpoint argument")
)

// UsageError reports bad or unknown command-line input.
type UsageError struct {
	Detail string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Detail
}

// InputError reports malformed input: a -d value or a response body that is
// not valid JSON text.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return e.Err.Error()
}

func (e *InputError) Unwrap() error { return e.Err }

// NetworkError wraps a transport-level failure (DNS, refused connection,
// timeout). The request never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError reports a response whose status code signals failure.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Code)
}

// FormatError reports an output destination with an unsupported extension.
type FormatError struct {
	Ext string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q", e.Ext)
}

// WriteError wraps a filesystem failure while saving a response.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Message renders the user-facing diagnostic line for err, matching the
// wording the tool has always printed.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var (
		usageErr  *UsageError
		inputErr  *InputError
		netErr    *NetworkError
		statusErr *StatusError
		formatErr *FormatError
		writeErr  *WriteError
	)

	switch {
	case errors.As(err, &usageErr):
		return usageErr.Error()
	case errors.Is(err, ErrDataRequired):
		return fmt.Sprintf("Invalid input: %v", ErrDataRequired)
	case errors.As(err, &inputErr):
		return fmt.Sprintf("Invalid input: %v", inputErr)
	case errors.As(err, &netErr):
		return fmt.Sprintf("Network error: %v", netErr.Err)
	case errors.As(err, &statusErr):
		return "Error: Request was not successful."
	case errors.As(err, &formatErr):
		return fmt.Sprintf("Error: Unsupported file format '%s'.", formatErr.Ext)
	case errors.As(err, &writeErr):
		return fmt.Sprintf("File write error: %v", writeErr.Err)
	case errors.Is(err, ErrEmptyRecordList):
		return fmt.Sprintf("File write error: %v", err)
	}

	return fmt.Sprintf("Error: %v", err)
}
