package model

import "fmt"

// FailureKind categorizes why an icon download did not produce a file.
//
// Every per-bookmark failure is classified into exactly one kind rather
// than collapsed into a generic message, so the final tally and logs can
// tell transport problems apart from server responses and disk errors.
type FailureKind int

const (
	// FailureNone marks a successful outcome.
	FailureNone FailureKind = iota

	// FailureNoIconURL means the bookmark had an empty icon field.
	// No network request is made for these.
	FailureNoIconURL

	// FailureHTTPStatus means the server answered with a non-200 status.
	// The status code is recorded on the Outcome.
	FailureHTTPStatus

	// FailureTransport covers DNS, connect, TLS and timeout errors,
	// plus anything unexpected escaping a fetch task.
	FailureTransport

	// FailureWrite means the icon was fetched but could not be saved,
	// even after retrying under an ASCII fallback name.
	FailureWrite
)

// String returns a short identifier for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "ok"
	case FailureNoIconURL:
		return "no_icon_url"
	case FailureHTTPStatus:
		return "http_status"
	case FailureTransport:
		return "transport"
	case FailureWrite:
		return "write_error"
	default:
		return "unknown"
	}
}

// Outcome is the result of processing one bookmark, keyed by the
// bookmark's index in the input file.
type Outcome struct {
	// Index is the position of the originating bookmark.
	Index int

	// Path is the resolved local file path. Set only on success.
	Path string

	// Kind classifies the failure. FailureNone on success.
	Kind FailureKind

	// StatusCode holds the HTTP status for FailureHTTPStatus outcomes.
	StatusCode int

	// Err carries the underlying error for transport and write failures.
	Err error
}

// OK reports whether the icon was downloaded and saved.
func (o Outcome) OK() bool {
	return o.Kind == FailureNone
}

// String renders the outcome for logs and progress events.
func (o Outcome) String() string {
	switch o.Kind {
	case FailureNone:
		return fmt.Sprintf("saved %s", o.Path)
	case FailureHTTPStatus:
		return fmt.Sprintf("http_%d", o.StatusCode)
	case FailureTransport, FailureWrite:
		if o.Err != nil {
			return fmt.Sprintf("%s: %v", o.Kind, o.Err)
		}
		return o.Kind.String()
	default:
		return o.Kind.String()
	}
}

// Success returns a successful outcome for the bookmark at index.
func Success(index int, path string) Outcome {
	return Outcome{Index: index, Path: path}
}

// Failure returns a failed outcome of the given kind.
func Failure(index int, kind FailureKind, err error) Outcome {
	return Outcome{Index: index, Kind: kind, Err: err}
}

// HTTPFailure returns a failed outcome recording a non-200 status.
func HTTPFailure(index, statusCode int) Outcome {
	return Outcome{Index: index, Kind: FailureHTTPStatus, StatusCode: statusCode}
}
