package relay42

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is reported when a tracking call is made before a
	// site ID has been set, either on the client or via Configure.
	ErrNotConfigured = errors.New("relay42: client not configured")

	// ErrInvalidRequest is reported when a request cannot be built: the
	// endpoint URL does not parse, or a mapping call has no partner ID to
	// use. No network request is issued.
	ErrInvalidRequest = errors.New("relay42: invalid request")

	// ErrUnknownResponse is reported when the collector replied but the
	// response carries no usable HTTP status.
	ErrUnknownResponse = errors.New("relay42: unknown response")
)

// StatusError is reported when the collector answers with a status outside
// the 2xx range. Match it with errors.As.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relay42: collector returned status %d", e.Code)
}
