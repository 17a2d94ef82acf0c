// Package api fetches earthquake events from the USGS FDSN event service and
// turns them into a rich-text report.
//
// The flow is a single pass: a fixed Query is turned into a URL, the Client
// fetches the GeoJSON body, ParseFeatures decodes it into a FeatureSet and the
// Formatter renders the Report. Generator wires these steps together and
// recovers every failure into one of two user-facing messages.
package api

// ErrorCode defines error types for API operations
type ErrorCode string

const (
	// ErrConnection represents a fetch that never produced an HTTP response
	ErrConnection ErrorCode = "ConnectionError"

	// ErrProtocol represents a fetch answered with a non-success status code
	ErrProtocol ErrorCode = "ProtocolError"

	// ErrNoData represents a body that is malformed or holds no features
	ErrNoData ErrorCode = "NoData"

	// ErrInvalidQuery represents a query that fails validation
	ErrInvalidQuery ErrorCode = "InvalidQuery"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// User-facing messages for the two failure outcomes.
const (
	MessageFetchFailure = "Error Fetching Earthquake Data"
	MessageNoData       = "No Significant Activity Recorded"
)
