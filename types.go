package relay42

// Engagement is a discrete behavioral event, e.g. a product view.
type Engagement struct {
	// UUID identifies the visitor the event belongs to.
	UUID string
	// Type names the engagement, e.g. "ProductView".
	Type string
	// Properties are free-form key/value pairs sent alongside the event.
	// The collector accepts at most 32; anything beyond that is dropped.
	Properties map[string]string
}

// Fact is a longer-lived profile attribute with an expiration.
type Fact struct {
	// UUID identifies the visitor the fact belongs to.
	UUID string
	// Type names the fact, e.g. "Newsletter".
	Type string
	// TTLSeconds is the fact's lifetime. It is transmitted verbatim; the
	// collector decides what zero or negative values mean.
	TTLSeconds int
	// Properties follow the same rules as Engagement.Properties.
	Properties map[string]string
}

// Mapping links a visitor to a partner profile.
type Mapping struct {
	// UUID identifies the visitor being linked.
	UUID string
	// ProfileID is the partner-side profile identifier.
	ProfileID string
	// PartnerID overrides the configured default partner. When both are
	// empty the call fails with ErrInvalidRequest.
	PartnerID string
	// Merge controls whether the collector merges the linked profiles.
	// nil means true.
	Merge *bool
}

// Result is the terminal outcome of a single tracking call. Each call
// produces exactly one Result, delivered on the call's channel.
type Result struct {
	// Status is the HTTP status returned by the collector, when a
	// response was received.
	Status int
	// Err is nil when the collector acknowledged the request with a 2xx
	// status.
	Err error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Err == nil }
