package domain

// Span names and attribute keys written by the engine and read by telemetry
// consumers.
const (
	// SpanFetchPrefix prefixes the span of one bundle fetch job: "fetch <bundle>".
	SpanFetchPrefix = "fetch "
	// SpanSync names the catalog sync span.
	SpanSync = "sync catalog"
	// AttrOrigin holds the bundle origin of a fetch span.
	AttrOrigin = "parcel.origin"
	// AttrReason holds the FailureReason of a failed fetch span.
	AttrReason = "parcel.reason"
)
