package tracing

// Context carries per-request identifiers through handlers and helpers.
type Context struct {
	RequestID     string `json:"request_id"`
	RequestSource string `json:"request_source"`
}
