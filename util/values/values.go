package values

// Request statuses returned in the ServerResponse envelope.
const (
	Success         = "success"
	Created         = "created"
	Error           = "error"
	BadRequestBody  = "bad-request-body"
	Unprocessable   = "unprocessable"
	NotAllowed      = "not-allowed"
	Conflict        = "conflict"
	NotFound        = "not-found"
	TooManyRequests = "too-many-requests"
	BadGateway      = "bad-gateway"
)

const (
	HeaderRequestSource = "X-Request-Source"
	HeaderRequestID     = "X-Request-ID"
)

type contextKey string

const ContextTracingKey = contextKey("tracing-context")
