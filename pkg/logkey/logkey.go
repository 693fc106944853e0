package logkey

// Shared keys for structured logging, so log lines stay grep-able
// across packages.
const (
	TraceID   = "TRACE ID"
	ERROR     = "ERROR"
	ProductID = "ProductID"
	Quantity  = "Quantity"
)
