package provider

import "fmt"

// UpstreamError is returned when Billetweb answers a fetch with a non-2xx
// status.  It fails the whole invocation; callers match it with errors.As.
type UpstreamError struct {
	Resource   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("billetweb %s: unexpected status %d", e.Resource, e.StatusCode)
}
