package vision

import "fmt"

// TransportKind distinguishes a request that could not be sent from a
// response that never fully arrived.
type TransportKind string

const (
	TransportSend    TransportKind = "send"
	TransportReceive TransportKind = "receive"
)

// ServiceError is an application-level error from the analysis service,
// carrying the HTTP status it answered with.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service returned status %d", e.Status)
	}
	return fmt.Sprintf("service returned status %d: %s", e.Status, e.Message)
}

// TransportError is a network-level failure on the way to or from the
// service.
type TransportError struct {
	Kind TransportKind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failure: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
