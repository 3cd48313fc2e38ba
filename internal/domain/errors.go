package domain

import "errors"

var (
	ErrDomainNotFound     = errors.New("domain not found")
	ErrDomainReadOnly     = errors.New("domain is read-only")
	ErrActionNotSupported = errors.New("action not supported")
	ErrMissingParameters  = errors.New("missing required parameters")
	ErrNoResponder        = errors.New("no responder configured")
)

// RejectionKind tags why the registry refused a request.
type RejectionKind string

const (
	RejectDomainNotFound     RejectionKind = "domain_not_found"
	RejectDomainReadOnly     RejectionKind = "domain_read_only"
	RejectActionNotSupported RejectionKind = "action_not_supported"
	RejectMissingParameters  RejectionKind = "missing_parameters"
)

// ValidationError is the rejection value returned by the action registry.
// Message is meant to be shown to the conversational layer verbatim.
type ValidationError struct {
	Kind        RejectionKind
	Domain      string
	Action      string
	Service     string
	Suggestions []string
	Available   []string
	Missing     []string
	Message     string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is match a ValidationError against the package sentinels.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrDomainNotFound:
		return e.Kind == RejectDomainNotFound
	case ErrDomainReadOnly:
		return e.Kind == RejectDomainReadOnly
	case ErrActionNotSupported:
		return e.Kind == RejectActionNotSupported
	case ErrMissingParameters:
		return e.Kind == RejectMissingParameters
	}
	return false
}
