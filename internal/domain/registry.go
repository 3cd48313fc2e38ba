// Package domain defines the core entities and value objects shared by the
// action registry, conversation history, telemetry and session layers.
//
// The domain layer is independent of infrastructure concerns: it carries no
// I/O, no clocks and no logging.
package domain

// DomainKind classifies how a smart-home domain may be driven.
type DomainKind string

const (
	KindControllable DomainKind = "controllable"
	KindReadOnly     DomainKind = "read_only"
	KindServiceOnly  DomainKind = "service_only"
)

// Priority is the informational implementation tier of a domain.
type Priority int

const (
	PriorityEssential   Priority = 1
	PriorityCommon      Priority = 2
	PriorityStandard    Priority = 3
	PriorityExtended    Priority = 4
	PrioritySpecialized Priority = 5
)

// Priorities lists every tier in ascending order.
var Priorities = []Priority{
	PriorityEssential,
	PriorityCommon,
	PriorityStandard,
	PriorityExtended,
	PrioritySpecialized,
}

// ServiceParameters names the data fields a service call accepts.
type ServiceParameters struct {
	Required []string `yaml:"required,omitempty" json:"required,omitempty"`
	Optional []string `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// DomainDescriptor is one immutable row of the action catalog.
type DomainDescriptor struct {
	Name        string                       `yaml:"name" json:"name"`
	Kind        DomainKind                   `yaml:"type" json:"type"`
	Priority    Priority                     `yaml:"priority" json:"priority"`
	Services    []string                     `yaml:"services" json:"services"`
	Parameters  map[string]ServiceParameters `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	ReadOnlyMsg string                       `yaml:"error_message,omitempty" json:"error_message,omitempty"`
	Description string                       `yaml:"description" json:"description"`
}

// Allows reports whether service is one of the domain's allowed services.
func (d DomainDescriptor) Allows(service string) bool {
	for _, s := range d.Services {
		if s == service {
			return true
		}
	}
	return false
}

// ParametersFor returns the parameter spec of a service; the zero value when
// the service declares none.
func (d DomainDescriptor) ParametersFor(service string) ServiceParameters {
	if d.Parameters == nil {
		return ServiceParameters{}
	}
	return d.Parameters[service]
}

// DomainStatistics counts catalog entries by classification and tier.
type DomainStatistics struct {
	Total      int                `json:"total"`
	ByKind     map[DomainKind]int `json:"by_kind"`
	ByPriority map[Priority]int   `json:"by_priority"`
}
