// Package registry validates and normalises requested device actions against
// a static catalog of smart-home domains.
//
// The catalog is data, not code: adding a domain is a table change. The
// registry holds no mutable state after construction and is safe for
// concurrent use.
package registry

import (
	"fmt"
	"strings"

	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/ports"
)

// Registry is an immutable, indexed view of a domain catalog.
type Registry struct {
	domains []domain.DomainDescriptor
	index   map[string]int
}

var defaultRegistry = mustNew(catalog)

// Default returns the registry built from the built-in catalog.
func Default() *Registry {
	return defaultRegistry
}

// New builds a registry, rejecting duplicate domain names and parameter
// specs for services the domain does not allow.
func New(descriptors []domain.DomainDescriptor) (*Registry, error) {
	r := &Registry{
		domains: make([]domain.DomainDescriptor, 0, len(descriptors)),
		index:   make(map[string]int, len(descriptors)),
	}
	for _, d := range descriptors {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("domain name is required")
		}
		if _, dup := r.index[d.Name]; dup {
			return nil, fmt.Errorf("duplicate domain %q", d.Name)
		}
		for service := range d.Parameters {
			if !d.Allows(service) {
				return nil, fmt.Errorf("domain %q declares parameters for unknown service %q", d.Name, service)
			}
		}
		r.index[d.Name] = len(r.domains)
		r.domains = append(r.domains, cloneDescriptor(d))
	}
	return r, nil
}

func mustNew(descriptors []domain.DomainDescriptor) *Registry {
	r, err := New(descriptors)
	if err != nil {
		panic(err)
	}
	return r
}

// Domain looks up a descriptor by name.
func (r *Registry) Domain(name string) (domain.DomainDescriptor, bool) {
	i, ok := r.index[name]
	if !ok {
		return domain.DomainDescriptor{}, false
	}
	return cloneDescriptor(r.domains[i]), true
}

// ResolveService maps a requested action to a canonical service name. It
// never fails: an unknown action comes back unchanged and is rejected later
// by ValidateAction.
func (r *Registry) ResolveService(domainName, action string) string {
	if i, ok := r.index[domainName]; ok && r.domains[i].Allows(action) {
		return action
	}
	resolved := action
	if canonical, ok := globalAliases[action]; ok {
		resolved = canonical
	}
	if canonical, ok := domainAliases[domainName][action]; ok {
		resolved = canonical
	}
	return resolved
}

// ValidateAction returns the canonical service for action on domainName, or
// a *domain.ValidationError describing why it is not allowed.
func (r *Registry) ValidateAction(domainName, action string) (string, error) {
	i, ok := r.index[domainName]
	if !ok {
		return "", r.domainNotFound(domainName, action)
	}
	d := r.domains[i]

	if d.Kind == domain.KindReadOnly {
		msg := d.ReadOnlyMsg
		if msg == "" {
			msg = fmt.Sprintf("Domain '%s' is read-only. Use 'get_entity_details' to read values.", domainName)
		}
		return "", &domain.ValidationError{
			Kind:    domain.RejectDomainReadOnly,
			Domain:  domainName,
			Action:  action,
			Message: msg,
		}
	}

	service := r.ResolveService(domainName, action)
	if d.Allows(service) {
		return service, nil
	}

	available := head(d.Services, domain.MaxListedServices)
	msg := fmt.Sprintf("Domain '%s' has no available services", domainName)
	if len(available) > 0 {
		msg = fmt.Sprintf("Action '%s' not valid for %s. Available: %s", action, domainName, strings.Join(available, ", "))
	}
	return "", &domain.ValidationError{
		Kind:      domain.RejectActionNotSupported,
		Domain:    domainName,
		Action:    action,
		Service:   service,
		Available: available,
		Message:   msg,
	}
}

func (r *Registry) domainNotFound(domainName, action string) error {
	var similar []string
	for _, d := range r.domains {
		if strings.Contains(d.Name, domainName) || strings.Contains(domainName, d.Name) {
			similar = append(similar, d.Name)
			if len(similar) == domain.MaxDomainSuggestions {
				break
			}
		}
	}
	msg := fmt.Sprintf("Domain '%s' not supported. Use 'list_domains' to see available domains.", domainName)
	if len(similar) > 0 {
		msg = fmt.Sprintf("Domain '%s' not supported. Did you mean: %s?", domainName, strings.Join(similar, ", "))
	}
	return &domain.ValidationError{
		Kind:        domain.RejectDomainNotFound,
		Domain:      domainName,
		Action:      action,
		Suggestions: similar,
		Message:     msg,
	}
}

// ServiceParameters returns the required and optional parameter names of a
// service; both empty when the domain or service is unknown.
func (r *Registry) ServiceParameters(domainName, service string) domain.ServiceParameters {
	i, ok := r.index[domainName]
	if !ok {
		return domain.ServiceParameters{}
	}
	p := r.domains[i].ParametersFor(service)
	return domain.ServiceParameters{
		Required: clone(p.Required),
		Optional: clone(p.Optional),
	}
}

// ValidateParameters checks that every required parameter is present.
// Optional and unknown extra parameters are never rejected here.
func (r *Registry) ValidateParameters(domainName, service string, provided map[string]any) error {
	var missing []string
	for _, name := range r.ServiceParameters(domainName, service).Required {
		if _, ok := provided[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &domain.ValidationError{
		Kind:    domain.RejectMissingParameters,
		Domain:  domainName,
		Service: service,
		Missing: missing,
		Message: fmt.Sprintf("Missing required parameters for %s.%s: %s", domainName, service, strings.Join(missing, ", ")),
	}
}

// ListDomains returns every domain name in catalog order, or only those of
// the given priority when priority is non-nil.
func (r *Registry) ListDomains(priority *domain.Priority) []string {
	out := make([]string, 0, len(r.domains))
	for _, d := range r.domains {
		if priority != nil && d.Priority != *priority {
			continue
		}
		out = append(out, d.Name)
	}
	return out
}

// DomainsByKind returns the names of every domain with the given kind.
func (r *Registry) DomainsByKind(kind domain.DomainKind) []string {
	var out []string
	for _, d := range r.domains {
		if d.Kind == kind {
			out = append(out, d.Name)
		}
	}
	return out
}

// Statistics counts domains by kind and priority. The table is small and
// immutable so it is recomputed on every call.
func (r *Registry) Statistics() domain.DomainStatistics {
	stats := domain.DomainStatistics{
		Total: len(r.domains),
		ByKind: map[domain.DomainKind]int{
			domain.KindControllable: 0,
			domain.KindReadOnly:     0,
			domain.KindServiceOnly:  0,
		},
		ByPriority: map[domain.Priority]int{},
	}
	for _, d := range r.domains {
		stats.ByKind[d.Kind]++
		stats.ByPriority[d.Priority]++
	}
	return stats
}

// Flatten renders statistics in the flat key form used by diagnostics
// ("total", "controllable", "priority_1", ...). Empty tiers are omitted.
func Flatten(stats domain.DomainStatistics) map[string]int {
	out := map[string]int{"total": stats.Total}
	for kind, count := range stats.ByKind {
		out[string(kind)] = count
	}
	for priority, count := range stats.ByPriority {
		if count > 0 {
			out[fmt.Sprintf("priority_%d", priority)] = count
		}
	}
	return out
}

func cloneDescriptor(d domain.DomainDescriptor) domain.DomainDescriptor {
	d.Services = clone(d.Services)
	if d.Parameters != nil {
		params := make(map[string]domain.ServiceParameters, len(d.Parameters))
		for service, p := range d.Parameters {
			params[service] = domain.ServiceParameters{Required: clone(p.Required), Optional: clone(p.Optional)}
		}
		d.Parameters = params
	}
	return d
}

func clone(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func head(in []string, n int) []string {
	if len(in) <= n {
		return clone(in)
	}
	return clone(in[:n])
}

var _ ports.ActionRegistry = (*Registry)(nil)
