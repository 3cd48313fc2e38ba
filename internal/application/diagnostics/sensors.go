// Package diagnostics projects a telemetry snapshot onto a fixed set of
// sensor-style readings for a push-based display.
package diagnostics

import (
	"github.com/doeshing/assist-core/internal/domain"
)

// StateClass mirrors how a reading accumulates over time.
type StateClass string

const (
	StateMeasurement     StateClass = "measurement"
	StateTotal           StateClass = "total"
	StateTotalIncreasing StateClass = "total_increasing"
)

const (
	UnitMilliseconds = "ms"
	UnitPercent      = "%"
)

// Reading is one sensor value derived from a snapshot.
type Reading struct {
	Key        string         `json:"key" yaml:"key"`
	Name       string         `json:"name" yaml:"name"`
	Unit       string         `json:"unit,omitempty" yaml:"unit,omitempty"`
	StateClass StateClass     `json:"state_class,omitempty" yaml:"state_class,omitempty"`
	Icon       string         `json:"icon" yaml:"icon"`
	Diagnostic bool           `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
	Value      any            `json:"value" yaml:"value"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

type sensor struct {
	key        string
	name       string
	unit       string
	stateClass StateClass
	icon       string
	diagnostic bool
	value      func(domain.TelemetrySnapshot) any
	attrs      func(domain.TelemetrySnapshot) map[string]any
}

var sensors = []sensor{
	{
		key:   "status",
		name:  "Status",
		icon:  "mdi:check-network",
		value: func(s domain.TelemetrySnapshot) any { return s.Status },
		attrs: func(s domain.TelemetrySnapshot) map[string]any {
			if s.LastRequestTime == nil {
				return map[string]any{"last_request": nil}
			}
			return map[string]any{"last_request": s.LastRequestTime.Format(domain.TimestampFormat)}
		},
	},
	{
		key:        "fast_path_avg_response_time",
		name:       "Fast Path Avg Response Time",
		unit:       UnitMilliseconds,
		stateClass: StateMeasurement,
		icon:       "mdi:lightning-bolt",
		value:      func(s domain.TelemetrySnapshot) any { return s.FastPathAvgResponseTime },
	},
	{
		key:        "llm_avg_response_time",
		name:       "LLM Avg Response Time",
		unit:       UnitMilliseconds,
		stateClass: StateMeasurement,
		icon:       "mdi:robot",
		value:      func(s domain.TelemetrySnapshot) any { return s.LLMAvgResponseTime },
	},
	{
		key:        "fast_path_rate",
		name:       "Fast Path Rate",
		unit:       UnitPercent,
		stateClass: StateMeasurement,
		icon:       "mdi:percent-circle",
		value:      func(s domain.TelemetrySnapshot) any { return s.FastPathRate },
		attrs: func(s domain.TelemetrySnapshot) map[string]any {
			return map[string]any{"hits": s.FastPathHits, "misses": s.FastPathMisses}
		},
	},
	{
		key:        "fast_path_hits",
		name:       "Fast Path Hits",
		stateClass: StateTotalIncreasing,
		icon:       "mdi:lightning-bolt-circle",
		value:      func(s domain.TelemetrySnapshot) any { return s.FastPathHits },
	},
	{
		key:        "pre_resolve_rate",
		name:       "Pre-Resolve Rate",
		unit:       UnitPercent,
		stateClass: StateMeasurement,
		icon:       "mdi:target",
		value:      func(s domain.TelemetrySnapshot) any { return s.PreResolveRate },
		attrs: func(s domain.TelemetrySnapshot) map[string]any {
			return map[string]any{"hits": s.PreResolveHits, "attempts": s.PreResolveAttempts}
		},
	},
	{
		key:        "llm_calls_today",
		name:       "LLM Calls Today",
		stateClass: StateTotal,
		icon:       "mdi:robot-outline",
		value:      func(s domain.TelemetrySnapshot) any { return s.LLMCallsToday },
		attrs: func(s domain.TelemetrySnapshot) map[string]any {
			return map[string]any{"total": s.LLMCallsTotal}
		},
	},
	{
		key:        "tokens_used_today",
		name:       "Tokens Used Today",
		stateClass: StateTotal,
		icon:       "mdi:code-tags",
		value:      func(s domain.TelemetrySnapshot) any { return s.TokensUsedToday },
		attrs: func(s domain.TelemetrySnapshot) map[string]any {
			return map[string]any{"total": s.TokensUsedTotal}
		},
	},
	{
		key:        "requests_today",
		name:       "Requests Today",
		stateClass: StateTotal,
		icon:       "mdi:message-text",
		value:      func(s domain.TelemetrySnapshot) any { return s.RequestsToday },
	},
	{
		key:        "llm_errors",
		name:       "LLM Errors",
		stateClass: StateTotalIncreasing,
		icon:       "mdi:alert-circle",
		diagnostic: true,
		value:      func(s domain.TelemetrySnapshot) any { return s.LLMErrors },
	},
}

// Keys lists the sensor keys in display order.
func Keys() []string {
	keys := make([]string, len(sensors))
	for i, s := range sensors {
		keys[i] = s.key
	}
	return keys
}

// Readings evaluates every sensor against snap, in display order.
func Readings(snap domain.TelemetrySnapshot) []Reading {
	out := make([]Reading, 0, len(sensors))
	for _, s := range sensors {
		r := Reading{
			Key:        s.key,
			Name:       s.name,
			Unit:       s.unit,
			StateClass: s.stateClass,
			Icon:       s.icon,
			Diagnostic: s.diagnostic,
			Value:      s.value(snap),
		}
		if s.attrs != nil {
			r.Attributes = s.attrs(snap)
		}
		out = append(out, r)
	}
	return out
}

// ReadingFor returns the single reading for key.
func ReadingFor(snap domain.TelemetrySnapshot, key string) (Reading, bool) {
	for _, r := range Readings(snap) {
		if r.Key == key {
			return r, true
		}
	}
	return Reading{}, false
}
