package registry

import (
	"fmt"
	"sort"
)

// globalAliases maps colloquial verbs to canonical service names. The target
// is not guaranteed to be valid for every domain; validation re-checks it.
var globalAliases = map[string]string{
	"activate":   "turn_on",
	"deactivate": "turn_off",
	"enable":     "turn_on",
	"disable":    "turn_off",
	"start":      "turn_on",
	"stop":       "turn_off",

	"secure":   "lock",
	"unsecure": "unlock",

	"open":  "open_cover",
	"close": "close_cover",
	"raise": "open_cover",
	"lower": "close_cover",

	"play":     "media_play",
	"pause":    "media_pause",
	"next":     "media_next_track",
	"previous": "media_previous_track",
	"mute":     "volume_mute",

	"heat": "set_hvac_mode",
	"cool": "set_hvac_mode",

	"clean": "start",
	"dock":  "return_to_base",
	"home":  "return_to_base",
}

// domainAliases are the only per-domain overrides. Keep this list short and
// explicit so unrelated domains never pick up each other's verbs.
var domainAliases = map[string]map[string]string{
	"cover": {
		"raise": "open_cover",
		"lift":  "open_cover",
		"lower": "close_cover",
		"drop":  "close_cover",
	},
	"lock": {
		"secure":   "lock",
		"unsecure": "unlock",
	},
	"vacuum": {
		"clean": "start",
		"dock":  "return_to_base",
		"home":  "return_to_base",
	},
}

// GlobalAliases returns a copy of the global alias table.
func GlobalAliases() map[string]string {
	out := make(map[string]string, len(globalAliases))
	for alias, service := range globalAliases {
		out[alias] = service
	}
	return out
}

// CheckAliases reports domain-specific alias entries whose domain is missing
// from the registry or whose target the domain does not allow.
func (r *Registry) CheckAliases() []string {
	var problems []string
	for _, domainName := range sortedKeys(domainAliases) {
		i, ok := r.index[domainName]
		if !ok {
			problems = append(problems, fmt.Sprintf("aliases declared for unknown domain %s", domainName))
			continue
		}
		for _, alias := range sortedKeys(domainAliases[domainName]) {
			target := domainAliases[domainName][alias]
			if !r.domains[i].Allows(target) {
				problems = append(problems, fmt.Sprintf("%s alias %s targets unknown service %s", domainName, alias, target))
			}
		}
	}
	return problems
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
